package math3d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func vec3ApproxEqual(a, b Vec3) bool {
	return approxEqual(a.X, b.X) && approxEqual(a.Y, b.Y) && approxEqual(a.Z, b.Z)
}

func TestVec3Normalize(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
	}{
		{"unit x", V3(1, 0, 0)},
		{"diagonal", V3(1, 1, 1)},
		{"negative", V3(-3, 4, 12)},
		{"tiny", V3(1e-6, -2e-6, 3e-6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.v.Normalize()
			if !approxEqual(n.Len(), 1) {
				t.Errorf("Normalize(%v).Len() = %v, want 1", tt.v, n.Len())
			}
			if again := n.Normalize(); !vec3ApproxEqual(again, n) {
				t.Errorf("Normalize not idempotent: %v then %v", n, again)
			}
		})
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := Zero3().Normalize(); got != Zero3() {
		t.Errorf("Normalize(zero) = %v, want zero vector", got)
	}
}

func TestVec3Arithmetic(t *testing.T) {
	v := V3(2, -4, 6)
	if got := v.Scale(0.5); got != V3(1, -2, 3) {
		t.Errorf("Scale = %v", got)
	}
	if got := v.Div(2); got != V3(1, -2, 3) {
		t.Errorf("Div = %v", got)
	}
	if got := v.Div(0); got != v {
		t.Errorf("Div(0) = %v, want %v unchanged", got, v)
	}
	if got := v.Negate(); got != V3(-2, 4, -6) {
		t.Errorf("Negate = %v", got)
	}
	if lo, hi := v.Min(Zero3()), v.Max(Zero3()); lo != V3(0, -4, 0) || hi != V3(2, 0, 6) {
		t.Errorf("Min/Max = %v, %v", lo, hi)
	}
	if got := v.Add(V3(1, 1, 1)).Sub(V3(1, 1, 1)); got != v {
		t.Errorf("Add/Sub round trip = %v", got)
	}
}

func TestVec3MatchesMathgl(t *testing.T) {
	pairs := [][2]Vec3{
		{V3(1, 0, 0), V3(0, 1, 0)},
		{V3(1, 2, 3), V3(4, 5, 6)},
		{V3(-2.5, 0.25, 7), V3(3, -1, 0.5)},
	}

	for _, p := range pairs {
		a, b := p[0], p[1]
		ma, mb := mgl64.Vec3{a.X, a.Y, a.Z}, mgl64.Vec3{b.X, b.Y, b.Z}

		c := a.Cross(b)
		mc := ma.Cross(mb)
		if !vec3ApproxEqual(c, V3(mc[0], mc[1], mc[2])) {
			t.Errorf("Cross(%v, %v) = %v, mathgl %v", a, b, c, mc)
		}
		if d, md := a.Dot(b), ma.Dot(mb); !approxEqual(d, md) {
			t.Errorf("Dot(%v, %v) = %v, mathgl %v", a, b, d, md)
		}
		if l, ml := a.Len(), ma.Len(); !approxEqual(l, ml) {
			t.Errorf("Len(%v) = %v, mathgl %v", a, l, ml)
		}
	}
}

func TestTexCoordLerp(t *testing.T) {
	a := TexCoord{0, 1, 1}
	b := TexCoord{1, 0, 0.5}
	got := a.Lerp(b, 0.25)
	want := TexCoord{0.25, 0.75, 0.875}
	if !approxEqual(got.U, want.U) || !approxEqual(got.V, want.V) || !approxEqual(got.W, want.W) {
		t.Errorf("Lerp = %v, want %v", got, want)
	}
}

func TestVec4PerspectiveDivide(t *testing.T) {
	got := V4(2, 4, 6, 2).PerspectiveDivide()
	if got != V4(1, 2, 3, 1) {
		t.Errorf("PerspectiveDivide = %v", got)
	}

	// zero w leaves coordinates undivided
	got = V4(2, 4, 6, 0).PerspectiveDivide()
	if got != V4(2, 4, 6, 1) {
		t.Errorf("PerspectiveDivide(w=0) = %v", got)
	}
}
