package math3d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func mat4ApproxEqual(a, b Mat4) bool {
	for r := range 4 {
		for c := range 4 {
			if !approxEqual(a[r][c], b[r][c]) {
				return false
			}
		}
	}
	return true
}

// fromMathgl converts a column-vector mathgl matrix to our row-vector layout.
func fromMathgl(m mgl64.Mat4) Mat4 {
	var out Mat4
	for r := range 4 {
		for c := range 4 {
			out[r][c] = m.At(c, r)
		}
	}
	return out
}

func TestIdentityNeutral(t *testing.T) {
	ms := map[string]Mat4{
		"translate":  Translate(V3(1, -2, 3)),
		"rotate x":   RotateX(0.7),
		"rotate y":   RotateY(-1.2),
		"projection": Projection(90, 0.75, 0.1, 1000),
		"point at":   PointAt(V3(1, 2, 3), V3(4, 0, -1), Up()),
	}

	for name, m := range ms {
		t.Run(name, func(t *testing.T) {
			if got := Identity().Mul(m); got != m {
				t.Errorf("I·M = %v, want %v", got, m)
			}
			if got := m.Mul(Identity()); got != m {
				t.Errorf("M·I = %v, want %v", got, m)
			}
		})
	}
}

func TestRotationsMatchMathgl(t *testing.T) {
	angles := []float64{0, 0.3, math.Pi / 2, -2.1}

	for _, a := range angles {
		if got, want := RotateX(a), fromMathgl(mgl64.HomogRotate3DX(a)); !mat4ApproxEqual(got, want) {
			t.Errorf("RotateX(%v) = %v, want %v", a, got, want)
		}
		if got, want := RotateZ(a), fromMathgl(mgl64.HomogRotate3DZ(a)); !mat4ApproxEqual(got, want) {
			t.Errorf("RotateZ(%v) = %v, want %v", a, got, want)
		}
	}

	tr := V3(3, -4, 5)
	if got, want := Translate(tr), fromMathgl(mgl64.Translate3D(tr.X, tr.Y, tr.Z)); !mat4ApproxEqual(got, want) {
		t.Errorf("Translate = %v, want %v", got, want)
	}
}

func TestRotateY(t *testing.T) {
	// (0,0,1) turns toward -X for positive yaw
	got := RotateY(math.Pi / 2).MulVec3(Forward())
	if !vec3ApproxEqual(got, V3(-1, 0, 0)) {
		t.Errorf("Forward·RotateY(π/2) = %v, want (-1, 0, 0)", got)
	}
}

func TestMulComposesLeftToRight(t *testing.T) {
	p := V3(1, 0, 0)
	m := RotateZ(math.Pi / 2).Mul(Translate(V3(10, 0, 0)))

	// rotate first: (1,0,0) -> (0,1,0), then translate
	got := m.MulVec3(p)
	if !vec3ApproxEqual(got, V3(10, 1, 0)) {
		t.Errorf("composed transform = %v, want (10, 1, 0)", got)
	}
}

func TestProjection(t *testing.T) {
	m := Projection(90, 1, 0.1, 1000)

	tests := []struct {
		name string
		in   Vec3
	}{
		{"on axis", V3(0, 0, 5)},
		{"off axis", V3(2, -3, 7)},
		{"near plane", V3(0.05, 0.05, 0.1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := m.MulVec4(V4FromV3(tt.in, 1))
			if !approxEqual(out.W, tt.in.Z) {
				t.Errorf("projected w = %v, want input z %v", out.W, tt.in.Z)
			}
			// tan(45°) = 1 so x and y pass through before the divide
			if !approxEqual(out.X, tt.in.X) || !approxEqual(out.Y, tt.in.Y) {
				t.Errorf("projected xy = (%v, %v), want (%v, %v)", out.X, out.Y, tt.in.X, tt.in.Y)
			}
		})
	}

	// near maps to depth 0, far to depth 1
	near := m.MulVec4(V4(0, 0, 0.1, 1)).PerspectiveDivide()
	far := m.MulVec4(V4(0, 0, 1000, 1)).PerspectiveDivide()
	if !approxEqual(near.Z, 0) || !approxEqual(far.Z, 1) {
		t.Errorf("depth range = [%v, %v], want [0, 1]", near.Z, far.Z)
	}
}

func TestProjectionAspect(t *testing.T) {
	m := Projection(90, 0.5, 0.1, 1000)
	if !approxEqual(m[0][0], 0.5) || !approxEqual(m[1][1], 1) {
		t.Errorf("scale = (%v, %v), want (0.5, 1)", m[0][0], m[1][1])
	}
	if m[2][3] != 1 || m[3][3] != 0 {
		t.Errorf("w column = (%v, %v), want (1, 0)", m[2][3], m[3][3])
	}
}

func TestPointAtQuickInverse(t *testing.T) {
	tests := []struct {
		name        string
		pos, target Vec3
	}{
		{"origin forward", V3(0, 0, 0), V3(0, 0, 1)},
		{"offset", V3(3, 2, -5), V3(0, 0, 0)},
		{"yawed", V3(-1, 4, 2), V3(-1, 4, 2).Add(V3(-math.Sin(0.8), 0, math.Cos(0.8)))},
		{"pitched", V3(0, 0, 0), V3(0, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := PointAt(tt.pos, tt.target, Up())
			if got := m.QuickInverse().Mul(m); !mat4ApproxEqual(got, Identity()) {
				t.Errorf("QuickInverse·PointAt = %v, want identity", got)
			}
			if got := m.Mul(m.QuickInverse()); !mat4ApproxEqual(got, Identity()) {
				t.Errorf("PointAt·QuickInverse = %v, want identity", got)
			}
		})
	}
}

func TestPointAtBasis(t *testing.T) {
	m := PointAt(V3(0, 0, 0), V3(0, 0, 1), Up())
	if !mat4ApproxEqual(m, Identity()) {
		t.Errorf("PointAt along +Z = %v, want identity", m)
	}

	// view matrix brings the camera position to the origin
	pos := V3(3, 2, -5)
	view := PointAt(pos, V3(0, 0, 0), Up()).QuickInverse()
	if got := view.MulVec3(pos); !vec3ApproxEqual(got, Zero3()) {
		t.Errorf("view(camera) = %v, want origin", got)
	}
}

func TestTranspose(t *testing.T) {
	m := Translate(V3(1, 2, 3))
	tr := m.Transpose()
	if tr[0][3] != 1 || tr[1][3] != 2 || tr[2][3] != 3 {
		t.Errorf("Transpose = %v", tr)
	}
	if tr.Transpose() != m {
		t.Errorf("Transpose twice changed matrix")
	}
	if got := m.Translation(); got != V3(1, 2, 3) {
		t.Errorf("Translation = %v", got)
	}
}
