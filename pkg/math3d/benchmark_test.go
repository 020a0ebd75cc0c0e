package math3d

import "testing"

// Per-vertex and per-frame costs of the pipeline's transform chain.

func BenchmarkWorldViewProjection(b *testing.B) {
	world := RotateZ(0.3).Mul(RotateX(0.15)).Mul(Translate(V3(0, 0, 8)))
	view := PointAt(V3(0, 1, -2), V3(0, 1, 0), Up()).QuickInverse()
	proj := Projection(90, 0.75, 0.1, 1000)

	for b.Loop() {
		_ = world.Mul(view).Mul(proj)
	}
}

func BenchmarkProjectVertex(b *testing.B) {
	m := Translate(V3(0, 0, 8)).Mul(Projection(90, 0.75, 0.1, 1000))
	p := V4(0.5, -0.25, 1, 1)

	for b.Loop() {
		_ = m.MulVec4(p).PerspectiveDivide()
	}
}

func BenchmarkFaceNormal(b *testing.B) {
	p0, p1, p2 := V3(0, 0, 5), V3(1, 0, 5), V3(0, 1, 5.5)

	for b.Loop() {
		_ = p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
	}
}

func BenchmarkClipLerp(b *testing.B) {
	in, out := V4(0.2, 0.1, 0.5, 1), V4(3, -2, -0.4, 0.2)
	ta, tb := TC(0, 0), TC(1, 1)

	for b.Loop() {
		_ = in.Lerp(out, 0.4)
		_ = ta.Lerp(tb, 0.4)
	}
}
