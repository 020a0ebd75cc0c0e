package math3d

// Vec4 is a homogeneous point. After projection W holds the view-space
// depth and PerspectiveDivide maps the point to normalized device space.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 builds a Vec4.
func V4(x, y, z, w float64) Vec4 { return Vec4{x, y, z, w} }

// V4FromV3 lifts v with the given w: 1 for points, 0 for directions.
func V4FromV3(v Vec3, w float64) Vec4 { return Vec4{v.X, v.Y, v.Z, w} }

// Vec3 drops W without dividing.
func (v Vec4) Vec3() Vec3 { return Vec3{v.X, v.Y, v.Z} }

// PerspectiveDivide returns (X/W, Y/W, Z/W, 1). W = 0 skips the division.
func (v Vec4) PerspectiveDivide() Vec4 {
	if v.W == 0 {
		v.W = 1
		return v
	}
	return Vec4{v.X / v.W, v.Y / v.W, v.Z / v.W, 1}
}

// Lerp moves from v toward o by t; clipping uses it to place new vertices.
func (v Vec4) Lerp(o Vec4, t float64) Vec4 {
	return Vec4{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
		Z: v.Z + (o.Z-v.Z)*t,
		W: v.W + (o.W-v.W)*t,
	}
}
