// Package math3d provides the vector and matrix kernel used by the software
// rendering pipeline. Matrices are row-major and multiply row vectors, so
// a.Mul(b) applies a first.
package math3d

import "math"

// Vec3 is a point or direction in model, world or view space.
type Vec3 struct {
	X, Y, Z float64
}

// V3 builds a Vec3.
func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

// Zero3 is the origin.
func Zero3() Vec3 { return Vec3{} }

// Up is world +y.
func Up() Vec3 { return Vec3{Y: 1} }

// Forward is +z, the direction the camera faces at yaw 0.
func Forward() Vec3 { return Vec3{Z: 1} }

// Add returns a + b.
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Sub returns a - b.
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Scale returns a * s.
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }

// Div returns a / s. Dividing by zero returns a unchanged.
func (a Vec3) Div(s float64) Vec3 {
	if s == 0 {
		return a
	}
	return Vec3{a.X / s, a.Y / s, a.Z / s}
}

// Negate returns -a.
func (a Vec3) Negate() Vec3 { return a.Scale(-1) }

// Dot returns the scalar product a · b.
func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Cross is right-handed: X.Cross(Y) = Z.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the Euclidean length of a.
func (a Vec3) Len() float64 { return math.Sqrt(a.Dot(a)) }

// Normalize scales a to unit length. The zero vector stays zero.
func (a Vec3) Normalize() Vec3 {
	if l := a.Len(); l != 0 {
		return a.Scale(1 / l)
	}
	return a
}

// Min returns the per-component minimum; bounding boxes grow with it.
func (a Vec3) Min(b Vec3) Vec3 { return Vec3{min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z)} }

// Max returns the per-component maximum.
func (a Vec3) Max(b Vec3) Vec3 { return Vec3{max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z)} }
