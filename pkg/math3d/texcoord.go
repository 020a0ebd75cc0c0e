package math3d

// Vec2 represents a 2D vector, used for raw texture coordinates.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// TexCoord is a texture coordinate plus the perspective weight W
// (reciprocal of clip-space w) carried alongside geometry.
type TexCoord struct {
	U, V, W float64
}

// TC creates a TexCoord with W = 1.
func TC(u, v float64) TexCoord {
	return TexCoord{u, v, 1}
}

// Lerp returns linear interpolation.
//
//nolint:st1016 // a,b naming convention is clearer for interpolation
func (a TexCoord) Lerp(b TexCoord, t float64) TexCoord {
	return TexCoord{
		a.U + (b.U-a.U)*t,
		a.V + (b.V-a.V)*t,
		a.W + (b.W-a.W)*t,
	}
}
