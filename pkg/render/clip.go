package render

import "github.com/Jailior/3dgraphicproject/pkg/math3d"

// Plane is a clipping plane given by a point on it and a normal pointing
// toward the kept half-space. The normal does not need to be unit length.
type Plane struct {
	Point  math3d.Vec3
	Normal math3d.Vec3
}

// Distance returns the signed distance of p from the plane along the
// normalized normal. Points with Distance >= 0 are inside.
func (pl Plane) Distance(p math3d.Vec3) float64 {
	n := pl.Normal.Normalize()
	return n.Dot(p) - n.Dot(pl.Point)
}

// intersect returns the parameter t at which the segment start→end crosses
// the plane.
func (pl Plane) intersect(start, end math3d.Vec3) float64 {
	n := pl.Normal.Normalize()
	d := n.Dot(pl.Point)
	ad := start.Dot(n)
	bd := end.Dot(n)
	return (d - ad) / (bd - ad)
}

// ClipTriangle clips tri against the plane and returns the triangles that
// remain inside along with how many of the array are valid (0, 1 or 2).
// A fully inside triangle is returned unchanged. Output triangles keep the
// input's winding and color; texture coordinates are interpolated with the
// same parameter as positions.
func (pl Plane) ClipTriangle(tri Triangle) ([2]Triangle, int) {
	var out [2]Triangle

	var dist [3]float64
	inside := 0
	for i := range 3 {
		dist[i] = pl.Distance(tri.P[i].Vec3())
		if dist[i] >= 0 {
			inside++
		}
	}

	switch inside {
	case 0:
		return out, 0
	case 3:
		out[0] = tri
		return out, 1
	}

	// Walk the edges in order so the polygon keeps the input winding.
	var (
		poly [4]math3d.Vec4
		tex  [4]math3d.TexCoord
		n    int
	)
	for i := range 3 {
		j := (i + 1) % 3
		if dist[i] >= 0 {
			poly[n], tex[n] = tri.P[i], tri.T[i]
			n++
		}
		if (dist[i] >= 0) != (dist[j] >= 0) {
			t := pl.intersect(tri.P[i].Vec3(), tri.P[j].Vec3())
			poly[n] = tri.P[i].Lerp(tri.P[j], t)
			tex[n] = tri.T[i].Lerp(tri.T[j], t)
			n++
		}
	}

	// Fan triangulate: 3 vertices give one triangle, 4 give two.
	count := n - 2
	for k := range count {
		out[k] = Triangle{
			P:     [3]math3d.Vec4{poly[0], poly[k+1], poly[k+2]},
			T:     [3]math3d.TexCoord{tex[0], tex[k+1], tex[k+2]},
			Color: tri.Color,
		}
	}
	return out, count
}

// NearPlane returns the view-space plane z = near facing +Z.
func NearPlane(near float64) Plane {
	return Plane{Point: math3d.V3(0, 0, near), Normal: math3d.V3(0, 0, 1)}
}

// ScreenEdges returns the four screen-space planes bounding a width×height
// viewport, in the order top, bottom, left, right.
func ScreenEdges(width, height int) [4]Plane {
	return [4]Plane{
		{Point: math3d.V3(0, 0, 0), Normal: math3d.V3(0, 1, 0)},
		{Point: math3d.V3(0, float64(height-1), 0), Normal: math3d.V3(0, -1, 0)},
		{Point: math3d.V3(0, 0, 0), Normal: math3d.V3(1, 0, 0)},
		{Point: math3d.V3(float64(width-1), 0, 0), Normal: math3d.V3(-1, 0, 0)},
	}
}

// ClipQueue clips tri against each plane in turn. Every triangle produced by
// one plane is tested against the next. The survivors are appended to dst,
// which is returned.
func ClipQueue(dst []Triangle, tri Triangle, planes []Plane) []Triangle {
	start := len(dst)
	dst = append(dst, tri)

	for _, pl := range planes {
		pending := len(dst) - start
		for range pending {
			front := dst[start]
			dst = append(dst[:start], dst[start+1:]...)

			clipped, n := pl.ClipTriangle(front)
			dst = append(dst, clipped[:n]...)
		}
	}
	return dst
}
