package render

// Rasterizer draws screen-space triangles onto a surface. Implementations
// provide the draw modes the pipeline can switch between.
type Rasterizer interface {
	// FillTextured fills tri with perspective-correct texels from tex,
	// depth tested against depth.
	FillTextured(dst Surface, depth *DepthBuffer, tri Triangle, tex Sampler)
	// FillSolid fills tri with its flat color, depth tested against depth.
	FillSolid(dst Surface, depth *DepthBuffer, tri Triangle)
	// DrawWireframe outlines tri with c. No depth test is applied.
	DrawWireframe(dst Surface, tri Triangle, c Color)
}

// Scanline is the default Rasterizer. It walks the triangle top to bottom
// in two halves split at the middle vertex and fills each row as a
// half-open span.
type Scanline struct{}

// NewScanline creates a scanline rasterizer.
func NewScanline() *Scanline {
	return &Scanline{}
}

// FillTextured implements Rasterizer.
func (s *Scanline) FillTextured(dst Surface, depth *DepthBuffer, tri Triangle, tex Sampler) {
	scan(tri, func(x, y int, u, v, w float64) {
		if !depth.TestAndSet(x, y, w) {
			return
		}
		dst.SetPixel(x, y, tex.Sample(u/w, v/w))
	})
}

// FillSolid implements Rasterizer.
func (s *Scanline) FillSolid(dst Surface, depth *DepthBuffer, tri Triangle) {
	c := tri.Color
	scan(tri, func(x, y int, _, _, w float64) {
		if !depth.TestAndSet(x, y, w) {
			return
		}
		dst.SetPixel(x, y, c)
	})
}

// DrawWireframe implements Rasterizer.
func (s *Scanline) DrawWireframe(dst Surface, tri Triangle, c Color) {
	for i := range 3 {
		a, b := tri.P[i], tri.P[(i+1)%3]
		drawLine(dst, int(a.X), int(a.Y), int(b.X), int(b.Y), c)
	}
}

// scanVertex is a vertex snapped to integer pixel coordinates.
type scanVertex struct {
	x, y    int
	u, v, w float64
}

// scan edge-walks tri and calls frag for every covered pixel with the
// interpolated (u, v, w). Vertices are truncated to integer pixels and
// sorted by y. The long edge v1→v3 runs along one side of every row; the
// top half pairs it with v1→v2 and the bottom half with v2→v3.
func scan(tri Triangle, frag func(x, y int, u, v, w float64)) {
	var vs [3]scanVertex
	for i := range 3 {
		vs[i] = scanVertex{
			x: int(tri.P[i].X),
			y: int(tri.P[i].Y),
			u: tri.T[i].U,
			v: tri.T[i].V,
			w: tri.T[i].W,
		}
	}
	if vs[1].y < vs[0].y {
		vs[0], vs[1] = vs[1], vs[0]
	}
	if vs[2].y < vs[0].y {
		vs[0], vs[2] = vs[2], vs[0]
	}
	if vs[2].y < vs[1].y {
		vs[1], vs[2] = vs[2], vs[1]
	}
	v1, v2, v3 := vs[0], vs[1], vs[2]

	// Long edge steps, shared by both halves.
	long := newEdge(v1, v3)

	if v2.y != v1.y {
		short := newEdge(v1, v2)
		for y := v1.y; y <= v2.y; y++ {
			scanRow(y, short.at(v1, y-v1.y), long.at(v1, y-v1.y), frag)
		}
	}

	if v3.y != v2.y {
		short := newEdge(v2, v3)
		for y := v2.y; y <= v3.y; y++ {
			scanRow(y, short.at(v2, y-v2.y), long.at(v1, y-v1.y), frag)
		}
	}
}

// edge holds per-row increments along one triangle edge.
type edge struct {
	dx, du, dv, dw float64
}

func newEdge(a, b scanVertex) edge {
	dy := b.y - a.y
	if dy == 0 {
		return edge{}
	}
	n := float64(abs(dy))
	return edge{
		dx: float64(b.x-a.x) / n,
		du: (b.u - a.u) / n,
		dv: (b.v - a.v) / n,
		dw: (b.w - a.w) / n,
	}
}

// at returns the point on the edge i rows below origin.
func (e edge) at(origin scanVertex, i int) scanVertex {
	fi := float64(i)
	return scanVertex{
		x: int(float64(origin.x) + fi*e.dx),
		u: origin.u + fi*e.du,
		v: origin.v + fi*e.dv,
		w: origin.w + fi*e.dw,
	}
}

// scanRow interpolates attributes across [a.x, b.x) on row y.
func scanRow(y int, a, b scanVertex, frag func(x, y int, u, v, w float64)) {
	if a.x > b.x {
		a, b = b, a
	}
	if a.x == b.x {
		return
	}

	step := 1.0 / float64(b.x-a.x)
	t := 0.0
	for x := a.x; x < b.x; x++ {
		u := (1-t)*a.u + t*b.u
		v := (1-t)*a.v + t*b.v
		w := (1-t)*a.w + t*b.w
		frag(x, y, u, v, w)
		t += step
	}
}
