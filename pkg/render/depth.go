package render

// DepthBuffer stores, per pixel, the perspective weight w of the nearest
// fragment drawn so far. Larger w is closer; 0 means empty.
type DepthBuffer struct {
	width  int
	height int
	data   []float64
}

// NewDepthBuffer allocates a cleared depth buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	return &DepthBuffer{
		width:  width,
		height: height,
		data:   make([]float64, width*height),
	}
}

// Width returns the buffer width.
func (d *DepthBuffer) Width() int { return d.width }

// Height returns the buffer height.
func (d *DepthBuffer) Height() int { return d.height }

// Reset clears every entry to 0.
func (d *DepthBuffer) Reset() {
	clear(d.data)
}

// At returns the stored depth, or 0 outside the buffer.
func (d *DepthBuffer) At(x, y int) float64 {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return 0
	}
	return d.data[y*d.width+x]
}

// TestAndSet stores w at (x, y) if it is nearer than the current entry and
// reports whether it did. Out-of-bounds writes are rejected.
func (d *DepthBuffer) TestAndSet(x, y int, w float64) bool {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return false
	}
	i := y*d.width + x
	if w > d.data[i] {
		d.data[i] = w
		return true
	}
	return false
}
