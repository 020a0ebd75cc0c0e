package render

import "github.com/Jailior/3dgraphicproject/pkg/math3d"

// Triangle is a render-ready triangle: three positions, three texture
// coordinates and a flat color.
type Triangle struct {
	P     [3]math3d.Vec4
	T     [3]math3d.TexCoord
	Color Color
}

// meanZ returns the average depth used for painter's sorting.
func (t *Triangle) meanZ() float64 {
	return (t.P[0].Z + t.P[1].Z + t.P[2].Z) / 3
}
