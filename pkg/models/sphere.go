package models

import (
	"math"

	"github.com/Jailior/3dgraphicproject/pkg/math3d"
)

// NewSphere builds a UV sphere centered on the origin from rings×segments
// quads, two triangles each. Triangles face outward. Poles produce
// degenerate triangles, which the rasterizer skips.
func NewSphere(radius float64, rings, segments int) *Mesh {
	mesh := NewMesh("sphere")
	if rings < 1 || segments < 1 {
		return mesh
	}

	// (rings+1)×(segments+1) grid, theta from pole to pole
	grid := make([]math3d.Vec3, 0, (rings+1)*(segments+1))
	for i := 0; i <= rings; i++ {
		theta := float64(i) * math.Pi / float64(rings)
		sinT, cosT := math.Sincos(theta)
		for j := 0; j <= segments; j++ {
			phi := float64(j) * 2 * math.Pi / float64(segments)
			sinP, cosP := math.Sincos(phi)
			grid = append(grid, math3d.V3(
				radius*cosP*sinT,
				radius*sinP*sinT,
				radius*cosT,
			))
		}
	}

	for i := range rings {
		for j := range segments {
			first := i*(segments+1) + j
			second := first + segments + 1

			mesh.AddTriangle(Triangle{P: [3]math3d.Vec3{grid[first], grid[second], grid[first+1]}})
			mesh.AddTriangle(Triangle{P: [3]math3d.Vec3{grid[second], grid[second+1], grid[first+1]}})
		}
	}

	mesh.CalculateBounds()
	return mesh
}
