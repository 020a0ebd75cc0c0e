// Package models provides triangle meshes and the loaders that build them.
package models

import (
	"math"

	"github.com/Jailior/3dgraphicproject/pkg/math3d"
)

// Triangle is one independent mesh triangle. Winding is counter-clockwise
// when viewed from the front.
type Triangle struct {
	P  [3]math3d.Vec3 // Model-space positions
	UV [3]math3d.Vec2 // Texture coordinates, zero when the source has none
}

// Mesh is an ordered list of independent triangles.
type Mesh struct {
	Name      string
	Triangles []Triangle

	// HasTexCoords reports whether UVs came from the source data.
	HasTexCoords bool

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Triangles: make([]Triangle, 0),
	}
}

// AddTriangle appends a triangle.
func (m *Mesh) AddTriangle(t Triangle) {
	m.Triangles = append(m.Triangles, t)
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Triangles) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}

	m.BoundsMin = m.Triangles[0].P[0]
	m.BoundsMax = m.Triangles[0].P[0]

	for _, t := range m.Triangles {
		for _, p := range t.P {
			m.BoundsMin = m.BoundsMin.Min(p)
			m.BoundsMax = m.BoundsMax.Max(p)
		}
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
// Implements render.MeshRenderer interface.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// GetTriangle returns the positions and UVs of triangle i.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetTriangle(i int) (p [3]math3d.Vec3, uv [3]math3d.Vec2) {
	t := m.Triangles[i]
	return t.P, t.UV
}

// Transform applies a transformation matrix to all positions.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Triangles {
		for k := range 3 {
			m.Triangles[i].P[k] = mat.MulVec3(m.Triangles[i].P[k])
		}
	}
	m.CalculateBounds()
}

// Fit centers the mesh on the origin and scales it uniformly so its largest
// dimension equals size. Empty or flat-point meshes are left alone.
func (m *Mesh) Fit(size float64) {
	m.CalculateBounds()
	dims := m.Size()
	maxDim := math.Max(dims.X, math.Max(dims.Y, dims.Z))
	if maxDim <= 0 {
		return
	}

	s := size / maxDim
	m.Transform(math3d.Translate(m.Center().Negate()).Mul(math3d.Scale(math3d.V3(s, s, s))))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:         m.Name,
		Triangles:    make([]Triangle, len(m.Triangles)),
		HasTexCoords: m.HasTexCoords,
		BoundsMin:    m.BoundsMin,
		BoundsMax:    m.BoundsMax,
	}
	copy(clone.Triangles, m.Triangles)
	return clone
}
