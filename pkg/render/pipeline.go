package render

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/Jailior/3dgraphicproject/pkg/math3d"
)

// ErrEmptySurface is returned when the target surface has no pixels.
var ErrEmptySurface = errors.New("render: surface has zero width or height")

// MeshRenderer is implemented by models.Mesh.
// This interface allows drawing meshes without importing the models package.
type MeshRenderer interface {
	TriangleCount() int
	GetTriangle(i int) (p [3]math3d.Vec3, uv [3]math3d.Vec2)
}

// Mode selects how projected triangles are drawn.
type Mode int

const (
	ModeTextured  Mode = iota // Perspective-correct texture mapping
	ModeSolid                 // Flat fill with the lit color
	ModeWireframe             // White triangle outlines
)

var modeNames = [...]string{"textured", "solid", "wireframe"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Next returns the mode after m, wrapping around.
func (m Mode) Next() Mode {
	return (m + 1) % Mode(len(modeNames))
}

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return ModeTextured, fmt.Errorf("unknown draw mode %q", s)
}

// Options configures a Pipeline.
type Options struct {
	FOV         float64     // Field of view in degrees
	Near        float64     // Near clipping plane (view space z)
	Far         float64     // Far plane used by the projection
	LightDir    math3d.Vec3 // Direction toward the light, normalized on use
	WorldOffset math3d.Vec3 // Translation applied after the model rotation
	Background  Color       // Clear color
	MoveSpeed   float64     // Camera units per second
	TurnSpeed   float64     // Camera radians per second
	Mode        Mode        // Initial draw mode
}

// DefaultOptions returns the standard pipeline settings.
func DefaultOptions() Options {
	return Options{
		FOV:         90,
		Near:        0.1,
		Far:         1000,
		LightDir:    math3d.V3(0, 1, 1),
		WorldOffset: math3d.V3(0, -5, 5),
		Background:  ColorDarkCyan,
		MoveSpeed:   8,
		TurnSpeed:   2,
		Mode:        ModeTextured,
	}
}

// Stats reports what happened during one frame.
type Stats struct {
	Submitted int // Mesh triangles considered
	Culled    int // Triangles facing away from the camera
	Projected int // Triangles in the render list after near clipping
	Rendered  int // Triangles handed to the rasterizer after screen clipping
}

// Pipeline turns a mesh, a camera and a texture into pixels each frame.
// It owns the depth buffer and scratch lists; Frame must be called from a
// single goroutine.
type Pipeline struct {
	// Camera is updated from input at the start of each frame.
	Camera *Camera

	// Theta is the model rotation angle in radians, advanced by the caller.
	Theta float64

	mesh   MeshRenderer
	tex    Sampler
	opts   Options
	raster Rasterizer
	light  math3d.Vec3

	width, height int
	depth         *DepthBuffer
	proj          math3d.Mat4
	screen        [4]Plane

	toRaster []Triangle
	clipped  []Triangle
	stats    Stats
}

// NewPipeline creates a pipeline for mesh. A nil tex samples as white.
func NewPipeline(mesh MeshRenderer, tex Sampler, opts Options) *Pipeline {
	if tex == nil {
		tex = NewSolidTexture(ColorWhite)
	}
	return &Pipeline{
		Camera: NewCamera(),
		mesh:   mesh,
		tex:    tex,
		opts:   opts,
		raster: NewScanline(),
		light:  opts.LightDir.Normalize(),
	}
}

// SetRasterizer replaces the rasterizer used to draw triangles.
func (p *Pipeline) SetRasterizer(r Rasterizer) {
	p.raster = r
}

// Mode returns the current draw mode.
func (p *Pipeline) Mode() Mode {
	return p.opts.Mode
}

// SetMode changes the draw mode.
func (p *Pipeline) SetMode(m Mode) {
	p.opts.Mode = m
}

// Options returns the pipeline settings.
func (p *Pipeline) Options() Options {
	return p.opts
}

// Resize prepares the depth buffer, projection and screen planes for a
// width×height surface. It is a no-op when the size is unchanged.
func (p *Pipeline) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrEmptySurface
	}
	if width == p.width && height == p.height && p.depth != nil {
		return nil
	}

	p.width, p.height = width, height
	p.depth = NewDepthBuffer(width, height)
	aspect := float64(height) / float64(width)
	p.proj = math3d.Projection(p.opts.FOV, aspect, p.opts.Near, p.opts.Far)
	p.screen = ScreenEdges(width, height)

	Logger().Info("render: resize", "width", width, "height", height, "aspect", aspect)
	return nil
}

// Depth returns the depth buffer from the last frame.
func (p *Pipeline) Depth() *DepthBuffer {
	return p.depth
}

// WorldMatrix returns the model transform for the current Theta.
func (p *Pipeline) WorldMatrix() math3d.Mat4 {
	return math3d.RotateZ(p.Theta * 0.5).
		Mul(math3d.RotateX(p.Theta)).
		Mul(math3d.Translate(p.opts.WorldOffset))
}

// Frame advances the camera by dt seconds of input and renders one frame
// onto dst.
func (p *Pipeline) Frame(dst Surface, keys KeyState, dt float64) (Stats, error) {
	if err := p.Resize(dst.Width(), dst.Height()); err != nil {
		return Stats{}, err
	}

	p.Camera.Update(keys, dt, p.opts.MoveSpeed, p.opts.TurnSpeed)

	p.Project()
	p.draw(dst)

	Logger().Debug("render: frame",
		"submitted", p.stats.Submitted,
		"culled", p.stats.Culled,
		"projected", p.stats.Projected,
		"rendered", p.stats.Rendered,
	)
	return p.stats, nil
}

// Project transforms, culls, lights, clips and projects every mesh triangle
// into screen space, sorted back to front. Resize must have been called.
// The returned slice is reused by the next call.
func (p *Pipeline) Project() []Triangle {
	p.stats = Stats{}
	p.toRaster = p.toRaster[:0]

	world := p.WorldMatrix()
	view := p.Camera.ViewMatrix()
	near := NearPlane(p.opts.Near)
	camPos := p.Camera.Position

	for i := range p.mesh.TriangleCount() {
		pos, uv := p.mesh.GetTriangle(i)
		p.stats.Submitted++

		var tri Triangle
		for k := range 3 {
			tri.P[k] = world.MulVec4(math3d.V4FromV3(pos[k], 1))
			tri.T[k] = math3d.TC(uv[k].X, uv[k].Y)
		}

		p0, p1, p2 := tri.P[0].Vec3(), tri.P[1].Vec3(), tri.P[2].Vec3()
		normal := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
		if normal.Dot(p0.Sub(camPos)) >= 0 {
			p.stats.Culled++
			continue
		}

		lum := math.Max(0.1, p.light.Dot(normal))
		tri.Color = MultiplyColor(ColorWhite, math.Max(lum, 0.2))

		for k := range 3 {
			tri.P[k] = view.MulVec4(tri.P[k])
		}

		clipped, n := near.ClipTriangle(tri)
		for _, c := range clipped[:n] {
			p.toRaster = append(p.toRaster, p.toScreen(c))
		}
	}

	slices.SortStableFunc(p.toRaster, func(a, b Triangle) int {
		return cmp.Compare(b.meanZ(), a.meanZ())
	})
	p.stats.Projected = len(p.toRaster)
	return p.toRaster
}

// toScreen projects a view-space triangle and maps it to pixel coordinates.
// Texture coordinates are divided by w first so they interpolate linearly
// in screen space.
func (p *Pipeline) toScreen(tri Triangle) Triangle {
	halfW := 0.5 * float64(p.width)
	halfH := 0.5 * float64(p.height)

	for k := range 3 {
		v := p.proj.MulVec4(tri.P[k])
		if v.W != 0 {
			tri.T[k].U /= v.W
			tri.T[k].V /= v.W
			tri.T[k].W = 1 / v.W
		}
		v = v.PerspectiveDivide()

		// Projected X and Y point the wrong way for the screen
		v.X = (-v.X + 1) * halfW
		v.Y = (-v.Y + 1) * halfH
		tri.P[k] = v
	}
	return tri
}

// draw clears dst and rasterizes the render list.
func (p *Pipeline) draw(dst Surface) {
	dst.FillRect(0, 0, p.width, p.height, p.opts.Background)
	p.depth.Reset()

	for _, tri := range p.toRaster {
		p.clipped = ClipQueue(p.clipped[:0], tri, p.screen[:])
		p.stats.Rendered += len(p.clipped)

		for _, t := range p.clipped {
			switch p.opts.Mode {
			case ModeSolid:
				p.raster.FillSolid(dst, p.depth, t)
			case ModeWireframe:
				p.raster.DrawWireframe(dst, t, ColorWhite)
			default:
				p.raster.FillTextured(dst, p.depth, t, p.tex)
			}
		}
	}
}
