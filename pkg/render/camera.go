package render

import (
	"github.com/Jailior/3dgraphicproject/pkg/math3d"
)

// Camera is a first-person camera. It moves along its look direction,
// rises and sinks along world Y, and turns around the world Y axis.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Yaw is the rotation around the Y axis in radians.
	Yaw float64

	// LookDir is the unit direction derived from Yaw on the last Update.
	LookDir math3d.Vec3
}

// NewCamera creates a camera at the origin looking down +Z.
func NewCamera() *Camera {
	return &Camera{
		Position: math3d.Zero3(),
		LookDir:  math3d.Forward(),
	}
}

// Update applies held keys for a frame lasting dt seconds. Movement along
// the look direction uses the direction from the previous frame; the new
// LookDir is derived from the updated yaw afterward.
func (c *Camera) Update(keys KeyState, dt, moveSpeed, turnSpeed float64) {
	if keys.IsKeyHeld(KeyUp) {
		c.Position.Y += moveSpeed * dt
	}
	if keys.IsKeyHeld(KeyDown) {
		c.Position.Y -= moveSpeed * dt
	}

	forward := c.LookDir.Scale(moveSpeed * dt)
	if keys.IsKeyHeld(KeyForward) {
		c.Position = c.Position.Add(forward)
	}
	if keys.IsKeyHeld(KeyBack) {
		c.Position = c.Position.Sub(forward)
	}

	if keys.IsKeyHeld(KeyLeft) {
		c.Yaw -= turnSpeed * dt
	}
	if keys.IsKeyHeld(KeyRight) {
		c.Yaw += turnSpeed * dt
	}

	c.LookDir = math3d.RotateY(c.Yaw).MulVec3(math3d.Forward())
}

// Matrix returns the camera-to-world matrix.
func (c *Camera) Matrix() math3d.Mat4 {
	target := c.Position.Add(c.LookDir)
	return math3d.PointAt(c.Position, target, math3d.Up())
}

// ViewMatrix returns the world-to-camera matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return c.Matrix().QuickInverse()
}
