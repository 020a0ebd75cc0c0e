package main

import "github.com/charmbracelet/harmonica"

// Spin drives the model rotation angle. Toggling eases the rate toward the
// full speed or to rest with a critically damped spring instead of jumping.
type Spin struct {
	Rate float64 // Current radians per second

	speed  float64
	target float64
	accel  float64 // spring velocity of Rate
	spring harmonica.Spring
}

// NewSpin creates a spin already turning at speed radians per second,
// stepped once per frame at fps.
func NewSpin(speed float64, fps int) *Spin {
	return &Spin{
		Rate:   speed,
		speed:  speed,
		target: speed,
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Spinning reports whether the spin is heading toward full speed.
func (s *Spin) Spinning() bool {
	return s.target != 0
}

// Toggle starts or stops the spin.
func (s *Spin) Toggle() {
	if s.Spinning() {
		s.target = 0
	} else {
		s.target = s.speed
	}
}

// Advance steps the spring one frame and returns theta moved by dt seconds
// at the new rate.
func (s *Spin) Advance(theta, dt float64) float64 {
	s.Rate, s.accel = s.spring.Update(s.Rate, s.accel, s.target)
	return theta + s.Rate*dt
}
