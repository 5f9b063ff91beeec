package components

import (
	"image/color"
	"time"
)

// ParticleComponent represents a single hover-burst particle.
// Position lives in a separate PositionComponent; the ParticleSystem
// mutates velocity, Returning and Opacity every frame.
//
// Size, Color and the origin are fixed at spawn time.
type ParticleComponent struct {
	// Velocity (速度, 像素/帧)
	SpeedX float64
	SpeedY float64

	// Spawn point (生成位置，创建后不再修改)
	OriginalX float64
	OriginalY float64

	Color color.RGBA // Fill color
	Size  float64    // Circle radius in pixels, [2, 5)

	// Returning is true while the particle is inside the pointer's repulsion radius.
	// Nothing consumes it yet; it is kept as observable state.
	Returning bool

	// Opacity 0-1, derived from age each update
	Opacity float64

	// Lifecycle
	CreatedAt time.Time
	Lifetime  time.Duration
}

// Age returns how long the particle has been alive at now.
func (p *ParticleComponent) Age(now time.Time) time.Duration {
	return now.Sub(p.CreatedAt)
}

// IsDead reports whether the particle has outlived its lifetime.
// A particle whose age equals its lifetime is still alive.
func (p *ParticleComponent) IsDead(now time.Time) bool {
	return p.Age(now) > p.Lifetime
}
