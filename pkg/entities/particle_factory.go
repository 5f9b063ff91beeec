package entities

import (
	"image/color"
	"time"

	"github.com/decker502/hoverburst/pkg/components"
	"github.com/decker502/hoverburst/pkg/config"
	"github.com/decker502/hoverburst/pkg/ecs"
)

// CreateParticle creates one hover-burst particle entity at (x, y).
//
// Parameters:
//   - em: EntityManager that owns the particle
//   - x, y: spawn position in screen pixels
//   - clr: fill color
//   - now: creation timestamp, the start of the particle's lifetime
//   - randFloat: uniform source in [0, 1), consumed three times (size, speedX, speedY)
//
// Returns the new entity's ID.
func CreateParticle(em *ecs.EntityManager, x, y float64, clr color.RGBA, now time.Time, randFloat func() float64) ecs.EntityID {
	size := config.ParticleMinSize + randFloat()*config.ParticleSizeRange
	speedX := randFloat()*2*config.ParticleInitialSpeed - config.ParticleInitialSpeed
	speedY := randFloat()*2*config.ParticleInitialSpeed - config.ParticleInitialSpeed

	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.ParticleComponent{
		SpeedX:    speedX,
		SpeedY:    speedY,
		OriginalX: x,
		OriginalY: y,
		Color:     clr,
		Size:      size,
		Opacity:   1,
		CreatedAt: now,
		Lifetime:  config.ParticleLifetime,
	})

	return id
}

// CreateBurst creates count particles at the same point and returns their IDs
// in creation order.
func CreateBurst(em *ecs.EntityManager, count int, x, y float64, clr color.RGBA, now time.Time, randFloat func() float64) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, count)
	for i := 0; i < count; i++ {
		ids = append(ids, CreateParticle(em, x, y, clr, now, randFloat))
	}
	return ids
}
