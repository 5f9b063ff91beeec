package systems

import (
	"image/color"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/hoverburst/pkg/components"
	"github.com/decker502/hoverburst/pkg/config"
	"github.com/decker502/hoverburst/pkg/ecs"
)

// TestParticleSystem_ExplodeSpawnsBurst tests that one burst adds exactly 50 particles at the event point
func TestParticleSystem_ExplodeSpawnsBurst(t *testing.T) {
	clock := newFakeClock()
	em := ecs.NewEntityManager()
	red := color.RGBA{R: 255, A: 255}
	ps := NewParticleSystem(em, ParticleSystemOptions{
		Color: red,
		Clock: clock.Now,
		Rand:  rand.New(rand.NewSource(7)).Float64,
	})

	spawned := ps.Explode(320, 240)

	assert.Equal(t, config.BurstParticleCount, spawned)
	require.Equal(t, 50, ps.Count())
	for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](em) {
		p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

		assert.Equal(t, 320.0, pos.X)
		assert.Equal(t, 240.0, pos.Y)
		assert.Equal(t, red, p.Color)
		assert.GreaterOrEqual(t, p.Size, 2.0)
		assert.Less(t, p.Size, 5.0)
		assert.Equal(t, 1.0, p.Opacity)
		assert.Zero(t, p.Age(clock.Now()))
	}
}

// TestParticleSystem_DefaultColorIsOpaqueBlack tests the zero-value option fallback
func TestParticleSystem_DefaultColorIsOpaqueBlack(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, ParticleSystemOptions{Rand: centered})
	ps.Explode(0, 0)

	id := ecs.GetEntitiesWith1[*components.ParticleComponent](em)[0]
	p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
	assert.Equal(t, color.RGBA{A: 255}, p.Color)
}

// TestParticleSystem_SpeedClamped tests that every speed component stays in [-4, 4] after each update
func TestParticleSystem_SpeedClamped(t *testing.T) {
	clock := newFakeClock()
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, ParticleSystemOptions{
		Clock: clock.Now,
		Rand:  rand.New(rand.NewSource(42)).Float64,
	})
	ps.Resize(800, 600)
	ps.Start()

	// 初速超限的粒子，以及紧贴指针、紧贴边界的粒子
	addParticle(em, clock.Now(), 400, 300, 10, -10)
	addParticle(em, clock.Now(), 799, 1, 4, -4)
	ps.OnPointerMove(402, 300)
	ps.Explode(400, 300)

	for tick := 0; tick < 120; tick++ {
		clock.Advance(16 * time.Millisecond)
		ps.Update()

		for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](em) {
			p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
			require.LessOrEqual(t, math.Abs(p.SpeedX), config.ParticleMaxSpeed, "tick %d entity %d", tick, id)
			require.LessOrEqual(t, math.Abs(p.SpeedY), config.ParticleMaxSpeed, "tick %d entity %d", tick, id)
		}
	}
}

// TestParticleSystem_OpacityFades tests that opacity never increases and reaches 0 at the lifetime
func TestParticleSystem_OpacityFades(t *testing.T) {
	clock := newFakeClock()
	em, ps := newTestParticleSystem(clock)
	ps.OnPointerMove(-1000, -1000)
	_, p, _ := addParticle(em, clock.Now(), 400, 300, 0, 0)

	last := p.Opacity
	for elapsed := 100 * time.Millisecond; elapsed <= config.ParticleLifetime; elapsed += 100 * time.Millisecond {
		clock.Advance(100 * time.Millisecond)
		ps.Update()

		assert.LessOrEqual(t, p.Opacity, last, "elapsed %v", elapsed)
		assert.InDelta(t, 1-float64(elapsed)/float64(config.ParticleLifetime), p.Opacity, 1e-9)
		last = p.Opacity
	}

	assert.Equal(t, 0.0, p.Opacity)
}

// TestParticleSystem_Repulsion tests that a particle near the pointer is pushed away from it
func TestParticleSystem_Repulsion(t *testing.T) {
	clock := newFakeClock()
	em, ps := newTestParticleSystem(clock)
	_, p, pos := addParticle(em, clock.Now(), 400, 300, 0, 0)

	// 指针在粒子右下方 50 像素处
	ps.OnPointerMove(430, 340)
	awayX, awayY := pos.X-430, pos.Y-340
	norm := math.Hypot(awayX, awayY)
	before := (p.SpeedX*awayX + p.SpeedY*awayY) / norm

	ps.Update()

	after := (p.SpeedX*awayX + p.SpeedY*awayY) / norm
	assert.True(t, p.Returning)
	assert.Greater(t, after, before)
	assert.InDelta(t, config.RepulsionForce, after, 1e-9)
	assert.Less(t, p.SpeedX, 0.0)
	assert.Less(t, p.SpeedY, 0.0)
}

// TestParticleSystem_NoRepulsionOutsideRadius tests the radius boundary
func TestParticleSystem_NoRepulsionOutsideRadius(t *testing.T) {
	clock := newFakeClock()
	em, ps := newTestParticleSystem(clock)
	_, p, _ := addParticle(em, clock.Now(), 400, 300, 1, 0)

	// 移动后粒子位于 (401, 300)，距离恰为 100，不触发排斥
	ps.OnPointerMove(501, 300)
	ps.Update()

	assert.False(t, p.Returning)
	assert.Equal(t, 1.0, p.SpeedX)
	assert.Equal(t, 0.0, p.SpeedY)
}

// TestParticleSystem_ReturningClearsWhenPointerLeaves tests that Returning is recomputed every frame
func TestParticleSystem_ReturningClearsWhenPointerLeaves(t *testing.T) {
	clock := newFakeClock()
	em, ps := newTestParticleSystem(clock)
	_, p, _ := addParticle(em, clock.Now(), 400, 300, 0, 0)

	ps.OnPointerMove(410, 300)
	ps.Update()
	require.True(t, p.Returning)

	ps.OnPointerMove(1000, 1000)
	ps.Update()
	assert.False(t, p.Returning)
}

// TestParticleSystem_EdgeBounce tests that crossing a viewport edge inverts the matching speed component
func TestParticleSystem_EdgeBounce(t *testing.T) {
	tests := []struct {
		name           string
		x, y           float64
		speedX, speedY float64
		wantX, wantY   float64 // position after the update
		wantVX, wantVY float64
	}{
		{"right edge", 798, 300, 4, 0, 802, 300, -4, 0},
		{"left edge", 2, 300, -4, 0, -2, 300, 4, 0},
		{"bottom edge", 400, 598, 0, 3, 400, 601, 0, -3},
		{"top edge", 400, 1, 0, -2, 400, -1, 0, 2},
		{"corner", 799, 599, 2, 2, 801, 601, -2, -2},
		{"inside", 400, 300, 3, -3, 403, 297, 3, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			em, ps := newTestParticleSystem(clock)
			ps.OnPointerMove(-1000, -1000)
			_, p, pos := addParticle(em, clock.Now(), tt.x, tt.y, tt.speedX, tt.speedY)

			ps.Update()

			// 反弹发生在移动之后，本帧粒子仍停留在画布外
			assert.Equal(t, tt.wantX, pos.X)
			assert.Equal(t, tt.wantY, pos.Y)
			assert.Equal(t, tt.wantVX, p.SpeedX)
			assert.Equal(t, tt.wantVY, p.SpeedY)
		})
	}
}

// TestParticleSystem_EdgeBounceTrajectory tests that a particle heading past the right edge comes back
func TestParticleSystem_EdgeBounceTrajectory(t *testing.T) {
	clock := newFakeClock()
	em, ps := newTestParticleSystem(clock)
	ps.OnPointerMove(1000, 1000)
	_, p, pos := addParticle(em, clock.Now(), 700, 100, 4, 0)

	bounces := 0
	for tick := 0; tick < 50; tick++ {
		before := p.SpeedX
		clock.Advance(16 * time.Millisecond)
		ps.Update()
		if math.Signbit(before) != math.Signbit(p.SpeedX) {
			bounces++
		}
	}

	assert.Equal(t, 1, bounces)
	assert.Equal(t, -4.0, p.SpeedX)
	assert.Equal(t, 708.0, pos.X)
}

// TestParticleSystem_EndToEnd follows a single particle heading right until it expires
func TestParticleSystem_EndToEnd(t *testing.T) {
	clock := newFakeClock()
	em, ps := newTestParticleSystem(clock)
	ps.OnPointerMove(1000, 1000)
	id, p, pos := addParticle(em, clock.Now(), 700, 100, 4, 0)
	surface := &recordingSurface{}

	const frame = 16 * time.Millisecond
	bounces := 0
	step := func() {
		before := p.SpeedX
		clock.Advance(frame)
		ps.Animate(surface)
		if math.Signbit(before) != math.Signbit(p.SpeedX) {
			bounces++
		}
	}

	for tick := 1; tick <= 50; tick++ {
		step()
	}

	// 第 26 帧到达 x=804 后反弹，之后每帧向左移动 4
	assert.Equal(t, 1, bounces)
	assert.Equal(t, -4.0, p.SpeedX)
	assert.Equal(t, 708.0, pos.X)
	assert.Equal(t, 100.0, pos.Y)
	assert.False(t, p.Returning)
	assert.Len(t, surface.calls, 1)

	removedAt := 0
	for tick := 51; tick <= 400 && removedAt == 0; tick++ {
		step()
		if !ecs.HasComponent[*components.ParticleComponent](em, id) {
			removedAt = tick
		}
	}

	// 第一个满足 age > 3000ms 的帧：188 * 16ms = 3008ms
	assert.Equal(t, 188, removedAt)
	assert.Equal(t, 1, bounces)
	assert.Equal(t, 156.0, pos.X)
	assert.Zero(t, ps.Count())
	assert.Empty(t, surface.calls)
}

// TestParticleSystem_AliveAtExactLifetime tests that age == lifetime keeps the particle
func TestParticleSystem_AliveAtExactLifetime(t *testing.T) {
	clock := newFakeClock()
	em, ps := newTestParticleSystem(clock)
	id, _, _ := addParticle(em, clock.Now(), 400, 300, 0, 0)

	clock.Advance(config.ParticleLifetime)
	assert.Zero(t, ps.Update())
	assert.True(t, ecs.HasComponent[*components.ParticleComponent](em, id))

	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, ps.Update())
	assert.False(t, ecs.HasComponent[*components.ParticleComponent](em, id))
}

// TestParticleSystem_Draw tests that Draw clears the surface and paints every particle without mutating it
func TestParticleSystem_Draw(t *testing.T) {
	clock := newFakeClock()
	em, ps := newTestParticleSystem(clock)
	_, p, _ := addParticle(em, clock.Now(), 10, 20, 1, 1)
	p.Opacity = 0.25
	snapshot := *p
	surface := &recordingSurface{}

	ps.Draw(surface)

	assert.Equal(t, 1, surface.clears)
	require.Len(t, surface.calls, 1)
	assert.Equal(t, drawCall{X: 10, Y: 20, Radius: 3, Color: color.RGBA{A: 255}, Alpha: 0.25}, surface.calls[0])
	assert.Equal(t, snapshot, *p)
}

// TestParticleSystem_StoppedDoesNothing tests the Start/Stop lifecycle gate
func TestParticleSystem_StoppedDoesNothing(t *testing.T) {
	clock := newFakeClock()
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, ParticleSystemOptions{Clock: clock.Now, Rand: centered})
	ps.Resize(800, 600)
	_, _, pos := addParticle(em, clock.Now(), 100, 100, 2, 0)
	surface := &recordingSurface{}

	require.False(t, ps.Running())
	ps.Animate(surface)
	assert.Zero(t, surface.clears)
	assert.Equal(t, 100.0, pos.X)

	ps.Start()
	require.True(t, ps.Running())
	ps.Animate(surface)
	assert.Equal(t, 1, surface.clears)
	assert.Equal(t, 102.0, pos.X)

	ps.Stop()
	clock.Advance(time.Hour)
	assert.Zero(t, ps.Update())
	assert.Equal(t, 1, ps.Count(), "stopped system keeps its particles")
}

// TestParticleSystem_MaxParticlesEvictsOldest tests the live particle cap
func TestParticleSystem_MaxParticlesEvictsOldest(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, ParticleSystemOptions{MaxParticles: 120, Rand: centered})

	ps.Explode(10, 10)
	ps.Explode(20, 20)
	first := ecs.GetEntitiesWith1[*components.ParticleComponent](em)
	ps.Explode(30, 30)

	ids := ecs.GetEntitiesWith1[*components.ParticleComponent](em)
	require.Len(t, ids, 120)
	// 最早的 30 个粒子被淘汰
	assert.Equal(t, first[30:], ids[:70])
	for _, id := range first[:30] {
		assert.False(t, ecs.HasComponent[*components.ParticleComponent](em, id))
	}
}

// TestParticleSystem_SmallCapKeepsWholeBurst tests that a cap below one burst is raised to the burst size
func TestParticleSystem_SmallCapKeepsWholeBurst(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, ParticleSystemOptions{MaxParticles: 10, Rand: centered})

	assert.Equal(t, config.BurstParticleCount, ps.Explode(10, 10))
	assert.Equal(t, config.BurstParticleCount, ps.Count())

	// 第二次爆发淘汰上一批，新粒子全部保留
	first := ecs.GetEntitiesWith1[*components.ParticleComponent](em)
	assert.Equal(t, config.BurstParticleCount, ps.Explode(20, 20))
	ids := ecs.GetEntitiesWith1[*components.ParticleComponent](em)
	require.Len(t, ids, config.BurstParticleCount)
	for _, id := range first {
		assert.False(t, ecs.HasComponent[*components.ParticleComponent](em, id))
	}
	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		assert.Equal(t, 20.0, pos.X)
	}
}

// TestParticleSystem_BurstInterval tests hover-enter debouncing
func TestParticleSystem_BurstInterval(t *testing.T) {
	clock := newFakeClock()
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, ParticleSystemOptions{
		BurstInterval: 500 * time.Millisecond,
		Clock:         clock.Now,
		Rand:          centered,
	})

	assert.Equal(t, 50, ps.Explode(0, 0))
	assert.Zero(t, ps.Explode(0, 0))

	clock.Advance(250 * time.Millisecond)
	assert.Zero(t, ps.Explode(0, 0))

	clock.Advance(250 * time.Millisecond)
	assert.Equal(t, 50, ps.Explode(0, 0))
	assert.Equal(t, 100, ps.Count())
}

// TestParticleSystem_UnboundedBurstsWithoutInterval tests that bursts are not rate-limited by default
func TestParticleSystem_UnboundedBurstsWithoutInterval(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, ParticleSystemOptions{Rand: centered})

	for i := 0; i < 5; i++ {
		ps.OnHoverEnter(1, 1)
		ps.OnHoverLeave()
	}
	assert.Equal(t, 250, ps.Count())
	assert.False(t, ps.Hovering())
}

// TestParticleSystem_PointerAndViewport tests that pointer and viewport setters are observable
func TestParticleSystem_PointerAndViewport(t *testing.T) {
	ps := NewParticleSystem(ecs.NewEntityManager(), ParticleSystemOptions{})

	ps.OnPointerMove(12, 34)
	ps.Resize(1024, 768)

	x, y := ps.Pointer()
	w, h := ps.Viewport()
	assert.Equal(t, [2]float64{12, 34}, [2]float64{x, y})
	assert.Equal(t, [2]float64{1024, 768}, [2]float64{w, h})
}
