package systems

import (
	"image/color"
	"time"

	"github.com/decker502/hoverburst/pkg/components"
	"github.com/decker502/hoverburst/pkg/ecs"
)

var testEpoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// fakeClock 是可手动推进的时钟
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: testEpoch}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// centered 随机源：返回 0.5，使漂移噪声为 0
func centered() float64 { return 0.5 }

// drawCall 记录一次 FillCircle 调用
type drawCall struct {
	X, Y, Radius float64
	Color        color.RGBA
	Alpha        float64
}

// recordingSurface 记录绘制调用
type recordingSurface struct {
	clears int
	calls  []drawCall
}

func (s *recordingSurface) Clear() {
	s.clears++
	s.calls = s.calls[:0]
}

func (s *recordingSurface) FillCircle(x, y, radius float64, clr color.RGBA, alpha float64) {
	s.calls = append(s.calls, drawCall{X: x, Y: y, Radius: radius, Color: clr, Alpha: alpha})
}

// fakePointer 是可手动设置位置的指针源
type fakePointer struct {
	x, y int
}

func (p *fakePointer) PointerPosition() (int, int) { return p.x, p.y }

// newTestParticleSystem 创建已启动、视口 800x600、无噪声的粒子系统
func newTestParticleSystem(clock *fakeClock) (*ecs.EntityManager, *ParticleSystem) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, ParticleSystemOptions{
		Clock: clock.Now,
		Rand:  centered,
	})
	ps.Resize(800, 600)
	ps.Start()
	return em, ps
}

// addParticle 直接放置一个粒子，便于精确控制初始状态
func addParticle(em *ecs.EntityManager, now time.Time, x, y, speedX, speedY float64) (ecs.EntityID, *components.ParticleComponent, *components.PositionComponent) {
	id := em.CreateEntity()
	pos := &components.PositionComponent{X: x, Y: y}
	p := &components.ParticleComponent{
		SpeedX:    speedX,
		SpeedY:    speedY,
		OriginalX: x,
		OriginalY: y,
		Color:     color.RGBA{A: 255},
		Size:      3,
		Opacity:   1,
		CreatedAt: now,
		Lifetime:  3000 * time.Millisecond,
	}
	em.AddComponent(id, pos)
	em.AddComponent(id, p)
	return id, p, pos
}
