package systems

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/decker502/hoverburst/pkg/components"
	"github.com/decker502/hoverburst/pkg/config"
	"github.com/decker502/hoverburst/pkg/ecs"
	"github.com/decker502/hoverburst/pkg/entities"
	"github.com/decker502/hoverburst/pkg/observability"
)

// ParticleSystemOptions configures a ParticleSystem.
// Zero values fall back to the defaults noted on each field.
type ParticleSystemOptions struct {
	// Color of every spawned particle (default opaque black).
	Color color.RGBA
	// MaxParticles caps the live particle count; the oldest particles are
	// evicted when a burst would exceed it (default config.DefaultMaxParticles).
	// Values below config.BurstParticleCount are raised to it.
	MaxParticles int
	// BurstInterval is the minimum time between two bursts. 0 disables debouncing.
	BurstInterval time.Duration
	// Clock returns the current time (default time.Now).
	Clock func() time.Time
	// Rand returns uniform values in [0, 1) (default a time-seeded math/rand source).
	Rand func() float64
	// Logger (default observability.GetLogger()).
	Logger *zap.Logger
}

// ParticleSystem owns the live hover-burst particles and the pointer state
// they react to. It spawns bursts on hover-enter, advances every particle
// once per frame, draws them and removes the expired ones.
//
// Construction has no side effects: nothing happens until Start is called,
// and the host drives frames by calling Animate (or Update and Draw).
//
// All methods must be called from the frame loop goroutine.
type ParticleSystem struct {
	EntityManager *ecs.EntityManager

	logger       *zap.Logger
	clock        func() time.Time
	randFloat    func() float64
	color        color.RGBA
	maxParticles int
	limiter      *rate.Limiter // nil 表示不限制爆发频率

	mouseX, mouseY float64
	hovering       bool
	width, height  float64
	running        bool
}

// NewParticleSystem creates a stopped ParticleSystem.
func NewParticleSystem(em *ecs.EntityManager, opts ParticleSystemOptions) *ParticleSystem {
	ps := &ParticleSystem{
		EntityManager: em,
		logger:        opts.Logger,
		clock:         opts.Clock,
		randFloat:     opts.Rand,
		color:         opts.Color,
		maxParticles:  opts.MaxParticles,
	}

	if ps.logger == nil {
		ps.logger = observability.GetLogger()
	}
	ps.logger = ps.logger.Named("ParticleSystem")
	if ps.clock == nil {
		ps.clock = time.Now
	}
	if ps.randFloat == nil {
		ps.randFloat = rand.New(rand.NewSource(time.Now().UnixNano())).Float64
	}
	if ps.color == (color.RGBA{}) {
		ps.color = color.RGBA{A: 255}
	}
	if ps.maxParticles <= 0 {
		ps.maxParticles = config.DefaultMaxParticles
	}
	// 一次爆发必须完整保留
	ps.maxParticles = max(ps.maxParticles, config.BurstParticleCount)
	if opts.BurstInterval > 0 {
		ps.limiter = rate.NewLimiter(rate.Every(opts.BurstInterval), 1)
	}

	return ps
}

// Start enables frame processing.
func (ps *ParticleSystem) Start() {
	if ps.running {
		return
	}
	ps.running = true
	ps.logger.Info("started", zap.Float64("width", ps.width), zap.Float64("height", ps.height))
}

// Stop halts frame processing. Live particles are kept and resume on Start.
func (ps *ParticleSystem) Stop() {
	if !ps.running {
		return
	}
	ps.running = false
	ps.logger.Info("stopped", zap.Int("particles", ps.Count()))
}

// Running reports whether frames are being processed.
func (ps *ParticleSystem) Running() bool {
	return ps.running
}

// Resize records the new viewport size used for edge bounces.
func (ps *ParticleSystem) Resize(width, height int) {
	ps.width = float64(width)
	ps.height = float64(height)
	ps.logger.Debug("resize", zap.Int("width", width), zap.Int("height", height))
}

// Viewport returns the current viewport size.
func (ps *ParticleSystem) Viewport() (width, height float64) {
	return ps.width, ps.height
}

// OnPointerMove records the pointer position.
func (ps *ParticleSystem) OnPointerMove(x, y float64) {
	ps.mouseX = x
	ps.mouseY = y
}

// Pointer returns the last recorded pointer position.
func (ps *ParticleSystem) Pointer() (x, y float64) {
	return ps.mouseX, ps.mouseY
}

// OnHoverEnter marks the trigger as hovered and spawns a burst at (x, y).
func (ps *ParticleSystem) OnHoverEnter(x, y float64) {
	ps.hovering = true
	ps.Explode(x, y)
}

// OnHoverLeave clears the hover flag.
func (ps *ParticleSystem) OnHoverLeave() {
	ps.hovering = false
}

// Hovering reports whether the pointer is over the trigger.
func (ps *ParticleSystem) Hovering() bool {
	return ps.hovering
}

// Explode spawns config.BurstParticleCount particles at (x, y) and returns
// how many were spawned. It returns 0 when the burst is debounced.
func (ps *ParticleSystem) Explode(x, y float64) int {
	now := ps.clock()
	if ps.limiter != nil && !ps.limiter.AllowN(now, 1) {
		ps.logger.Debug("burst debounced", zap.Float64("x", x), zap.Float64("y", y))
		return 0
	}

	entities.CreateBurst(ps.EntityManager, config.BurstParticleCount, x, y, ps.color, now, ps.randFloat)
	evicted := ps.evictOldest()

	ps.logger.Debug("burst",
		zap.Float64("x", x),
		zap.Float64("y", y),
		zap.Int("spawned", config.BurstParticleCount),
		zap.Int("evicted", evicted),
		zap.Int("live", ps.Count()))
	return config.BurstParticleCount
}

// evictOldest 删除超出上限的最旧粒子，返回删除数量
func (ps *ParticleSystem) evictOldest() int {
	ids := ecs.GetEntitiesWith1[*components.ParticleComponent](ps.EntityManager)
	excess := len(ids) - ps.maxParticles
	if excess <= 0 {
		return 0
	}

	// ID 按创建顺序排列，前 excess 个即最旧的粒子
	for _, id := range ids[:excess] {
		ps.EntityManager.DestroyEntity(id)
	}
	ps.EntityManager.RemoveMarkedEntities()
	return excess
}

// Count returns the number of live particles.
func (ps *ParticleSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.ParticleComponent](ps.EntityManager))
}

// Animate runs one full frame: advance and cull, then redraw onto surface.
// It does nothing while the system is stopped.
func (ps *ParticleSystem) Animate(surface Surface) {
	if !ps.running {
		return
	}
	ps.Update()
	ps.Draw(surface)
}

// Update advances every particle against the pointer position and removes
// the particles whose lifetime has expired. It returns the number removed.
func (ps *ParticleSystem) Update() int {
	if !ps.running {
		return 0
	}

	// 指针位置每帧只读取一次，帧内所有粒子使用同一快照
	pointerX, pointerY := ps.mouseX, ps.mouseY
	now := ps.clock()

	for _, id := range ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](ps.EntityManager) {
		particle, _ := ecs.GetComponent[*components.ParticleComponent](ps.EntityManager, id)
		position, _ := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, id)

		ps.updateParticle(particle, position, pointerX, pointerY, now)

		if particle.IsDead(now) {
			ps.EntityManager.DestroyEntity(id)
		}
	}

	removed := ps.EntityManager.RemoveMarkedEntities()
	if removed > 0 {
		ps.logger.Debug("culled", zap.Int("removed", removed), zap.Int("live", ps.Count()))
	}
	return removed
}

// updateParticle advances a single particle by one frame.
func (ps *ParticleSystem) updateParticle(p *components.ParticleComponent, pos *components.PositionComponent, pointerX, pointerY float64, now time.Time) {
	// 1. 透明度随年龄线性衰减
	p.Opacity = math.Max(0, 1-float64(p.Age(now))/float64(p.Lifetime))

	// 2. 随机漂移
	p.SpeedX += (ps.randFloat() - 0.5) * 2 * config.ParticleDriftAmplitude
	p.SpeedY += (ps.randFloat() - 0.5) * 2 * config.ParticleDriftAmplitude

	// 3. 限速
	p.SpeedX = clampSpeed(p.SpeedX)
	p.SpeedY = clampSpeed(p.SpeedY)

	// 4. 移动
	pos.X += p.SpeedX
	pos.Y += p.SpeedY

	// 5. 指针排斥：冲量方向背离指针
	dx := pointerX - pos.X
	dy := pointerY - pos.Y
	if math.Hypot(dx, dy) < config.RepulsionRadius {
		p.Returning = true
		angle := math.Atan2(dy, dx)
		p.SpeedX = clampSpeed(p.SpeedX - math.Cos(angle)*config.RepulsionForce)
		p.SpeedY = clampSpeed(p.SpeedY - math.Sin(angle)*config.RepulsionForce)
	} else {
		p.Returning = false
	}

	// 6. 边界反弹：在移动之后检查，粒子可能在画布外停留一帧
	if pos.X < 0 || pos.X > ps.width {
		p.SpeedX = -p.SpeedX
	}
	if pos.Y < 0 || pos.Y > ps.height {
		p.SpeedY = -p.SpeedY
	}
}

func clampSpeed(v float64) float64 {
	return math.Max(math.Min(v, config.ParticleMaxSpeed), -config.ParticleMaxSpeed)
}

// Draw clears surface and draws every live particle at its current opacity.
func (ps *ParticleSystem) Draw(surface Surface) {
	surface.Clear()

	for _, id := range ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](ps.EntityManager) {
		particle, _ := ecs.GetComponent[*components.ParticleComponent](ps.EntityManager, id)
		position, _ := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, id)
		drawParticle(surface, particle, position)
	}
}

// drawParticle renders one particle without mutating it.
func drawParticle(surface Surface, p *components.ParticleComponent, pos *components.PositionComponent) {
	surface.FillCircle(pos.X, pos.Y, p.Size, p.Color, p.Opacity)
}
