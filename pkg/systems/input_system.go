package systems

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/decker502/hoverburst/pkg/components"
	"github.com/decker502/hoverburst/pkg/ecs"
	"github.com/decker502/hoverburst/pkg/observability"
)

// ErrNoTrigger 表示找不到悬停触发实体，系统无法启动
var ErrNoTrigger = errors.New("hover trigger entity not found")

// PointerSource 提供当前指针位置（屏幕坐标）
type PointerSource interface {
	PointerPosition() (x, y int)
}

// InputSystem 每帧轮询指针和视口，转换为 ParticleSystem 的输入事件：
// 视口变化 -> Resize，指针移动 -> OnPointerMove，
// 进入/离开触发区域 -> OnHoverEnter/OnHoverLeave
type InputSystem struct {
	entityManager *ecs.EntityManager
	particles     *ParticleSystem
	labels        *LabelSystem // 可为 nil
	pointer       PointerSource
	triggerID     ecs.EntityID
	logger        *zap.Logger

	lastX, lastY          int
	hasPointer            bool
	viewWidth, viewHeight int
}

// NewInputSystem 创建输入系统
// triggerID 必须拥有 HoverTriggerComponent，否则返回 ErrNoTrigger
func NewInputSystem(em *ecs.EntityManager, ps *ParticleSystem, ls *LabelSystem, pointer PointerSource, triggerID ecs.EntityID) (*InputSystem, error) {
	if !ecs.HasComponent[*components.HoverTriggerComponent](em, triggerID) {
		return nil, fmt.Errorf("entity %d: %w", triggerID, ErrNoTrigger)
	}

	return &InputSystem{
		entityManager: em,
		particles:     ps,
		labels:        ls,
		pointer:       pointer,
		triggerID:     triggerID,
		logger:        observability.GetLogger().Named("InputSystem"),
	}, nil
}

// Update 处理本帧输入
// viewWidth/viewHeight 为宿主当前的视口尺寸
func (s *InputSystem) Update(viewWidth, viewHeight int) {
	// 视口变化（包括第一帧）
	if viewWidth != s.viewWidth || viewHeight != s.viewHeight {
		s.viewWidth, s.viewHeight = viewWidth, viewHeight
		s.particles.Resize(viewWidth, viewHeight)
		if s.labels != nil {
			s.labels.Layout(viewWidth, viewHeight)
		}
	}

	x, y := s.pointer.PointerPosition()
	if !s.hasPointer || x != s.lastX || y != s.lastY {
		s.hasPointer = true
		s.lastX, s.lastY = x, y
		s.particles.OnPointerMove(float64(x), float64(y))
	}

	trigger, ok := ecs.GetComponent[*components.HoverTriggerComponent](s.entityManager, s.triggerID)
	if !ok {
		return
	}

	inside := trigger.Contains(float64(x), float64(y))
	switch {
	case inside && !trigger.Hovering:
		trigger.Hovering = true
		s.logger.Debug("hover enter", zap.Int("x", x), zap.Int("y", y))
		s.particles.OnHoverEnter(float64(x), float64(y))
	case !inside && trigger.Hovering:
		trigger.Hovering = false
		s.logger.Debug("hover leave", zap.Int("x", x), zap.Int("y", y))
		s.particles.OnHoverLeave()
	}
}
