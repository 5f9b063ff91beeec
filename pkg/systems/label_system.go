package systems

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/hoverburst/pkg/components"
	"github.com/decker502/hoverburst/pkg/ecs"
)

// LabelSystem 负责文字实体的布局和绘制
// 文字在视口内居中，带 HoverTriggerComponent 的文字同步更新触发区域
type LabelSystem struct {
	entityManager *ecs.EntityManager
}

// NewLabelSystem 创建文字系统
func NewLabelSystem(em *ecs.EntityManager) *LabelSystem {
	return &LabelSystem{entityManager: em}
}

// Layout 将所有文字居中到 width x height 的视口
func (s *LabelSystem) Layout(width, height int) {
	for _, id := range ecs.GetEntitiesWith2[*components.LabelComponent, *components.PositionComponent](s.entityManager) {
		label, _ := ecs.GetComponent[*components.LabelComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		pos.X = (float64(width) - label.Width) / 2
		pos.Y = (float64(height) - label.Height) / 2

		if trigger, ok := ecs.GetComponent[*components.HoverTriggerComponent](s.entityManager, id); ok {
			trigger.Bounds = image.Rect(
				int(math.Floor(pos.X)),
				int(math.Floor(pos.Y)),
				int(math.Ceil(pos.X+label.Width)),
				int(math.Ceil(pos.Y+label.Height)),
			)
		}
	}
}

// Draw 绘制所有文字
func (s *LabelSystem) Draw(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.LabelComponent, *components.PositionComponent](s.entityManager) {
		label, _ := ecs.GetComponent[*components.LabelComponent](s.entityManager, id)
		if label.Face == nil {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		op := &text.DrawOptions{}
		op.GeoM.Translate(pos.X, pos.Y)
		op.ColorScale.ScaleWithColor(label.Color)
		text.Draw(screen, label.Text, label.Face, op)
	}
}
