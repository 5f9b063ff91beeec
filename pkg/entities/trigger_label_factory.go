package entities

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/hoverburst/pkg/components"
	"github.com/decker502/hoverburst/pkg/ecs"
)

// CreateTriggerLabel 创建悬停触发文字实体
// 文字尺寸在创建时测量一次；触发区域由 LabelSystem 在视口变化时重新居中
// face 为 nil 时尺寸为 0（无法被悬停），仅用于测试
func CreateTriggerLabel(em *ecs.EntityManager, label string, face text.Face, clr color.RGBA) ecs.EntityID {
	id := em.CreateEntity()

	labelComp := &components.LabelComponent{
		Text:  label,
		Face:  face,
		Color: clr,
	}
	if face != nil {
		labelComp.Width, labelComp.Height = text.Measure(label, face, 0)
	}

	em.AddComponent(id, labelComp)
	em.AddComponent(id, &components.PositionComponent{})
	em.AddComponent(id, &components.HoverTriggerComponent{})
	return id
}
