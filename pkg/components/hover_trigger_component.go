package components

import "image"

// HoverTriggerComponent 标记一个可触发粒子爆发的屏幕区域
// 指针进入 Bounds 时触发一次爆发，离开后才能再次触发
type HoverTriggerComponent struct {
	Bounds   image.Rectangle // 触发区域（屏幕坐标），Max 不包含
	Hovering bool            // 指针当前是否位于区域内
}

// Contains 检查点是否在触发区域内
func (h *HoverTriggerComponent) Contains(x, y float64) bool {
	return x >= float64(h.Bounds.Min.X) && x < float64(h.Bounds.Max.X) &&
		y >= float64(h.Bounds.Min.Y) && y < float64(h.Bounds.Max.Y)
}
