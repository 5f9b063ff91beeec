package components

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// LabelComponent 描述一段居中绘制的文字
// 与 HoverTriggerComponent 组合时，文字的包围盒即为触发区域
type LabelComponent struct {
	Text  string
	Face  text.Face // 为 nil 时不绘制（测试环境）
	Color color.RGBA

	// 测量得到的文字尺寸（像素）
	Width  float64
	Height float64
}
