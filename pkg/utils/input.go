// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// GetPointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func GetPointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// EbitenPointer 从 ebiten 读取指针位置，实现 systems.PointerSource
type EbitenPointer struct{}

// PointerPosition 返回当前指针位置
func (EbitenPointer) PointerPosition() (int, int) {
	return GetPointerPosition()
}
