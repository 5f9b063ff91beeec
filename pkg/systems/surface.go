package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Surface is a 2D immediate-mode drawing target.
// ParticleSystem only needs to clear it and fill circles.
type Surface interface {
	// Clear resets every pixel to transparent.
	Clear()
	// FillCircle draws a filled circle centred at (x, y) composited at alpha (0-1).
	FillCircle(x, y, radius float64, clr color.RGBA, alpha float64)
}

// ImageSurface draws onto an ebiten image.
type ImageSurface struct {
	Image *ebiten.Image
}

// Clear 清空图像
func (s ImageSurface) Clear() {
	s.Image.Clear()
}

// FillCircle 使用 vector 包绘制抗锯齿圆形，alpha 作用于颜色的 A 通道
func (s ImageSurface) FillCircle(x, y, radius float64, clr color.RGBA, alpha float64) {
	if alpha <= 0 {
		return
	}
	c := color.NRGBA{R: clr.R, G: clr.G, B: clr.B, A: uint8(float64(clr.A)*min(alpha, 1) + 0.5)}
	vector.FillCircle(s.Image, float32(x), float32(y), float32(radius), c, true)
}

// CountingSurface discards drawing and counts the circles of the last frame.
// Used when running without a window.
type CountingSurface struct {
	Circles int
}

// Clear starts a new frame.
func (s *CountingSurface) Clear() {
	s.Circles = 0
}

// FillCircle counts a circle.
func (s *CountingSurface) FillCircle(_, _, _ float64, _ color.RGBA, _ float64) {
	s.Circles++
}
