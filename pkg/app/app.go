// Package app 提供悬停爆发效果的 ebiten.Game 实现
//
// App 负责把 ebiten 的帧回调接到各个系统上：
// Layout 提供视口尺寸，Update 处理输入并推进粒子，Draw 绘制背景、文字和粒子层。
package app

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/hoverburst/pkg/config"
	"github.com/decker502/hoverburst/pkg/ecs"
	"github.com/decker502/hoverburst/pkg/entities"
	"github.com/decker502/hoverburst/pkg/observability"
	"github.com/decker502/hoverburst/pkg/systems"
	"github.com/decker502/hoverburst/pkg/utils"
)

// App 实现 ebiten.Game 接口
type App struct {
	entityManager  *ecs.EntityManager
	particleSystem *systems.ParticleSystem
	inputSystem    *systems.InputSystem
	labelSystem    *systems.LabelSystem
	logger         *zap.Logger

	background color.RGBA
	// 粒子绘制在独立图层上，每帧清空后叠加到屏幕
	layer         *ebiten.Image
	width, height int
}

// NewApp 根据设置创建应用
// pointer 为 nil 时使用 ebiten 的鼠标/触摸输入
func NewApp(settings *config.Settings, pointer systems.PointerSource) (*App, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	logger := observability.GetLogger().Named("App")

	face, err := newLabelFace(settings.Label.FontSize)
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}

	em := ecs.NewEntityManager()
	labelSystem := systems.NewLabelSystem(em)
	particleSystem := systems.NewParticleSystem(em, systems.ParticleSystemOptions{
		Color:         config.MustParseColor(settings.Colors.Particle),
		MaxParticles:  settings.EffectiveMaxParticles(),
		BurstInterval: settings.BurstInterval,
	})

	triggerID := entities.CreateTriggerLabel(em, settings.Label.Text, face, config.MustParseColor(settings.Label.Color))

	if pointer == nil {
		pointer = utils.EbitenPointer{}
	}
	inputSystem, err := systems.NewInputSystem(em, particleSystem, labelSystem, pointer, triggerID)
	if err != nil {
		return nil, fmt.Errorf("输入系统初始化失败: %w", err)
	}

	logger.Info("initialized",
		zap.String("label", settings.Label.Text),
		zap.Int("maxParticles", settings.EffectiveMaxParticles()),
		zap.Duration("burstInterval", settings.BurstInterval))

	return &App{
		entityManager:  em,
		particleSystem: particleSystem,
		inputSystem:    inputSystem,
		labelSystem:    labelSystem,
		logger:         logger,
		background:     config.MustParseColor(settings.Colors.Background),
		width:          settings.Window.Width,
		height:         settings.Window.Height,
	}, nil
}

// newLabelFace 使用内置的 Go Regular 字体
func newLabelFace(size float64) (text.Face, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	return &text.GoTextFace{Source: source, Size: size}, nil
}

// Start 开始处理帧
func (a *App) Start() {
	a.particleSystem.Start()
}

// ParticleSystem 返回粒子系统
func (a *App) ParticleSystem() *systems.ParticleSystem {
	return a.particleSystem
}

// Update 每个 tick 调用一次
// Esc 退出，P 暂停/恢复
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.TogglePause()
	}

	a.step()
	return nil
}

// step 处理输入并推进一帧粒子
func (a *App) step() {
	a.inputSystem.Update(a.width, a.height)
	a.particleSystem.Update()
}

// TogglePause 暂停或恢复粒子动画
func (a *App) TogglePause() {
	if a.particleSystem.Running() {
		a.particleSystem.Stop()
	} else {
		a.particleSystem.Start()
	}
}

// Draw 绘制一帧
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(a.background)
	a.labelSystem.Draw(screen)

	if a.layer == nil {
		a.layer = ebiten.NewImage(a.width, a.height)
	}
	a.particleSystem.Draw(systems.ImageSurface{Image: a.layer})
	screen.DrawImage(a.layer, nil)
}

// Layout 让逻辑尺寸跟随窗口尺寸，窗口变化即视口变化
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		// 视口变化时重建粒子图层，旧内容随之丢弃
		if a.layer != nil {
			a.layer.Deallocate()
			a.layer = nil
		}
		a.logger.Debug("layout", zap.Int("width", outsideWidth), zap.Int("height", outsideHeight))
	}
	return a.width, a.height
}
