package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultSettingsYAML []byte

// ErrInvalidConfig 表示设置文件内容不合法
var ErrInvalidConfig = errors.New("invalid config")

// Settings 展示相关设置
// 物理参数见 effect_config.go，不在此处配置
type Settings struct {
	Window        WindowSettings `yaml:"window"`
	Label         LabelSettings  `yaml:"label"`
	Colors        ColorSettings  `yaml:"colors"`
	MaxParticles  int            `yaml:"maxParticles"`  // 同时存活粒子上限，0 表示使用 DefaultMaxParticles
	BurstInterval time.Duration  `yaml:"burstInterval"` // 两次爆发的最小间隔，0 表示不限制
	Logger        LoggerSettings `yaml:"logger"`
}

// WindowSettings 窗口设置
type WindowSettings struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// LabelSettings 触发文字设置
type LabelSettings struct {
	Text     string  `yaml:"text"`
	FontSize float64 `yaml:"fontSize"`
	Color    string  `yaml:"color"`
}

// ColorSettings 颜色设置（#rrggbb）
type ColorSettings struct {
	Particle   string `yaml:"particle"`
	Background string `yaml:"background"`
}

// LoggerSettings 日志设置
type LoggerSettings struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console 或 json
}

// DefaultSettings 返回内嵌的默认设置
func DefaultSettings() *Settings {
	s := &Settings{}
	if err := yaml.Unmarshal(defaultSettingsYAML, s); err != nil {
		// 内嵌文件在编译期确定，解析失败属于编程错误
		panic(fmt.Sprintf("config: embedded default.yaml: %v", err))
	}
	return s
}

// LoadSettings 读取设置文件并覆盖默认值
// path 为空时直接返回默认设置
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

// Validate 检查设置是否可用
func (s *Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, s.Window.Width, s.Window.Height)
	}
	if s.Label.Text == "" {
		return fmt.Errorf("%w: label text is empty", ErrInvalidConfig)
	}
	if s.Label.FontSize <= 0 {
		return fmt.Errorf("%w: label font size %v", ErrInvalidConfig, s.Label.FontSize)
	}
	// 上限至少容纳一次完整爆发，否则新粒子会被自身淘汰
	if s.MaxParticles < 0 || (s.MaxParticles > 0 && s.MaxParticles < BurstParticleCount) {
		return fmt.Errorf("%w: maxParticles %d (0 or >= %d)", ErrInvalidConfig, s.MaxParticles, BurstParticleCount)
	}
	if s.BurstInterval < 0 {
		return fmt.Errorf("%w: burstInterval %v", ErrInvalidConfig, s.BurstInterval)
	}
	for name, hex := range map[string]string{
		"label.color":       s.Label.Color,
		"colors.particle":   s.Colors.Particle,
		"colors.background": s.Colors.Background,
	} {
		if _, err := ParseColor(hex); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
	}
	return nil
}

// EffectiveMaxParticles 返回实际生效的粒子上限
func (s *Settings) EffectiveMaxParticles() int {
	if s.MaxParticles == 0 {
		return DefaultMaxParticles
	}
	return s.MaxParticles
}

// ParseColor 将 #rrggbb 转换为不透明的 color.RGBA
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustParseColor 与 ParseColor 相同，但在失败时 panic
// 仅用于已通过 Validate 的设置
func MustParseColor(hex string) color.RGBA {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}
