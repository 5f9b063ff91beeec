package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/decker502/hoverburst/pkg/app"
	"github.com/decker502/hoverburst/pkg/config"
	"github.com/decker502/hoverburst/pkg/observability"
)

var (
	configFile string
	verbose    bool
)

// rootCmd 默认打开窗口运行效果
var rootCmd = &cobra.Command{
	Use:           "hoverburst",
	Short:         "Hover the label to burst particles out of it",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runWindow,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "settings file (default: built-in settings)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable logging (default off)")
	rootCmd.AddCommand(simulateCmd)
}

// loadSettings 读取设置并按需打开日志
func loadSettings() (*config.Settings, error) {
	settings, err := config.LoadSettings(configFile)
	if err != nil {
		return nil, err
	}
	// 默认静默运行；--verbose 时按设置输出
	if verbose {
		observability.InitializeLogger(settings.Logger)
	}
	return settings, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	defer observability.Sync()

	game, err := app.NewApp(settings, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle(settings.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game.Start()
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}

	observability.GetLogger().Info("window closed")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		observability.GetLogger().Error("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
