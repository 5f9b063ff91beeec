package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/decker502/hoverburst/pkg/config"
	"github.com/decker502/hoverburst/pkg/ecs"
	"github.com/decker502/hoverburst/pkg/observability"
	"github.com/decker502/hoverburst/pkg/systems"
)

var (
	simulateBursts   int
	simulateDuration time.Duration
	simulateFPS      int
)

// simulateCmd 无窗口运行：在视口中心连续触发爆发并打印存活粒子数
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the particle simulation without a window",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simulateBursts, "bursts", 1, "number of bursts to trigger at start")
	simulateCmd.Flags().DurationVar(&simulateDuration, "duration", config.ParticleLifetime+500*time.Millisecond, "how long to run")
	simulateCmd.Flags().IntVar(&simulateFPS, "fps", 60, "frames per second")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if simulateFPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", simulateFPS)
	}
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	defer observability.Sync()
	logger := observability.GetLogger().Named("simulate")

	ps := systems.NewParticleSystem(ecs.NewEntityManager(), systems.ParticleSystemOptions{
		Color:         config.MustParseColor(settings.Colors.Particle),
		MaxParticles:  settings.EffectiveMaxParticles(),
		BurstInterval: settings.BurstInterval,
	})
	ps.Resize(settings.Window.Width, settings.Window.Height)

	cx, cy := float64(settings.Window.Width)/2, float64(settings.Window.Height)/2
	for i := 0; i < simulateBursts; i++ {
		ps.OnHoverEnter(cx, cy)
		ps.OnHoverLeave()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, simulateDuration)
	defer cancel()

	surface := &systems.CountingSurface{}
	runner := &systems.Runner{
		System:  ps,
		Surface: surface,
		OnFrame: func(frame int) {
			if frame%simulateFPS == 0 {
				logger.Info("frame", zap.Int("frame", frame), zap.Int("live", ps.Count()), zap.Int("drawn", surface.Circles))
			}
		},
	}

	err = runner.RunEvery(ctx, time.Second/time.Duration(simulateFPS))
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "live particles after %v: %d\n", simulateDuration, ps.Count())
	return nil
}
