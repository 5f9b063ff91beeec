package systems

import (
	"context"
	"time"
)

// Runner drives a ParticleSystem from a tick channel, standing in for the
// display refresh when there is no window. Each tick runs one Animate.
type Runner struct {
	System  *ParticleSystem
	Surface Surface
	// OnFrame is called after every frame with the 1-based frame number. Optional.
	OnFrame func(frame int)
}

// Run starts the system and animates one frame per tick until ticks is
// closed or ctx is done. The system is stopped before Run returns.
// It returns ctx.Err() on cancellation and nil when ticks is closed.
func (r *Runner) Run(ctx context.Context, ticks <-chan time.Time) error {
	r.System.Start()
	defer r.System.Stop()

	frame := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			r.System.Animate(r.Surface)
			frame++
			if r.OnFrame != nil {
				r.OnFrame(frame)
			}
		}
	}
}

// RunEvery is Run with a time.Ticker firing every interval.
func (r *Runner) RunEvery(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	return r.Run(ctx, ticker.C)
}
