package survey

import (
	"context"
	"time"

	"github.com/gridwing/surveysim/internal/timeutil"
)

// Runner drives a Simulator against real (or mocked) wall-clock time. It
// owns the ticker the engine itself deliberately lacks: on every tick it
// measures the elapsed wall time since the previous tick and feeds it to
// Tick as dt.
//
// Paused spans are excluded from dt — while the simulator reports paused,
// the runner keeps resetting its reference time, so the first tick after a
// resume carries only the time since the resume.
type Runner struct {
	sim      *Simulator
	clock    timeutil.Clock
	interval time.Duration
}

// NewRunner wraps sim with a tick source firing at the given interval. A nil
// clock uses the real one.
func NewRunner(sim *Simulator, clock timeutil.Clock, interval time.Duration) *Runner {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Runner{sim: sim, clock: clock, interval: interval}
}

// Run starts the simulator and blocks until the flight completes, the
// simulator is stopped, or ctx is cancelled. Cancellation stops the
// simulator before returning.
func (r *Runner) Run(ctx context.Context) error {
	r.sim.Start()

	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	last := r.clock.Now()
	for {
		select {
		case <-ctx.Done():
			r.sim.Stop()
			return ctx.Err()
		case now := <-ticker.C():
			st := r.sim.State()
			if !st.IsRunning {
				return nil
			}
			if st.IsPaused {
				// Keep the reference fresh so paused time never
				// reaches the integrator.
				last = now
				continue
			}
			dt := now.Sub(last).Seconds()
			last = now
			if dt <= 0 {
				continue
			}
			r.sim.Tick(dt)
		}
	}
}
