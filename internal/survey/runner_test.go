package survey

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridwing/surveysim/internal/timeutil"
)

// driveUntilDone advances the mock clock in tick-sized steps until Run
// returns or the real deadline expires.
func driveUntilDone(t *testing.T, clock *timeutil.MockClock, step time.Duration, done <-chan error) error {
	t.Helper()
	deadline := time.After(10 * time.Second)
	for {
		select {
		case err := <-done:
			return err
		case <-deadline:
			t.Fatal("runner did not finish in time")
			return nil
		default:
			clock.Advance(step)
			time.Sleep(200 * time.Microsecond)
		}
	}
}

func TestRunnerFliesPlanToCompletion(t *testing.T) {
	t.Parallel()

	clock := timeutil.NewMockClock(time.Now())
	sim := NewSimulator(linePlan(2, 100, 0))
	r := NewRunner(sim, clock, 50*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()

	err := driveUntilDone(t, clock, 50*time.Millisecond, done)
	require.NoError(t, err)

	st := sim.State()
	assert.False(t, st.IsRunning)
	assert.InDelta(t, 100, st.DistanceTraveled, 2.0)
}

func TestRunnerExcludesPausedWallTime(t *testing.T) {
	t.Parallel()

	plan := linePlan(2, 100, 0)
	wantTime := plan.Profiles[0].TotalTime

	clock := timeutil.NewMockClock(time.Now())
	sim := NewSimulator(plan)
	r := NewRunner(sim, clock, 50*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()

	// Let the flight get going.
	for i := 0; i < 20; i++ {
		clock.Advance(50 * time.Millisecond)
		time.Sleep(200 * time.Microsecond)
	}

	sim.Pause()
	// Give the runner paused ticks to refresh its reference time, then jump
	// the clock a full hour while paused.
	for i := 0; i < 10; i++ {
		clock.Advance(50 * time.Millisecond)
		time.Sleep(200 * time.Microsecond)
	}
	clock.Advance(time.Hour)
	time.Sleep(time.Millisecond)
	clock.Advance(50 * time.Millisecond)
	time.Sleep(time.Millisecond)

	sim.Start() // resume
	err := driveUntilDone(t, clock, 50*time.Millisecond, done)
	require.NoError(t, err)

	st := sim.State()
	// Had the paused hour leaked into dt the elapsed time would be ≥ 3600 s.
	assert.Less(t, st.Elapsed, wantTime+5)
}

func TestRunnerContextCancelStopsSimulator(t *testing.T) {
	t.Parallel()

	clock := timeutil.NewMockClock(time.Now())
	sim := NewSimulator(linePlan(3, 100, 0))
	r := NewRunner(sim, clock, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	for i := 0; i < 5; i++ {
		clock.Advance(50 * time.Millisecond)
		time.Sleep(200 * time.Microsecond)
	}
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("runner ignored cancellation")
	}
	assert.False(t, sim.State().IsRunning)
}

func TestRunnerNilClockDefaultsToRealClock(t *testing.T) {
	t.Parallel()

	// A degenerate single-waypoint plan completes on the first real tick.
	sim := NewSimulator(linePlan(1, 0, 0))
	r := NewRunner(sim, nil, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := r.Run(ctx)
	require.NoError(t, err)
	assert.False(t, sim.State().IsRunning)
}
