package survey

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// SimulationState is one atomically-replaced snapshot of the simulated
// flight. Observers never see a partially-updated combination of fields.
type SimulationState struct {
	IsRunning bool
	IsPaused  bool

	Position r3.Vec  // interpolated drone position, survey frame
	Speed    float64 // instantaneous ground speed, m/s

	WaypointIndex int     // waypoint most recently departed
	SegmentIndex  int     // segment currently being flown
	Progress      float64 // fraction of the current segment's distance covered, [0, 1]

	SegmentElapsed float64 // seconds into the current segment
	Elapsed        float64 // mission-wide wall-clock seconds (excludes paused spans)

	TotalDistance    float64 // m, fixed per plan
	DistanceTraveled float64 // m, integrated tick by tick
}

// UpdateFunc receives a state snapshot once per tick.
type UpdateFunc func(SimulationState)

// Simulator walks a flight plan's waypoint/segment sequence in simulated
// real time. It holds no timers: the caller delivers successive Tick(dt)
// calls with wall-clock deltas, and is responsible for excluding paused
// wall time from the first dt after a resume.
//
// The state machine is Idle → Running → (Paused ⇄ Running) → Completed, with
// Stop and Reset available from any state. All methods are safe for use from
// a driving goroutine plus command callers.
type Simulator struct {
	mu   sync.Mutex
	plan *FlightPlan

	state     SimulationState
	prevSpeed float64 // previous tick's instantaneous speed, for trapezoidal integration
	subs      []UpdateFunc
}

// NewSimulator creates an idle simulator positioned at the plan's first
// waypoint (or the origin for an empty plan).
func NewSimulator(plan *FlightPlan) *Simulator {
	s := &Simulator{plan: plan}
	s.resetLocked()
	return s
}

// SetPlan swaps in a new plan. A waypoint-set change always invalidates the
// whole simulation state, so this is an implicit Reset.
func (s *Simulator) SetPlan(plan *FlightPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = plan
	s.resetLocked()
}

// Subscribe registers fn to receive a snapshot after every tick.
func (s *Simulator) Subscribe(fn UpdateFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// State returns the current snapshot.
func (s *Simulator) State() SimulationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start begins the flight, or resumes it if paused. Resuming retains
// position, progress, and elapsed time; only tick delivery restarts.
func (s *Simulator) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.IsRunning && s.state.IsPaused {
		s.state.IsPaused = false
		return
	}
	if s.state.IsRunning {
		return
	}

	s.resetLocked()
	s.state.IsRunning = true
	if len(s.plan.Waypoints) > 0 {
		s.state.Speed = s.plan.Waypoints[0].Speed
		s.prevSpeed = s.plan.Waypoints[0].Speed
	}
}

// Pause freezes tick advancement. No-op unless running and not already
// paused; every field is retained as-is.
func (s *Simulator) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.IsRunning && !s.state.IsPaused {
		s.state.IsPaused = true
	}
}

// Stop unconditionally halts the flight and zeroes the speed. Position and
// progress are left at their last values so a caller can show the final
// still frame.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsRunning = false
	s.state.IsPaused = false
	s.state.Speed = 0
}

// Reset returns the simulator to Idle at the first waypoint with all
// counters zeroed. TotalDistance is recomputed from the current plan.
func (s *Simulator) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Simulator) resetLocked() {
	s.state = SimulationState{}
	s.prevSpeed = 0
	if len(s.plan.Waypoints) > 0 {
		s.state.Position = s.plan.Waypoints[0].Pos
	}
	s.state.TotalDistance = s.plan.Stats.TotalDistance
}

// Tick advances the simulation by dt seconds of wall-clock time. It never
// panics: any out-of-range condition is treated as reaching the end of the
// path. No-op when idle or paused.
func (s *Simulator) Tick(dt float64) {
	s.mu.Lock()

	if !s.state.IsRunning || s.state.IsPaused {
		s.mu.Unlock()
		return
	}

	wps := s.plan.Waypoints
	if s.state.WaypointIndex >= len(wps)-1 || s.state.SegmentIndex >= len(s.plan.Profiles) {
		// End of path (or degenerate plan): complete and stop advancing.
		s.state.IsRunning = false
		s.state.Speed = 0
		s.state.Progress = 1
		snap := s.state
		subs := s.subs
		s.mu.Unlock()
		notify(subs, snap)
		return
	}

	seg := s.plan.Profiles[s.state.SegmentIndex]
	s.state.SegmentElapsed += dt
	instSpeed := seg.SpeedAt(s.state.SegmentElapsed, s.plan.Limits.AMax)

	// Trapezoidal rule over (prevSpeed, instSpeed): materially more accurate
	// than Euler near profile kinks, e.g. the instant cruise ends and
	// deceleration begins.
	distanceThisTick := (s.prevSpeed + instSpeed) / 2 * dt

	progressIncrement := 1.0
	if seg.Distance > 0 {
		progressIncrement = distanceThisTick / seg.Distance
	}

	// A segment ends when the integrated distance covers it or when its
	// profile's duration runs out, whichever comes first. The time check is
	// load-bearing for segments ending near zero speed: the trapezoidal sum
	// undershoots at profile kinks, and once SpeedAt flattens to VEnd ≈ 0 the
	// remaining progress could never be integrated.
	newProgress := s.state.Progress + progressIncrement
	if newProgress >= 1 || s.state.SegmentElapsed >= seg.TotalTime {
		// Whatever distance mismatch remains at the boundary, overshoot or
		// shortfall, is dropped rather than carried into the next segment;
		// with coarse dt the distance counter is biased slightly low at
		// every transition. Matches the reference behaviour.
		s.state.WaypointIndex++
		s.state.SegmentIndex++
		s.state.Progress = 0
		s.state.SegmentElapsed = 0
		s.state.Position = wps[s.state.WaypointIndex].Pos
	} else {
		s.state.Progress = newProgress
		s.state.Position = lerp(wps[s.state.WaypointIndex].Pos, wps[s.state.WaypointIndex+1].Pos, s.state.Progress)
	}

	s.state.Speed = instSpeed
	s.prevSpeed = instSpeed
	s.state.DistanceTraveled += distanceThisTick
	s.state.Elapsed += dt

	snap := s.state
	subs := s.subs
	s.mu.Unlock()
	notify(subs, snap)
}

func notify(subs []UpdateFunc, snap SimulationState) {
	for _, fn := range subs {
		fn(snap)
	}
}

func lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}
