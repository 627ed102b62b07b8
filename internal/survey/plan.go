package survey

import (
	"github.com/google/uuid"
)

// FlightPlan bundles a generated path with the parameters that produced it
// and the derived per-segment profiles and statistics. Plans are immutable:
// changing any parameter means generating a new plan, which in turn forces a
// simulator reset.
type FlightPlan struct {
	ID     string
	Camera Camera
	Spec   DatasetSpec
	Limits DroneLimits

	Waypoints []Waypoint
	// Profiles[i] covers the move from Waypoints[i] to Waypoints[i+1];
	// len(Profiles) == len(Waypoints)-1.
	Profiles []SegmentProfile
	Stats    MissionStats
}

// NewFlightPlan validates the inputs, generates the serpentine grid, and
// precomputes segment profiles and mission statistics. A nil limits uses
// DefaultDroneLimits.
func NewFlightPlan(cam Camera, spec DatasetSpec, limits *DroneLimits) (*FlightPlan, error) {
	lim := DefaultDroneLimits()
	if limits != nil {
		if err := limits.Validate(); err != nil {
			return nil, err
		}
		lim = *limits
	}

	waypoints, err := GenerateGrid(cam, spec, &lim)
	if err != nil {
		return nil, err
	}

	profiles := make([]SegmentProfile, 0, max(0, len(waypoints)-1))
	for i := 1; i < len(waypoints); i++ {
		profiles = append(profiles, ComputeSegment(waypoints[i-1], waypoints[i], lim.VMax, lim.AMax))
	}

	return &FlightPlan{
		ID:        uuid.NewString(),
		Camera:    cam,
		Spec:      spec,
		Limits:    lim,
		Waypoints: waypoints,
		Profiles:  profiles,
		Stats:     ComputeStats(waypoints, cam, spec, lim),
	}, nil
}
