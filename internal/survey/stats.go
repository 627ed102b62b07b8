package survey

import "gonum.org/v1/gonum/spatial/r3"

// MissionStats is the derived roll-up of a plan. It is recomputed whenever
// the waypoints or camera/dataset change and never mutated in place.
type MissionStats struct {
	TotalWaypoints  int
	TotalDistance   float64 // m
	EstimatedTime   float64 // s
	CoverageArea    float64 // m²
	GSD             float64 // m/pixel
	FootprintWidth  float64 // m
	FootprintHeight float64 // m
}

// ComputeStats rolls up distance, flight time, coverage, GSD, and footprint
// for an ordered waypoint list. Pure: safe to call on every parameter edit
// without mutating the waypoints.
func ComputeStats(waypoints []Waypoint, cam Camera, spec DatasetSpec, limits DroneLimits) MissionStats {
	stats := MissionStats{
		TotalWaypoints: len(waypoints),
		CoverageArea:   spec.ScanDimensionX * spec.ScanDimensionY,
		GSD:            cam.GSD(spec.Height),
	}
	stats.FootprintWidth, stats.FootprintHeight = cam.Footprint(spec.Height)

	for i := 1; i < len(waypoints); i++ {
		stats.TotalDistance += r3.Norm(r3.Sub(waypoints[i].Pos, waypoints[i-1].Pos))
		stats.EstimatedTime += ComputeSegment(waypoints[i-1], waypoints[i], limits.VMax, limits.AMax).TotalTime
	}
	return stats
}
