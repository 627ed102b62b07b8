package survey

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ProfileKind identifies the shape of a segment's velocity profile.
type ProfileKind string

const (
	// ProfileDegenerate covers zero-distance segments; no motion occurs.
	ProfileDegenerate ProfileKind = "degenerate"
	// ProfileTriangular means the drone peaks below VMax and immediately
	// decelerates; there is no cruise phase.
	ProfileTriangular ProfileKind = "triangular"
	// ProfileTrapezoidal means the drone reaches VMax and cruises before
	// decelerating.
	ProfileTrapezoidal ProfileKind = "trapezoidal"
)

// minSegmentDistance below which a segment is treated as degenerate.
const minSegmentDistance = 1e-9

// SegmentProfile describes the acceleration-limited move between two
// consecutive waypoints with prescribed boundary speeds.
//
// Invariant: TAcc + TCruise + TDec == TotalTime, and Distance equals the
// area under the speed curve, both within floating tolerance.
type SegmentProfile struct {
	Kind     ProfileKind
	Distance float64 // Euclidean waypoint separation, m

	VStart  float64 // boundary speed at the segment start, m/s
	VEnd    float64 // boundary speed at the segment end, m/s
	VPeak   float64 // apex speed (triangular), m/s
	VCruise float64 // cruise speed (trapezoidal), m/s

	TAcc      float64 // seconds accelerating
	TCruise   float64 // seconds cruising (0 for triangular)
	TDec      float64 // seconds decelerating
	TotalTime float64 // segment duration, s
}

// ComputeSegment derives the velocity profile for the move from p0 to p1,
// bounded by vMax and aMax. Boundary speeds are taken from the waypoints.
//
// If the accelerate-to-VMax and decelerate-from-VMax distances fit inside the
// segment the profile is trapezoidal with a cruise at vMax; otherwise the
// peak speed is solved from the energy balance
//
//	vPeak² = (v0² + v1² + 2·aMax·d) / 2
//
// and the profile is triangular.
func ComputeSegment(p0, p1 Waypoint, vMax, aMax float64) SegmentProfile {
	d := r3.Norm(r3.Sub(p1.Pos, p0.Pos))
	v0 := p0.Speed
	v1 := p1.Speed

	if d < minSegmentDistance {
		return SegmentProfile{
			Kind:   ProfileDegenerate,
			VStart: v0,
			VEnd:   v0,
		}
	}

	var accelDist, decelDist float64
	if v0 < vMax {
		accelDist = (vMax*vMax - v0*v0) / (2 * aMax)
	}
	if v1 < vMax {
		decelDist = (vMax*vMax - v1*v1) / (2 * aMax)
	}

	if accelDist+decelDist <= d {
		p := SegmentProfile{
			Kind:     ProfileTrapezoidal,
			Distance: d,
			VStart:   v0,
			VEnd:     v1,
			VCruise:  vMax,
		}
		if v0 < vMax {
			p.TAcc = (vMax - v0) / aMax
		}
		if v1 < vMax {
			p.TDec = (vMax - v1) / aMax
		}
		p.TCruise = (d - accelDist - decelDist) / vMax
		p.TotalTime = p.TAcc + p.TCruise + p.TDec
		return p
	}

	// Triangular: the drone never reaches vMax.
	radicand := (v0*v0 + v1*v1 + 2*aMax*d) / 2
	var vPeak float64
	if radicand < 0 {
		// Distance shorter than physically reachable given the boundary
		// speeds; clamp instead of producing NaN.
		vPeak = math.Max(v0, v1)
	} else {
		vPeak = math.Sqrt(radicand)
	}
	if vPeak > vMax {
		// Numerical safety net; the trapezoidal branch should have fired.
		vPeak = vMax
	}

	p := SegmentProfile{
		Kind:     ProfileTriangular,
		Distance: d,
		VStart:   v0,
		VEnd:     v1,
		VPeak:    vPeak,
		TAcc:     math.Max(0, (vPeak-v0)/aMax),
		TDec:     math.Max(0, (vPeak-v1)/aMax),
	}
	p.TotalTime = p.TAcc + p.TDec
	return p
}

// topSpeed returns the apex or cruise speed, whichever the profile carries.
func (p SegmentProfile) topSpeed() float64 {
	if p.Kind == ProfileTrapezoidal {
		return p.VCruise
	}
	return p.VPeak
}

// SpeedAt returns the instantaneous speed t seconds into the profile. It is
// the single source of truth for both mission-time summation and the live
// simulator, and is queryable for any t in [0, TotalTime].
func (p SegmentProfile) SpeedAt(t, aMax float64) float64 {
	if p.Kind == ProfileDegenerate {
		return p.VStart
	}
	switch {
	case t < p.TAcc:
		return p.VStart + aMax*t
	case t < p.TAcc+p.TCruise:
		return p.topSpeed()
	default:
		return math.Max(0, p.topSpeed()-aMax*(t-p.TAcc-p.TCruise))
	}
}
