package survey

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func wpAt(x, y, z, speed float64) Waypoint {
	return Waypoint{Pos: r3.Vec{X: x, Y: y, Z: z}, Speed: speed}
}

func TestComputeSegmentTrapezoidal(t *testing.T) {
	t.Parallel()

	// 100 m from rest to rest at vmax=16, amax=3.5: accel and decel each
	// take (16²)/(2·3.5) ≈ 36.57 m, leaving ≈ 26.86 m of cruise.
	p := ComputeSegment(wpAt(0, 0, 30, 0), wpAt(100, 0, 30, 0), 16, 3.5)

	assert.Equal(t, ProfileTrapezoidal, p.Kind)
	assert.InDelta(t, 100, p.Distance, 1e-9)
	assert.InDelta(t, 16.0/3.5, p.TAcc, 1e-9)
	assert.InDelta(t, 16.0/3.5, p.TDec, 1e-9)
	assert.InDelta(t, 16.0, p.VCruise, 1e-9)

	cruiseDist := 100 - 2*(16.0*16.0)/(2*3.5)
	assert.InDelta(t, cruiseDist/16.0, p.TCruise, 1e-9)
	assert.InDelta(t, 2*(16.0/3.5)+cruiseDist/16.0, p.TotalTime, 1e-9)
}

func TestComputeSegmentTriangular(t *testing.T) {
	t.Parallel()

	// Same limits over 50 m: accel+decel would need 73.14 m, so the drone
	// peaks at √(2·3.5·50/2) = √175 ≈ 13.23 m/s and never cruises.
	p := ComputeSegment(wpAt(0, 0, 30, 0), wpAt(0, 50, 30, 0), 16, 3.5)

	assert.Equal(t, ProfileTriangular, p.Kind)
	assert.InDelta(t, math.Sqrt(175), p.VPeak, 1e-9)
	assert.InDelta(t, math.Sqrt(175)/3.5, p.TAcc, 1e-9)
	assert.InDelta(t, math.Sqrt(175)/3.5, p.TDec, 1e-9)
	assert.Zero(t, p.TCruise)
	assert.InDelta(t, 7.56, p.TotalTime, 0.01)
}

func TestComputeSegmentPureCruise(t *testing.T) {
	t.Parallel()

	// Boundary speeds already at vmax: no acceleration phases at all, so
	// total time is exactly d / vmax.
	p := ComputeSegment(wpAt(0, 0, 30, 16), wpAt(100, 0, 30, 16), 16, 3.5)

	assert.Equal(t, ProfileTrapezoidal, p.Kind)
	assert.Zero(t, p.TAcc)
	assert.Zero(t, p.TDec)
	assert.Equal(t, 6.25, p.TotalTime)
}

func TestComputeSegmentDegenerate(t *testing.T) {
	t.Parallel()

	p := ComputeSegment(wpAt(5, 5, 30, 7), wpAt(5, 5, 30, 3), 16, 3.5)

	assert.Equal(t, ProfileDegenerate, p.Kind)
	assert.Zero(t, p.TotalTime)
	assert.Zero(t, p.Distance)
	assert.Equal(t, 7.0, p.VStart)
	assert.Equal(t, 7.0, p.VEnd, "degenerate profile pins both boundaries to v0")
}

func TestComputeSegmentKindSelection(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		d, v0, v1  float64
		vMax, aMax float64
	}{
		{"long from rest", 500, 0, 0, 16, 3.5},
		{"short from rest", 10, 0, 0, 16, 3.5},
		{"asymmetric boundaries", 60, 5, 12, 16, 3.5},
		{"slow cap", 40, 0, 0, 4, 2},
		{"tight cap high accel", 25, 3, 3, 20, 10},
	}
	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := ComputeSegment(wpAt(0, 0, 30, tt.v0), wpAt(tt.d, 0, 30, tt.v1), tt.vMax, tt.aMax)

			var accelDist, decelDist float64
			if tt.v0 < tt.vMax {
				accelDist = (tt.vMax*tt.vMax - tt.v0*tt.v0) / (2 * tt.aMax)
			}
			if tt.v1 < tt.vMax {
				decelDist = (tt.vMax*tt.vMax - tt.v1*tt.v1) / (2 * tt.aMax)
			}
			if accelDist+decelDist <= tt.d {
				assert.Equal(t, ProfileTrapezoidal, p.Kind)
			} else {
				assert.Equal(t, ProfileTriangular, p.Kind)
			}

			// Phase times always sum to the total.
			assert.InEpsilon(t, p.TotalTime, p.TAcc+p.TCruise+p.TDec, 1e-9)

			// Distance equals the area under the speed curve.
			assert.InDelta(t, tt.d, profileArea(p, tt.aMax), 1e-6)
		})
	}
}

// profileArea integrates the piecewise speed curve analytically.
func profileArea(p SegmentProfile, aMax float64) float64 {
	top := p.VPeak
	if p.Kind == ProfileTrapezoidal {
		top = p.VCruise
	}
	accel := p.VStart*p.TAcc + 0.5*aMax*p.TAcc*p.TAcc
	cruise := top * p.TCruise
	decel := top*p.TDec - 0.5*aMax*p.TDec*p.TDec
	return accel + cruise + decel
}

func TestComputeSegmentPeakBelowBoundarySpeed(t *testing.T) {
	t.Parallel()

	// Entering at 10 m/s with only 1 m to travel: the solved peak is below
	// the entry speed, so the acceleration phase collapses to zero instead
	// of going negative.
	p := ComputeSegment(wpAt(0, 0, 30, 10), wpAt(1, 0, 30, 0), 16, 1)

	require.Equal(t, ProfileTriangular, p.Kind)
	assert.InDelta(t, math.Sqrt(51), p.VPeak, 1e-9) // (100+0+2·1·1)/2
	assert.Zero(t, p.TAcc)
	assert.InDelta(t, math.Sqrt(51), p.TDec, 1e-9)
}

func TestSpeedAtPiecewise(t *testing.T) {
	t.Parallel()

	t.Run("trapezoidal phases", func(t *testing.T) {
		t.Parallel()
		p := ComputeSegment(wpAt(0, 0, 30, 0), wpAt(100, 0, 30, 0), 16, 3.5)

		assert.InDelta(t, 0, p.SpeedAt(0, 3.5), 1e-9)
		assert.InDelta(t, 3.5, p.SpeedAt(1, 3.5), 1e-9, "accelerating at aMax")
		assert.InDelta(t, 16, p.SpeedAt(p.TAcc+p.TCruise/2, 3.5), 1e-9, "cruising at vmax")
		assert.InDelta(t, 0, p.SpeedAt(p.TotalTime, 3.5), 1e-9, "back to rest at the end")

		midDecel := p.TAcc + p.TCruise + p.TDec/2
		assert.InDelta(t, 8, p.SpeedAt(midDecel, 3.5), 1e-9)
	})

	t.Run("triangular apex", func(t *testing.T) {
		t.Parallel()
		p := ComputeSegment(wpAt(0, 0, 30, 0), wpAt(0, 50, 30, 0), 16, 3.5)
		assert.InDelta(t, math.Sqrt(175), p.SpeedAt(p.TAcc, 3.5), 1e-9)
	})

	t.Run("degenerate returns v0 for any t", func(t *testing.T) {
		t.Parallel()
		p := ComputeSegment(wpAt(0, 0, 30, 7), wpAt(0, 0, 30, 7), 16, 3.5)
		assert.Equal(t, 7.0, p.SpeedAt(0, 3.5))
		assert.Equal(t, 7.0, p.SpeedAt(123, 3.5))
	})

	t.Run("never negative past the end", func(t *testing.T) {
		t.Parallel()
		p := ComputeSegment(wpAt(0, 0, 30, 0), wpAt(0, 50, 30, 0), 16, 3.5)
		assert.Zero(t, p.SpeedAt(p.TotalTime+10, 3.5))
	})
}
