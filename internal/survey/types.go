package survey

import "gonum.org/v1/gonum/spatial/r3"

// DatasetSpec describes the imagery the mission must produce.
type DatasetSpec struct {
	Overlap        float64 // along-track image overlap fraction, [0, 1)
	Sidelap        float64 // across-track image overlap fraction, [0, 1)
	Height         float64 // flight height above ground, m
	ScanDimensionX float64 // scan rectangle width, m
	ScanDimensionY float64 // scan rectangle depth, m
	ExposureTimeMs float64 // shutter exposure time, ms

	// MotionBlurPixels is the pixel smear allowed during one exposure when
	// deriving the photo speed. Zero means DefaultMotionBlurPixels.
	MotionBlurPixels float64
}

// Validate checks the spec's numeric ranges. Overlap/sidelap bounds are
// enforced again by ImageSpacing so that direct callers get the same error.
func (s DatasetSpec) Validate() error {
	if s.Overlap < 0 || s.Overlap >= 1 {
		return validationErr("overlap", s.Overlap, "must be in [0, 1)")
	}
	if s.Sidelap < 0 || s.Sidelap >= 1 {
		return validationErr("sidelap", s.Sidelap, "must be in [0, 1)")
	}
	if s.Height <= 0 {
		return validationErr("height", s.Height, "must be positive")
	}
	if s.ScanDimensionX <= 0 {
		return validationErr("scan_dimension_x", s.ScanDimensionX, "must be positive")
	}
	if s.ScanDimensionY <= 0 {
		return validationErr("scan_dimension_y", s.ScanDimensionY, "must be positive")
	}
	if s.ExposureTimeMs <= 0 {
		return validationErr("exposure_time_ms", s.ExposureTimeMs, "must be positive")
	}
	if s.MotionBlurPixels < 0 {
		return validationErr("motion_blur_pixels", s.MotionBlurPixels, "must not be negative")
	}
	return nil
}

// DroneLimits bounds the aircraft's kinematics.
type DroneLimits struct {
	VMax float64 // maximum ground speed, m/s
	AMax float64 // maximum acceleration, m/s²
}

// DefaultDroneLimits returns limits typical of a mapping quadcopter.
func DefaultDroneLimits() DroneLimits {
	return DroneLimits{VMax: 16.0, AMax: 3.5}
}

// Validate checks that both limits are positive.
func (l DroneLimits) Validate() error {
	if l.VMax <= 0 {
		return validationErr("vmax", l.VMax, "must be positive")
	}
	if l.AMax <= 0 {
		return validationErr("amax", l.AMax, "must be positive")
	}
	return nil
}

// Waypoint is one stop on the flight path. Waypoints are immutable once
// generated and owned by the plan that created them; consumers assume index
// i+1 immediately follows index i in flight order.
type Waypoint struct {
	Pos   r3.Vec  // position in the survey frame, m
	Speed float64 // nominal photo speed through this waypoint, m/s
}
