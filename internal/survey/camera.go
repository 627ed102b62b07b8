// Package survey implements the flight-planning and simulation engine for
// aerial mapping missions: camera ground-footprint geometry, serpentine
// coverage grids, acceleration-limited velocity profiles, mission statistics,
// and a tick-driven flight simulator.
//
// All distances are metres, speeds m/s, and times seconds unless a field name
// says otherwise. Positions use a camera-local survey frame centred on the
// scan rectangle, X east, Y north, Z up.
package survey

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Camera holds the pinhole intrinsics of the mapping camera.
type Camera struct {
	Fx float64 // focal length X, pixels
	Fy float64 // focal length Y, pixels
	Cx float64 // principal point X, pixels
	Cy float64 // principal point Y, pixels

	SensorSizeXMm float64 // physical sensor width, mm
	SensorSizeYMm float64 // physical sensor height, mm
	ImageSizeX    int     // image width, pixels
	ImageSizeY    int     // image height, pixels
}

// Validate checks that every intrinsic is positive.
func (c Camera) Validate() error {
	checks := []struct {
		field string
		value float64
	}{
		{"fx", c.Fx},
		{"fy", c.Fy},
		{"cx", c.Cx},
		{"cy", c.Cy},
		{"sensor_size_x_mm", c.SensorSizeXMm},
		{"sensor_size_y_mm", c.SensorSizeYMm},
		{"image_size_x", float64(c.ImageSizeX)},
		{"image_size_y", float64(c.ImageSizeY)},
	}
	for _, ch := range checks {
		if ch.value <= 0 {
			return validationErr(ch.field, ch.value, "must be positive")
		}
	}
	return nil
}

// FocalLengthMm converts the pixel-unit focal lengths into millimetres using
// the physical sensor dimensions.
func (c Camera) FocalLengthMm() (fxMm, fyMm float64) {
	fxMm = c.Fx * c.SensorSizeXMm / float64(c.ImageSizeX)
	fyMm = c.Fy * c.SensorSizeYMm / float64(c.ImageSizeY)
	return fxMm, fyMm
}

// ProjectToImage projects a point in the camera frame onto the image plane.
// The caller must guarantee p.Z > 0 (the flight height); Z == 0 yields
// infinities from the division rather than an error.
func (c Camera) ProjectToImage(p r3.Vec) (u, v float64) {
	u = c.Fx*p.X/p.Z + c.Cx
	v = c.Fy*p.Y/p.Z + c.Cy
	return u, v
}

// ReprojectToWorld inverts ProjectToImage: it casts pixel (u, v) out to the
// plane at the given depth and returns the camera-frame point.
func (c Camera) ReprojectToWorld(u, v, depth float64) r3.Vec {
	return r3.Vec{
		X: (u - c.Cx) * depth / c.Fx,
		Y: (v - c.Cy) * depth / c.Fy,
		Z: depth,
	}
}

// Footprint returns the ground rectangle covered by a single nadir image
// taken from the given height, computed by reprojecting the two opposite
// image corners.
func (c Camera) Footprint(height float64) (w, h float64) {
	a := c.ReprojectToWorld(0, 0, height)
	b := c.ReprojectToWorld(float64(c.ImageSizeX), float64(c.ImageSizeY), height)
	d := r3.Sub(b, a)
	return abs(d.X), abs(d.Y)
}

// GSD returns the ground sampling distance (metres per pixel) at the given
// height. The finer of the two per-axis resolutions is reported.
func (c Camera) GSD(height float64) float64 {
	w, h := c.Footprint(height)
	gx := w / float64(c.ImageSizeX)
	gy := h / float64(c.ImageSizeY)
	if gx < gy {
		return gx
	}
	return gy
}

// ImageSpacing returns the along-track and across-track distance between
// consecutive image centres that achieves the requested overlap and sidelap.
// Overlap and sidelap must be in [0, 1).
func ImageSpacing(c Camera, spec DatasetSpec) (dx, dy float64, err error) {
	if spec.Overlap < 0 || spec.Overlap >= 1 {
		return 0, 0, validationErr("overlap", spec.Overlap, "must be in [0, 1)")
	}
	if spec.Sidelap < 0 || spec.Sidelap >= 1 {
		return 0, 0, validationErr("sidelap", spec.Sidelap, "must be in [0, 1)")
	}
	w, h := c.Footprint(spec.Height)
	return w * (1 - spec.Overlap), h * (1 - spec.Sidelap), nil
}

// MaxExposureSpeed returns the motion-blur-limited ground speed: the fastest
// the drone can fly while smearing no more than allowedPixels pixels during
// one exposure. This is the nominal photo speed assigned to waypoints.
func MaxExposureSpeed(c Camera, spec DatasetSpec, allowedPixels float64) (float64, error) {
	if spec.ExposureTimeMs <= 0 {
		return 0, validationErr("exposure_time_ms", spec.ExposureTimeMs, "must be positive")
	}
	return allowedPixels * c.GSD(spec.Height) / (spec.ExposureTimeMs / 1000.0), nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
