package survey

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// GenerateGrid produces the serpentine coverage path for the scan rectangle.
//
// The grid is centred on the origin: rows sweep bottom-to-top and columns
// alternate direction every row so consecutive waypoints are always adjacent.
// Line counts are rounded up from the ideal image spacing, then the actual
// spacing is recomputed so the path spans the rectangle exactly with no
// leftover partial row.
//
// The photo speed is clamped to limits.VMax here, once; downstream consumers
// (segment profiles, the simulator) use waypoint speeds as-is.
func GenerateGrid(cam Camera, spec DatasetSpec, limits *DroneLimits) ([]Waypoint, error) {
	if err := cam.Validate(); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	dx, dy, err := ImageSpacing(cam, spec)
	if err != nil {
		return nil, err
	}

	nLinesX := lineCount(spec.ScanDimensionX, dx)
	nLinesY := lineCount(spec.ScanDimensionY, dy)

	actualDx := actualSpacing(spec.ScanDimensionX, nLinesX)
	actualDy := actualSpacing(spec.ScanDimensionY, nLinesY)

	blur := spec.MotionBlurPixels
	if blur == 0 {
		blur = DefaultMotionBlurPixels
	}
	speed, err := MaxExposureSpeed(cam, spec, blur)
	if err != nil {
		return nil, err
	}
	if limits != nil && speed > limits.VMax {
		speed = limits.VMax
	}

	startX := -spec.ScanDimensionX / 2
	startY := -spec.ScanDimensionY / 2

	waypoints := make([]Waypoint, 0, nLinesX*nLinesY)
	for row := 0; row < nLinesY; row++ {
		y := startY + float64(row)*actualDy
		for col := 0; col < nLinesX; col++ {
			// Serpentine: odd rows run right-to-left.
			c := col
			if row%2 == 1 {
				c = nLinesX - 1 - col
			}
			waypoints = append(waypoints, Waypoint{
				Pos:   r3.Vec{X: startX + float64(c)*actualDx, Y: y, Z: spec.Height},
				Speed: speed,
			})
		}
	}
	return waypoints, nil
}

// DefaultMotionBlurPixels is the allowed pixel smear during one exposure
// when deriving the nominal photo speed.
const DefaultMotionBlurPixels = 1.0

// lineCount returns how many parallel lines are needed to cover dim at the
// given spacing. Non-positive spacing degrades to a single line rather than
// dividing by zero.
func lineCount(dim, spacing float64) int {
	if spacing <= 0 {
		return 1
	}
	return int(math.Ceil(dim/spacing)) + 1
}

// actualSpacing spreads n lines evenly across dim so the first and last
// lines sit exactly on the rectangle edges.
func actualSpacing(dim float64, n int) float64 {
	if n <= 1 {
		return 0
	}
	return dim / float64(n-1)
}
