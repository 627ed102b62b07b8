// Package units provides shared constants and conversion for speed units
// used in operator-facing output. The engine itself works in m/s only.
package units

import "fmt"

// Unit constants
const (
	MPS  = "mps"
	MPH  = "mph"
	KMPH = "kmph"
	KPH  = "kph"
	KT   = "kt"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{MPS, MPH, KMPH, KPH, KT}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "mps, mph, kmph, kph, kt"
}

// ConvertSpeed converts a speed from meters per second to the target units.
// The engine and all plan data store speeds in m/s.
func ConvertSpeed(speedMPS float64, targetUnits string) float64 {
	switch targetUnits {
	case MPS:
		return speedMPS
	case MPH:
		return speedMPS * 2.2369362920544
	case KMPH, KPH:
		return speedMPS * 3.6
	case KT:
		return speedMPS * 1.9438444924406
	default:
		return speedMPS
	}
}

// FormatSpeed renders a m/s speed in the target units with its suffix, for
// CLI and log output.
func FormatSpeed(speedMPS float64, targetUnits string) string {
	if !IsValid(targetUnits) {
		targetUnits = MPS
	}
	return fmt.Sprintf("%.2f %s", ConvertSpeed(speedMPS, targetUnits), targetUnits)
}
