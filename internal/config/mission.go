package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gridwing/surveysim/internal/units"
)

// DefaultConfigPath is the path to the canonical mission defaults file.
// This is the single source of truth for all default mission values.
const DefaultConfigPath = "config/mission.defaults.json"

// MissionConfig holds the tunable parameters of the planner and simulator.
// Fields are pointers so a partial JSON file only overrides what it names;
// the Get* accessors supply defaults for everything else.
type MissionConfig struct {
	// Drone kinematic limits
	VMaxMps  *float64 `json:"vmax_mps,omitempty"`
	AMaxMps2 *float64 `json:"amax_mps2,omitempty"`

	// Planner params
	MotionBlurPixels *float64 `json:"motion_blur_pixels,omitempty"`
	MaxWaypoints     *int     `json:"max_waypoints,omitempty"`

	// Simulator params
	TickInterval *string `json:"tick_interval,omitempty"` // duration string like "50ms"

	// Output params
	SpeedUnits *string `json:"speed_units,omitempty"`
}

// EmptyMissionConfig returns a MissionConfig with all fields set to nil.
// Use LoadMissionConfig to load actual values from a file.
func EmptyMissionConfig() *MissionConfig {
	return &MissionConfig{}
}

// LoadMissionConfig loads a MissionConfig from a JSON file. The file must
// have a .json extension and stay under the max file size. Fields omitted
// from the JSON retain their default values, so partial configs are safe.
func LoadMissionConfig(path string) (*MissionConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyMissionConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *MissionConfig) Validate() error {
	if c.VMaxMps != nil && *c.VMaxMps <= 0 {
		return fmt.Errorf("vmax_mps must be positive, got %f", *c.VMaxMps)
	}
	if c.AMaxMps2 != nil && *c.AMaxMps2 <= 0 {
		return fmt.Errorf("amax_mps2 must be positive, got %f", *c.AMaxMps2)
	}
	if c.MotionBlurPixels != nil && *c.MotionBlurPixels <= 0 {
		return fmt.Errorf("motion_blur_pixels must be positive, got %f", *c.MotionBlurPixels)
	}
	if c.MaxWaypoints != nil && *c.MaxWaypoints < 0 {
		return fmt.Errorf("max_waypoints must be non-negative, got %d", *c.MaxWaypoints)
	}
	if c.TickInterval != nil && *c.TickInterval != "" {
		if _, err := time.ParseDuration(*c.TickInterval); err != nil {
			return fmt.Errorf("invalid tick_interval '%s': %w", *c.TickInterval, err)
		}
	}
	if c.SpeedUnits != nil && !units.IsValid(*c.SpeedUnits) {
		return fmt.Errorf("invalid speed_units '%s' (valid: %s)", *c.SpeedUnits, units.GetValidUnitsString())
	}
	return nil
}

// GetVMaxMps returns the vmax_mps value or the default.
func (c *MissionConfig) GetVMaxMps() float64 {
	if c.VMaxMps == nil {
		return 16.0
	}
	return *c.VMaxMps
}

// GetAMaxMps2 returns the amax_mps2 value or the default.
func (c *MissionConfig) GetAMaxMps2() float64 {
	if c.AMaxMps2 == nil {
		return 3.5
	}
	return *c.AMaxMps2
}

// GetMotionBlurPixels returns the motion_blur_pixels value or the default.
func (c *MissionConfig) GetMotionBlurPixels() float64 {
	if c.MotionBlurPixels == nil {
		return 1.0
	}
	return *c.MotionBlurPixels
}

// GetMaxWaypoints returns the max_waypoints value or the default. This is a
// caller-side feasibility cutoff; the engine itself accepts any plan size.
func (c *MissionConfig) GetMaxWaypoints() int {
	if c.MaxWaypoints == nil {
		return 10000
	}
	return *c.MaxWaypoints
}

// GetTickInterval parses and returns the TickInterval as a time.Duration.
func (c *MissionConfig) GetTickInterval() time.Duration {
	if c.TickInterval == nil || *c.TickInterval == "" {
		return 50 * time.Millisecond // default
	}
	d, err := time.ParseDuration(*c.TickInterval)
	if err != nil {
		return 50 * time.Millisecond // default on parse error
	}
	return d
}

// GetSpeedUnits returns the speed_units value or the default.
func (c *MissionConfig) GetSpeedUnits() string {
	if c.SpeedUnits == nil || !units.IsValid(*c.SpeedUnits) {
		return units.MPS
	}
	return *c.SpeedUnits
}
