package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gridwing/surveysim/internal/survey"
)

// DefaultPresetsPath is the path to the shipped preset catalogue.
const DefaultPresetsPath = "config/presets.yaml"

// CameraPreset is a named camera body. Presets are operator configuration:
// the engine never depends on them, only the CLI resolves them into engine
// inputs.
type CameraPreset struct {
	Name          string  `yaml:"name"`
	Fx            float64 `yaml:"fx"`
	Fy            float64 `yaml:"fy"`
	Cx            float64 `yaml:"cx"`
	Cy            float64 `yaml:"cy"`
	SensorSizeXMm float64 `yaml:"sensor_size_x_mm"`
	SensorSizeYMm float64 `yaml:"sensor_size_y_mm"`
	ImageSizeX    int     `yaml:"image_size_x"`
	ImageSizeY    int     `yaml:"image_size_y"`
}

// Camera converts the preset into an engine camera.
func (p CameraPreset) Camera() survey.Camera {
	return survey.Camera{
		Fx:            p.Fx,
		Fy:            p.Fy,
		Cx:            p.Cx,
		Cy:            p.Cy,
		SensorSizeXMm: p.SensorSizeXMm,
		SensorSizeYMm: p.SensorSizeYMm,
		ImageSizeX:    p.ImageSizeX,
		ImageSizeY:    p.ImageSizeY,
	}
}

// MissionPreset is a named bundle of dataset parameters.
type MissionPreset struct {
	Name           string  `yaml:"name"`
	Overlap        float64 `yaml:"overlap"`
	Sidelap        float64 `yaml:"sidelap"`
	HeightM        float64 `yaml:"height_m"`
	ScanXM         float64 `yaml:"scan_x_m"`
	ScanYM         float64 `yaml:"scan_y_m"`
	ExposureTimeMs float64 `yaml:"exposure_time_ms"`
}

// Spec converts the preset into an engine dataset spec.
func (p MissionPreset) Spec() survey.DatasetSpec {
	return survey.DatasetSpec{
		Overlap:        p.Overlap,
		Sidelap:        p.Sidelap,
		Height:         p.HeightM,
		ScanDimensionX: p.ScanXM,
		ScanDimensionY: p.ScanYM,
		ExposureTimeMs: p.ExposureTimeMs,
	}
}

// PresetCatalogue is the full preset file contents.
type PresetCatalogue struct {
	Cameras  []CameraPreset  `yaml:"cameras"`
	Missions []MissionPreset `yaml:"missions"`
}

// LoadPresets reads a YAML preset catalogue from disk.
func LoadPresets(path string) (*PresetCatalogue, error) {
	cleanPath := filepath.Clean(path)
	ext := filepath.Ext(cleanPath)
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("preset file must have .yaml or .yml extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}

	var cat PresetCatalogue
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse preset YAML: %w", err)
	}
	return &cat, nil
}

// Camera resolves a camera preset by name.
func (c *PresetCatalogue) Camera(name string) (survey.Camera, error) {
	for _, p := range c.Cameras {
		if p.Name == name {
			return p.Camera(), nil
		}
	}
	return survey.Camera{}, fmt.Errorf("unknown camera preset %q", name)
}

// Mission resolves a mission preset by name.
func (c *PresetCatalogue) Mission(name string) (survey.DatasetSpec, error) {
	for _, p := range c.Missions {
		if p.Name == name {
			return p.Spec(), nil
		}
	}
	return survey.DatasetSpec{}, fmt.Errorf("unknown mission preset %q", name)
}
