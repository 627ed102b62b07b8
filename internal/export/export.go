// Package export serialises flight plans for downstream tooling. File
// formats only; there is no database or network surface.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gridwing/surveysim/internal/survey"
)

// WriteWaypointsCSV writes the flight path as one row per waypoint with a
// header. Columns: index, x_m, y_m, z_m, speed_mps.
func WriteWaypointsCSV(w io.Writer, plan *survey.FlightPlan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "x_m", "y_m", "z_m", "speed_mps"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, wp := range plan.Waypoints {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(wp.Pos.X, 'f', 3, 64),
			strconv.FormatFloat(wp.Pos.Y, 'f', 3, 64),
			strconv.FormatFloat(wp.Pos.Z, 'f', 3, 64),
			strconv.FormatFloat(wp.Speed, 'f', 3, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// planJSON is the stable on-disk shape of an exported plan.
type planJSON struct {
	ID        string              `json:"id"`
	Camera    survey.Camera       `json:"camera"`
	Spec      survey.DatasetSpec  `json:"spec"`
	Limits    survey.DroneLimits  `json:"limits"`
	Stats     survey.MissionStats `json:"stats"`
	Waypoints []waypointJSON      `json:"waypoints"`
}

type waypointJSON struct {
	X     float64 `json:"x_m"`
	Y     float64 `json:"y_m"`
	Z     float64 `json:"z_m"`
	Speed float64 `json:"speed_mps"`
}

// WritePlanJSON writes the plan, its parameters, and its stats as indented
// JSON.
func WritePlanJSON(w io.Writer, plan *survey.FlightPlan) error {
	out := planJSON{
		ID:        plan.ID,
		Camera:    plan.Camera,
		Spec:      plan.Spec,
		Limits:    plan.Limits,
		Stats:     plan.Stats,
		Waypoints: make([]waypointJSON, 0, len(plan.Waypoints)),
	}
	for _, wp := range plan.Waypoints {
		out.Waypoints = append(out.Waypoints, waypointJSON{
			X: wp.Pos.X, Y: wp.Pos.Y, Z: wp.Pos.Z, Speed: wp.Speed,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode plan JSON: %w", err)
	}
	return nil
}

// SaveCSV writes the waypoint CSV to path.
func SaveCSV(path string, plan *survey.FlightPlan) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteWaypointsCSV(f, plan)
}

// SaveJSON writes the plan JSON to path.
func SaveJSON(path string, plan *survey.FlightPlan) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WritePlanJSON(f, plan)
}
