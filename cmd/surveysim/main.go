// Command surveysim plans an aerial-survey flight path and optionally flies
// it in a real-time headless simulation.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gridwing/surveysim/internal/config"
	"github.com/gridwing/surveysim/internal/export"
	"github.com/gridwing/surveysim/internal/monitoring"
	"github.com/gridwing/surveysim/internal/profileplot"
	"github.com/gridwing/surveysim/internal/survey"
	"github.com/gridwing/surveysim/internal/units"
	"github.com/gridwing/surveysim/internal/version"
)

var (
	configPath  = flag.String("config", config.DefaultConfigPath, "mission config JSON")
	presetsPath = flag.String("presets", config.DefaultPresetsPath, "preset catalogue YAML")
	cameraName  = flag.String("camera", "one-inch-20mp", "camera preset name")
	missionName = flag.String("mission", "field-150m", "mission preset name")

	height     = flag.Float64("height", 0, "override flight height (m)")
	overlap    = flag.Float64("overlap", -1, "override along-track overlap [0,1)")
	sidelap    = flag.Float64("sidelap", -1, "override across-track sidelap [0,1)")
	scanX      = flag.Float64("scan-x", 0, "override scan width (m)")
	scanY      = flag.Float64("scan-y", 0, "override scan depth (m)")
	exposureMs = flag.Float64("exposure-ms", 0, "override exposure time (ms)")

	csvPath   = flag.String("csv", "", "write waypoints CSV to this path")
	jsonPath  = flag.String("json", "", "write plan JSON to this path")
	chartPath = flag.String("chart", "", "write velocity-profile HTML chart to this path")

	simulate    = flag.Bool("simulate", false, "fly the plan in real time")
	speedUnits  = flag.String("units", "", "speed units for output (overrides config)")
	showVersion = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("surveysim %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	cfg, err := config.LoadMissionConfig(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && *configPath == config.DefaultConfigPath {
			log.Printf("no mission config at %s, using defaults", *configPath)
			cfg = config.EmptyMissionConfig()
		} else {
			log.Fatalf("load config: %v", err)
		}
	}

	cat, err := config.LoadPresets(*presetsPath)
	if err != nil {
		log.Fatalf("load presets: %v", err)
	}

	cam, err := cat.Camera(*cameraName)
	if err != nil {
		log.Fatalf("resolve camera: %v", err)
	}
	spec, err := cat.Mission(*missionName)
	if err != nil {
		log.Fatalf("resolve mission: %v", err)
	}
	applyOverrides(&spec)
	spec.MotionBlurPixels = cfg.GetMotionBlurPixels()

	limits := survey.DroneLimits{VMax: cfg.GetVMaxMps(), AMax: cfg.GetAMaxMps2()}

	plan, err := survey.NewFlightPlan(cam, spec, &limits)
	if err != nil {
		log.Fatalf("plan generation failed: %v", err)
	}
	if n := len(plan.Waypoints); n > cfg.GetMaxWaypoints() {
		log.Fatalf("plan has %d waypoints, over the configured limit of %d; reduce overlap or scan area", n, cfg.GetMaxWaypoints())
	}

	un := cfg.GetSpeedUnits()
	if *speedUnits != "" {
		if !units.IsValid(*speedUnits) {
			log.Fatalf("invalid -units %q (valid: %s)", *speedUnits, units.GetValidUnitsString())
		}
		un = *speedUnits
	}
	printStats(plan, un)

	if *csvPath != "" {
		if err := export.SaveCSV(*csvPath, plan); err != nil {
			log.Fatalf("csv export: %v", err)
		}
		log.Printf("wrote %s", *csvPath)
	}
	if *jsonPath != "" {
		if err := export.SaveJSON(*jsonPath, plan); err != nil {
			log.Fatalf("json export: %v", err)
		}
		log.Printf("wrote %s", *jsonPath)
	}
	if *chartPath != "" {
		f, err := os.Create(*chartPath)
		if err != nil {
			log.Fatalf("chart export: %v", err)
		}
		if err := profileplot.RenderHTML(f, plan, 0.05); err != nil {
			f.Close()
			log.Fatalf("chart export: %v", err)
		}
		f.Close()
		log.Printf("wrote %s", *chartPath)
	}

	if *simulate {
		runSimulation(plan, cfg, un)
	}
}

func applyOverrides(spec *survey.DatasetSpec) {
	if *height > 0 {
		spec.Height = *height
	}
	if *overlap >= 0 {
		spec.Overlap = *overlap
	}
	if *sidelap >= 0 {
		spec.Sidelap = *sidelap
	}
	if *scanX > 0 {
		spec.ScanDimensionX = *scanX
	}
	if *scanY > 0 {
		spec.ScanDimensionY = *scanY
	}
	if *exposureMs > 0 {
		spec.ExposureTimeMs = *exposureMs
	}
}

func printStats(plan *survey.FlightPlan, un string) {
	s := plan.Stats
	fmt.Printf("plan %s\n", plan.ID)
	fmt.Printf("  waypoints:       %d\n", s.TotalWaypoints)
	fmt.Printf("  total distance:  %.1f m\n", s.TotalDistance)
	fmt.Printf("  estimated time:  %.1f s\n", s.EstimatedTime)
	fmt.Printf("  coverage area:   %.0f m²\n", s.CoverageArea)
	fmt.Printf("  gsd:             %.2f cm/px\n", s.GSD*100)
	fmt.Printf("  footprint:       %.1f × %.1f m\n", s.FootprintWidth, s.FootprintHeight)
	if len(plan.Waypoints) > 0 {
		fmt.Printf("  photo speed:     %s\n", units.FormatSpeed(plan.Waypoints[0].Speed, un))
	}
}

func runSimulation(plan *survey.FlightPlan, cfg *config.MissionConfig, un string) {
	sim := survey.NewSimulator(plan)

	var lastLogged float64
	sim.Subscribe(func(st survey.SimulationState) {
		if st.Elapsed-lastLogged < 1.0 && st.IsRunning {
			return
		}
		lastLogged = st.Elapsed
		monitoring.Logf("t=%6.1fs wp=%d/%d seg=%d progress=%4.0f%% pos=(%.1f, %.1f) speed=%s dist=%.0f/%.0fm",
			st.Elapsed, st.WaypointIndex, len(plan.Waypoints)-1, st.SegmentIndex,
			st.Progress*100, st.Position.X, st.Position.Y,
			units.FormatSpeed(st.Speed, un), st.DistanceTraveled, st.TotalDistance)
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runner := survey.NewRunner(sim, nil, cfg.GetTickInterval())
	monitoring.Logf("simulating %d waypoints at %s ticks", len(plan.Waypoints), cfg.GetTickInterval())
	if err := runner.Run(ctx); err != nil {
		monitoring.Logf("simulation interrupted: %v", err)
		return
	}
	st := sim.State()
	monitoring.Logf("flight complete: %.1fs elapsed, %.0fm flown", st.Elapsed, st.DistanceTraveled)
}
