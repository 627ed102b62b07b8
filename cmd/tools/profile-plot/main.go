// Command profile-plot renders the velocity profile of a planned mission as
// an HTML chart or a PNG image, for eyeballing segment timing.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/gridwing/surveysim/internal/config"
	"github.com/gridwing/surveysim/internal/profileplot"
	"github.com/gridwing/surveysim/internal/survey"
)

func main() {
	presetsPath := flag.String("presets", config.DefaultPresetsPath, "preset catalogue YAML")
	cameraName := flag.String("camera", "one-inch-20mp", "camera preset name")
	missionName := flag.String("mission", "field-150m", "mission preset name")
	output := flag.String("o", "profile.html", "output path (.html or .png)")
	step := flag.Float64("step", 0.05, "sampling step, seconds")
	flag.Parse()

	cat, err := config.LoadPresets(*presetsPath)
	if err != nil {
		log.Fatalf("load presets: %v", err)
	}
	cam, err := cat.Camera(*cameraName)
	if err != nil {
		log.Fatal(err)
	}
	spec, err := cat.Mission(*missionName)
	if err != nil {
		log.Fatal(err)
	}

	plan, err := survey.NewFlightPlan(cam, spec, nil)
	if err != nil {
		log.Fatalf("plan generation failed: %v", err)
	}

	if strings.HasSuffix(*output, ".png") {
		if err := profileplot.SavePNG(*output, plan, *step); err != nil {
			log.Fatal(err)
		}
	} else {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		if err := profileplot.RenderHTML(f, plan, *step); err != nil {
			log.Fatal(err)
		}
	}
	log.Printf("✓ Created: %s", *output)
}
