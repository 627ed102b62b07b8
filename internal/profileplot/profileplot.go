// Package profileplot renders diagnostic speed-vs-time charts of a flight
// plan's velocity profiles, either as interactive HTML (go-echarts) or as a
// static PNG (gonum/plot).
package profileplot

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gridwing/surveysim/internal/survey"
)

// Sample is one point on the mission speed curve.
type Sample struct {
	T     float64 // seconds from mission start
	Speed float64 // m/s
}

// SampleSpeedCurve walks every segment profile and samples the instantaneous
// speed at the given step. Segment boundaries are always included so profile
// kinks stay visible at coarse steps.
func SampleSpeedCurve(plan *survey.FlightPlan, step float64) []Sample {
	if step <= 0 {
		step = 0.1
	}
	var samples []Sample
	var t0 float64
	for _, p := range plan.Profiles {
		if p.Kind == survey.ProfileDegenerate {
			continue
		}
		start := 0.0
		if len(samples) > 0 {
			// The previous segment already emitted this boundary instant.
			start = step
		}
		for t := start; t < p.TotalTime; t += step {
			samples = append(samples, Sample{T: t0 + t, Speed: p.SpeedAt(t, plan.Limits.AMax)})
		}
		samples = append(samples, Sample{T: t0 + p.TotalTime, Speed: p.VEnd})
		t0 += p.TotalTime
	}
	return samples
}

// RenderHTML writes an interactive speed-vs-time line chart for the plan.
func RenderHTML(w io.Writer, plan *survey.FlightPlan, step float64) error {
	samples := SampleSpeedCurve(plan, step)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Velocity Profile",
			Subtitle: fmt.Sprintf("plan=%s segments=%d est=%.1fs", plan.ID, len(plan.Profiles), plan.Stats.EstimatedTime),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "speed (m/s)"}),
	)

	x := make([]string, 0, len(samples))
	y := make([]opts.LineData, 0, len(samples))
	for _, s := range samples {
		x = append(x, fmt.Sprintf("%.2f", s.T))
		y = append(y, opts.LineData{Value: s.Speed})
	}
	line.SetXAxis(x).AddSeries("speed_mps", y)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render velocity chart: %w", err)
	}
	return nil
}

// SavePNG writes a static speed-vs-time plot for the plan to path. The
// extension picks the format; .png is conventional.
func SavePNG(path string, plan *survey.FlightPlan, step float64) error {
	samples := SampleSpeedCurve(plan, step)

	p := plot.New()
	p.Title.Text = "Velocity Profile"
	p.X.Label.Text = "t (s)"
	p.Y.Label.Text = "speed (m/s)"

	pts := make(plotter.XYs, 0, len(samples))
	for _, s := range samples {
		pts = append(pts, plotter.XY{X: s.T, Y: s.Speed})
	}
	ln, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("build speed line: %w", err)
	}
	ln.Width = vg.Points(1)
	p.Add(ln)
	p.Legend.Add("speed_mps", ln)
	p.Legend.Top = true

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save velocity plot: %w", err)
	}
	return nil
}
