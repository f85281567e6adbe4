// Package plot renders the diagnostic charts of a regression run as PNG files.
package plot

import (
	"fmt"
	"io"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"
)

// ScatterOptions sizes the predicted-vs-actual chart.
type ScatterOptions struct {
	WidthIn  float64
	HeightIn float64
	DPI      float64
}

// DefaultScatterOptions returns a 10x6 inch chart at 300 DPI.
func DefaultScatterOptions() ScatterOptions {
	return ScatterOptions{WidthIn: 10, HeightIn: 6, DPI: 300}
}

var (
	observationColor = drawing.Color{R: 65, G: 105, B: 225, A: 128} // royal blue, half transparent
	gridColor        = drawing.Color{R: 176, G: 176, B: 176, A: 178}
)

// WriteScatter renders the chart to a new file at path.
func WriteScatter(path string, fitted, actual []float64, r2 float64, opt ScatterOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := RenderScatter(f, fitted, actual, r2, opt); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// RenderScatter draws fitted (x) against actual (y) accuracy with an identity
// reference line spanning the observed range, and writes a PNG to w.
func RenderScatter(w io.Writer, fitted, actual []float64, r2 float64, opt ScatterOptions) error {
	graph, err := newScatterChart(fitted, actual, r2, opt)
	if err != nil {
		return err
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render scatter: %w", err)
	}
	return nil
}

// newScatterChart builds the chart with both series on the left-hand axis.
// go-chart draws its primary Y axis on the right, so the primary axis is
// hidden and pinned to the data range to keep range checks satisfied.
func newScatterChart(fitted, actual []float64, r2 float64, opt ScatterOptions) (*chart.Chart, error) {
	if len(fitted) != len(actual) {
		return nil, fmt.Errorf("scatter: %d fitted values for %d observations", len(fitted), len(actual))
	}
	if len(actual) < 2 {
		return nil, fmt.Errorf("scatter: need at least 2 observations, got %d", len(actual))
	}
	if opt.DPI <= 0 {
		opt = DefaultScatterOptions()
	}
	// Pixel-valued styles are tuned for 100 DPI.
	s := opt.DPI / 100
	lo, hi := floats.Min(actual), floats.Max(actual)

	grid := chart.Style{StrokeColor: gridColor, StrokeWidth: 1 * s, StrokeDashArray: []float64{4 * s, 3 * s}}
	graph := &chart.Chart{
		Title:      fmt.Sprintf("Regression Results: Predicted vs Actual (R² = %.3f)", r2),
		TitleStyle: chart.Style{FontSize: 14},
		Width:      int(opt.WidthIn * opt.DPI),
		Height:     int(opt.HeightIn * opt.DPI),
		DPI:        opt.DPI,
		Background: chart.Style{Padding: chart.Box{Top: int(50 * s), Left: int(20 * s), Right: int(30 * s), Bottom: int(20 * s)}},
		XAxis: chart.XAxis{
			Name:           "Predicted Accuracy",
			NameStyle:      chart.Style{FontSize: 12},
			GridMajorStyle: grid,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{Hidden: true},
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		YAxisSecondary: chart.YAxis{
			Name:           "Actual Accuracy",
			NameStyle:      chart.Style{FontSize: 12},
			GridMajorStyle: grid,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Observations",
				YAxis:   chart.YAxisSecondary,
				XValues: fitted,
				YValues: actual,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    3 * s,
					DotColor:    observationColor,
				},
			},
			chart.ContinuousSeries{
				Name:    "Ideal Line",
				YAxis:   chart.YAxisSecondary,
				XValues: []float64{lo, hi},
				YValues: []float64{lo, hi},
				Style:   chart.Style{StrokeColor: drawing.ColorRed, StrokeWidth: 2 * s},
			},
		},
	}
	graph.Elements = []chart.Renderable{markerLegend(graph, s)}
	return graph, nil
}
