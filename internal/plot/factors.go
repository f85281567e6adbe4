package plot

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// FactorsOptions sizes the two-panel factors figure.
type FactorsOptions struct {
	WidthIn  float64
	HeightIn float64
	DPI      float64
	// GroupLabel names the grouping column on the box plot's X axis.
	GroupLabel string
}

// DefaultFactorsOptions returns a 16x6 inch figure at 100 DPI.
func DefaultFactorsOptions() FactorsOptions {
	return FactorsOptions{WidthIn: 16, HeightIn: 6, DPI: 100, GroupLabel: "Complexity Level (1-10)"}
}

// Coefficient is one bar of the coefficient panel.
type Coefficient struct {
	Name  string
	Value float64
}

// Group is one box of the distribution panel.
type Group struct {
	Label  string
	Key    float64
	Values []float64
}

var teal = color.RGBA{R: 0, G: 128, B: 128, A: 255}

// GroupBy buckets values by key, ordered by ascending key. Pairs where either
// side is NaN are skipped.
func GroupBy(keys, values []float64) ([]Group, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("group: %d keys for %d values", len(keys), len(values))
	}
	idx := map[float64]int{}
	var groups []Group
	for i, k := range keys {
		v := values[i]
		if math.IsNaN(k) || math.IsNaN(v) {
			continue
		}
		j, ok := idx[k]
		if !ok {
			j = len(groups)
			idx[k] = j
			groups = append(groups, Group{Key: k, Label: strconv.FormatFloat(k, 'g', -1, 64)})
		}
		groups[j].Values = append(groups[j].Values, v)
	}
	sort.Slice(groups, func(a, b int) bool { return groups[a].Key < groups[b].Key })
	return groups, nil
}

// WriteFactors renders the figure to a new file at path.
func WriteFactors(path string, coefs []Coefficient, groups []Group, opt FactorsOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := RenderFactors(f, coefs, groups, opt); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// RenderFactors draws a horizontal bar chart of coefficients next to a box
// plot of the response per group and writes a PNG to w.
func RenderFactors(w io.Writer, coefs []Coefficient, groups []Group, opt FactorsOptions) error {
	if len(coefs) == 0 {
		return fmt.Errorf("factors: no coefficients to plot")
	}
	if len(groups) == 0 {
		return fmt.Errorf("factors: no groups to plot")
	}
	if opt.DPI <= 0 {
		opt = DefaultFactorsOptions()
	}
	left, err := coefficientPanel(coefs)
	if err != nil {
		return err
	}
	right, err := boxPanel(groups, opt.GroupLabel)
	if err != nil {
		return err
	}

	img := vgimg.NewWith(
		vgimg.UseWH(vg.Length(opt.WidthIn)*vg.Inch, vg.Length(opt.HeightIn)*vg.Inch),
		vgimg.UseDPI(int(opt.DPI)),
	)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 1, Cols: 2,
		PadTop: vg.Points(8), PadBottom: vg.Points(8),
		PadLeft: vg.Points(8), PadRight: vg.Points(8),
		PadX: vg.Points(36),
	}
	canvases := plot.Align([][]*plot.Plot{{left, right}}, tiles, dc)
	left.Draw(canvases[0][0])
	right.Draw(canvases[0][1])

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("render factors: %w", err)
	}
	return nil
}

func coefficientPanel(coefs []Coefficient) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Impact of Factors on Accuracy (Coefficients)"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Coefficient Value"

	vals := make(plotter.Values, len(coefs))
	names := make([]string, len(coefs))
	for i, c := range coefs {
		vals[i] = c.Value
		names[i] = c.Name
	}
	bars, err := plotter.NewBarChart(vals, vg.Points(28))
	if err != nil {
		return nil, fmt.Errorf("coefficient bars: %w", err)
	}
	bars.Horizontal = true
	bars.Color = teal
	bars.LineStyle.Width = 0

	grid := plotter.NewGrid()
	grid.Horizontal.Color = nil
	grid.Vertical.Color = color.Gray{Y: 200}
	grid.Vertical.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}

	zero, err := plotter.NewLine(plotter.XYs{{X: 0, Y: -0.5}, {X: 0, Y: float64(len(coefs)) - 0.5}})
	if err != nil {
		return nil, fmt.Errorf("zero line: %w", err)
	}
	zero.LineStyle.Width = vg.Points(1)
	zero.LineStyle.Color = color.Black

	p.Add(grid, bars, zero)
	p.NominalY(names...)
	return p, nil
}

func boxPanel(groups []Group, groupLabel string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Accuracy Distribution by Task Complexity"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = groupLabel
	p.Y.Label.Text = "Accuracy"

	palette := Coolwarm(len(groups))
	labels := make([]string, len(groups))
	for i, g := range groups {
		box, err := plotter.NewBoxPlot(vg.Points(30), float64(i), plotter.Values(g.Values))
		if err != nil {
			return nil, fmt.Errorf("box plot %s: %w", g.Label, err)
		}
		box.FillColor = palette[i]
		p.Add(box)
		labels[i] = g.Label
	}
	p.NominalX(labels...)
	return p, nil
}
