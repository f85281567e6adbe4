package plot

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	chart "github.com/wcharczuk/go-chart/v2"
)

func sampleFit() (fitted, actual []float64) {
	for i := 0; i < 30; i++ {
		a := 0.6 + 0.01*float64(i)
		actual = append(actual, a)
		fitted = append(fitted, a+0.02*math.Sin(float64(i)))
	}
	return fitted, actual
}

func TestRenderScatterDefaultSize(t *testing.T) {
	fitted, actual := sampleFit()
	var buf bytes.Buffer
	require.NoError(t, RenderScatter(&buf, fitted, actual, 0.87, DefaultScatterOptions()))

	cfg, format, err := image.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 3000, cfg.Width)
	assert.Equal(t, 1800, cfg.Height)
}

func TestRenderScatterRejectsMismatchedInput(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, RenderScatter(&buf, []float64{1, 2}, []float64{1}, 0.5, DefaultScatterOptions()))
	assert.Error(t, RenderScatter(&buf, []float64{1}, []float64{1}, 0.5, DefaultScatterOptions()))
}

func TestScatterChartUsesLeftAxis(t *testing.T) {
	fitted, actual := sampleFit()
	graph, err := newScatterChart(fitted, actual, 0.87, DefaultScatterOptions())
	require.NoError(t, err)

	assert.True(t, graph.YAxis.Style.Hidden)
	assert.Equal(t, "Actual Accuracy", graph.YAxisSecondary.Name)
	require.Len(t, graph.Series, 2)
	for _, s := range graph.Series {
		assert.Equal(t, chart.YAxisSecondary, s.GetYAxis(), s.GetName())
	}
}

// markerRecorder counts legend markers drawn on top of a real raster renderer.
type markerRecorder struct {
	chart.Renderer
	circles int
	lines   int
}

func (m *markerRecorder) Circle(radius float64, x, y int) {
	m.circles++
	m.Renderer.Circle(radius, x, y)
}

func (m *markerRecorder) LineTo(x, y int) {
	m.lines++
	m.Renderer.LineTo(x, y)
}

func TestMarkerLegendDrawsDotForScatterSeries(t *testing.T) {
	fitted, actual := sampleFit()
	graph, err := newScatterChart(fitted, actual, 0.87, ScatterOptions{WidthIn: 4, HeightIn: 3, DPI: 100})
	require.NoError(t, err)

	base, err := chart.PNG(400, 300)
	require.NoError(t, err)
	font, err := chart.GetDefaultFont()
	require.NoError(t, err)
	rec := &markerRecorder{Renderer: base}

	markerLegend(graph, 1)(rec, chart.Box{Top: 10, Left: 10, Right: 390, Bottom: 290}, chart.Style{Font: font})
	assert.Equal(t, 1, rec.circles, "one dot marker for the observations")
	// Draw.Box strokes four edges; the ideal line adds one sample segment.
	assert.Equal(t, 5, rec.lines)
}

func TestWriteScatterUnwritableDirectory(t *testing.T) {
	fitted, actual := sampleFit()
	path := filepath.Join(t.TempDir(), "missing", "plot.png")
	err := WriteScatter(path, fitted, actual, 0.5, ScatterOptions{WidthIn: 4, HeightIn: 3, DPI: 50})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGroupBy(t *testing.T) {
	keys := []float64{3, 1, 3, 2, math.NaN(), 1}
	vals := []float64{0.7, 0.9, 0.6, 0.8, 0.5, math.NaN()}
	groups, err := GroupBy(keys, vals)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, "1", groups[0].Label)
	assert.Equal(t, []float64{0.9}, groups[0].Values)
	assert.Equal(t, "2", groups[1].Label)
	assert.Equal(t, []float64{0.7, 0.6}, groups[2].Values)

	_, err = GroupBy([]float64{1}, nil)
	assert.Error(t, err)
}

func TestWriteFactors(t *testing.T) {
	coefs := []Coefficient{
		{Name: "execution_time_seconds", Value: -0.004},
		{Name: "cost_per_task_cents", Value: 0.01},
		{Name: "task_complexity", Value: -0.02},
	}
	var keys, vals []float64
	for i := 0; i < 40; i++ {
		k := float64(1 + i%5)
		keys = append(keys, k)
		vals = append(vals, 0.95-0.03*k+0.01*math.Cos(float64(i)))
	}
	groups, err := GroupBy(keys, vals)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "factors_analysis.png")
	require.NoError(t, WriteFactors(path, coefs, groups, DefaultFactorsOptions()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 1600, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestRenderFactorsRequiresData(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, RenderFactors(&buf, nil, []Group{{Label: "1", Values: []float64{1}}}, DefaultFactorsOptions()))
	assert.Error(t, RenderFactors(&buf, []Coefficient{{Name: "x", Value: 1}}, nil, DefaultFactorsOptions()))
}

func TestCoolwarm(t *testing.T) {
	assert.Len(t, Coolwarm(0), 0)
	one := Coolwarm(1)
	require.Len(t, one, 1)

	pal := Coolwarm(5)
	require.Len(t, pal, 5)
	r0, _, b0, _ := pal[0].RGBA()
	r4, _, b4, _ := pal[4].RGBA()
	assert.Greater(t, b0, r0, "first color should be cool")
	assert.Greater(t, r4, b4, "last color should be warm")
}
