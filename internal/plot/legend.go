package plot

import (
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// markerLegend is chart.Legend with one change: series drawn as dots only
// (stroke disabled) get a dot marker instead of a line sample. Pixel sizes
// are multiplied by scale.
func markerLegend(c *chart.Chart, scale float64) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		style := defaults.InheritFrom(chart.Style{
			FillColor:   drawing.ColorWhite,
			FontColor:   chart.DefaultTextColor,
			FontSize:    8.0,
			StrokeColor: chart.DefaultAxisColor,
			StrokeWidth: chart.DefaultAxisLineWidth,
		})
		pad := int(5 * scale)
		gap := int(5 * scale)
		sample := int(25 * scale)
		spacing := int(float64(chart.DefaultMinimumTickVerticalSpacing) * scale)

		var labels []string
		var styles []chart.Style
		for _, s := range c.Series {
			if st := s.GetStyle(); !st.Hidden && s.GetName() != "" {
				labels = append(labels, s.GetName())
				styles = append(styles, st)
			}
		}
		if len(labels) == 0 {
			return
		}

		style.GetTextOptions().WriteToRenderer(r)
		content := chart.Box{Top: cb.Top + pad, Left: cb.Left + pad, Right: cb.Left + pad, Bottom: cb.Top + pad}
		for i, l := range labels {
			tb := r.MeasureText(l)
			if i > 0 {
				content.Bottom += spacing
			}
			content.Bottom += tb.Height()
			content.Right = chart.MaxInt(content.Right, content.Left+tb.Width()+gap+sample)
		}
		box := chart.Box{Top: cb.Top, Left: cb.Left, Right: content.Right + pad, Bottom: content.Bottom + pad}
		chart.Draw.Box(r, box, style)

		style.GetTextOptions().WriteToRenderer(r)
		y := content.Top
		for i, l := range labels {
			if i > 0 {
				y += spacing
			}
			tb := r.MeasureText(l)
			ty := y + tb.Height()
			r.Text(l, content.Left, ty)

			mid := ty - tb.Height()/2
			x0 := content.Left + tb.Width() + gap
			x1 := content.Right
			st := styles[i]
			if isDotOnly(st) {
				r.SetFillColor(st.GetDotColor())
				r.SetStrokeColor(st.GetDotColor())
				r.SetStrokeWidth(1)
				r.Circle(st.GetDotWidth(), (x0+x1)/2, mid)
				r.FillStroke()
			} else {
				r.SetStrokeColor(st.GetStrokeColor())
				r.SetStrokeWidth(st.GetStrokeWidth())
				r.SetStrokeDashArray(st.GetStrokeDashArray())
				r.MoveTo(x0, mid)
				r.LineTo(x1, mid)
				r.Stroke()
			}
			y += tb.Height()
		}
	}
}

func isDotOnly(s chart.Style) bool {
	return s.StrokeWidth == chart.Disabled && s.DotWidth > 0
}
