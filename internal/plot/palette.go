package plot

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	coolEnd = colorful.Color{R: 59.0 / 255, G: 76.0 / 255, B: 192.0 / 255}
	midGray = colorful.Color{R: 221.0 / 255, G: 221.0 / 255, B: 221.0 / 255}
	warmEnd = colorful.Color{R: 180.0 / 255, G: 4.0 / 255, B: 38.0 / 255}
)

// Coolwarm returns n colors running from blue through light gray to red,
// blended in CIE-L*a*b* space.
func Coolwarm(n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		t := 0.5
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		var c colorful.Color
		if t < 0.5 {
			c = coolEnd.BlendLab(midGray, t*2)
		} else {
			c = midGray.BlendLab(warmEnd, (t-0.5)*2)
		}
		out[i] = c.Clamped()
	}
	return out
}
