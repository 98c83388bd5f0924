package game

import (
	"fmt"
	"math"
	"time"

	"github.com/crazy3lf/colorconv"
	"github.com/iburimskiy/galaxy-visualization/internal/galaxy"
)

// hsvColor converts HSV (hue: 0-360, saturation: 0-1, value: 0-1) to a galaxy color.
func hsvColor(h, s, v float64) (galaxy.Color, error) {
	r, g, b, err := colorconv.HSVToRGB(math.Mod(h, 360), s, v)
	if err != nil {
		return galaxy.Color{}, fmt.Errorf("hsv(%g, %g, %g): %w", h, s, v, err)
	}
	return galaxy.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, nil
}

// complementaryPalette returns a bright core color for hue and a dimmer rim
// color on the opposite side of the wheel.
func complementaryPalette(hue float64) (inside, outside galaxy.Color, err error) {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	if inside, err = hsvColor(hue, 0.8, 1); err != nil {
		return
	}
	outside, err = hsvColor(hue+180, 0.8, 0.55)
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatElapsed formats a duration in milliseconds with one decimal.
func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
}
