package galaxy

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrOutOfRange is returned by Validate when a parameter lies outside its panel bounds.
var ErrOutOfRange = errors.New("parameter out of range")

// Color is an RGB color with components in [0, 1].
type Color = colorful.Color

// Parameters describe one galaxy. Size is consumed by renderers only and
// Randomness is carried but never read by Generate.
type Parameters struct {
	Count            int
	Size             float64
	Radius           float64
	Branches         int
	Spin             float64
	Randomness       float64
	RandomnessSpread float64
	RandomnessPower  float64
	InsideColor      Color
	OutsideColor     Color
}

// DefaultParameters returns the startup galaxy.
func DefaultParameters() Parameters {
	return Parameters{
		Count:            100000,
		Size:             0.01,
		Radius:           5,
		Branches:         4,
		Spin:             1,
		Randomness:       0.2,
		RandomnessSpread: 0.5,
		RandomnessPower:  3,
		InsideColor:      MustParseColor("#ff6030"),
		OutsideColor:     MustParseColor("#1b3984"),
	}
}

// ParseColor parses a "#rrggbb" string.
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return c, nil
}

// MustParseColor is ParseColor for literals.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Clamp snaps every numeric field into its control bounds.
func (p Parameters) Clamp() Parameters {
	for _, c := range Controls {
		v := c.Get(&p)
		if math.IsNaN(v) {
			v = c.Min
		}
		c.Set(&p, clamp(v, c.Min, c.Max))
	}
	p.InsideColor = p.InsideColor.Clamped()
	p.OutsideColor = p.OutsideColor.Clamped()
	return p
}

// Validate reports the first numeric field outside its control bounds.
func (p Parameters) Validate() error {
	for _, c := range Controls {
		v := c.Get(&p)
		if math.IsNaN(v) || v < c.Min || v > c.Max {
			return fmt.Errorf("%s=%g not in [%g, %g]: %w", c.Name, v, c.Min, c.Max, ErrOutOfRange)
		}
	}
	return nil
}

// String formats the parameters for logs and the HUD.
func (p Parameters) String() string {
	return fmt.Sprintf("count=%d size=%g radius=%g branches=%d spin=%g randomness=%g spread=%g power=%g inside=%s outside=%s",
		p.Count, p.Size, p.Radius, p.Branches, p.Spin, p.Randomness,
		p.RandomnessSpread, p.RandomnessPower, p.InsideColor.Hex(), p.OutsideColor.Hex())
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
