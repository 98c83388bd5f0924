package galaxy

import "math"

// Control binds one numeric parameter to a panel widget.
type Control struct {
	Name    string
	Min     float64
	Max     float64
	Step    float64
	Integer bool
	Get     func(p *Parameters) float64
	Set     func(p *Parameters, v float64)
}

// Snap rounds v to the control step and clamps it into bounds.
func (c Control) Snap(v float64) float64 {
	if c.Step > 0 {
		v = math.Round(v/c.Step) * c.Step
	}
	return clamp(v, c.Min, c.Max)
}

// Fraction maps a value to its slider position in [0, 1].
func (c Control) Fraction(v float64) float64 {
	if c.Max == c.Min {
		return 0
	}
	return clamp((v-c.Min)/(c.Max-c.Min), 0, 1)
}

// FromFraction is the inverse of Fraction, snapped.
func (c Control) FromFraction(f float64) float64 {
	return c.Snap(c.Min + clamp(f, 0, 1)*(c.Max-c.Min))
}

// Nudge moves the value by n steps.
func (c Control) Nudge(p *Parameters, n int) {
	c.Set(p, c.Snap(c.Get(p)+float64(n)*c.Step))
}

// ColorControl binds one color parameter to a picker.
type ColorControl struct {
	Name string
	Get  func(p *Parameters) Color
	Set  func(p *Parameters, c Color)
}

// Controls lists the numeric parameters in panel order.
var Controls = []Control{
	{
		Name: "count", Min: 100, Max: 500000, Step: 1000, Integer: true,
		Get: func(p *Parameters) float64 { return float64(p.Count) },
		Set: func(p *Parameters, v float64) { p.Count = int(math.Round(v)) },
	},
	{
		Name: "size", Min: 0.01, Max: 0.1, Step: 0.001,
		Get: func(p *Parameters) float64 { return p.Size },
		Set: func(p *Parameters, v float64) { p.Size = v },
	},
	{
		Name: "radius", Min: 0.01, Max: 20, Step: 0.01,
		Get: func(p *Parameters) float64 { return p.Radius },
		Set: func(p *Parameters, v float64) { p.Radius = v },
	},
	{
		Name: "branches", Min: 2, Max: 20, Step: 1, Integer: true,
		Get: func(p *Parameters) float64 { return float64(p.Branches) },
		Set: func(p *Parameters, v float64) { p.Branches = int(math.Round(v)) },
	},
	{
		Name: "spin", Min: -5, Max: 5, Step: 0.001,
		Get: func(p *Parameters) float64 { return p.Spin },
		Set: func(p *Parameters, v float64) { p.Spin = v },
	},
	{
		Name: "randomness", Min: 0, Max: 2, Step: 0.001,
		Get: func(p *Parameters) float64 { return p.Randomness },
		Set: func(p *Parameters, v float64) { p.Randomness = v },
	},
	{
		Name: "randomnessSpread", Min: 0, Max: 1, Step: 0.001,
		Get: func(p *Parameters) float64 { return p.RandomnessSpread },
		Set: func(p *Parameters, v float64) { p.RandomnessSpread = v },
	},
	{
		Name: "randomnessPower", Min: 1, Max: 10, Step: 0.001,
		Get: func(p *Parameters) float64 { return p.RandomnessPower },
		Set: func(p *Parameters, v float64) { p.RandomnessPower = v },
	},
}

// ColorControls lists the color parameters in panel order.
var ColorControls = []ColorControl{
	{
		Name: "insideColor",
		Get:  func(p *Parameters) Color { return p.InsideColor },
		Set:  func(p *Parameters, c Color) { p.InsideColor = c },
	},
	{
		Name: "outsideColor",
		Get:  func(p *Parameters) Color { return p.OutsideColor },
		Set:  func(p *Parameters, c Color) { p.OutsideColor = c },
	},
}

// ControlByName finds a numeric control.
func ControlByName(name string) (Control, bool) {
	for _, c := range Controls {
		if c.Name == name {
			return c, true
		}
	}
	return Control{}, false
}
