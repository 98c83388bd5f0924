package galaxy

import (
	"math"
)

// Source yields uniform values in [0, 1). *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// Field is one generated galaxy: interleaved x,y,z positions and r,g,b colors,
// laid out the way vertex attribute buffers expect them.
type Field struct {
	Positions []float32
	Colors    []float32
}

// Len returns the number of particles.
func (f *Field) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Positions) / 3
}

// Position returns the coordinates of particle i.
func (f *Field) Position(i int) (x, y, z float32) {
	i3 := i * 3
	return f.Positions[i3], f.Positions[i3+1], f.Positions[i3+2]
}

// Color returns the color of particle i.
func (f *Field) Color(i int) (r, g, b float32) {
	i3 := i * 3
	return f.Colors[i3], f.Colors[i3+1], f.Colors[i3+2]
}

// Generate builds a fresh field for p. It never fails: a non-positive count
// yields an empty field and a zero radius disables the radius ratio.
func Generate(p Parameters, src Source) *Field {
	count := max(p.Count, 0)
	branches := max(p.Branches, 1)

	f := &Field{
		Positions: make([]float32, count*3),
		Colors:    make([]float32, count*3),
	}

	for i := 0; i < count; i++ {
		i3 := i * 3

		radius := src.Float64() * p.Radius
		branchAngle := float64(i%branches)/float64(branches)*math.Pi*2 + jitter(src)
		spinAngle := radius*p.Spin + jitter(src)

		// Fraction of the way to the rim; drives both damping and color.
		t := 0.0
		if p.Radius != 0 {
			t = radius / p.Radius
		}
		strength := 1 - t*p.RandomnessSpread

		randomX := offset(src, p.RandomnessPower, strength)
		randomY := offset(src, p.RandomnessPower, strength)
		randomZ := offset(src, p.RandomnessPower, strength)

		angle := branchAngle + spinAngle
		f.Positions[i3] = float32(math.Cos(angle)*radius + randomX)
		f.Positions[i3+1] = float32(randomY)
		f.Positions[i3+2] = float32(math.Sin(angle)*radius + randomZ)

		mixed := p.InsideColor.BlendRgb(p.OutsideColor, t)
		f.Colors[i3] = float32(mixed.R)
		f.Colors[i3+1] = float32(mixed.G)
		f.Colors[i3+2] = float32(mixed.B)
	}

	return f
}

// jitter is symmetric angular noise in [-0.05, 0.05) radians.
func jitter(src Source) float64 {
	return src.Float64()*0.1 - 0.05
}

// offset draws a magnitude, then a sign.
func offset(src Source, power, strength float64) float64 {
	v := math.Pow(src.Float64(), power) * strength
	if src.Float64() < 0.5 {
		return v
	}
	return -v
}
