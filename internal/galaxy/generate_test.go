package galaxy

import (
	"math"
	"math/rand/v2"
	"testing"
)

// constSource returns the same draw forever.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func seeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestGenerateLengths(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{name: "Zero count", count: 0, want: 0},
		{name: "Negative count", count: -5, want: 0},
		{name: "Lower bound", count: 100, want: 100},
		{name: "Upper bound", count: 500000, want: 500000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParameters()
			p.Count = tt.count
			f := Generate(p, seeded(1))

			if f.Len() != tt.want {
				t.Errorf("Expected %d particles, got %d", tt.want, f.Len())
			}
			if len(f.Positions) != 3*tt.want || len(f.Colors) != 3*tt.want {
				t.Errorf("Expected %d floats per buffer, got positions=%d colors=%d",
					3*tt.want, len(f.Positions), len(f.Colors))
			}
			if f.Positions == nil || f.Colors == nil {
				t.Error("Buffers should be non-nil even when empty")
			}
		})
	}
}

func TestGenerateBaseRadiusBounded(t *testing.T) {
	p := DefaultParameters()
	p.Count = 20000
	p.Radius = 7
	p.RandomnessSpread = 0
	f := Generate(p, seeded(42))

	// Each planar offset is at most strength (1), so the planar distance can
	// exceed the base radius by at most sqrt(2).
	limit := p.Radius + math.Sqrt2 + 1e-4
	for i := 0; i < f.Len(); i++ {
		x, y, z := f.Position(i)
		d := math.Hypot(float64(x), float64(z))
		if d > limit {
			t.Fatalf("Particle %d at planar distance %g exceeds %g", i, d, limit)
		}
		if math.Abs(float64(y)) > 1+1e-6 {
			t.Fatalf("Particle %d has vertical scatter %g beyond strength", i, y)
		}
	}
}

func TestGenerateColorEndpoints(t *testing.T) {
	p := DefaultParameters()
	p.Count = 8
	p.InsideColor = MustParseColor("#ff0000")
	p.OutsideColor = MustParseColor("#0000ff")

	tests := []struct {
		name    string
		draw    float64
		r, g, b float32
	}{
		{name: "Center", draw: 0, r: 1, g: 0, b: 0},
		{name: "Rim", draw: 1, r: 0, g: 0, b: 1},
		{name: "Midway", draw: 0.5, r: 0.5, g: 0, b: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Generate(p, constSource(tt.draw))
			for i := 0; i < f.Len(); i++ {
				r, g, b := f.Color(i)
				if !near(r, tt.r) || !near(g, tt.g) || !near(b, tt.b) {
					t.Errorf("Particle %d: expected (%g,%g,%g), got (%g,%g,%g)", i, tt.r, tt.g, tt.b, r, g, b)
				}
			}
		})
	}
}

func TestGenerateBranchesShareArms(t *testing.T) {
	p := DefaultParameters()
	p.Count = 16
	p.Branches = 4
	p.Spin = 1.5
	p.RandomnessSpread = 1

	// Draw 0.5 gives zero jitter, radius R/2 and identical offsets for every particle.
	f := Generate(p, constSource(0.5))

	for i := 0; i+p.Branches < f.Len(); i++ {
		x1, y1, z1 := f.Position(i)
		x2, y2, z2 := f.Position(i + p.Branches)
		if x1 != x2 || y1 != y2 || z1 != z2 {
			t.Errorf("Particles %d and %d should coincide: (%g,%g,%g) vs (%g,%g,%g)",
				i, i+p.Branches, x1, y1, z1, x2, y2, z2)
		}
	}

	// Remove the common offset and check neighbouring arms are 2π/branches apart.
	radius := 0.5 * p.Radius
	strength := 1 - 0.5*p.RandomnessSpread
	off := -math.Pow(0.5, p.RandomnessPower) * strength
	for i := 0; i < p.Branches; i++ {
		x, _, z := f.Position(i)
		got := math.Atan2(float64(z)-off, float64(x)-off)
		want := float64(i)/float64(p.Branches)*2*math.Pi + radius*p.Spin
		if d := angleDiff(got, want); d > 1e-5 {
			t.Errorf("Arm %d: expected angle %g, got %g", i, want, got)
		}
	}
}

func TestGenerateZeroRadius(t *testing.T) {
	p := DefaultParameters()
	p.Count = 50
	p.Radius = 0
	p.RandomnessSpread = 1
	f := Generate(p, seeded(7))

	for i := 0; i < f.Len(); i++ {
		x, y, z := f.Position(i)
		r, g, b := f.Color(i)
		for _, v := range []float32{x, y, z, r, g, b} {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				t.Fatalf("Particle %d has undefined component", i)
			}
		}
		// Strength falls back to 1 so offsets still reach full magnitude.
		if math.Abs(float64(x)) > 1+1e-6 || math.Abs(float64(z)) > 1+1e-6 {
			t.Fatalf("Particle %d outside unit scatter: (%g,%g)", i, x, z)
		}
		ir, ig, ib := float32(p.InsideColor.R), float32(p.InsideColor.G), float32(p.InsideColor.B)
		if !near(r, ir) || !near(g, ig) || !near(b, ib) {
			t.Fatalf("Particle %d should keep the inside color", i)
		}
	}
}

func TestGenerateDegenerateBranches(t *testing.T) {
	p := DefaultParameters()
	p.Count = 10
	p.Branches = 0

	f := Generate(p, seeded(3))
	if f.Len() != 10 {
		t.Errorf("Expected 10 particles, got %d", f.Len())
	}
}

func TestGenerateFreshBuffers(t *testing.T) {
	p := DefaultParameters()
	p.Count = 10
	src := seeded(9)

	a := Generate(p, src)
	b := Generate(p, src)
	if &a.Positions[0] == &b.Positions[0] || &a.Colors[0] == &b.Colors[0] {
		t.Error("Each call must allocate its own buffers")
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	p := DefaultParameters()
	p.Count = 100

	a := Generate(p, seeded(11))
	b := Generate(p, seeded(11))
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] || a.Colors[i] != b.Colors[i] {
			t.Fatalf("Seeded runs differ at index %d", i)
		}
	}
}

func TestRandomnessIsInert(t *testing.T) {
	p := DefaultParameters()
	p.Count = 100
	q := p
	q.Randomness = 1.7

	a := Generate(p, seeded(5))
	b := Generate(q, seeded(5))
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Fatalf("Randomness changed particle data at index %d", i)
		}
	}
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return math.Min(d, 2*math.Pi-d)
}
