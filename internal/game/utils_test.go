package game

import (
	"math"
	"testing"
	"time"

	"github.com/iburimskiy/galaxy-visualization/internal/galaxy"
)

func TestFrameRingSnapshot(t *testing.T) {
	r := newFrameRing(4)
	if got := r.snapshot(10); len(got) != 0 {
		t.Fatalf("Empty ring should yield nothing, got %v", got)
	}

	for i := 1; i <= 6; i++ {
		r.push(time.Duration(i) * time.Millisecond)
	}

	tests := []struct {
		name string
		n    int
		want []time.Duration
	}{
		{name: "Last two", n: 2, want: []time.Duration{5 * time.Millisecond, 6 * time.Millisecond}},
		{name: "Whole ring", n: 4, want: []time.Duration{3 * time.Millisecond, 4 * time.Millisecond, 5 * time.Millisecond, 6 * time.Millisecond}},
		{name: "More than held", n: 9, want: []time.Duration{3 * time.Millisecond, 4 * time.Millisecond, 5 * time.Millisecond, 6 * time.Millisecond}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.snapshot(tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Expected %v, got %v", tt.want, got)
				}
			}
		})
	}

	if r.max() != 6*time.Millisecond {
		t.Errorf("Expected max 6ms, got %v", r.max())
	}
}

func TestComplementaryPalette(t *testing.T) {
	inside, outside, err := complementaryPalette(0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if inside.R < inside.G || inside.R < inside.B {
		t.Errorf("Hue 0 should be red dominant, got %s", inside.Hex())
	}
	if outside.B < outside.R || outside.G < outside.R {
		t.Errorf("Complement of red should be cyan leaning, got %s", outside.Hex())
	}

	h1, _, _ := inside.Hsv()
	h2, _, _ := outside.Hsv()
	if d := math.Abs(math.Mod(h2-h1+360, 360) - 180); d > 3 {
		t.Errorf("Hues should be opposite, got %g and %g", h1, h2)
	}

	wrapped, _, err := complementaryPalette(-360)
	if err != nil || wrapped != inside {
		t.Errorf("Negative hue should wrap, got %s err=%v", wrapped.Hex(), err)
	}
}

func TestFormatControlValue(t *testing.T) {
	count, _ := galaxy.ControlByName("count")
	radius, _ := galaxy.ControlByName("radius")
	spin, _ := galaxy.ControlByName("spin")

	tests := []struct {
		name string
		c    galaxy.Control
		v    float64
		want string
	}{
		{name: "Integer", c: count, v: 100000, want: "100000"},
		{name: "Hundredths", c: radius, v: 5, want: "5.00"},
		{name: "Thousandths", c: spin, v: -1.25, want: "-1.250"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatControlValue(tt.c, tt.v); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestWorldReplacesClouds(t *testing.T) {
	w := &world{}
	g := galaxy.New(pointRenderer{}, w, galaxy.WithSeed(1))

	p := galaxy.DefaultParameters()
	p.Count = 200
	g.Commit(p)
	first := w.clouds[0]
	g.Commit(p)

	if len(w.clouds) != 1 {
		t.Fatalf("Expected one cloud, got %d", len(w.clouds))
	}
	if !first.released || first.field != nil || first.vertices != nil {
		t.Error("Replaced cloud should drop its buffers")
	}
	if w.clouds[0] == first || w.clouds[0].field.Len() != 200 {
		t.Error("Scene should hold the new cloud")
	}
	first.Release()
}

func TestQuadIndices(t *testing.T) {
	if len(quadIndices) != maxBatchQuads*6 {
		t.Fatalf("Expected %d indices, got %d", maxBatchQuads*6, len(quadIndices))
	}
	if last := quadIndices[len(quadIndices)-2]; last != math.MaxUint16 {
		t.Errorf("Last quad should reach index %d, got %d", math.MaxUint16, last)
	}
}
