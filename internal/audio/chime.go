package audio

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/iburimskiy/galaxy-visualization/internal/galaxy"
)

const (
	sampleRate    = beep.SampleRate(44100)
	chimeDuration = 180 * time.Millisecond
	chimeVolume   = 0.25
	baseFrequency = 220.0
)

// Chime plays a short tone whenever a new galaxy is published. The pitch
// climbs a semitone per branch above two.
type Chime struct {
	logger  *slog.Logger
	enabled bool
	playing int
	play    func(beep.Streamer)
}

// NewChime initializes the speaker. With enabled false, or when the audio
// device cannot be opened, the chime is silent and Play is a no-op.
func NewChime(enabled bool, logger *slog.Logger) *Chime {
	c := &Chime{logger: logger.With("component", "audio")}
	if !enabled {
		return c
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		c.logger.Warn("Audio disabled", "error", fmt.Errorf("speaker init: %w", err))
		return c
	}
	c.enabled = true
	c.play = func(s beep.Streamer) { speaker.Play(s) }
	return c
}

// Enabled reports whether Play produces sound.
func (c *Chime) Enabled() bool { return c.enabled }

// Play starts the chime for p without blocking.
func (c *Chime) Play(p galaxy.Parameters) {
	if !c.enabled {
		return
	}
	// At most one chime plays at a time; playing is guarded by the speaker lock.
	speaker.Lock()
	busy := c.playing > 0
	if !busy {
		c.playing++
	}
	speaker.Unlock()
	if busy {
		return
	}

	c.play(beep.Seq(
		tone(sampleRate, frequency(p.Branches), chimeDuration),
		beep.Callback(func() { c.playing-- }),
	))
}

// Close releases the audio device.
func (c *Chime) Close() {
	if c.enabled {
		speaker.Close()
		c.enabled = false
	}
}

func frequency(branches int) float64 {
	return baseFrequency * math.Pow(2, float64(max(branches-2, 0))/12)
}

// tone is an exponentially decaying sine of the given length.
func tone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	total := sr.N(d)
	pos := 0
	step := 2 * math.Pi * freq / float64(sr)
	decay := 5.0 / float64(max(total, 1))

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if pos >= total {
				return i, i > 0
			}
			v := math.Sin(step*float64(pos)) * math.Exp(-decay*float64(pos)) * chimeVolume
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return len(samples), true
	})
}
