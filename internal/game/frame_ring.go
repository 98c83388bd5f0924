package game

import "time"

// frameRing records the last N frame durations so the HUD can draw a
// frame-time graph.
type frameRing struct {
	buffer    []time.Duration
	nextIndex int
	filled    int
}

func newFrameRing(ringSize int) *frameRing {
	return &frameRing{
		buffer: make([]time.Duration, ringSize),
	}
}

func (r *frameRing) push(d time.Duration) {
	r.buffer[r.nextIndex] = d
	r.nextIndex++
	if r.nextIndex >= len(r.buffer) {
		r.nextIndex = 0
	}
	if r.filled < len(r.buffer) {
		r.filled++
	}
}

// snapshot returns up to the last n durations, most recent last.
func (r *frameRing) snapshot(n int) []time.Duration {
	if n > r.filled {
		n = r.filled
	}
	out := make([]time.Duration, n)
	// Walk backwards from nextIndex - 1
	idx := r.nextIndex - 1
	for i := n - 1; i >= 0; i-- {
		if idx < 0 {
			idx = len(r.buffer) - 1
		}
		out[i] = r.buffer[idx]
		idx--
	}
	return out
}

// max returns the longest duration currently held.
func (r *frameRing) max() time.Duration {
	var m time.Duration
	for _, d := range r.snapshot(r.filled) {
		if d > m {
			m = d
		}
	}
	return m
}
