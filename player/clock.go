package player

import (
	"errors"
	"math"
)

// ErrUnplayable is returned for tracks whose duration is unknown or zero.
var ErrUnplayable = errors.New("track has no playable duration")

// seekEpsilon is the smallest progress change a seek must make to be accepted.
const seekEpsilon = 1e-6

// Clock derives playback progress from decoded time and track duration.
type Clock struct {
	progress float64
	duration float64
	running  bool
}

// Reset zeroes progress and duration and stops the clock.
func (c *Clock) Reset() {
	c.progress = 0
	c.duration = 0
	c.running = false
}

// SetDuration records the track length in seconds.
func (c *Clock) SetDuration(d float64) error {
	if !(d > 0) || math.IsInf(d, 1) {
		return ErrUnplayable
	}
	c.duration = d
	return nil
}

// Start marks the clock as running. It has no effect before SetDuration succeeded.
func (c *Clock) Start() {
	if c.duration > 0 {
		c.running = true
	}
}

// Advance sets progress to t over the duration. The ratio is not clamped.
func (c *Clock) Advance(t float64) {
	if c.duration > 0 {
		c.progress = t / c.duration
	}
}

// Seek moves progress to ratio and reports whether the seek was accepted.
// Seeks are ignored while stopped and when they would not move progress.
func (c *Clock) Seek(ratio float64) bool {
	if !c.running || math.Abs(ratio-c.progress) <= seekEpsilon {
		return false
	}
	c.progress = ratio
	return true
}

// Finish pins progress to the end and stops the clock.
func (c *Clock) Finish() {
	c.progress = 1
	c.running = false
}

// Halt stops the clock without touching progress.
func (c *Clock) Halt() {
	c.running = false
}

func (c *Clock) Progress() float64 { return c.progress }
func (c *Clock) Duration() float64 { return c.duration }
func (c *Clock) Running() bool     { return c.running }

// Elapsed returns the position in seconds.
func (c *Clock) Elapsed() float64 {
	return c.progress * c.duration
}
