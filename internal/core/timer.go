package core

import "time"

// FrameLimiter caps how often a view redraws when updates arrive faster than
// it can usefully display them.
type FrameLimiter struct {
	interval time.Duration
	last     time.Time
}

// NewFrameLimiter constructs a limiter allowing at most fps frames per second.
func NewFrameLimiter(fps int) *FrameLimiter {
	f := &FrameLimiter{}
	f.SetFPS(fps)
	return f
}

// SetFPS changes the frame cap. Non-positive values fall back to 30.
func (f *FrameLimiter) SetFPS(fps int) {
	if fps <= 0 {
		fps = 30
	}
	f.interval = time.Second / time.Duration(fps)
}

// Interval returns the minimum spacing between frames.
func (f *FrameLimiter) Interval() time.Duration { return f.interval }

// Ready reports whether a frame may be drawn at now, and if so records it.
func (f *FrameLimiter) Ready(now time.Time) bool {
	if !f.last.IsZero() && now.Sub(f.last) < f.interval {
		return false
	}
	f.last = now
	return true
}

// Remaining returns how long until the next frame is allowed.
func (f *FrameLimiter) Remaining(now time.Time) time.Duration {
	if f.last.IsZero() {
		return 0
	}
	if d := f.interval - now.Sub(f.last); d > 0 {
		return d
	}
	return 0
}
