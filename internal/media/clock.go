package media

import (
	"time"
)

// VirtualClock is a media clock advanced by wall time. It starts paused at
// position 0 with rate 1. A positive duration bounds the position; reaching
// it pauses the clock.
type VirtualClock struct {
	now      func() time.Time
	duration float64

	anchor    time.Time // wall time of the last re-anchor
	base      float64   // position at anchor
	rate      float64
	paused    bool
	listeners []func(Event)
}

func NewVirtualClock(duration time.Duration) *VirtualClock {
	return newVirtualClock(duration, time.Now)
}

func newVirtualClock(duration time.Duration, now func() time.Time) *VirtualClock {
	return &VirtualClock{
		now:      now,
		duration: duration.Seconds(),
		anchor:   now(),
		rate:     1,
		paused:   true,
	}
}

func (c *VirtualClock) Subscribe(fn func(Event)) {
	c.listeners = append(c.listeners, fn)
}

func (c *VirtualClock) emit(e Event) {
	for _, fn := range c.listeners {
		fn(e)
	}
}

func (c *VirtualClock) Duration() float64 {
	return c.duration
}

func (c *VirtualClock) Position() float64 {
	pos := c.base
	if !c.paused {
		pos += c.now().Sub(c.anchor).Seconds() * c.rate
	}
	return c.clamp(pos)
}

func (c *VirtualClock) clamp(pos float64) float64 {
	if pos < 0 {
		return 0
	}
	if c.duration > 0 && pos > c.duration {
		return c.duration
	}
	return pos
}

// freezes the current position as the new base
func (c *VirtualClock) reanchor() {
	c.base = c.Position()
	c.anchor = c.now()
}

func (c *VirtualClock) Rate() float64 {
	return c.rate
}

func (c *VirtualClock) Paused() bool {
	return c.paused
}

func (c *VirtualClock) Ended() bool {
	return c.duration > 0 && c.Position() >= c.duration
}

// SetPosition seeks and emits EventSeeked, like a media element does after
// its currentTime is assigned.
func (c *VirtualClock) SetPosition(seconds float64) {
	c.base = c.clamp(seconds)
	c.anchor = c.now()
	c.emit(EventSeeked)
}

func (c *VirtualClock) Play() {
	if !c.paused {
		return
	}
	if c.Ended() {
		c.base = 0
	}
	c.anchor = c.now()
	c.paused = false
	c.emit(EventPlaying)
}

func (c *VirtualClock) Pause() {
	if c.paused {
		return
	}
	c.reanchor()
	c.paused = true
	c.emit(EventPaused)
}

func (c *VirtualClock) Toggle() {
	if c.paused {
		c.Play()
	} else {
		c.Pause()
	}
}

func (c *VirtualClock) SetRate(rate float64) {
	if rate == c.rate {
		return
	}
	c.reanchor()
	c.rate = rate
	c.emit(EventRateChanged)
}

// Tick emits EventTimeUpdate and pauses the clock once it reaches the end.
func (c *VirtualClock) Tick() {
	if c.paused {
		return
	}
	c.emit(EventTimeUpdate)
	if c.Ended() {
		c.Pause()
	}
}
