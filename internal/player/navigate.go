package player

import (
	"github.com/mgpai22/subsync/internal/subtitle"
)

// offset past a cue start so the jump lands inside the cue rather than on
// its boundary
const navEpsilon = 1e-9

// JumpToPrevious seeks to the start of the previous cue, or to 0 when there
// is none. No-op without captions.
func (e *Engine) JumpToPrevious() {
	if e.cues == nil {
		return
	}
	previous, _, _ := subtitle.Locate(e.cues, e.clock.Position())
	if previous != nil {
		e.clock.SetPosition(previous.Start + navEpsilon)
	} else {
		e.clock.SetPosition(0)
	}
	e.Resync()
}

// JumpToNext seeks to the start of the next cue. No-op without captions or
// when no cue follows.
func (e *Engine) JumpToNext() {
	if e.cues == nil {
		return
	}
	_, _, next := subtitle.Locate(e.cues, e.clock.Position())
	if next == nil {
		return
	}
	e.clock.SetPosition(next.Start + navEpsilon)
	e.Resync()
}

// CycleTrack selects the track after the current one; from the disabled
// state that is the first track.
func (e *Engine) CycleTrack() {
	e.SelectTrack(e.registry.Current() + 1)
}

func (e *Engine) DisableSubtitles() {
	e.Disable()
}
