package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mgpai22/subsync/internal/clipboard"
	"github.com/mgpai22/subsync/internal/config"
	"github.com/mgpai22/subsync/internal/media"
	"github.com/mgpai22/subsync/internal/player"
	"github.com/mgpai22/subsync/internal/subtitle"
	"github.com/mgpai22/subsync/internal/track"
)

const controlsHelp = `Commands:
  p          play / pause
  n          next caption
  b          previous caption
  v          next track
  V          subtitles off
  s <time>   seek (seconds or hh:mm:ss.mmm)
  r <rate>   playback rate
  c          copy caption to clipboard
  i          status
  q          quit`

var errQuit = errors.New("quit")

// clock operations the player commands need beyond media.Clock
type playbackClock interface {
	media.Clock
	Toggle()
	SetRate(rate float64)
	Duration() float64
}

// controller applies one-line player commands to the engine and clock. Like
// the engine it must only be used from the player loop.
type controller struct {
	engine    *player.Engine
	clock     playbackClock
	clipboard clipboard.Writer
	out       io.Writer
}

// Handle runs one command line. It returns errQuit for the quit command.
func (c *controller) Handle(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := fields[0], fields[1:]

	switch name {
	case "p":
		c.clock.Toggle()
	case "n":
		c.engine.JumpToNext()
	case "b":
		c.engine.JumpToPrevious()
	case "v":
		if len(c.engine.Tracks()) == 0 {
			return track.ErrNoTracks
		}
		c.engine.CycleTrack()
		c.printTrack()
	case "V":
		c.engine.DisableSubtitles()
		fmt.Fprintln(c.out, "Subtitles off")
	case "s":
		if len(args) != 1 {
			return errors.New("usage: s <time>")
		}
		pos, err := parsePosition(args[0])
		if err != nil {
			return err
		}
		c.clock.SetPosition(pos)
	case "r":
		if len(args) != 1 {
			return errors.New("usage: r <rate>")
		}
		rate, err := strconv.ParseFloat(args[0], 64)
		if err != nil || !config.ValidRate(rate) {
			return fmt.Errorf("invalid rate %q", args[0])
		}
		c.clock.SetRate(rate)
	case "c":
		return c.copyCaption()
	case "i":
		c.printStatus()
	case "h", "?", "help":
		fmt.Fprintln(c.out, controlsHelp)
	case "q", "quit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (h for help)", name)
	}
	return nil
}

func (c *controller) copyCaption() error {
	cue, ok := c.engine.Current()
	if !ok {
		return errors.New("no caption on screen")
	}
	if err := c.clipboard.WriteAll(cue.Text); err != nil {
		return fmt.Errorf("failed to copy caption: %w", err)
	}
	fmt.Fprintln(c.out, "Caption copied")
	return nil
}

func (c *controller) printTrack() {
	index := c.engine.CurrentTrack()
	tracks := c.engine.Tracks()
	if index < 0 || index >= len(tracks) {
		return
	}
	fmt.Fprintf(c.out, "Track %d: %s\n", index, tracks[index].Label)
}

func (c *controller) printStatus() {
	state := "playing"
	if c.clock.Paused() {
		state = "paused"
	}

	position := subtitle.FormatTime(c.clock.Position(), '.')
	if d := c.clock.Duration(); d > 0 {
		position += " / " + subtitle.FormatTime(d, '.')
	}

	label := "off"
	if index := c.engine.CurrentTrack(); index >= 0 {
		label = fmt.Sprintf("%s (%d cues)", c.engine.Tracks()[index].Label, len(c.engine.Cues()))
	}

	fmt.Fprintf(c.out, "%s %s  rate %gx  track %s\n", state, position, c.clock.Rate(), label)
}
