package player

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/mgpai22/subsync/internal/logging"
	"github.com/mgpai22/subsync/internal/media"
	"github.com/mgpai22/subsync/internal/store"
	"github.com/mgpai22/subsync/internal/subtitle"
	"github.com/mgpai22/subsync/internal/track"
)

// shortest wake we arm, so a boundary equal to the position cannot spin
const minWake = time.Millisecond

// longest wake a time.Duration can hold
const maxWake = time.Duration(math.MaxInt64)

type Options struct {
	// identifies the media for persisted state
	Resource string
	Tracks   []track.Track

	Clock      media.Clock
	Loader     track.Loader
	Store      store.Store
	Renderer   Renderer
	Dispatcher Dispatcher
	Scheduler  Scheduler
	Logger     *logging.Logger
}

// Engine keeps the rendered caption in step with a media clock. It is not
// safe for concurrent use: all methods must run on the Dispatcher's
// goroutine, and asynchronous work (caption fetches, wake timers) posts its
// completion back there.
type Engine struct {
	clock      media.Clock
	loader     track.Loader
	store      store.Store
	renderer   Renderer
	dispatcher Dispatcher
	scheduler  Scheduler
	logger     *logging.Logger
	decoder    subtitle.Decoder

	registry *track.Registry

	// nil when no captions are loaded; replaced wholesale, never mutated
	cues []subtitle.Cue

	wake    Timer
	wakeSeq uint64

	// bumped by every selection and by Disable; tags in-flight fetches
	epoch uint64

	ctx    context.Context
	cancel context.CancelFunc
	closed bool
}

func New(opts Options) (*Engine, error) {
	if opts.Clock == nil {
		return nil, errors.New("clock is required")
	}
	if opts.Loader == nil {
		return nil, errors.New("loader is required")
	}
	if opts.Renderer == nil {
		return nil, errors.New("renderer is required")
	}
	if opts.Dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	if opts.Scheduler == nil {
		opts.Scheduler = WallScheduler{}
	}
	if opts.Store == nil {
		opts.Store = store.NewMemory()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		clock:      opts.Clock,
		loader:     opts.Loader,
		store:      opts.Store,
		renderer:   opts.Renderer,
		dispatcher: opts.Dispatcher,
		scheduler:  opts.Scheduler,
		logger:     opts.Logger,
		registry:   track.NewRegistry(opts.Resource, opts.Tracks, opts.Store),
		ctx:        ctx,
		cancel:     cancel,
	}
	e.decoder = subtitle.Decoder{OnWarning: func(w subtitle.Warning) {
		e.logger.Warnw("Invalid cue",
			"reason", w.Reason,
			"block", w.Block,
			"text", w.Text,
		)
	}}

	e.clock.Subscribe(e.HandleEvent)
	return e, nil
}

// Start restores the persisted position and loads the default track.
func (e *Engine) Start() {
	e.RestorePosition()
	e.SelectDefaultTrack()
}

// Close cancels the pending wake and in-flight fetches. Late completions
// are ignored.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.cancelWake()
	e.cancel()
}

func (e *Engine) Tracks() []track.Track {
	return e.registry.Tracks()
}

// index of the selected track, track.Disabled when subtitles are off
func (e *Engine) CurrentTrack() int {
	return e.registry.Current()
}

func (e *Engine) Cues() []subtitle.Cue {
	return e.cues
}

// cue under the clock position, if any
func (e *Engine) Current() (subtitle.Cue, bool) {
	_, current, _ := subtitle.Locate(e.cues, e.clock.Position())
	if current == nil {
		return subtitle.Cue{}, false
	}
	return *current, true
}

// HandleEvent reacts to media clock notifications.
func (e *Engine) HandleEvent(ev media.Event) {
	if e.closed {
		return
	}
	switch ev {
	case media.EventPlaying, media.EventPaused, media.EventRateChanged, media.EventSeeked:
		e.Resync()
	case media.EventTimeUpdate:
		e.savePosition()
	}
}

// SelectTrack switches to track index (modulo the track count) and loads
// its captions asynchronously. The pending wake is cancelled at once; the
// current cues stay in place until the new payload has been parsed, and are
// resynced again if it fails to load.
func (e *Engine) SelectTrack(index int) {
	if e.closed || e.registry.Len() == 0 {
		return
	}

	index, t, err := e.registry.Select(index)
	if err != nil {
		e.logger.Warnw("Failed to save track selection",
			"resource", e.registry.Resource(),
			"error", err,
		)
	}

	// the wake belongs to the previous track's timeline
	e.cancelWake()
	e.epoch++
	epoch := e.epoch

	e.logger.Debugw("Loading subtitles",
		"track", index,
		"label", t.Label,
		"source", t.Source,
	)

	ctx := e.ctx
	go func() {
		resp, err := e.loader.Fetch(ctx, t.Source)
		e.dispatcher.Post(func() {
			e.finishFetch(epoch, index, t, resp, err)
		})
	}()
}

func (e *Engine) finishFetch(epoch uint64, index int, t track.Track, resp *track.Response, err error) {
	if e.closed {
		return
	}
	if epoch != e.epoch || index != e.registry.Current() {
		e.logger.Debugw("Discarding stale subtitles",
			"track", index,
			"source", t.Source,
		)
		return
	}

	if err == nil {
		err = track.CheckResponse(t.Source, resp)
	}
	if err != nil {
		e.logger.Warnw("Failed to load subtitles file",
			"source", t.Source,
			"error", err,
		)
		e.Resync()
		return
	}

	cues, err := e.decoder.Parse(resp.Body, t.Source)
	if err != nil {
		e.logger.Warnw("Failed to parse subtitles file",
			"source", t.Source,
			"error", err,
		)
		e.Resync()
		return
	}

	e.logger.Infow("Loaded subtitles",
		"label", t.Label,
		"cues", len(cues),
	)
	e.cues = cues
	e.Resync()
}

// SelectDefaultTrack selects the persisted track, else the default-flagged
// one, else the first. No-op without tracks.
func (e *Engine) SelectDefaultTrack() {
	index, ok := e.registry.DefaultIndex()
	if !ok {
		return
	}
	e.SelectTrack(index)
}

// Disable turns subtitles off and discards any fetch still in flight.
func (e *Engine) Disable() {
	e.epoch++
	e.cues = nil
	e.registry.Disable()
	e.Resync()
}

// Resync renders the cue under the clock position and arms a wake for the
// next boundary. Any pending wake is cancelled first.
func (e *Engine) Resync() {
	e.cancelWake()
	if e.closed {
		return
	}

	position := e.clock.Position()
	_, current, next := subtitle.Locate(e.cues, position)

	var boundary float64
	hasBoundary := false
	if current != nil {
		e.renderer.Render(current.Text)
		boundary, hasBoundary = current.Stop, true
	} else {
		e.renderer.Clear()
		if next != nil {
			boundary, hasBoundary = next.Start, true
		}
	}

	rate := e.clock.Rate()
	if e.clock.Paused() || !hasBoundary || !(rate > 0) {
		return
	}

	delay := WakeDelay(boundary, position, rate)
	e.arm(delay)
}

// WakeDelay is the wall-clock time in seconds until the media clock reaches
// boundary, clamped to zero.
func WakeDelay(boundary, position, rate float64) float64 {
	delay := (boundary - position) / rate
	if delay < 0 || math.IsNaN(delay) {
		return 0
	}
	return delay
}

func (e *Engine) arm(seconds float64) {
	d := maxWake
	if seconds < maxWake.Seconds() {
		d = time.Duration(seconds * float64(time.Second))
	}
	if d < minWake {
		d = minWake
	}

	e.wakeSeq++
	seq := e.wakeSeq
	e.wake = e.scheduler.AfterFunc(d, func() {
		e.dispatcher.Post(func() {
			// a resync after this timer was armed supersedes it
			if seq != e.wakeSeq || e.closed {
				return
			}
			e.wake = nil
			e.Resync()
		})
	})
}

func (e *Engine) cancelWake() {
	// invalidates a timer that already fired but has not run yet
	e.wakeSeq++
	if e.wake != nil {
		e.wake.Stop()
		e.wake = nil
	}
}

// true while a wake timer is armed
func (e *Engine) Scheduled() bool {
	return e.wake != nil
}

// RestorePosition seeks to the position persisted for this resource.
func (e *Engine) RestorePosition() {
	saved, ok := e.store.Get(store.PositionKey(e.registry.Resource()))
	if !ok {
		return
	}
	pos, err := strconv.ParseFloat(saved, 64)
	if err != nil || math.IsNaN(pos) || math.IsInf(pos, 0) || pos < 0 {
		e.logger.Debugw("Ignoring saved position", "value", saved)
		return
	}
	e.clock.SetPosition(pos)
}

func (e *Engine) savePosition() {
	pos := strconv.FormatFloat(e.clock.Position(), 'f', 3, 64)
	if err := e.store.Set(store.PositionKey(e.registry.Resource()), pos); err != nil {
		e.logger.Warnw("Failed to save position",
			"resource", e.registry.Resource(),
			"error", err,
		)
	}
}
