package track

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/mgpai22/subsync/internal/store"
)

// index of the "subtitles disabled" selection
const Disabled = -1

var ErrNoTracks = errors.New("no subtitle tracks")

// selectable caption source for a media resource
type Track struct {
	Label    string
	Language string // empty for the default/unspecified language
	Source   string
	Default  bool
}

// Registry holds the tracks of one resource and the current selection.
// Selections are persisted in the store under store.TrackKey(resource).
type Registry struct {
	resource string
	tracks   []Track
	current  int
	store    store.Store
}

func NewRegistry(resource string, tracks []Track, st store.Store) *Registry {
	return &Registry{
		resource: resource,
		tracks:   append([]Track(nil), tracks...),
		current:  Disabled,
		store:    st,
	}
}

func (r *Registry) Resource() string {
	return r.resource
}

func (r *Registry) Len() int {
	return len(r.tracks)
}

func (r *Registry) Tracks() []Track {
	return append([]Track(nil), r.tracks...)
}

// current index, Disabled when no track is selected
func (r *Registry) Current() int {
	return r.current
}

// Select makes index (taken modulo the track count) the current track and
// persists it. The selection applies even when persisting it fails; that
// failure is returned alongside the selected track.
func (r *Registry) Select(index int) (int, Track, error) {
	n := len(r.tracks)
	if n == 0 {
		return Disabled, Track{}, ErrNoTracks
	}

	index = ((index % n) + n) % n
	r.current = index

	var err error
	if r.store != nil {
		if serr := r.store.Set(store.TrackKey(r.resource), strconv.Itoa(index)); serr != nil {
			err = fmt.Errorf("failed to persist track selection: %w", serr)
		}
	}
	return index, r.tracks[index], err
}

// DefaultIndex picks the track to start with: the persisted selection, then
// the track flagged Default, then the first one.
func (r *Registry) DefaultIndex() (int, bool) {
	if len(r.tracks) == 0 {
		return Disabled, false
	}

	if r.store != nil {
		if saved, ok := r.store.Get(store.TrackKey(r.resource)); ok {
			if index, err := strconv.Atoi(saved); err == nil {
				return index, true
			}
		}
	}

	for i, t := range r.tracks {
		if t.Default {
			return i, true
		}
	}
	return 0, true
}

func (r *Registry) Disable() {
	r.current = Disabled
}
