package track

import (
	"errors"
	"testing"

	"github.com/mgpai22/subsync/internal/store"
)

type failingStore struct {
	store.Store
}

func (failingStore) Set(key, value string) error {
	return errors.New("disk full")
}

func testTracks() []Track {
	return []Track{
		{Label: "English", Language: "eng", Source: "a.eng.srt"},
		{Label: "Default", Source: "a.vtt", Default: true},
		{Label: "Japanese", Language: "jpn", Source: "a.jpn.vtt"},
	}
}

func TestRegistrySelectWrapsModulo(t *testing.T) {
	tests := []struct {
		index int
		want  int
	}{
		{0, 0},
		{2, 2},
		{3, 0},
		{7, 1},
		{-1, 2},
		{-4, 2},
	}

	for _, tt := range tests {
		st := store.NewMemory()
		r := NewRegistry("/a.mp4", testTracks(), st)

		got, tr, err := r.Select(tt.index)
		if err != nil {
			t.Fatalf("Select(%d) error: %v", tt.index, err)
		}
		if got != tt.want || r.Current() != tt.want {
			t.Errorf("Select(%d) = %d (current %d), want %d", tt.index, got, r.Current(), tt.want)
		}
		if tr != testTracks()[tt.want] {
			t.Errorf("Select(%d) returned track %+v", tt.index, tr)
		}
		if v, _ := st.Get(store.TrackKey("/a.mp4")); v != string(rune('0'+tt.want)) {
			t.Errorf("Select(%d) persisted %q", tt.index, v)
		}
	}
}

func TestRegistrySelectCountEqualsZero(t *testing.T) {
	r := NewRegistry("/a.mp4", testTracks(), nil)
	a, _, _ := r.Select(r.Len())
	b, _, _ := r.Select(0)
	if a != b {
		t.Errorf("Select(len) = %d, Select(0) = %d", a, b)
	}
}

func TestRegistryNoTracks(t *testing.T) {
	r := NewRegistry("/a.mp4", nil, store.NewMemory())
	if _, _, err := r.Select(0); !errors.Is(err, ErrNoTracks) {
		t.Errorf("expected ErrNoTracks, got %v", err)
	}
	if _, ok := r.DefaultIndex(); ok {
		t.Error("expected no default index")
	}
}

func TestRegistrySelectPersistFailureStillSelects(t *testing.T) {
	r := NewRegistry("/a.mp4", testTracks(), failingStore{store.NewMemory()})
	idx, _, err := r.Select(1)
	if err == nil {
		t.Error("expected persistence error")
	}
	if idx != 1 || r.Current() != 1 {
		t.Errorf("selection not applied: idx %d current %d", idx, r.Current())
	}
}

func TestRegistryDefaultIndex(t *testing.T) {
	tests := []struct {
		name   string
		saved  string
		tracks []Track
		want   int
	}{
		{name: "default flag", tracks: testTracks(), want: 1},
		{name: "persisted wins", saved: "2", tracks: testTracks(), want: 2},
		{name: "unparseable persisted ignored", saved: "abc", tracks: testTracks(), want: 1},
		{
			name:   "first track fallback",
			tracks: []Track{{Label: "A", Source: "a.srt"}, {Label: "B", Source: "b.srt"}},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.NewMemory()
			if tt.saved != "" {
				_ = st.Set(store.TrackKey("/m.mp4"), tt.saved)
			}
			r := NewRegistry("/m.mp4", tt.tracks, st)
			got, ok := r.DefaultIndex()
			if !ok || got != tt.want {
				t.Errorf("DefaultIndex() = %d, %v; want %d", got, ok, tt.want)
			}
		})
	}
}

func TestRegistryDisable(t *testing.T) {
	r := NewRegistry("/a.mp4", testTracks(), nil)
	if r.Current() != Disabled {
		t.Errorf("new registry current = %d, want Disabled", r.Current())
	}
	_, _, _ = r.Select(1)
	r.Disable()
	if r.Current() != Disabled {
		t.Errorf("current after Disable = %d", r.Current())
	}
}
