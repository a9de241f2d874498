package track

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	media := touch(t, dir, "episode.mp4")
	defaultSRT := touch(t, dir, "episode.srt")
	engVTT := touch(t, dir, "episode.eng.vtt")
	touch(t, dir, "episode.eng.srt")
	jpnSRT := touch(t, dir, "episode.jpn.srt")
	touch(t, dir, "other.fre.srt")

	tracks, err := Discover(media, DefaultLanguages(), DefaultExtensions())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []Track{
		{Label: "Default", Language: "", Source: defaultSRT, Default: true},
		{Label: "English", Language: "eng", Source: engVTT},
		{Label: "Japanese", Language: "jpn", Source: jpnSRT},
	}
	if len(tracks) != len(want) {
		t.Fatalf("got %d tracks (%+v), want %d", len(tracks), tracks, len(want))
	}
	for i := range want {
		if tracks[i] != want[i] {
			t.Errorf("track %d = %+v, want %+v", i, tracks[i], want[i])
		}
	}
}

func TestDiscoverMissingMedia(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope.mp4"), DefaultLanguages(), DefaultExtensions()); err == nil {
		t.Error("expected error for missing media")
	}
}

func TestParseTrackFlag(t *testing.T) {
	tests := []struct {
		value   string
		want    Track
		wantErr bool
	}{
		{value: "English=subs/a.en.srt", want: Track{Label: "English", Source: "subs/a.en.srt"}},
		{value: "subs/a.en.srt", want: Track{Label: "a.en", Source: "subs/a.en.srt"}},
		{value: "https://host/a.vtt?sig=1", want: Track{Label: "a", Source: "https://host/a.vtt?sig=1"}},
		{value: "Remote=https://host/a.vtt", want: Track{Label: "Remote", Source: "https://host/a.vtt"}},
		{value: "Empty=", wantErr: true},
		{value: "=a.srt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseTrackFlag(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResourceKey(t *testing.T) {
	if got := ResourceKey("https://host/v.mp4"); got != "https://host/v.mp4" {
		t.Errorf("remote key = %q", got)
	}
	key := ResourceKey("videos/../videos/a.mp4")
	if !filepath.IsAbs(filepath.FromSlash(key)) {
		t.Errorf("local key %q is not absolute", key)
	}
}
