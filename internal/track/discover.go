package track

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// caption language looked up next to a media file
type Language struct {
	Code  string `yaml:"code"` // empty for the default track
	Label string `yaml:"label"`
}

func DefaultLanguages() []Language {
	return []Language{
		{Code: "", Label: "Default"},
		{Code: "eng", Label: "English"},
		{Code: "fre", Label: "French"},
		{Code: "jpn", Label: "Japanese"},
	}
}

// caption extensions in order of preference
func DefaultExtensions() []string {
	return []string{"vtt", "srt"}
}

// Discover finds caption files stored beside mediaPath. For every language
// it looks for <stem>.<code>.<ext> (or <stem>.<ext> for the code-less default
// language), trying extensions in order and keeping the first that exists.
func Discover(mediaPath string, languages []Language, extensions []string) ([]Track, error) {
	info, err := os.Stat(mediaPath)
	if err != nil {
		return nil, fmt.Errorf("media file not found: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("media path is a directory: %s", mediaPath)
	}

	dir := filepath.Dir(mediaPath)
	stem := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))

	var tracks []Track
	for _, lang := range languages {
		for _, ext := range extensions {
			ext = strings.TrimPrefix(ext, ".")
			name := stem + "." + ext
			if lang.Code != "" {
				name = stem + "." + lang.Code + "." + ext
			}

			candidate := filepath.Join(dir, name)
			if fi, err := os.Stat(candidate); err != nil || fi.IsDir() {
				continue
			}

			tracks = append(tracks, Track{
				Label:    lang.Label,
				Language: lang.Code,
				Source:   candidate,
				Default:  lang.Code == "",
			})
			break
		}
	}
	return tracks, nil
}

// ParseTrackFlag turns "label=source" (or a bare source) into a Track.
func ParseTrackFlag(value string) (Track, error) {
	label, source, ok := strings.Cut(value, "=")
	if !ok || strings.ContainsAny(label, "/\\:") {
		source = value
		label = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}
	label = strings.TrimSpace(label)
	source = strings.TrimSpace(source)
	if source == "" {
		return Track{}, fmt.Errorf("invalid track %q: empty source", value)
	}
	if label == "" {
		return Track{}, fmt.Errorf("invalid track %q: empty label", value)
	}
	return Track{Label: label, Source: source}, nil
}

// resource identity used to scope persisted state
func ResourceKey(mediaPath string) string {
	if IsRemote(mediaPath) {
		return mediaPath
	}
	if abs, err := filepath.Abs(mediaPath); err == nil {
		mediaPath = abs
	}
	return filepath.ToSlash(filepath.Clean(mediaPath))
}
