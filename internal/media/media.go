package media

import (
	"path/filepath"
	"strings"
)

// media clock notifications
type Event int

const (
	EventPlaying Event = iota
	EventPaused
	EventRateChanged
	EventSeeked
	EventTimeUpdate
)

func (e Event) String() string {
	switch e {
	case EventPlaying:
		return "playing"
	case EventPaused:
		return "pause"
	case EventRateChanged:
		return "ratechange"
	case EventSeeked:
		return "seeked"
	case EventTimeUpdate:
		return "timeupdate"
	default:
		return "unknown"
	}
}

// Clock is the playback clock of a media element. Positions are in seconds.
// Implementations are confined to the goroutine running the player loop.
type Clock interface {
	Position() float64
	SetPosition(seconds float64)
	Rate() float64
	Paused() bool
	Subscribe(fn func(Event))
}

// checks if the file is a video file based on extension
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	videoExts := map[string]bool{
		".mp4":  true,
		".mkv":  true,
		".webm": true,
		".mov":  true,
		".m4v":  true,
		".avi":  true,
	}
	return videoExts[ext]
}

// checks if the file is an audio file based on extension
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	audioExts := map[string]bool{
		".mp3":  true,
		".m4a":  true,
		".ogg":  true,
		".opus": true,
		".flac": true,
		".wav":  true,
	}
	return audioExts[ext]
}

// checks if the file is either audio or video
func IsMediaFile(path string) bool {
	return IsAudioFile(path) || IsVideoFile(path)
}
