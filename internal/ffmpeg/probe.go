package ffmpeg

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const DefaultProbeTimeout = 10 * time.Second

var ErrNotInstalled = errors.New("ffprobe not found in PATH")

// subtitle stream muxed into a media file
type SubtitleStream struct {
	Index    int
	Codec    string
	Language string
	Title    string
}

type Info struct {
	Duration  time.Duration
	Subtitles []SubtitleStream
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		Index     int    `json:"index"`
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Tags      struct {
			Language string `json:"language"`
			Title    string `json:"title"`
		} `json:"tags"`
	} `json:"streams"`
}

// reports whether ffprobe can be run
func Available() bool {
	_, err := exec.LookPath("ffprobe")
	return err == nil
}

// Probe runs ffprobe on a local media file.
func Probe(filePath string, timeout time.Duration) (*Info, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}
	if !Available() {
		return nil, ErrNotInstalled
	}

	out, err := ffmpeg.ProbeWithTimeout(filePath, timeout, ffmpeg.KwArgs{
		"v": "quiet",
	})
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}
	return parseProbe(out)
}

// duration of an audio/video file
func GetDuration(filePath string, timeout time.Duration) (time.Duration, error) {
	info, err := Probe(filePath, timeout)
	if err != nil {
		return 0, err
	}
	return info.Duration, nil
}

func parseProbe(raw string) (*Info, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(probe.Format.Duration), 64)
	if err != nil || seconds < 0 {
		return nil, fmt.Errorf("failed to parse duration %q", probe.Format.Duration)
	}

	info := &Info{Duration: time.Duration(seconds * float64(time.Second))}
	for _, s := range probe.Streams {
		if s.CodecType != "subtitle" {
			continue
		}
		info.Subtitles = append(info.Subtitles, SubtitleStream{
			Index:    s.Index,
			Codec:    s.CodecName,
			Language: s.Tags.Language,
			Title:    s.Tags.Title,
		})
	}
	return info, nil
}
