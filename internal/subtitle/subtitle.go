package subtitle

import (
	"fmt"
	"strings"
)

// joins the lines of a multi-line cue
const LineBreak = "\n"

// represents single timed caption, offsets in seconds
type Cue struct {
	Start float64
	Stop  float64
	Text  string
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
)

// picks the format from the suffix of a file name or locator
func FormatFromHint(hint string) (Format, error) {
	lower := strings.ToLower(hint)
	switch {
	case strings.HasSuffix(lower, "srt"):
		return FormatSRT, nil
	case strings.HasSuffix(lower, "vtt"):
		return FormatVTT, nil
	default:
		return "", &ParseError{Msg: "unsupported format", Input: hint}
	}
}

// ParseError reports a payload that cannot be decoded at all.
type ParseError struct {
	Msg   string
	Input string
}

func (e *ParseError) Error() string {
	if e.Input == "" {
		return "parse error: " + e.Msg
	}
	return fmt.Sprintf("parse error: %s %q", e.Msg, e.Input)
}

// recoverable problem in a single block; the block was dropped or merged
type Warning struct {
	Block  int
	Reason string
	Text   string
}

// interface for writing cues to files
type Writer interface {
	Write(cues []Cue, path string) error
}
