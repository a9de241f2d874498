package subtitle

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var (
	// one or more empty or whitespace-only lines
	blankRunRegex = regexp.MustCompile(`\r?\n(?:[ \t]*\r?\n)+`)
	lineRegex     = regexp.MustCompile(`\r?\n`)
	timeSepRegex  = regexp.MustCompile(`[:.,]`)
)

const timingArrow = "-->"

// Decoder turns caption payloads into sorted cues. The zero value is ready
// to use and discards warnings.
type Decoder struct {
	OnWarning func(Warning)
}

// parses with the zero Decoder
func Parse(raw, hint string) ([]Cue, error) {
	return Decoder{}.Parse(raw, hint)
}

// Parse decodes raw as SRT or VTT depending on the suffix of hint. The
// returned slice is never nil on success.
func (d Decoder) Parse(raw, hint string) ([]Cue, error) {
	format, err := FormatFromHint(hint)
	if err != nil {
		return nil, err
	}

	raw = strings.TrimPrefix(raw, "\ufeff")
	if format == FormatVTT {
		return d.parseVTT(raw)
	}
	return d.parseBlocks(raw, false)
}

// decodes a timestamp such as 01:02:03,456 or 02:03.456 into seconds
func ParseTime(s string) (float64, error) {
	parts := timeSepRegex.Split(s, -1)

	var hours, minutes, seconds, millis string
	switch len(parts) {
	case 3:
		minutes, seconds, millis = parts[0], parts[1], parts[2]
	case 4:
		hours, minutes, seconds, millis = parts[0], parts[1], parts[2], parts[3]
	default:
		return 0, &ParseError{Msg: "invalid timing", Input: s}
	}

	h := 0
	if hours != "" {
		v, err := strconv.Atoi(hours)
		if err != nil {
			return 0, &ParseError{Msg: "invalid timing", Input: s}
		}
		h = v
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, &ParseError{Msg: "invalid timing", Input: s}
	}
	sec, err := strconv.Atoi(seconds)
	if err != nil {
		return 0, &ParseError{Msg: "invalid timing", Input: s}
	}
	ms, err := strconv.Atoi(millis)
	if err != nil {
		return 0, &ParseError{Msg: "invalid timing", Input: s}
	}

	return float64(h)*3600 + float64(m)*60 + float64(sec) + float64(ms)/1000, nil
}

// shared block decoder; vtt additionally skips NOTE/STYLE/REGION blocks
func (d Decoder) parseBlocks(raw string, vtt bool) ([]Cue, error) {
	cues := make([]Cue, 0)

	for i, block := range blankRunRegex.Split(raw, -1) {
		block = strings.Trim(block, "\r\n")
		if strings.TrimSpace(block) == "" {
			continue
		}
		if vtt && isVTTMetadataBlock(block) {
			continue
		}

		lines := lineRegex.Split(block, -1)

		timingLine := -1
		if strings.Contains(lines[0], timingArrow) {
			timingLine = 0
		} else if len(lines) > 1 && strings.Contains(lines[1], timingArrow) {
			timingLine = 1
		}

		if timingLine < 0 {
			// continuation of the previous cue; an orphan block at the
			// start of the payload has nothing to attach to and is dropped
			if len(cues) == 0 {
				d.warn(i, "continuation block without a previous cue", block)
				continue
			}
			d.warn(i, "block without timing merged into previous cue", block)
			last := &cues[len(cues)-1]
			last.Text += LineBreak + strings.Join(lines, LineBreak)
			continue
		}

		// cue settings after the stop time are ignored
		fields := strings.Fields(lines[timingLine])
		if len(fields) < 3 || fields[1] != timingArrow {
			d.warn(i, "malformed timing line", block)
			continue
		}

		start, err := ParseTime(fields[0])
		if err != nil {
			return nil, err
		}
		stop, err := ParseTime(fields[2])
		if err != nil {
			return nil, err
		}
		if stop < start {
			d.warn(i, "cue ends before it starts", block)
			continue
		}

		cues = append(cues, Cue{
			Start: start,
			Stop:  stop,
			Text:  strings.Join(lines[timingLine+1:], LineBreak),
		})
	}

	slices.SortStableFunc(cues, func(a, b Cue) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return cues, nil
}

func (d Decoder) warn(block int, reason, text string) {
	if d.OnWarning == nil {
		return
	}
	d.OnWarning(Warning{Block: block, Reason: reason, Text: text})
}
