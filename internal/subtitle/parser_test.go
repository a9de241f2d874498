package subtitle

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{input: "00:00:01,000", want: 1},
		{input: "00:00:02,500", want: 2.5},
		{input: "01:02:03.456", want: 3723.456},
		{input: "02:03.456", want: 123.456},
		{input: "10:00,5", want: 600.005},
		{input: "01,000", wantErr: true},
		{input: "5", wantErr: true},
		{input: "aa:00:01,000", wantErr: true},
		{input: "00:00:01:000:1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTime(tt.input)
			if tt.wantErr {
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("ParseTime(%q) error = %v, want *ParseError", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTime(%q) unexpected error: %v", tt.input, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSingleSRTCue(t *testing.T) {
	cues, err := Parse("1\n00:00:01,000 --> 00:00:02,500\nHello", "movie.srt")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := []Cue{{Start: 1.0, Stop: 2.5, Text: "Hello"}}
	if !reflect.DeepEqual(cues, want) {
		t.Errorf("got %+v, want %+v", cues, want)
	}
}

func TestParseVTTStripsHeader(t *testing.T) {
	cues, err := Parse("WEBVTT\n\n00:00:00.000 --> 00:00:01.000\nHi\n", "movie.vtt")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := []Cue{{Start: 0, Stop: 1, Text: "Hi"}}
	if !reflect.DeepEqual(cues, want) {
		t.Errorf("got %+v, want %+v", cues, want)
	}
}

func TestParseTwoComponentTimingFails(t *testing.T) {
	_, err := Parse("1\n01,000 --> 02,000\nHello", "a.srt")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Msg != "invalid timing" {
		t.Errorf("expected 'invalid timing', got %q", perr.Msg)
	}
}

func TestParseUnsupportedHint(t *testing.T) {
	_, err := Parse("whatever", "captions.ass")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Msg != "unsupported format" {
		t.Errorf("expected 'unsupported format', got %q", perr.Msg)
	}
}

func TestParseHintIsSuffixMatch(t *testing.T) {
	payload := "00:00:01,000 --> 00:00:02,000\nA"
	for _, hint := range []string{"srt", "x.SRT", "http://host/subs/ep1.en.srt"} {
		cues, err := Parse(payload, hint)
		if err != nil {
			t.Errorf("Parse(hint=%q) error: %v", hint, err)
			continue
		}
		if len(cues) != 1 {
			t.Errorf("Parse(hint=%q) got %d cues, want 1", hint, len(cues))
		}
	}
}

func TestParseSRTRecovery(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		want         []Cue
		wantWarnings int
	}{
		{
			name:  "timing on first line without index",
			input: "00:00:01,000 --> 00:00:02,000\nA\n\n00:00:03,000 --> 00:00:04,000\nB",
			want: []Cue{
				{Start: 1, Stop: 2, Text: "A"},
				{Start: 3, Stop: 4, Text: "B"},
			},
		},
		{
			name:  "continuation merged into previous cue",
			input: "1\n00:00:01,000 --> 00:00:02,000\nfirst\n\nsecond line\nthird line\n\n2\n00:00:05,000 --> 00:00:06,000\nB",
			want: []Cue{
				{Start: 1, Stop: 2, Text: "first\nsecond line\nthird line"},
				{Start: 5, Stop: 6, Text: "B"},
			},
			wantWarnings: 1,
		},
		{
			name:  "orphan continuation dropped",
			input: "orphan text\n\n1\n00:00:01,000 --> 00:00:02,000\nA",
			want: []Cue{
				{Start: 1, Stop: 2, Text: "A"},
			},
			wantWarnings: 1,
		},
		{
			name:  "bad separator dropped",
			input: "1\n00:00:01,000 -> 00:00:02,000 -->\nA\n\n2\n00:00:03,000 --> 00:00:04,000\nB",
			want: []Cue{
				{Start: 3, Stop: 4, Text: "B"},
			},
			wantWarnings: 1,
		},
		{
			name:         "reversed cue dropped",
			input:        "1\n00:00:05,000 --> 00:00:04,000\nA",
			want:         []Cue{},
			wantWarnings: 1,
		},
		{
			name:  "extra tokens after stop ignored",
			input: "1\n00:00:01,000 --> 00:00:02,000 X1:40 line:0\nA",
			want: []Cue{
				{Start: 1, Stop: 2, Text: "A"},
			},
		},
		{
			name:  "crlf and several blank lines",
			input: "\ufeff1\r\n00:00:01,000 --> 00:00:02,000\r\nA\r\nB\r\n\r\n  \r\n\r\n2\r\n00:00:03,000 --> 00:00:04,000\r\nC\r\n",
			want: []Cue{
				{Start: 1, Stop: 2, Text: "A\nB"},
				{Start: 3, Stop: 4, Text: "C"},
			},
		},
		{
			name:  "stable sort by start",
			input: "00:00:05,000 --> 00:00:06,000\nlate\n\n00:00:01,000 --> 00:00:02,000\nfirst tie\n\n00:00:01,000 --> 00:00:03,000\nsecond tie",
			want: []Cue{
				{Start: 1, Stop: 2, Text: "first tie"},
				{Start: 1, Stop: 3, Text: "second tie"},
				{Start: 5, Stop: 6, Text: "late"},
			},
		},
		{
			name:  "empty payload",
			input: "\n\n\n",
			want:  []Cue{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var warnings []Warning
			d := Decoder{OnWarning: func(w Warning) { warnings = append(warnings, w) }}

			got, err := d.Parse(tt.input, "test.srt")
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if len(warnings) != tt.wantWarnings {
				t.Errorf("got %d warnings (%+v), want %d", len(warnings), warnings, tt.wantWarnings)
			}
		})
	}
}

func TestParseVTT(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Cue
		wantErr bool
	}{
		{
			name:  "header with metadata lines",
			input: "WEBVTT - title\nKind: captions\nLanguage: ja\n\n1\n00:00.500 --> 00:01.000\nこんにちは",
			want:  []Cue{{Start: 0.5, Stop: 1, Text: "こんにちは"}},
		},
		{
			name:  "style and note blocks skipped",
			input: "WEBVTT\n\nSTYLE\n::cue { color: red }\n\nNOTE\nsome note\n\n00:00:01.000 --> 00:00:02.000\nA",
			want:  []Cue{{Start: 1, Stop: 2, Text: "A"}},
		},
		{
			name:  "header only",
			input: "WEBVTT\n",
			want:  []Cue{},
		},
		{
			name:    "missing signature",
			input:   "00:00:01.000 --> 00:00:02.000\nA",
			wantErr: true,
		},
		{
			name:    "signature followed by garbage",
			input:   "WEBVTTX\n\n00:00:01.000 --> 00:00:02.000\nA",
			wantErr: true,
		},
		{
			name:    "no blank line after header",
			input:   "WEBVTT\n00:00:01.000 --> 00:00:02.000\nA",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input, "track.vtt")
			if tt.wantErr {
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("expected *ParseError, got %v", err)
				}
				if perr.Msg != "missing VTT header" {
					t.Errorf("expected 'missing VTT header', got %q", perr.Msg)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
