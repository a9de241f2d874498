package subtitle

import (
	"strings"
)

const vttSignature = "WEBVTT"

// strips the WEBVTT header block and decodes the rest like SRT
func (d Decoder) parseVTT(raw string) ([]Cue, error) {
	if !strings.HasPrefix(raw, vttSignature) {
		return nil, &ParseError{Msg: "missing VTT header"}
	}
	rest := raw[len(vttSignature):]
	if rest != "" && !strings.ContainsAny(rest[:1], " \t\r\n") {
		return nil, &ParseError{Msg: "missing VTT header"}
	}

	loc := blankRunRegex.FindStringIndex(raw)
	if loc == nil {
		// a lone header is an empty caption file
		if !strings.Contains(raw, timingArrow) {
			return make([]Cue, 0), nil
		}
		return nil, &ParseError{Msg: "missing VTT header"}
	}

	return d.parseBlocks(raw[loc[1]:], true)
}

func isVTTMetadataBlock(block string) bool {
	for _, keyword := range []string{"NOTE", "STYLE", "REGION"} {
		if block == keyword ||
			strings.HasPrefix(block, keyword+" ") ||
			strings.HasPrefix(block, keyword+"\t") ||
			strings.HasPrefix(block, keyword+"\n") ||
			strings.HasPrefix(block, keyword+"\r\n") {
			return true
		}
	}
	return false
}
