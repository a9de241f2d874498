package subtitle

import (
	"fmt"
	"os"
)

// reads and parses a caption file, picking the format from its extension
func Open(path string) ([]Cue, error) {
	return Decoder{}.Open(path)
}

func (d Decoder) Open(path string) ([]Cue, error) {
	if _, err := FormatFromHint(path); err != nil {
		return nil, fmt.Errorf("unsupported subtitle format: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}

	cues, err := d.Parse(string(data), path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cues, nil
}
