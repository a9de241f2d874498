package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/mgpai22/subsync/internal/subtitle"
)

const maxRate = 16

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errors []string

	if len(c.Languages) == 0 {
		errors = append(errors, "at least one language is required")
	}
	seen := make(map[string]bool)
	for _, lang := range c.Languages {
		if seen[lang.Code] {
			errors = append(errors, fmt.Sprintf("duplicate language code %q", lang.Code))
		}
		seen[lang.Code] = true
		if strings.TrimSpace(lang.Label) == "" {
			errors = append(errors, fmt.Sprintf("language %q has no label", lang.Code))
		}
	}

	if len(c.Extensions) == 0 {
		errors = append(errors, "at least one caption extension is required")
	}
	for _, ext := range c.Extensions {
		if _, err := subtitle.FormatFromHint(ext); err != nil {
			errors = append(errors, fmt.Sprintf("unsupported caption extension %q", ext))
		}
	}

	if c.HTTPTimeout <= 0 {
		errors = append(errors, "http timeout must be positive")
	}

	if err := c.Player.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("player config: %v", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// Validate checks if player configuration is valid
func (pc *PlayerConfig) Validate() error {
	var errors []string

	if !ValidRate(pc.Rate) {
		errors = append(errors, fmt.Sprintf("rate must be in (0, %d]", maxRate))
	}
	if pc.TickInterval <= 0 {
		errors = append(errors, "tick interval must be positive")
	}
	if pc.ProbeTimeout <= 0 {
		errors = append(errors, "probe timeout must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, ", "))
	}

	return nil
}

// reports whether rate is an accepted playback rate
func ValidRate(rate float64) bool {
	return rate > 0 && rate <= maxRate && !math.IsNaN(rate)
}
