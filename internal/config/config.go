package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/mgpai22/subsync/internal/ffmpeg"
	"github.com/mgpai22/subsync/internal/track"
)

// Config holds the subsync settings shared by all commands
type Config struct {
	// caption lookup next to a media file
	Languages  []track.Language `yaml:"languages"`
	Extensions []string         `yaml:"extensions"` // in order of preference

	// YAML file holding persisted track selections and positions;
	// empty keeps state in memory only
	StateFile string `yaml:"state_file"`

	HTTPTimeout time.Duration `yaml:"http_timeout"`

	Player PlayerConfig `yaml:"player"`
}

// PlayerConfig holds settings for the terminal player
type PlayerConfig struct {
	Rate         float64       `yaml:"rate"`          // initial playback rate
	TickInterval time.Duration `yaml:"tick_interval"` // clock update period
	ProbeTimeout time.Duration `yaml:"probe_timeout"` // ffprobe deadline
	Autoplay     bool          `yaml:"autoplay"`
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Languages:   track.DefaultLanguages(),
		Extensions:  track.DefaultExtensions(),
		StateFile:   defaultStateFile(),
		HTTPTimeout: 30 * time.Second,
		Player: PlayerConfig{
			Rate:         1,
			TickInterval: 250 * time.Millisecond,
			ProbeTimeout: ffmpeg.DefaultProbeTimeout,
			Autoplay:     true,
		},
	}
}

func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "subsync-state.yaml"
	}
	return filepath.Join(dir, "subsync", "state.yaml")
}
