package config

import (
	"fmt"
	"regexp"
	"time"
)

// Default constants
const (
	// DefaultSynthesisBitrate is the bitrate for a synthesized AC3 track.
	DefaultSynthesisBitrate = "640k"

	// DefaultSynthesisChannels is the channel count for a synthesized AC3 track.
	DefaultSynthesisChannels = 6

	// DefaultDecodeTimeoutSecs bounds the full-decode validation check.
	DefaultDecodeTimeoutSecs = 90

	// MaxSynthesisChannels is the largest channel count ac3 can carry.
	MaxSynthesisChannels = 8
)

var bitratePattern = regexp.MustCompile(`^[0-9]+k$`)

// Config holds all configuration for a trimux run.
type Config struct {
	// Input/output paths
	InputDir string
	LogDir   string

	// Synthesis parameters for the generated AC3 track
	SynthesisBitrate  string
	SynthesisChannels int

	// DecodeTimeoutSecs bounds the decode-check validation probe.
	DecodeTimeoutSecs int

	// Behavior flags
	AssumeYes  bool // auto-accept every decision, no retries
	JSONOutput bool // emit NDJSON events instead of styled output
	Verbose    bool
	NoLog      bool
}

// NewConfig creates a new Config with default values.
func NewConfig(inputDir string) *Config {
	return &Config{
		InputDir:          inputDir,
		SynthesisBitrate:  DefaultSynthesisBitrate,
		SynthesisChannels: DefaultSynthesisChannels,
		DecodeTimeoutSecs: DefaultDecodeTimeoutSecs,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return ErrMissingInput
	}

	if !bitratePattern.MatchString(c.SynthesisBitrate) {
		return fmt.Errorf("%w: %q (expected e.g. \"640k\")", ErrInvalidBitrate, c.SynthesisBitrate)
	}

	if c.SynthesisChannels < 1 || c.SynthesisChannels > MaxSynthesisChannels {
		return fmt.Errorf("%w: must be 1-%d, got %d", ErrInvalidChannels, MaxSynthesisChannels, c.SynthesisChannels)
	}

	if c.DecodeTimeoutSecs <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTimeout, c.DecodeTimeoutSecs)
	}

	return nil
}

// DecodeTimeout returns the decode-check timeout as a duration.
func (c *Config) DecodeTimeout() time.Duration {
	return time.Duration(c.DecodeTimeoutSecs) * time.Second
}
