package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// fileConfig mirrors the optional TOML config file. All fields are
// optional; unset fields keep their defaults.
type fileConfig struct {
	LogDir            string `toml:"log_dir"`
	SynthesisBitrate  string `toml:"synthesis_bitrate"`
	SynthesisChannels int    `toml:"synthesis_channels"`
	DecodeTimeoutSecs int    `toml:"decode_timeout_secs"`
}

// DefaultConfigPath returns the conventional config file location.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "trimux", "config.toml")
}

// SampleConfig returns the embedded annotated sample config file.
func SampleConfig() string {
	return sampleConfig
}

// LoadFile merges the TOML file at path into c. A missing file at the
// default location is not an error; a missing explicit path is.
func (c *Config) LoadFile(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.LogDir != "" {
		c.LogDir = fc.LogDir
	}
	if fc.SynthesisBitrate != "" {
		c.SynthesisBitrate = fc.SynthesisBitrate
	}
	if fc.SynthesisChannels != 0 {
		c.SynthesisChannels = fc.SynthesisChannels
	}
	if fc.DecodeTimeoutSecs != 0 {
		c.DecodeTimeoutSecs = fc.DecodeTimeoutSecs
	}

	return nil
}
