package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig("/media")

	if cfg.InputDir != "/media" {
		t.Errorf("InputDir = %q, want /media", cfg.InputDir)
	}
	if cfg.SynthesisBitrate != DefaultSynthesisBitrate {
		t.Errorf("SynthesisBitrate = %q, want %q", cfg.SynthesisBitrate, DefaultSynthesisBitrate)
	}
	if cfg.SynthesisChannels != DefaultSynthesisChannels {
		t.Errorf("SynthesisChannels = %d, want %d", cfg.SynthesisChannels, DefaultSynthesisChannels)
	}
	if cfg.DecodeTimeoutSecs != DefaultDecodeTimeoutSecs {
		t.Errorf("DecodeTimeoutSecs = %d, want %d", cfg.DecodeTimeoutSecs, DefaultDecodeTimeoutSecs)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: nil,
		},
		{
			name:    "missing input dir",
			mutate:  func(c *Config) { c.InputDir = "" },
			wantErr: ErrMissingInput,
		},
		{
			name:    "malformed bitrate",
			mutate:  func(c *Config) { c.SynthesisBitrate = "640kbps" },
			wantErr: ErrInvalidBitrate,
		},
		{
			name:    "zero channels",
			mutate:  func(c *Config) { c.SynthesisChannels = 0 },
			wantErr: ErrInvalidChannels,
		},
		{
			name:    "too many channels",
			mutate:  func(c *Config) { c.SynthesisChannels = 9 },
			wantErr: ErrInvalidChannels,
		},
		{
			name:    "non-positive timeout",
			mutate:  func(c *Config) { c.DecodeTimeoutSecs = 0 },
			wantErr: ErrInvalidTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("/media")
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeTimeout(t *testing.T) {
	cfg := NewConfig("/media")
	cfg.DecodeTimeoutSecs = 45
	if got := cfg.DecodeTimeout(); got != 45*time.Second {
		t.Errorf("DecodeTimeout() = %v, want 45s", got)
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	content := `
log_dir = "/var/log/trimux"
synthesis_bitrate = "448k"
decode_timeout_secs = 120
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := NewConfig("/media")
	if err := cfg.LoadFile(path, true); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.LogDir != "/var/log/trimux" {
		t.Errorf("LogDir = %q", cfg.LogDir)
	}
	if cfg.SynthesisBitrate != "448k" {
		t.Errorf("SynthesisBitrate = %q, want 448k", cfg.SynthesisBitrate)
	}
	// Unset fields keep defaults.
	if cfg.SynthesisChannels != DefaultSynthesisChannels {
		t.Errorf("SynthesisChannels = %d, want default", cfg.SynthesisChannels)
	}
	if cfg.DecodeTimeoutSecs != 120 {
		t.Errorf("DecodeTimeoutSecs = %d, want 120", cfg.DecodeTimeoutSecs)
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg := NewConfig("/media")

	// Default location missing: silently ignored.
	if err := cfg.LoadFile("/nonexistent/config.toml", false); err != nil {
		t.Errorf("LoadFile(missing, implicit) error = %v, want nil", err)
	}

	// Explicit path missing: error.
	if err := cfg.LoadFile("/nonexistent/config.toml", true); err == nil {
		t.Error("LoadFile(missing, explicit) error = nil, want error")
	}
}

func TestLoadFileMalformed(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(path, []byte("log_dir = [broken"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := NewConfig("/media")
	if err := cfg.LoadFile(path, true); err == nil {
		t.Error("LoadFile(malformed) error = nil, want error")
	}
}

func TestSampleConfigParses(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(path, []byte(SampleConfig()), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := NewConfig("/media")
	if err := cfg.LoadFile(path, true); err != nil {
		t.Errorf("LoadFile(sample) error = %v", err)
	}
	// Sample is fully commented out, so defaults survive.
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() after sample load error = %v", err)
	}
}
