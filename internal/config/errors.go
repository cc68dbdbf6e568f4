// Package config provides configuration types and defaults for trimux.
package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrMissingInput indicates no input directory was provided.
	ErrMissingInput = errors.New("input directory is required")

	// ErrInvalidBitrate indicates a malformed synthesis bitrate.
	ErrInvalidBitrate = errors.New("invalid synthesis bitrate")

	// ErrInvalidChannels indicates a synthesis channel count outside 1-8.
	ErrInvalidChannels = errors.New("synthesis channel count out of range")

	// ErrInvalidTimeout indicates a non-positive decode-check timeout.
	ErrInvalidTimeout = errors.New("decode-check timeout must be positive")
)
