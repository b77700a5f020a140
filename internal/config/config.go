// Package config loads and validates the .tripd.toml configuration file.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

var _ Loader = (*DefaultLoader)(nil)

// Loader loads configuration from a file path.
type Loader interface {
	Load(path string) (*Config, error)
}

// DefaultLoader is the production configuration loader.
type DefaultLoader struct{}

// Config represents the .tripd.toml file structure.
// All sections and fields are optional; absent values fall back to the
// defaults applied by the consuming component.
type Config struct {
	API        *APISection        `toml:"api,omitempty"`
	Mock       *MockSection       `toml:"mock,omitempty"`
	Transcript *TranscriptSection `toml:"transcript,omitempty"`
}

// APISection contains API server configuration settings.
type APISection struct {
	// Addr is the address to bind the API server (e.g. "0.0.0.0:8090").
	// Maps to CLI flag --addr.
	Addr *string `toml:"addr,omitempty"`

	// Timeout holds nested timeout configuration for API operations.
	Timeout *APITimeoutSection `toml:"timeout,omitempty"`

	// CORS holds nested CORS configuration for cross-origin requests.
	CORS *CORSSection `toml:"cors,omitempty"`
}

// APITimeoutSection contains timeout settings for API operations.
type APITimeoutSection struct {
	// Shutdown bounds graceful API server shutdown.
	Shutdown *Duration `toml:"shutdown,omitempty"`
}

// CORSSection contains Cross-Origin Resource Sharing (CORS) configuration.
type CORSSection struct {
	Enable      *bool     `toml:"enable,omitempty"`
	Origins     []string  `toml:"allow_origins,omitempty"`
	Methods     []string  `toml:"allow_methods,omitempty"`
	Headers     []string  `toml:"allow_headers,omitempty"`
	Credentials *bool     `toml:"allow_credentials,omitempty"`
	MaxAge      *Duration `toml:"max_age,omitempty"`
}

// MockSection configures the simulated tool servers.
type MockSection struct {
	// Seed fixes the random source for reproducible payloads. Unset means
	// a time-based seed.
	Seed *int64 `toml:"seed,omitempty"`

	// Connection establishment latency range.
	ConnectDelayMin *Duration `toml:"connect_delay_min,omitempty"`
	ConnectDelayMax *Duration `toml:"connect_delay_max,omitempty"`

	// Tool invocation latency range.
	InvokeDelayMin *Duration `toml:"invoke_delay_min,omitempty"`
	InvokeDelayMax *Duration `toml:"invoke_delay_max,omitempty"`
}

// TranscriptSection configures chat transcript persistence.
type TranscriptSection struct {
	// Path overrides the default transcript file location.
	Path *string `toml:"path,omitempty"`
}

// Duration is a custom time.Duration type that provides improved marshaling.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d *Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(*d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// Load reads and validates a configuration file.
// A missing file at the default path is not an error and yields an empty
// configuration; a missing file at an explicitly configured path is.
func (d *DefaultLoader) Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrConfigLoadFailed)
	}

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: failed to stat config file (%s): %w", ErrConfigLoadFailed, path, err)
		}

		return &Config{}, nil
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to decode config from file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: failed to validate config (%s): %w", ErrConfigLoadFailed, path, err)
	}

	return cfg, nil
}

// validate orchestrates validation of configuration structure.
func (c *Config) validate() error {
	if c.API != nil {
		if err := c.API.validate(); err != nil {
			return fmt.Errorf("api configuration error: %w", err)
		}
	}

	if c.Mock != nil {
		if err := c.Mock.validate(); err != nil {
			return fmt.Errorf("mock configuration error: %w", err)
		}
	}

	if c.Transcript != nil {
		if err := c.Transcript.validate(); err != nil {
			return fmt.Errorf("transcript configuration error: %w", err)
		}
	}

	return nil
}

func (a *APISection) validate() error {
	if a.Addr != nil {
		addr := strings.TrimSpace(*a.Addr)
		if addr == "" {
			return NewErrInvalidValue("api.addr", *a.Addr)
		}
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("%w: %w", NewErrInvalidValue("api.addr", addr), err)
		}
	}

	if a.Timeout != nil && a.Timeout.Shutdown != nil && time.Duration(*a.Timeout.Shutdown) <= 0 {
		return NewErrInvalidValue("api.timeout.shutdown", a.Timeout.Shutdown.String())
	}

	if a.CORS != nil && a.CORS.MaxAge != nil && time.Duration(*a.CORS.MaxAge) < 0 {
		return NewErrInvalidValue("api.cors.max_age", a.CORS.MaxAge.String())
	}

	return nil
}

func (m *MockSection) validate() error {
	ranges := []struct {
		key      string
		min, max *Duration
	}{
		{key: "connect_delay", min: m.ConnectDelayMin, max: m.ConnectDelayMax},
		{key: "invoke_delay", min: m.InvokeDelayMin, max: m.InvokeDelayMax},
	}

	for _, r := range ranges {
		if r.min != nil && time.Duration(*r.min) < 0 {
			return NewErrInvalidValue("mock."+r.key+"_min", r.min.String())
		}
		if r.max != nil && time.Duration(*r.max) < 0 {
			return NewErrInvalidValue("mock."+r.key+"_max", r.max.String())
		}
		if r.min != nil && r.max != nil && time.Duration(*r.min) > time.Duration(*r.max) {
			return fmt.Errorf(
				"%w: mock.%s_min (%s) exceeds mock.%s_max (%s)",
				ErrInvalidValue, r.key, r.min.String(), r.key, r.max.String(),
			)
		}
	}

	return nil
}

func (t *TranscriptSection) validate() error {
	if t.Path != nil && strings.TrimSpace(*t.Path) == "" {
		return NewErrInvalidValue("transcript.path", *t.Path)
	}

	return nil
}

// String returns a human-readable string representation of the duration.
func (d *Duration) String() string {
	if d == nil {
		return ""
	}

	return time.Duration(*d).String()
}
