// Package config loads the optional YAML configuration of the view
// embedder.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/gputypes"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/compositor/render"
)

// SupportedABIVersion is the embedder ABI version implemented by this
// module. Configurations must request the same major version.
const SupportedABIVersion = "v1.0.0"

var (
	// ErrInvalidABIVersion is returned when abi_version is not a semantic
	// version.
	ErrInvalidABIVersion = errors.New("config: invalid abi_version")
	// ErrUnsupportedABI is returned when abi_version has another major
	// version than SupportedABIVersion.
	ErrUnsupportedABI = errors.New("config: unsupported abi_version")
	// ErrInvalidLogLevel is returned for an unknown log_level.
	ErrInvalidLogLevel = errors.New("config: invalid log_level")
)

// Config represents the embedder configuration file.
type Config struct {
	ABIVersion string `yaml:"abi_version,omitempty"`
	// AvoidBackingStoreCache asks the host for a new render target every
	// frame instead of reusing cached ones.
	AvoidBackingStoreCache bool `yaml:"avoid_backing_store_cache,omitempty"`
	// KeyCacheByView keeps cached render targets per view.
	KeyCacheByView bool   `yaml:"key_cache_by_view,omitempty"`
	LogLevel       string `yaml:"log_level,omitempty"`
	TextureFormat  string `yaml:"texture_format,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		ABIVersion:    SupportedABIVersion,
		LogLevel:      "info",
		TextureFormat: "rgba8unorm",
	}
}

// Load reads the configuration at path. A missing file yields Default.
// Fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML data into cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: failed to parse: %w", err)
	}
	return cfg.Validate()
}

// Validate checks the ABI version, log level and texture format.
func (c *Config) Validate() error {
	v := strings.TrimSpace(c.ABIVersion)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q", ErrInvalidABIVersion, c.ABIVersion)
	}
	if semver.Major(v) != semver.Major(SupportedABIVersion) {
		return fmt.Errorf("%w: %s, want %s.x", ErrUnsupportedABI, v, semver.Major(SupportedABIVersion))
	}
	c.ABIVersion = v

	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.Format(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Level returns the slog level named by LogLevel. An empty level is info.
func (c *Config) Level() (slog.Level, error) {
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return level, nil
}

// Format returns the texture format for GPU render targets.
func (c *Config) Format() (gputypes.TextureFormat, error) {
	return render.ParseTextureFormat(c.TextureFormat)
}
