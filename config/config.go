// SPDX-License-Identifier: MIT

// Package config holds the runtime configuration of numcore: logging, the
// allocator behind the default arena, metrics exposure and the comparison
// tolerance used by the CLI.
//
// Configuration is layered: built-in defaults, then an optional YAML file,
// then NUMCORE_* environment variables. Validate runs after every layer has
// been applied.
//
// Example:
//
//	cfg, err := config.Load("numcore.yaml")
//	if err != nil {
//		return err
//	}
//	arena, err := cfg.Apply()
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/numcore/buffer"
	"github.com/katalvlaran/numcore/internal/logger"
)

// ErrInvalidConfig wraps every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Log format names.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Defaults.
const (
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = FormatConsole
	DefaultAllocator   = buffer.AllocatorGo
	DefaultMetricsAddr = ":9464"
	DefaultEpsilon     = 1e-9
)

// LogConfig configures internal/logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ArenaConfig configures the default buffer arena.
type ArenaConfig struct {
	// Allocator is "go" (garbage-collected heap) or "native" (anonymous mmap).
	Allocator string `yaml:"allocator"`
	// LimitBytes caps the bytes the arena may hold; 0 means unlimited.
	LimitBytes int `yaml:"limit_bytes"`
}

// MetricsConfig configures the prometheus endpoint of serve-metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Config is the full numcore configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Arena   ArenaConfig   `yaml:"arena"`
	Metrics MetricsConfig `yaml:"metrics"`
	// Epsilon is the absolute tolerance the CLI uses when checking results.
	Epsilon float64 `yaml:"epsilon"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:     LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Arena:   ArenaConfig{Allocator: DefaultAllocator},
		Metrics: MetricsConfig{Addr: DefaultMetricsAddr},
		Epsilon: DefaultEpsilon,
	}
}

// Load returns the defaults overlaid with the YAML file at path (skipped
// when path is empty) and the NUMCORE_* environment, then validates.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err = cfg.MergeYAML(data); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MergeYAML overlays data onto c. Keys absent from data keep their
// current values; unknown keys are rejected. An empty document is a no-op.
func (c *Config) MergeYAML(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// ApplyEnv overlays NUMCORE_* variables read through lookup:
// NUMCORE_LOG_LEVEL, NUMCORE_LOG_FORMAT, NUMCORE_ALLOCATOR,
// NUMCORE_ARENA_LIMIT, NUMCORE_METRICS_ENABLED, NUMCORE_METRICS_ADDR,
// NUMCORE_EPSILON. Unparseable numbers and booleans are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("NUMCORE_LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("NUMCORE_LOG_FORMAT"); ok && v != "" {
		c.Log.Format = v
	}
	if v, ok := lookup("NUMCORE_ALLOCATOR"); ok && v != "" {
		c.Arena.Allocator = v
	}
	if v, ok := lookup("NUMCORE_ARENA_LIMIT"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Arena.LimitBytes = n
		}
	}
	if v, ok := lookup("NUMCORE_METRICS_ENABLED"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Metrics.Enabled = b
		}
	}
	if v, ok := lookup("NUMCORE_METRICS_ADDR"); ok && v != "" {
		c.Metrics.Addr = v
	}
	if v, ok := lookup("NUMCORE_EPSILON"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Epsilon = f
		}
	}
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("%w: log.format %q (want console or json)", ErrInvalidConfig, c.Log.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug", "info", "warn", "warning", "error", "disabled", "off":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	switch c.Arena.Allocator {
	case buffer.AllocatorGo, buffer.AllocatorNative:
	default:
		return fmt.Errorf("%w: arena.allocator %q (want go or native)", ErrInvalidConfig, c.Arena.Allocator)
	}
	if c.Arena.LimitBytes < 0 {
		return fmt.Errorf("%w: arena.limit_bytes %d", ErrInvalidConfig, c.Arena.LimitBytes)
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("%w: metrics enabled without metrics.addr", ErrInvalidConfig)
	}
	if !(c.Epsilon > 0) {
		return fmt.Errorf("%w: epsilon must be > 0, got %g", ErrInvalidConfig, c.Epsilon)
	}

	return nil
}

// Apply configures the global logger and installs a fresh default arena
// built from c.Arena. The previous default arena is closed.
func (c *Config) Apply() (*buffer.Arena, error) {
	logger.Setup(c.Log.Level, strings.ToLower(c.Log.Format))

	mem, err := buffer.NewAllocator(c.Arena.Allocator)
	if err != nil {
		return nil, err
	}
	opts := []buffer.Option{buffer.WithAllocator(mem)}
	if c.Arena.LimitBytes > 0 {
		opts = append(opts, buffer.WithLimit(c.Arena.LimitBytes))
	}
	arena := buffer.NewArena(opts...)
	if prev := buffer.SetDefault(arena); prev != nil {
		if leaked := prev.Close(); leaked > 0 {
			logger.Log.Warn("previous default arena closed with live buffers", "leaked", leaked)
		}
	}
	logger.Log.Debug("configuration applied",
		"allocator", c.Arena.Allocator,
		"limit_bytes", c.Arena.LimitBytes,
		"arena", arena.ID().String())

	return arena, nil
}

// String renders the configuration for logs.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Log: %s/%s, Allocator: %s, Limit: %d, Metrics: %t@%s, Epsilon: %g}",
		c.Log.Level, c.Log.Format, c.Arena.Allocator, c.Arena.LimitBytes,
		c.Metrics.Enabled, c.Metrics.Addr, c.Epsilon)
}
