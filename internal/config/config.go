// Package config loads pegx command settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ava12/pegx/internal/logutil"
	"github.com/ava12/pegx/parser"
)

// Formats lists supported output formats.
var Formats = []string{"text", "json", "yaml", "table"}

// Config holds command settings. Zero values in a file keep defaults.
type Config struct {
	// MaxDepth limits nested rule invocations, 0 means no limit. Set via PEGX_MAX_DEPTH.
	MaxDepth int `toml:"max_depth"`
	// Format is the output format for parse results. Set via PEGX_FORMAT.
	Format string `toml:"format"`
	// Jobs is the number of inputs parsed concurrently. Set via PEGX_JOBS.
	Jobs int `toml:"jobs"`
	// LogLevel is one of trace, debug, info, warn, error. Set via PEGX_LOG_LEVEL, PEGX_DEBUG forces debug.
	LogLevel string `toml:"log_level"`
}

// EnvVar describes an environment variable overriding a setting.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns environment variables by name, Value holds the effective setting.
func (c Config) AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"PEGX_MAX_DEPTH": {"PEGX_MAX_DEPTH", c.MaxDepth, "Maximum rule nesting depth, 0 for unlimited (default 4096)"},
		"PEGX_FORMAT":    {"PEGX_FORMAT", c.Format, "Output format: text, json, yaml, table (default text)"},
		"PEGX_JOBS":      {"PEGX_JOBS", c.Jobs, "Number of files parsed concurrently (default number of CPUs)"},
		"PEGX_LOG_LEVEL": {"PEGX_LOG_LEVEL", c.LogLevel, "Log level: trace, debug, info, warn, error (default info)"},
		"PEGX_DEBUG":     {"PEGX_DEBUG", c.LogLevel == "debug", "Show debug information (e.g. PEGX_DEBUG=1)"},
	}
}

// Values returns effective settings formatted as strings, keyed by variable name.
func (c Config) Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range c.AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// Default returns built-in settings.
func Default() Config {
	return Config{
		MaxDepth: parser.DefaultMaxDepth,
		Format:   "text",
		Jobs:     runtime.NumCPU(),
		LogLevel: "info",
	}
}

// Paths returns candidate config file locations, the first existing one is used.
func Paths() []string {
	var paths []string
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		paths = append(paths, filepath.Join(xdgConfig, "pegx", "config.toml"))
	}
	home, err := os.UserHomeDir()
	if err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "pegx", "config.toml"),
			filepath.Join(home, ".pegx.toml"),
		)
	}
	return paths
}

// Load returns defaults overridden by the config file and then by the environment.
// An explicit path must exist, otherwise the first existing file from Paths is used, if any.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		for _, p := range Paths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path != "" {
		if err := c.LoadFile(path); err != nil {
			return c, err
		}
	}

	c.LoadEnv()
	return c, c.Validate()
}

// LoadFile overrides settings with non-zero values from TOML file. Unknown keys are errors.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var fc Config
	d := toml.NewDecoder(f).DisallowUnknownFields()
	if err := d.Decode(&fc); err != nil {
		var de *toml.DecodeError
		if errors.As(err, &de) {
			row, col := de.Position()
			return fmt.Errorf("%s:%d:%d: %w", path, row, col, err)
		}
		return fmt.Errorf("%s: %w", path, err)
	}

	if fc.MaxDepth != 0 {
		c.MaxDepth = fc.MaxDepth
	}
	if fc.Format != "" {
		c.Format = fc.Format
	}
	if fc.Jobs != 0 {
		c.Jobs = fc.Jobs
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	return nil
}

// Clean quotes and spaces from the value
func clean(key string) string {
	return strings.Trim(os.Getenv(key), "\"' ")
}

// LoadEnv overrides settings with PEGX_* environment variables. Invalid values are logged and ignored.
func (c *Config) LoadEnv() {
	if depth := clean("PEGX_MAX_DEPTH"); depth != "" {
		val, err := strconv.Atoi(depth)
		if err != nil || val < 0 {
			slog.Error("invalid setting, ignoring", "PEGX_MAX_DEPTH", depth, "error", err)
		} else {
			c.MaxDepth = val
		}
	}

	if format := clean("PEGX_FORMAT"); format != "" {
		c.Format = strings.ToLower(format)
	}

	if jobs := clean("PEGX_JOBS"); jobs != "" {
		val, err := strconv.Atoi(jobs)
		if err != nil || val <= 0 {
			slog.Error("invalid setting must be greater than zero", "PEGX_JOBS", jobs, "error", err)
		} else {
			c.Jobs = val
		}
	}

	if level := clean("PEGX_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}

	if debug := clean("PEGX_DEBUG"); debug != "" {
		d, err := strconv.ParseBool(debug)
		if err != nil || d {
			c.LogLevel = "debug"
		}
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("unknown format %q, expecting one of %s", c.Format, strings.Join(Formats, ", "))
	}
	if c.Jobs <= 0 {
		return fmt.Errorf("jobs must be greater than zero, got %d", c.Jobs)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	if _, valid := logutil.ParseLevel(c.LogLevel); !valid {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// Level returns configured slog level.
func (c Config) Level() slog.Level {
	level, _ := logutil.ParseLevel(c.LogLevel)
	return level
}
