// Package config handles configuration loading from YAML files, environment
// variables and command-line flags.
// Configuration precedence: CLI flags > environment variables > config file >
// embedded config > defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/Guliveer/hwinfo/internal/models"
	"github.com/Guliveer/hwinfo/internal/render"
)

// ErrInvalid marks configuration errors. They are reported before any
// collection starts.
var ErrInvalid = errors.New("invalid configuration")

// Duration is a wrapper around time.Duration that supports YAML unmarshaling
// from human-readable strings like "15s", "30s", "1m".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
// It accepts duration strings ("15s", "1m30s") and whole seconds ("30").
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseDuration(value.Value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("unsupported duration format: %v", value.Kind)
	}
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// ParseDuration parses a duration string. A bare integer is taken as seconds.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return d, nil
}

// Config holds all hwinfo configuration.
type Config struct {
	Output     OutputConfig     `yaml:"output"`
	Collection CollectionConfig `yaml:"collection"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// OutputConfig holds rendering and destination settings.
type OutputConfig struct {
	Format string `yaml:"format"`
	Pretty bool   `yaml:"pretty"`
	// Path is the output file. Empty means standard output.
	Path       string `yaml:"path"`
	Encoding   string `yaml:"encoding"`
	Timestamps bool   `yaml:"timestamps"`
	Quiet      bool   `yaml:"quiet"`
}

// CollectionConfig holds collector selection and execution settings.
type CollectionConfig struct {
	Components     []string `yaml:"components"`
	Verbosity      string   `yaml:"verbosity"`
	ExcludeSerials bool     `yaml:"exclude_serials"`
	Timeout        Duration `yaml:"timeout"`
	// Threads limits concurrent collectors. Zero runs all at once.
	Threads int  `yaml:"threads"`
	Fast    bool `yaml:"fast"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format:     string(render.Text),
			Timestamps: true,
		},
		Collection: CollectionConfig{
			Verbosity: models.Detailed.String(),
			Timeout:   Duration{30 * time.Second},
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// CLIOverrides holds values from command-line flags.
// Zero values are treated as "not set" and skipped.
type CLIOverrides struct {
	Format         string
	Output         string
	Encoding       string
	LogLevel       string
	Timeout        string
	Components     []string
	Threads        int
	Pretty         bool
	Minimal        bool
	Detailed       bool
	ExcludeSerials bool
	NoTimestamps   bool
	UTF8           bool
	Fast           bool
	Quiet          bool
}

// Locate searches standard config file paths and returns the first one found.
// Returns empty string if no config file exists.
func Locate() string {
	candidates := configSearchPaths()
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadLayered loads configuration with the full precedence chain:
// CLI flags > env vars > external YAML file > embedded bytes > defaults.
//
// An optional configPath argument controls external-file discovery:
//   - omitted        → auto-discover via Locate()
//   - explicit value → use that path ("" means no external file); a missing
//     explicit file is an error
func LoadLayered(cli CLIOverrides, embedded []byte, configPath ...string) (*Config, error) {
	cfg := DefaultConfig()

	// Layer 1: embedded config (lowest priority data layer)
	if len(embedded) > 0 {
		if err := yaml.Unmarshal(embedded, cfg); err != nil {
			return nil, fmt.Errorf("%w: parsing embedded config: %v", ErrInvalid, err)
		}
	}

	// Layer 2: external YAML file
	explicit := len(configPath) > 0
	var filePath string
	if explicit {
		filePath = configPath[0]
	} else {
		filePath = Locate()
	}
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("%w: parsing config file %s: %v", ErrInvalid, filePath, err)
			}
		case explicit:
			return nil, fmt.Errorf("%w: reading config file: %v", ErrInvalid, err)
		}
	}

	// Layer 3: environment variables
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	// Layer 4: CLI flags (highest priority)
	if err := cli.apply(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cli CLIOverrides) apply(cfg *Config) error {
	if cli.Format != "" {
		cfg.Output.Format = cli.Format
	}
	if cli.Output != "" {
		cfg.Output.Path = cli.Output
	}
	if cli.Pretty {
		cfg.Output.Pretty = true
	}
	if cli.NoTimestamps {
		cfg.Output.Timestamps = false
	}
	if cli.Quiet {
		cfg.Output.Quiet = true
	}
	if cli.Encoding != "" {
		cfg.Output.Encoding = cli.Encoding
	}
	if cli.UTF8 {
		if cli.Encoding != "" && !IsUTF8(cli.Encoding) {
			return fmt.Errorf("%w: --utf8 conflicts with --encoding %s", ErrInvalid, cli.Encoding)
		}
		cfg.Output.Encoding = "utf-8"
	}

	if len(cli.Components) > 0 {
		cfg.Collection.Components = cli.Components
	}
	switch {
	case cli.Minimal && cli.Detailed:
		return fmt.Errorf("%w: --minimal and --detailed are mutually exclusive", ErrInvalid)
	case cli.Minimal:
		cfg.Collection.Verbosity = models.Minimal.String()
	case cli.Detailed:
		cfg.Collection.Verbosity = models.Detailed.String()
	}
	if cli.ExcludeSerials {
		cfg.Collection.ExcludeSerials = true
	}
	if cli.Timeout != "" {
		d, err := ParseDuration(cli.Timeout)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		cfg.Collection.Timeout = Duration{d}
	}
	if cli.Threads != 0 {
		cfg.Collection.Threads = cli.Threads
	}
	if cli.Fast {
		cfg.Collection.Fast = true
	}

	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}
	return nil
}

// WriteConfig serializes the config to a YAML file at the given path.
// Creates parent directories if needed.
func WriteConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) error {
	if format := os.Getenv("HWINFO_FORMAT"); format != "" {
		cfg.Output.Format = format
	}
	if path := os.Getenv("HWINFO_OUTPUT"); path != "" {
		cfg.Output.Path = path
	}
	if enc := os.Getenv("HWINFO_ENCODING"); enc != "" {
		cfg.Output.Encoding = enc
	}
	if level := os.Getenv("HWINFO_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if v := os.Getenv("HWINFO_EXCLUDE_SERIALS"); v != "" {
		exclude, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: HWINFO_EXCLUDE_SERIALS=%q is not a boolean", ErrInvalid, v)
		}
		cfg.Collection.ExcludeSerials = exclude
	}
	return nil
}

// Validate checks every setting that can be checked without touching the
// hardware. All errors wrap ErrInvalid.
func (c *Config) Validate() error {
	if _, err := render.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := render.ValidateEncoding(c.Output.Encoding); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.Selection(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := models.ParseVerbosity(c.Collection.Verbosity); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Collection.Timeout.Duration <= 0 {
		return fmt.Errorf("%w: timeout must be positive (got %s)", ErrInvalid, c.Collection.Timeout.Duration)
	}
	if c.Collection.Threads < 0 {
		return fmt.Errorf("%w: threads must not be negative (got %d)", ErrInvalid, c.Collection.Threads)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Selection returns the selected components in canonical order. Nil means all.
func (c *Config) Selection() ([]models.Component, error) {
	return models.ParseSelection(c.Collection.Components)
}

// Verbosity returns the parsed verbosity level.
func (c *Config) Verbosity() models.Verbosity {
	v, _ := models.ParseVerbosity(c.Collection.Verbosity)
	return v
}

// RenderConfig returns the render settings of a validated config.
func (c *Config) RenderConfig() render.Config {
	format, _ := render.ParseFormat(c.Output.Format)
	return render.Config{
		Format:           format,
		Pretty:           c.Output.Pretty,
		Encoding:         c.Output.Encoding,
		IncludeTimestamp: c.Output.Timestamps,
		TrailingNewline:  c.Output.Path == "",
	}
}

// IsUTF8 reports whether an encoding name denotes UTF-8.
func IsUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8", "unicode-1-1-utf-8":
		return true
	}
	return false
}
