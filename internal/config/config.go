package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/sus-lang/sus-parser/internal/parser"
)

// EnvVar names the environment variable LoadDefault consults first.
const EnvVar = "SUS_PARSE_CONFIG"

// Config holds the settings of the sus-parse command.
type Config struct {
	Parse  ParseConfig  `toml:"parse"`
	Output OutputConfig `toml:"output"`
	Check  CheckConfig  `toml:"check"`
	Watch  WatchConfig  `toml:"watch"`
	Log    LogConfig    `toml:"log"`
}

// ParseConfig controls what is parsed and how.
type ParseConfig struct {
	// Grammar is a version constraint the built-in grammar must satisfy,
	// e.g. ">= 0.3, < 1".
	Grammar    string   `toml:"grammar"`
	Extensions []string `toml:"extensions"`
	Trivia     bool     `toml:"trivia"`
}

// OutputConfig holds tree and diagnostic rendering settings.
type OutputConfig struct {
	Format string `toml:"format"`
	Color  bool   `toml:"color"`
}

// CheckConfig holds settings for checking many files at once.
type CheckConfig struct {
	Jobs             int  `toml:"jobs"`
	WarningsAsErrors bool `toml:"warnings_as_errors"`
}

// WatchConfig holds settings for the watch loop.
type WatchConfig struct {
	Debounce Duration `toml:"debounce"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Output formats understood by the parse command.
var Formats = []string{"sexp", "json", "yaml"}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{
		Output: OutputConfig{Color: true},
	}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// LoadDefault loads the file named by SUS_PARSE_CONFIG, or the first of
// ./sus-parse.toml and <user config dir>/sus-parse/config.toml that exists.
// Without any of them it returns Default().
func LoadDefault() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}

	for _, p := range searchPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

func searchPaths() []string {
	paths := []string{"./sus-parse.toml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "sus-parse", "config.toml"))
	}
	return paths
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// Parse
	if c.Parse.Grammar == "" {
		c.Parse.Grammar = "^0.3"
	}
	if len(c.Parse.Extensions) == 0 {
		c.Parse.Extensions = []string{".sus"}
	}

	// Output
	if c.Output.Format == "" {
		c.Output.Format = "sexp"
	}

	// Check
	if c.Check.Jobs == 0 {
		c.Check.Jobs = runtime.GOMAXPROCS(0)
	}

	// Watch
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 100 * time.Millisecond
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
}

// Validate reports every invalid setting, and whether the built-in
// grammar satisfies the configured constraint.
func (c *Config) Validate() error {
	var errs []error

	constraint, err := semver.NewConstraint(c.Parse.Grammar)
	if err != nil {
		errs = append(errs, fmt.Errorf("parse.grammar: invalid constraint %q: %w", c.Parse.Grammar, err))
	} else {
		version := semver.MustParse(parser.GrammarVersion)
		if !constraint.Check(version) {
			errs = append(errs, fmt.Errorf("parse.grammar: grammar version %s does not satisfy %q", version, c.Parse.Grammar))
		}
	}

	for _, ext := range c.Parse.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, fmt.Errorf("parse.extensions: %q must start with a dot", ext))
		}
	}

	if !slices.Contains(Formats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format: %q is not one of %s", c.Output.Format, strings.Join(Formats, ", ")))
	}

	if c.Check.Jobs < 1 {
		errs = append(errs, fmt.Errorf("check.jobs: must be at least 1, got %d", c.Check.Jobs))
	}

	if c.Watch.Debounce.Duration < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce: must not be negative, got %s", c.Watch.Debounce))
	}

	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}

// SlogLevel converts the configured log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelWarn, fmt.Errorf("unknown level %q", c.Log.Level)
	}
	return level, nil
}
