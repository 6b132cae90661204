// Package config loads the settings of the spbmsg command.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	env "github.com/Netflix/go-env"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/jacoelho/spb/catalog"
)

// Log output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

const maxIndent = 8

// Config is the command configuration. Values come from defaults, then an
// optional YAML or TOML file, then SPBMSG_* environment variables.
type Config struct {
	LogLevel  string `yaml:"log_level" toml:"log_level"`
	LogFormat string `yaml:"log_format" toml:"log_format"`
	// Indent is the number of spaces per level in encoded output; 0 writes
	// compact documents.
	Indent  int    `yaml:"indent" toml:"indent"`
	Version string `yaml:"version" toml:"version"`
}

// overrides holds the environment variables that replace file values.
type overrides struct {
	LogLevel  *string `env:"SPBMSG_LOG_LEVEL"`
	LogFormat *string `env:"SPBMSG_LOG_FORMAT"`
	Indent    *int    `env:"SPBMSG_INDENT"`
	Version   *string `env:"SPBMSG_VERSION"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		LogLevel:  zerolog.LevelInfoValue,
		LogFormat: FormatConsole,
		Indent:    2,
		Version:   catalog.Version,
	}
}

// Load builds a Config from path, which may be empty, and environ in
// os.Environ form. Keys missing from the file keep their defaults.
func Load(path string, environ []string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(environ, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	return nil
}

func applyEnv(environ []string, cfg *Config) error {
	es, err := env.EnvironToEnvSet(environ)
	if err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	var o overrides
	if err := env.Unmarshal(es, &o); err != nil {
		return fmt.Errorf("config from environment: %w", err)
	}
	if o.LogLevel != nil {
		cfg.LogLevel = strings.TrimSpace(*o.LogLevel)
	}
	if o.LogFormat != nil {
		cfg.LogFormat = strings.TrimSpace(*o.LogFormat)
	}
	if o.Indent != nil {
		cfg.Indent = *o.Indent
	}
	if o.Version != nil {
		cfg.Version = strings.TrimSpace(*o.Version)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		return fmt.Errorf("log_level %q: want trace, debug, info, warn, error, or disabled", c.LogLevel)
	}
	switch c.LogFormat {
	case FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("log_format %q: want %s or %s", c.LogFormat, FormatConsole, FormatJSON)
	}
	if c.Indent < 0 || c.Indent > maxIndent {
		return fmt.Errorf("indent %d: want 0 to %d", c.Indent, maxIndent)
	}
	if c.Version == "" {
		return fmt.Errorf("version is required")
	}
	return nil
}

// IndentString returns the indentation unit for encoded output.
func (c Config) IndentString() string {
	return strings.Repeat(" ", c.Indent)
}

// Level returns the parsed log level. Validate guarantees it parses.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
