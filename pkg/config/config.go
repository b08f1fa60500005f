// Package config loads the run configuration of the lexdate tools from
// defaults, a YAML or TOML file, a .env file and LEXDATE_* variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/coolbeans/lexdate/pkg/extract"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LEXDATE_"

// BaseDateLayout is the layout of the base_date setting.
const BaseDateLayout = "2006-01-02"

// Config holds all runtime configuration.
type Config struct {
	Language      string  `yaml:"language" toml:"language"`
	Strict        bool    `yaml:"strict" toml:"strict"`
	Threshold     float64 `yaml:"threshold" toml:"threshold"`
	Window        int     `yaml:"window" toml:"window"`
	BaseDate      string  `yaml:"base_date" toml:"base_date"`
	ModelPath     string  `yaml:"model_path" toml:"model_path"`
	LocaleDir     string  `yaml:"locale_dir" toml:"locale_dir"`
	SecondOpinion bool    `yaml:"second_opinion" toml:"second_opinion"`
	LogLevel      string  `yaml:"log_level" toml:"log_level"`
	Format        string  `yaml:"format" toml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Language:      "en",
		Threshold:     extract.DefaultThreshold,
		SecondOpinion: true,
		LogLevel:      "warn",
		Format:        "text",
	}
}

// Load builds the configuration: defaults, then the file at path (if not
// empty), then .env and the environment. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return Config{}, err
		}
	}

	// Best-effort: a missing .env is not an error.
	_ = godotenv.Load()

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile decodes a .yaml, .yml or .toml file over c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing TOML config: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	return nil
}

// ApplyEnv overrides settings from LEXDATE_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		value, ok := lookup(EnvPrefix + name)
		value = strings.TrimSpace(value)
		return value, ok && value != ""
	}

	if v, ok := get("LANGUAGE"); ok {
		c.Language = v
	}
	if v, ok := get("STRICT"); ok {
		c.Strict = parseBool(v)
	}
	if v, ok := get("THRESHOLD"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sTHRESHOLD: %w", EnvPrefix, err)
		}
		c.Threshold = f
	}
	if v, ok := get("WINDOW"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sWINDOW: %w", EnvPrefix, err)
		}
		c.Window = n
	}
	if v, ok := get("BASE_DATE"); ok {
		c.BaseDate = v
	}
	if v, ok := get("MODEL"); ok {
		c.ModelPath = v
	}
	if v, ok := get("LOCALE_DIR"); ok {
		c.LocaleDir = v
	}
	if v, ok := get("SECOND_OPINION"); ok {
		c.SecondOpinion = parseBool(v)
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := get("FORMAT"); ok {
		c.Format = v
	}
	return nil
}

func parseBool(raw string) bool {
	return raw == "1" || strings.EqualFold(raw, "true") || strings.EqualFold(raw, "yes")
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Language) == "" {
		return fmt.Errorf("language is required")
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold %v outside [0, 1]", c.Threshold)
	}
	if c.Window < 0 {
		return fmt.Errorf("window %d is negative", c.Window)
	}
	if _, err := c.ParsedBaseDate(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	return nil
}

// ParsedBaseDate returns the base date, or the zero time when unset.
func (c Config) ParsedBaseDate() (time.Time, error) {
	if c.BaseDate == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(BaseDateLayout, c.BaseDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("base date %q: %w", c.BaseDate, err)
	}
	return t, nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Options returns the extraction options described by the configuration.
func (c Config) Options() extract.Options {
	base, _ := c.ParsedBaseDate()
	return extract.Options{
		Language:  c.Language,
		BaseDate:  base,
		Strict:    c.Strict,
		Threshold: c.Threshold,
		Window:    c.Window,
	}
}
