// Package config loads mazegen settings from defaults, a TOML file, the environment and flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/samdwyer/mazegen/internal/maze"
)

// Output formats accepted by the CLI.
const (
	FormatText  = "text"  // numeric dump, one line per row
	FormatGlyph = "glyph" // themed glyphs
	FormatJSON  = "json"
)

// Environment variable names.
const (
	EnvConfig    = "MAZEGEN_CONFIG"
	EnvRows      = "MAZEGEN_ROWS"
	EnvCols      = "MAZEGEN_COLS"
	EnvSeed      = "MAZEGEN_SEED"
	EnvFormat    = "MAZEGEN_FORMAT"
	EnvTheme     = "MAZEGEN_THEME"
	EnvView      = "MAZEGEN_VIEW"
	EnvLogLevel  = "MAZEGEN_LOG_LEVEL"
	EnvTelemetry = "MAZEGEN_TELEMETRY"
)

// ErrUnknownFormat is returned by Validate for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Config holds mazegen configuration options.
type Config struct {
	Rows int `toml:"rows"`
	Cols int `toml:"cols"`

	// Seed text for the random source. Decimal integers are used directly,
	// anything else is hashed, so the same text always yields the same maze.
	Seed string `toml:"seed"`

	Format    string `toml:"format"`
	Theme     string `toml:"theme"`
	View      bool   `toml:"view"`
	LogLevel  string `toml:"log_level"`
	Telemetry bool   `toml:"telemetry"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Rows:     maze.DefaultRows,
		Cols:     maze.DefaultCols,
		Seed:     maze.DefaultSeed,
		Format:   FormatText,
		Theme:    "classic",
		LogLevel: "info",
	}
}

// LoadDotEnv loads .env files into the process environment. Missing files are
// reported but existing variables are never overwritten.
func LoadDotEnv(files ...string) error {
	return godotenv.Load(files...)
}

// Load layers an optional TOML file and then the environment over the defaults.
// An empty path skips the file layer. The result is not validated; apply flags
// first and call Validate once.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadFile overlays the keys present in a TOML file.
func (c *Config) loadFile(path string) error {
	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}

	if meta.IsDefined("rows") {
		c.Rows = raw.Rows
	}
	if meta.IsDefined("cols") {
		c.Cols = raw.Cols
	}
	if meta.IsDefined("seed") {
		c.Seed = raw.Seed
	}
	if meta.IsDefined("format") {
		c.Format = strings.TrimSpace(raw.Format)
	}
	if meta.IsDefined("theme") {
		c.Theme = strings.TrimSpace(raw.Theme)
	}
	if meta.IsDefined("view") {
		c.View = raw.View
	}
	if meta.IsDefined("log_level") {
		c.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("telemetry") {
		c.Telemetry = raw.Telemetry
	}
	return nil
}

// applyEnv overlays the MAZEGEN_* environment variables that are set.
func (c *Config) applyEnv() error {
	if err := envInt(EnvRows, &c.Rows); err != nil {
		return err
	}
	if err := envInt(EnvCols, &c.Cols); err != nil {
		return err
	}
	if err := envBool(EnvView, &c.View); err != nil {
		return err
	}
	if err := envBool(EnvTelemetry, &c.Telemetry); err != nil {
		return err
	}
	envString(EnvSeed, &c.Seed)
	envString(EnvFormat, &c.Format)
	envString(EnvTheme, &c.Theme)
	envString(EnvLogLevel, &c.LogLevel)
	return nil
}

// BindFlags registers command-line flags on fs, using the current values as defaults
// so flags take precedence over every other layer.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Rows, "rows", c.Rows, "Number of maze rows (at least 3).")
	fs.IntVar(&c.Cols, "cols", c.Cols, "Number of maze columns (at least 3).")
	fs.StringVar(&c.Seed, "seed", c.Seed, "Seed text; integers are used as-is, other text is hashed.")
	fs.StringVar(&c.Format, "format", c.Format, "Output format: text, glyph or json.")
	fs.StringVar(&c.Theme, "theme", c.Theme, "Colour and glyph theme.")
	fs.BoolVar(&c.View, "view", c.View, "Show the maze in a terminal preview instead of printing it.")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug, info, warn or error.")
	fs.BoolVar(&c.Telemetry, "telemetry", c.Telemetry, "Export traces over OTLP/HTTP.")
	// Consumed by PathFromArgs before flags are parsed; registered so it is accepted.
	fs.String("config", "", "Path to a TOML config file.")
}

// Validate checks dimensions and output format.
func (c Config) Validate() error {
	if err := maze.ValidateDimensions(c.Rows, c.Cols); err != nil {
		return err
	}
	switch c.Format {
	case FormatText, FormatGlyph, FormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
	}
	return nil
}

// PathFromArgs returns the -config value from args, falling back to MAZEGEN_CONFIG.
func PathFromArgs(args []string) string {
	for i := 0; i < len(args); i++ {
		name, value, hasValue := strings.Cut(strings.TrimLeft(args[i], "-"), "=")
		if !strings.HasPrefix(args[i], "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv(EnvConfig)
}

func envString(key string, dst *string) {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		*dst = value
	}
}

func envInt(key string, dst *int) error {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	*dst = n
	return nil
}

func envBool(key string, dst *bool) error {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("environment variable %s must be a boolean: %w", key, err)
	}
	*dst = b
	return nil
}
