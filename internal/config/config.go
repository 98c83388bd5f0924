package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/iburimskiy/galaxy-visualization/internal/galaxy"
	"github.com/joho/godotenv"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "Galaxy Generator - drag: orbit, wheel: zoom, R: regenerate, H: panel, Space: auto-rotate, Esc/Q: quit"

	// Device pixels per logical pixel are capped like a browser pixel ratio.
	MaxPixelRatio = 2.0

	FrameRingSize = 240

	// Panel dimensions
	PanelWidth     = 360
	PanelX         = 12
	PanelY         = 40
	PanelRowHeight = 26
	SliderHeight   = 12
	SwatchSize     = 18

	// Terminal viewer
	TerminalFPS = 30
)

// Config is the runtime configuration assembled from defaults, .env,
// environment variables and flags.
type Config struct {
	Galaxy  galaxy.Parameters
	Seed    uint64
	TUI     bool
	Sound   bool
	Logging LoggingConfig
}

type LoggingConfig struct {
	Level      string
	JSONFormat bool
	File       string
}

// Load reads envFile (if it exists) into the environment and builds a Config.
// Malformed values fall back to defaults and are reported in warnings.
func Load(envFile string) (*Config, []string, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	l := &loader{}
	cfg := &Config{
		Galaxy: l.loadGalaxy(),
		Seed:   l.uint("GALAXY_SEED", 0),
		TUI:    l.bool("GALAXY_TUI", false),
		Sound:  l.bool("GALAXY_SOUND", false),
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			JSONFormat: l.bool("LOG_JSON", false),
			File:       getEnv("LOG_FILE", ""),
		},
	}
	return cfg, l.warnings, nil
}

// Normalize clamps the galaxy parameters into panel bounds, returning a
// warning when anything had to move.
func (c *Config) Normalize() []string {
	if err := c.Galaxy.Validate(); err != nil {
		c.Galaxy = c.Galaxy.Clamp()
		return []string{fmt.Sprintf("galaxy parameters clamped: %v", err)}
	}
	return nil
}

// LogValue lets the config be logged as a group.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("galaxy", c.Galaxy.String()),
		slog.Uint64("seed", c.Seed),
		slog.Bool("tui", c.TUI),
		slog.Bool("sound", c.Sound),
		slog.String("log_level", c.Logging.Level),
	)
}

type loader struct {
	warnings []string
}

func (l *loader) loadGalaxy() galaxy.Parameters {
	p := galaxy.DefaultParameters()
	p.Count = l.int("GALAXY_COUNT", p.Count)
	p.Size = l.float("GALAXY_SIZE", p.Size)
	p.Radius = l.float("GALAXY_RADIUS", p.Radius)
	p.Branches = l.int("GALAXY_BRANCHES", p.Branches)
	p.Spin = l.float("GALAXY_SPIN", p.Spin)
	p.Randomness = l.float("GALAXY_RANDOMNESS", p.Randomness)
	p.RandomnessSpread = l.float("GALAXY_RANDOMNESS_SPREAD", p.RandomnessSpread)
	p.RandomnessPower = l.float("GALAXY_RANDOMNESS_POWER", p.RandomnessPower)
	p.InsideColor = l.color("GALAXY_INSIDE_COLOR", p.InsideColor.Hex())
	p.OutsideColor = l.color("GALAXY_OUTSIDE_COLOR", p.OutsideColor.Hex())
	return p
}

func (l *loader) warn(key, value string, err error) {
	l.warnings = append(l.warnings, fmt.Sprintf("%s=%q ignored: %v", key, value, err))
}

func (l *loader) int(key string, def int) int {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		l.warn(key, s, err)
		return def
	}
	return v
}

func (l *loader) uint(key string, def uint64) uint64 {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return def
	}
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		l.warn(key, s, err)
		return def
	}
	return v
}

func (l *loader) float(key string, def float64) float64 {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		l.warn(key, s, err)
		return def
	}
	return v
}

func (l *loader) bool(key string, def bool) bool {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return def
	}
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		l.warn(key, s, err)
		return def
	}
	return v
}

func (l *loader) color(key, def string) galaxy.Color {
	s := getEnv(key, def)
	c, err := galaxy.ParseColor(s)
	if err != nil {
		l.warn(key, s, err)
		return galaxy.MustParseColor(def)
	}
	return c
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
