package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/iburimskiy/galaxy-visualization/internal/audio"
	"github.com/iburimskiy/galaxy-visualization/internal/config"
	"github.com/iburimskiy/galaxy-visualization/internal/game"
	"github.com/iburimskiy/galaxy-visualization/internal/logger"
	"github.com/iburimskiy/galaxy-visualization/internal/tui"
)

var (
	// Render into the terminal instead of a window.
	tuiFlag = flag.Bool("tui", false, "render the galaxy in the terminal instead of a window")

	// Zero keeps generation nondeterministic.
	seedFlag = flag.Uint64("seed", 0, "seed for reproducible galaxies (0 = random)")

	countFlag    = flag.Int("count", 0, "initial particle count (overrides GALAXY_COUNT)")
	soundFlag    = flag.Bool("sound", false, "play a chime when the galaxy regenerates")
	logLevelFlag = flag.String("log-level", "", "log level: debug, info, warn, error")
	logJSONFlag  = flag.Bool("log-json", false, "emit JSON logs")
	envFlag      = flag.String("env", ".env", "optional dotenv file")
)

func main() {
	flag.Parse()

	cfg, warnings, err := config.Load(*envFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyFlags(cfg)
	warnings = append(warnings, cfg.Normalize()...)

	out, closeLog, err := logOutput(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	logger.Init(cfg.Logging, out)
	log := slog.With("component", "main")
	for _, w := range warnings {
		log.Warn("Config", "problem", w)
	}
	log.Info("Starting galaxy generator", "config", cfg)

	chime := audio.NewChime(cfg.Sound, slog.Default())
	defer chime.Close()

	run := game.Run
	if cfg.TUI {
		run = tui.Run
	}
	if err := run(cfg, chime, slog.Default()); err != nil {
		log.Error("Viewer failed", "error", err)
		closeLog()
		os.Exit(1)
	}
	log.Info("Shutdown complete")
}

// applyFlags overrides the loaded config with flags given on the command line.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tui":
			cfg.TUI = *tuiFlag
		case "seed":
			cfg.Seed = *seedFlag
		case "count":
			cfg.Galaxy.Count = *countFlag
		case "sound":
			cfg.Sound = *soundFlag
		case "log-level":
			cfg.Logging.Level = *logLevelFlag
		case "log-json":
			cfg.Logging.JSONFormat = *logJSONFlag
		}
	})
}

// logOutput picks the log destination. The terminal viewer owns stdout, so
// without LOG_FILE its logs are discarded.
func logOutput(cfg *config.Config) (io.Writer, func(), error) {
	if cfg.Logging.File == "" {
		if cfg.TUI {
			return io.Discard, func() {}, nil
		}
		return os.Stdout, func() {}, nil
	}
	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
