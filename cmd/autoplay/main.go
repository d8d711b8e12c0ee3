package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wordsmithgame/wordsmith/automatic"
	"github.com/wordsmithgame/wordsmith/config"
	"github.com/wordsmithgame/wordsmith/gaddag"
)

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// Usage: autoplay [flags] [OUTPUT.csv]
func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.AdjustRelativePaths(filepath.Dir(ex))
	setupLogging(cfg.GetBool(config.ConfigDebug))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		log.Error().Err(err).Msg("autoplay stopped")
		stop()
		os.Exit(1)
	}
}

// run plays the games. The CPU profile, if any, is stopped and flushed on
// every return path.
func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	var output string
	if args := cfg.Args(); len(args) > 0 {
		output = args[0]
	}

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	lexicon := cfg.GetString(config.ConfigDefaultLexicon)
	gd, err := gaddag.LoadOrGenerate(cfg, lexicon)
	if err != nil {
		return fmt.Errorf("could not load lexicon %v: %w", lexicon, err)
	}

	summary, err := automatic.StartCompVCompStaticGames(ctx, cfg, gd,
		cfg.GetInt(config.ConfigAutoplayGames), cfg.GetInt(config.ConfigAutoplayThreads), output)
	if summary != nil {
		log.Info().
			Int("games", summary.Games).
			Int("turns", summary.Turns).
			Float64("mean-score", summary.MeanScore).
			Float64("stdev-score", summary.StdevScore).
			Float64("positions-per-sec", summary.PositionsPerSecond).
			Dur("elapsed", summary.Elapsed).
			Msg("autoplay-done")
	}
	if err != nil {
		return err
	}
	if output != "" && summary.Games > 0 {
		stats, err := automatic.AnalyzeLogFile(output)
		if err != nil {
			return fmt.Errorf("could not analyze games: %w", err)
		}
		_, err = io.WriteString(out, stats)
		return err
	}
	hist, err := summary.ScoreHistogram()
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, hist)
	return err
}
