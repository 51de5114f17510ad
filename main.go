package main

import (
	"checkers/config"
	"checkers/experiments"
	"checkers/experiments/metrics"
	"checkers/game"
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML experiment file; every policy pairing when empty")
	games := flag.Int("games", 0, "Games per matchup (overrides the config)")
	goroutines := flag.Int("goroutines", 0, "Games simulated in parallel (overrides the config)")
	seed := flag.Uint64("seed", 0, "Seed for reproducible runs (overrides the config)")
	out := flag.String("out", "", "Root directory for CSV records; \"-\" disables them")
	level := flag.String("log-level", "info", "Log level")
	pretty := flag.Bool("pretty", false, "Human-readable console logs")
	flag.Parse()

	setupLogger(*level, *pretty)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "games":
			cfg.Games = *games
		case "goroutines":
			cfg.Goroutines = *goroutines
		case "seed":
			cfg.Seed = seed
		case "out":
			cfg.OutputDir = *out
		}
	})
	if cfg.OutputDir == "-" {
		cfg.OutputDir = ""
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}
	matchups, err := cfg.Pairings()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid matchups")
	}

	options := cfg.Options()
	if cfg.OutputDir != "" {
		writer, err := metrics.NewWriter(cfg.OutputDir, cfg.Name)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create experiment writer")
		}
		log.Info().Msgf("writing records to %s", writer.Dir())
		options = append(options, experiments.WithWriter(writer))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().Msgf("starting %s experiment...", cfg.Name)
	tallies, err := experiments.NewRunner(options...).Run(ctx, matchups)
	if err != nil {
		log.Fatal().Err(err).Msgf("%s experiment failed", cfg.Name)
	}

	for _, tally := range tallies {
		event := log.Info().Str("black", tally.Matchup.Black.String()).Str("white", tally.Matchup.White.String())
		for key, count := range tally.ByPolicy() {
			event = event.Int(key, count)
		}
		event.Msgf("black won %.0f%%, white won %.0f%%, drawn %.0f%%",
			100*tally.WinRate(game.Black), 100*tally.WinRate(game.White), 100*tally.DrawRate())
	}
	log.Info().Msgf("completed %s experiment", cfg.Name)
}

func setupLogger(level string, pretty bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
