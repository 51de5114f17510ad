package config

import (
	"checkers/experiments"
	"checkers/meta"
	"checkers/policy"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type MatchupConfig struct {
	Black string `yaml:"black"`
	White string `yaml:"white"`
}

// Config describes one experiment. Fields missing from a file keep their defaults.
type Config struct {
	Name                   string          `yaml:"name"`
	Games                  int             `yaml:"games"` // Per matchup
	Goroutines             int             `yaml:"goroutines"`
	Seed                   *uint64         `yaml:"seed"` // Random when unset
	MaxMovesWithoutCapture int             `yaml:"max_moves_without_capture"`
	MaxTurns               int             `yaml:"max_turns"`
	OutputDir              string          `yaml:"output_dir"` // No records are written when empty
	Matchups               []MatchupConfig `yaml:"matchups"`
}

// Default runs every pairing of the built-in policies.
func Default() *Config {
	matchups := []MatchupConfig{}
	for _, m := range experiments.AllMatchups() {
		matchups = append(matchups, MatchupConfig{Black: m.Black.String(), White: m.White.String()})
	}
	return &Config{
		Name:                   "checkers",
		Games:                  meta.NumGames,
		Goroutines:             meta.Goroutines,
		MaxMovesWithoutCapture: meta.MaxMovesWithoutCapture,
		MaxTurns:               meta.MaxTurns,
		OutputDir:              meta.OutputDir,
		Matchups:               matchups,
	}
}

// Load reads a YAML experiment file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	defer f.Close()

	c := Default()
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	for _, field := range []struct {
		name  string
		value int
	}{
		{"games", c.Games},
		{"goroutines", c.Goroutines},
		{"max_moves_without_capture", c.MaxMovesWithoutCapture},
		{"max_turns", c.MaxTurns},
	} {
		if field.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", field.name, field.value))
		}
	}
	if len(c.Matchups) == 0 {
		errs = append(errs, errors.New("at least one matchup is required"))
	}
	if _, err := c.Pairings(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Pairings resolves the policy names of every matchup.
func (c *Config) Pairings() ([]experiments.Matchup, error) {
	matchups := make([]experiments.Matchup, 0, len(c.Matchups))
	for i, m := range c.Matchups {
		black, err := policy.ParseKind(m.Black)
		if err != nil {
			return nil, fmt.Errorf("matchup %d black: %w", i+1, err)
		}
		white, err := policy.ParseKind(m.White)
		if err != nil {
			return nil, fmt.Errorf("matchup %d white: %w", i+1, err)
		}
		matchups = append(matchups, experiments.Matchup{Black: black, White: white})
	}
	return matchups, nil
}

// Options translates the config into runner options. The writer is left to the caller.
func (c *Config) Options() []experiments.Option {
	options := []experiments.Option{
		experiments.WithGames(c.Games),
		experiments.WithGoroutines(c.Goroutines),
		experiments.WithMaxMovesWithoutCapture(c.MaxMovesWithoutCapture),
		experiments.WithMaxTurns(c.MaxTurns),
	}
	if c.Seed != nil {
		options = append(options, experiments.WithSeed(*c.Seed))
	}
	return options
}
