package experiments

import (
	"checkers/engine"
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/meta"
	"checkers/player"
	"checkers/policy"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Matchup seats one policy on each side of the board.
type Matchup struct {
	Black policy.Kind
	White policy.Kind
}

func (m Matchup) String() string {
	return fmt.Sprintf("%s vs %s", m.Black, m.White)
}

// AllMatchups pairs every policy with every policy, self-play included, in both seatings.
func AllMatchups() []Matchup {
	matchups := []Matchup{}
	for _, black := range policy.Kinds() {
		for _, white := range policy.Kinds() {
			matchups = append(matchups, Matchup{Black: black, White: white})
		}
	}
	return matchups
}

type Tally struct {
	Matchup   Matchup
	Games     int
	BlackWins int
	WhiteWins int
	Draws     int
}

func (t Tally) add(outcome engine.Outcome) Tally {
	t.Games++
	switch outcome {
	case engine.BlackWins:
		t.BlackWins++
	case engine.WhiteWins:
		t.WhiteWins++
	default:
		t.Draws++
	}
	return t
}

// WinRate is the share of games won by c.
func (t Tally) WinRate(c game.Color) float64 {
	if t.Games == 0 {
		return 0
	}
	wins := t.BlackWins
	if c == game.White {
		wins = t.WhiteWins
	}
	return float64(wins) / float64(t.Games)
}

func (t Tally) DrawRate() float64 {
	if t.Games == 0 {
		return 0
	}
	return float64(t.Draws) / float64(t.Games)
}

// ByPolicy keys the results by policy name ("<name> Wins" and "Draws").
// Self-play matchups fold both sides into one entry.
func (t Tally) ByPolicy() map[string]int {
	results := map[string]int{
		t.Matchup.Black.String() + " Wins": 0,
		t.Matchup.White.String() + " Wins": 0,
		"Draws":                            t.Draws,
	}
	results[t.Matchup.Black.String()+" Wins"] += t.BlackWins
	results[t.Matchup.White.String()+" Wins"] += t.WhiteWins
	return results
}

func (t Tally) String() string {
	return fmt.Sprintf("%s: black %d, white %d, draws %d of %d", t.Matchup, t.BlackWins, t.WhiteWins, t.Draws, t.Games)
}

type Option func(r *Runner)

func WithGames(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.games = n
		}
	}
}

func WithGoroutines(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.goroutines = n
		}
	}
}

// WithSeed makes the run reproducible. Without it a seed is drawn at random and logged.
func WithSeed(seed uint64) Option {
	return func(r *Runner) {
		r.seed = seed
		r.seeded = true
	}
}

func WithWriter(w *metrics.Writer) Option {
	return func(r *Runner) {
		r.writer = w
	}
}

func WithMaxMovesWithoutCapture(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxQuiet = n
		}
	}
}

func WithMaxTurns(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxTurns = n
		}
	}
}

// Runner plays batches of independent games and tallies their outcomes.
type Runner struct {
	games      int // Per matchup
	goroutines int
	seed       uint64
	seeded     bool
	writer     *metrics.Writer
	maxQuiet   int
	maxTurns   int
}

func NewRunner(options ...Option) *Runner {
	r := &Runner{ // Default values
		games:      meta.NumGames,
		goroutines: meta.Goroutines,
		maxQuiet:   meta.MaxMovesWithoutCapture,
		maxTurns:   meta.MaxTurns,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

type gameRecord struct {
	outcome engine.Outcome
	game    metrics.GameMetric
	moves   []metrics.MoveMetric
}

// Run plays the configured number of games for every matchup and returns one tally per matchup,
// in matchup order. Every game owns its board, players and policies.
func (r *Runner) Run(ctx context.Context, matchups []Matchup) ([]Tally, error) {
	if len(matchups) == 0 {
		return nil, errors.New("no matchups to run")
	}
	seed := r.seed
	if !r.seeded {
		seed = rand.Uint64()
	}
	runID := uuid.NewString()
	total := len(matchups) * r.games

	log.Info().Msgf("starting run %s: %d matchups of %d games on %d goroutines (seed %d)...",
		runID, len(matchups), r.games, r.goroutines, seed)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	task := make(chan int, total)
	for i := 0; i < total; i++ {
		task <- i
	}
	close(task)

	records := make([]gameRecord, total)
	var firstErr error
	var once sync.Once

	var wg sync.WaitGroup
	for i := 0; i < r.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range task {
				if ctx.Err() != nil {
					continue
				}
				record, err := r.runGame(ctx, runID, index, matchups[index/r.games], seed)
				if err != nil {
					once.Do(func() {
						firstErr = err
						cancel()
					})
					continue
				}
				records[index] = record
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tallies := make([]Tally, len(matchups))
	for mi, matchup := range matchups {
		tallies[mi].Matchup = matchup
	}
	for index, record := range records {
		mi := index / r.games
		tallies[mi] = tallies[mi].add(record.outcome)
	}
	for mi, tally := range tallies {
		log.Info().Msgf("completed matchup %d of %d: %s", mi+1, len(matchups), tally)
	}
	log.Info().Msgf("completed run %s", runID)

	if r.writer != nil {
		if err := r.write(matchups, records, tallies); err != nil {
			return nil, err
		}
	}
	return tallies, nil
}

// runGame plays game number index. Policies are seeded from the run seed and the index
// so a seeded run replays identically whatever the scheduling.
func (r *Runner) runGame(ctx context.Context, runID string, index int, matchup Matchup, seed uint64) (gameRecord, error) {
	blackCollector, whiteCollector := metrics.NewCollector(), metrics.NewCollector()
	black, err := newPlayer(game.Black, matchup.Black, seed+2*uint64(index), blackCollector)
	if err != nil {
		return gameRecord{}, err
	}
	white, err := newPlayer(game.White, matchup.White, seed+2*uint64(index)+1, whiteCollector)
	if err != nil {
		return gameRecord{}, err
	}

	logger := log.With().Str("run", runID).Int("game", index+1).Logger()
	e, err := engine.New(black, white,
		engine.WithMaxMovesWithoutCapture(r.maxQuiet),
		engine.WithMaxTurns(r.maxTurns),
		engine.WithCollectors(blackCollector, whiteCollector),
		engine.WithLogger(logger))
	if err != nil {
		return gameRecord{}, fmt.Errorf("failed to create game %d: %w", index+1, err)
	}

	start := time.Now()
	result, err := e.Run(ctx)
	if err != nil {
		return gameRecord{}, fmt.Errorf("game %d: %w", index+1, err)
	}
	end := time.Now()

	logger.Info().Msgf("completed game %d of %s after %d turns with outcome: %s (%s)",
		index%r.games+1, matchup, result.Turns, result.Outcome, result.Reason)

	return gameRecord{
		outcome: result.Outcome,
		game: metrics.GameMetric{
			Run:         runID,
			Game:        index + 1,
			Black:       matchup.Black.String(),
			White:       matchup.White.String(),
			Outcome:     result.Outcome.String(),
			Reason:      result.Reason.String(),
			Turns:       result.Turns,
			BlackPieces: result.BlackPieces,
			WhitePieces: result.WhitePieces,
			StartTime:   start,
			EndTime:     end,
			Duration:    end.Sub(start),
		},
		moves: result.Moves,
	}, nil
}

func newPlayer(c game.Color, kind policy.Kind, seed uint64, collector metrics.Collector) (*player.Player, error) {
	p, err := policy.New(kind, policy.WithSeed(seed), policy.WithCollector(collector))
	if err != nil {
		return nil, fmt.Errorf("failed to create %v policy: %w", c, err)
	}
	return player.New(c, p)
}

func (r *Runner) write(matchups []Matchup, records []gameRecord, tallies []Tally) error {
	matchupRecords := make([]metrics.MatchupRecord, 0, len(matchups))
	for mi, matchup := range matchups {
		matchupRecords = append(matchupRecords, metrics.MatchupRecord{
			ID:    mi + 1,
			Black: matchup.Black.String(),
			White: matchup.White.String(),
		})
	}
	err := r.writer.WriteMatchups(matchupRecords)
	if err != nil {
		return fmt.Errorf("failed to store matchups: %w", err)
	}
	log.Info().Msg("stored matchups")

	gameRecords := make([]metrics.GameMetric, 0, len(records))
	moveRecords := []metrics.MoveRecord{}
	for _, record := range records {
		gameRecords = append(gameRecords, record.game)
		for _, mm := range record.moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       record.game.Game,
				MoveMetric: mm,
			})
		}
	}
	err = r.writer.WriteGameRecords(gameRecords)
	if err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = r.writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	tallyRecords := make([]metrics.TallyRecord, 0, len(tallies))
	for mi, tally := range tallies {
		tallyRecords = append(tallyRecords, metrics.TallyRecord{
			Matchup:   mi + 1,
			Games:     tally.Games,
			BlackWins: tally.BlackWins,
			WhiteWins: tally.WhiteWins,
			Draws:     tally.Draws,
		})
	}
	err = r.writer.WriteTallies(tallyRecords)
	if err != nil {
		return fmt.Errorf("failed to write tallies: %w", err)
	}
	log.Info().Msg("stored tallies")
	return nil
}
