package experiments

import (
	"checkers/engine"
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/policy"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllMatchups(t *testing.T) {
	matchups := AllMatchups()
	require.Len(t, matchups, 9, "Three policies give nine ordered pairings")

	seen := map[Matchup]bool{}
	for _, m := range matchups {
		require.False(t, seen[m], "Matchup %v should appear once", m)
		seen[m] = true
	}
	require.True(t, seen[Matchup{Black: policy.KindAggressive, White: policy.KindDefensive}])
	require.True(t, seen[Matchup{Black: policy.KindDefensive, White: policy.KindAggressive}])
}

func TestRun(t *testing.T) {
	matchups := []Matchup{
		{Black: policy.KindRandom, White: policy.KindAggressive},
		{Black: policy.KindDefensive, White: policy.KindRandom},
		{Black: policy.KindRandom, White: policy.KindRandom},
	}

	t.Run("tallies every game", func(t *testing.T) {
		r := NewRunner(WithGames(4), WithGoroutines(3), WithSeed(5), WithMaxTurns(120))
		tallies, err := r.Run(context.Background(), matchups)
		require.NoError(t, err)
		require.Len(t, tallies, len(matchups), "One tally per matchup")

		for i, tally := range tallies {
			require.Equal(t, matchups[i], tally.Matchup, "Tallies should keep matchup order")
			require.Equal(t, 4, tally.Games)
			require.Equal(t, tally.Games, tally.BlackWins+tally.WhiteWins+tally.Draws, "Every game has one outcome")
		}
	})

	t.Run("seeded runs are reproducible", func(t *testing.T) {
		sequential, err := NewRunner(WithGames(3), WithGoroutines(1), WithSeed(9), WithMaxTurns(120)).
			Run(context.Background(), matchups)
		require.NoError(t, err)
		parallel, err := NewRunner(WithGames(3), WithGoroutines(8), WithSeed(9), WithMaxTurns(120)).
			Run(context.Background(), matchups)
		require.NoError(t, err)
		require.Equal(t, sequential, parallel, "Scheduling should not change the results")
	})

	t.Run("deterministic policies always agree", func(t *testing.T) {
		r := NewRunner(WithGames(3), WithGoroutines(2))
		tallies, err := r.Run(context.Background(), []Matchup{{Black: policy.KindAggressive, White: policy.KindDefensive}})
		require.NoError(t, err)
		tally := tallies[0]
		outcomes := 0
		for _, n := range []int{tally.BlackWins, tally.WhiteWins, tally.Draws} {
			if n > 0 {
				require.Equal(t, 3, n, "Identical games should share one outcome")
				outcomes++
			}
		}
		require.Equal(t, 1, outcomes)
	})

	t.Run("writes records", func(t *testing.T) {
		w, err := metrics.NewWriter(t.TempDir(), "runner")
		require.NoError(t, err)
		r := NewRunner(WithGames(2), WithGoroutines(2), WithSeed(1), WithMaxTurns(60), WithWriter(w))
		_, err = r.Run(context.Background(), matchups)
		require.NoError(t, err)

		matchupRows := readCSV(t, filepath.Join(w.Dir(), "matchups.csv"))
		require.Len(t, matchupRows, len(matchups)+1, "Header plus one row per matchup")
		gameRows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, gameRows, 2*len(matchups)+1, "Header plus one row per game")
		require.Equal(t, "1", gameRows[1][1], "Games should be written in order")
		require.Equal(t, "random", gameRows[1][2])
		require.Equal(t, "aggressive", gameRows[1][3])
		tallyRows := readCSV(t, filepath.Join(w.Dir(), "tallies.csv"))
		require.Len(t, tallyRows, len(matchups)+1)
		moveRows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Greater(t, len(moveRows), 1, "Moves should be recorded")
	})

	t.Run("stops on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewRunner(WithGames(2)).Run(ctx, matchups)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("fails on bad input", func(t *testing.T) {
		_, err := NewRunner().Run(context.Background(), nil)
		require.Error(t, err, "No matchups to run")

		_, err = NewRunner(WithGames(1)).Run(context.Background(), []Matchup{{Black: policy.Kind(42), White: policy.KindRandom}})
		require.ErrorIs(t, err, policy.ErrUnknownPolicy)
	})
}

func TestTally(t *testing.T) {
	t.Run("rates", func(t *testing.T) {
		tally := Tally{Matchup: Matchup{Black: policy.KindRandom, White: policy.KindDefensive}}
		require.Zero(t, tally.WinRate(game.Black), "Empty tally has no rate")

		for _, outcome := range []engine.Outcome{engine.BlackWins, engine.BlackWins, engine.WhiteWins, engine.Draw} {
			tally = tally.add(outcome)
		}
		require.Equal(t, 4, tally.Games)
		require.InDelta(t, 0.5, tally.WinRate(game.Black), 1e-9)
		require.InDelta(t, 0.25, tally.WinRate(game.White), 1e-9)
		require.InDelta(t, 0.25, tally.DrawRate(), 1e-9)
		require.Equal(t, map[string]int{"random Wins": 2, "defensive Wins": 1, "Draws": 1}, tally.ByPolicy())
	})

	t.Run("self-play folds both sides", func(t *testing.T) {
		tally := Tally{
			Matchup:   Matchup{Black: policy.KindAggressive, White: policy.KindAggressive},
			Games:     5,
			BlackWins: 2,
			WhiteWins: 1,
			Draws:     2,
		}
		require.Equal(t, map[string]int{"aggressive Wins": 3, "Draws": 2}, tally.ByPolicy())
	})
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err, "File %s should exist", path)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err, "File %s should be valid CSV", path)
	return rows
}
