package metrics

import (
	"checkers/game"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts a decision", func(t *testing.T) {
		c := NewCollector()
		c.Start()
		c.AddCandidates(4)
		for i := 0; i < 4; i++ {
			c.AddEvaluation()
		}
		got := c.Complete()

		require.Equal(t, 4, got.Candidates, "Should report candidates added")
		require.Equal(t, 4, got.Evaluations, "Should report one evaluation per call")
		require.GreaterOrEqual(t, got.Duration, time.Duration(0), "Duration should not be negative")
	})

	t.Run("start resets counters", func(t *testing.T) {
		c := NewCollector()
		c.Start()
		c.AddCandidates(3)
		c.AddEvaluation()
		c.Start()

		got := c.Complete()
		require.Zero(t, got.Candidates, "Start should reset candidates")
		require.Zero(t, got.Evaluations, "Start should reset evaluations")
	})

	t.Run("dummy collector reports nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start()
		c.AddCandidates(10)
		c.AddEvaluation()
		require.Equal(t, DecisionMetric{}, c.Complete(), "Dummy collector should stay empty")
	})
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "unit")
	require.NoError(t, err)
	require.DirExists(t, w.Dir(), "Writer should create its directory")

	require.NoError(t, w.WriteMatchups([]MatchupRecord{{ID: 1, Black: "random", White: "aggressive"}}))
	require.NoError(t, w.WriteGameRecords([]GameMetric{{Run: "r", Game: 1, Black: "random", White: "aggressive", Outcome: "draw"}}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{{Game: 1, MoveMetric: MoveMetric{
		Step: 1, Color: game.Black, Policy: "random", Move: game.NewMove(2, 1, 3, 2),
	}}}))
	require.NoError(t, w.WriteTallies([]TallyRecord{{Matchup: 1, Games: 1, Draws: 1}}))

	read := func(file string) [][]string {
		f, err := os.Open(filepath.Join(w.Dir(), file))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		return rows
	}

	t.Run("matchups", func(t *testing.T) {
		rows := read("matchups.csv")
		require.Equal(t, [][]string{{"id", "black", "white"}, {"1", "random", "aggressive"}}, rows)
	})

	t.Run("moves", func(t *testing.T) {
		rows := read("move_records.csv")
		require.Len(t, rows, 2, "Header plus one row")
		require.Equal(t, []string{"1", "1", "black", "random", "(2,1)->(3,2)", "false", "0s", "0", "0"}, rows[1])
	})

	t.Run("tallies", func(t *testing.T) {
		rows := read("tallies.csv")
		require.Equal(t, []string{"1", "1", "0", "0", "1"}, rows[1])
	})

	t.Run("games", func(t *testing.T) {
		rows := read("game_records.csv")
		require.Len(t, rows, 2, "Header plus one row")
		require.Equal(t, "draw", rows[1][4], "Outcome column should be written")
	})
}
