package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type MatchupRecord struct {
	ID    int
	Black string // Policy name
	White string // Policy name
}

type MoveRecord struct {
	Game int // GameMetric.Game
	MoveMetric
}

type TallyRecord struct {
	Matchup   int // MatchupRecord.ID
	Games     int
	BlackWins int
	WhiteWins int
	Draws     int
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> to hold the experiment's CSV files.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteMatchups(records []MatchupRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Black,
			record.White,
		})
	}
	return w.write("matchups.csv", []string{"id", "black", "white"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameMetric) error {
	header := []string{"run", "game", "black", "white", "outcome", "reason", "turns",
		"black_pieces", "white_pieces", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Run,
			strconv.Itoa(record.Game),
			record.Black,
			record.White,
			record.Outcome,
			record.Reason,
			strconv.Itoa(record.Turns),
			strconv.Itoa(record.BlackPieces),
			strconv.Itoa(record.WhitePieces),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "color", "policy", "move", "capture", "duration", "candidates", "evaluations"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Color.String(),
			record.Policy,
			record.Move.String(),
			strconv.FormatBool(record.Move.Capture),
			record.Duration.String(),
			strconv.Itoa(record.Candidates),
			strconv.Itoa(record.Evaluations),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WriteTallies(records []TallyRecord) error {
	header := []string{"matchup", "games", "black_wins", "white_wins", "draws"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Matchup),
			strconv.Itoa(record.Games),
			strconv.Itoa(record.BlackWins),
			strconv.Itoa(record.WhiteWins),
			strconv.Itoa(record.Draws),
		})
	}
	return w.write("tallies.csv", header, rows)
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}
