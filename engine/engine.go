package engine

import (
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/meta"
	"checkers/player"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrGameOver    = errors.New("game is over - no moves allowed")
	ErrIllegalMove = errors.New("illegal move")
)

type Outcome int

const (
	BlackWins Outcome = iota
	WhiteWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case BlackWins:
		return "black"
	case WhiteWins:
		return "white"
	default:
		return "draw"
	}
}

// Reason explains why a game ended.
type Reason int

const (
	NoMoves    Reason = iota // A side could not move; decided on piece count
	NoCapture                // Too many consecutive quiet plies
	Repetition               // A position occurred twice
	TurnLimit                // Ply cap reached; decided on piece count
)

func (r Reason) String() string {
	switch r {
	case NoMoves:
		return "no_moves"
	case NoCapture:
		return "no_capture"
	case Repetition:
		return "repetition"
	case TurnLimit:
		return "turn_limit"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

type Result struct {
	Outcome     Outcome
	Reason      Reason
	Turns       int // Plies played, skipped turns included
	BlackPieces int
	WhitePieces int
	Moves       []metrics.MoveMetric
}

// Winner returns the winning color, or false on a draw.
func (r Result) Winner() (game.Color, bool) {
	switch r.Outcome {
	case BlackWins:
		return game.Black, true
	case WhiteWins:
		return game.White, true
	default:
		return 0, false
	}
}

// Update is the last ply applied to the board, as seen by the opponent.
type Update struct {
	Color game.Color
	Move  game.Move
	Hash  game.StateHash
}

type Option func(e *Engine)

func WithMaxMovesWithoutCapture(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxQuiet = n
		}
	}
}

func WithMaxTurns(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxTurns = n
		}
	}
}

// WithBoard starts the game from b instead of the standard layout. The engine takes ownership of b.
func WithBoard(b *game.Board) Option {
	return func(e *Engine) {
		if b != nil {
			e.board = b
		}
	}
}

func WithFirstMover(c game.Color) Option {
	return func(e *Engine) {
		e.current = c
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithCollectors brackets every decision of each side with its collector.
// Pass the same collectors to the players' policies to record their work.
func WithCollectors(black, white metrics.Collector) Option {
	return func(e *Engine) {
		if black != nil {
			e.collectors[game.Black] = black
		}
		if white != nil {
			e.collectors[game.White] = white
		}
	}
}

// Engine drives one game: it alternates turns, applies moves to the live board
// and applies the end-of-game and draw rules.
type Engine struct {
	board      *game.Board
	players    [2]*player.Player
	collectors [2]metrics.Collector
	current    game.Color
	maxQuiet   int
	maxTurns   int
	logger     zerolog.Logger

	turns  int
	quiet  int
	seen   map[string]struct{}
	moves  []metrics.MoveMetric
	last   *Update
	over   bool
	result Result
}

func New(black, white *player.Player, options ...Option) (*Engine, error) {
	if black == nil || white == nil {
		return nil, errors.New("need two players")
	}
	if black.Color() != game.Black || white.Color() != game.White {
		return nil, fmt.Errorf("players have colors %v and %v, want black and white", black.Color(), white.Color())
	}

	e := &Engine{ // Default values
		board:      game.NewStandardBoard(),
		players:    [2]*player.Player{black, white},
		collectors: [2]metrics.Collector{metrics.NewDummyCollector(), metrics.NewDummyCollector()},
		current:    game.Black,
		maxQuiet:   meta.MaxMovesWithoutCapture,
		maxTurns:   meta.MaxTurns,
		logger:     log.Logger,
		seen:       make(map[string]struct{}),
	}
	for _, option := range options {
		option(e)
	}
	if !e.current.Valid() {
		return nil, fmt.Errorf("invalid first mover %v", e.current)
	}
	return e, nil
}

// Board returns a copy of the live board.
func (e *Engine) Board() *game.Board {
	return e.board.Clone()
}

func (e *Engine) Current() game.Color {
	return e.current
}

func (e *Engine) Over() bool {
	return e.over
}

// LastUpdate returns the most recently applied ply, if any.
func (e *Engine) LastUpdate() (Update, bool) {
	if e.last == nil {
		return Update{}, false
	}
	return *e.last, true
}

// Result is only meaningful once Over reports true.
func (e *Engine) Result() Result {
	return e.result
}

// Run plays turns until the game ends or ctx is done.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	e.logger.Debug().Msgf("%s is starting", e.players[e.current])
	for !e.over {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if err := e.Step(); err != nil {
			return Result{}, err
		}
	}
	return e.result, nil
}

// Step plays a single turn: the current player decides and the move is applied.
func (e *Engine) Step() error {
	if e.over {
		return ErrGameOver
	}
	if len(e.board.LegalMoves(game.Black)) == 0 || len(e.board.LegalMoves(game.White)) == 0 {
		e.finish(NoMoves)
		return nil
	}

	current := e.players[e.current]
	collector := e.collectors[e.current]
	collector.Start()
	move, ok := current.DecideMove(e.board)
	decision := collector.Complete()

	if !ok {
		e.logger.Debug().Msgf("%s has no legal move, turn skipped", current)
		e.turns++
		e.current = e.current.Opponent()
		e.checkTurnLimit()
		return nil
	}
	return e.play(move, decision)
}

// Play applies m for the player to move, after checking it against the legal moves.
func (e *Engine) Play(m game.Move) error {
	return e.play(m, metrics.DecisionMetric{})
}

func (e *Engine) play(m game.Move, decision metrics.DecisionMetric) error {
	if e.over {
		return ErrGameOver
	}

	legal := false
	for _, lm := range e.board.LegalMoves(e.current) {
		if lm == m {
			legal = true
			break
		}
	}
	if !legal {
		return fmt.Errorf("%w: %v for %v", ErrIllegalMove, m, e.current)
	}

	if err := e.board.Execute(m); err != nil {
		return fmt.Errorf("failed to execute %v: %w", m, err)
	}
	e.turns++
	e.last = &Update{Color: e.current, Move: m, Hash: e.board.Hash()}
	e.moves = append(e.moves, metrics.MoveMetric{
		Step:           e.turns,
		Color:          e.current,
		Policy:         e.players[e.current].Name(),
		Move:           m,
		DecisionMetric: decision,
	})
	e.logger.Debug().Msgf("turn %d: %s played %v", e.turns, e.players[e.current], m)

	if m.Capture {
		e.quiet = 0
	} else {
		e.quiet++
	}
	e.current = e.current.Opponent()

	if e.quiet >= e.maxQuiet {
		e.finish(NoCapture)
		return nil
	}
	fingerprint := e.board.Fingerprint()
	if _, ok := e.seen[fingerprint]; ok {
		e.finish(Repetition)
		return nil
	}
	e.seen[fingerprint] = struct{}{}
	e.checkTurnLimit()
	return nil
}

func (e *Engine) checkTurnLimit() {
	if !e.over && e.turns >= e.maxTurns {
		e.finish(TurnLimit)
	}
}

func (e *Engine) finish(reason Reason) {
	blacks, whites := e.board.Count(game.Black), e.board.Count(game.White)
	outcome := Draw
	switch {
	case reason == NoCapture || reason == Repetition:
	case blacks > whites:
		outcome = BlackWins
	case whites > blacks:
		outcome = WhiteWins
	}

	e.over = true
	e.result = Result{
		Outcome:     outcome,
		Reason:      reason,
		Turns:       e.turns,
		BlackPieces: blacks,
		WhitePieces: whites,
		Moves:       e.moves,
	}
	e.logger.Debug().Msgf("game over after %d turns (%s): %s, pieces %d-%d", e.turns, reason, outcome, blacks, whites)
}
