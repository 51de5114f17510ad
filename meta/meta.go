package meta

// MaxMovesWithoutCapture is the number of consecutive quiet plies after which a game is drawn.
const MaxMovesWithoutCapture = 50

// MaxTurns caps the plies of a single game.
const MaxTurns = 500

// NumGames is the default number of games per matchup.
const NumGames = 30

// Goroutines is the default number of games simulated in parallel.
const Goroutines = 8

// OutputDir is the default root directory for experiment records.
const OutputDir = "experiments"
