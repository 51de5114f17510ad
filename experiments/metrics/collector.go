package metrics

import (
	"checkers/game"
	"sync/atomic"
	"time"
)

// DecisionMetric describes the work a policy did to pick one move.
type DecisionMetric struct {
	Duration    time.Duration
	Candidates  int // Legal moves considered
	Evaluations int // Boards cloned and scored
}

type MoveMetric struct {
	Step   int
	Color  game.Color
	Policy string
	Move   game.Move
	DecisionMetric
}

type GameMetric struct {
	Run         string // Experiment run ID
	Game        int
	Black       string // Policy name
	White       string // Policy name
	Outcome     string
	Reason      string
	Turns       int
	BlackPieces int
	WhitePieces int
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
}

// Collector is shared between the engine, which brackets a decision with Start and Complete,
// and the policy, which reports what it looked at.
type Collector interface {
	Start()
	AddCandidates(n int)
	AddEvaluation()
	Complete() DecisionMetric
}

type collector struct {
	startTime   time.Time
	candidates  atomic.Int32
	evaluations atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.candidates.Store(0)
	m.evaluations.Store(0)
}

func (m *collector) AddCandidates(n int) {
	m.candidates.Add(int32(n))
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) Complete() DecisionMetric {
	return DecisionMetric{
		Duration:    time.Since(m.startTime),
		Candidates:  int(m.candidates.Load()),
		Evaluations: int(m.evaluations.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                   {}
func (m *dummyCollector) AddCandidates(n int)      {}
func (m *dummyCollector) AddEvaluation()           {}
func (m *dummyCollector) Complete() DecisionMetric { return DecisionMetric{} }
