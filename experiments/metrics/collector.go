package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Iterations   int
	Duration     time.Duration
	Episodes     int
	FullPlayouts int
	TreeSize     int
}

type MoveMetric struct {
	Step   int
	Player int // game.Player
	SearchMetric
}

type GameMetric struct {
	StartingAgent int // AgentConfig.ID
	Winner        int // AgentConfig.ID, -1 for a draw
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	TotalMoves    int
}

type Collector interface {
	Start(iterations int)
	AddFullPlayout()
	AddEpisode()
	SetTreeSize(nodes int)
	Complete() SearchMetric
}

type collector struct {
	iterations   int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	treeSize     atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters, a collector is reused across the moves of a game
func (m *collector) Start(iterations int) {
	m.startTime = time.Now()
	m.iterations = iterations
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.treeSize.Store(0)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) SetTreeSize(nodes int) {
	m.treeSize.Store(int32(nodes))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Iterations:   m.iterations,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		TreeSize:     int(m.treeSize.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(iterations int)   {}
func (m *dummyCollector) AddFullPlayout()        {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) SetTreeSize(nodes int)  {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
