package searcher

import (
	"context"
	"errors"
	"fmt"

	"betaone/agent"
	"betaone/arena"
	"betaone/experiments/metrics"
	"betaone/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var ErrInvalidIterations = errors.New("iterations must be at least 1")

type Option func(mcts *MCTS)

// MCTS is a single-threaded UCT searcher. It is not safe for concurrent use: searches share one rng.
type MCTS struct {
	iterations   int
	exploration  float64
	tieBreak     TieBreak
	final        FinalSelection
	capacityHint int
	rng          *rand.Rand
	metrics      metrics.Collector
	logger       zerolog.Logger
	last         metrics.SearchMetric
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

// WithSeed makes searches reproducible. Seed 0 keeps the clock-seeded default.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		if seed != 0 {
			m.rng = agent.NewRand(seed)
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithTieBreak(tieBreak TieBreak) Option {
	return func(m *MCTS) {
		m.tieBreak = tieBreak
	}
}

func WithFinalSelection(final FinalSelection) Option {
	return func(m *MCTS) {
		m.final = final
	}
}

func WithCapacityHint(nodes int) Option {
	return func(m *MCTS) {
		if nodes > 0 {
			m.capacityHint = nodes
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(m *MCTS) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *MCTS) {
		m.logger = logger
	}
}

func NewMCTS(iterations int, options ...Option) (*MCTS, error) {
	if iterations < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidIterations, iterations)
	}
	m := &MCTS{ // Default values
		iterations:   iterations,
		exploration:  DefaultExploration,
		capacityHint: DefaultCapacityHint,
		metrics:      metrics.NewDummyCollector(),
		logger:       log.Logger,
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = agent.NewRand(0)
	}
	return m, nil
}

func (m *MCTS) Iterations() int { return m.iterations }

// Metrics returns the statistics of the most recent search.
func (m *MCTS) Metrics() metrics.SearchMetric { return m.last }

// ChooseMove searches from state and returns the move to play.
// A cancelled search still answers with the best move so far once the root has been expanded.
func (m *MCTS) ChooseMove(ctx context.Context, state game.State) (game.Move, error) {
	tree, err := m.Search(ctx, state)
	if tree == nil {
		return nil, err
	}

	move := tree.BestMove(m.final)
	if move == nil {
		if err == nil {
			err = fmt.Errorf("%w: no root child was visited", game.ErrInconsistentState)
		}
		return nil, err
	}
	if err != nil {
		m.logger.Warn().Err(err).Msgf("search interrupted, playing %s", move)
	}
	return move, nil
}

// Search builds a fresh tree for state. On cancellation it returns the partial tree together with
// ctx.Err(), or a nil tree when not a single pass completed.
func (m *MCTS) Search(ctx context.Context, state game.State) (*Tree, error) {
	if len(state.LegalMoves()) == 0 {
		if err := game.CheckConsistency(state); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", agent.ErrNoLegalMoves, state.Result())
	}

	tree := &Tree{arena.New[game.State](state.Clone(), m.capacityHint)}
	// The root expansion consumes one iteration of the budget
	passes := max(m.iterations-1, 1)

	m.metrics.Start(m.iterations)
	defer func() {
		m.metrics.SetTreeSize(tree.Len())
		m.last = m.metrics.Complete()
	}()

	for i := 0; i < passes; i++ {
		if err := ctx.Err(); err != nil {
			if i == 0 {
				return nil, err
			}
			return tree, err
		}
		if err := m.simulate(ctx, tree); err != nil {
			return nil, err
		}
		m.metrics.AddEpisode()
	}

	m.logger.Debug().
		Int("passes", passes).
		Int("nodes", tree.Len()).
		Msgf("completed search for %s", state.Player())
	return tree, nil
}

func (m *MCTS) simulate(ctx context.Context, tree *Tree) error {
	leaf := m.selects(tree)
	state := tree.Get(leaf).Payload

	if result := state.Result(); result.IsTerminal() {
		backup(tree, leaf, result)
		return nil
	}

	child, err := m.expand(tree, leaf, state)
	if err != nil {
		return err
	}
	result, err := Rollout(ctx, tree.Get(child).Payload, m.rng)
	if err != nil {
		return err
	}
	m.metrics.AddFullPlayout()
	backup(tree, child, result)
	return nil
}

// selects descends by UCB1 until it reaches a node without children
func (m *MCTS) selects(tree *Tree) arena.NodeRef {
	ref := tree.Root()
	for {
		children := tree.Children(ref)
		if len(children) == 0 {
			return ref
		}
		ref = m.pickChild(tree, tree.Get(ref).Visits, children)
	}
}

func (m *MCTS) pickChild(tree *Tree, parentVisits int, children []arena.NodeRef) arena.NodeRef {
	best := []arena.NodeRef{}
	bestScore := 0.0
	for _, child := range children {
		node := tree.Get(child)
		score := UCB1(node.Score, node.Visits, parentVisits, m.exploration)
		switch {
		case len(best) == 0 || score > bestScore:
			best = append(best[:0], child)
			bestScore = score
		case score == bestScore && m.tieBreak == RandomTie:
			best = append(best, child)
		}
	}
	if len(best) == 1 {
		return best[0]
	}
	return best[m.rng.Intn(len(best))]
}

// expand adds every legal move of leaf as a child and returns one of them at random
func (m *MCTS) expand(tree *Tree, leaf arena.NodeRef, state game.State) (arena.NodeRef, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return arena.NilRef, game.CheckConsistency(state)
	}

	tree.MarkExpanded(leaf)
	for _, move := range moves {
		next, err := state.Play(move)
		if err != nil {
			return arena.NilRef, fmt.Errorf("expanding %s: %w", move, err)
		}
		tree.Insert(next, leaf)
	}

	children := tree.Children(leaf)
	return children[m.rng.Intn(len(children))], nil
}

// backup credits result to ref and each of its ancestors
func backup(tree *Tree, ref arena.NodeRef, result game.Result) {
	tree.Ancestors(ref, func(_ arena.NodeRef, node *arena.Node[game.State]) {
		node.Visits++
		node.Score += reward(result, node.Payload.Player().Other())
	})
}

// reward scores result for the player who moved into a node
func reward(result game.Result, mover game.Player) float64 {
	switch {
	case result.Kind == game.Draw:
		return DrawReward
	case result.Kind == game.Win && result.Winner == mover:
		return WinReward
	default:
		return LossReward
	}
}
