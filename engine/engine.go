package engine

import (
	"errors"

	"betaone/experiments/metrics"
	"betaone/game"
)

const MaxMoves = 10000

var ErrMaxMoves = errors.New("move limit reached before the game ended")

// Reporter is implemented by agents that can describe their last search, e.g. *searcher.MCTS.
type Reporter interface {
	Metrics() metrics.SearchMetric
}

// Outcome of one game. GameMetric carries timings only; agent IDs are filled in by the caller.
type Outcome struct {
	Final  game.State
	Result game.Result
	Game   metrics.GameMetric
	Moves  []metrics.MoveMetric
}

type Option func(e *Engine)

func WithMaxMoves(moves int) Option {
	return func(e *Engine) {
		if moves > 0 {
			e.maxMoves = moves
		}
	}
}

// WithObserver is called with every state of the game, starting with the initial one.
func WithObserver(observe func(step int, state game.State)) Option {
	return func(e *Engine) {
		e.observe = observe
	}
}
