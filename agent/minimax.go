package agent

import (
	"context"
	"math"

	"betaone/game"
)

// Minimax searches the full game tree (or up to Depth plies) with negamax.
// Positions cut off by the depth limit are valued as 0, the same as a draw.
type Minimax struct {
	Depth int // 0 searches to the end of the game
}

func NewMinimax(depth int) *Minimax {
	return &Minimax{Depth: depth}
}

// ChooseMove returns the first move with the best negamax value for the player to move.
func (m *Minimax) ChooseMove(ctx context.Context, state game.State) (game.Move, error) {
	moves, err := legalMoves(state)
	if err != nil {
		return nil, err
	}

	depth := m.Depth
	if depth <= 0 {
		depth = math.MaxInt
	}

	var best game.Move
	bestValue := math.Inf(-1)
	for _, move := range moves {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := state.Play(move)
		if err != nil {
			return nil, err
		}
		value, err := negamax(next, depth-1)
		if err != nil {
			return nil, err
		}
		// Value of the child is from the opponent's perspective
		if -value > bestValue {
			bestValue = -value
			best = move
		}
	}
	return best, nil
}

// Value returns the negamax value of state for the player to move: 1 win, 0 draw, -1 loss.
func (m *Minimax) Value(state game.State) (float64, error) {
	depth := m.Depth
	if depth <= 0 {
		depth = math.MaxInt
	}
	return negamax(state, depth)
}

func negamax(state game.State, depth int) (float64, error) {
	result := state.Result()
	switch result.Kind {
	case game.Draw:
		return 0, nil
	case game.Win:
		if result.Winner == state.Player() {
			return 1, nil
		}
		// The previous player just won
		return -1, nil
	}
	if depth <= 0 {
		return 0, nil
	}

	moves := state.LegalMoves()
	if len(moves) == 0 {
		return 0, game.CheckConsistency(state)
	}
	best := math.Inf(-1)
	for _, move := range moves {
		next, err := state.Play(move)
		if err != nil {
			return 0, err
		}
		value, err := negamax(next, depth-1)
		if err != nil {
			return 0, err
		}
		best = math.Max(best, -value)
		if best == 1 {
			break
		}
	}
	return best, nil
}
