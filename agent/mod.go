package agent

import (
	"errors"
	"fmt"
	"time"

	"betaone/game"

	"golang.org/x/exp/rand"
)

var ErrNoLegalMoves = errors.New("no legal moves")

func legalMoves(state game.State) ([]game.Move, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoLegalMoves, state.Result())
	}
	return moves, nil
}

// NewRand returns a generator seeded with seed, or from the clock when seed is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}
