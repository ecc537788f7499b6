package agent

import (
	"context"

	"betaone/game"

	"golang.org/x/exp/rand"
)

// Random plays a uniformly random legal move. It is not safe for concurrent use.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a random agent; seed 0 seeds from the clock.
func NewRandom(seed uint64) *Random {
	return &Random{rng: NewRand(seed)}
}

// NewRandomFrom shares rng with the caller, e.g. so a search and its rollouts draw from one stream.
func NewRandomFrom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) ChooseMove(_ context.Context, state game.State) (game.Move, error) {
	moves, err := legalMoves(state)
	if err != nil {
		return nil, err
	}
	return moves[r.rng.Intn(len(moves))], nil
}
