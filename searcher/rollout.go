package searcher

import (
	"context"
	"fmt"

	"betaone/agent"
	"betaone/game"

	"golang.org/x/exp/rand"
)

// Rollout plays uniformly random moves from state until the game ends. Both sides draw from rng, so
// a seeded rng replays the same game.
func Rollout(ctx context.Context, state game.State, rng *rand.Rand) (game.Result, error) {
	random := agent.NewRandomFrom(rng)
	final, err := game.Play(ctx, state, random, random)
	if err != nil {
		return game.Result{}, fmt.Errorf("rollout: %w", err)
	}
	return final.Result(), nil
}
