package game_test

import (
	"context"
	"testing"

	"betaone/agent"
	"betaone/game"
	"betaone/game/tictactoe"

	"github.com/stretchr/testify/require"
)

type brokenState struct {
	game.State
	moves  []game.Move
	result game.Result
}

func (s brokenState) LegalMoves() []game.Move { return s.moves }
func (s brokenState) Result() game.Result     { return s.result }

func TestCheckConsistency(t *testing.T) {
	t.Run("consistent states", func(t *testing.T) {
		require.NoError(t, game.CheckConsistency(tictactoe.New(3, 3, 3)))
	})

	t.Run("ongoing without moves", func(t *testing.T) {
		err := game.CheckConsistency(brokenState{result: game.Ongoing()})
		require.ErrorIs(t, err, game.ErrInconsistentState)
	})

	t.Run("finished with moves", func(t *testing.T) {
		move := tictactoe.Move{Player: game.Player1}
		err := game.CheckConsistency(brokenState{moves: []game.Move{move}, result: game.DrawResult()})
		require.ErrorIs(t, err, game.ErrInconsistentState)
	})
}

func TestPlay(t *testing.T) {
	t.Run("playing to completion", func(t *testing.T) {
		for seed := uint64(1); seed <= 10; seed++ {
			final, err := game.Play(context.Background(), tictactoe.New(3, 3, 3), agent.NewRandom(seed), agent.NewRandom(seed+100))
			require.NoError(t, err)
			require.True(t, final.Result().IsTerminal())
			require.Empty(t, final.LegalMoves(), "Finished games should have no moves")
		}
	})

	t.Run("finished game", func(t *testing.T) {
		final, err := game.Play(context.Background(), tictactoe.New(3, 3, 3), agent.NewRandom(1), agent.NewRandom(2))
		require.NoError(t, err)
		again, err := game.Play(context.Background(), final, agent.NewRandom(1), agent.NewRandom(2))
		require.NoError(t, err)
		require.Equal(t, final, again, "Nothing should be played")
	})
}
