package connect4

import (
	"context"
	"testing"

	"betaone/agent"
	"betaone/game"

	"github.com/stretchr/testify/require"
)

func drop(t *testing.T, state game.State, cols ...int) game.State {
	t.Helper()
	for _, col := range cols {
		move, ok := state.(*Connect4).MoveInColumn(col)
		require.True(t, ok, "Column %d should be open", col)
		next, err := state.Play(move)
		require.NoError(t, err)
		state = next
	}
	return state
}

func TestConnect4(t *testing.T) {
	t.Run("initial state", func(t *testing.T) {
		state := New(6, 7, 4)
		require.Len(t, state.LegalMoves(), 7)
		require.Equal(t, game.Player1, state.Player())
		for i, m := range state.LegalMoves() {
			require.Equal(t, game.Position{Row: 5, Col: i}, m.(Move).Position, "Pieces should land on the bottom row")
		}
	})

	t.Run("stacking pieces", func(t *testing.T) {
		state := drop(t, New(6, 7, 4), 3, 3)
		move, ok := state.(*Connect4).MoveInColumn(3)
		require.True(t, ok)
		require.Equal(t, game.Position{Row: 3, Col: 3}, move.Position)
		require.Equal(t, 3, move.Column())
	})

	t.Run("vertical win", func(t *testing.T) {
		state := drop(t, New(6, 7, 4), 0, 1, 0, 1, 0, 1, 0)
		require.Equal(t, game.WinFor(game.Player1), state.Result())
		require.Empty(t, state.LegalMoves())
	})

	t.Run("horizontal win", func(t *testing.T) {
		state := drop(t, New(6, 7, 4), 0, 0, 1, 1, 2, 2, 6, 3)
		require.False(t, state.Result().IsTerminal())
		state = drop(t, New(6, 7, 4), 0, 0, 1, 1, 2, 2, 3)
		require.Equal(t, game.WinFor(game.Player1), state.Result())
	})

	t.Run("full column", func(t *testing.T) {
		state := drop(t, New(2, 3, 3), 0, 0)
		require.Len(t, state.LegalMoves(), 2, "Full column should not be playable")
		_, ok := state.(*Connect4).MoveInColumn(0)
		require.False(t, ok)

		_, err := state.Play(Move{Position: game.Position{Row: 0, Col: 0}, Player: state.Player()})
		require.ErrorIs(t, err, game.ErrIllegalMove)
	})

	t.Run("full board draw", func(t *testing.T) {
		state := drop(t, New(2, 2, 2), 0, 1)
		require.False(t, state.Result().IsTerminal())
		state = drop(t, state, 1)
		require.Equal(t, game.WinFor(game.Player1), state.Result(), "Diagonal (1,0)-(0,1)")

		state = drop(t, New(1, 3, 3), 0, 1, 2)
		require.Equal(t, game.DrawResult(), state.Result())
		require.Empty(t, state.LegalMoves())
	})

	t.Run("rejecting floating pieces", func(t *testing.T) {
		state := New(6, 7, 4)
		_, err := state.Play(Move{Position: game.Position{Row: 0, Col: 0}, Player: game.Player1})
		require.ErrorIs(t, err, game.ErrIllegalMove)
		require.Len(t, state.LegalMoves(), 7)
	})

	t.Run("independent clones", func(t *testing.T) {
		state := drop(t, New(6, 7, 4), 2)
		clone := state.Clone()
		drop(t, clone, 2, 2, 2, 2, 2)

		move, ok := state.(*Connect4).MoveInColumn(2)
		require.True(t, ok)
		require.Equal(t, 4, move.Position.Row, "Original should not see the clone's pieces")
	})
}

func TestConsistency(t *testing.T) {
	t.Run("random games", func(t *testing.T) {
		for seed := uint64(1); seed <= 50; seed++ {
			random := agent.NewRandom(seed)
			var state game.State = New(6, 7, 4)
			require.NoError(t, game.CheckConsistency(state))
			for !state.Result().IsTerminal() {
				move, err := random.ChooseMove(context.Background(), state)
				require.NoError(t, err)
				state, err = state.Play(move)
				require.NoError(t, err)
				require.NoError(t, game.CheckConsistency(state), "Seed %d:\n%s", seed, state)
			}
			require.Empty(t, state.LegalMoves(), "Finished connect 4 games should have no moves")
		}
	})
}
