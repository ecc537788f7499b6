package searcher

import (
	"math"
	"testing"

	"betaone/game"

	"github.com/stretchr/testify/require"
)

func TestUCB1(t *testing.T) {
	t.Run("computing UCB1 value", func(t *testing.T) {
		got := UCB1(5.0, 10, 100, DefaultExploration)

		expected := 5.0/10 + DefaultExploration*math.Sqrt(math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute q/n + c*sqrt(ln(N)/n)")
	})

	t.Run("unvisited child", func(t *testing.T) {
		require.True(t, math.IsInf(UCB1(0, 0, 10, DefaultExploration), 1),
			"Unvisited children should be explored first")
		require.True(t, math.IsInf(UCB1(0, 0, 0, DefaultExploration), 1),
			"Unvisited children under an unvisited parent are still +Inf")
	})

	t.Run("panics with zero parent visits", func(t *testing.T) {
		require.Panics(t, func() {
			UCB1(1.0, 1, 0, DefaultExploration)
		}, "Should panic when N is 0 and n is not")
	})

	t.Run("exploration term increases with parent visits", func(t *testing.T) {
		score1 := UCB1(5.0, 10, 100, DefaultExploration)
		score2 := UCB1(5.0, 10, 1000, DefaultExploration)

		require.Greater(t, score2, score1,
			"More parent visits should increase exploration term")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		score1 := UCB1(5.0, 10, 100, DefaultExploration)
		score2 := UCB1(5.0, 20, 100, DefaultExploration)

		require.Greater(t, score1, score2,
			"More child visits should decrease exploration term")
	})

	t.Run("exploitation term increases with rewards", func(t *testing.T) {
		score1 := UCB1(5.0, 10, 100, DefaultExploration)
		score2 := UCB1(10.0, 10, 100, DefaultExploration)

		require.Greater(t, score2, score1,
			"More rewards should increase exploitation term")
	})

	t.Run("zero exploration is the average", func(t *testing.T) {
		require.Equal(t, 0.25, UCB1(1.0, 4, 100, 0),
			"Without exploration only the mean reward counts")
	})
}

func TestReward(t *testing.T) {
	t.Run("crediting results to the mover", func(t *testing.T) {
		win := game.WinFor(game.Player1)
		require.Equal(t, WinReward, reward(win, game.Player1), "Winner should get a full reward")
		require.Equal(t, LossReward, reward(win, game.Player2), "Loser should get nothing")
		require.Equal(t, DrawReward, reward(game.DrawResult(), game.Player1), "Draw should split the reward")
		require.Equal(t, DrawReward, reward(game.DrawResult(), game.Player2), "Draw should split the reward")
	})
}

func TestParsePolicies(t *testing.T) {
	t.Run("round-tripping names", func(t *testing.T) {
		for _, tb := range []TieBreak{FirstMax, RandomTie} {
			got, err := ParseTieBreak(tb.String())
			require.NoError(t, err)
			require.Equal(t, tb, got)
		}
		for _, f := range []FinalSelection{BestAverage, MostVisits} {
			got, err := ParseFinalSelection(f.String())
			require.NoError(t, err)
			require.Equal(t, f, got)
		}
	})

	t.Run("defaulting empty names", func(t *testing.T) {
		tb, err := ParseTieBreak("")
		require.NoError(t, err)
		require.Equal(t, FirstMax, tb)
		f, err := ParseFinalSelection("")
		require.NoError(t, err)
		require.Equal(t, BestAverage, f)
	})

	t.Run("unknown names", func(t *testing.T) {
		_, err := ParseTieBreak("last")
		require.Error(t, err)
		_, err = ParseFinalSelection("median")
		require.Error(t, err)
	})
}
