package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"betaone/config"
	"betaone/experiments/metrics"
	"betaone/game"
	"betaone/searcher"

	"github.com/stretchr/testify/require"
)

func ticTacToe() config.GameConfig {
	return config.GameConfig{Name: config.TicTacToe, Rows: 3, Cols: 3, NumToWin: 3}
}

func TestRun(t *testing.T) {
	t.Run("running every match-up", func(t *testing.T) {
		exp := config.ExperimentConfig{
			Name:        "test",
			Games:       4,
			Parallelism: 2,
			OutputDir:   t.TempDir(),
			Parquet:     true,
			Agents: []metrics.AgentConfig{
				{ID: 1, Kind: metrics.MCTS, Iterations: 20, Seed: 1},
				{ID: 2, Kind: metrics.Random, Seed: 2},
				{ID: 3, Kind: metrics.Minimax, Depth: 2},
			},
			MatchUps: [][2]int{{1, 2}, {3, 2}},
		}

		summary, err := Run(context.Background(), ticTacToe(), exp)
		require.NoError(t, err)

		require.Len(t, summary.Games, 8)
		require.Len(t, summary.Tallies, 2)
		for _, tally := range summary.Tallies {
			require.Equal(t, exp.Games, tally.Wins1+tally.Wins2+tally.Draws, "Every game should be tallied")
		}

		starts := map[int]int{}
		for i, g := range summary.Games {
			require.Equal(t, i+1, g.ID, "Games should be ordered by ID")
			require.Equal(t, g.Agent1, g.StartingAgent)
			require.Contains(t, []int{NoWinner, g.Agent1, g.Agent2}, g.Winner)
			starts[g.StartingAgent]++
		}
		require.Equal(t, 2, starts[1], "Starting agent should alternate")
		require.Equal(t, 2, starts[3], "Starting agent should alternate")

		moves := 0
		for _, g := range summary.Games {
			moves += g.TotalMoves
		}
		require.Len(t, summary.Moves, moves)

		require.NotEmpty(t, summary.RunID)
		for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv", "move_records.parquet"} {
			_, err := os.Stat(filepath.Join(summary.Dir, name))
			require.NoError(t, err, "%s should be written", name)
		}
	})

	t.Run("rejecting self play", func(t *testing.T) {
		exp := Ladder(config.Default().Experiment, []int{10}, 1)
		exp.OutputDir = t.TempDir()
		exp.MatchUps = [][2]int{{1, 1}}
		_, err := Run(context.Background(), ticTacToe(), exp)
		require.ErrorContains(t, err, "against itself")
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		exp := Ladder(config.Default().Experiment, []int{10}, 1)
		exp.OutputDir = t.TempDir()
		_, err := Run(ctx, ticTacToe(), exp)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewAgent(t *testing.T) {
	t.Run("building each kind", func(t *testing.T) {
		for _, c := range []metrics.AgentConfig{
			{Kind: metrics.Random},
			{Kind: metrics.Minimax, Depth: 3},
			{Kind: metrics.MCTS, Iterations: 10, Exploration: 1.5, TieBreak: "random", FinalSelection: "visits"},
		} {
			agent, err := NewAgent(c, 1)
			require.NoError(t, err, c.Kind)
			require.Implements(t, (*game.Agent)(nil), agent)
		}
	})

	t.Run("mcts agent", func(t *testing.T) {
		agent, err := NewAgent(metrics.AgentConfig{Kind: metrics.MCTS, Iterations: 10}, 1)
		require.NoError(t, err)
		require.IsType(t, &searcher.MCTS{}, agent)
	})

	t.Run("invalid configs", func(t *testing.T) {
		for _, c := range []metrics.AgentConfig{
			{Kind: "alphazero"},
			{Kind: metrics.MCTS, Iterations: 0},
			{Kind: metrics.MCTS, Iterations: 10, TieBreak: "last"},
		} {
			_, err := NewAgent(c, 1)
			require.Error(t, err, c.Kind)
		}
	})
}

func TestLadder(t *testing.T) {
	t.Run("matching budgets against the baseline", func(t *testing.T) {
		exp := Ladder(config.Default().Experiment, []int{10, 100}, 3)
		require.Len(t, exp.Agents, 3)
		require.Equal(t, metrics.Random, exp.Agents[0].Kind)
		require.Equal(t, 100, exp.Agents[2].Iterations)
		require.Equal(t, [][2]int{{1, 0}, {2, 0}}, exp.MatchUps)

		c := config.Default()
		c.Experiment = exp
		require.NoError(t, c.Validate())
	})
}
