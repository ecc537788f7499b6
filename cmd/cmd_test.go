package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// countdownCtx reports cancellation after a fixed number of checks
type countdownCtx struct {
	context.Context
	remaining int
}

func (c *countdownCtx) Err() error {
	if c.remaining == 0 {
		return context.Canceled
	}
	c.remaining--
	return nil
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), stdin, args...)
}

func executeContext(t *testing.T, ctx context.Context, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func TestPlay(t *testing.T) {
	t.Run("random against mcts", func(t *testing.T) {
		out, err := execute(t, "", "play", "--p1", "random", "--p2", "mcts", "-n", "50", "--seed", "1")
		require.NoError(t, err)
		require.Contains(t, out, "to move", "Should print the board between moves")
		require.Contains(t, out, "moves\n")
	})

	t.Run("human input", func(t *testing.T) {
		out, err := execute(t, strings.Repeat("0\n", 5), "play", "--p1", "human", "--p2", "random", "--seed", "2", "-q")
		require.NoError(t, err)
		require.Contains(t, out, "Enter an integer in the range [0, 9)")
		require.Contains(t, out, "after")
	})

	t.Run("connect 4", func(t *testing.T) {
		out, err := execute(t, "", "play", "-g", "connect4", "--p1", "random", "--p2", "random", "--seed", "3", "-q")
		require.NoError(t, err)
		require.Contains(t, out, "after")
	})

	t.Run("unknown agent", func(t *testing.T) {
		_, err := execute(t, "", "play", "--p1", "alphazero")
		require.ErrorContains(t, err, "unknown agent")
	})

	t.Run("unreachable win", func(t *testing.T) {
		_, err := execute(t, "", "play", "--win", "5", "--p1", "random")
		require.Error(t, err)
	})
}

func TestTree(t *testing.T) {
	t.Run("writing dot to stdout", func(t *testing.T) {
		out, err := execute(t, "", "tree", "-n", "20", "--seed", "1", "--min-visits", "0")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(out, "digraph mcts {"))
		require.Contains(t, out, "->")
	})

	t.Run("writing the partial tree when interrupted", func(t *testing.T) {
		ctx := &countdownCtx{Context: context.Background(), remaining: 3}
		out, err := executeContext(t, ctx, "", "tree", "-n", "100", "--seed", "1", "--min-visits", "0")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(out, "digraph mcts {"))
		require.Contains(t, out, "visits: 3", "Root should hold the passes completed before the interrupt")
	})

	t.Run("failing when interrupted before the first pass", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		out, err := executeContext(t, ctx, "", "tree", "-n", "100", "--seed", "1")
		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, out)
	})
}

func TestExperiment(t *testing.T) {
	t.Run("running a ladder", func(t *testing.T) {
		t.Setenv("BETAONE_OUTPUT_DIR", t.TempDir())
		out, err := execute(t, "", "experiment", "--ladder", "5,10", "--games", "2")
		require.NoError(t, err)
		require.Contains(t, out, "wins1")
		require.Contains(t, out, "stored in")
	})
}
