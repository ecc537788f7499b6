package cmd

import (
	"fmt"

	"betaone/agent"
	"betaone/config"
	"betaone/engine"
	"betaone/game"
	"betaone/searcher"

	"github.com/spf13/cobra"
)

// Agent kinds accepted by --p1 and --p2
const (
	kindMCTS    = "mcts"
	kindRandom  = "random"
	kindMinimax = "minimax"
	kindHuman   = "human"
)

type playFlags struct {
	gameFlags
	players    [2]string
	iterations int
	seed       uint64
	depth      int
	quiet      bool
}

func newPlayCmd(s *settings) *cobra.Command {
	f := &playFlags{}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one game between two agents",
		Example: `  betaone play --p1 human --p2 mcts --iterations 5000
  betaone play --game connect4 --p1 mcts --p2 minimax --depth 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, s.config, f)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&f.players[0], "p1", kindHuman, "first player: mcts, random, minimax or human")
	cmd.Flags().StringVar(&f.players[1], "p2", kindMCTS, "second player: mcts, random, minimax or human")
	cmd.Flags().IntVarP(&f.iterations, "iterations", "n", 0, "MCTS iterations per move (default from config)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for random and MCTS agents, 0 seeds from the clock")
	cmd.Flags().IntVar(&f.depth, "depth", 0, "minimax depth limit, 0 searches to the end")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "only print the result")
	return cmd
}

func runPlay(cmd *cobra.Command, c config.Config, f *playFlags) error {
	state, err := f.apply(c.Game).New()
	if err != nil {
		return err
	}
	search := c.Search
	if f.iterations > 0 {
		search.Iterations = f.iterations
	}
	if f.seed != 0 {
		search.Seed = f.seed
	}

	var agents [2]game.Agent
	for i, kind := range f.players {
		// Offset seeds so two agents of the same kind do not mirror each other
		seat := search
		if seat.Seed != 0 {
			seat.Seed += uint64(i)
		}
		agents[i], err = newAgent(cmd, kind, seat, f.depth)
		if err != nil {
			return fmt.Errorf("p%d: %w", i+1, err)
		}
	}

	out := cmd.OutOrStdout()
	options := []engine.Option{}
	if !f.quiet {
		options = append(options, engine.WithObserver(func(step int, state game.State) {
			fmt.Fprintln(out, renderState(step, state))
		}))
	}
	outcome, err := engine.New(state, agents, options...).Run(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s after %d moves\n", outcome.Result, outcome.Game.TotalMoves)
	return nil
}

func newAgent(cmd *cobra.Command, kind string, search config.SearchConfig, depth int) (game.Agent, error) {
	switch kind {
	case kindHuman:
		return agent.NewHuman(cmd.InOrStdin(), cmd.OutOrStdout()), nil
	case kindRandom:
		return agent.NewRandom(search.Seed), nil
	case kindMinimax:
		return agent.NewMinimax(depth), nil
	case kindMCTS:
		options, err := search.Options()
		if err != nil {
			return nil, err
		}
		mcts, err := searcher.NewMCTS(search.Iterations, options...)
		if err != nil {
			return nil, err
		}
		return mcts, nil
	default:
		return nil, fmt.Errorf("unknown agent %q", kind)
	}
}
