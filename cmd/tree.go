package cmd

import (
	"fmt"
	"io"
	"os"

	"betaone/searcher"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type treeFlags struct {
	gameFlags
	iterations int
	seed       uint64
	minVisits  int
	out        string
}

func newTreeCmd(s *settings) *cobra.Command {
	f := &treeFlags{}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Search the initial position and write the tree in Graphviz DOT format",
		Example: `  betaone tree -n 200 --min-visits 5 -o tree.dot
  dot -Tsvg tree.dot > tree.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := f.apply(s.config.Game).New()
			if err != nil {
				return err
			}
			search := s.config.Search
			if f.iterations > 0 {
				search.Iterations = f.iterations
			}
			if f.seed != 0 {
				search.Seed = f.seed
			}
			options, err := search.Options()
			if err != nil {
				return err
			}
			mcts, err := searcher.NewMCTS(search.Iterations, options...)
			if err != nil {
				return err
			}

			tree, err := mcts.Search(cmd.Context(), state)
			if tree == nil {
				return err
			}
			if err != nil {
				log.Warn().Err(err).Msg("search interrupted, writing the partial tree")
			}
			if best := tree.BestMove(searcher.BestAverage); best != nil {
				log.Info().Msgf("searched %d nodes, best move: %s", tree.Len(), best)
			} else {
				log.Info().Msgf("searched %d nodes", tree.Len())
			}

			var w io.Writer = cmd.OutOrStdout()
			if f.out != "" {
				file, err := os.Create(f.out)
				if err != nil {
					return fmt.Errorf("create %s: %w", f.out, err)
				}
				defer file.Close()
				w = file
			}
			return searcher.WriteDOT(w, tree, f.minVisits)
		},
	}
	f.register(cmd)
	cmd.Flags().IntVarP(&f.iterations, "iterations", "n", 0, "MCTS iterations (default from config)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "search seed, 0 seeds from the clock")
	cmd.Flags().IntVar(&f.minVisits, "min-visits", 1, "omit nodes visited fewer times")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output file, stdout when empty")
	return cmd
}
