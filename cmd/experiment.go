package cmd

import (
	"fmt"

	"betaone/experiments"

	"github.com/spf13/cobra"
)

type experimentFlags struct {
	gameFlags
	ladder  []int
	games   int
	parquet bool
}

func newExperimentCmd(s *settings) *cobra.Command {
	f := &experimentFlags{}
	cmd := &cobra.Command{
		Use:   "experiment",
		Short: "Run the configured match-ups and store game and move records",
		Example: `  betaone experiment -c experiment.yaml
  betaone experiment --ladder 10,100,1000 --games 20 --parquet`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exp := s.config.Experiment
			if len(f.ladder) > 0 {
				exp = experiments.Ladder(exp, f.ladder, s.config.Search.Seed)
			}
			if f.games > 0 {
				exp.Games = f.games
			}
			if f.parquet {
				exp.Parquet = true
			}

			c := s.config
			c.Game = f.apply(c.Game)
			c.Experiment = exp
			if err := c.Validate(); err != nil {
				return fmt.Errorf("invalid experiment: %w", err)
			}

			summary, err := experiments.Run(cmd.Context(), c.Game, exp)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTallies(summary))
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().IntSliceVar(&f.ladder, "ladder", nil, "MCTS iteration budgets to match up against a random baseline")
	cmd.Flags().IntVar(&f.games, "games", 0, "games per match-up (default from config)")
	cmd.Flags().BoolVar(&f.parquet, "parquet", false, "also write move records as Parquet")
	return cmd
}
