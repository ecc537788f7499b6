// Package cmd is the betaone command line: play games, run experiments, dump search trees.
package cmd

import (
	"context"
	"os"
	"os/signal"

	"betaone/config"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the root command; an interrupt cancels the running game or experiment.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// settings is shared by the subcommands once the persistent pre-run has loaded it
type settings struct {
	path   string
	config config.Config
}

func NewRootCmd() *cobra.Command {
	s := &settings{}
	root := &cobra.Command{
		Use:           "betaone",
		Short:         "Two-player board games with Monte Carlo tree search agents",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(s.path)
			if err != nil {
				return err
			}
			logger, err := config.NewLogger(c.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			log.Logger = logger
			s.config = c
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&s.path, "config", "c", "", "path to a YAML or JSON config file")

	root.AddCommand(newPlayCmd(s), newExperimentCmd(s), newTreeCmd(s))
	return root
}

// gameFlags lets a command override the configured game
type gameFlags struct {
	name     string
	rows     int
	cols     int
	numToWin int
}

func (f *gameFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "game", "g", "", "game to play: tictactoe or connect4")
	cmd.Flags().IntVar(&f.rows, "rows", 0, "board rows")
	cmd.Flags().IntVar(&f.cols, "cols", 0, "board columns")
	cmd.Flags().IntVar(&f.numToWin, "win", 0, "pieces in a row needed to win")
}

// apply overrides g with the flags that were set. Picking connect4 without a size uses 6x7, 4 to win.
func (f *gameFlags) apply(g config.GameConfig) config.GameConfig {
	if f.name != "" && f.name != g.Name {
		g.Name = f.name
		if f.name == config.Connect4 {
			g.Rows, g.Cols, g.NumToWin = 6, 7, 4
		} else {
			g.Rows, g.Cols, g.NumToWin = 3, 3, 3
		}
	}
	if f.rows > 0 {
		g.Rows = f.rows
	}
	if f.cols > 0 {
		g.Cols = f.cols
	}
	if f.numToWin > 0 {
		g.NumToWin = f.numToWin
	}
	return g
}
