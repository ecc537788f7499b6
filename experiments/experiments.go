package experiments

import (
	"context"
	"errors"
	"fmt"

	"betaone/agent"
	"betaone/config"
	"betaone/engine"
	"betaone/experiments/metrics"
	"betaone/game"
	"betaone/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const NoWinner = -1

// Tally counts the results of one match-up, from the perspective of its two agents.
type Tally struct {
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	Wins1  int
	Wins2  int
	Draws  int
}

type Summary struct {
	RunID   string
	Dir     string
	Tallies []Tally
	Games   []metrics.GameRecord
	Moves   []metrics.MoveRecord
}

type job struct {
	id      int
	matchUp int
	first   metrics.AgentConfig
	second  metrics.AgentConfig
}

type result struct {
	game  metrics.GameRecord
	moves []metrics.MoveRecord
}

// Run plays every match-up exp.Games times, alternating which agent starts, and stores the records
// under exp.OutputDir. Games run concurrently, at most exp.Parallelism at a time.
func Run(ctx context.Context, g config.GameConfig, exp config.ExperimentConfig) (Summary, error) {
	configs := make(map[int]metrics.AgentConfig, len(exp.Agents))
	for _, c := range exp.Agents {
		configs[c.ID] = c
	}

	jobs := []job{}
	for mi, matchUp := range exp.MatchUps {
		a, ok1 := configs[matchUp[0]]
		b, ok2 := configs[matchUp[1]]
		if !ok1 || !ok2 {
			return Summary{}, fmt.Errorf("match-up %v references an unknown agent", matchUp)
		}
		// Results are tallied by agent ID
		if a.ID == b.ID {
			return Summary{}, fmt.Errorf("match-up %v pits an agent against itself", matchUp)
		}
		for i := 0; i < exp.Games; i++ {
			j := job{id: len(jobs) + 1, matchUp: mi, first: a, second: b}
			if i%2 == 1 {
				j.first, j.second = b, a
			}
			jobs = append(jobs, j)
		}
	}

	log.Info().Msgf("starting %s experiment with %d games...", exp.Name, len(jobs))

	results := make([]result, len(jobs))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(max(exp.Parallelism, 1))
	for i, j := range jobs {
		i, j := i, j
		group.Go(func() error {
			r, err := runGame(ctx, g, j)
			if err != nil {
				return fmt.Errorf("game %d: %w", j.id, err)
			}
			results[i] = r
			log.Info().Msgf("completed game %d of %d (agent %d vs agent %d), winner: %d",
				j.id, len(jobs), j.first.ID, j.second.ID, r.game.Winner)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Summary{}, err
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	summary := Summary{Tallies: make([]Tally, len(exp.MatchUps))}
	for mi, matchUp := range exp.MatchUps {
		summary.Tallies[mi] = Tally{Agent1: matchUp[0], Agent2: matchUp[1]}
	}
	for i, r := range results {
		summary.Games = append(summary.Games, r.game)
		summary.Moves = append(summary.Moves, r.moves...)

		tally := &summary.Tallies[jobs[i].matchUp]
		switch r.game.Winner {
		case NoWinner:
			tally.Draws++
		case tally.Agent1:
			tally.Wins1++
		default:
			tally.Wins2++
		}
	}

	if err := store(&summary, exp); err != nil {
		return summary, err
	}
	return summary, nil
}

func store(summary *Summary, exp config.ExperimentConfig) error {
	writer, err := metrics.NewWriter(exp.OutputDir, exp.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	summary.RunID = writer.RunID()
	summary.Dir = writer.Dir()

	if err := writer.WriteAgentConfigs(exp.Agents); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(summary.Games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(summary.Moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	if exp.Parquet {
		if err := writer.WriteMoveRecordsParquet(summary.Moves); err != nil {
			return err
		}
	}
	log.Info().Msgf("stored move records in %s", summary.Dir)
	return nil
}

// runGame executes a single game between two freshly created agents
func runGame(ctx context.Context, g config.GameConfig, j job) (result, error) {
	state, err := g.New()
	if err != nil {
		return result{}, err
	}
	first, err := NewAgent(j.first, uint64(j.id))
	if err != nil {
		return result{}, err
	}
	second, err := NewAgent(j.second, uint64(j.id))
	if err != nil {
		return result{}, err
	}

	outcome, err := engine.New(state, [2]game.Agent{first, second}).Run(ctx)
	if err != nil && !errors.Is(err, engine.ErrMaxMoves) {
		return result{}, err
	}

	record := metrics.GameRecord{
		ID:         j.id,
		Agent1:     j.first.ID,
		Agent2:     j.second.ID,
		GameMetric: outcome.Game,
	}
	record.StartingAgent = j.first.ID
	record.Winner = NoWinner
	if outcome.Result.Kind == game.Win {
		record.Winner = j.first.ID
		if outcome.Result.Winner == game.Player2 {
			record.Winner = j.second.ID
		}
	}

	moves := make([]metrics.MoveRecord, len(outcome.Moves))
	for i, mm := range outcome.Moves {
		moves[i] = metrics.MoveRecord{Game: j.id, MoveMetric: mm}
	}
	return result{game: record, moves: moves}, nil
}

// NewAgent builds the agent described by c. A non-zero seed is offset by salt so repeated games differ.
func NewAgent(c metrics.AgentConfig, salt uint64) (game.Agent, error) {
	seed := c.Seed
	if seed != 0 {
		seed += salt
	}

	switch c.Kind {
	case metrics.Random:
		return agent.NewRandom(seed), nil
	case metrics.Minimax:
		return agent.NewMinimax(c.Depth), nil
	case metrics.MCTS:
		options := []searcher.Option{
			searcher.WithSeed(seed),
			searcher.WithMetrics(),
		}
		if c.Exploration > 0 {
			options = append(options, searcher.WithExploration(c.Exploration))
		}
		tieBreak, err := searcher.ParseTieBreak(c.TieBreak)
		if err != nil {
			return nil, err
		}
		final, err := searcher.ParseFinalSelection(c.FinalSelection)
		if err != nil {
			return nil, err
		}
		options = append(options, searcher.WithTieBreak(tieBreak), searcher.WithFinalSelection(final))
		mcts, err := searcher.NewMCTS(c.Iterations, options...)
		if err != nil {
			return nil, err
		}
		return mcts, nil
	default:
		return nil, fmt.Errorf("unknown agent kind %q", c.Kind)
	}
}
