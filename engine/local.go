package engine

import (
	"context"
	"fmt"
	"time"

	"betaone/experiments/metrics"
	"betaone/game"

	"github.com/rs/zerolog/log"
)

// Engine referees a game between two agents. Agents[0] plays game.Player1.
type Engine struct {
	State    game.State
	Agents   [2]game.Agent
	maxMoves int
	observe  func(step int, state game.State)
}

func New(state game.State, agents [2]game.Agent, options ...Option) *Engine {
	if agents[0] == nil || agents[1] == nil {
		panic("need an agent for each player")
	}
	e := &Engine{
		State:    state,
		Agents:   agents,
		maxMoves: MaxMoves,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run plays until the game ends or the move limit is reached. The outcome is filled in as far as the
// game got, also when an error is returned.
func (e *Engine) Run(ctx context.Context) (outcome Outcome, err error) {
	outcome.Game.StartTime = time.Now()
	defer func() {
		outcome.Final = e.State
		outcome.Result = e.State.Result()
		outcome.Game.EndTime = time.Now()
		outcome.Game.Duration = outcome.Game.EndTime.Sub(outcome.Game.StartTime)
		outcome.Game.TotalMoves = len(outcome.Moves)
	}()

	log.Info().Msgf("%s is starting", e.State.Player())
	e.notify(0)

	for step := 1; !e.State.Result().IsTerminal(); step++ {
		if step > e.maxMoves {
			log.Warn().Msgf("stopped after %d moves without a result", e.maxMoves)
			return outcome, fmt.Errorf("%w: %d moves", ErrMaxMoves, e.maxMoves)
		}

		player := e.State.Player()
		agent := e.Agents[player-game.Player1]

		start := time.Now()
		move, err := agent.ChooseMove(ctx, e.State)
		if err != nil {
			return outcome, fmt.Errorf("%s failed to choose a move: %w", player, err)
		}
		elapsed := time.Since(start)

		if !game.IsLegal(e.State, move) {
			return outcome, fmt.Errorf("%s chose %s: %w", player, move, game.ErrIllegalMove)
		}
		next, err := e.State.Play(move)
		if err != nil {
			return outcome, fmt.Errorf("%s played %s: %w", player, move, err)
		}

		search := metrics.SearchMetric{Duration: elapsed}
		if reporter, ok := agent.(Reporter); ok {
			search = reporter.Metrics()
			// Agents without a collector report zeros
			if search.Duration == 0 {
				search.Duration = elapsed
			}
		}
		outcome.Moves = append(outcome.Moves, metrics.MoveMetric{
			Step:         step,
			Player:       int(player),
			SearchMetric: search,
		})

		log.Debug().Msgf("turn %d: %s played %s in %s", step, player, move, elapsed)
		e.State = next
		e.notify(step)
	}

	log.Info().Msgf("game over after %d moves: %s", len(outcome.Moves), e.State.Result())
	return outcome, nil
}

func (e *Engine) notify(step int) {
	if e.observe != nil {
		e.observe(step, e.State)
	}
}
