package experiments

import (
	"betaone/config"
	"betaone/experiments/metrics"
)

// Ladder replaces the agents of exp with a random baseline (ID 0) and one MCTS agent per budget
// (IDs 1..n), each matched up against the baseline.
func Ladder(exp config.ExperimentConfig, budgets []int, seed uint64) config.ExperimentConfig {
	baseline := metrics.AgentConfig{ID: 0, Kind: metrics.Random, Seed: seed}
	exp.Agents = []metrics.AgentConfig{baseline}
	exp.MatchUps = nil
	for i, iterations := range budgets {
		c := metrics.AgentConfig{ID: i + 1, Kind: metrics.MCTS, Iterations: iterations, Seed: seed}
		exp.Agents = append(exp.Agents, c)
		exp.MatchUps = append(exp.MatchUps, [2]int{c.ID, baseline.ID})
	}
	return exp
}
