package searcher

import "math"

// Hyperparameters for MCTS

// DefaultExploration is the UCB1 exploration constant C = sqrt(2)/2
var DefaultExploration = math.Sqrt2 / 2

// Rewards are credited to the player who moved into a node
const (
	WinReward  = 1.0
	DrawReward = 0.5
	LossReward = 0.0
)

// DefaultCapacityHint pre-sizes the node arena when no hint is given
const DefaultCapacityHint = 1024
