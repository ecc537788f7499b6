package metrics

// Agent kinds
const (
	MCTS    = "mcts"
	Random  = "random"
	Minimax = "minimax"
)

// AgentConfig describes one competitor of an experiment.
type AgentConfig struct {
	ID             int     `yaml:"id" validate:"gte=0"`
	Kind           string  `yaml:"kind" validate:"required,oneof=mcts random minimax"`
	Iterations     int     `yaml:"iterations" validate:"required_if=Kind mcts,gte=0"`
	Exploration    float64 `yaml:"exploration" validate:"gte=0"`
	TieBreak       string  `yaml:"tie_break" validate:"omitempty,oneof=first random"`
	FinalSelection string  `yaml:"final_selection" validate:"omitempty,oneof=average visits"`
	Depth          int     `yaml:"depth" validate:"gte=0"`
	Seed           uint64  `yaml:"seed"`
}
