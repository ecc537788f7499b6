// Package config loads the settings of the betaone CLI: defaults, then a YAML (or JSON) file, then
// BETAONE_* environment overrides, then validation.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"betaone/experiments/metrics"
	"betaone/game"
	"betaone/game/connect4"
	"betaone/game/tictactoe"
	"betaone/searcher"
	"betaone/utils"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Game names
const (
	TicTacToe = "tictactoe"
	Connect4  = "connect4"
)

var validate = validator.New()

type Config struct {
	Log        LogConfig        `yaml:"log" json:"log"`
	Search     SearchConfig     `yaml:"search" json:"search"`
	Game       GameConfig       `yaml:"game" json:"game"`
	Experiment ExperimentConfig `yaml:"experiment" json:"experiment"`
}

type LogConfig struct {
	Level  string `yaml:"level" json:"level" validate:"oneof=trace debug info warn error disabled"`
	Pretty bool   `yaml:"pretty" json:"pretty"`
}

// SearchConfig holds the MCTS settings used by the play and tree commands.
type SearchConfig struct {
	Iterations     int     `yaml:"iterations" json:"iterations" validate:"gte=1"`
	Exploration    float64 `yaml:"exploration" json:"exploration" validate:"gte=0"`
	Seed           uint64  `yaml:"seed" json:"seed"`
	TieBreak       string  `yaml:"tie_break" json:"tie_break" validate:"oneof=first random"`
	FinalSelection string  `yaml:"final_selection" json:"final_selection" validate:"oneof=average visits"`
	CapacityHint   int     `yaml:"capacity_hint" json:"capacity_hint" validate:"gte=0"`
}

type GameConfig struct {
	Name     string `yaml:"name" json:"name" validate:"oneof=tictactoe connect4"`
	Rows     int    `yaml:"rows" json:"rows" validate:"gte=1,lte=32"`
	Cols     int    `yaml:"cols" json:"cols" validate:"gte=1,lte=32"`
	NumToWin int    `yaml:"num_to_win" json:"num_to_win" validate:"gte=1"`
}

type ExperimentConfig struct {
	Name        string                `yaml:"name" json:"name" validate:"required"`
	Games       int                   `yaml:"games" json:"games" validate:"gte=1"`
	Parallelism int                   `yaml:"parallelism" json:"parallelism" validate:"gte=1"`
	OutputDir   string                `yaml:"output_dir" json:"output_dir" validate:"required"`
	Parquet     bool                  `yaml:"parquet" json:"parquet"`
	Agents      []metrics.AgentConfig `yaml:"agents" json:"agents" validate:"dive"`
	MatchUps    [][2]int              `yaml:"match_ups" json:"match_ups"`
}

func Default() Config {
	return Config{
		Log: LogConfig{Level: "info", Pretty: true},
		Search: SearchConfig{
			Iterations:     1000,
			Exploration:    searcher.DefaultExploration,
			TieBreak:       searcher.FirstMax.String(),
			FinalSelection: searcher.BestAverage.String(),
			CapacityHint:   searcher.DefaultCapacityHint,
		},
		Game: GameConfig{Name: TicTacToe, Rows: 3, Cols: 3, NumToWin: 3},
		Experiment: ExperimentConfig{
			Name:        "baseline",
			Games:       10,
			Parallelism: 4,
			OutputDir:   "experiments",
			Agents: []metrics.AgentConfig{
				{ID: 0, Kind: metrics.Random},
				{ID: 1, Kind: metrics.MCTS, Iterations: 1000},
			},
			MatchUps: [][2]int{{1, 0}},
		},
	}
}

// Load merges the file at path (optional, may be empty or missing) and the environment into the defaults.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		if err := loadFile(path, &config); err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
	}

	loadEnv(&config)

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil // Keep defaults
		}
		return err
	}

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, config); err != nil {
		if jsonErr := json.Unmarshal(data, config); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}
	return nil
}

func loadEnv(config *Config) {
	if v := os.Getenv("BETAONE_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	if v := os.Getenv("BETAONE_LOG_PRETTY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Log.Pretty = b
		}
	}

	// Search
	if v := os.Getenv("BETAONE_ITERATIONS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Search.Iterations = i
		}
	}
	if v := os.Getenv("BETAONE_EXPLORATION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Search.Exploration = f
		}
	}
	if v := os.Getenv("BETAONE_SEED"); v != "" {
		if u, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Search.Seed = u
		}
	}
	if v := os.Getenv("BETAONE_TIE_BREAK"); v != "" {
		config.Search.TieBreak = v
	}
	if v := os.Getenv("BETAONE_FINAL_SELECTION"); v != "" {
		config.Search.FinalSelection = v
	}

	// Experiment
	if v := os.Getenv("BETAONE_GAMES"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Experiment.Games = i
		}
	}
	if v := os.Getenv("BETAONE_PARALLELISM"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Experiment.Parallelism = i
		}
	}
	if v := os.Getenv("BETAONE_OUTPUT_DIR"); v != "" {
		config.Experiment.OutputDir = v
	}
}

// Validate checks struct tags, then the rules tags cannot express.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if err := c.Game.Validate(); err != nil {
		return err
	}

	ids := make([]int, len(c.Experiment.Agents))
	for i, agent := range c.Experiment.Agents {
		if utils.FindIndex(ids[:i], agent.ID) >= 0 {
			return fmt.Errorf("duplicate agent id %d", agent.ID)
		}
		ids[i] = agent.ID
	}
	for _, matchUp := range c.Experiment.MatchUps {
		if matchUp[0] == matchUp[1] {
			return fmt.Errorf("match-up %v pits agent %d against itself", matchUp, matchUp[0])
		}
		for _, id := range matchUp {
			if utils.FindIndex(ids, id) < 0 {
				return fmt.Errorf("match-up %v references unknown agent %d", matchUp, id)
			}
		}
	}
	return nil
}

func (g GameConfig) Validate() error {
	if g.NumToWin > g.Rows && g.NumToWin > g.Cols {
		return fmt.Errorf("cannot line up %d pieces on a %dx%d board", g.NumToWin, g.Rows, g.Cols)
	}
	return nil
}

// New returns the initial state of the configured game.
func (g GameConfig) New() (game.State, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	switch g.Name {
	case TicTacToe:
		return tictactoe.New(g.Rows, g.Cols, g.NumToWin), nil
	case Connect4:
		return connect4.New(g.Rows, g.Cols, g.NumToWin), nil
	default:
		return nil, fmt.Errorf("unknown game %q", g.Name)
	}
}

// Options translates the search settings into searcher options.
func (s SearchConfig) Options() ([]searcher.Option, error) {
	tieBreak, err := searcher.ParseTieBreak(s.TieBreak)
	if err != nil {
		return nil, err
	}
	final, err := searcher.ParseFinalSelection(s.FinalSelection)
	if err != nil {
		return nil, err
	}
	return []searcher.Option{
		searcher.WithExploration(s.Exploration),
		searcher.WithSeed(s.Seed),
		searcher.WithTieBreak(tieBreak),
		searcher.WithFinalSelection(final),
		searcher.WithCapacityHint(s.CapacityHint),
	}, nil
}
