package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// moveRow is the flat Parquet layout of a MoveRecord.
type moveRow struct {
	RunID        string `parquet:"run_id,dict"`
	Game         int32  `parquet:"game"`
	Step         int32  `parquet:"step"`
	Player       int32  `parquet:"player"`
	DurationNs   int64  `parquet:"duration_ns"`
	Iterations   int32  `parquet:"iterations"`
	Episodes     int32  `parquet:"episodes"`
	FullPlayouts int32  `parquet:"full_playouts"`
	TreeSize     int32  `parquet:"tree_size"`
}

type Writer struct {
	runID   string
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp>_<run id> to hold the files of one experiment run.
func NewWriter(root, name string) (*Writer, error) {
	runID := uuid.NewString()
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp+"_"+runID[:8])
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		runID:   runID,
		baseDir: baseDir,
	}, nil
}

func (w *Writer) RunID() string { return w.runID }

func (w *Writer) Dir() string { return w.baseDir }

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "kind", "iterations", "exploration", "tie_break", "final_selection", "depth", "seed"}
	rows := make([][]string, len(configs))
	for i, config := range configs {
		rows[i] = []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.Iterations),
			strconv.FormatFloat(config.Exploration, 'f', -1, 64),
			config.TieBreak,
			config.FinalSelection,
			strconv.Itoa(config.Depth),
			strconv.FormatUint(config.Seed, 10),
		}
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_agent", "winner", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.StartingAgent),
			strconv.Itoa(record.Winner),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		}
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "duration", "iterations", "episodes", "full_playouts", "tree_size"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			record.Duration.String(),
			strconv.Itoa(record.Iterations),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.TreeSize),
		}
	}
	return w.writeCSV("move_records.csv", header, rows)
}

// WriteMoveRecordsParquet stores move records as zstd-compressed Parquet, tagged with the run ID.
func (w *Writer) WriteMoveRecordsParquet(records []MoveRecord) error {
	rows := make([]moveRow, len(records))
	for i, record := range records {
		rows[i] = moveRow{
			RunID:        w.runID,
			Game:         int32(record.Game),
			Step:         int32(record.Step),
			Player:       int32(record.Player),
			DurationNs:   record.Duration.Nanoseconds(),
			Iterations:   int32(record.Iterations),
			Episodes:     int32(record.Episodes),
			FullPlayouts: int32(record.FullPlayouts),
			TreeSize:     int32(record.TreeSize),
		}
	}

	path := filepath.Join(w.baseDir, "move_records.parquet")
	if err := parquet.WriteFile(path, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("run_id", w.runID),
	); err != nil {
		return fmt.Errorf("failed to write move records parquet: %w", err)
	}
	return nil
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) (err error) {
	// Create a file
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer closeFile(f, name, &err)

	writer := csv.NewWriter(f)

	// Write header
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}

	// Write each row
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

// closeFile reports the close error of a written file unless an earlier error is already set
func closeFile(c io.Closer, name string, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("failed to close %s: %w", name, cerr)
	}
}
