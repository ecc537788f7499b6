package game

import (
	"fmt"
	"strings"
)

// Position addresses a cell on a rectangular board, row 0 being the top row.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Direction is a (row, col) step.
type Direction struct {
	DRow int
	DCol int
}

// Directions covers each line through a cell exactly once: diagonal, vertical, anti-diagonal, horizontal.
var Directions = []Direction{{-1, -1}, {-1, 0}, {-1, 1}, {0, 1}}

// Cell is the content of one board square: NoPlayer when empty.
type Cell = Player

// Board is a rows x cols grid of cells stored row-major.
type Board struct {
	cells []Cell
	rows  int
	cols  int
}

func NewBoard(rows, cols int) Board {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("invalid board size %dx%d", rows, cols))
	}
	return Board{
		cells: make([]Cell, rows*cols),
		rows:  rows,
		cols:  cols,
	}
}

func (b Board) Rows() int { return b.rows }
func (b Board) Cols() int { return b.cols }

func (b Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Col >= 0 && p.Row < b.rows && p.Col < b.cols
}

func (b Board) At(p Position) Cell {
	return b.cells[p.Row*b.cols+p.Col]
}

// Set writes in place; callers clone first to keep value semantics.
func (b *Board) Set(p Position, c Cell) {
	b.cells[p.Row*b.cols+p.Col] = c
}

func (b Board) Clone() Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return Board{cells: cells, rows: b.rows, cols: b.cols}
}

// Line returns every position on the board lying on the line through pos along dir, ordered from one
// edge to the other.
func (b Board) Line(pos Position, dir Direction) []Position {
	// Walk back to the edge first
	start := pos
	for {
		prev := Position{Row: start.Row - dir.DRow, Col: start.Col - dir.DCol}
		if !b.InBounds(prev) {
			break
		}
		start = prev
	}

	var line []Position
	for p := start; b.InBounds(p); p = (Position{Row: p.Row + dir.DRow, Col: p.Col + dir.DCol}) {
		line = append(line, p)
	}
	return line
}

// HasRun reports whether player owns k consecutive cells on any line through pos.
func (b Board) HasRun(pos Position, player Player, k int) bool {
	for _, dir := range Directions {
		consecutive := 0
		for _, p := range b.Line(pos, dir) {
			if b.At(p) != player {
				consecutive = 0
				continue
			}
			consecutive++
			if consecutive >= k {
				return true
			}
		}
	}
	return false
}

func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			sb.WriteString(CellString(b.At(Position{Row: row, Col: col})))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func CellString(c Cell) string {
	if c == NoPlayer {
		return "-"
	}
	return fmt.Sprintf("%d", c)
}
