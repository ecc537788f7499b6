package connect4

import (
	"fmt"

	"betaone/game"
	"betaone/utils"
)

// Move drops a piece for Player; Position is the lowest empty cell of the chosen column.
type Move struct {
	Position game.Position
	Player   game.Player
}

func (m Move) String() string {
	return fmt.Sprintf("%s, Position: %s", m.Player, m.Position)
}

func (m Move) Column() int { return m.Position.Col }

// Connect4 is a gravity game: pieces stack from the bottom row up.
type Connect4 struct {
	board    game.Board
	numToWin int
	// open holds the playable cell of every column that is not full, ordered by column
	open   []game.Position
	last   *Move
	result game.Result
}

func New(rows, cols, numToWin int) *Connect4 {
	if numToWin <= 0 || (numToWin > rows && numToWin > cols) {
		panic(fmt.Sprintf("cannot connect %d pieces on a %dx%d board", numToWin, rows, cols))
	}
	open := make([]game.Position, cols)
	for col := range open {
		open[col] = game.Position{Row: rows - 1, Col: col}
	}
	return &Connect4{
		board:    game.NewBoard(rows, cols),
		numToWin: numToWin,
		open:     open,
		result:   game.Ongoing(),
	}
}

func (c *Connect4) Board() game.Board { return c.board }

func (c *Connect4) Player() game.Player {
	if c.last == nil {
		return game.Player1
	}
	return c.last.Player.Other()
}

func (c *Connect4) LegalMoves() []game.Move {
	if c.result.IsTerminal() {
		return nil
	}
	player := c.Player()
	moves := make([]game.Move, len(c.open))
	for i, pos := range c.open {
		moves[i] = Move{Position: pos, Player: player}
	}
	return moves
}

// MoveInColumn returns the legal move dropping into col, if the column is open.
func (c *Connect4) MoveInColumn(col int) (Move, bool) {
	i := c.openIndex(col)
	if i < 0 || c.result.IsTerminal() {
		return Move{}, false
	}
	return Move{Position: c.open[i], Player: c.Player()}, true
}

func (c *Connect4) openIndex(col int) int {
	return utils.FindFunc(c.open, func(pos game.Position) bool { return pos.Col == col })
}

func (c *Connect4) Play(m game.Move) (game.State, error) {
	move, ok := m.(Move)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a connect-4 move", game.ErrIllegalMove, m)
	}
	if c.result.IsTerminal() {
		return nil, fmt.Errorf("%w: %s", game.ErrIllegalMove, game.ErrGameOver)
	}
	if move.Player != c.Player() {
		return nil, fmt.Errorf("%w: %s is not the player to move", game.ErrIllegalMove, move.Player)
	}
	// Only one position is open per column, so the column identifies the slot
	i := c.openIndex(move.Position.Col)
	if i < 0 || c.open[i] != move.Position {
		return nil, fmt.Errorf("%w: %s is not an open position", game.ErrIllegalMove, move.Position)
	}

	next := c.clone()
	next.board.Set(move.Position, move.Player)
	next.last = &move
	if move.Position.Row == 0 {
		// Column is full
		next.open = append(next.open[:i], next.open[i+1:]...)
	} else {
		next.open[i].Row--
	}

	if next.board.HasRun(move.Position, move.Player, next.numToWin) {
		next.result = game.WinFor(move.Player)
	} else if len(next.open) == 0 {
		next.result = game.DrawResult()
	}
	return next, nil
}

func (c *Connect4) LastMove() game.Move {
	if c.last == nil {
		return nil
	}
	return *c.last
}

func (c *Connect4) Result() game.Result { return c.result }

func (c *Connect4) Clone() game.State { return c.clone() }

func (c *Connect4) clone() *Connect4 {
	n := *c
	n.board = c.board.Clone()
	n.open = make([]game.Position, len(c.open))
	copy(n.open, c.open)
	if c.last != nil {
		last := *c.last
		n.last = &last
	}
	return &n
}

func (c *Connect4) String() string {
	s := "Board:\n" + c.board.String()
	if c.result.IsTerminal() {
		return s + "Result: " + c.result.String() + "\n"
	}
	return s + "Next Player: " + c.Player().String() + "\n"
}
