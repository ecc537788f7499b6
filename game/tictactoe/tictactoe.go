package tictactoe

import (
	"fmt"

	"betaone/game"
)

// Move places a piece for Player on Position.
type Move struct {
	Position game.Position
	Player   game.Player
}

func (m Move) String() string {
	return fmt.Sprintf("%s, Position: %s", m.Player, m.Position)
}

// TicTacToe is an m,n,k-game: first to line up NumToWin pieces on a rows x cols board wins.
type TicTacToe struct {
	board    game.Board
	numToWin int
	empty    int
	last     *Move
	result   game.Result
}

func New(rows, cols, numToWin int) *TicTacToe {
	if numToWin <= 0 || (numToWin > rows && numToWin > cols) {
		panic(fmt.Sprintf("cannot line up %d pieces on a %dx%d board", numToWin, rows, cols))
	}
	return &TicTacToe{
		board:    game.NewBoard(rows, cols),
		numToWin: numToWin,
		empty:    rows * cols,
		result:   game.Ongoing(),
	}
}

func (t *TicTacToe) Board() game.Board { return t.board }

func (t *TicTacToe) Player() game.Player {
	if t.last == nil {
		return game.Player1
	}
	return t.last.Player.Other()
}

func (t *TicTacToe) LegalMoves() []game.Move {
	// No moves once the game is decided
	if t.result.IsTerminal() {
		return nil
	}
	player := t.Player()
	moves := make([]game.Move, 0, t.empty)
	for row := 0; row < t.board.Rows(); row++ {
		for col := 0; col < t.board.Cols(); col++ {
			pos := game.Position{Row: row, Col: col}
			if t.board.At(pos) == game.NoPlayer {
				moves = append(moves, Move{Position: pos, Player: player})
			}
		}
	}
	return moves
}

func (t *TicTacToe) Play(m game.Move) (game.State, error) {
	move, ok := m.(Move)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a tic-tac-toe move", game.ErrIllegalMove, m)
	}
	if t.result.IsTerminal() {
		return nil, fmt.Errorf("%w: %s", game.ErrIllegalMove, game.ErrGameOver)
	}
	if move.Player != t.Player() {
		return nil, fmt.Errorf("%w: %s is not the player to move", game.ErrIllegalMove, move.Player)
	}
	if !t.board.InBounds(move.Position) {
		return nil, fmt.Errorf("%w: %s is off the board", game.ErrIllegalMove, move.Position)
	}
	if t.board.At(move.Position) != game.NoPlayer {
		return nil, fmt.Errorf("%w: %s is occupied", game.ErrIllegalMove, move.Position)
	}

	next := t.clone()
	next.board.Set(move.Position, move.Player)
	next.empty--
	next.last = &move

	if next.board.HasRun(move.Position, move.Player, next.numToWin) {
		next.result = game.WinFor(move.Player)
	} else if next.empty == 0 {
		next.result = game.DrawResult()
	}
	return next, nil
}

func (t *TicTacToe) LastMove() game.Move {
	if t.last == nil {
		return nil
	}
	return *t.last
}

func (t *TicTacToe) Result() game.Result { return t.result }

func (t *TicTacToe) Clone() game.State { return t.clone() }

func (t *TicTacToe) clone() *TicTacToe {
	c := *t
	c.board = t.board.Clone()
	if t.last != nil {
		last := *t.last
		c.last = &last
	}
	return &c
}

func (t *TicTacToe) String() string {
	s := "Board:\n" + t.board.String()
	if t.result.IsTerminal() {
		return s + "Result: " + t.result.String() + "\n"
	}
	return s + "Next Player: " + t.Player().String() + "\n"
}
