package searcher

import (
	"fmt"

	"betaone/game"
	"betaone/game/tictactoe"
)

type mockMove struct {
	id int
}

func (m mockMove) String() string { return fmt.Sprintf("mock %d", m.id) }

// mockState reports an ongoing game while offering moves, or none
type mockState struct {
	moves  []game.Move
	result game.Result
}

func (m mockState) Player() game.Player { return game.Player1 }

func (m mockState) LegalMoves() []game.Move { return m.moves }

func (m mockState) Play(move game.Move) (game.State, error) {
	return mockState{result: game.WinFor(game.Player1)}, nil
}

func (m mockState) LastMove() game.Move { return nil }

func (m mockState) Result() game.Result { return m.result }

func (m mockState) Clone() game.State { return m }

// ticTacToe plays moves alternately from an empty 3x3 board
func ticTacToe(positions ...game.Position) game.State {
	var state game.State = tictactoe.New(3, 3, 3)
	for _, pos := range positions {
		next, err := state.Play(tictactoe.Move{Position: pos, Player: state.Player()})
		if err != nil {
			panic(err)
		}
		state = next
	}
	return state
}

func pos(row, col int) game.Position {
	return game.Position{Row: row, Col: col}
}
