package game

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrIllegalMove       = errors.New("illegal move")
	ErrGameOver          = errors.New("game is over - no moves allowed")
	ErrInconsistentState = errors.New("inconsistent state: legal moves disagree with result")
)

// Player identifies one of the two participants. NoPlayer marks empty cells and non-wins.
type Player uint8

const (
	NoPlayer Player = iota
	Player1
	Player2
)

func (p Player) Other() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return NoPlayer
	}
}

func (p Player) String() string {
	if p == NoPlayer {
		return "Nobody"
	}
	return fmt.Sprintf("Player %d", p)
}

// Move is a single action. Implementations must be comparable so moves can be matched with ==.
type Move interface {
	fmt.Stringer
}

// State should be immutable - operations on State always return a new copy
type State interface {
	// Player returns the player to move
	Player() Player
	// LegalMoves is empty exactly when Result().IsTerminal()
	LegalMoves() []Move
	// Play returns the successor state; an error wrapping ErrIllegalMove for moves outside LegalMoves
	Play(Move) (State, error)
	// LastMove returns the move that produced this state, nil for an initial state
	LastMove() Move
	Result() Result
	Clone() State
}

// Agent picks a legal move for the player to move in a state.
type Agent interface {
	ChooseMove(ctx context.Context, state State) (Move, error)
}

// CheckConsistency reports ErrInconsistentState when terminality and move generation disagree.
func CheckConsistency(s State) error {
	noMoves := len(s.LegalMoves()) == 0
	if noMoves != s.Result().IsTerminal() {
		return fmt.Errorf("%w: %d legal moves with result %s", ErrInconsistentState, len(s.LegalMoves()), s.Result())
	}
	return nil
}

// IsLegal checks whether move is among the legal moves of s.
func IsLegal(s State, move Move) bool {
	for _, m := range s.LegalMoves() {
		if m == move {
			return true
		}
	}
	return false
}

// Play runs a game from state to completion, asking p1 or p2 for a move depending on whose turn it is.
func Play(ctx context.Context, state State, p1, p2 Agent) (State, error) {
	for !state.Result().IsTerminal() {
		agent := p1
		if state.Player() == Player2 {
			agent = p2
		}

		move, err := agent.ChooseMove(ctx, state)
		if err != nil {
			return state, fmt.Errorf("%s failed to choose a move: %w", state.Player(), err)
		}
		next, err := state.Play(move)
		if err != nil {
			return state, fmt.Errorf("%s played %s: %w", state.Player(), move, err)
		}
		state = next
	}
	return state, nil
}
