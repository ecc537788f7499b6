package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"betaone/game"
)

// Human lists the legal moves on out and reads the index of the chosen one from in.
type Human struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewHuman(in io.Reader, out io.Writer) *Human {
	return &Human{in: bufio.NewScanner(in), out: out}
}

func (h *Human) ChooseMove(ctx context.Context, state game.State) (game.Move, error) {
	moves, err := legalMoves(state)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(h.out, "%d Moves:\n", len(moves))
	for i, m := range moves {
		fmt.Fprintf(h.out, "    Move %d: %s\n", i, m)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fmt.Fprintf(h.out, "Enter an integer in the range [0, %d): ", len(moves))
		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return nil, fmt.Errorf("read move: %w", err)
			}
			return nil, fmt.Errorf("read move: %w", io.EOF)
		}
		if i, ok := parseIndex(h.in.Text(), len(moves)); ok {
			return moves[i], nil
		}
	}
}

func parseIndex(text string, max int) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || i < 0 || i >= max {
		return 0, false
	}
	return i, true
}
