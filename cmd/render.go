package cmd

import (
	"fmt"
	"strings"

	"betaone/experiments"
	"betaone/game"

	"github.com/charmbracelet/lipgloss"
)

var (
	player1Style = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	player2Style = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
)

// boarded is implemented by the grid games
type boarded interface {
	Board() game.Board
}

func renderCell(c game.Cell) string {
	switch c {
	case game.Player1:
		return player1Style.Render("X")
	case game.Player2:
		return player2Style.Render("O")
	default:
		return emptyStyle.Render(".")
	}
}

func renderBoard(b game.Board) string {
	var sb strings.Builder
	// Column header
	for col := 0; col < b.Cols(); col++ {
		sb.WriteString(emptyStyle.Render(fmt.Sprintf("%d", col%10)))
		if col < b.Cols()-1 {
			sb.WriteByte(' ')
		}
	}
	for row := 0; row < b.Rows(); row++ {
		sb.WriteByte('\n')
		for col := 0; col < b.Cols(); col++ {
			sb.WriteString(renderCell(b.At(game.Position{Row: row, Col: col})))
			if col < b.Cols()-1 {
				sb.WriteByte(' ')
			}
		}
	}
	return boardStyle.Render(sb.String())
}

func renderState(step int, state game.State) string {
	var sb strings.Builder
	if move := state.LastMove(); move != nil {
		fmt.Fprintf(&sb, "Move %d: %s\n", step, move)
	}
	if b, ok := state.(boarded); ok {
		sb.WriteString(renderBoard(b.Board()))
		sb.WriteByte('\n')
	} else {
		sb.WriteString(fmt.Sprint(state))
	}
	if result := state.Result(); result.IsTerminal() {
		sb.WriteString(titleStyle.Render(result.String()))
	} else {
		fmt.Fprintf(&sb, "%s to move", state.Player())
	}
	sb.WriteByte('\n')
	return sb.String()
}

func renderTallies(summary experiments.Summary) string {
	rows := []string{titleStyle.Render(fmt.Sprintf("%-8s %-8s %6s %6s %6s", "agent1", "agent2", "wins1", "wins2", "draws"))}
	for _, t := range summary.Tallies {
		rows = append(rows, fmt.Sprintf("%-8d %-8d %6d %6d %6d", t.Agent1, t.Agent2, t.Wins1, t.Wins2, t.Draws))
	}
	rows = append(rows, emptyStyle.Render(fmt.Sprintf("run %s stored in %s", summary.RunID, summary.Dir)))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
