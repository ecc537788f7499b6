package searcher

import (
	"fmt"
	"math"
)

// TieBreak decides between children with equal UCB1 scores during selection.
type TieBreak int

const (
	// FirstMax keeps the earliest child (move generation order) among equal scores
	FirstMax TieBreak = iota
	// RandomTie picks uniformly among the children sharing the best score
	RandomTie
)

func (t TieBreak) String() string {
	switch t {
	case FirstMax:
		return "first"
	case RandomTie:
		return "random"
	default:
		return fmt.Sprintf("TieBreak(%d)", int(t))
	}
}

// FinalSelection decides which root child is played once the search budget is spent.
type FinalSelection int

const (
	// BestAverage plays the child with the highest mean reward; ties go to the most visited child
	BestAverage FinalSelection = iota
	// MostVisits plays the most visited child
	MostVisits
)

func (f FinalSelection) String() string {
	switch f {
	case BestAverage:
		return "average"
	case MostVisits:
		return "visits"
	default:
		return fmt.Sprintf("FinalSelection(%d)", int(f))
	}
}

// UCB1 = q/n + c*sqrt(ln(N)/n), +Inf for a child that was never visited.
// N is the parent's visit count; a visited child under an unvisited parent is a broken tree.
func UCB1(score float64, visits, parentVisits int, c float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}
	if parentVisits == 0 {
		panic("cannot compute UCB1: parent has 0 visits")
	}

	n := float64(visits)
	return score/n + c*math.Sqrt(math.Log(float64(parentVisits))/n)
}

// average is the exploitation term alone; unvisited children never win the final pick.
func average(score float64, visits int) float64 {
	if visits == 0 {
		return math.Inf(-1)
	}
	return score / float64(visits)
}

func ParseTieBreak(s string) (TieBreak, error) {
	switch s {
	case "", FirstMax.String():
		return FirstMax, nil
	case RandomTie.String():
		return RandomTie, nil
	}
	return FirstMax, fmt.Errorf("unknown tie break %q", s)
}

func ParseFinalSelection(s string) (FinalSelection, error) {
	switch s {
	case "", BestAverage.String():
		return BestAverage, nil
	case MostVisits.String():
		return MostVisits, nil
	}
	return BestAverage, fmt.Errorf("unknown final selection %q", s)
}
