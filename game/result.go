package game

// Kind classifies a state as running or finished.
type Kind int

const (
	InProgress Kind = iota
	Draw
	Win
)

// Result is a terminal classification, not a score. Winner is only set for Win.
type Result struct {
	Kind   Kind
	Winner Player
}

func Ongoing() Result {
	return Result{Kind: InProgress}
}

func DrawResult() Result {
	return Result{Kind: Draw}
}

func WinFor(p Player) Result {
	return Result{Kind: Win, Winner: p}
}

func (r Result) IsTerminal() bool {
	return r.Kind != InProgress
}

func (r Result) String() string {
	switch r.Kind {
	case Draw:
		return "Draw"
	case Win:
		return r.Winner.String() + " wins"
	default:
		return "In progress"
	}
}
