package searcher

import (
	"betaone/arena"
	"betaone/game"
)

// Tree is a search tree of game states. Node statistics are from the perspective of the player who
// moved into the node.
type Tree struct {
	*arena.Tree[game.State]
}

// BestMove returns the move of the root child preferred by final, nil if no child was visited.
func (t *Tree) BestMove(final FinalSelection) game.Move {
	best := t.BestChild(final)
	if !best.IsValid() {
		return nil
	}
	return t.Get(best).Payload.LastMove()
}

// BestChild ranks the visited root children. Ties fall through to the other statistic, then to move
// generation order.
func (t *Tree) BestChild(final FinalSelection) arena.NodeRef {
	best := arena.NilRef
	for _, child := range t.Children(t.Root()) {
		node := t.Get(child)
		if node.Visits == 0 {
			continue
		}
		if !best.IsValid() || t.better(node, t.Get(best), final) {
			best = child
		}
	}
	return best
}

func (t *Tree) better(a, b *arena.Node[game.State], final FinalSelection) bool {
	avgA, avgB := average(a.Score, a.Visits), average(b.Score, b.Visits)
	if final == MostVisits {
		if a.Visits != b.Visits {
			return a.Visits > b.Visits
		}
		return avgA > avgB
	}
	if avgA != avgB {
		return avgA > avgB
	}
	return a.Visits > b.Visits
}

// Policy maps each root move to its share of the root children's visits.
func (t *Tree) Policy() map[game.Move]float64 {
	policy := make(map[game.Move]float64)
	total := 0
	for _, child := range t.Children(t.Root()) {
		total += t.Get(child).Visits
	}
	if total == 0 {
		return policy
	}
	for _, child := range t.Children(t.Root()) {
		node := t.Get(child)
		policy[node.Payload.LastMove()] = float64(node.Visits) / float64(total)
	}
	return policy
}
