package searcher

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"betaone/arena"
	"betaone/game"
)

// WriteDOT renders the tree in Graphviz format. Nodes are labelled with the move that led to them
// and their statistics; children with fewer than minVisits visits are omitted with their subtrees.
func WriteDOT(w io.Writer, tree *Tree, minVisits int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph mcts {")
	fmt.Fprintln(bw, "  node [shape=box, fontname=monospace];")

	shown := make(map[arena.NodeRef]bool, tree.Len())
	tree.Walk(func(ref arena.NodeRef, node *arena.Node[game.State]) {
		parent, ok := tree.Parent(ref)
		if ok && (!shown[parent] || node.Visits < minVisits) {
			return
		}
		shown[ref] = true

		fmt.Fprintf(bw, "  n%d [label=%q];\n", ref, label(node))
		if ok {
			fmt.Fprintf(bw, "  n%d -> n%d;\n", parent, ref)
		}
	})

	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func label(node *arena.Node[game.State]) string {
	move := "root"
	if m := node.Payload.LastMove(); m != nil {
		move = m.String()
	}
	var sb strings.Builder
	sb.WriteString(move)
	fmt.Fprintf(&sb, "\nvisits: %d\nscore: %.1f", node.Visits, node.Score)
	if node.Visits > 0 {
		fmt.Fprintf(&sb, "\navg: %.3f", node.Score/float64(node.Visits))
	}
	if result := node.Payload.Result(); result.IsTerminal() {
		sb.WriteString("\n" + result.String())
	}
	return sb.String()
}
