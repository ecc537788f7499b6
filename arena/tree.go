// Package arena stores a tree in one growable slice. Nodes refer to their parent and children by
// NodeRef handles, so there are no owning pointers and no reference cycles.
//
// Misuse is a programming error: an invalid handle or a second expansion of the same node panics
// with *InvalidRefError or *DoubleExpansionError.
package arena

import (
	"fmt"
	"slices"
)

// NodeRef is essentially *Node
type NodeRef int

const NilRef NodeRef = -1

func (r NodeRef) IsValid() bool { return r >= 0 }

type InvalidRefError struct {
	Ref NodeRef
	Len int
}

func (e *InvalidRefError) Error() string {
	return fmt.Sprintf("invalid NodeRef %d (tree has %d nodes)", e.Ref, e.Len)
}

type DoubleExpansionError struct {
	Ref NodeRef
}

func (e *DoubleExpansionError) Error() string {
	return fmt.Sprintf("node %d is already expanded", e.Ref)
}

// Node carries a payload and the search statistics of one tree position.
type Node[T any] struct {
	Payload  T
	Visits   int
	Score    float64
	Expanded bool

	parent   NodeRef
	children []NodeRef
}

func (n *Node[T]) Parent() NodeRef { return n.parent }

// Children is read-only. Appending to it never reaches the tree.
func (n *Node[T]) Children() []NodeRef { return slices.Clip(n.children) }

// Tree owns every node. Handles stay valid for the lifetime of the tree: there is no removal.
type Tree[T any] struct {
	nodes []Node[T]
	root  NodeRef
}

// New creates a tree holding a single root node, pre-sizing storage for capacityHint nodes.
func New[T any](root T, capacityHint int) *Tree[T] {
	if capacityHint < 1 {
		capacityHint = 1
	}
	t := &Tree[T]{nodes: make([]Node[T], 0, capacityHint)}
	t.nodes = append(t.nodes, Node[T]{Payload: root, parent: NilRef})
	t.root = 0
	return t
}

func (t *Tree[T]) Root() NodeRef { return t.root }

func (t *Tree[T]) Len() int { return len(t.nodes) }

func (t *Tree[T]) Cap() int { return cap(t.nodes) }

// Insert adds payload as the last child of parent and returns its handle.
func (t *Tree[T]) Insert(payload T, parent NodeRef) NodeRef {
	t.check(parent)
	ref := NodeRef(len(t.nodes))
	t.nodes = append(t.nodes, Node[T]{Payload: payload, parent: parent})
	t.nodes[parent].children = append(t.nodes[parent].children, ref)
	return ref
}

// Get returns the node behind ref. The pointer is only valid until the next Insert.
func (t *Tree[T]) Get(ref NodeRef) *Node[T] {
	t.check(ref)
	return &t.nodes[ref]
}

// Children returns the child handles of ref in insertion order. The slice is read-only.
func (t *Tree[T]) Children(ref NodeRef) []NodeRef {
	return t.Get(ref).Children()
}

// Parent returns the parent handle, false for the root.
func (t *Tree[T]) Parent(ref NodeRef) (NodeRef, bool) {
	p := t.Get(ref).parent
	return p, p.IsValid()
}

// MarkExpanded flags ref as expanded. Expanding twice would corrupt the statistics, so it panics.
func (t *Tree[T]) MarkExpanded(ref NodeRef) {
	n := t.Get(ref)
	if n.Expanded {
		panic(&DoubleExpansionError{Ref: ref})
	}
	n.Expanded = true
}

// Ancestors calls fn on ref and every ancestor up to and including the root.
func (t *Tree[T]) Ancestors(ref NodeRef, fn func(NodeRef, *Node[T])) {
	for ref.IsValid() {
		n := t.Get(ref)
		fn(ref, n)
		ref = n.parent
	}
}

// Walk visits every node in insertion order; parents always precede their children.
func (t *Tree[T]) Walk(fn func(NodeRef, *Node[T])) {
	for i := range t.nodes {
		fn(NodeRef(i), &t.nodes[i])
	}
}

func (t *Tree[T]) check(ref NodeRef) {
	if ref < 0 || int(ref) >= len(t.nodes) {
		panic(&InvalidRefError{Ref: ref, Len: len(t.nodes)})
	}
}
