package syntax

import (
	"iter"

	"hlsltools/internal/source"
)

// Tree is an immutable, parent-linked syntax tree for one file.
type Tree struct {
	File source.FileID
	Root *CompilationUnit
}

// NewTree links parents below root and returns the tree. Nodes must not be
// shared between trees.
func NewTree(file source.FileID, root *CompilationUnit) *Tree {
	if root == nil {
		root = &CompilationUnit{Base: At(source.Span{File: file})}
	}
	root.base().parent = nil
	link(root)
	return &Tree{File: file, Root: root}
}

func link(n Node) {
	for _, c := range n.Children() {
		c.base().parent = n
		link(c)
	}
}

// Inspect walks the tree depth-first in source order. If f returns false the
// children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if isNil(n) || !f(n) {
		return
	}
	for _, c := range n.Children() {
		Inspect(c, f)
	}
}

// Ancestors yields the parents of n, nearest first.
func Ancestors(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if isNil(n) {
			return
		}
		for p := n.Parent(); p != nil; p = p.Parent() {
			if !yield(p) {
				return
			}
		}
	}
}

// FindNode returns the innermost node whose span contains offset, or nil.
func (t *Tree) FindNode(offset uint32) Node {
	if t == nil || t.Root == nil {
		return nil
	}
	var found Node
	var n Node = t.Root
	if !n.Span().Contains(offset) {
		return nil
	}
	for n != nil {
		found = n
		n = childAt(n, offset)
	}
	return found
}

// FindToken returns the innermost leaf-most node at offset. Unlike FindNode
// it skips over nodes whose span is empty (synthesised by error recovery).
func (t *Tree) FindToken(offset uint32) Node {
	n := t.FindNode(offset)
	for n != nil && n.Span().Empty() {
		n = n.Parent()
	}
	return n
}

func childAt(n Node, offset uint32) Node {
	for _, c := range n.Children() {
		sp := c.Span()
		if sp.Empty() && sp.Start == 0 {
			continue
		}
		if sp.Contains(offset) {
			return c
		}
	}
	return nil
}

// EnclosingOf returns the nearest ancestor of n (or n itself) whose kind is
// one of kinds.
func EnclosingOf(n Node, kinds ...Kind) Node {
	for cur := n; !isNil(cur); cur = cur.Parent() {
		for _, k := range kinds {
			if cur.Kind() == k {
				return cur
			}
		}
	}
	return nil
}
