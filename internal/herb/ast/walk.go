package ast

import "slices"

// Handler visits a node. A handler that wants to descend calls
// w.VisitChildren(n) itself; state kept across the call (stacks of enclosing
// elements and the like) must be restored before the handler returns.
type Handler func(w *Walker, n Node)

// Walker dispatches on node kind. Kinds without a handler fall back to
// visiting their children.
type Walker struct {
	handlers [kindCount]Handler
	path     Path
}

// NewWalker returns a walker with no handlers installed.
func NewWalker() *Walker {
	return &Walker{}
}

// On installs h for nodes of kind k, replacing any previous handler.
func (w *Walker) On(k Kind, h Handler) *Walker {
	w.handlers[k] = h
	return w
}

// Walk dispatches n to its handler.
func (w *Walker) Walk(n Node) {
	if n == nil {
		return
	}
	if h := w.handlers[n.Kind()]; h != nil {
		h(w, n)
		return
	}
	w.VisitChildren(n)
}

// VisitChildren walks every child of n.
func (w *Walker) VisitChildren(n Node) {
	for i, c := range n.Children() {
		w.path = append(w.path, i)
		w.Walk(c)
		w.path = w.path[:len(w.path)-1]
	}
}

// Path returns the child-index path of the node currently being visited,
// relative to the node Walk was first called with.
func (w *Walker) Path() Path {
	return slices.Clone(w.path)
}

// Inspect traverses the tree rooted at n in depth-first order, calling f for
// each node. Children are skipped when f returns false.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range n.Children() {
		Inspect(c, f)
	}
}
