package ast

import (
	"strconv"
	"strings"
)

// Path addresses a node by the sequence of child indices leading to it from
// the root. Unlike a node pointer, a path stays meaningful for a freshly
// parsed copy of the same text.
type Path []int

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return "/" + strings.Join(parts, "/")
}

// Resolve follows p from root.
func (p Path) Resolve(root Node) (Node, bool) {
	n := root
	for _, idx := range p {
		children := n.Children()
		if idx < 0 || idx >= len(children) {
			return nil, false
		}
		n = children[idx]
	}
	return n, n != nil
}

// ResolveAs follows p from root and asserts the node type.
func ResolveAs[T Node](root Node, p Path) (T, bool) {
	var zero T
	n, ok := p.Resolve(root)
	if !ok {
		return zero, false
	}
	t, ok := n.(T)
	return t, ok
}

// PathOf finds target below root.
func PathOf(root, target Node) (Path, bool) {
	if root == target {
		return Path{}, true
	}
	for i, c := range root.Children() {
		if p, ok := PathOf(c, target); ok {
			return append(Path{i}, p...), true
		}
	}
	return nil, false
}

// Parents maps every node below root to its parent.
func Parents(root Node) map[Node]Node {
	parents := make(map[Node]Node)
	Inspect(root, func(n Node) bool {
		for _, c := range n.Children() {
			parents[c] = n
		}
		return true
	})
	return parents
}
