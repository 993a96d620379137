// Package traversal implements breadth-first and dependency-order
// (post-order depth-first) walks over a resolved syntax tree, mirroring
// flatdata-generator's tree/traversal.py.
//
// Both walks use the same notion of "children": a node's ordinary,
// non-reference children, plus — for every ast.TypeReference child — the
// node it resolves to. ast.RuntimeReference children (resource/vector/field
// references used by explicit references and bound-resource groups) are
// excluded entirely, which is what allows an ExplicitReference to legally
// point at a resource that itself contains the referencing structure
// without tripping cycle detection.
package traversal

import (
	"github.com/flatdata/schemac/ast"
	"github.com/flatdata/schemac/errs"
)

// children returns n's dependency-graph children: its non-reference
// children, and the resolved target of each ast.TypeReference child.
// References must already be resolved (ast.Reference.IsQualified()==true).
func children(n ast.Node) []ast.Node {
	var out []ast.Node
	for _, c := range n.Children() {
		if _, isRef := c.(ast.Reference); isRef {
			if tref, ok := c.(ast.TypeReference); ok {
				if target, err := n.Root().Find(tref.Target()); err == nil {
					out = append(out, target)
				}
			}
			continue
		}
		out = append(out, c)
	}
	return out
}

// BFSEntry is one node visited by BFS, together with its distance from the
// traversal's start node.
type BFSEntry struct {
	Node     ast.Node
	Distance int
}

// BFS performs a breadth-first walk of the dependency graph rooted at
// start, visiting each reachable node exactly once in distance order,
// mirroring tree/traversal.py's BfsTraversal.
func BFS(start ast.Node) []BFSEntry {
	visited := map[ast.Node]bool{start: true}
	queue := []BFSEntry{{start, 0}}
	var out []BFSEntry
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)
		for _, c := range children(cur.Node) {
			if !visited[c] {
				visited[c] = true
				queue = append(queue, BFSEntry{c, cur.Distance + 1})
			}
		}
	}
	return out
}

// PreOrder performs a depth-first walk of the dependency graph rooted at
// start, visiting a node before its children (declaration order among
// siblings), mirroring tree/traversal.py's DfsTraversal.iterate(). It
// returns errs.CircularReferencing if the graph is not a DAG.
func PreOrder(start ast.Node) ([]ast.Node, error) {
	discovered := map[ast.Node]bool{}
	processed := map[ast.Node]bool{}
	var order []ast.Node

	var visit func(n ast.Node) error
	visit = func(n ast.Node) error {
		discovered[n] = true
		order = append(order, n)
		for _, c := range children(n) {
			if processed[c] {
				continue
			}
			if discovered[c] {
				return cycleError(n, c)
			}
			if err := visit(c); err != nil {
				return err
			}
		}
		processed[n] = true
		return nil
	}

	if err := visit(start); err != nil {
		return nil, err
	}
	return order, nil
}

// DependencyOrder performs the same depth-first walk as PreOrder but
// returns nodes in post-order: every node's dependencies precede it,
// mirroring tree/traversal.py's DfsTraversal.dependency_order(). validate
// lays out structures in this order, so types are laid out before anything
// that embeds them.
func DependencyOrder(start ast.Node) ([]ast.Node, error) {
	discovered := map[ast.Node]bool{}
	processed := map[ast.Node]bool{}
	var order []ast.Node

	var visit func(n ast.Node) error
	visit = func(n ast.Node) error {
		discovered[n] = true
		for _, c := range children(n) {
			if processed[c] {
				continue
			}
			if discovered[c] {
				return cycleError(n, c)
			}
			if err := visit(c); err != nil {
				return err
			}
		}
		processed[n] = true
		order = append(order, n)
		return nil
	}

	if err := visit(start); err != nil {
		return nil, err
	}
	return order, nil
}

func cycleError(from, to ast.Node) error {
	return errs.CircularReferencing(from.Path(), to.Path())
}
