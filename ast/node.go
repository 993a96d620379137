// Package ast implements the flatdata schema syntax tree: a single tree,
// rooted at an anonymous root, of namespaces, structures, fields,
// enumerations, constants, archives, resources and the reference nodes
// that tie them together.
//
// Every node kind embeds coreNode, which supplies the shared tree
// machinery (naming, parenting, insertion-ordered children, path
// computation) described in spec.md §3. Kind-specific data lives on the
// wrapping struct, mirroring the "tagged variants over inheritance" design
// note: Go has no class inheritance, so each variant is a plain struct
// embedding the common header.
package ast

import (
	"fmt"
	"strings"

	"github.com/flatdata/schemac/errs"
)

// PathSeparator joins node names into an absolute path, exactly as the
// original generator's Node.PATH_SEPARATOR.
const PathSeparator = "."

// Node is implemented by every node in the syntax tree.
type Node interface {
	fmt.Stringer

	Name() string
	SetName(name string) error
	Parent() Node
	Children() []Node
	Path() string
	PathWith(sep string) string
	Depth() int
	Root() Node
	Parents() []Node

	Insert(children ...Node) error
	Find(path string) (Node, error)
	Get(path string, fallback Node) Node
	FindRelative(path string) (Node, error)
	GetRelative(path string, fallback Node) Node
	FindLast(path string) Node
	Detach() Node
	Symbols() map[string]Node

	// nodeCore exposes the shared header so package-internal helpers
	// (Insert, ChildrenLike, ...) can operate uniformly over any Node
	// without a type switch over every concrete kind.
	nodeCore() *coreNode
}

// coreNode is the common header embedded by every node kind.
type coreNode struct {
	self     Node
	name     string
	parent   Node
	children []Node
	index    map[string]Node
}

func (b *coreNode) init(self Node, name string) {
	b.self = self
	b.name = name
	b.index = make(map[string]Node)
}

func (b *coreNode) nodeCore() *coreNode { return b }

// Name returns the node's local name (never contains PathSeparator).
func (b *coreNode) Name() string { return b.name }

// SetName renames the node, reindexing its parent's child map while
// preserving insertion order.
func (b *coreNode) SetName(value string) error {
	if b.name == value {
		return nil
	}
	if b.parent != nil {
		pc := b.parent.nodeCore()
		if _, exists := pc.index[value]; exists {
			return fmt.Errorf("cannot rename node: name %q is already in use at %s", value, b.parent.Path())
		}
	}
	b.name = value
	if b.parent != nil {
		b.parent.nodeCore().reindex()
	}
	return nil
}

func (b *coreNode) reindex() {
	newIndex := make(map[string]Node, len(b.index))
	for _, c := range b.children {
		newIndex[c.Name()] = c
	}
	b.index = newIndex
}

// Parent returns the node's parent, or nil for the root.
func (b *coreNode) Parent() Node { return b.parent }

// Children returns the node's children in insertion order.
func (b *coreNode) Children() []Node {
	out := make([]Node, len(b.children))
	copy(out, b.children)
	return out
}

// Path returns the node's absolute, dot-separated path. The root's path is
// the empty string; every other node's path begins with PathSeparator.
func (b *coreNode) Path() string {
	if b.parent == nil {
		return b.name
	}
	return b.parent.Path() + PathSeparator + b.name
}

// PathWith returns the node's path with PathSeparator replaced by sep.
func (b *coreNode) PathWith(sep string) string {
	return strings.ReplaceAll(b.Path(), PathSeparator, sep)
}

// Depth returns the node's ancestor count; the root has depth 0.
func (b *coreNode) Depth() int {
	if b.parent == nil {
		return 0
	}
	return 1 + b.parent.nodeCore().Depth()
}

// Root returns the root of the tree.
func (b *coreNode) Root() Node {
	var result Node = b.self
	for result.Parent() != nil {
		result = result.Parent()
	}
	return result
}

// Parents returns every ancestor, nearest first, up to (and including) the root.
func (b *coreNode) Parents() []Node {
	var out []Node
	for p := b.parent; p != nil; p = p.Parent() {
		out = append(out, p)
	}
	return out
}

// Insert adds children to this node.
//
// It fails with errs.SymbolRedefinition if a sibling with the same name
// already exists, and with a plain error if a child already has a parent
// (an attempted reparent).
func (b *coreNode) Insert(children ...Node) error {
	for _, c := range children {
		cc := c.nodeCore()
		if existing, exists := b.index[cc.name]; exists {
			return errs.SymbolRedefinition(joinPath(b.self.Path(), cc.name), existing.Path())
		}
		if cc.parent != nil {
			return fmt.Errorf("symbol %s is already used at %s; reparenting occurred", cc.name, c.Path())
		}
		b.index[cc.name] = c
		b.children = append(b.children, c)
		cc.parent = b.self
	}
	return nil
}

func joinPath(path, other string) string {
	return path + PathSeparator + other
}

func splitPath(path string) []string {
	return strings.Split(path, PathSeparator)
}

// Find finds a descendant by absolute path (starting with this node's own name).
func (b *coreNode) Find(path string) (Node, error) {
	keys := splitPath(path)
	if len(keys) == 0 || keys[0] != b.name {
		return nil, fmt.Errorf("path %q not found in tree. Options: %v", path, b.self.Symbols())
	}
	var target Node = b.self
	for _, key := range keys[1:] {
		tc := target.nodeCore()
		next, ok := tc.index[key]
		if !ok {
			return nil, fmt.Errorf("path %q not found in tree. Options: %v", path, b.self.Symbols())
		}
		target = next
	}
	return target, nil
}

// Get is Find with a fallback instead of an error.
func (b *coreNode) Get(path string, fallback Node) Node {
	n, err := b.Find(path)
	if err != nil {
		return fallback
	}
	return n
}

// FindRelative finds a descendant via a path relative to this node.
func (b *coreNode) FindRelative(path string) (Node, error) {
	return b.Find(joinPath(b.name, path))
}

// GetRelative is FindRelative with a fallback instead of an error.
func (b *coreNode) GetRelative(path string, fallback Node) Node {
	return b.Get(joinPath(b.name, path), fallback)
}

// FindLast finds the last node actually present along path, walking from
// this node. Returns nil if even the first segment does not match.
func (b *coreNode) FindLast(path string) Node {
	keys := splitPath(path)
	if len(keys) == 0 || keys[0] != b.name {
		return nil
	}
	var target Node = b.self
	for _, key := range keys[1:] {
		tc := target.nodeCore()
		next, ok := tc.index[key]
		if !ok {
			return target
		}
		target = next
	}
	return target
}

// Detach removes this node from its parent, returning itself.
func (b *coreNode) Detach() Node {
	if b.parent == nil {
		return b.self
	}
	pc := b.parent.nodeCore()
	delete(pc.index, b.name)
	for i, c := range pc.children {
		if c == b.self {
			pc.children = append(pc.children[:i], pc.children[i+1:]...)
			break
		}
	}
	b.parent = nil
	return b.self
}

// Symbols returns the absolute path of every node in the subtree rooted here.
func (b *coreNode) Symbols() map[string]Node {
	result := make(map[string]Node)
	for _, n := range Iterate(b.self) {
		if p := n.Path(); p != "" {
			result[p] = n
		}
	}
	return result
}

// String renders "<Kind>{<path>}", matching the original __repr__.
func (b *coreNode) String() string {
	return fmt.Sprintf("%T{%s}", b.self, b.Path())
}

// --- free functions mirroring Node.iterate / children_like / first_parent_like ---

// Iterate returns every node in the subtree rooted at n, in pre-order.
func Iterate(n Node) []Node {
	out := []Node{n}
	for _, c := range n.Children() {
		out = append(out, Iterate(c)...)
	}
	return out
}

// ChildrenLike returns n's direct children of type T, in insertion order.
func ChildrenLike[T Node](n Node) []T {
	var out []T
	for _, c := range n.Children() {
		if t, ok := c.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// IterateLike returns every node of type T in the subtree rooted at n, in pre-order.
func IterateLike[T Node](n Node) []T {
	var out []T
	for _, c := range Iterate(n) {
		if t, ok := c.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// FirstParentLike returns the nearest ancestor of type T, if any.
func FirstParentLike[T Node](n Node) (T, bool) {
	var zero T
	for p := n.Parent(); p != nil; p = p.Parent() {
		if t, ok := p.(T); ok {
			return t, true
		}
	}
	return zero, false
}
