package ast

// Root is the single anonymous node at the top of every syntax tree. Its
// name is always the empty string, so its own Path() is "" and every other
// node's path begins with PathSeparator, mirroring tree/nodes/root.py.
type Root struct {
	coreNode
	Doc string
}

// NewRoot creates an empty root node.
func NewRoot() *Root {
	r := &Root{}
	r.init(r, "")
	return r
}

// Namespace is a named scope containing constants, structures,
// enumerations, archives, and nested namespaces (built from a dotted
// namespace declaration such as `namespace a.b.c { ... }`).
type Namespace struct {
	coreNode
	Doc string
}

// NewNamespace creates a namespace node named name (a single path segment;
// dotted namespace declarations are split into nested Namespace nodes by
// the builder).
func NewNamespace(name, doc string) *Namespace {
	n := &Namespace{Doc: doc}
	n.init(n, name)
	return n
}

// Namespaces returns every Namespace ancestor of n, innermost first,
// mirroring SyntaxTree.namespaces.
func Namespaces(n Node) []*Namespace {
	var out []*Namespace
	for p := n.Parent(); p != nil; p = p.Parent() {
		if ns, ok := p.(*Namespace); ok {
			out = append(out, ns)
		}
	}
	return out
}

// NamespacePath renders the dotted namespace path enclosing n (excluding
// n's own name), joined with sep, mirroring SyntaxTree.namespace_path.
func NamespacePath(n Node, sep string) string {
	nss := Namespaces(n)
	if len(nss) == 0 {
		return ""
	}
	names := make([]string, len(nss))
	for i, ns := range nss {
		names[len(nss)-1-i] = ns.Name()
	}
	out := names[0]
	for _, name := range names[1:] {
		out += sep + name
	}
	return out
}
