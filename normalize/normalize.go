// Package normalize re-emits the minimum schema fragment a single AST node
// depends on, in a fixed canonical textual form, mirroring
// flatdata-generator's SyntaxTree.normalize. The output is also what gets
// persisted as a resource's or archive's `.schema` sidecar, so every
// rendering choice here is load-bearing: re-parsing and re-normalizing the
// output must reproduce it byte-for-byte (spec's idempotence contract).
package normalize

import (
	"fmt"
	"strings"

	"github.com/flatdata/schemac/ast"
)

// Normalize computes x's dependent-type closure and renders it as a
// canonical schema string: one `namespace <path> { <decl> }` block per
// dependent type, each followed by a blank line, in first-seen DFS order
// over TypeReference edges, with x itself appended last if it is a
// top-level declaration not already reached by that walk.
func Normalize(x ast.Node) (string, error) {
	types := dependentTypes(x)

	var b strings.Builder
	for _, n := range types {
		decl, err := renderDecl(n)
		if err != nil {
			return "", err
		}
		nsPath := ast.NamespacePath(n, ".")
		b.WriteString("namespace ")
		b.WriteString(nsPath)
		b.WriteString(" {\n")
		b.WriteString(decl)
		b.WriteString("}\n\n")
	}
	return b.String(), nil
}

// dependentTypes returns x's transitive TypeReference closure in first-seen
// DFS order, with x appended at the end if it is itself a top-level
// declaration (Constant, Enumeration, Structure or Archive) not already
// present.
func dependentTypes(x ast.Node) []ast.Node {
	seen := make(map[ast.Node]bool)
	var order []ast.Node

	var visit func(n ast.Node)
	visit = func(n ast.Node) {
		for _, c := range n.Children() {
			if tref, ok := c.(ast.TypeReference); ok {
				target, err := n.Root().Find(tref.Target())
				if err != nil || seen[target] {
					continue
				}
				seen[target] = true
				order = append(order, target)
				visit(target)
				continue
			}
			visit(c)
		}
	}
	visit(x)

	if isTopLevelDecl(x) && !seen[x] {
		order = append(order, x)
	}
	return order
}

func isTopLevelDecl(n ast.Node) bool {
	switch n.(type) {
	case *ast.Constant, *ast.Enumeration, *ast.Structure, *ast.Archive:
		return true
	default:
		return false
	}
}

func renderDecl(n ast.Node) (string, error) {
	switch t := n.(type) {
	case *ast.Constant:
		return renderConstant(t), nil
	case *ast.Enumeration:
		return renderEnumeration(t), nil
	case *ast.Structure:
		return renderStructure(t), nil
	case *ast.Archive:
		return renderArchive(t), nil
	default:
		return "", fmt.Errorf("normalize: %s is not a top-level declaration", n.Path())
	}
}

func renderConstant(c *ast.Constant) string {
	return fmt.Sprintf("const %s %s = %d;\n", c.Type.TypeName, c.Name(), c.Value)
}

func renderEnumeration(e *ast.Enumeration) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("enum %s : %s\n{\n", e.Name(), e.Type.TypeName))
	values := e.Values()
	for i, v := range values {
		b.WriteString(fmt.Sprintf("    %s = %d", v.Name(), v.Value))
		if i < len(values)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func renderStructure(s *ast.Structure) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("struct %s\n{\n", s.Name()))
	for _, f := range s.Fields() {
		for _, deco := range fieldDecorations(f) {
			b.WriteString("    ")
			b.WriteString(deco)
			b.WriteString("\n")
		}
		typeName := f.TypeName()
		b.WriteString(fmt.Sprintf("    %s : %s : %d;\n", f.Name(), typeName, f.Width))
	}
	b.WriteString("}\n")
	return b.String()
}

// fieldDecorations renders a Field's decorations in the fixed order
// @range, @const(...), @invalid_value(...).
func fieldDecorations(f *ast.Field) []string {
	var out []string
	if f.RangeName != "" {
		out = append(out, fmt.Sprintf("@range(%s)", f.RangeName))
	}
	for _, ref := range f.ConstRefs() {
		out = append(out, fmt.Sprintf("@const(%s)", ref.Target()))
	}
	if f.Invalid != nil {
		out = append(out, fmt.Sprintf("@invalid_value(%d)", *f.Invalid))
	}
	return out
}

func renderArchive(a *ast.Archive) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("archive %s\n{\n", a.Name()))
	for _, r := range a.Resources() {
		for _, deco := range resourceDecorations(r) {
			b.WriteString("    ")
			b.WriteString(deco)
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("    %s : %s;\n", r.Name(), resourceTypeText(r)))
	}
	for _, bound := range a.BoundResources() {
		names := make([]string, len(bound.ResourceRefs))
		for i, ref := range bound.ResourceRefs {
			names[i] = lastSegment(ref.Target())
		}
		b.WriteString(fmt.Sprintf("    @bound_implicitly(%s: %s);\n", bound.Name(), strings.Join(names, ", ")))
	}
	b.WriteString("}\n")
	return b.String()
}

// resourceDecorations renders a resource's decorations in the fixed order
// @explicit_reference(...)*, @optional.
func resourceDecorations(r ast.ResourceBase) []string {
	var out []string
	for _, er := range r.ExplicitReferences() {
		out = append(out, fmt.Sprintf(
			"@explicit_reference(%s.%s, %s)",
			lastSegment(er.Structure()), lastSegment(er.Field()), er.Destination(),
		))
	}
	if r.IsOptional() {
		out = append(out, "@optional")
	}
	return out
}

func resourceTypeText(r ast.ResourceBase) string {
	switch t := r.(type) {
	case *ast.Instance:
		return t.TypeRef.Target()
	case *ast.Vector:
		return "vector<" + t.TypeRef.Target() + ">"
	case *ast.Multivector:
		names := make([]string, len(t.TypeRefs))
		for i, ref := range t.TypeRefs {
			names[i] = ref.Target()
		}
		return fmt.Sprintf("multivector<%d, %s>", t.Width, strings.Join(names, ", "))
	case *ast.RawData:
		return "raw_data"
	case *ast.SubArchive:
		return "archive " + t.TargetRef.Target()
	default:
		return ""
	}
}

func lastSegment(path string) string {
	idx := strings.LastIndex(path, ast.PathSeparator)
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}
