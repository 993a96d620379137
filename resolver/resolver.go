// Package resolver rewrites every reference node in an unresolved syntax
// tree to point at the node it names, following flatdata-generator's
// resolver.py: try a fully qualified lookup when the reference is already
// qualified, otherwise walk outward through enclosing non-namespace scopes
// and finally the enclosing namespace, and fail with a suggestion-bearing
// errs.MissingSymbol if nothing matches.
package resolver

import (
	"sort"

	"github.com/flatdata/schemac/ast"
	"github.com/flatdata/schemac/errs"
)

// Resolve walks every reference in the tree rooted at root and rewrites it,
// in place, to the fully qualified path of the node it names. It returns
// errs.MissingSymbol if a reference cannot be resolved and
// errs.IncorrectReferenceType if it resolves to a node of the wrong kind.
//
// Resolve is idempotent: once a reference is rewritten to a fully qualified
// path, IsQualified is true and re-resolving it is a no-op fully qualified
// lookup that finds the same node.
func Resolve(root ast.Node) error {
	for _, ref := range ast.IterateLike[ast.Reference](root) {
		target, err := resolveOne(root, ref)
		if err != nil {
			return err
		}
		if err := validateTargetType(ref, target); err != nil {
			return err
		}
		if err := ref.UpdateReference(target.Path()); err != nil {
			return err
		}
	}
	return nil
}

func resolveOne(root ast.Node, ref ast.Reference) (ast.Node, error) {
	if ref.IsQualified() {
		node, err := root.Find(ref.Target())
		if err != nil {
			return nil, missingSymbol(root, ref)
		}
		return node, nil
	}
	if node, ok := resolveInParentScope(ref); ok {
		return node, nil
	}
	if node, ok := resolveInParentNamespace(ref); ok {
		return node, nil
	}
	return nil, missingSymbol(root, ref)
}

// resolveInParentScope tries every enclosing ancestor of ref that is not
// itself a Namespace, nearest first, mirroring
// resolver.py's _resolve_in_parent_scope.
func resolveInParentScope(ref ast.Reference) (ast.Node, bool) {
	for _, ancestor := range ref.Parents() {
		if _, isNamespace := ancestor.(*ast.Namespace); isNamespace {
			continue
		}
		if node, err := ancestor.FindRelative(ref.Target()); err == nil {
			return node, true
		}
	}
	return nil, false
}

// resolveInParentNamespace tries the nearest enclosing Namespace, mirroring
// resolver.py's _resolve_in_parent_namespace.
func resolveInParentNamespace(ref ast.Reference) (ast.Node, bool) {
	ns, ok := ast.FirstParentLike[*ast.Namespace](ref)
	if !ok {
		return nil, false
	}
	if node, err := ns.FindRelative(ref.Target()); err == nil {
		return node, true
	}
	return nil, false
}

func missingSymbol(root ast.Node, ref ast.Reference) errs.SchemaError {
	symbols := root.Symbols()
	options := make([]string, 0, len(symbols))
	for path, n := range symbols {
		if _, isRef := n.(ast.Reference); isRef {
			continue
		}
		options = append(options, path)
	}
	sort.Strings(options)
	suggestion := errs.Suggest(ref.Target(), options)
	return errs.MissingSymbol(ref.Target(), contextPath(ref), suggestion)
}

func contextPath(ref ast.Reference) string {
	if p := ref.Parent(); p != nil {
		return p.Path()
	}
	return ref.Path()
}

// validateTargetType checks that a reference resolved to a node of the
// kind it is declared to name, mirroring resolver.py's
// _validate_target_type dispatch table.
func validateTargetType(ref ast.Reference, target ast.Node) error {
	expected := ""
	ok := false
	switch ref.(type) {
	case *ast.StructureReference:
		_, ok = target.(*ast.Structure)
		expected = "Structure"
	case *ast.BuiltinStructureReference:
		_, ok = target.(*ast.Structure)
		expected = "Structure"
	case *ast.ArchiveReference:
		_, ok = target.(*ast.Archive)
		expected = "Archive"
	case *ast.ConstantReference:
		_, ok = target.(*ast.Constant)
		expected = "Constant"
	case *ast.EnumerationReference:
		_, ok = target.(*ast.Enumeration)
		expected = "Enumeration"
	case *ast.ResourceReference:
		_, ok = target.(ast.ResourceBase)
		expected = "Resource"
	case *ast.VectorReference:
		_, ok = target.(*ast.Vector)
		expected = "Vector"
	case *ast.FieldReference:
		_, ok = target.(*ast.Field)
		expected = "Field"
	default:
		return nil
	}
	if !ok {
		return errs.IncorrectReferenceType(ref.Target(), actualKind(target), expected)
	}
	return nil
}

func actualKind(n ast.Node) string {
	switch n.(type) {
	case *ast.Structure:
		return "Structure"
	case *ast.Archive:
		return "Archive"
	case *ast.Constant:
		return "Constant"
	case *ast.Enumeration:
		return "Enumeration"
	case *ast.Field:
		return "Field"
	case *ast.Vector:
		return "Vector"
	case *ast.Instance:
		return "Instance"
	case *ast.Multivector:
		return "Multivector"
	case *ast.RawData:
		return "RawData"
	case *ast.SubArchive:
		return "SubArchive"
	default:
		return "Node"
	}
}
