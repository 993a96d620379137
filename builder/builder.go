// Package builder turns a parsed grammar.Schema into an unresolved
// ast.Root: every declaration becomes a node, in declaration order, and
// every cross-reference (field enum types, resource struct types, explicit
// references, constant references, bound-resource groups, multivector
// index structures) becomes a reference child carrying its textual target,
// left for resolver.Resolve to rewrite in place.
//
// This mirrors flatdata-generator's builder.py: _build_node_tree →
// _append_builtin_structures → _append_constant_references, stopping short
// of resolve_references/_update_field_type_references/_compute_structure_sizes,
// which live in the resolver and validate packages respectively.
package builder

import (
	"fmt"

	"github.com/flatdata/schemac/ast"
	"github.com/flatdata/schemac/errs"
	"github.com/flatdata/schemac/grammar"
)

// Build constructs an unresolved syntax tree from a parsed schema.
func Build(schema *grammar.Schema) (*ast.Root, error) {
	root := ast.NewRoot()

	for _, nsDecl := range schema.Namespaces {
		ns, err := ensureNamespace(root, nsDecl.Name.Parts)
		if err != nil {
			return nil, err
		}
		for _, entry := range nsDecl.Entries {
			if err := buildEntry(ns, entry); err != nil {
				return nil, err
			}
		}
	}

	if err := appendBuiltinStructures(root); err != nil {
		return nil, err
	}
	if err := appendConstantReferences(root); err != nil {
		return nil, err
	}

	return root, nil
}

// ensureNamespace walks path from root, creating any missing nested
// Namespace nodes, and merging into namespaces created by earlier
// declarations of the same dotted path (mirroring _ensure_namespace /
// _merge_roots: repeated `namespace a.b { }` blocks share one node tree).
func ensureNamespace(root *ast.Root, path []string) (ast.Node, error) {
	var current ast.Node = root
	for _, segment := range path {
		if existing, err := current.FindRelative(segment); err == nil {
			current = existing
			continue
		}
		ns := ast.NewNamespace(segment, "")
		if err := current.Insert(ns); err != nil {
			return nil, err
		}
		current = ns
	}
	return current, nil
}

func buildEntry(ns ast.Node, entry *grammar.Entry) error {
	switch {
	case entry.Const != nil:
		return buildConst(ns, entry.Const)
	case entry.Enum != nil:
		return buildEnum(ns, entry.Enum)
	case entry.Struct != nil:
		return buildStruct(ns, entry.Struct)
	case entry.Archive != nil:
		return buildArchive(ns, entry.Archive)
	default:
		return fmt.Errorf("empty namespace entry at %s", ns.Path())
	}
}

func buildConst(ns ast.Node, decl *grammar.ConstDecl) error {
	value, err := decl.Value.Value()
	if err != nil {
		return err
	}
	c, err := ast.NewConstant(decl.Name, decl.Doc.Text(), decl.TypeName, value)
	if err != nil {
		return err
	}
	return ns.Insert(c)
}

func buildEnum(ns ast.Node, decl *grammar.EnumDecl) error {
	specs := make([]ast.EnumerationValueSpec, len(decl.Values))
	for i, v := range decl.Values {
		spec := ast.EnumerationValueSpec{Name: v.Name, Doc: v.Doc.Text()}
		if v.Value != nil {
			value, err := v.Value.Value()
			if err != nil {
				return err
			}
			spec.Value = &value
		}
		specs[i] = spec
	}
	e, err := ast.NewEnumeration(decl.Name, decl.Doc.Text(), decl.TypeName, specs)
	if err != nil {
		return err
	}
	return ns.Insert(e)
}

func buildStruct(ns ast.Node, decl *grammar.StructDecl) error {
	fields := make([]ast.FieldSpec, len(decl.Fields))
	for i, f := range decl.Fields {
		spec := ast.FieldSpec{
			Name:     f.Name,
			Doc:      f.Doc.Text(),
			TypeName: f.TypeName.String(),
			Width:    f.Width,
		}
		for _, deco := range f.Decorations {
			switch deco.Name {
			case "range":
				if deco.Arg != nil && deco.Arg.Ref != nil {
					spec.RangeName = deco.Arg.Ref.String()
				}
			case "const":
				if deco.Arg != nil && deco.Arg.Ref != nil {
					spec.ConstRefs = append(spec.ConstRefs, deco.Arg.Ref.String())
				}
			case "invalid_value":
				if spec.Invalid != nil {
					return errs.DuplicateInvalidValueReference(fmt.Sprintf("%s.%s", ns.Path(), f.Name))
				}
				if deco.Arg != nil && deco.Arg.Int != nil {
					value, err := deco.Arg.Int.Value()
					if err != nil {
						return err
					}
					spec.Invalid = &value
				}
			}
		}
		fields[i] = spec
	}
	s, err := ast.NewStructure(decl.Name, decl.Doc.Text(), fields)
	if err != nil {
		return err
	}
	return ns.Insert(s)
}

func buildArchive(ns ast.Node, decl *grammar.ArchiveDecl) error {
	archive := ast.NewArchive(decl.Name, decl.Doc.Text())
	for _, member := range decl.Members {
		switch {
		case member.Resource != nil:
			resource, err := buildResource(member.Resource)
			if err != nil {
				return err
			}
			if err := archive.Insert(resource); err != nil {
				return err
			}
		case member.Bound != nil:
			bound, err := ast.NewBoundResource(member.Bound.Name, member.Bound.Resources)
			if err != nil {
				return err
			}
			if err := archive.Insert(bound); err != nil {
				return err
			}
		}
	}
	return ns.Insert(archive)
}

func buildResource(decl *grammar.ResourceDecl) (ast.ResourceBase, error) {
	optional := false
	var explicitRefs []*grammar.ExplicitRefArg
	for _, deco := range decl.Decorations {
		if deco.Optional != nil {
			optional = true
		}
		if deco.ExplicitRef != nil {
			explicitRefs = append(explicitRefs, deco.ExplicitRef.Arg)
		}
	}

	resource, err := buildResourceByType(decl.Name, decl.Doc.Text(), optional, decl.Type)
	if err != nil {
		return nil, err
	}

	for _, arg := range explicitRefs {
		er, err := ast.NewExplicitReference(arg.SourceType, arg.SourceType+"."+arg.SourceField, arg.Destination.String())
		if err != nil {
			return nil, err
		}
		if err := resource.Insert(er); err != nil {
			return nil, err
		}
	}

	return resource, nil
}

func buildResourceByType(name, doc string, optional bool, t *grammar.ResourceType) (ast.ResourceBase, error) {
	switch {
	case t.Vector != nil:
		return ast.NewVector(name, doc, optional, t.Vector.String())
	case t.Multivector != nil:
		types := make([]string, len(t.Multivector.Types))
		for i, ty := range t.Multivector.Types {
			types[i] = ty.String()
		}
		return ast.NewMultivector(name, doc, optional, t.Multivector.Width, types)
	case t.RawData:
		return ast.NewRawData(name, doc, optional), nil
	case t.SubArchive != nil:
		return ast.NewSubArchive(name, doc, optional, t.SubArchive.String())
	case t.Instance != nil:
		return ast.NewInstance(name, doc, optional, t.Instance.String())
	default:
		return nil, errs.UnexpectedResourceType(name)
	}
}

// appendBuiltinStructures ensures every Multivector in the tree has a
// corresponding IndexType<width> structure in a "_builtin.multivector"
// namespace under the multivector's own top-level namespace (e.g.
// ".n._builtin.multivector.IndexType33"), creating one per distinct width and
// reusing it across every multivector of that root namespace that shares that
// width, mirroring builder.py's
// _append_builtin_structures (deduplicated per root namespace).
func appendBuiltinStructures(root *ast.Root) error {
	multivectors := ast.IterateLike[*ast.Multivector](root)
	if len(multivectors) == 0 {
		return nil
	}

	for _, mv := range multivectors {
		path := []string{"_builtin", "multivector"}
		if nss := ast.Namespaces(mv); len(nss) > 0 {
			path = append([]string{nss[len(nss)-1].Name()}, path...)
		}
		builtinNS, err := ensureNamespace(root, path)
		if err != nil {
			return err
		}

		structName := ast.IndexStructureName(mv.Width)
		indexPath := builtinNS.Path() + ast.PathSeparator + structName

		if _, err := root.Find(indexPath); err != nil {
			s, err := ast.NewStructure(structName, "", []ast.FieldSpec{
				{Name: "value", TypeName: "u64", Width: &mv.Width},
			})
			if err != nil {
				return err
			}
			if err := builtinNS.Insert(s); err != nil {
				return err
			}
		}

		if err := mv.AttachIndex(ast.NewBuiltinStructureReference(indexPath)); err != nil {
			return err
		}
	}
	return nil
}

// appendConstantReferences attaches a ConstantReference, to every Constant
// declared anywhere in the tree, onto every Archive, mirroring builder.py's
// _append_constant_references (archives can refer to any constant schema-wide
// when rendering @const field decorations' owning type).
func appendConstantReferences(root *ast.Root) error {
	constants := ast.IterateLike[*ast.Constant](root)
	if len(constants) == 0 {
		return nil
	}
	for _, archive := range ast.IterateLike[*ast.Archive](root) {
		for _, c := range constants {
			if err := archive.Insert(ast.NewConstantReference(c.Path())); err != nil {
				return err
			}
		}
	}
	return nil
}
