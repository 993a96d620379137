package ast_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flatdata/schemac/ast"
	"github.com/flatdata/schemac/errs"
)

func TestRootPathIsEmptyAndChildPathsLeadWithSeparator(t *testing.T) {
	root := ast.NewRoot()
	ns := ast.NewNamespace("n", "")
	require.NoError(t, root.Insert(ns))

	s, err := ast.NewStructure("S", "", []ast.FieldSpec{{Name: "x", TypeName: "u64"}})
	require.NoError(t, err)
	require.NoError(t, ns.Insert(s))

	require.Equal(t, "", root.Path())
	require.Equal(t, ".n", ns.Path())
	require.Equal(t, ".n.S", s.Path())
}

func TestInsertDuplicateNameIsSymbolRedefinition(t *testing.T) {
	root := ast.NewRoot()
	ns := ast.NewNamespace("n", "")
	require.NoError(t, root.Insert(ns))

	a, err := ast.NewStructure("S", "", nil)
	require.NoError(t, err)
	b, err := ast.NewStructure("S", "", nil)
	require.NoError(t, err)

	require.NoError(t, ns.Insert(a))
	err = ns.Insert(b)
	require.Error(t, err)
	se, ok := err.(errs.SchemaError)
	require.True(t, ok)
	require.Equal(t, errs.KindSymbolRedefinition, se.Kind())
}

func TestFindRelativeAndChildrenLike(t *testing.T) {
	root := ast.NewRoot()
	ns := ast.NewNamespace("n", "")
	require.NoError(t, root.Insert(ns))

	s, err := ast.NewStructure("S", "", []ast.FieldSpec{
		{Name: "a", TypeName: "u8"},
		{Name: "b", TypeName: "u16"},
	})
	require.NoError(t, err)
	require.NoError(t, ns.Insert(s))

	found, err := ns.FindRelative("S")
	require.NoError(t, err)
	require.Same(t, ast.Node(s), found)

	fields := ast.ChildrenLike[*ast.Field](s)
	require.Len(t, fields, 2)
	require.Equal(t, "a", fields[0].Name())
	require.Equal(t, "b", fields[1].Name())
}
