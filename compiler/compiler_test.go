package compiler_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flatdata/schemac/ast"
	"github.com/flatdata/schemac/compiler"
	"github.com/flatdata/schemac/errs"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("../testdata/" + name)
	require.NoError(t, err)
	return string(data)
}

// Seed scenario 1: a single struct's field offsets and sizes are computed
// in declaration order.
func TestSingleStructLayout(t *testing.T) {
	root, err := compiler.Compile(readFixture(t, "single_struct.flatdata"))
	require.NoError(t, err)

	node, err := root.Find(".n.S")
	require.NoError(t, err)
	s := node.(*ast.Structure)
	require.Equal(t, 18, s.SizeInBits)
	require.Equal(t, 3, s.SizeInBytes())

	fields := s.Fields()
	require.Len(t, fields, 2)
	require.Equal(t, 0, fields[0].Offset)
	require.Equal(t, 3, fields[0].Width)
	require.Equal(t, 3, fields[1].Offset)
	require.Equal(t, 15, fields[1].Width)
}

// Seed scenario 2: a multivector synthesizes a deduplicated builtin index
// structure under _builtin.multivector, and its resource carries both a
// builtin-struct reference and a structure reference.
func TestMultivectorSynthesizesIndex(t *testing.T) {
	root, err := compiler.Compile(readFixture(t, "multivector.flatdata"))
	require.NoError(t, err)

	indexNode, err := root.Find(".n._builtin.multivector.IndexType33")
	require.NoError(t, err)
	index := indexNode.(*ast.Structure)
	require.Len(t, index.Fields(), 1)
	require.Equal(t, "value", index.Fields()[0].Name())
	require.Equal(t, 33, index.Fields()[0].Width)

	resourceNode, err := root.Find(".n.A.r")
	require.NoError(t, err)
	mv := resourceNode.(*ast.Multivector)
	require.NotNil(t, mv.IndexRef)
	require.Equal(t, ".n._builtin.multivector.IndexType33", mv.IndexRef.Target())
	require.Len(t, mv.TypeRefs, 1)
	require.Equal(t, ".n.T", mv.TypeRefs[0].Target())
}

// Seed scenario 3: a field's explicit width must match its enum's declared
// width.
func TestEnumWidthMismatchRejected(t *testing.T) {
	_, err := compiler.Compile(readFixture(t, "enum_width_mismatch.flatdata"))
	require.Error(t, err)
	se, ok := err.(errs.SchemaError)
	require.True(t, ok)
	require.Equal(t, errs.KindInvalidEnumWidth, se.Kind())
}

// Seed scenario 4: a @const reference whose constant is of a different
// basic type than the field is rejected.
func TestConstReferenceTypeMismatchRejected(t *testing.T) {
	_, err := compiler.Compile(readFixture(t, "const_ref_mismatch.flatdata"))
	require.Error(t, err)
	se, ok := err.(errs.SchemaError)
	require.True(t, ok)
	require.Equal(t, errs.KindInvalidConstReference, se.Kind())
}

// Seed scenario 5: a range-bearing structure may only be referenced from a
// Vector resource.
func TestRangeOutsideVectorRejected(t *testing.T) {
	_, err := compiler.Compile(readFixture(t, "range_outside_vector.flatdata"))
	require.Error(t, err)
	se, ok := err.(errs.SchemaError)
	require.True(t, ok)
	require.Equal(t, errs.KindInvalidRangeReference, se.Kind())
}

// Seed scenario 6: normalizing a resolved node, parsing the normalized
// output, and normalizing again yields byte-identical text.
func TestNormalizationReachesFixedPoint(t *testing.T) {
	root, err := compiler.Compile(readFixture(t, "single_struct.flatdata"))
	require.NoError(t, err)

	node, err := root.Find(".n.S")
	require.NoError(t, err)

	first, err := compiler.NormalizedSchema(root, node)
	require.NoError(t, err)

	reparsedRoot, err := compiler.Compile(first)
	require.NoError(t, err)

	reparsedNode, err := reparsedRoot.Find(".n.S")
	require.NoError(t, err)

	second, err := compiler.NormalizedSchema(reparsedRoot, reparsedNode)
	require.NoError(t, err)

	require.Equal(t, first, second)
}
