package validate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flatdata/schemac/compiler"
	"github.com/flatdata/schemac/errs"
)

// Open Question (c): an explicit reference's source struct must actually be
// used by the resource that declares it.
func TestExplicitReferenceMustNameAStructTheResourceUses(t *testing.T) {
	_, err := compiler.Compile(`
namespace n {
struct Used
{
    next : u32 : 32;
}
struct Unused
{
    next : u32 : 32;
}
archive A
{
    @explicit_reference(Unused.next, items)
    items : vector<Used>;
}
}
`)
	require.Error(t, err)
	se, ok := err.(errs.SchemaError)
	require.True(t, ok)
	require.Equal(t, errs.KindInvalidStructInExplicitReference, se.Kind())
}

func TestDuplicateInvalidValueDecorationRejected(t *testing.T) {
	_, err := compiler.Compile(`
namespace n {
struct S
{
    @invalid_value(-1)
    @invalid_value(-1)
    x : i32 : 32;
}
}
`)
	require.Error(t, err)
	se, ok := err.(errs.SchemaError)
	require.True(t, ok)
	require.Equal(t, errs.KindDuplicateInvalidValueReference, se.Kind())
}

func TestSparseEnumRejected(t *testing.T) {
	_, err := compiler.Compile(`
namespace n {
enum E : u32 {
    A = 0
}
}
`)
	require.Error(t, err)
	se, ok := err.(errs.SchemaError)
	require.True(t, ok)
	require.Equal(t, errs.KindSparseEnum, se.Kind())
}
