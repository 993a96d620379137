package grammar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Schema {
	t.Helper()
	parser, err := NewParser()
	require.NoError(t, err)
	schema, err := parser.ParseString("", src)
	require.NoError(t, err)
	return schema
}

func TestParsesNamespaceWithStruct(t *testing.T) {
	schema := mustParse(t, `
namespace n {
struct S
{
    x : u64 : 64;
}
}
`)
	require.Len(t, schema.Namespaces, 1)
	ns := schema.Namespaces[0]
	require.Equal(t, "n", ns.Name.String())
	require.Len(t, ns.Entries, 1)
	require.NotNil(t, ns.Entries[0].Struct)
	require.Equal(t, "S", ns.Entries[0].Struct.Name)
	require.Len(t, ns.Entries[0].Struct.Fields, 1)
	require.Equal(t, "x", ns.Entries[0].Struct.Fields[0].Name)
}

func TestParsesEnumWithExplicitValues(t *testing.T) {
	schema := mustParse(t, `
namespace n {
enum Color : u8 {
    RED,
    GREEN = 4,
    BLUE
}
}
`)
	enum := schema.Namespaces[0].Entries[0].Enum
	require.NotNil(t, enum)
	require.Equal(t, "Color", enum.Name)
	require.Len(t, enum.Values, 3)
	require.Nil(t, enum.Values[0].Value)
	v, err := enum.Values[1].Value.Value()
	require.NoError(t, err)
	require.EqualValues(t, 4, v)
}

func TestParsesArchiveWithVectorAndOptional(t *testing.T) {
	schema := mustParse(t, `
namespace n {
struct S { x : u64 : 64; }
archive A
{
    data : vector< S >;
    @optional
    extra : vector< S >;
}
}
`)
	archive := schema.Namespaces[0].Entries[1].Archive
	require.NotNil(t, archive)
	require.Len(t, archive.Members, 2)
	require.Equal(t, "data", archive.Members[0].Resource.Name)
	require.NotNil(t, archive.Members[0].Resource.Type.Vector)
	require.Equal(t, "extra", archive.Members[1].Resource.Name)
	require.Len(t, archive.Members[1].Resource.Decorations, 1)
	require.NotNil(t, archive.Members[1].Resource.Decorations[0].Optional)
}

func TestParsesConstAndFieldDecoration(t *testing.T) {
	schema := mustParse(t, `
namespace n {
const u32 MAX = 100;
struct S
{
    @range( y_range )
    first_y : u32 : 14;
}
}
`)
	entries := schema.Namespaces[0].Entries
	require.NotNil(t, entries[0].Const)
	require.Equal(t, "MAX", entries[0].Const.Name)

	field := entries[1].Struct.Fields[0]
	require.Len(t, field.Decorations, 1)
	require.Equal(t, "range", field.Decorations[0].Name)
	require.Equal(t, "y_range", field.Decorations[0].Arg.Ref.String())
}
