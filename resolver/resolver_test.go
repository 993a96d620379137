package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flatdata/schemac/compiler"
	"github.com/flatdata/schemac/errs"
)

func TestMissingSymbolSuggestsClosestName(t *testing.T) {
	_, err := compiler.Compile(`
namespace n {
struct Point
{
    x : u64 : 64;
}
archive A
{
    p : Pont;
}
}
`)
	require.Error(t, err)
	se, ok := err.(errs.SchemaError)
	require.True(t, ok)
	require.Equal(t, errs.KindMissingSymbol, se.Kind())
	require.Contains(t, err.Error(), "Point")
}

func TestQualifiedReferenceResolvesAcrossNamespaces(t *testing.T) {
	root, err := compiler.Compile(`
namespace a {
struct S
{
    x : u64 : 64;
}
}
namespace b {
archive A
{
    s : .a.S;
}
}
`)
	require.NoError(t, err)
	_, err = root.Find(".b.A.s")
	require.NoError(t, err)
}
