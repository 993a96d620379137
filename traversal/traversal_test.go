package traversal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flatdata/schemac/compiler"
	"github.com/flatdata/schemac/errs"
)

func TestSubArchiveCycleIsRejected(t *testing.T) {
	_, err := compiler.Compile(`
namespace n {
archive A
{
    b : archive B;
}
archive B
{
    a : archive A;
}
}
`)
	require.Error(t, err)
	se, ok := err.(errs.SchemaError)
	require.True(t, ok)
	require.Equal(t, errs.KindCircularReferencing, se.Kind())
}

func TestExplicitReferenceDoesNotTripCycleDetection(t *testing.T) {
	_, err := compiler.Compile(`
namespace n {
struct Node
{
    next : u32 : 32;
}
archive A
{
    @explicit_reference(Node.next, nodes)
    nodes : vector<Node>;
}
}
`)
	require.NoError(t, err)
}
