package normalize_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flatdata/schemac/compiler"
)

func TestNormalizeArchiveWithDecorationsReachesFixedPoint(t *testing.T) {
	root, err := compiler.Compile(`
namespace n {
struct Node
{
    next : u32 : 32;
}
archive A
{
    @explicit_reference(Node.next, nodes)
    nodes : vector<Node>;
    @optional
    extra : vector<Node>;
}
}
`)
	require.NoError(t, err)

	node, err := root.Find(".n.A")
	require.NoError(t, err)

	first, err := compiler.NormalizedSchema(root, node)
	require.NoError(t, err)
	require.Contains(t, first, "@explicit_reference(Node.next, .n.A.nodes)")
	require.Contains(t, first, "@optional")

	reparsedRoot, err := compiler.Compile(first)
	require.NoError(t, err)
	reparsedNode, err := reparsedRoot.Find(".n.A")
	require.NoError(t, err)

	second, err := compiler.NormalizedSchema(reparsedRoot, reparsedNode)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.True(t, strings.HasSuffix(first, "\n\n"))
}
