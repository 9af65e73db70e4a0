package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ntl/internal/domain"
)

func suite(fullName string) *domain.Node {
	return &domain.Node{
		Kind:     domain.KindFixture,
		Name:     "n",
		FullName: fullName,
		Counts:   domain.Counts{Total: 4, Passed: 1, Failed: 1, Inconclusive: 1, Skipped: 1, Error: 1},
		Result:   domain.ResultFailed,
	}
}

func TestGroupSuites_ExclusiveNamespaces(t *testing.T) {
	roots := GroupSuites([]*domain.Node{suite("a.b"), suite("c.d")})

	require.Len(t, roots, 2)
	assert.Equal(t, "a", roots[0].Name)
	assert.Equal(t, "c", roots[1].Name)
}

func TestGroupSuites_GroupsByName(t *testing.T) {
	roots := GroupSuites([]*domain.Node{suite("a.b.c"), suite("a.b.e"), suite("c.d")})

	// c is reached one pass before a, so it is promoted first
	require.Len(t, roots, 2)

	c := roots[0]
	assert.Equal(t, domain.KindNamespace, c.Kind)
	assert.Equal(t, "c", c.Name)
	assert.Equal(t, "c", c.FullName)
	assert.Equal(t, domain.Counts{Total: 4, Passed: 1, Failed: 1, Inconclusive: 1, Skipped: 1, Error: 1}, c.Counts)
	assert.Equal(t, domain.ResultFailed, c.Result)
	require.Len(t, c.Children, 1)

	a := roots[1]
	assert.Equal(t, "a", a.Name)
	assert.Equal(t, "a", a.FullName)
	assert.Equal(t, domain.Counts{Total: 8, Passed: 2, Failed: 2, Inconclusive: 2, Skipped: 2, Error: 2}, a.Counts)
	require.Len(t, a.Children, 1)

	b := a.Children[0]
	assert.Equal(t, "b", b.Name)
	assert.Equal(t, "a.b", b.FullName)
	assert.Equal(t, a.Counts, b.Counts)
	require.Len(t, b.Children, 2)
	assert.Equal(t, "a.b.c", b.Children[0].FullName)
	assert.Equal(t, "a.b.e", b.Children[1].FullName)
}

func TestGroupSuites_ChildrenSortedByFullName(t *testing.T) {
	roots := GroupSuites([]*domain.Node{suite("ns.zulu"), suite("ns.alpha"), suite("ns.mike")})

	require.Len(t, roots, 1)
	var names []string
	for _, child := range roots[0].Children {
		names = append(names, child.FullName)
	}
	assert.Equal(t, []string{"ns.alpha", "ns.mike", "ns.zulu"}, names)
}

func TestGroupSuites_TopLevelNodesAreRoots(t *testing.T) {
	single := suite("Standalone")
	roots := GroupSuites([]*domain.Node{single})

	require.Len(t, roots, 1)
	assert.Same(t, single, roots[0])
}

func TestGroupSuites_DuplicateNamesAreNotMerged(t *testing.T) {
	t.Run("same full name stays as siblings", func(t *testing.T) {
		first := suite("ns.Type")
		second := suite("ns.Type")
		roots := GroupSuites([]*domain.Node{first, second})

		require.Len(t, roots, 1)
		require.Len(t, roots[0].Children, 2)
		assert.Same(t, first, roots[0].Children[0])
		assert.Same(t, second, roots[0].Children[1])
		assert.Equal(t, 8, roots[0].Total)
	})

	t.Run("type that is also a namespace yields two roots", func(t *testing.T) {
		roots := GroupSuites([]*domain.Node{suite("A.B"), suite("A.B.C")})

		require.Len(t, roots, 2)
		assert.Equal(t, "A", roots[0].FullName)
		assert.Equal(t, "A", roots[1].FullName)
		assert.Equal(t, "A.B", roots[0].Children[0].FullName)
		assert.Equal(t, domain.KindFixture, roots[0].Children[0].Kind)
		assert.Equal(t, "A.B", roots[1].Children[0].FullName)
		assert.Equal(t, domain.KindNamespace, roots[1].Children[0].Kind)
	})
}

func TestGroupSuites_Empty(t *testing.T) {
	assert.Empty(t, GroupSuites(nil))
}

func TestGroupSuites_DoesNotReorderInput(t *testing.T) {
	input := []*domain.Node{suite("ns.b"), suite("ns.a")}
	GroupSuites(input)
	assert.Equal(t, "ns.b", input[0].FullName)
	assert.Equal(t, "ns.a", input[1].FullName)
}
