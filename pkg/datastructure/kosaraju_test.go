package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStronglyConnectedComponents(t *testing.T) {
	b := NewGraphBuilder()
	for i := int64(0); i < 7; i++ {
		b.AddVertex(i, 50.77+float64(i)*0.001, 6.08)
	}
	// cycle 0 -> 1 -> 2 -> 0, one way street 2 -> 3, two way 3 <-> 4, 5 alone, 6 -> 6 loop
	b.AddEdge(0, 1, 1)
	b.AddEdge(1, 2, 1)
	b.AddEdge(2, 0, 1)
	b.AddEdge(2, 3, 1)
	b.AddEdge(3, 4, 1)
	b.AddEdge(4, 3, 1)
	b.AddEdge(6, 6, 1)
	g, err := b.Build()
	require.NoError(t, err)

	scc := g.StronglyConnectedComponents()
	assert.Equal(t, 4, scc.Count())
	assert.Equal(t, 3, scc.Largest())

	assert.Equal(t, scc.Of(0), scc.Of(1))
	assert.Equal(t, scc.Of(0), scc.Of(2))
	assert.Equal(t, scc.Of(3), scc.Of(4))
	assert.NotEqual(t, scc.Of(2), scc.Of(3))
	assert.NotEqual(t, scc.Of(5), scc.Of(6))

	assert.Equal(t, 3, scc.Size(1))
	assert.Equal(t, 2, scc.Size(4))
	assert.Equal(t, 1, scc.Size(5))
	assert.Equal(t, 1, scc.Size(6))

	assert.Same(t, scc, g.StronglyConnectedComponents())
}

func TestStronglyConnectedComponentsLongChain(t *testing.T) {
	const n = 200000
	b := NewGraphBuilderWithSize(n, 2*n)
	for i := int64(0); i < n; i++ {
		b.AddVertex(i, 0, float64(i)*1e-5)
	}
	for i := Index(0); i+1 < n; i++ {
		b.AddEdge(i, i+1, 1)
		b.AddEdge(i+1, i, 1)
	}
	g, err := b.Build()
	require.NoError(t, err)

	scc := g.StronglyConnectedComponents()
	assert.Equal(t, 1, scc.Count())
	assert.Equal(t, n, scc.Size(0))
}
