package datastructure

import (
	"math"
	"testing"

	"github.com/lintang-b-s/routefinder/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphBuild(t *testing.T) {
	b := NewGraphBuilder()
	u := b.AddVertex(100, 50.0, 6.0)
	v := b.AddVertex(200, 50.1, 6.1)
	w := b.AddVertex(300, 50.2, 6.2)
	assert.Equal(t, u, b.AddVertex(100, 1, 1), "same osm id must return the same vertex")

	b.AddEdge(u, w, 30)
	b.AddEdge(u, v, 12)
	b.AddEdge(u, v, 7) // parallel, shorter
	b.AddEdge(v, w, 5)

	g, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, 3, g.NumberOfVertices())
	assert.Equal(t, 4, g.NumberOfEdges())
	assert.Equal(t, 3, g.GetOutDegree(u))
	assert.Equal(t, 0, g.GetOutDegree(w))

	heads := []Index{}
	lengths := []float64{}
	g.ForOutEdgesOf(u, func(e *Edge) {
		heads = append(heads, e.GetHead())
		lengths = append(lengths, e.GetLength())
	})
	assert.Equal(t, []Index{v, v, w}, heads)
	assert.Equal(t, []float64{7, 12, 30}, lengths)

	e, ok := g.ShortestEdgeBetween(u, v)
	require.True(t, ok)
	assert.Equal(t, Index(2), e.GetEdgeId())
	_, ok = g.ShortestEdgeBetween(w, u)
	assert.False(t, ok)

	id, ok := g.GetVertexByOsmID(300)
	require.True(t, ok)
	assert.Equal(t, w, id)
	assert.Equal(t, int64(300), g.GetVertex(id).GetOsmID())

	bounds := g.GetBounds()
	assert.Equal(t, 50.0, bounds.Min.Lat)
	assert.Equal(t, 6.2, bounds.Max.Lon)
	assert.True(t, bounds.Contains(geo.NewCoordinate(50.1, 6.1)))
}

func TestGraphBuildRejectsInvalidEdges(t *testing.T) {
	testCases := []struct {
		name    string
		tail    Index
		head    Index
		length  float64
		wantErr error
	}{
		{name: "unknown head", tail: 0, head: 5, length: 1, wantErr: ErrUnknownVertex},
		{name: "negative length", tail: 0, head: 1, length: -1, wantErr: ErrInvalidLength},
		{name: "infinite length", tail: 0, head: 1, length: math.Inf(1), wantErr: ErrInvalidLength},
		{name: "nan length", tail: 0, head: 1, length: math.NaN(), wantErr: ErrInvalidLength},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			b := NewGraphBuilder()
			b.AddVertex(1, 0, 0)
			b.AddVertex(2, 0, 1)
			b.AddEdge(tt.tail, tt.head, tt.length)

			g, err := b.Build()
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, g)
		})
	}
}

func TestEmptyGraph(t *testing.T) {
	g, err := NewGraphBuilder().Build()
	require.NoError(t, err)
	assert.Equal(t, 0, g.NumberOfVertices())
	assert.False(t, g.IsValidVertex(0))
}
