package routing

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/lintang-b-s/routefinder/pkg"
	da "github.com/lintang-b-s/routefinder/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEdge struct {
	tail, head da.Index
	length     float64
}

func buildGraph(t testing.TB, numVertices int, edges []testEdge, bidirectional bool) *da.Graph {
	t.Helper()
	b := da.NewGraphBuilderWithSize(numVertices, len(edges))
	for i := 0; i < numVertices; i++ {
		b.AddVertex(int64(i+1), 50.77+float64(i)*0.0001, 6.08)
	}
	for _, e := range edges {
		b.AddEdge(e.tail, e.head, e.length)
		if bidirectional {
			b.AddEdge(e.head, e.tail, e.length)
		}
	}
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

// gridGraph. rows x cols grid with bidirectional edges, vertex r*cols+c
func gridGraph(t testing.TB, rows, cols int, length func(u, v int) float64) *da.Graph {
	t.Helper()
	b := da.NewGraphBuilderWithSize(rows*cols, 4*rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			b.AddVertex(int64(r*cols+c+1), 50.7+float64(r)*0.001, 6.0+float64(c)*0.001)
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			u := r*cols + c
			if c+1 < cols {
				b.AddEdge(da.Index(u), da.Index(u+1), length(u, u+1))
				b.AddEdge(da.Index(u+1), da.Index(u), length(u+1, u))
			}
			if r+1 < rows {
				b.AddEdge(da.Index(u), da.Index(u+cols), length(u, u+cols))
				b.AddEdge(da.Index(u+cols), da.Index(u), length(u+cols, u))
			}
		}
	}
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func assertValidPath(t *testing.T, g *da.Graph, path *da.Path, s, target da.Index) {
	t.Helper()
	vertices := path.GetVertices()
	edges := path.GetEdges()
	require.NotEmpty(t, vertices)
	require.Len(t, edges, len(vertices)-1)
	assert.Equal(t, s, path.Source())
	assert.Equal(t, target, path.Target())

	total := 0.0
	for i, eId := range edges {
		e := g.GetEdge(eId)
		assert.Equal(t, vertices[i], e.GetTail())
		assert.Equal(t, vertices[i+1], e.GetHead())
		total += e.GetLength()
	}
	assert.Equal(t, total, path.GetTotalLength())
}

func TestShortestPathScenario(t *testing.T) {
	const (
		s = da.Index(iota)
		a
		b
		target
		x
	)
	g := buildGraph(t, 5, []testEdge{
		{s, a, 10},
		{a, b, 5},
		{b, target, 5},
		{s, target, 25},
		{target, x, 100},
	}, true)

	path, err := ShortestPath(context.Background(), g, s, target)
	require.NoError(t, err)
	assert.Equal(t, []da.Index{s, a, b, target}, path.GetVertices())
	assert.Equal(t, 20.0, path.GetTotalLength())
	assertValidPath(t, g, path, s, target)

	back, err := ShortestPath(context.Background(), g, target, s)
	require.NoError(t, err)
	assert.Equal(t, []da.Index{target, b, a, s}, back.GetVertices())
	assert.Equal(t, 20.0, back.GetTotalLength())
}

func TestShortestPathTrivial(t *testing.T) {
	g := gridGraph(t, 3, 3, func(u, v int) float64 { return 1 })

	for v := da.Index(0); v < da.Index(g.NumberOfVertices()); v++ {
		path, err := ShortestPath(context.Background(), g, v, v)
		require.NoError(t, err)
		assert.Equal(t, []da.Index{v}, path.GetVertices())
		assert.Empty(t, path.GetEdges())
		assert.Equal(t, 0.0, path.GetTotalLength())
	}

	isolated := buildGraph(t, 1, nil, false)
	path, err := ShortestPath(context.Background(), isolated, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []da.Index{0}, path.GetVertices())
}

func TestShortestPathDisconnected(t *testing.T) {
	// subgraph A: 0-1-2, subgraph B: 3-4
	g := buildGraph(t, 5, []testEdge{
		{0, 1, 4},
		{1, 2, 4},
		{3, 4, 1},
	}, true)

	for _, tc := range []struct{ s, t da.Index }{{0, 3}, {2, 4}, {4, 0}} {
		path, err := ShortestPath(context.Background(), g, tc.s, tc.t)
		assert.Nil(t, path)

		var noPath *NoPathFoundError
		require.ErrorAs(t, err, &noPath)
		assert.Equal(t, tc.s, noPath.Source)
		assert.Equal(t, tc.t, noPath.Target)
		assert.ErrorIs(t, err, ErrNoPathFound)
	}
}

func TestShortestPathRespectsDirection(t *testing.T) {
	g := buildGraph(t, 3, []testEdge{
		{0, 1, 1},
		{1, 2, 1},
		{2, 0, 10},
	}, false)

	path, err := ShortestPath(context.Background(), g, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []da.Index{0, 1, 2}, path.GetVertices())

	path, err = ShortestPath(context.Background(), g, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []da.Index{2, 0, 1}, path.GetVertices())
	assert.Equal(t, 11.0, path.GetTotalLength())

	oneWay := buildGraph(t, 2, []testEdge{{0, 1, 1}}, false)
	_, err = ShortestPath(context.Background(), oneWay, 1, 0)
	assert.ErrorIs(t, err, ErrNoPathFound)
}

func TestShortestPathParallelEdges(t *testing.T) {
	b := da.NewGraphBuilder()
	u := b.AddVertex(1, 50.0, 6.0)
	v := b.AddVertex(2, 50.0, 6.1)
	b.AddEdge(u, v, 7)
	longest := b.AddEdge(u, v, 9)
	shortest := b.AddEdge(u, v, 3)
	b.AddEdge(u, v, 3)
	g, err := b.Build()
	require.NoError(t, err)

	path, err := ShortestPath(context.Background(), g, u, v)
	require.NoError(t, err)
	assert.Equal(t, 3.0, path.GetTotalLength())
	assert.Equal(t, []da.Index{shortest}, path.GetEdges())
	assert.NotEqual(t, longest, path.GetEdges()[0])
}

func TestShortestPathZeroLengthEdges(t *testing.T) {
	g := buildGraph(t, 4, []testEdge{
		{0, 1, 0},
		{1, 2, 0},
		{2, 3, 0},
		{0, 3, 1},
	}, false)

	path, err := ShortestPath(context.Background(), g, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, []da.Index{0, 1, 2, 3}, path.GetVertices())
	assert.Equal(t, 0.0, path.GetTotalLength())
}

func TestShortestPathInvalidNode(t *testing.T) {
	g := buildGraph(t, 2, []testEdge{{0, 1, 1}}, true)

	_, err := ShortestPath(context.Background(), g, 0, 2)
	assert.ErrorIs(t, err, ErrInvalidNode)
	_, err = ShortestPath(context.Background(), g, da.INVALID_VERTEX_ID, 1)
	assert.ErrorIs(t, err, ErrInvalidNode)
	_, err = ComputeShortestPathTree(context.Background(), g, 5)
	assert.ErrorIs(t, err, ErrInvalidNode)

	empty := buildGraph(t, 0, nil, false)
	_, err = ShortestPath(context.Background(), empty, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidNode)
}

func TestShortestPathDeterministic(t *testing.T) {
	// unit lengths give many equally short paths across the grid
	g := gridGraph(t, 12, 12, func(u, v int) float64 { return 1 })
	s, target := da.Index(0), da.Index(143)

	first, err := ShortestPath(context.Background(), g, s, target)
	require.NoError(t, err)
	assertValidPath(t, g, first, s, target)
	assert.Equal(t, 22.0, first.GetTotalLength())

	search := NewDijkstra(g)
	for i := 0; i < 25; i++ {
		path, err := search.ShortestPath(context.Background(), s, target)
		require.NoError(t, err)
		assert.Equal(t, first.GetVertices(), path.GetVertices())
		assert.Equal(t, first.GetEdges(), path.GetEdges())
		assert.Equal(t, math.Float64bits(first.GetTotalLength()), math.Float64bits(path.GetTotalLength()))
	}
}

// enumerateMinLength. minimum length over every simple path from s to t.
func enumerateMinLength(g *da.Graph, s, t da.Index) (float64, bool) {
	best := math.Inf(1)
	visited := make([]bool, g.NumberOfVertices())

	var dfs func(u da.Index, length float64)
	dfs = func(u da.Index, length float64) {
		if u == t {
			best = math.Min(best, length)
			return
		}
		visited[u] = true
		g.ForOutEdgesOf(u, func(e *da.Edge) {
			if !visited[e.GetHead()] {
				dfs(e.GetHead(), length+e.GetLength())
			}
		})
		visited[u] = false
	}
	dfs(s, 0)
	return best, !math.IsInf(best, 1)
}

func randomGraph(t testing.TB, rng *rand.Rand, numVertices, numEdges int) *da.Graph {
	edges := make([]testEdge, 0, numEdges)
	for i := 0; i < numEdges; i++ {
		edges = append(edges, testEdge{
			tail:   da.Index(rng.Intn(numVertices)),
			head:   da.Index(rng.Intn(numVertices)),
			length: float64(rng.Intn(50)) + rng.Float64(),
		})
	}
	return buildGraph(t, numVertices, edges, false)
}

func TestShortestPathOptimalAgainstEnumeratedPaths(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 30; round++ {
		g := randomGraph(t, rng, 8, 20)
		search := NewDijkstra(g)

		for s := da.Index(0); s < 8; s++ {
			for target := da.Index(0); target < 8; target++ {
				want, reachable := enumerateMinLength(g, s, target)
				path, err := search.ShortestPath(context.Background(), s, target)
				if !reachable {
					assert.ErrorIs(t, err, ErrNoPathFound)
					continue
				}
				require.NoError(t, err)
				assertValidPath(t, g, path, s, target)
				assert.InDelta(t, want, path.GetTotalLength(), 1e-9, "round %d, %d -> %d", round, s, target)
			}
		}
	}
}

// bellmanFord. reference one-to-all distances
func bellmanFord(g *da.Graph, s da.Index) []float64 {
	dist := make([]float64, g.NumberOfVertices())
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[s] = 0
	for i := 0; i < g.NumberOfVertices(); i++ {
		changed := false
		g.ForEdges(func(e *da.Edge) {
			if nd := dist[e.GetTail()] + e.GetLength(); nd < dist[e.GetHead()] {
				dist[e.GetHead()] = nd
				changed = true
			}
		})
		if !changed {
			break
		}
	}
	return dist
}

func TestShortestPathTree(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := randomGraph(t, rng, 300, 900)

	for _, s := range []da.Index{0, 17, 150, 299} {
		tree, err := ComputeShortestPathTree(context.Background(), g, s)
		require.NoError(t, err)
		assert.Equal(t, s, tree.Source())

		want := bellmanFord(g, s)
		reachable := 0
		for v := da.Index(0); v < da.Index(g.NumberOfVertices()); v++ {
			dist, ok := tree.Distance(v)
			if math.IsInf(want[v], 1) {
				assert.False(t, ok)
				assert.Equal(t, pkg.INF_WEIGHT, dist)
				_, err := tree.PathTo(v)
				assert.ErrorIs(t, err, ErrNoPathFound)
				continue
			}
			reachable++
			require.True(t, ok)
			assert.InDelta(t, want[v], dist, 1e-9)

			path, err := tree.PathTo(v)
			require.NoError(t, err)
			assertValidPath(t, g, path, s, v)
		}
		assert.Equal(t, reachable, tree.NumReachable())
	}
}

func TestShortestPathTimeout(t *testing.T) {
	g := gridGraph(t, 40, 40, func(u, v int) float64 { return 1 })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ShortestPath(ctx, g, 0, 1599)
	require.ErrorIs(t, err, ErrSearchTimeout)
	assert.True(t, errors.Is(err, context.Canceled))

	_, err = ComputeShortestPathTree(ctx, g, 0)
	assert.ErrorIs(t, err, ErrSearchTimeout)

	// the trivial path needs no search
	path, err := ShortestPath(ctx, g, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, path.Len())
}

func TestDijkstraReuse(t *testing.T) {
	g := buildGraph(t, 5, []testEdge{
		{0, 1, 2},
		{1, 2, 2},
		{3, 4, 2},
	}, true)
	search := NewDijkstra(g)

	_, err := search.ShortestPath(context.Background(), 0, 4)
	require.ErrorIs(t, err, ErrNoPathFound)

	path, err := search.ShortestPath(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []da.Index{0, 1, 2}, path.GetVertices())

	path, err = search.ShortestPath(context.Background(), 4, 3)
	require.NoError(t, err)
	assert.Equal(t, []da.Index{4, 3}, path.GetVertices())
	assert.Equal(t, 2, search.GetNumSettledNodes())
}

func TestShortestPathLargeGrid(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large graph search in short mode")
	}

	const side = 316 // ~1e5 vertices
	rng := rand.New(rand.NewSource(1))
	lengths := make(map[[2]int]float64)
	g := gridGraph(t, side, side, func(u, v int) float64 {
		key := [2]int{min(u, v), max(u, v)}
		if l, ok := lengths[key]; ok {
			return l
		}
		l := 10 + rng.Float64()*90
		lengths[key] = l
		return l
	})

	s, target := da.Index(0), da.Index(side*side-1)
	path, err := ShortestPath(context.Background(), g, s, target)
	require.NoError(t, err)
	assertValidPath(t, g, path, s, target)

	tree, err := ComputeShortestPathTree(context.Background(), g, s)
	require.NoError(t, err)
	dist, ok := tree.Distance(target)
	require.True(t, ok)
	assert.Equal(t, dist, path.GetTotalLength())
	assert.Equal(t, side*side, tree.NumReachable())
}
