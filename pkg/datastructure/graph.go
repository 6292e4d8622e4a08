package datastructure

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/lintang-b-s/routefinder/pkg"
	"github.com/lintang-b-s/routefinder/pkg/geo"
)

type Index uint32

const (
	INVALID_VERTEX_ID Index = math.MaxUint32
	INVALID_EDGE_ID   Index = math.MaxUint32
)

var (
	ErrUnknownVertex = errors.New("edge references a vertex that is not in the graph")
	ErrInvalidLength = errors.New("edge length must be finite and non-negative")
)

type Vertex struct {
	lat   float64
	lon   float64
	id    Index
	osmId int64
}

func (v *Vertex) GetID() Index {
	return v.id
}

func (v *Vertex) GetOsmID() int64 {
	return v.osmId
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

// Edge directed road segment tail -> head. length in meter
type Edge struct {
	length float64
	edgeId Index
	tail   Index
	head   Index
	hwType pkg.OsmHighwayType
	name   string
}

func (e *Edge) GetEdgeId() Index {
	return e.edgeId
}

func (e *Edge) GetTail() Index {
	return e.tail
}

func (e *Edge) GetHead() Index {
	return e.head
}

func (e *Edge) GetLength() float64 {
	return e.length
}

func (e *Edge) GetHighwayType() pkg.OsmHighwayType {
	return e.hwType
}

func (e *Edge) GetName() string {
	return e.name
}

/*
Graph. frozen directed multigraph of the road network.

out edges are stored in compressed sparse row form: the out edges of vertex u are
outEdges[firstOut[u]:firstOut[u+1]], sorted by (head, length, edgeId). parallel edges stay
distinct, the sort puts the shortest one first.

a Graph is never mutated after GraphBuilder.Build, so it can be shared by concurrent queries.
*/
type Graph struct {
	vertices  []Vertex
	edges     []Edge
	firstOut  []Index
	outEdges  []Index
	osmIdToId map[int64]Index
	bounds    geo.Bounds

	sccOnce sync.Once
	scc     *Components
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *Graph) NumberOfEdges() int {
	return len(g.edges)
}

func (g *Graph) IsValidVertex(u Index) bool {
	return int(u) < len(g.vertices)
}

func (g *Graph) GetVertex(u Index) *Vertex {
	return &g.vertices[u]
}

func (g *Graph) GetVertexCoordinates(u Index) (float64, float64) {
	v := g.vertices[u]
	return v.lat, v.lon
}

func (g *Graph) GetEdge(edgeId Index) *Edge {
	return &g.edges[edgeId]
}

func (g *Graph) GetOutDegree(u Index) int {
	return int(g.firstOut[u+1] - g.firstOut[u])
}

// GetBounds. smallest rectangle containing every vertex, the zero Bounds for an empty graph
func (g *Graph) GetBounds() geo.Bounds {
	return g.bounds
}

// GetVertexByOsmID. vertex index of an osm node id
func (g *Graph) GetVertexByOsmID(osmId int64) (Index, bool) {
	id, ok := g.osmIdToId[osmId]
	return id, ok
}

func (g *Graph) ForOutEdgesOf(u Index, handle func(e *Edge)) {
	for i := g.firstOut[u]; i < g.firstOut[u+1]; i++ {
		handle(&g.edges[g.outEdges[i]])
	}
}

func (g *Graph) ForVertices(handle func(v *Vertex)) {
	for i := range g.vertices {
		handle(&g.vertices[i])
	}
}

// ForEdges. iterate edges in edge id order
func (g *Graph) ForEdges(handle func(e *Edge)) {
	for i := range g.edges {
		handle(&g.edges[i])
	}
}

// ShortestEdgeBetween. minimum length edge u -> v, false if u and v are not adjacent
func (g *Graph) ShortestEdgeBetween(u, v Index) (*Edge, bool) {
	var best *Edge
	g.ForOutEdgesOf(u, func(e *Edge) {
		if e.head == v && best == nil {
			best = e
		}
	})
	return best, best != nil
}

// GraphBuilder. collects vertices and edges, Build validates and freezes them into a Graph
type GraphBuilder struct {
	vertices  []Vertex
	edges     []Edge
	osmIdToId map[int64]Index
}

func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		vertices:  make([]Vertex, 0),
		edges:     make([]Edge, 0),
		osmIdToId: make(map[int64]Index),
	}
}

func NewGraphBuilderWithSize(numVertices, numEdges int) *GraphBuilder {
	return &GraphBuilder{
		vertices:  make([]Vertex, 0, numVertices),
		edges:     make([]Edge, 0, numEdges),
		osmIdToId: make(map[int64]Index, numVertices),
	}
}

// AddVertex. adds a vertex for osmId and returns its index. adding the same osmId twice returns the first index.
func (b *GraphBuilder) AddVertex(osmId int64, lat, lon float64) Index {
	if id, ok := b.osmIdToId[osmId]; ok {
		return id
	}
	id := Index(len(b.vertices))
	b.vertices = append(b.vertices, Vertex{lat: lat, lon: lon, id: id, osmId: osmId})
	b.osmIdToId[osmId] = id
	return id
}

func (b *GraphBuilder) NumberOfVertices() int {
	return len(b.vertices)
}

func (b *GraphBuilder) AddEdge(tail, head Index, length float64) Index {
	return b.AddEdgeWithInfo(tail, head, length, pkg.UNKNOWN, "")
}

func (b *GraphBuilder) AddEdgeWithInfo(tail, head Index, length float64, hwType pkg.OsmHighwayType, name string) Index {
	id := Index(len(b.edges))
	b.edges = append(b.edges, Edge{
		edgeId: id,
		tail:   tail,
		head:   head,
		length: length,
		hwType: hwType,
		name:   name,
	})
	return id
}

// Build. validates every edge and returns the frozen graph. the builder must not be used afterwards.
func (b *GraphBuilder) Build() (*Graph, error) {
	n := len(b.vertices)
	for i := range b.edges {
		e := &b.edges[i]
		if int(e.tail) >= n || int(e.head) >= n {
			return nil, fmt.Errorf("edge %d (%d -> %d): %w", e.edgeId, e.tail, e.head, ErrUnknownVertex)
		}
		if math.IsNaN(e.length) || math.IsInf(e.length, 0) || e.length < 0 {
			return nil, fmt.Errorf("edge %d length %v: %w", e.edgeId, e.length, ErrInvalidLength)
		}
	}

	firstOut := make([]Index, n+1)
	for i := range b.edges {
		firstOut[b.edges[i].tail+1]++
	}
	for u := 0; u < n; u++ {
		firstOut[u+1] += firstOut[u]
	}

	outEdges := make([]Index, len(b.edges))
	pos := make([]Index, n)
	copy(pos, firstOut[:n])
	for i := range b.edges {
		tail := b.edges[i].tail
		outEdges[pos[tail]] = b.edges[i].edgeId
		pos[tail]++
	}

	edges := b.edges
	for u := 0; u < n; u++ {
		adj := outEdges[firstOut[u]:firstOut[u+1]]
		sort.Slice(adj, func(i, j int) bool {
			ei, ej := &edges[adj[i]], &edges[adj[j]]
			if ei.head != ej.head {
				return ei.head < ej.head
			}
			if ei.length != ej.length {
				return ei.length < ej.length
			}
			return ei.edgeId < ej.edgeId
		})
	}

	g := &Graph{
		vertices:  b.vertices,
		edges:     edges,
		firstOut:  firstOut,
		outEdges:  outEdges,
		osmIdToId: b.osmIdToId,
	}
	g.bounds = computeBounds(g.vertices)

	b.vertices = nil
	b.edges = nil
	b.osmIdToId = nil
	return g, nil
}

func computeBounds(vertices []Vertex) geo.Bounds {
	if len(vertices) == 0 {
		return geo.Bounds{}
	}
	minLat, minLon := math.Inf(1), math.Inf(1)
	maxLat, maxLon := math.Inf(-1), math.Inf(-1)
	for _, v := range vertices {
		minLat = math.Min(minLat, v.lat)
		minLon = math.Min(minLon, v.lon)
		maxLat = math.Max(maxLat, v.lat)
		maxLon = math.Max(maxLon, v.lon)
	}
	return geo.NewBounds(minLat, minLon, maxLat, maxLon)
}
