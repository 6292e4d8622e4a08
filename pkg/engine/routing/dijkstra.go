package routing

import (
	"context"
	"fmt"

	"github.com/lintang-b-s/routefinder/pkg"
	da "github.com/lintang-b-s/routefinder/pkg/datastructure"
	"github.com/lintang-b-s/routefinder/pkg/util"
)

const (
	checkInterval       = 1024 // ctx is polled once every checkInterval settled vertices
	initialHeapCapacity = 1024
)

/*
Dijkstra. single source shortest paths by edge length over a frozen graph.

equal priorities are extracted lowest vertex index first and a label is only replaced by a strictly
shorter one. out edges are sorted by (head, length, edgeId), so among parallel edges the shortest one
with the lowest id wins. together this makes every search reproducible.

a Dijkstra keeps per-query state and is not safe for concurrent use, use one per goroutine
(RoutingEngine pools them).
*/
type Dijkstra struct {
	graph *da.Graph

	info    []VertexInfo
	touched []da.Index

	pq *da.MinHeap[da.Index]

	numSettledNodes int
}

func NewDijkstra(graph *da.Graph) *Dijkstra {
	n := graph.NumberOfVertices()
	info := make([]VertexInfo, n)
	initInfWeightVertexInfo(info)

	pq := da.NewBinaryHeapWithTieBreak(func(a, b da.Index) bool {
		return a < b
	})
	pq.Preallocate(min(n, initialHeapCapacity))

	return &Dijkstra{
		graph:   graph,
		info:    info,
		touched: make([]da.Index, 0, 64),
		pq:      pq,
	}
}

// ShortestPath. minimum length path from s to t.
func (d *Dijkstra) ShortestPath(ctx context.Context, s, t da.Index) (*da.Path, error) {
	if !d.graph.IsValidVertex(s) {
		return nil, fmt.Errorf("source %d: %w", s, ErrInvalidNode)
	}
	if !d.graph.IsValidVertex(t) {
		return nil, fmt.Errorf("target %d: %w", t, ErrInvalidNode)
	}

	if s == t {
		return da.NewPath([]da.Index{s}, []da.Index{}, 0), nil
	}

	d.reset()
	found, err := d.search(ctx, s, t)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &NoPathFoundError{Source: s, Target: t}
	}

	return d.retrievePath(s, t), nil
}

// ShortestPathTree. distances and predecessor edges from s to every vertex.
func (d *Dijkstra) ShortestPathTree(ctx context.Context, s da.Index) (*ShortestPathTree, error) {
	if !d.graph.IsValidVertex(s) {
		return nil, fmt.Errorf("source %d: %w", s, ErrInvalidNode)
	}

	d.reset()
	if _, err := d.search(ctx, s, da.INVALID_VERTEX_ID); err != nil {
		return nil, err
	}

	n := d.graph.NumberOfVertices()
	tree := &ShortestPathTree{
		graph:      d.graph,
		source:     s,
		dist:       make([]float64, n),
		parentEdge: make([]da.Index, n),
	}
	for v := 0; v < n; v++ {
		tree.dist[v] = pkg.INF_WEIGHT
		tree.parentEdge[v] = da.INVALID_EDGE_ID
	}
	for _, v := range d.touched {
		if !d.info[v].IsScanned() {
			continue
		}
		tree.dist[v] = d.info[v].GetDist()
		tree.parentEdge[v] = d.info[v].GetParent().getEdge()
		tree.numReachable++
	}
	return tree, nil
}

func (d *Dijkstra) GetNumSettledNodes() int {
	return d.numSettledNodes
}

// search. settles vertices in distance order until t is settled or the queue runs dry.
// t == INVALID_VERTEX_ID settles everything reachable from s.
func (d *Dijkstra) search(ctx context.Context, s, t da.Index) (bool, error) {
	d.label(s, 0, newVertexEdgePair(da.INVALID_VERTEX_ID, da.INVALID_EDGE_ID))

	for !d.pq.IsEmpty() {
		if d.numSettledNodes%checkInterval == 0 && util.StopConcurrentOperation(ctx) {
			return false, fmt.Errorf("%w after %d settled nodes: %w", ErrSearchTimeout, d.numSettledNodes, ctx.Err())
		}

		minNode, err := d.pq.ExtractMin()
		if err != nil {
			return false, err
		}
		u := minNode.GetItem()
		d.info[u].Scan()
		d.numSettledNodes++

		if u == t {
			return true, nil
		}

		du := d.info[u].GetDist()
		d.graph.ForOutEdgesOf(u, func(e *da.Edge) {
			v := e.GetHead()
			vInfo := &d.info[v]
			if vInfo.IsScanned() {
				return
			}

			newDist := du + e.GetLength()
			if !vInfo.IsLabelled() {
				d.label(v, newDist, newVertexEdgePair(u, e.GetEdgeId()))
				return
			}

			if newDist < vInfo.GetDist() {
				vInfo.UpdateDist(newDist)
				vInfo.UpdateParent(newVertexEdgePair(u, e.GetEdgeId()))
				// v is labelled but not scanned, so it is still in the queue
				_ = d.pq.DecreaseKey(vInfo.GetHeapNode(), newDist)
			}
		})
	}

	return false, nil
}

func (d *Dijkstra) label(v da.Index, dist float64, parent vertexEdgePair) {
	node := da.NewPriorityQueueNode(dist, v)
	d.info[v] = VertexInfo{
		dist:     dist,
		parent:   parent,
		heapNode: node,
	}
	d.touched = append(d.touched, v)
	d.pq.Insert(node)
}

func (d *Dijkstra) retrievePath(s, t da.Index) *da.Path {
	vertices := make([]da.Index, 0, 16)
	edges := make([]da.Index, 0, 16)

	for cur := t; cur != s; {
		parent := d.info[cur].GetParent()
		vertices = append(vertices, cur)
		edges = append(edges, parent.getEdge())
		cur = parent.getVertex()
	}
	vertices = append(vertices, s)

	return da.NewPath(util.ReverseG(vertices), util.ReverseG(edges), d.info[t].GetDist())
}

// reset. clears only the vertices labelled by the previous query.
func (d *Dijkstra) reset() {
	for _, v := range d.touched {
		d.info[v] = unlabelledVertexInfo()
	}
	d.touched = d.touched[:0]
	d.pq.Clear()
	d.numSettledNodes = 0
}

// ShortestPath. one-off search from s to t, safe to call concurrently on a shared graph.
func ShortestPath(ctx context.Context, graph *da.Graph, s, t da.Index) (*da.Path, error) {
	return NewDijkstra(graph).ShortestPath(ctx, s, t)
}

// ComputeShortestPathTree. one-off search from s to all vertices.
func ComputeShortestPathTree(ctx context.Context, graph *da.Graph, s da.Index) (*ShortestPathTree, error) {
	return NewDijkstra(graph).ShortestPathTree(ctx, s)
}
