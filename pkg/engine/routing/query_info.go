package routing

import (
	"github.com/lintang-b-s/routefinder/pkg"
	da "github.com/lintang-b-s/routefinder/pkg/datastructure"
)

// vertexEdgePair. predecessor vertex and the edge used to reach a vertex from it
type vertexEdgePair struct {
	vertex da.Index
	edge   da.Index
}

func newVertexEdgePair(vertex, edge da.Index) vertexEdgePair {
	return vertexEdgePair{
		vertex: vertex,
		edge:   edge,
	}
}

func (ve vertexEdgePair) getVertex() da.Index {
	return ve.vertex
}

func (ve vertexEdgePair) getEdge() da.Index {
	return ve.edge
}

type VertexInfo struct {
	dist     float64
	parent   vertexEdgePair
	scanned  bool // dist is final, vertex is part of the shortest path tree
	heapNode *da.PriorityQueueNode[da.Index]
}

func (vi *VertexInfo) GetDist() float64 {
	return vi.dist
}

func (vi *VertexInfo) UpdateDist(dist float64) {
	vi.dist = dist
}

func (vi *VertexInfo) UpdateParent(par vertexEdgePair) {
	vi.parent = par
}

func (vi *VertexInfo) GetParent() vertexEdgePair {
	return vi.parent
}

func (vi *VertexInfo) Scan() {
	vi.scanned = true
}

func (vi *VertexInfo) IsScanned() bool {
	return vi.scanned
}

func (vi *VertexInfo) IsLabelled() bool {
	return vi.heapNode != nil
}

func (vi *VertexInfo) GetHeapNode() *da.PriorityQueueNode[da.Index] {
	return vi.heapNode
}

func unlabelledVertexInfo() VertexInfo {
	return VertexInfo{
		dist:   pkg.INF_WEIGHT,
		parent: newVertexEdgePair(da.INVALID_VERTEX_ID, da.INVALID_EDGE_ID),
	}
}

func initInfWeightVertexInfo(infos []VertexInfo) {
	for i := range infos {
		infos[i] = unlabelledVertexInfo()
	}
}
