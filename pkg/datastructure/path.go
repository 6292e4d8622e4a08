package datastructure

// Path. vertices of a route in travel order. edges[i] is the edge used from vertices[i] to vertices[i+1].
type Path struct {
	vertices    []Index
	edges       []Index
	totalLength float64
}

func NewPath(vertices, edges []Index, totalLength float64) *Path {
	return &Path{
		vertices:    vertices,
		edges:       edges,
		totalLength: totalLength,
	}
}

func (p *Path) GetVertices() []Index {
	return p.vertices
}

func (p *Path) GetEdges() []Index {
	return p.edges
}

// GetTotalLength. sum of edge lengths in meter
func (p *Path) GetTotalLength() float64 {
	return p.totalLength
}

func (p *Path) Len() int {
	return len(p.vertices)
}

func (p *Path) Source() Index {
	return p.vertices[0]
}

func (p *Path) Target() Index {
	return p.vertices[len(p.vertices)-1]
}
