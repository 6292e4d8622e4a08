package osmparser

import (
	"github.com/lintang-b-s/routefinder/pkg"
	da "github.com/lintang-b-s/routefinder/pkg/datastructure"
	"github.com/lintang-b-s/routefinder/pkg/geo"
)

// BuildGraph. one edge per pair of consecutive way nodes and allowed direction, length is the haversine
// distance in meters. ways are added in scan order so vertex indices are stable for the same data.
func (p *OsmParser) BuildGraph() (*da.Graph, error) {
	builder := da.NewGraphBuilderWithSize(len(p.acceptedNodeMap), 2*len(p.acceptedNodeMap))

	// barrier copies get negative ids, real osm node ids are positive
	nextCopyId := int64(-1)

	for _, way := range p.ways {
		hwType := pkg.GetHighwayType(way.hwType)

		prev := da.INVALID_VERTEX_ID
		var prevCoord NodeCoord
		for i, nodeId := range way.nodes {
			coord, ok := p.acceptedNodeMap[nodeId]
			if !ok {
				// node is outside the extract, the way continues after the gap
				prev = da.INVALID_VERTEX_ID
				continue
			}

			cur := builder.AddVertex(nodeId, coord.lat, coord.lon)
			if prev != da.INVALID_VERTEX_ID && prev != cur {
				length := geo.CalculateHaversineDistance(prevCoord.lat, prevCoord.lon, coord.lat, coord.lon) * 1000
				if way.forward {
					builder.AddEdgeWithInfo(prev, cur, length, hwType, way.name)
				}
				if way.backward {
					builder.AddEdgeWithInfo(cur, prev, length, hwType, way.name)
				}
			}

			if p.barrierNodes[nodeId] && i != 0 && i != len(way.nodes)-1 {
				// continue from a copy of the barrier, not connected to the part before it
				cur = builder.AddVertex(nextCopyId, coord.lat, coord.lon)
				nextCopyId--
			}

			prev = cur
			prevCoord = coord
		}
	}

	return builder.Build()
}
