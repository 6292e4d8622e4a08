package projection

import (
	da "github.com/lintang-b-s/routefinder/pkg/datastructure"
	"github.com/lintang-b-s/routefinder/pkg/geo"
	geojson "github.com/paulmach/go.geojson"
)

type NetworkGeometry struct {
	NumVertices int                        `json:"num_vertices"`
	NumEdges    int                        `json:"num_edges"`
	Bounds      geo.Bounds                 `json:"bounds"`
	Features    *geojson.FeatureCollection `json:"geojson"`
}

// ProjectNetwork. every edge of graph as a two point line feature, in edge id order.
func ProjectNetwork(graph *da.Graph) *NetworkGeometry {
	fc := geojson.NewFeatureCollection()

	graph.ForEdges(func(e *da.Edge) {
		tailLat, tailLon := graph.GetVertexCoordinates(e.GetTail())
		headLat, headLon := graph.GetVertexCoordinates(e.GetHead())

		f := geojson.NewLineStringFeature([][]float64{{tailLon, tailLat}, {headLon, headLat}})
		f.ID = uint32(e.GetEdgeId())
		f.SetProperty("length", e.GetLength())
		f.SetProperty("name", e.GetName())
		f.SetProperty("highway", e.GetHighwayType().String())
		fc.AddFeature(f)
	})

	network := &NetworkGeometry{
		NumVertices: graph.NumberOfVertices(),
		NumEdges:    graph.NumberOfEdges(),
		Features:    fc,
	}

	if graph.NumberOfVertices() > 0 {
		network.Bounds = graph.GetBounds()
		fc.BoundingBox = []float64{network.Bounds.Min.Lon, network.Bounds.Min.Lat,
			network.Bounds.Max.Lon, network.Bounds.Max.Lat}
	}

	return network
}
