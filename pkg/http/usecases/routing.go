package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/lintang-b-s/routefinder/pkg/concurrent"
	"github.com/lintang-b-s/routefinder/pkg/costfunction"
	"github.com/lintang-b-s/routefinder/pkg/datastructure"
	"github.com/lintang-b-s/routefinder/pkg/engine/routing"
	"github.com/lintang-b-s/routefinder/pkg/geo"
	"github.com/lintang-b-s/routefinder/pkg/geocoding"
	"github.com/lintang-b-s/routefinder/pkg/guidance"
	"github.com/lintang-b-s/routefinder/pkg/metrics"
	"github.com/lintang-b-s/routefinder/pkg/projection"
	"github.com/lintang-b-s/routefinder/pkg/spatialindex"
	"github.com/lintang-b-s/routefinder/pkg/util"
	"go.uber.org/zap"
)

type RouteRequest struct {
	StartAddress   string
	EndAddress     string
	MapStyle       projection.MapStyle
	IncludeNetwork bool
}

type RouteResult struct {
	StartAddress    string
	EndAddress      string
	StartCoordinate geo.Coordinate
	EndCoordinate   geo.Coordinate
	StartNode       datastructure.Index
	EndNode         datastructure.Index
	Route           *projection.RouteGeometry
	TravelTime      float64
	Directions      []guidance.Direction
	Markers         []projection.Marker
	Style           projection.MapStyle
	Tiles           projection.TileLayer
	Network         *projection.NetworkGeometry
}

// ReachabilityResult. MutuallyReachable counts the vertices that can be reached from Node and can reach Node back.
type ReachabilityResult struct {
	Address           string
	Node              datastructure.Index
	NumVertices       int
	NumReachable      int
	MutuallyReachable int
	MaxDistance       float64
	MaxDistanceTo     datastructure.Index
}

type RoutingService struct {
	log           *zap.Logger
	metrics       *metrics.Metrics
	engines       EngineSource
	resolver      AddressResolver
	searchTimeout time.Duration
}

func NewRoutingService(log *zap.Logger, metrics *metrics.Metrics, engines EngineSource, resolver AddressResolver,
	searchTimeout time.Duration) *RoutingService {
	return &RoutingService{
		log:           log,
		metrics:       metrics,
		engines:       engines,
		resolver:      resolver,
		searchTimeout: searchTimeout,
	}
}

type resolution struct {
	coord *geo.Coordinate
	err   error
}

/*
Route. resolves both addresses concurrently, snaps them to the nearest road network vertices, searches the
shortest path by length and projects it for rendering.

when an address cannot be resolved no path search is attempted.
*/
func (rs *RoutingService) Route(ctx context.Context, req RouteRequest) (*RouteResult, error) {
	eng, err := rs.engines.Current()
	if err != nil {
		rs.countOutcome("graph_unavailable")
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, msgGraphNotLoaded)
	}

	resolved := concurrent.RunAll(ctx, 2, []string{req.StartAddress, req.EndAddress},
		func(ctx context.Context, address string) resolution {
			coord, err := rs.resolver.Resolve(ctx, address)
			return resolution{coord: coord, err: err}
		})
	for _, r := range resolved {
		if r.err != nil {
			return nil, rs.resolutionError(r.err)
		}
	}
	startCoord, endCoord := *resolved[0].coord, *resolved[1].coord

	s, err := rs.snap(eng, startCoord)
	if err != nil {
		return nil, err
	}
	t, err := rs.snap(eng, endCoord)
	if err != nil {
		return nil, err
	}

	path, err := rs.search(ctx, eng, s, t)
	if err != nil {
		return nil, err
	}

	graph := eng.GetGraph()
	route, err := projection.Project(graph, path)
	if err != nil {
		rs.countOutcome("error")
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "failed to project route")
	}

	travelTime := costfunction.NewTimeCostFunction()
	sLat, sLon := graph.GetVertexCoordinates(s)
	tLat, tLon := graph.GetVertexCoordinates(t)
	result := &RouteResult{
		StartAddress:    req.StartAddress,
		EndAddress:      req.EndAddress,
		StartCoordinate: startCoord,
		EndCoordinate:   endCoord,
		StartNode:       s,
		EndNode:         t,
		Route:           route,
		TravelTime:      util.RoundFloat(costfunction.PathCost(graph, path, travelTime), 2),
		Directions:      guidance.NewDirectionBuilder(graph, travelTime).GetDrivingDirections(path),
		Markers: projection.Markers(geo.NewCoordinate(sLat, sLon), geo.NewCoordinate(tLat, tLon),
			req.StartAddress, req.EndAddress),
		Style: req.MapStyle,
		Tiles: req.MapStyle.TileLayer(),
	}
	if req.IncludeNetwork {
		result.Network = projection.ProjectNetwork(graph)
	}

	rs.countOutcome("ok")
	rs.log.Info("route found", zap.String("start_address", req.StartAddress),
		zap.String("end_address", req.EndAddress), zap.Float64("length", route.Length),
		zap.Int("vertices", path.Len()))
	return result, nil
}

// Network. the whole loaded road network as geojson
func (rs *RoutingService) Network(ctx context.Context) (*projection.NetworkGeometry, error) {
	eng, err := rs.engines.Current()
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, msgGraphNotLoaded)
	}
	return projection.ProjectNetwork(eng.GetGraph()), nil
}

// Reachability. how much of the road network can be reached by car from an address
func (rs *RoutingService) Reachability(ctx context.Context, address string) (*ReachabilityResult, error) {
	eng, err := rs.engines.Current()
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, msgGraphNotLoaded)
	}

	coord, err := rs.resolver.Resolve(ctx, address)
	if err != nil {
		return nil, rs.resolutionError(err)
	}
	s, err := rs.snap(eng, *coord)
	if err != nil {
		return nil, err
	}

	tree, err := eng.ShortestPathTree(ctx, s)
	if err != nil {
		if errors.Is(err, routing.ErrSearchTimeout) {
			return nil, util.WrapErrorf(err, util.ErrTimeout, msgTimeout)
		}
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "shortest path tree search failed")
	}

	graph := eng.GetGraph()
	result := &ReachabilityResult{
		Address:           address,
		Node:              s,
		NumVertices:       graph.NumberOfVertices(),
		NumReachable:      tree.NumReachable(),
		MutuallyReachable: graph.StronglyConnectedComponents().Size(s),
		MaxDistanceTo:     s,
	}
	for v := datastructure.Index(0); int(v) < graph.NumberOfVertices(); v++ {
		if d, ok := tree.Distance(v); ok && d > result.MaxDistance {
			result.MaxDistance = d
			result.MaxDistanceTo = v
		}
	}
	return result, nil
}

func (rs *RoutingService) snap(eng RoutingEngine, coord geo.Coordinate) (datastructure.Index, error) {
	node, err := eng.NearestNode(coord.Lat, coord.Lon)
	if err == nil {
		return node, nil
	}

	if errors.Is(err, spatialindex.ErrInvalidCoordinate) {
		rs.countOutcome("bad_request")
		return datastructure.INVALID_VERTEX_ID, util.WrapErrorf(err, util.ErrBadParamInput,
			"coordinate %v,%v is out of range", coord.Lat, coord.Lon)
	}
	rs.countOutcome("error")
	return datastructure.INVALID_VERTEX_ID, util.WrapErrorf(err, util.ErrInternalServerError,
		"failed to snap %v,%v to the road network", coord.Lat, coord.Lon)
}

func (rs *RoutingService) search(ctx context.Context, eng RoutingEngine, s, t datastructure.Index) (*datastructure.Path, error) {
	if rs.searchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rs.searchTimeout)
		defer cancel()
	}

	path, err := eng.ShortestPath(ctx, s, t)
	if err == nil {
		return path, nil
	}

	switch {
	case errors.Is(err, routing.ErrNoPathFound):
		rs.countOutcome("no_path")
		return nil, util.WrapErrorf(err, util.ErrNotFound, msgPathNotFound)
	case errors.Is(err, routing.ErrSearchTimeout):
		rs.countOutcome("timeout")
		return nil, util.WrapErrorf(err, util.ErrTimeout, msgTimeout)
	default:
		rs.countOutcome("error")
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "shortest path search failed")
	}
}

func (rs *RoutingService) resolutionError(err error) error {
	var notFound *geocoding.AddressNotFoundError
	switch {
	case errors.As(err, &notFound):
		rs.countOutcome("address_not_found")
		return util.WrapErrorf(err, util.ErrNotFound, "%s: %q", msgAddressNotFound, notFound.Address)
	case errors.Is(err, geocoding.ErrResolutionTimeout):
		rs.countOutcome("timeout")
		return util.WrapErrorf(err, util.ErrTimeout, msgTimeout)
	default:
		rs.countOutcome("error")
		return util.WrapErrorf(err, util.ErrInternalServerError, "address resolution failed")
	}
}

func (rs *RoutingService) countOutcome(outcome string) {
	rs.metrics.RouteRequests.WithLabelValues(outcome).Inc()
}
