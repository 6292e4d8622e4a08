package usecases

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lintang-b-s/routefinder/pkg/datastructure"
	"github.com/lintang-b-s/routefinder/pkg/engine"
	"github.com/lintang-b-s/routefinder/pkg/engine/routing"
	"github.com/lintang-b-s/routefinder/pkg/geo"
	"github.com/lintang-b-s/routefinder/pkg/geocoding"
	"github.com/lintang-b-s/routefinder/pkg/metrics"
	"github.com/lintang-b-s/routefinder/pkg/projection"
	"github.com/lintang-b-s/routefinder/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	markt      = geo.NewCoordinate(50.7753, 6.0839)
	kraemer    = geo.NewCoordinate(50.7760, 6.0850)
	hof        = geo.NewCoordinate(50.7771, 6.0862)
	dom        = geo.NewCoordinate(50.7780, 6.0870)
	elisenhaus = geo.NewCoordinate(50.7800, 6.0900)
	lousberg   = geo.NewCoordinate(50.7900, 6.0700)
)

// scenarioGraph. s - a - b - t with lengths 10, 5, 5 and a direct s - t edge of 25, plus a vertex x that is
// only connected to t and an island vertex that is connected to nothing.
func scenarioGraph(t *testing.T) *datastructure.Graph {
	t.Helper()
	b := datastructure.NewGraphBuilder()
	s := b.AddVertex(1, markt.Lat, markt.Lon)
	a := b.AddVertex(2, kraemer.Lat, kraemer.Lon)
	c := b.AddVertex(3, hof.Lat, hof.Lon)
	d := b.AddVertex(4, dom.Lat, dom.Lon)
	x := b.AddVertex(5, elisenhaus.Lat, elisenhaus.Lon)
	b.AddVertex(6, lousberg.Lat, lousberg.Lon)

	add := func(u, v datastructure.Index, length float64) {
		b.AddEdge(u, v, length)
		b.AddEdge(v, u, length)
	}
	add(s, a, 10)
	add(a, c, 5)
	add(c, d, 5)
	add(s, d, 25)
	add(d, x, 100)

	g, err := b.Build()
	require.NoError(t, err)
	return g
}

type countingEngine struct {
	RoutingEngine
	searches atomic.Int32
}

func (c *countingEngine) ShortestPath(ctx context.Context, s, t datastructure.Index) (*datastructure.Path, error) {
	c.searches.Add(1)
	return c.RoutingEngine.ShortestPath(ctx, s, t)
}

type fixture struct {
	service *RoutingService
	engine  *countingEngine
	metrics *metrics.Metrics
}

func newFixture(t *testing.T, provider geocoding.Provider) *fixture {
	t.Helper()
	m := metrics.NewMetrics(prometheus.NewRegistry())
	eng := &countingEngine{
		RoutingEngine: engine.NewEngine(scenarioGraph(t), "Aachen, Germany", "drive", 0.05, m, zap.NewNop()),
	}
	if provider == nil {
		provider = geocoding.NewGazetteer(map[string]geo.Coordinate{
			"Markt 1, Aachen":      markt,
			"Domhof 1, Aachen":     dom,
			"Elisenbrunnen Aachen": elisenhaus,
			"Lousberg, Aachen":     lousberg,
			"Null Island":          geo.NewCoordinate(0.0001, 0.0001),
		})
	}
	resolver := geocoding.NewResolver(provider, "gazetteer", zap.NewNop(), m, geocoding.WithTimeout(time.Second))

	source := EngineSourceFunc(func() (RoutingEngine, error) { return eng, nil })
	return &fixture{
		service: NewRoutingService(zap.NewNop(), m, source, resolver, time.Second),
		engine:  eng,
		metrics: m,
	}
}

func errorCode(t *testing.T, err error) error {
	t.Helper()
	var uErr *util.Error
	require.ErrorAs(t, err, &uErr)
	return uErr.Code()
}

func TestRouteScenario(t *testing.T) {
	f := newFixture(t, nil)

	res, err := f.service.Route(context.Background(), RouteRequest{
		StartAddress:   "Markt 1, Aachen",
		EndAddress:     "domhof 1,  aachen",
		MapStyle:       projection.OpenStreetMap,
		IncludeNetwork: true,
	})
	require.NoError(t, err)

	assert.Equal(t, datastructure.Index(0), res.StartNode)
	assert.Equal(t, datastructure.Index(3), res.EndNode)
	assert.Equal(t, 20.0, res.Route.Length)
	assert.Equal(t, []geo.Coordinate{markt, kraemer, hof, dom}, res.Route.Coordinates)
	assert.Equal(t, markt, res.StartCoordinate)
	assert.Equal(t, dom, res.EndCoordinate)

	require.NotEmpty(t, res.Directions)
	assert.Equal(t, "START", res.Directions[0].TurnType)
	assert.Equal(t, "FINISH", res.Directions[len(res.Directions)-1].TurnType)
	assert.Equal(t, dom, res.Directions[len(res.Directions)-1].Point)

	require.Len(t, res.Markers, 2)
	assert.Equal(t, markt, res.Markers[0].Location)
	assert.Equal(t, "Start: Markt 1, Aachen", res.Markers[0].Popup)
	assert.Equal(t, dom, res.Markers[1].Location)

	assert.Equal(t, projection.OpenStreetMap, res.Style)
	assert.Equal(t, "OpenStreetMap", res.Tiles.Name)
	require.NotNil(t, res.Network)
	assert.Equal(t, 10, res.Network.NumEdges)

	assert.Equal(t, int32(1), f.engine.searches.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.RouteRequests.WithLabelValues("ok")))
}

func TestRouteSameAddress(t *testing.T) {
	f := newFixture(t, nil)

	res, err := f.service.Route(context.Background(), RouteRequest{
		StartAddress: "Markt 1, Aachen",
		EndAddress:   "Markt 1, Aachen",
	})
	require.NoError(t, err)
	assert.Equal(t, []geo.Coordinate{markt}, res.Route.Coordinates)
	assert.Equal(t, 0.0, res.Route.Length)
	require.Len(t, res.Directions, 1)
	assert.Equal(t, "FINISH", res.Directions[0].TurnType)
	assert.Nil(t, res.Network)
	assert.Equal(t, projection.Default, res.Style)
}

func TestRouteAddressNotFound(t *testing.T) {
	f := newFixture(t, nil)

	for _, req := range []RouteRequest{
		{StartAddress: "NoSuchPlace12345XYZ", EndAddress: "Markt 1, Aachen"},
		{StartAddress: "Markt 1, Aachen", EndAddress: "NoSuchPlace12345XYZ"},
		{StartAddress: "", EndAddress: "Markt 1, Aachen"},
	} {
		res, err := f.service.Route(context.Background(), req)
		assert.Nil(t, res)
		require.Error(t, err)
		assert.ErrorIs(t, err, geocoding.ErrAddressNotFound)
		assert.Equal(t, util.ErrNotFound, errorCode(t, err))
	}

	var notFound *geocoding.AddressNotFoundError
	_, err := f.service.Route(context.Background(), RouteRequest{StartAddress: "Markt 1, Aachen", EndAddress: "NoSuchPlace12345XYZ"})
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "NoSuchPlace12345XYZ", notFound.Address)
	assert.Contains(t, err.Error(), "NoSuchPlace12345XYZ")

	assert.Equal(t, int32(0), f.engine.searches.Load(), "no path search after a failed resolution")
	assert.Equal(t, 4.0, testutil.ToFloat64(f.metrics.RouteRequests.WithLabelValues("address_not_found")))
}

func TestRouteNoPath(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.service.Route(context.Background(), RouteRequest{
		StartAddress: "Markt 1, Aachen",
		EndAddress:   "Lousberg, Aachen",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, routing.ErrNoPathFound)
	assert.Equal(t, util.ErrNotFound, errorCode(t, err))
	assert.Equal(t, msgPathNotFound, err.Error())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.RouteRequests.WithLabelValues("no_path")))
}

type blockingProvider struct{}

func (blockingProvider) Geocode(ctx context.Context, address string) ([]geocoding.Candidate, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestRouteResolutionTimeout(t *testing.T) {
	f := newFixture(t, blockingProvider{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.service.Route(ctx, RouteRequest{StartAddress: "Markt 1, Aachen", EndAddress: "Domhof 1, Aachen"})
	require.Error(t, err)
	assert.ErrorIs(t, err, geocoding.ErrResolutionTimeout)
	assert.Equal(t, util.ErrTimeout, errorCode(t, err))
	assert.Equal(t, int32(0), f.engine.searches.Load())
}

func TestRouteGraphUnavailable(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())
	unavailable := errors.New("road network graph is unavailable")
	source := EngineSourceFunc(func() (RoutingEngine, error) { return nil, unavailable })
	resolver := geocoding.NewResolver(geocoding.NewGazetteer(nil), "gazetteer", zap.NewNop(), m)
	service := NewRoutingService(zap.NewNop(), m, source, resolver, 0)

	_, err := service.Route(context.Background(), RouteRequest{StartAddress: "a", EndAddress: "b"})
	require.ErrorIs(t, err, unavailable)
	assert.Equal(t, util.ErrInternalServerError, errorCode(t, err))

	_, err = service.Network(context.Background())
	assert.ErrorIs(t, err, unavailable)
}

func TestRouteInvalidResolvedCoordinate(t *testing.T) {
	// the resolver already rejects out of range coordinates
	f := newFixture(t, geocoding.NewGazetteer(map[string]geo.Coordinate{
		"Nowhere": geo.NewCoordinate(123, 456),
		"Markt":   markt,
	}))

	_, err := f.service.Route(context.Background(), RouteRequest{StartAddress: "Nowhere", EndAddress: "Markt"})
	assert.ErrorIs(t, err, geocoding.ErrInvalidCoordinates)
	assert.Equal(t, util.ErrNotFound, errorCode(t, err))
}

func TestRouteSnapsToNearestVertex(t *testing.T) {
	f := newFixture(t, nil)

	// Null Island is far from Aachen, it still snaps to the closest vertex
	res, err := f.service.Route(context.Background(), RouteRequest{
		StartAddress: "Null Island",
		EndAddress:   "Domhof 1, Aachen",
	})
	require.NoError(t, err)
	assert.Equal(t, datastructure.Index(0), res.StartNode)
	assert.Equal(t, geo.NewCoordinate(0.0001, 0.0001), res.StartCoordinate)
	assert.Equal(t, markt, res.Markers[0].Location)
}

func TestNetwork(t *testing.T) {
	f := newFixture(t, nil)

	network, err := f.service.Network(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, network.NumVertices)
	assert.Len(t, network.Features.Features, 10)
}

func TestReachability(t *testing.T) {
	f := newFixture(t, nil)

	res, err := f.service.Reachability(context.Background(), "Markt 1, Aachen")
	require.NoError(t, err)
	assert.Equal(t, datastructure.Index(0), res.Node)
	assert.Equal(t, 6, res.NumVertices)
	assert.Equal(t, 5, res.NumReachable)
	assert.Equal(t, 5, res.MutuallyReachable)
	assert.Equal(t, datastructure.Index(4), res.MaxDistanceTo)
	assert.Equal(t, 120.0, res.MaxDistance)

	_, err = f.service.Reachability(context.Background(), "NoSuchPlace12345XYZ")
	assert.ErrorIs(t, err, geocoding.ErrAddressNotFound)
}
