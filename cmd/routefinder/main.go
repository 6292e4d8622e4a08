package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/lintang-b-s/routefinder/pkg/app"
	"github.com/lintang-b-s/routefinder/pkg/http/usecases"
	"github.com/lintang-b-s/routefinder/pkg/logger"
	"github.com/lintang-b-s/routefinder/pkg/projection"
	"github.com/lintang-b-s/routefinder/pkg/util"
	geojson "github.com/paulmach/go.geojson"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var (
	startAddress   = flag.String("start", "", "start address")
	endAddress     = flag.String("end", "", "end address")
	mapStyle       = flag.String("style", "Default", "map style: Satellite, OpenStreetMap, Terrain or Default")
	geojsonOut     = flag.String("geojson", "", "write the route, markers and (with -network) the road network to this geojson file")
	includeNetwork = flag.Bool("network", false, "include the whole road network in the geojson output")
	reachable      = flag.Bool("reachable", false, "report how much of the road network is reachable from -start")
	area           = flag.String("area", "", "area to load, overrides AREA from the config")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Error("routefinder failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(logger *zap.Logger) error {
	if err := util.ReadConfig(); err != nil {
		return err
	}
	cfg, err := app.ConfigFromViper()
	if err != nil {
		return err
	}
	if *area != "" {
		cfg.Area = *area
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	routefinder, err := app.Build(ctx, cfg, logger, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	defer routefinder.Close()

	if *reachable {
		res, err := routefinder.RoutingService.Reachability(ctx, *startAddress)
		if err != nil {
			return err
		}
		fmt.Printf("%d of %d vertices reachable from %q (%d can drive back), farthest is vertex %d at %.1f m\n",
			res.NumReachable, res.NumVertices, res.Address, res.MutuallyReachable, res.MaxDistanceTo, res.MaxDistance)
		return nil
	}

	if *startAddress == "" || *endAddress == "" {
		flag.Usage()
		return errors.New("-start and -end are required")
	}

	res, err := routefinder.RoutingService.Route(ctx, usecases.RouteRequest{
		StartAddress:   *startAddress,
		EndAddress:     *endAddress,
		MapStyle:       projection.ParseMapStyle(*mapStyle),
		IncludeNetwork: *includeNetwork,
	})
	if err != nil {
		return err
	}

	fmt.Printf("route %q -> %q: %.1f m over %d vertices\n", res.StartAddress, res.EndAddress,
		res.Route.Length, len(res.Route.Coordinates))
	fmt.Printf("center %.6f,%.6f zoom %d, tiles %s\n", res.Route.Center.Lat, res.Route.Center.Lon,
		res.Route.Zoom, res.Tiles.URL)
	fmt.Printf("polyline %s\n", res.Route.Polyline)
	for i, d := range res.Directions {
		fmt.Printf("%3d. %s (%.0f m)\n", i+1, d.Instruction, d.Distance)
	}

	if *geojsonOut != "" {
		return writeGeoJSON(*geojsonOut, res)
	}
	return nil
}

func writeGeoJSON(filename string, res *usecases.RouteResult) error {
	fc := geojson.NewFeatureCollection()
	if res.Network != nil {
		for _, f := range res.Network.Features.Features {
			fc.AddFeature(f)
		}
	}
	fc.AddFeature(res.Route.Feature)
	for _, f := range projection.MarkersFeatureCollection(res.Markers).Features {
		fc.AddFeature(f)
	}
	b := res.Route.Bounds
	fc.BoundingBox = []float64{b.Min.Lon, b.Min.Lat, b.Max.Lon, b.Max.Lat}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}
