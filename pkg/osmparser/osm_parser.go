package osmparser

import (
	"context"
	"errors"
	"fmt"

	da "github.com/lintang-b-s/routefinder/pkg/datastructure"
	"github.com/paulmach/osm"
	"go.uber.org/zap"
)

var ErrNoRoads = errors.New("osm data contains no roads of the requested network type")

// ScannerOpener. opens a fresh scanner over the same osm data, Parse reads the data twice.
type ScannerOpener func(ctx context.Context) (osm.Scanner, error)

type NodeCoord struct {
	lat float64
	lon float64
}

type osmWay struct {
	id       int64
	nodes    []int64
	forward  bool
	backward bool
	hwType   string
	name     string
}

type OsmParser struct {
	networkType     NetworkType
	logger          *zap.Logger
	ways            []osmWay
	wayNodes        map[int64]struct{}
	acceptedNodeMap map[int64]NodeCoord
	barrierNodes    map[int64]bool
}

func NewOSMParser(networkType NetworkType, logger *zap.Logger) *OsmParser {
	return &OsmParser{
		networkType:     networkType,
		logger:          logger,
		ways:            make([]osmWay, 0),
		wayNodes:        make(map[int64]struct{}),
		acceptedNodeMap: make(map[int64]NodeCoord),
		barrierNodes:    make(map[int64]bool),
	}
}

/*
Parse. builds the road network graph.

the first scan keeps the ways accepted by the network type, the second scan collects the coordinates
(and barriers) of the nodes those ways reference. so the result does not depend on the order of
objects in the data.
*/
func (p *OsmParser) Parse(ctx context.Context, open ScannerOpener) (*da.Graph, error) {
	if err := p.scanWays(ctx, open); err != nil {
		return nil, err
	}
	if len(p.ways) == 0 {
		return nil, ErrNoRoads
	}

	if err := p.scanNodes(ctx, open); err != nil {
		return nil, err
	}

	graph, err := p.BuildGraph()
	if err != nil {
		return nil, err
	}
	if graph.NumberOfEdges() == 0 {
		return nil, ErrNoRoads
	}

	p.logger.Info("road network graph built", zap.String("network_type", p.networkType.String()),
		zap.Int("vertices", graph.NumberOfVertices()), zap.Int("edges", graph.NumberOfEdges()))
	return graph, nil
}

func (p *OsmParser) scanWays(ctx context.Context, open ScannerOpener) error {
	scanner, err := open(ctx)
	if err != nil {
		return err
	}
	defer scanner.Close()

	countWays := 0
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok || len(way.Nodes) < 2 {
			continue
		}
		if !p.networkType.Accepts(way.Tags) {
			continue
		}

		if (countWays+1)%50000 == 0 {
			p.logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		forward, backward := wayDirection(way.Tags)
		nodes := make([]int64, len(way.Nodes))
		for i, n := range way.Nodes {
			nodes[i] = int64(n.ID)
			p.wayNodes[int64(n.ID)] = struct{}{}
		}
		p.ways = append(p.ways, osmWay{
			id:       int64(way.ID),
			nodes:    nodes,
			forward:  forward,
			backward: backward,
			hwType:   way.Tags.Find("highway"),
			name:     way.Tags.Find("name"),
		})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to scan osm ways: %w", err)
	}
	return nil
}

func (p *OsmParser) scanNodes(ctx context.Context, open ScannerOpener) error {
	scanner, err := open(ctx)
	if err != nil {
		return err
	}
	defer scanner.Close()

	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		id := int64(node.ID)
		if _, used := p.wayNodes[id]; !used {
			continue
		}

		p.acceptedNodeMap[id] = NodeCoord{lat: node.Lat, lon: node.Lon}

		barrierType := node.Tags.Find("barrier")
		if _, ok := acceptedBarrierType[barrierType]; ok && node.Tags.Find("access") == "no" {
			p.barrierNodes[id] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to scan osm nodes: %w", err)
	}
	return nil
}
