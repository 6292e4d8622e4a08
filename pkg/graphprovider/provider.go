package graphprovider

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	da "github.com/lintang-b-s/routefinder/pkg/datastructure"
	"github.com/lintang-b-s/routefinder/pkg/metrics"
	"github.com/lintang-b-s/routefinder/pkg/osmparser"
	"github.com/lintang-b-s/routefinder/pkg/util"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/zap"
)

var ErrGraphUnavailable = errors.New("road network graph is unavailable")

type Provider interface {
	Graph(ctx context.Context, area string, networkType osmparser.NetworkType) (*da.Graph, error)
}

/*
OSMProvider. loads the road network of an area from <dataDir>/<area-slug>.osm.pbf (or .osm xml).

a parsed graph is written to <dataDir>/<area-slug>-<network>.graph and later loads read that snapshot
instead of the osm extract, until the extract is modified after the snapshot was written.
*/
type OSMProvider struct {
	dataDir string
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewOSMProvider(dataDir string, metrics *metrics.Metrics, logger *zap.Logger) *OSMProvider {
	return &OSMProvider{
		dataDir: dataDir,
		metrics: metrics,
		logger:  logger,
	}
}

func (p *OSMProvider) SnapshotPath(area string, networkType osmparser.NetworkType) string {
	return filepath.Join(p.dataDir, fmt.Sprintf("%s-%s.graph", util.Slugify(area), networkType))
}

func (p *OSMProvider) Graph(ctx context.Context, area string, networkType osmparser.NetworkType) (*da.Graph, error) {
	slug := util.Slugify(area)
	if slug == "" {
		return nil, fmt.Errorf("%w: empty area name", ErrGraphUnavailable)
	}

	snapshotPath := p.SnapshotPath(area, networkType)
	open, osmPath, extractModTime, osmErr := p.osmOpener(slug)

	// a snapshot older than its extract is stale
	if info, err := os.Stat(snapshotPath); err == nil {
		if osmErr != nil || info.ModTime().After(extractModTime) {
			graph, err := da.ReadGraph(snapshotPath)
			if err == nil {
				p.metrics.GraphLoads.WithLabelValues("snapshot").Inc()
				p.logger.Info("road network graph loaded from snapshot", zap.String("path", snapshotPath),
					zap.Int("vertices", graph.NumberOfVertices()), zap.Int("edges", graph.NumberOfEdges()))
				return graph, nil
			}
			p.logger.Warn("graph snapshot is unreadable, parsing osm data again", zap.String("path", snapshotPath),
				zap.Error(err))
		} else {
			p.logger.Info("osm extract is newer than graph snapshot", zap.String("path", osmPath),
				zap.String("snapshot", snapshotPath))
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		p.logger.Warn("graph snapshot is unreadable, parsing osm data again", zap.String("path", snapshotPath),
			zap.Error(err))
	}

	if osmErr != nil {
		return nil, fmt.Errorf("%w: area %q: %w", ErrGraphUnavailable, area, osmErr)
	}

	p.logger.Info("parsing openstreetmap data", zap.String("path", osmPath),
		zap.String("network_type", networkType.String()))
	graph, err := osmparser.NewOSMParser(networkType, p.logger).Parse(ctx, open)
	if err != nil {
		return nil, fmt.Errorf("%w: area %q: %w", ErrGraphUnavailable, area, err)
	}
	p.metrics.GraphLoads.WithLabelValues("osm").Inc()

	if err := graph.WriteGraph(snapshotPath); err != nil {
		p.logger.Warn("failed to write graph snapshot", zap.String("path", snapshotPath), zap.Error(err))
	}
	return graph, nil
}

func (p *OSMProvider) osmOpener(slug string) (osmparser.ScannerOpener, string, time.Time, error) {
	pbfPath := filepath.Join(p.dataDir, slug+".osm.pbf")
	if info, err := os.Stat(pbfPath); err == nil {
		return func(ctx context.Context) (osm.Scanner, error) {
			f, err := os.Open(pbfPath)
			if err != nil {
				return nil, err
			}
			return &fileScanner{Scanner: osmpbf.New(ctx, f, runtime.GOMAXPROCS(0)), f: f}, nil
		}, pbfPath, info.ModTime(), nil
	}

	xmlPath := filepath.Join(p.dataDir, slug+".osm")
	info, err := os.Stat(xmlPath)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("no osm extract at %s or %s: %w", pbfPath, xmlPath, err)
	}
	return func(ctx context.Context) (osm.Scanner, error) {
		f, err := os.Open(xmlPath)
		if err != nil {
			return nil, err
		}
		return &fileScanner{Scanner: osmxml.New(ctx, f), f: f}, nil
	}, xmlPath, info.ModTime(), nil
}

// fileScanner. closes the underlying file together with the scanner
type fileScanner struct {
	osm.Scanner
	f *os.File
}

func (s *fileScanner) Close() error {
	err := s.Scanner.Close()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}
