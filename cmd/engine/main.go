package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/routefinder/pkg/app"
	"github.com/lintang-b-s/routefinder/pkg/http"
	"github.com/lintang-b-s/routefinder/pkg/logger"
	"github.com/lintang-b-s/routefinder/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	useRateLimit = flag.Bool("rate_limit", true, "rate limit api requests per client ip")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := util.ReadConfig(); err != nil {
		logger.Fatal("failed to read config", zap.Error(err))
	}
	cfg, err := app.ConfigFromViper()
	if err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	routefinder, err := app.Build(ctx, cfg, logger, reg)
	if err != nil {
		logger.Fatal("failed to start routefinder", zap.Error(err))
	}
	defer routefinder.Close()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return http.NewServer(logger).Use(gCtx, *useRateLimit, routefinder.RoutingService, reg)
	})

	// SIGHUP reloads the road network from the data dir
	g.Go(func() error {
		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)
		for {
			select {
			case <-gCtx.Done():
				return nil
			case <-hup:
				logger.Info("reloading road network", zap.String("area", cfg.Area))
				if err := routefinder.Snapshot.Refresh(gCtx); err != nil {
					logger.Error("reload failed, keeping the current road network", zap.Error(err))
					continue
				}
				if eng, err := routefinder.Snapshot.Current(); err == nil {
					logger.Info("road network reloaded", zap.Int("vertices", eng.GetGraph().NumberOfVertices()),
						zap.Time("built_at", eng.GetBuiltAt()))
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("routefinder server stopped", zap.Error(err))
		return
	}
	logger.Info("routefinder server stopped")
}
