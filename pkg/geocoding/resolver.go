package geocoding

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lintang-b-s/routefinder/pkg/geo"
	"github.com/lintang-b-s/routefinder/pkg/metrics"
	"go.uber.org/zap"
)

// Cache stores resolved addresses. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, address string) (*geo.Coordinate, bool, error)
	Put(ctx context.Context, address string, coord geo.Coordinate) error
}

/*
Resolver turns an address into a coordinate through a Provider.

every failure is reported as *AddressNotFoundError, except a resolution that runs past the deadline
(the caller's or the resolver's own timeout), which is reported as ErrResolutionTimeout.
the resolver does not retry. when the provider returns several matches the top ranked one is used.
*/
type Resolver struct {
	provider     Provider
	providerName string
	cache        Cache
	timeout      time.Duration
	log          *zap.Logger
	metrics      *metrics.Metrics
}

type ResolverOption func(*Resolver)

func WithCache(cache Cache) ResolverOption {
	return func(r *Resolver) {
		r.cache = cache
	}
}

// WithTimeout. upper bound of one resolution, 0 means only the caller's deadline applies
func WithTimeout(timeout time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.timeout = timeout
	}
}

func NewResolver(provider Provider, providerName string, log *zap.Logger, m *metrics.Metrics,
	opts ...ResolverOption) *Resolver {
	r := &Resolver{
		provider:     provider,
		providerName: providerName,
		log:          log,
		metrics:      m,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type geocodeResult struct {
	candidates []Candidate
	err        error
}

func (r *Resolver) Resolve(ctx context.Context, address string) (*geo.Coordinate, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, r.notFound(address, ErrEmptyAddress, "empty")
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	key := normalizeAddress(address)
	if r.cache != nil {
		coord, ok, err := r.cache.Get(ctx, key)
		if err != nil {
			r.log.Warn("geocode cache lookup failed", zap.String("address", address), zap.Error(err))
		} else if ok {
			r.log.Debug("geocode cache hit", zap.String("address", address))
			return coord, nil
		}
	}

	start := time.Now()
	resCh := make(chan geocodeResult, 1)
	go func() {
		candidates, err := r.provider.Geocode(ctx, address)
		resCh <- geocodeResult{candidates: candidates, err: err}
	}()

	var res geocodeResult
	select {
	case res = <-resCh:
	case <-ctx.Done():
		res = geocodeResult{err: ctx.Err()}
	}
	r.metrics.GeocodeSeconds.WithLabelValues(r.providerName).Observe(time.Since(start).Seconds())

	if res.err != nil {
		if errors.Is(res.err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			r.metrics.GeocodeErrors.WithLabelValues("timeout").Inc()
			r.log.Warn("geocoding timed out", zap.String("address", address),
				zap.Duration("elapsed", time.Since(start)))
			return nil, ErrResolutionTimeout
		}
		return nil, r.notFound(address, res.err, "provider_error")
	}

	if len(res.candidates) == 0 {
		return nil, r.notFound(address, ErrNoMatch, "no_match")
	}
	if len(res.candidates) > 1 {
		r.log.Debug("ambiguous address, using the top ranked match",
			zap.String("address", address), zap.Int("candidates", len(res.candidates)),
			zap.String("match", res.candidates[0].DisplayName))
	}

	best := res.candidates[0].Coordinate
	if !best.Valid() {
		return nil, r.notFound(address, ErrInvalidCoordinates, "invalid_coordinates")
	}

	if r.cache != nil {
		if err := r.cache.Put(ctx, key, best); err != nil {
			r.log.Warn("geocode cache store failed", zap.String("address", address), zap.Error(err))
		}
	}

	return &best, nil
}

func (r *Resolver) notFound(address string, reason error, label string) error {
	r.metrics.GeocodeErrors.WithLabelValues(label).Inc()
	r.log.Info("address not found", zap.String("address", address), zap.Error(reason))
	return &AddressNotFoundError{Address: address, Reason: reason}
}
