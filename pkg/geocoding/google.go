package geocoding

import (
	"context"
	"fmt"

	"github.com/lintang-b-s/routefinder/pkg/geo"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// GoogleProvider geocodes with the Google Maps Geocoding API.
type GoogleProvider struct {
	client GoogleAPIClient
	log    *zap.Logger
}

type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

func NewGoogleProvider(client GoogleAPIClient, log *zap.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

func (gp *GoogleProvider) Geocode(ctx context.Context, address string) ([]Candidate, error) {
	req := maps.GeocodingRequest{Address: address}
	results, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}

	candidates := make([]Candidate, 0, len(results))
	for _, r := range results {
		loc := r.Geometry.Location
		candidates = append(candidates, Candidate{
			Coordinate:  geo.NewCoordinate(loc.Lat, loc.Lng),
			DisplayName: r.FormattedAddress,
		})
	}

	gp.log.Debug("Google geocoding done", zap.String("address", address), zap.Int("candidates", len(candidates)))
	return candidates, nil
}
