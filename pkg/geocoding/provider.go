package geocoding

import (
	"context"

	"github.com/lintang-b-s/routefinder/pkg/geo"
)

// Candidate is one geocoder match for an address. Providers return candidates best match first.
type Candidate struct {
	Coordinate  geo.Coordinate
	DisplayName string
	Importance  float64 // provider ranking score, 0 when the provider has none
}

// Provider is an interface that defines a method for geocoding an address.
// Geocode returns the matches for address in provider ranking order. An empty slice with a nil error
// means the provider found nothing.
type Provider interface {
	Geocode(ctx context.Context, address string) ([]Candidate, error)
}
