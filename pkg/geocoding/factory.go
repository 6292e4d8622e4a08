package geocoding

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/routefinder/pkg/geo"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

type ProviderType string

const (
	ProviderTypeGoogle    ProviderType = "google"
	ProviderTypeNominatim ProviderType = "nominatim"
	ProviderTypeGazetteer ProviderType = "gazetteer"
)

type ProviderConfig struct {
	Type      ProviderType
	APIKey    string // google only
	RateLimit int    // requests per second
	UserAgent string // nominatim only
	BaseURL   string // nominatim only, empty means the public instance
	Entries   map[string]geo.Coordinate
	Logger    *zap.Logger
}

// NewProvider creates a geocoding provider based on the provided configuration.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	case ProviderTypeNominatim:
		if config.UserAgent == "" {
			return nil, errors.New("user agent is required for Nominatim provider")
		}
		opts := []NominatimOption{WithRateLimit(config.RateLimit)}
		if config.BaseURL != "" {
			opts = append(opts, WithBaseURL(config.BaseURL))
		}
		return NewNominatimProvider(config.UserAgent, config.Logger, opts...), nil
	case ProviderTypeGazetteer:
		return NewGazetteer(config.Entries), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
	}
	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}
