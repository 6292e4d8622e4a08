package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lintang-b-s/routefinder/pkg/geo"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	nominatimBaseURL    = "https://nominatim.openstreetmap.org/search"
	nominatimMaxResults = 5
)

// NominatimProvider implements the Provider interface using OpenStreetMap's Nominatim API.
// Public Nominatim allows 1 request/second, requests wait on a limiter.
type NominatimProvider struct {
	client    HTTPClient
	baseURL   string
	log       *zap.Logger
	userAgent string // required by the nominatim usage policy
	limiter   *rate.Limiter
}

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type nominatimResponse struct {
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Importance  float64 `json:"importance"`
}

var ErrNominatimStatus = errors.New("nominatim API returned non-200 status")

type NominatimOption func(*NominatimProvider)

func WithHTTPClient(client HTTPClient) NominatimOption {
	return func(np *NominatimProvider) {
		np.client = client
	}
}

func WithBaseURL(baseURL string) NominatimOption {
	return func(np *NominatimProvider) {
		np.baseURL = baseURL
	}
}

// WithRateLimit. requests per second, <= 0 disables the limiter
func WithRateLimit(rps int) NominatimOption {
	return func(np *NominatimProvider) {
		if rps <= 0 {
			np.limiter = nil
			return
		}
		np.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

func NewNominatimProvider(userAgent string, log *zap.Logger, opts ...NominatimOption) *NominatimProvider {
	const timeout = 10
	np := &NominatimProvider{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL:   nominatimBaseURL,
		log:       log,
		userAgent: userAgent,
		limiter:   rate.NewLimiter(rate.Limit(1), 1),
	}
	for _, opt := range opts {
		opt(np)
	}
	return np
}

// Geocode. free-form search, at most nominatimMaxResults candidates in nominatim ranking order.
func (np *NominatimProvider) Geocode(ctx context.Context, address string) ([]Candidate, error) {
	if np.limiter != nil {
		if err := np.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("nominatim rate limiter: %w", err)
		}
	}

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", strconv.Itoa(nominatimMaxResults))
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", np.userAgent)

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		np.log.Warn("Nominatim API error", zap.Int("status", resp.StatusCode), zap.ByteString("body", body))
		return nil, fmt.Errorf("%w: %d", ErrNominatimStatus, resp.StatusCode)
	}

	var results []nominatimResponse
	if err = json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	candidates := make([]Candidate, 0, len(results))
	for _, r := range results {
		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid latitude %q", ErrInvalidCoordinates, r.Lat)
		}
		lon, err := strconv.ParseFloat(r.Lon, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid longitude %q", ErrInvalidCoordinates, r.Lon)
		}
		candidates = append(candidates, Candidate{
			Coordinate:  geo.NewCoordinate(lat, lon),
			DisplayName: r.DisplayName,
			Importance:  r.Importance,
		})
	}

	np.log.Debug("Nominatim geocoding done", zap.String("address", address), zap.Int("candidates", len(candidates)))
	return candidates, nil
}
