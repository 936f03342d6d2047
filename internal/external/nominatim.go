package external

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"climateplanner/internal/types"
)

// nominatimAPIBase is the default Nominatim API base URL.
// Overridable in tests via NominatimClientConfig.BaseURL.
const nominatimAPIBase = "https://nominatim.openstreetmap.org"

// NominatimClientConfig holds the configuration for creating a
// NominatimClient. Nominatim's usage policy requires an identifying
// User-Agent, so UserAgent has no library default here.
type NominatimClientConfig struct {
	UserAgent string
	BaseURL   string // Override for testing; defaults to nominatimAPIBase
	Logger    *slog.Logger
}

// nominatimResult is one entry of the /search response.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Coordinates is a resolved geocoding result.
type Coordinates struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
}

// NominatimClient resolves free-form place names to coordinates via the
// OpenStreetMap Nominatim API.
type NominatimClient struct {
	base    *BaseClient
	baseURL string
	logger  *slog.Logger
}

// NewNominatimClient creates a NominatimClient. Nominatim rate-limits
// aggressively, so the retry policy stays conservative.
func NewNominatimClient(httpClient *http.Client, cfg NominatimClientConfig) *NominatimClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = nominatimAPIBase
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "ClimatePlanner/1.0"
	}

	base := NewBaseClient(
		httpClient,
		"nominatim",
		RetryPolicy{
			MaxRetries: 1,
			MinWait:    time.Second,
			MaxWait:    5 * time.Second,
		},
		userAgent,
	)

	return &NominatimClient{
		base:    base,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// NewNominatimClientWithBase creates a NominatimClient with a pre-configured
// BaseClient.
func NewNominatimClientWithBase(base *BaseClient, cfg NominatimClientConfig) *NominatimClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = nominatimAPIBase
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &NominatimClient{
		base:    base,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// Geocode resolves a place name to coordinates. An empty result set maps to
// ErrCodeNotFoundLocation so handlers can answer 404 rather than 502.
func (c *NominatimClient) Geocode(ctx context.Context, location string) (*Coordinates, error) {
	q := url.Values{}
	q.Set("q", location)
	q.Set("format", "json")
	q.Set("limit", "1")

	reqURL := c.baseURL + "/search?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalUnexpected, "failed to build geocode request", err)
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeUpstreamGeocoder, "geocoder unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, types.NewAppError(
			types.ErrCodeUpstreamGeocoder,
			fmt.Sprintf("geocoder returned status %d", resp.StatusCode),
			nil,
		)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, types.NewAppError(types.ErrCodeUpstreamGeocoder, "failed to decode geocoder response", err)
	}

	if len(results) == 0 {
		return nil, types.NewAppError(
			types.ErrCodeNotFoundLocation,
			fmt.Sprintf("location not found: %s", location),
			nil,
		)
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return nil, types.NewAppError(types.ErrCodeUpstreamGeocoder, "geocoder returned malformed coordinates", nil)
	}

	return &Coordinates{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: results[0].DisplayName,
	}, nil
}
