package external

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"climateplanner/internal/types"
)

func newTestNominatimClient(t *testing.T, serverURL string) *NominatimClient {
	t.Helper()
	base := NewBaseClient(
		&http.Client{Timeout: 5 * time.Second},
		"test-nominatim",
		RetryPolicy{
			MaxRetries: 0,
			MinWait:    1 * time.Millisecond,
			MaxWait:    10 * time.Millisecond,
		},
		"ClimatePlanner-Test/1.0",
		WithSleepFunc(noopSleep),
	)

	return NewNominatimClientWithBase(base, NominatimClientConfig{
		BaseURL: serverURL,
	})
}

func TestNominatimGeocode_Success(t *testing.T) {
	var receivedQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("expected path /search, got %s", r.URL.Path)
		}
		receivedQuery = map[string]string{
			"q":      r.URL.Query().Get("q"),
			"format": r.URL.Query().Get("format"),
			"limit":  r.URL.Query().Get("limit"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"lat": "51.5074", "lon": "-0.1278", "display_name": "London, Greater London, England, United Kingdom"}
		]`))
	}))
	defer server.Close()

	client := newTestNominatimClient(t, server.URL)

	coords, err := client.Geocode(context.Background(), "London")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if receivedQuery["q"] != "London" {
		t.Errorf("expected q=London, got %s", receivedQuery["q"])
	}
	if receivedQuery["format"] != "json" || receivedQuery["limit"] != "1" {
		t.Errorf("unexpected query params: %v", receivedQuery)
	}

	if coords.Latitude != 51.5074 {
		t.Errorf("expected latitude 51.5074, got %v", coords.Latitude)
	}
	if coords.Longitude != -0.1278 {
		t.Errorf("expected longitude -0.1278, got %v", coords.Longitude)
	}
	if coords.DisplayName == "" {
		t.Error("expected display name to be populated")
	}
}

func TestNominatimGeocode_EmptyResultIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestNominatimClient(t, server.URL)

	_, err := client.Geocode(context.Background(), "Nowhereville Atlantis")
	if err == nil {
		t.Fatal("expected error for empty result, got nil")
	}

	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *types.AppError, got %T: %v", err, err)
	}
	if appErr.Code != types.ErrCodeNotFoundLocation {
		t.Errorf("expected error code %s, got %s", types.ErrCodeNotFoundLocation, appErr.Code)
	}
	if appErr.HTTPStatus() != http.StatusNotFound {
		t.Errorf("expected 404 mapping, got %d", appErr.HTTPStatus())
	}
}

func TestNominatimGeocode_UpstreamFailureMapsToGeocoderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestNominatimClient(t, server.URL)

	_, err := client.Geocode(context.Background(), "London")
	if err == nil {
		t.Fatal("expected error for upstream failure, got nil")
	}

	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *types.AppError, got %T: %v", err, err)
	}
	if appErr.Code != types.ErrCodeUpstreamGeocoder {
		t.Errorf("expected error code %s, got %s", types.ErrCodeUpstreamGeocoder, appErr.Code)
	}
}

func TestNominatimGeocode_MalformedCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat": "not-a-number", "lon": "-0.1278", "display_name": "x"}]`))
	}))
	defer server.Close()

	client := newTestNominatimClient(t, server.URL)

	_, err := client.Geocode(context.Background(), "London")
	if err == nil {
		t.Fatal("expected error for malformed coordinates, got nil")
	}

	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *types.AppError, got %T: %v", err, err)
	}
	if appErr.Code != types.ErrCodeUpstreamGeocoder {
		t.Errorf("expected error code %s, got %s", types.ErrCodeUpstreamGeocoder, appErr.Code)
	}
}
