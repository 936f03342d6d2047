package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"climateplanner/internal/types"
)

// openWeatherAPIBase is the default OpenWeather API base URL.
// Overridable in tests via OpenWeatherClientConfig.BaseURL.
const openWeatherAPIBase = "https://api.openweathermap.org/data/2.5"

// OpenWeatherClientConfig holds the configuration for creating an
// OpenWeatherClient.
type OpenWeatherClientConfig struct {
	APIKey  types.SecretString
	BaseURL string // Override for testing; defaults to openWeatherAPIBase
	Logger  *slog.Logger
}

// owWeatherResponse mirrors the subset of the /weather payload we consume.
type owWeatherResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
		Pressure  float64 `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
}

// owForecastResponse mirrors the subset of the /forecast payload we consume.
type owForecastResponse struct {
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Pop float64 `json:"pop"`
	} `json:"list"`
}

// OpenWeatherClient fetches current conditions and forecasts from the
// OpenWeather REST API through BaseClient, so every call inherits the circuit
// breaker and retry behavior.
type OpenWeatherClient struct {
	base    *BaseClient
	apiKey  types.SecretString
	baseURL string
	logger  *slog.Logger
}

// NewOpenWeatherClient creates an OpenWeatherClient. The httpClient timeout
// should be short; weather lookups sit on the request path.
func NewOpenWeatherClient(httpClient *http.Client, cfg OpenWeatherClientConfig) *OpenWeatherClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openWeatherAPIBase
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	base := NewBaseClient(
		httpClient,
		"openweather",
		RetryPolicy{
			MaxRetries: 2,
			MinWait:    250 * time.Millisecond,
			MaxWait:    2 * time.Second,
		},
		"ClimatePlanner/1.0",
	)

	return &OpenWeatherClient{
		base:    base,
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// NewOpenWeatherClientWithBase creates an OpenWeatherClient with a
// pre-configured BaseClient, e.g. to disable retries in tests.
func NewOpenWeatherClientWithBase(base *BaseClient, cfg OpenWeatherClientConfig) *OpenWeatherClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openWeatherAPIBase
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &OpenWeatherClient{
		base:    base,
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// CurrentWeather fetches current conditions for a coordinate in metric units.
func (c *OpenWeatherClient) CurrentWeather(ctx context.Context, lat, lon float64) (*types.ClimateFeatures, error) {
	q := url.Values{}
	q.Set("lat", formatCoord(lat))
	q.Set("lon", formatCoord(lon))
	q.Set("appid", c.apiKey.Unmask())
	q.Set("units", "metric")

	var payload owWeatherResponse
	if err := c.getJSON(ctx, "/weather", q, &payload); err != nil {
		return nil, err
	}

	features := &types.ClimateFeatures{
		Temperature: &payload.Main.Temp,
		FeelsLike:   &payload.Main.FeelsLike,
		Humidity:    &payload.Main.Humidity,
		Pressure:    &payload.Main.Pressure,
		WindSpeed:   &payload.Wind.Speed,
		Clouds:      &payload.Clouds.All,
	}
	if len(payload.Weather) > 0 {
		features.Weather = payload.Weather[0].Description
	}
	return features, nil
}

// Forecast fetches the 3-hourly forecast covering the requested days
// (8 entries per day).
func (c *OpenWeatherClient) Forecast(ctx context.Context, lat, lon float64, days int) ([]types.ForecastEntry, error) {
	q := url.Values{}
	q.Set("lat", formatCoord(lat))
	q.Set("lon", formatCoord(lon))
	q.Set("appid", c.apiKey.Unmask())
	q.Set("units", "metric")
	q.Set("cnt", strconv.Itoa(days*8))

	var payload owForecastResponse
	if err := c.getJSON(ctx, "/forecast", q, &payload); err != nil {
		return nil, err
	}

	entries := make([]types.ForecastEntry, 0, len(payload.List))
	for _, item := range payload.List {
		entry := types.ForecastEntry{
			Datetime:             item.DtTxt,
			Temperature:          item.Main.Temp,
			Humidity:             item.Main.Humidity,
			PrecipitationProbPct: item.Pop * 100,
		}
		if len(item.Weather) > 0 {
			entry.Weather = item.Weather[0].Description
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (c *OpenWeatherClient) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	reqURL := c.baseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalUnexpected, "failed to build weather request", err)
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return types.NewAppError(types.ErrCodeUpstreamWeather, "weather provider unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.WarnContext(ctx, "openweather returned non-200",
			"status", resp.StatusCode,
			"path", path,
			"body", string(body),
		)
		return types.NewAppError(
			types.ErrCodeUpstreamWeather,
			fmt.Sprintf("weather provider returned status %d", resp.StatusCode),
			nil,
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return types.NewAppError(types.ErrCodeUpstreamWeather, "failed to decode weather response", err)
	}
	return nil
}

// formatCoord renders a coordinate without scientific notation and without
// trailing zeros.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
