// Package config defines the global configuration structure for the climate
// planner service. Configuration is loaded once at process initialization and
// is immutable thereafter. It follows 12-Factor App principles by strictly
// separating code from configuration.
//
// Values are resolved via a priority chain:
//
//	OS Environment (Highest) -> Dotenv File (Lowest)
//
// Any missing required value or invalid format causes the application to fail
// immediately on startup (fail fast).
package config

import (
	"time"

	"climateplanner/internal/types"
)

// SecretString is an alias for types.SecretString, the redacted secret type used
// throughout configuration to prevent accidental logging of sensitive values.
type SecretString = types.SecretString

// Config is the top-level configuration struct for the climate planner service.
// It is populated once during process initialization and never modified.
// Sub-components receive only the specific config subsets they require.
type Config struct {
	// System Metadata
	Environment string `envconfig:"APP_ENV" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"SERVICE_NAME" default:"climate-planner"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	IsTestMode  bool   `envconfig:"IS_TEST_MODE" default:"false"`

	// Domain Configurations
	Server   ServerConfig
	Database DatabaseConfig
	Weather  WeatherConfig
	Geocoder GeocoderConfig
	Security SecurityConfig
	Feature  FeatureConfig

	// Build Metadata (Injected via ldflags, not Env)
	Build BuildInfo
}

// ServerConfig holds HTTP server tuning parameters.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
}

// DatabaseConfig holds database connection and pool tuning parameters.
type DatabaseConfig struct {
	URL SecretString `envconfig:"DATABASE_URL" validate:"required,url"`

	// Tuning Parameters
	MaxConns          int           `envconfig:"DB_MAX_CONNS" default:"10"`
	MinConns          int           `envconfig:"DB_MIN_CONNS" default:"2"`
	MaxConnLifetime   time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"30m"`
	AcquireTimeout    time.Duration `envconfig:"DB_ACQUIRE_TIMEOUT" default:"2s"`     // Fail fast when pool exhausted
	HealthCheckPeriod time.Duration `envconfig:"DB_HEALTH_CHECK_PERIOD" default:"1m"` // Detect dead connections during failover
}

// WeatherConfig holds OpenWeather API credentials and tuning. The API key is
// optional: without one the service serves synthetic weather data only.
type WeatherConfig struct {
	OpenWeatherAPIKey SecretString  `envconfig:"OPENWEATHER_API_KEY"`
	BaseURL           string        `envconfig:"OPENWEATHER_BASE_URL"` // Override for testing (empty in prod)
	Timeout           time.Duration `envconfig:"OPENWEATHER_TIMEOUT" default:"10s"`
}

// GeocoderConfig holds Nominatim geocoding settings. Nominatim's usage policy
// requires an identifying User-Agent on every request.
type GeocoderConfig struct {
	UserAgent string        `envconfig:"NOMINATIM_USER_AGENT" default:"ClimatePlanner/1.0"`
	BaseURL   string        `envconfig:"NOMINATIM_BASE_URL"` // Override for testing (empty in prod)
	Timeout   time.Duration `envconfig:"NOMINATIM_TIMEOUT" default:"10s"`
}

// SecurityConfig holds CORS settings for browser clients.
type SecurityConfig struct {
	CorsAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// FeatureConfig holds emergency kill switches for system capabilities.
type FeatureConfig struct {
	EnableLiveWeather bool `envconfig:"FEATURE_ENABLE_LIVE_WEATHER" default:"true"`
	EnablePersistence bool `envconfig:"FEATURE_ENABLE_PERSISTENCE" default:"true"`
}

// BuildInfo holds build-time metadata injected via ldflags.
// These values are NOT populated from environment variables.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// ConfigErrorType categorizes configuration loading failures to aid debugging.
type ConfigErrorType string

const (
	// ErrMissingEnv indicates a required environment variable was not found.
	ErrMissingEnv ConfigErrorType = "MISSING_ENV"
	// ErrValidation indicates the configuration failed struct validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	// ErrParsing indicates a failure when parsing environment variable values
	// into their target types.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
)
