package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/home-dashboard/internal/environment"
)

const defaultBusServices = `[
	{"stop_code": "65629", "service_no": "34", "stop_name": "Samudera Stn Exit A"},
	{"stop_code": "65651", "service_no": "104", "stop_name": "Blk 413C"}
]`

var validate = validator.New()

// BusService is one (stop, route) pair shown on the dashboard.
type BusService struct {
	StopCode  string `json:"stop_code" validate:"required"`
	ServiceNo string `json:"service_no" validate:"required"`
	StopName  string `json:"stop_name"`
}

type AppConfig struct {
	LTAAPIKey      string       `validate:"required"`
	LTAAPIBaseURL  string       `validate:"required,url"`
	BusServices    []BusService `validate:"required,min=1,dive"`
	WeatherArea    string       `validate:"required"`
	PM25Region     string       `validate:"required"`
	EnvironmentURL string       `validate:"required,url"`

	// HTTPTimeout bounds each upstream call on its own.
	HTTPTimeout time.Duration `validate:"gt=0"`

	// RefreshSeconds is how often the rendered page reloads itself.
	RefreshSeconds int `validate:"gt=0"`

	// Upstream probe and its status history.
	ProbeInterval    time.Duration `validate:"gte=0"`
	StatusMaxHistory int           // max number of probe reports kept (0 = unlimited)
	StatusMaxAge     time.Duration // max age of probe reports (0 = unlimited)

	// BreakerFailures opens an upstream's breaker after that many consecutive
	// failures (0 = disabled).
	BreakerFailures uint32

	Host string
	Port string `validate:"required,numeric"`
}

// Addr is the listen address for the HTTP server.
func (c *AppConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// Load reads configuration from the environment with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	key, err := fromEnvironment("LTA_API_KEY")
	if err != nil {
		return nil, err
	}
	cfg.LTAAPIKey = key

	cfg.LTAAPIBaseURL = strings.TrimRight(
		getenvDefault("LTA_API_BASE_URL", "https://datamall2.mytransport.sg/ltaodataservice/v3"), "/")
	cfg.EnvironmentURL = strings.TrimRight(
		getenvDefault("ENVIRONMENT_API_BASE_URL", environment.DefaultBaseURL), "/")

	services, err := parseBusServices(getenvDefault("BUS_SERVICES", defaultBusServices))
	if err != nil {
		return nil, err
	}
	cfg.BusServices = services

	cfg.WeatherArea = getenvDefault("WEATHER_AREA", "Punggol")
	cfg.PM25Region = getenvDefault("PM25_REGION", "north")

	timeout, err := strconv.ParseFloat(getenvDefault("HTTP_TIMEOUT_SECONDS", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT_SECONDS: %w", err)
	}
	cfg.HTTPTimeout = time.Duration(timeout * float64(time.Second))

	refresh, err := strconv.Atoi(getenvDefault("REFRESH_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_SECONDS: %w", err)
	}
	cfg.RefreshSeconds = refresh

	// Probe interval: default 15 minutes, 0 disables.
	cfg.ProbeInterval, err = time.ParseDuration(getenvDefault("PROBE_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROBE_INTERVAL: %w", err)
	}

	cfg.StatusMaxHistory = getenvInt("STATUS_MAX_HISTORY", 96) // roughly 24h at 15-minute intervals

	cfg.StatusMaxAge, err = time.ParseDuration(getenvDefault("STATUS_MAX_AGE", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATUS_MAX_AGE: %w", err)
	}

	failures := getenvInt("BREAKER_FAILURES", 0)
	if failures < 0 {
		return nil, fmt.Errorf("invalid BREAKER_FAILURES: must not be negative")
	}
	cfg.BreakerFailures = uint32(failures)

	cfg.Host = getenvDefault("HOST", "0.0.0.0")
	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func parseBusServices(raw string) ([]BusService, error) {
	var services []BusService
	if err := json.Unmarshal([]byte(raw), &services); err != nil {
		return nil, fmt.Errorf("invalid BUS_SERVICES: %w", err)
	}
	if len(services) == 0 {
		return nil, fmt.Errorf("BUS_SERVICES must contain at least one service")
	}
	return services, nil
}

// MissingEnvironmentKey is returned when a required variable is unset.
type MissingEnvironmentKey string

func (k MissingEnvironmentKey) Error() string {
	return fmt.Sprintf("%s environment variable is required", string(k))
}

// fromEnvironment reads key, falling back to the file named by key_FILE.
func fromEnvironment(key string) (string, error) {
	value := os.Getenv(key)
	path := os.Getenv(key + "_FILE")
	if value == "" && path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		value = string(content)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return "", MissingEnvironmentKey(key)
	}
	return value, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
