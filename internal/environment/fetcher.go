package environment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/i474232898/home-dashboard/internal/upstream"
)

// Fetcher reads the short-range forecast, the long-range outlook and the
// PM2.5 reading. Each source has its own client so one failing source never
// trips another's breaker.
type Fetcher struct {
	endpoints Endpoints
	forecast  *upstream.Client
	outlook   *upstream.Client
	pm25      *upstream.Client
}

// NewFetcher creates a Fetcher. timeout bounds each sub-fetch independently.
func NewFetcher(client *http.Client, endpoints Endpoints, timeout time.Duration, opts ...upstream.Option) *Fetcher {
	return &Fetcher{
		endpoints: endpoints,
		forecast:  upstream.New("forecast-2h", client, timeout, opts...),
		outlook:   upstream.New("forecast-24h", client, timeout, opts...),
		pm25:      upstream.New("pm25", client, timeout, opts...),
	}
}

// Fetch builds a Snapshot for area and the PM2.5 region. The three sub-fetches
// run in parallel and fail independently.
func (f *Fetcher) Fetch(ctx context.Context, area, pm25Region string) Snapshot {
	var (
		wg sync.WaitGroup
		r  readings
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		r.forecast, r.forecastErr = f.fetchForecast(ctx, area)
	}()
	go func() {
		defer wg.Done()
		r.ranges, r.rangesErr = f.fetchRanges(ctx)
	}()
	go func() {
		defer wg.Done()
		r.pm25, r.pm25Err = f.fetchPM25(ctx, pm25Region)
	}()
	wg.Wait()

	return merge(r)
}

// Upstream payloads are decoded object by object: a missing member reads as
// empty, while an explicit null where an object or list belongs is a failure.
type itemsPayload struct {
	Items []json.RawMessage `json:"items"`
}

type areaForecast struct {
	Area     string `json:"area"`
	Forecast string `json:"forecast"`
}

// fetchForecast returns the forecast text for area, or "" when the area is
// not listed.
func (f *Fetcher) fetchForecast(ctx context.Context, area string) (string, error) {
	var payload itemsPayload
	if err := f.forecast.GetJSON(ctx, f.endpoints.ShortForecast, nil, nil, &payload); err != nil {
		return "", err
	}
	if len(payload.Items) == 0 {
		return "", nil
	}

	item, err := object(payload.Items[0])
	if err != nil {
		return "", fmt.Errorf("items[0]: %w", err)
	}
	raw, ok := item["forecasts"]
	if !ok {
		return "", nil
	}
	if isNull(raw) {
		return "", fmt.Errorf("forecasts: expected a list, got null")
	}
	var forecasts []areaForecast
	if err := json.Unmarshal(raw, &forecasts); err != nil {
		return "", fmt.Errorf("forecasts: %w", err)
	}

	for _, fc := range forecasts {
		if strings.EqualFold(fc.Area, area) {
			return fc.Forecast, nil
		}
	}
	return "", nil
}

func (f *Fetcher) fetchRanges(ctx context.Context) (Ranges, error) {
	var payload itemsPayload
	if err := f.outlook.GetJSON(ctx, f.endpoints.LongForecast, nil, nil, &payload); err != nil {
		return Ranges{}, err
	}
	if len(payload.Items) == 0 {
		return Ranges{}, nil
	}

	item, err := object(payload.Items[0])
	if err != nil {
		return Ranges{}, fmt.Errorf("items[0]: %w", err)
	}
	general, err := object(item["general"])
	if err != nil {
		return Ranges{}, fmt.Errorf("general: %w", err)
	}
	temperature, err := object(general["temperature"])
	if err != nil {
		return Ranges{}, fmt.Errorf("temperature: %w", err)
	}
	humidity, err := object(general["relative_humidity"])
	if err != nil {
		return Ranges{}, fmt.Errorf("relative_humidity: %w", err)
	}

	var r Ranges
	if r.TempLow, err = intField(temperature, "low"); err != nil {
		return Ranges{}, err
	}
	if r.TempHigh, err = intField(temperature, "high"); err != nil {
		return Ranges{}, err
	}
	if r.HumidityLow, err = intField(humidity, "low"); err != nil {
		return Ranges{}, err
	}
	if r.HumidityHigh, err = intField(humidity, "high"); err != nil {
		return Ranges{}, err
	}
	return r, nil
}

// fetchPM25 returns the one-hour reading for region, or nil when the region
// is not reported.
func (f *Fetcher) fetchPM25(ctx context.Context, region string) (*int, error) {
	var payload itemsPayload
	if err := f.pm25.GetJSON(ctx, f.endpoints.PM25, nil, nil, &payload); err != nil {
		return nil, err
	}
	if len(payload.Items) == 0 {
		return nil, nil
	}

	item, err := object(payload.Items[0])
	if err != nil {
		return nil, fmt.Errorf("items[0]: %w", err)
	}
	readings, err := object(item["readings"])
	if err != nil {
		return nil, fmt.Errorf("readings: %w", err)
	}
	hourly, err := object(readings["pm25_one_hourly"])
	if err != nil {
		return nil, fmt.Errorf("pm25_one_hourly: %w", err)
	}

	raw, ok := hourly[region]
	if !ok || isNull(raw) {
		return nil, nil
	}
	v, err := coerceInt(raw)
	if err != nil {
		return nil, fmt.Errorf("pm25 reading for %s: %w", region, err)
	}
	return &v, nil
}
