package transit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/i474232898/home-dashboard/internal/upstream"
)

// Fetcher queries the bus arrival API for a single (stop, route) pair.
type Fetcher struct {
	client  *upstream.Client
	apiKey  string
	baseURL string
	now     func() time.Time
}

// NewFetcher creates a Fetcher. timeout bounds each call independently.
func NewFetcher(client *http.Client, apiKey, baseURL string, timeout time.Duration, opts ...upstream.Option) *Fetcher {
	return &Fetcher{
		client:  upstream.New("bus-arrival", client, timeout, opts...),
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// Slots are decoded one at a time so a malformed sibling never hides a
// usable one.
type arrivalPayload struct {
	Services []struct {
		NextBus  json.RawMessage `json:"NextBus"`
		NextBus2 json.RawMessage `json:"NextBus2"`
		NextBus3 json.RawMessage `json:"NextBus3"`
	} `json:"Services"`
}

// Fetch returns the upcoming arrivals for routeID at stopID. It never fails:
// problems are reported through the result's Error field.
func (f *Fetcher) Fetch(ctx context.Context, stopID, routeID string) ArrivalQueryResult {
	now := f.now().UTC()

	result := ArrivalQueryResult{
		StopID:    stopID,
		RouteID:   routeID,
		Arrivals:  []ArrivalRecord{},
		FetchedAt: now,
	}

	arrivals, err := f.fetch(ctx, stopID, routeID, now)
	if err != nil {
		msg := describe(err)
		result.Error = &msg
		return result
	}

	result.Arrivals = arrivals
	return result
}

func (f *Fetcher) fetch(ctx context.Context, stopID, routeID string, now time.Time) ([]ArrivalRecord, error) {
	endpoint := f.baseURL + "/BusArrival"

	values := url.Values{}
	values.Set("BusStopCode", stopID)
	values.Set("ServiceNo", routeID)

	header := http.Header{}
	header.Set("AccountKey", f.apiKey)
	header.Set("Accept", "application/json")

	var payload arrivalPayload
	if err := f.client.GetJSON(ctx, endpoint, values, header, &payload); err != nil {
		return nil, err
	}

	if len(payload.Services) == 0 {
		return nil, upstream.NoData(endpoint)
	}

	service := payload.Services[0]
	arrivals := make([]ArrivalRecord, 0, 3)
	for _, raw := range []json.RawMessage{service.NextBus, service.NextBus2, service.NextBus3} {
		slot, ok, err := decodeSlot(raw)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		rec, err := parseSlot(slot, now)
		if err != nil {
			return nil, err
		}
		if rec.HasData {
			arrivals = append(arrivals, rec)
		}
	}
	return arrivals, nil
}

// describe renders a fetch failure as the text shown in place of arrivals.
func describe(err error) string {
	switch upstream.KindOf(err) {
	case upstream.KindTimeout:
		return "API request timed out"
	case upstream.KindStatus:
		var ue *upstream.Error
		errors.As(err, &ue)
		return fmt.Sprintf("API returned HTTP %d", ue.StatusCode)
	case upstream.KindNetwork:
		return "Network error"
	case upstream.KindNoData:
		return "No service data. Bus may not be operating."
	default:
		return "Unexpected error"
	}
}
