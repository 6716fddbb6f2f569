package dashboard

import (
	"fmt"
	"time"

	"github.com/i474232898/home-dashboard/internal/environment"
	"github.com/i474232898/home-dashboard/internal/transit"
)

// Route is one configured (stop, route) pair.
type Route struct {
	StopID   string `json:"stopId"`
	RouteID  string `json:"routeId"`
	StopName string `json:"stopName"`
}

// Section pairs a configured route with its arrivals.
type Section struct {
	Route  Route                      `json:"route"`
	Result transit.ArrivalQueryResult `json:"result"`
}

// ViewModel is everything the page needs for one render.
type ViewModel struct {
	RequestID   string               `json:"requestId,omitempty"`
	GeneratedAt time.Time            `json:"generatedAt"` // always UTC
	Sections    []Section            `json:"bus"`
	Environment environment.Snapshot `json:"environment"`
}

// Failures describes every degraded branch, routes first in configured order.
func (v ViewModel) Failures() []string {
	var out []string
	for _, s := range v.Sections {
		if s.Result.Error != nil {
			out = append(out, fmt.Sprintf("bus %s at %s: %s", s.Route.RouteID, s.Route.StopID, *s.Result.Error))
		}
	}
	if v.Environment.Error != nil {
		out = append(out, "environment: "+*v.Environment.Error)
	}
	return out
}
