package dashboard

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/i474232898/home-dashboard/internal/environment"
	"github.com/i474232898/home-dashboard/internal/transit"
)

// ArrivalsFetcher looks up arrivals for one (stop, route) pair.
type ArrivalsFetcher interface {
	Fetch(ctx context.Context, stopID, routeID string) transit.ArrivalQueryResult
}

// EnvironmentFetcher builds the weather and air-quality snapshot.
type EnvironmentFetcher interface {
	Fetch(ctx context.Context, area, pm25Region string) environment.Snapshot
}

// Settings selects what the dashboard shows.
type Settings struct {
	Routes     []Route
	Area       string
	PM25Region string
}

// Service fans out to every fetcher and assembles the view model.
type Service struct {
	arrivals    ArrivalsFetcher
	environment EnvironmentFetcher
	settings    Settings
	now         func() time.Time
}

// NewService creates a new Service.
func NewService(arrivals ArrivalsFetcher, env EnvironmentFetcher, settings Settings) *Service {
	return &Service{
		arrivals:    arrivals,
		environment: env,
		settings:    settings,
		now:         time.Now,
	}
}

// Build fetches every configured route and the environment snapshot
// concurrently and waits for all of them. Sections keep configured order.
func (s *Service) Build(ctx context.Context) ViewModel {
	var wg sync.WaitGroup

	sections := make([]Section, len(s.settings.Routes))
	for i, route := range s.settings.Routes {
		i, route := i, route
		wg.Add(1)
		go func() {
			defer wg.Done()

			res := s.arrivals.Fetch(ctx, route.StopID, route.RouteID)
			if res.Error != nil {
				log.Printf("dashboard: bus %s at %s degraded: %s", route.RouteID, route.StopID, *res.Error)
			}
			sections[i] = Section{Route: route, Result: res}
		}()
	}

	var snap environment.Snapshot
	wg.Add(1)
	go func() {
		defer wg.Done()

		snap = s.environment.Fetch(ctx, s.settings.Area, s.settings.PM25Region)
		if snap.Error != nil {
			log.Printf("dashboard: environment for %s degraded: %s", s.settings.Area, *snap.Error)
		}
	}()

	wg.Wait()

	return ViewModel{
		GeneratedAt: s.now().UTC(),
		Sections:    sections,
		Environment: snap,
	}
}
