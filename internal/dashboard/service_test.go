package dashboard

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/i474232898/home-dashboard/internal/environment"
	"github.com/i474232898/home-dashboard/internal/transit"
)

type fakeArrivals struct {
	delay map[string]time.Duration
	fail  map[string]string
	calls int32
}

func (f *fakeArrivals) Fetch(ctx context.Context, stopID, routeID string) transit.ArrivalQueryResult {
	atomic.AddInt32(&f.calls, 1)
	time.Sleep(f.delay[routeID])

	res := transit.ArrivalQueryResult{StopID: stopID, RouteID: routeID, Arrivals: []transit.ArrivalRecord{}}
	if msg, ok := f.fail[routeID]; ok {
		res.Error = &msg
		return res
	}
	minutes := 4
	res.Arrivals = append(res.Arrivals, transit.ArrivalRecord{MinutesAway: &minutes, HasData: true})
	return res
}

type fakeEnvironment struct {
	area, region string
	err          string
}

func (f *fakeEnvironment) Fetch(ctx context.Context, area, pm25Region string) environment.Snapshot {
	f.area, f.region = area, pm25Region
	snap := environment.Snapshot{Forecast: "Cloudy", PM25Level: "N/A"}
	if f.err != "" {
		snap.Error = &f.err
	}
	return snap
}

func TestBuildKeepsConfiguredOrder(t *testing.T) {
	arrivals := &fakeArrivals{delay: map[string]time.Duration{"34": 30 * time.Millisecond}}
	env := &fakeEnvironment{}
	svc := NewService(arrivals, env, Settings{
		Routes: []Route{
			{StopID: "65629", RouteID: "34", StopName: "Samudera Stn Exit A"},
			{StopID: "65651", RouteID: "104", StopName: "Blk 413C"},
		},
		Area:       "Punggol",
		PM25Region: "north",
	})

	vm := svc.Build(context.Background())

	if len(vm.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(vm.Sections))
	}
	if vm.Sections[0].Route.RouteID != "34" || vm.Sections[1].Route.RouteID != "104" {
		t.Fatalf("expected configured order, got %s, %s", vm.Sections[0].Route.RouteID, vm.Sections[1].Route.RouteID)
	}
	if vm.Sections[0].Result.StopID != "65629" {
		t.Fatalf("expected result paired with its route, got %s", vm.Sections[0].Result.StopID)
	}
	if env.area != "Punggol" || env.region != "north" {
		t.Fatalf("expected environment fetched for Punggol/north, got %s/%s", env.area, env.region)
	}
	if vm.Environment.Forecast != "Cloudy" {
		t.Fatalf("expected environment snapshot, got %+v", vm.Environment)
	}
	if got := atomic.LoadInt32(&arrivals.calls); got != 2 {
		t.Fatalf("expected 2 arrival calls, got %d", got)
	}
	if len(vm.Failures()) != 0 {
		t.Fatalf("expected no failures, got %v", vm.Failures())
	}
}

func TestBuildRunsBranchesConcurrently(t *testing.T) {
	arrivals := &fakeArrivals{delay: map[string]time.Duration{
		"1": 100 * time.Millisecond,
		"2": 100 * time.Millisecond,
		"3": 100 * time.Millisecond,
	}}
	svc := NewService(arrivals, &fakeEnvironment{}, Settings{
		Routes: []Route{{StopID: "a", RouteID: "1"}, {StopID: "b", RouteID: "2"}, {StopID: "c", RouteID: "3"}},
	})

	start := time.Now()
	svc.Build(context.Background())
	if elapsed := time.Since(start); elapsed >= 250*time.Millisecond {
		t.Fatalf("expected parallel fetches, took %v", elapsed)
	}
}

func TestBuildIsolatesFailures(t *testing.T) {
	arrivals := &fakeArrivals{fail: map[string]string{"104": "API request timed out"}}
	svc := NewService(arrivals, &fakeEnvironment{err: "Failed to fetch: PM2.5"}, Settings{
		Routes: []Route{{StopID: "65629", RouteID: "34"}, {StopID: "65651", RouteID: "104"}},
	})

	vm := svc.Build(context.Background())

	if vm.Sections[0].Result.Error != nil || len(vm.Sections[0].Result.Arrivals) != 1 {
		t.Fatalf("expected healthy first route, got %+v", vm.Sections[0].Result)
	}
	if vm.Sections[1].Result.Error == nil {
		t.Fatalf("expected second route to carry its error")
	}

	want := []string{
		"bus 104 at 65651: API request timed out",
		"environment: Failed to fetch: PM2.5",
	}
	got := vm.Failures()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("failure %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestNewProbeReport(t *testing.T) {
	msg := "Network error"
	vm := ViewModel{
		GeneratedAt: time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC),
		Sections: []Section{{
			Route:  Route{StopID: "65629", RouteID: "34"},
			Result: transit.ArrivalQueryResult{Error: &msg},
		}},
	}

	report := NewProbeReport(vm)

	if report.ID == "" {
		t.Fatalf("expected report id")
	}
	if report.Healthy {
		t.Fatalf("expected unhealthy report")
	}
	if !report.At.Equal(vm.GeneratedAt) {
		t.Fatalf("expected report time %v, got %v", vm.GeneratedAt, report.At)
	}
	if len(report.Failures) != 1 || report.Failures[0] != "bus 34 at 65629: Network error" {
		t.Fatalf("unexpected failures %v", report.Failures)
	}
}
