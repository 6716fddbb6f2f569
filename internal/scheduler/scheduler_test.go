package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/i474232898/home-dashboard/internal/dashboard"
	"github.com/i474232898/home-dashboard/internal/environment"
	"github.com/i474232898/home-dashboard/internal/store"
)

type fakeBuilder struct {
	vm       dashboard.ViewModel
	deadline bool
}

func (f *fakeBuilder) Build(ctx context.Context) dashboard.ViewModel {
	_, f.deadline = ctx.Deadline()
	return f.vm
}

func TestProbeStoresReport(t *testing.T) {
	errMsg := "Failed to fetch: temperature"
	builder := &fakeBuilder{vm: dashboard.ViewModel{
		GeneratedAt: time.Now().UTC(),
		Environment: environmentWithError(errMsg),
	}}
	mem := store.NewMemoryStore(10, time.Hour)

	s := New(time.Minute, 5*time.Second, builder, mem)
	s.Probe()

	if !builder.deadline {
		t.Fatalf("expected probe to run under a deadline")
	}
	report, err := mem.Latest()
	if err != nil {
		t.Fatalf("expected stored report, got %v", err)
	}
	if report.Healthy || len(report.Failures) != 1 || report.Failures[0] != "environment: "+errMsg {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestStartWithZeroIntervalIsNoop(t *testing.T) {
	mem := store.NewMemoryStore(10, time.Hour)
	s := New(0, time.Second, &fakeBuilder{}, mem)

	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()

	if _, err := mem.Latest(); err == nil {
		t.Fatalf("expected no probe to have run")
	}
}

func environmentWithError(msg string) (snap environment.Snapshot) {
	snap.Forecast = "N/A"
	snap.PM25Level = "N/A"
	snap.Error = &msg
	return snap
}
