package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/home-dashboard/internal/dashboard"
)

// Builder produces a fresh view model.
type Builder interface {
	Build(ctx context.Context) dashboard.ViewModel
}

// Scheduler periodically probes every upstream and records which branches
// were degraded.
type Scheduler struct {
	scheduler *gocron.Scheduler
	builder   Builder
	store     dashboard.StatusStore
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. timeout bounds a single probe run.
func New(interval, timeout time.Duration, builder Builder, store dashboard.StatusStore) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		builder:   builder,
		store:     store,
		interval:  interval,
		timeout:   timeout,
	}
}

// Start schedules the probe job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: probe interval is zero; nothing to schedule")
		return nil
	}

	// A slow probe must not overlap the next one.
	s.scheduler.SingletonModeAll()

	_, err := s.scheduler.Every(s.interval).Do(s.Probe)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Probe runs one build and stores its report.
func (s *Scheduler) Probe() {
	log.Println("scheduler: running upstream probe")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	report := dashboard.NewProbeReport(s.builder.Build(ctx))
	s.store.SaveReport(report)

	if report.Healthy {
		log.Println("scheduler: completed upstream probe; all branches healthy")
		return
	}
	for _, f := range report.Failures {
		log.Printf("scheduler: probe %s: %s", report.ID, f)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
