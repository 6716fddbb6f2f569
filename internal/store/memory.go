package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/home-dashboard/internal/dashboard"
)

var (
	// ErrNotFound is returned when no probe has completed yet.
	ErrNotFound = errors.New("no probe reports recorded")
)

// MemoryStore is a concurrency-safe, bounded history of probe reports.
type MemoryStore struct {
	mu sync.RWMutex

	// oldest first
	reports []dashboard.ProbeReport

	// retention configuration
	maxHistory int           // max number of reports kept
	maxAge     time.Duration // optional max age for reports

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveReport appends a report and enforces retention.
func (s *MemoryStore) SaveReport(report dashboard.ProbeReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports = append(s.reports, report)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.reports) > s.maxHistory {
		over := len(s.reports) - s.maxHistory
		s.reports = append([]dashboard.ProbeReport(nil), s.reports[over:]...)
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.reports); i++ {
			if !s.reports[i].At.Before(cutoff) {
				break
			}
		}
		if i > 0 {
			s.reports = append([]dashboard.ProbeReport(nil), s.reports[i:]...)
		}
	}
}

// Latest returns the most recent report.
func (s *MemoryStore) Latest() (dashboard.ProbeReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.reports) == 0 {
		return dashboard.ProbeReport{}, ErrNotFound
	}
	return s.reports[len(s.reports)-1], nil
}

// All returns a copy of the retained reports, oldest first.
func (s *MemoryStore) All() ([]dashboard.ProbeReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.reports) == 0 {
		return nil, ErrNotFound
	}
	out := make([]dashboard.ProbeReport, len(s.reports))
	copy(out, s.reports)
	return out, nil
}
