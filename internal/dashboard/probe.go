package dashboard

import (
	"time"

	"github.com/google/uuid"
)

// ProbeReport records which branches were degraded in one background build.
type ProbeReport struct {
	ID       string    `json:"id"`
	At       time.Time `json:"at"` // always UTC
	Healthy  bool      `json:"healthy"`
	Failures []string  `json:"failures,omitempty"`
}

// NewProbeReport summarizes a view model. It keeps no upstream data.
func NewProbeReport(vm ViewModel) ProbeReport {
	failures := vm.Failures()
	return ProbeReport{
		ID:       uuid.NewString(),
		At:       vm.GeneratedAt,
		Healthy:  len(failures) == 0,
		Failures: failures,
	}
}

// StatusStore keeps recent probe reports.
type StatusStore interface {
	SaveReport(report ProbeReport)
	Latest() (ProbeReport, error)
	All() ([]ProbeReport, error)
}
