package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/sony/gobreaker"
)

// Kind classifies why an upstream call did not produce usable data.
type Kind int

const (
	KindUnexpected Kind = iota
	KindTimeout
	KindStatus
	KindNetwork
	KindNoData
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindStatus:
		return "http status"
	case KindNetwork:
		return "network"
	case KindNoData:
		return "no data"
	default:
		return "unexpected"
	}
}

// Error is returned by every Client call that fails. StatusCode is only set
// for KindStatus.
type Error struct {
	Kind       Kind
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindStatus:
		return fmt.Sprintf("%s: unexpected status code %d", e.URL, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.URL, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.URL, e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NoData reports a well-formed response that carried nothing to show.
func NoData(url string) *Error {
	return &Error{Kind: KindNoData, URL: url}
}

// KindOf returns the classification of err, or KindUnexpected when err did
// not come from this package.
func KindOf(err error) Kind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return KindUnexpected
}

// classify maps a transport-level failure onto a Kind. Errors that are
// already classified pass through untouched.
func classify(url string, err error) *Error {
	var ue *Error
	if errors.As(err, &ue) {
		return ue
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, URL: url, Err: err}
	}

	// An open breaker means the host is considered unreachable.
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &Error{Kind: KindNetwork, URL: url, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return &Error{Kind: KindTimeout, URL: url, Err: err}
		}
		return &Error{Kind: KindNetwork, URL: url, Err: err}
	}

	return &Error{Kind: KindUnexpected, URL: url, Err: err}
}
