package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetJSONDecodesBodyAndForwardsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("stop"); got != "65629" {
			t.Errorf("expected stop query 65629, got %q", got)
		}
		if got := r.Header.Get("AccountKey"); got != "secret" {
			t.Errorf("expected AccountKey header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"value": 42}`))
	}))
	defer srv.Close()

	c := New("test", srv.Client(), time.Second)

	var out struct {
		Value int `json:"value"`
	}
	header := http.Header{}
	header.Set("AccountKey", "secret")
	err := c.GetJSON(context.Background(), srv.URL, url.Values{"stop": {"65629"}}, header, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Value != 42 {
		t.Fatalf("expected 42, got %d", out.Value)
	}
}

func TestGetJSONClassifiesFailures(t *testing.T) {
	statusSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer statusSrv.Close()

	slowSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer slowSrv.Close()

	badSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer badSrv.Close()

	redirectSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/moved" {
			w.Write([]byte(`{}`))
			return
		}
		http.Redirect(w, r, "/moved", http.StatusFound)
	}))
	defer redirectSrv.Close()

	closedSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closedURL := closedSrv.URL
	closedSrv.Close()

	tests := []struct {
		name   string
		url    string
		kind   Kind
		status int
	}{
		{name: "status", url: statusSrv.URL, kind: KindStatus, status: http.StatusServiceUnavailable},
		{name: "redirect", url: redirectSrv.URL, kind: KindStatus, status: http.StatusFound},
		{name: "timeout", url: slowSrv.URL, kind: KindTimeout},
		{name: "malformed body", url: badSrv.URL, kind: KindUnexpected},
		{name: "connection refused", url: closedURL, kind: KindNetwork},
	}

	c := New("test", &http.Client{}, 50*time.Millisecond)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out map[string]any
			err := c.GetJSON(context.Background(), tt.url, nil, nil, &out)
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			var ue *Error
			if !errors.As(err, &ue) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if ue.Kind != tt.kind {
				t.Fatalf("expected kind %s, got %s (%v)", tt.kind, ue.Kind, err)
			}
			if ue.StatusCode != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, ue.StatusCode)
			}
		})
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New("flaky", srv.Client(), time.Second, WithBreaker(2))

	var out map[string]any
	for i := 0; i < 2; i++ {
		if kind := KindOf(c.GetJSON(context.Background(), srv.URL, nil, nil, &out)); kind != KindStatus {
			t.Fatalf("call %d: expected status kind, got %s", i, kind)
		}
	}

	if kind := KindOf(c.GetJSON(context.Background(), srv.URL, nil, nil, &out)); kind != KindNetwork {
		t.Fatalf("expected open breaker to report network kind, got %s", kind)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Fatalf("expected open breaker to skip the upstream, got %d hits", got)
	}
}

func TestKindOfForeignError(t *testing.T) {
	if kind := KindOf(errors.New("boom")); kind != KindUnexpected {
		t.Fatalf("expected unexpected, got %s", kind)
	}
	if kind := KindOf(NoData("x")); kind != KindNoData {
		t.Fatalf("expected no data, got %s", kind)
	}
}
