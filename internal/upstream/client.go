package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// Client performs single-shot JSON GETs against one upstream endpoint family.
// It never retries; every call is a fresh request bounded by its own timeout.
type Client struct {
	name    string
	http    *http.Client
	timeout time.Duration
	circuit *gobreaker.CircuitBreaker
}

// Option configures a Client.
type Option func(*Client)

// WithBreaker guards the client with a circuit breaker that opens after the
// given number of consecutive failures. Zero leaves the client unguarded.
func WithBreaker(failures uint32) Option {
	return func(c *Client) {
		if failures == 0 {
			return
		}
		c.circuit = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        c.name,
			MaxRequests: 1,
			Interval:    1 * time.Minute,
			Timeout:     1 * time.Minute,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
		})
	}
}

// New creates a Client. A nil http.Client falls back to http.DefaultClient.
// Redirects are not followed; a 3xx is reported as a status failure.
func New(name string, client *http.Client, timeout time.Duration, opts ...Option) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	hc := *client
	hc.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	c := &Client{
		name:    name,
		http:    &hc,
		timeout: timeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON issues a GET to rawURL with the given query and headers and decodes
// the response body into out. Any failure is returned as *Error.
func (c *Client) GetJSON(ctx context.Context, rawURL string, query url.Values, header http.Header, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := rawURL
	if len(query) > 0 {
		u = fmt.Sprintf("%s?%s", rawURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &Error{Kind: KindUnexpected, URL: rawURL, Err: err}
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	var body []byte
	if c.circuit != nil {
		result, err := c.circuit.Execute(func() (interface{}, error) {
			return c.do(req, rawURL)
		})
		if err != nil {
			return classify(rawURL, err)
		}
		b, ok := result.([]byte)
		if !ok {
			return &Error{Kind: KindUnexpected, URL: rawURL, Err: fmt.Errorf("unexpected result type from circuit breaker")}
		}
		body = b
	} else {
		body, err = c.do(req, rawURL)
		if err != nil {
			return classify(rawURL, err)
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: KindUnexpected, URL: rawURL, Err: err}
	}
	return nil
}

// do sends req and returns the full body of a 2xx response.
func (c *Client) do(req *http.Request, rawURL string) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classify(rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &Error{Kind: KindStatus, URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ue := classify(rawURL, err); ue.Kind == KindTimeout {
			return nil, ue
		}
		return nil, &Error{Kind: KindNetwork, URL: rawURL, Err: err}
	}
	return body, nil
}
