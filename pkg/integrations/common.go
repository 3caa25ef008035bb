package integrations

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/matzehuels/bumpkit/pkg/buildinfo"
	"github.com/matzehuels/bumpkit/pkg/observability"
)

// DefaultTimeout bounds every outgoing request unless configured otherwise.
const DefaultTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when a repository, tag page or artifact does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, unexpected status codes).
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized is returned for HTTP 401 responses.
	ErrUnauthorized = errors.New("unauthorized")
)

// NewHTTPClient creates an HTTP client with the given timeout that reports
// every request to the registered [observability.HTTPHooks] and identifies
// itself with the bumpkit User-Agent. A zero timeout selects [DefaultTimeout].
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &hookedTransport{base: http.DefaultTransport},
	}
}

// CheckStatus maps an HTTP status code to nil for 2xx or one of the
// package's sentinel errors.
func CheckStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

type hookedTransport struct {
	base http.RoundTripper
}

func (t *hookedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", buildinfo.UserAgent())
	}

	hooks := observability.HTTP()
	ctx, host, path := req.Context(), req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, err
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))
	return resp, nil
}
