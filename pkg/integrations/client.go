package integrations

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Client performs the plain HTTP checks bumpkit needs outside the GitHub
// REST API: liveness of compare pages and existence of Maven artifacts.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client on top of httpClient (nil selects
// [NewHTTPClient] with the default timeout). Headers are applied to all
// requests made through this client. Pass nil for headers if no default
// headers are needed.
func NewClient(httpClient *http.Client, headers map[string]string) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(DefaultTimeout)
	}
	return &Client{
		http:    httpClient,
		headers: headers,
	}
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// Probe issues a GET for url, discards the body and returns the status
// code. A transport failure is returned as an error wrapping [ErrNetwork].
func (c *Client) Probe(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// Exists reports whether url answers a GET with a 2xx status.
func (c *Client) Exists(ctx context.Context, url string) (bool, error) {
	code, err := c.Probe(ctx, url)
	if err != nil {
		return false, err
	}
	return CheckStatus(code) == nil, nil
}
