package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"

	"github.com/matzehuels/bumpkit/pkg/buildinfo"
	bkerrors "github.com/matzehuels/bumpkit/pkg/errors"
	"github.com/matzehuels/bumpkit/pkg/integrations"
)

// Default endpoints.
const (
	DefaultAPIURL = "https://api.github.com/"
	DefaultWebURL = "https://github.com"
)

// Config selects the GitHub instance and credentials for a [Client].
type Config struct {
	// Token is sent as a bearer token on REST API calls. Empty means
	// unauthenticated (60 requests per hour).
	Token string

	// APIURL is the REST API root. Defaults to [DefaultAPIURL].
	APIURL string

	// WebURL is the web root used for compare pages and git remotes.
	// Defaults to [DefaultWebURL].
	WebURL string

	// HTTPClient carries every request. Defaults to
	// [integrations.NewHTTPClient] with the default timeout.
	HTTPClient *http.Client
}

// Client bundles the REST API client with the unauthenticated web probe.
type Client struct {
	api    *github.Client
	web    *integrations.Client
	webURL *url.URL
	token  string
}

// NewClient creates a GitHub client for cfg.
func NewClient(cfg Config) (*Client, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = integrations.NewHTTPClient(integrations.DefaultTimeout)
	}

	api := github.NewClient(httpClient)
	if cfg.Token != "" {
		api = api.WithAuthToken(cfg.Token)
	}
	api.UserAgent = buildinfo.UserAgent()

	if cfg.APIURL != "" {
		u, err := url.Parse(strings.TrimSuffix(cfg.APIURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse api url: %w", err)
		}
		api.BaseURL = u
	}

	webRaw := cfg.WebURL
	if webRaw == "" {
		webRaw = DefaultWebURL
	}
	webURL, err := url.Parse(strings.TrimSuffix(webRaw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse web url: %w", err)
	}

	return &Client{
		api:    api,
		web:    integrations.NewClient(httpClient, nil),
		webURL: webURL,
		token:  cfg.Token,
	}, nil
}

// APIHost returns the host of the REST API, used to scope cache keys.
func (c *Client) APIHost() string {
	return c.api.BaseURL.Host
}

// WebHost returns the host of the web UI ("github.com" by default).
func (c *Client) WebHost() string {
	return c.webURL.Host
}

// RepoURL returns the web URL of a repository.
func (c *Client) RepoURL(slug string) string {
	return c.webURL.String() + "/" + slug
}

// WebPrefix returns the web root with a trailing slash, the prefix the
// link normalization strips ("https://github.com/").
func (c *Client) WebPrefix() string {
	return c.webURL.String() + "/"
}

// statusOf returns the HTTP status of a go-github call, or 0 when no
// response was received.
func statusOf(resp *github.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}

// rateLimited converts go-github's primary rate-limit error. Requests made
// before the reset are refused by go-github without reaching the network.
func rateLimited(err error) (*bkerrors.RateLimitedError, bool) {
	var rle *github.RateLimitError
	if !errors.As(err, &rle) {
		return nil, false
	}
	reset := rle.Rate.Reset.Time
	wait := time.Until(reset).Round(time.Second)
	if wait < 0 {
		wait = 0
	}
	return &bkerrors.RateLimitedError{
		RetryAfter: int(wait / time.Second),
		Reset:      reset,
		Message:    rle.Message,
	}, true
}

func withSlug(ctx context.Context, slug string, fn func(owner, repo string) error) error {
	owner, repo, err := ParseRepoRef(slug)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(owner, repo)
}
