package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v75/github"

	bkerrors "github.com/matzehuels/bumpkit/pkg/errors"
	"github.com/matzehuels/bumpkit/pkg/httputil"
	"github.com/matzehuels/bumpkit/pkg/integrations"
	"github.com/matzehuels/bumpkit/pkg/record"
)

// LicenseCache resolves repository licenses and remembers every answer
// for the lifetime of one run. It is not safe for concurrent use.
type LicenseCache struct {
	client *Client
	retry  httputil.Policy
	logger *log.Logger
	known  map[string]string
}

// NewLicenseCache creates an empty cache. A nil logger discards output.
func NewLicenseCache(client *Client, retry httputil.Policy, logger *log.Logger) *LicenseCache {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &LicenseCache{
		client: client,
		retry:  retry,
		logger: logger,
		known:  make(map[string]string),
	}
}

// Lookup returns the SPDX identifier of slug's license, or
// [record.NoLicenseFound] when the repository has none or cannot be
// queried. Each slug is fetched at most once per cache.
//
// An HTTP 401 is retried according to the cache's retry policy; any other
// failure gives up immediately. Answers given while the context is done or
// the rate limit is exhausted are not memoized.
func (c *LicenseCache) Lookup(ctx context.Context, slug string) string {
	if v, ok := c.known[slug]; ok {
		return v
	}

	license, err := c.fetch(ctx, slug)
	if err != nil {
		if ctx.Err() != nil || bkerrors.GetCode(err) == bkerrors.ErrCodeRateLimited {
			return record.NoLicenseFound
		}
		c.logger.Warn("license lookup failed", "slug", slug, "err", err)
		license = record.NoLicenseFound
	}
	c.known[slug] = license
	return license
}

// Len returns the number of memoized slugs.
func (c *LicenseCache) Len() int {
	return len(c.known)
}

func (c *LicenseCache) fetch(ctx context.Context, slug string) (string, error) {
	var repo *github.Repository

	policy := c.retry
	policy.OnRetry = func(attempt int, err error) {
		c.logger.Warn("unauthorized, retrying", "slug", slug, "attempt", attempt, "delay", c.retry.Delay)
	}

	err := withSlug(ctx, slug, func(owner, name string) error {
		return httputil.Retry(ctx, policy, func() error {
			r, resp, err := c.client.api.Repositories.Get(ctx, owner, name)
			if err == nil {
				repo = r
				return nil
			}
			if rl, ok := rateLimited(err); ok {
				c.logger.Warn("rate limited", "slug", slug, "reset", rl.Reset.Format(time.TimeOnly))
				return rl
			}
			status := statusOf(resp)
			if status == http.StatusUnauthorized {
				return &httputil.RetryableError{Err: integrations.ErrUnauthorized}
			}
			if status != 0 {
				return fmt.Errorf("status %d: %w", status, integrations.CheckStatus(status))
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return fmt.Errorf("%w: %v", integrations.ErrNetwork, err)
		})
	})
	if err != nil {
		return "", err
	}

	if spdx := repo.GetLicense().GetSPDXID(); spdx != "" {
		return spdx, nil
	}
	return record.NoLicenseFound, nil
}
