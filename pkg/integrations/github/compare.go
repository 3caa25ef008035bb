package github

import (
	"context"
	"strings"
)

// CompareLink builds the web compare URL between two refs of the
// repository at repoURL.
func CompareLink(repoURL, from, to string) string {
	return strings.TrimSuffix(repoURL, "/") + "/compare/" + from + "..." + to
}

// CompareURL builds the compare URL and checks that the page exists with
// an unauthenticated GET. It returns the URL and true on a 2xx answer.
// The page body is discarded.
func (c *Client) CompareURL(ctx context.Context, repoURL, from, to string) (string, bool) {
	link := CompareLink(repoURL, from, to)
	ok, err := c.web.Exists(ctx, link)
	if err != nil || !ok {
		return "", false
	}
	return link, true
}
