package github

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/matzehuels/bumpkit/pkg/cache"
	"github.com/matzehuels/bumpkit/pkg/integrations"
	"github.com/matzehuels/bumpkit/pkg/observability"
)

// Tag sources.
const (
	SourceAPI = "api"
	SourceGit = "git"
)

const tagsPerPage = 100

// TagLister lists the tag names of a repository.
//
// Implementations return names in the order the source provides them. On
// failure they return the tags gathered so far together with the error.
// An empty slug yields no tags and no request.
type TagLister interface {
	ListTags(ctx context.Context, slug string) ([]string, error)
}

// APITagLister pages through GET /repos/{owner}/{repo}/tags.
type APITagLister struct {
	client *Client
}

// NewAPITagLister creates a lister backed by the REST API.
func NewAPITagLister(client *Client) *APITagLister {
	return &APITagLister{client: client}
}

// ListTags requests pages of 100 tags starting at page 1 until a page
// comes back empty or with a non-2xx status.
func (l *APITagLister) ListTags(ctx context.Context, slug string) ([]string, error) {
	if slug == "" {
		return nil, nil
	}

	var tags []string
	err := withSlug(ctx, slug, func(owner, repo string) error {
		opts := &github.ListOptions{Page: 1, PerPage: tagsPerPage}
		for {
			page, resp, err := l.client.api.Repositories.ListTags(ctx, owner, repo, opts)
			if err != nil {
				if rl, ok := rateLimited(err); ok {
					return fmt.Errorf("list tags of %s page %d: %w", slug, opts.Page, rl)
				}
				if status := statusOf(resp); status != 0 {
					return fmt.Errorf("list tags of %s page %d: %w", slug, opts.Page, integrations.CheckStatus(status))
				}
				return fmt.Errorf("list tags of %s page %d: %w", slug, opts.Page, err)
			}
			if len(page) == 0 {
				return nil
			}
			for _, t := range page {
				tags = append(tags, t.GetName())
			}
			opts.Page++
		}
	})
	return tags, err
}

// CachedTagLister memoizes another lister in memory and, optionally, in a
// persistent [cache.Cache]. Failed listings are never stored.
type CachedTagLister struct {
	inner  TagLister
	source string
	memo   *lru.Cache[string, []string]
	store  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
}

// CachedTagListerOptions configures a [CachedTagLister].
type CachedTagListerOptions struct {
	Source string        // SourceAPI or SourceGit, part of the cache key
	Size   int           // in-memory entries, default 1024
	Store  cache.Cache   // persistent backend, nil for memory only
	Keyer  cache.Keyer   // default cache.NewDefaultKeyer()
	TTL    time.Duration // persistent entry lifetime, 0 never expires
}

// NewCachedTagLister wraps inner.
func NewCachedTagLister(inner TagLister, opts CachedTagListerOptions) (*CachedTagLister, error) {
	size := opts.Size
	if size <= 0 {
		size = 1024
	}
	memo, err := lru.New[string, []string](size)
	if err != nil {
		return nil, fmt.Errorf("create tag memo: %w", err)
	}
	store := opts.Store
	if store == nil {
		store = cache.NewNullCache()
	}
	keyer := opts.Keyer
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	source := opts.Source
	if source == "" {
		source = SourceAPI
	}
	return &CachedTagLister{
		inner:  inner,
		source: source,
		memo:   memo,
		store:  store,
		keyer:  keyer,
		ttl:    opts.TTL,
	}, nil
}

// ListTags returns the memoized listing or delegates to the wrapped lister.
func (l *CachedTagLister) ListTags(ctx context.Context, slug string) ([]string, error) {
	if slug == "" {
		return nil, nil
	}

	key := l.keyer.TagsKey(l.source, slug)
	if tags, ok := l.memo.Get(key); ok {
		return tags, nil
	}

	hooks := observability.Cache()
	if data, ok, err := l.store.Get(ctx, key); err == nil && ok {
		var tags []string
		if json.Unmarshal(data, &tags) == nil {
			hooks.OnCacheHit(ctx, "tags")
			l.memo.Add(key, tags)
			return tags, nil
		}
	}
	hooks.OnCacheMiss(ctx, "tags")

	tags, err := l.inner.ListTags(ctx, slug)
	if err != nil {
		return tags, err
	}

	l.memo.Add(key, tags)
	if data, err := json.Marshal(tags); err == nil {
		if l.store.Set(ctx, key, data, l.ttl) == nil {
			hooks.OnCacheSet(ctx, "tags", len(data))
		}
	}
	return tags, nil
}

// FindVersionTag returns the first tag whose name contains version.
//
// The match is a plain substring test, so version "1.0" also matches a
// tag "v1.0.1" listed before "v1.0". Corpus links produced so far rely on
// this rule, so it is kept.
func FindVersionTag(tags []string, version string) (string, bool) {
	if version == "" {
		return "", false
	}
	for _, t := range tags {
		if strings.Contains(t, version) {
			return t, true
		}
	}
	return "", false
}

// nonVersionChars matches everything a release tag carries besides its
// version number, such as a "v" or "maven-" prefix.
var nonVersionChars = regexp.MustCompile(`[^0-9.]`)

// MatchVersionTags picks the tags of two releases by exact version: a tag
// matches when its name stripped to digits and dots equals previous or
// next. Exactly two tags must match; the one containing previous comes
// first, otherwise listing order is kept.
//
//	MatchVersionTags([]string{"v2.0", "v1.9", "v1.0"}, "1.0", "2.0") // "v1.0", "v2.0", true
func MatchVersionTags(tags []string, previous, next string) (from, to string, ok bool) {
	if previous == "" || next == "" {
		return "", "", false
	}

	var found []string
	for _, t := range tags {
		if v := nonVersionChars.ReplaceAllString(t, ""); v == previous || v == next {
			found = append(found, t)
		}
	}
	if len(found) != 2 {
		return "", "", false
	}
	if !strings.Contains(found[0], previous) && strings.Contains(found[1], previous) {
		found[0], found[1] = found[1], found[0]
	}
	return found[0], found[1], true
}
