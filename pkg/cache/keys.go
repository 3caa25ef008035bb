package cache

import "strings"

// Keyer builds cache keys for the data bumpkit persists.
type Keyer interface {
	// TagsKey identifies the tag listing of a repository as produced by
	// the given source ("api" or "git").
	TagsKey(source, slug string) string
}

// DefaultKeyer produces keys of the form "tags:<source>:<owner/repo>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// TagsKey implements [Keyer]. Slugs are lower-cased because GitHub
// resolves owner and repository names case-insensitively.
func (DefaultKeyer) TagsKey(source, slug string) string {
	return "tags:" + source + ":" + strings.ToLower(slug)
}

// ScopedKeyer wraps a Keyer with a prefix. bumpkit scopes keys by API
// host so listings fetched from a GitHub Enterprise instance or a test
// server never mix with github.com ones.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api.github.com:")
//	keyer.TagsKey("api", "apache/maven") // "api.github.com:tags:api:apache/maven"
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// TagsKey generates a prefixed tag listing key.
func (k *ScopedKeyer) TagsKey(source, slug string) string {
	return k.prefix + k.inner.TagsKey(source, slug)
}
