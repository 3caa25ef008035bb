// Package observability provides hooks for logging and metrics.
//
// Libraries in bumpkit emit events through the hooks returned by [Corpus],
// [Cache] and [HTTP]. By default every hook is a no-op; the CLI registers
// implementations at startup (for example, debug logging of every GitHub
// request when run with -v).
//
// # Usage
//
// Register hooks at application startup:
//
//	observability.SetHTTPHooks(&logHTTPHooks{logger: logger})
//
// Libraries call hooks to emit events:
//
//	observability.Corpus().OnRecordStart(ctx, "licenses", path)
//	// ... annotate the record ...
//	observability.Corpus().OnRecordComplete(ctx, "licenses", path, changed, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Corpus Hooks
// =============================================================================

// CorpusHooks receives events from corpus passes.
type CorpusHooks interface {
	OnRunStart(ctx context.Context, step string, dirs []string)
	OnRunComplete(ctx context.Context, step string, processed, changed, failed int, duration time.Duration)

	OnRecordStart(ctx context.Context, step, path string)
	OnRecordComplete(ctx context.Context, step, path string, changed bool, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCorpusHooks is a no-op implementation of CorpusHooks.
type NoopCorpusHooks struct{}

func (NoopCorpusHooks) OnRunStart(context.Context, string, []string) {}
func (NoopCorpusHooks) OnRunComplete(context.Context, string, int, int, int, time.Duration) {
}
func (NoopCorpusHooks) OnRecordStart(context.Context, string, string) {}
func (NoopCorpusHooks) OnRecordComplete(context.Context, string, string, bool, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	corpusHooks CorpusHooks = NoopCorpusHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetCorpusHooks registers custom corpus hooks.
// This should be called once at application startup before any corpus pass.
func SetCorpusHooks(h CorpusHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		corpusHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Corpus returns the registered corpus hooks.
func Corpus() CorpusHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return corpusHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	corpusHooks = NoopCorpusHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
