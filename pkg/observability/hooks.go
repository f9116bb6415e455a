// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about KEGG operations, cache lookups and
// HTTP calls. [PrometheusHooks] is the bundled implementation used by the
// gateway.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    hooks := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
//	    observability.SetOperationHooks(hooks)
//	    observability.SetCacheHooks(hooks)
//	    observability.SetHTTPHooks(hooks)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Operation().OnOperationStart(ctx, "get")
//	// ... fetch and parse ...
//	observability.Operation().OnOperationComplete(ctx, "get", len(entries), duration, err)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// OperationHooks receives events for KEGG operations (info, list, get, ...).
// results is the number of parsed items (rows, entries, sequences).
type OperationHooks interface {
	OnOperationStart(ctx context.Context, op string)
	OnOperationComplete(ctx context.Context, op string, results int, duration time.Duration, err error)
}

// CacheHooks receives response cache lookups and writes. namespace is the
// cache key namespace ("kegg").
type CacheHooks interface {
	OnCacheHit(ctx context.Context, namespace string)
	OnCacheMiss(ctx context.Context, namespace string)
	OnCacheSet(ctx context.Context, namespace string, size int)
}

// HTTPHooks receives outgoing requests to the KEGG server. OnError is
// called instead of OnResponse when no response arrived.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopOperationHooks discards operation events.
type NoopOperationHooks struct{}

func (NoopOperationHooks) OnOperationStart(context.Context, string) {}
func (NoopOperationHooks) OnOperationComplete(context.Context, string, int, time.Duration, error) {
}

// NoopCacheHooks discards cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks discards HTTP events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// registry is an immutable set of hooks. Setters publish a modified copy,
// so the hot path is a single atomic load.
type registry struct {
	op    OperationHooks
	cache CacheHooks
	http  HTTPHooks
}

var (
	current atomic.Pointer[registry]
	setMu   sync.Mutex
)

func init() { Reset() }

func load() *registry { return current.Load() }

// update applies fn to a copy of the current registry and publishes it.
func update(fn func(r *registry)) {
	setMu.Lock()
	defer setMu.Unlock()
	r := *current.Load()
	fn(&r)
	current.Store(&r)
}

// SetOperationHooks registers operation hooks. A nil h is ignored.
func SetOperationHooks(h OperationHooks) {
	if h != nil {
		update(func(r *registry) { r.op = h })
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks registers HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

// Operation returns the registered operation hooks.
func Operation() OperationHooks { return load().op }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return load().cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return load().http }

// Reset restores the no-op hooks. The gateway defers it after installing
// Prometheus hooks; tests call it between cases.
func Reset() {
	setMu.Lock()
	defer setMu.Unlock()
	current.Store(&registry{
		op:    NoopOperationHooks{},
		cache: NoopCacheHooks{},
		http:  NoopHTTPHooks{},
	})
}
