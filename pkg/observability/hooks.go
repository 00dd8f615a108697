// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup
// to receive events about graph loading, shortest-path queries, and outgoing
// HTTP requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (Prometheus, OpenTelemetry, ...)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetQueryHooks(observability.MultiQuery(promHooks, otelHooks))
//	    observability.SetGraphHooks(promHooks)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	res := route.ShortestPath(idx, from, to)
//	observability.Query().OnShortestPath(ctx, from, to, res.Hops(), res.Distance, time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Graph Hooks
// =============================================================================

// GraphHooks receives events from graph loading.
type GraphHooks interface {
	// OnGraphLoad records a completed load attempt. On failure nodeCount and
	// edgeCount describe the graph actually served (normally empty).
	OnGraphLoad(ctx context.Context, source string, nodeCount, edgeCount int, duration time.Duration, err error)
}

// =============================================================================
// Query Hooks
// =============================================================================

// QueryHooks receives events from shortest-path queries.
type QueryHooks interface {
	// OnShortestPath records a query. hops is -1 and distance is +Inf when
	// the goal was unreachable.
	OnShortestPath(ctx context.Context, from, to string, hops int, distance float64, duration time.Duration)
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

// NoopGraphHooks is a no-op implementation of GraphHooks.
type NoopGraphHooks struct{}

func (NoopGraphHooks) OnGraphLoad(context.Context, string, int, int, time.Duration, error) {}

// NoopQueryHooks is a no-op implementation of QueryHooks.
type NoopQueryHooks struct{}

func (NoopQueryHooks) OnShortestPath(context.Context, string, string, int, float64, time.Duration) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Fan-out
// =============================================================================

// MultiGraph returns GraphHooks that forward every event to each of hooks
// in order. Nil entries are ignored.
func MultiGraph(hooks ...GraphHooks) GraphHooks {
	var out multiGraph
	for _, h := range hooks {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

type multiGraph []GraphHooks

func (m multiGraph) OnGraphLoad(ctx context.Context, source string, nodeCount, edgeCount int, d time.Duration, err error) {
	for _, h := range m {
		h.OnGraphLoad(ctx, source, nodeCount, edgeCount, d, err)
	}
}

// MultiQuery returns QueryHooks that forward every event to each of hooks
// in order. Nil entries are ignored.
func MultiQuery(hooks ...QueryHooks) QueryHooks {
	var out multiQuery
	for _, h := range hooks {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

type multiQuery []QueryHooks

func (m multiQuery) OnShortestPath(ctx context.Context, from, to string, hops int, distance float64, d time.Duration) {
	for _, h := range m {
		h.OnShortestPath(ctx, from, to, hops, distance, d)
	}
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	graphHooks GraphHooks = NoopGraphHooks{}
	queryHooks QueryHooks = NoopQueryHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetGraphHooks registers custom graph hooks.
// This should be called once at application startup before the graph is loaded.
func SetGraphHooks(h GraphHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		graphHooks = h
	}
}

// SetQueryHooks registers custom query hooks.
// This should be called once at application startup before serving queries.
func SetQueryHooks(h QueryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		queryHooks = h
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

// Graph returns the registered graph hooks.
func Graph() GraphHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return graphHooks
}

// Query returns the registered query hooks.
func Query() QueryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return queryHooks
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
	graphHooks = NoopGraphHooks{}
	queryHooks = NoopQueryHooks{}
	httpHooks = NoopHTTPHooks{}
}
