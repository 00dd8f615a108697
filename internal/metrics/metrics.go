// Package metrics exposes waypoint's Prometheus metrics.
//
// A [Metrics] value implements the observability graph, query and HTTP
// hooks, so registering it once at startup instruments graph loading,
// shortest-path queries and outgoing fetches. [Metrics.Middleware]
// instruments the HTTP API itself and [Metrics.Handler] serves the registry.
//
// Metrics exposed (all namespaced with "waypoint_"):
//
//   - graph_loads_total{result}: load attempts, result is ok or error.
//   - graph_nodes, graph_edges: size of the graph being served.
//   - shortest_path_queries_total{result}: queries, result is reachable or unreachable.
//   - shortest_path_duration_seconds: query latency.
//   - shortest_path_hops: hops on reachable paths.
//   - http_requests_total{method,route,status}: API requests.
//   - http_request_duration_seconds{method,route}: API latency.
//   - upstream_requests_total{host,outcome}: outgoing fetches (graph URLs).
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "waypoint"

// Metrics collects waypoint metrics in its own registry.
// All methods are safe for concurrent use.
type Metrics struct {
	registry *prometheus.Registry

	graphLoads *prometheus.CounterVec
	graphNodes prometheus.Gauge
	graphEdges prometheus.Gauge

	queries       *prometheus.CounterVec
	queryDuration prometheus.Histogram
	pathHops      prometheus.Histogram

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	upstream *prometheus.CounterVec
}

// New creates and registers all metrics with a fresh registry, together with
// the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return newWithRegistry(reg)
}

func newWithRegistry(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		graphLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graph_loads_total",
			Help:      "Graph load attempts by result",
		}, []string{"result"}),
		graphNodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Number of nodes in the graph being served",
		}),
		graphEdges: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Number of edges in the graph being served",
		}),

		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shortest_path_queries_total",
			Help:      "Shortest-path queries by result",
		}, []string{"result"}),
		queryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "shortest_path_duration_seconds",
			Help:      "Shortest-path query duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		}),
		pathHops: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "shortest_path_hops",
			Help:      "Number of edges on reachable shortest paths",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20, 50, 100},
		}),

		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP API requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP API request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		upstream: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Outgoing HTTP requests by host and outcome",
		}, []string{"host", "outcome"}),
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// OnGraphLoad implements observability.GraphHooks.
func (m *Metrics) OnGraphLoad(_ context.Context, _ string, nodeCount, edgeCount int, _ time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.graphLoads.WithLabelValues(result).Inc()
	m.graphNodes.Set(float64(nodeCount))
	m.graphEdges.Set(float64(edgeCount))
}

// OnShortestPath implements observability.QueryHooks.
func (m *Metrics) OnShortestPath(_ context.Context, _, _ string, hops int, _ float64, d time.Duration) {
	m.queryDuration.Observe(d.Seconds())
	if hops < 0 {
		m.queries.WithLabelValues("unreachable").Inc()
		return
	}
	m.queries.WithLabelValues("reachable").Inc()
	m.pathHops.Observe(float64(hops))
}

// OnRequest implements observability.HTTPHooks.
func (m *Metrics) OnRequest(context.Context, string, string, string) {}

// OnResponse implements observability.HTTPHooks.
func (m *Metrics) OnResponse(_ context.Context, _, host, _ string, status int, _ time.Duration) {
	m.upstream.WithLabelValues(host, strconv.Itoa(status)).Inc()
}

// OnError implements observability.HTTPHooks.
func (m *Metrics) OnError(_ context.Context, _, host, _ string, _ error) {
	m.upstream.WithLabelValues(host, "error").Inc()
}

// Middleware records request counts and latency. Requests are labelled with
// the chi route pattern rather than the raw path, and unmatched requests are
// labelled "other". Unknown methods are also labelled "other".
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "other"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" && p != "/*" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		method := methodLabel(r.Method)
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

// methodLabel folds request methods outside a fixed set into "other".
func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPost:
		return method
	default:
		return "other"
	}
}
