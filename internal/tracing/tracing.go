// Package tracing records OpenTelemetry spans for waypoint operations.
//
// [Hooks] implements the observability graph and query hooks, turning each
// graph load and shortest-path query into a span. [Middleware] opens a server
// span per HTTP request so query spans nest under the request that caused
// them. [Setup] installs a tracer provider with a stdout exporter for local
// debugging.
package tracing

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/matzehuels/waypoint/pkg/buildinfo"
)

const traceScope = "github.com/matzehuels/waypoint"

// Attribute keys.
const (
	AttrFrom      = attribute.Key("waypoint.route.from")
	AttrTo        = attribute.Key("waypoint.route.to")
	AttrReachable = attribute.Key("waypoint.route.reachable")
	AttrHops      = attribute.Key("waypoint.route.hops")
	AttrDistance  = attribute.Key("waypoint.route.distance")
	AttrSource    = attribute.Key("waypoint.graph.source")
	AttrNodes     = attribute.Key("waypoint.graph.nodes")
	AttrEdges     = attribute.Key("waypoint.graph.edges")
)

// Hooks turns observability events into spans.
type Hooks struct {
	tracer trace.Tracer
}

// NewHooks returns hooks using tp, or the global provider when tp is nil.
func NewHooks(tp trace.TracerProvider) *Hooks {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Hooks{tracer: tp.Tracer(traceScope)}
}

// OnShortestPath implements observability.QueryHooks. The span is
// back-dated so it covers the query's actual run time.
func (h *Hooks) OnShortestPath(ctx context.Context, from, to string, hops int, distance float64, d time.Duration) {
	end := time.Now()
	_, span := h.tracer.Start(ctx, "route.ShortestPath",
		trace.WithTimestamp(end.Add(-d)),
		trace.WithAttributes(
			AttrFrom.String(from),
			AttrTo.String(to),
			AttrReachable.Bool(hops >= 0),
			AttrHops.Int(hops),
		),
	)
	if !math.IsInf(distance, 0) {
		span.SetAttributes(AttrDistance.Float64(distance))
	}
	span.End(trace.WithTimestamp(end))
}

// OnGraphLoad implements observability.GraphHooks.
func (h *Hooks) OnGraphLoad(ctx context.Context, source string, nodeCount, edgeCount int, d time.Duration, err error) {
	end := time.Now()
	_, span := h.tracer.Start(ctx, "graph.Load",
		trace.WithTimestamp(end.Add(-d)),
		trace.WithAttributes(
			AttrSource.String(source),
			AttrNodes.Int(nodeCount),
			AttrEdges.Int(edgeCount),
		),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "graph load failed")
	}
	span.End(trace.WithTimestamp(end))
}

// Middleware starts a server span for every request. The span is named
// after the chi route pattern once routing has completed.
func Middleware(tp trace.TracerProvider) func(http.Handler) http.Handler {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(traceScope)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(r.Context(), r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(r.Method),
					semconv.URLPath(r.URL.Path),
				),
			)
			defer span.End()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				span.SetName(r.Method + " " + rctx.RoutePattern())
				span.SetAttributes(semconv.HTTPRoute(rctx.RoutePattern()))
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			span.SetAttributes(semconv.HTTPResponseStatusCode(status))
			if status >= 500 {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		})
	}
}

// Setup installs a global tracer provider that writes spans to w as
// pretty-printed JSON. The returned function flushes and shuts it down.
func Setup(ctx context.Context, w io.Writer) (func(context.Context) error, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("create exporter: %w", err)
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(buildinfo.Name),
			semconv.ServiceVersion(buildinfo.Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
