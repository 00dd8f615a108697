package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/matzehuels/waypoint/internal/metrics"
	"github.com/matzehuels/waypoint/internal/tracing"
	"github.com/matzehuels/waypoint/pkg/buildinfo"
)

// RouterDependencies collects handler dependencies.
type RouterDependencies struct {
	State          *State
	AllowedOrigins []string
	// PublicDir holds static assets served for unmatched paths. Empty or
	// missing directories disable static serving.
	PublicDir string
	// Metrics, when set, instruments requests and serves GET /metrics.
	Metrics *metrics.Metrics
	// Tracer, when set, opens a span per request.
	Tracer trace.TracerProvider
}

// NewRouter wires the HTTP routes exposed by the API.
func NewRouter(logger *log.Logger, deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	if len(deps.AllowedOrigins) > 0 {
		r.Use(corsMiddleware(deps.AllowedOrigins))
	}
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}
	if deps.Tracer != nil {
		r.Use(tracing.Middleware(deps.Tracer))
	}

	api := NewAPIHandlers(logger, deps.State)
	r.Get("/healthz", api.handleHealth)
	r.Get("/api/graph", api.handleGraph)
	r.Get("/api/shortest", api.handleShortest)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	if static := staticHandler(deps.PublicDir); static != nil {
		r.NotFound(static.ServeHTTP)
	}
	return r
}

func staticHandler(dir string) http.Handler {
	if dir == "" {
		return nil
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil
	}
	return http.FileServer(http.Dir(dir))
}

// =============================================================================
// Middleware
// =============================================================================

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

type ctxKey int

const requestIDKey ctxKey = 0

// RequestIDFromContext returns the id assigned by the request id middleware,
// or "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestIDMiddleware reuses a well-formed incoming X-Request-ID or assigns
// a fresh UUID, and echoes it on the response with the Server header.
func requestIDMiddleware(next http.Handler) http.Handler {
	server := buildinfo.UserAgent()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if !validRequestID(id) {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		w.Header().Set("Server", server)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func validRequestID(id string) bool {
	if id == "" || len(id) > 128 {
		return false
	}
	for _, c := range id {
		if c <= ' ' || c > '~' {
			return false
		}
	}
	return true
}

func loggingMiddleware(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", RequestIDFromContext(r.Context()),
			)
		})
	}
}

func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:       allowedOrigins,
		AllowedMethods:       []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders:       []string{"Content-Type", HeaderRequestID},
		ExposedHeaders:       []string{HeaderRequestID},
		OptionsSuccessStatus: http.StatusNoContent,
	})
}
