package http

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterOptions configures the middleware around the API
type RouterOptions struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// NewRouter creates the API router. Other front doors, such as the
// telephony webhooks, are mounted on the returned router.
func NewRouter(h *Handler, opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/", RootHandler)
	r.Get("/health", h.HealthHandler)

	r.Post("/query", h.QueryHandler)
	r.Post("/documents", h.IngestHandler)

	r.Route("/voice", func(r chi.Router) {
		r.Post("/transcribe", h.TranscribeHandler)
		r.Post("/synthesize", h.SynthesizeHandler)
		r.Post("/process", h.ProcessHandler)
	})

	return r
}

// requestLogger logs every request with slog
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		slog.Info("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// recoverer answers a panicking request with a JSON 500
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			slog.Error("Panic serving request",
				"panic", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", middleware.GetReqID(r.Context()),
				"stack", string(debug.Stack()),
			)
			errorResponse(w, http.StatusInternalServerError, "Internal server error", nil)
		}()

		next.ServeHTTP(w, r)
	})
}
