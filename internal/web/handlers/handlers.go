package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/observability"
	"photo-gallery/internal/services"
)

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthChecker is a dependency that can report its own health
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps are the collaborators of the HTTP layer
type Deps struct {
	Photos        photo.Service
	DB            Pinger
	Cache         HealthChecker // optional
	Storage       HealthChecker // optional
	Logger        *observability.Logger
	Tracer        trace.Tracer
	MaxUploadSize int64
}

type Handler struct {
	photos        photo.Service
	db            Pinger
	cache         HealthChecker
	storage       HealthChecker
	logger        *observability.Logger
	tracer        trace.Tracer
	maxUploadSize int64
	now           func() time.Time
}

func New(deps Deps) *Handler {
	h := &Handler{
		photos:        deps.Photos,
		db:            deps.DB,
		cache:         deps.Cache,
		storage:       deps.Storage,
		logger:        deps.Logger,
		tracer:        deps.Tracer,
		maxUploadSize: deps.MaxUploadSize,
		now:           time.Now,
	}
	if h.logger == nil {
		h.logger = observability.NopLogger()
	}
	if h.tracer == nil {
		h.tracer = observability.GetTracer()
	}
	if h.maxUploadSize <= 0 {
		h.maxUploadSize = photo.DefaultMaxSize
	}
	return h
}

// NewWithContainer builds a handler from the service container
func NewWithContainer(c *services.Container) *Handler {
	deps := Deps{
		Photos:        c.PhotoService(),
		DB:            c.DB(),
		Storage:       c.Storage(),
		Logger:        c.Logger().WithComponent("http"),
		MaxUploadSize: c.Config().Storage.MaxUploadSize,
	}
	if cs := c.CacheService(); cs != nil && cs.Enabled() {
		deps.Cache = cs
	}
	return New(deps)
}

// Routes builds the router. Extra middleware (tracing, metrics) runs after
// the request id and real ip are set.
func (h *Handler) Routes(mw ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw...)
	r.Use(observability.RequestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(withSecurityHeaders)

	r.Get("/healthz", h.healthzHandler)
	r.Get("/readyz", h.readyzHandler)

	r.Get("/", h.indexHandler)

	r.Route("/api/photos", func(r chi.Router) {
		r.Get("/", h.listPhotosHandler)
		r.Post("/upload", h.uploadPhotoHandler)
		r.Get("/health", h.photoHealthHandler)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getPhotoHandler)
			r.Delete("/", h.deletePhotoHandler)
			r.Patch("/description", h.updateDescriptionHandler)
			r.Patch("/refresh-url", h.refreshURLHandler)
		})
	})

	return r
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Content-Security-Policy",
			"default-src 'self'; img-src 'self' http: https: data:; style-src 'self' 'unsafe-inline'; base-uri 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}
