package rest

import (
	"log/slog"
	"net/http"
	"time"

	"sentify/domain"
	"sentify/observability"
	"sentify/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ServiceName = "mood-classifier-backend"
	Version     = "1.0.0"

	maxBodyBytes = 1 << 20
)

type Config struct {
	AllowedOrigins    []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Health gathers what /health reports. Breaker may be nil.
type Health struct {
	Monitor *observability.MonitoringManager
	Nodes   *domain.GlobalMonitoring
	Backend string
	Breaker func() string
}

type Router struct {
	log     *slog.Logger
	service services.IMoodService
	health  Health
	cfg     Config
}

func NewRouter(log *slog.Logger, service services.IMoodService, health Health, cfg Config) *Router {
	return &Router{log: log, service: service, health: health, cfg: cfg}
}

func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observe(rt.log))
	r.Use(middleware.Recoverer)
	r.Use(corsHandler(rt.cfg.AllowedOrigins))

	r.Get("/", rt.root)
	r.Get("/health", rt.healthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(rateLimit(rt.cfg.RateLimitRequests, rt.cfg.RateLimitWindow))

		r.Post("/sentify", rt.analyze)
		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/emotions", rt.emotions)
			r.Post("/analyze", rt.analyze)
			r.Post("/analyze/batch", rt.analyzeBatch)
			r.Get("/analyses", rt.history)
			r.Get("/analyses/search", rt.search)
			r.Get("/analyses/{id}", rt.getAnalysis)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})
	return r
}

func (rt *Router) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    ServiceName,
		"version": Version,
		"status":  "running",
		"endpoints": map[string]string{
			"health":   "GET /health",
			"metrics":  "GET /metrics",
			"emotions": "GET /api/v1/emotions",
			"analyze":  "POST /api/v1/analyze",
			"sentify":  "POST /sentify",
			"batch":    "POST /api/v1/analyze/batch",
			"history":  "GET /api/v1/analyses",
			"search":   "GET /api/v1/analyses/search",
			"analysis": "GET /api/v1/analyses/{id}",
		},
	})
}

func (rt *Router) healthCheck(w http.ResponseWriter, _ *http.Request) {
	resp := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   ServiceName,
	}
	if rt.health.Monitor != nil {
		stats := rt.health.Monitor.GetLatest()
		resp["uptime"] = stats.Uptime
		resp["process"] = stats
	}
	if rt.health.Nodes != nil {
		resp["nodes"] = rt.health.Nodes.Snapshot()
	}
	classifier := map[string]string{"backend": rt.health.Backend}
	if rt.health.Breaker != nil {
		classifier["breaker"] = rt.health.Breaker()
	}
	resp["classifier"] = classifier
	writeJSON(w, http.StatusOK, resp)
}
