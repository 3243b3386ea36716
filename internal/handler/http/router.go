package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront-api/internal/service"
	apperrors "github.com/utafrali/storefront-api/pkg/errors"
	"github.com/utafrali/storefront-api/pkg/health"
	"github.com/utafrali/storefront-api/pkg/httputil"
	"github.com/utafrali/storefront-api/pkg/middleware"
)

// Services groups the application services the router exposes.
type Services struct {
	Catalog     *service.CatalogService
	Orders      *service.OrderService
	Diagnostics *service.DiagnosticsService
}

// RouterConfig holds the transport settings for NewRouter.
type RouterConfig struct {
	ServiceName string
	CORS        middleware.CORSConfig
	PprofCIDRs  []string
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(svcs Services, healthHandler *health.Handler, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware. CORS runs first so preflights and error responses
	// carry the CORS headers.
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	statusHandler := NewStatusHandler(svcs.Diagnostics)
	productHandler := NewProductHandler(svcs.Catalog, logger)
	orderHandler := NewOrderHandler(svcs.Orders, logger)

	r.Get("/", statusHandler.Root)
	r.Get("/test", statusHandler.Test)
	r.Get("/schema", statusHandler.Schema)

	r.Get("/products", productHandler.ListProducts)
	r.Post("/seed", productHandler.SeedProducts)

	r.With(ContentTypeJSON).Post("/orders", orderHandler.CreateOrder)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, r, apperrors.ErrNotFound, logger)
	})

	return r
}
