package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Thamizhjaisankar-git/amazon-clone/internal/catalog"
	"github.com/Thamizhjaisankar-git/amazon-clone/internal/store"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/health"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/middleware"
)

// RouterConfig carries everything NewRouter mounts.
type RouterConfig struct {
	Catalog *catalog.Catalog
	Stores  *store.Factory
	Health  *health.Handler
	Logger  *slog.Logger

	// Metrics is optional. Gatherer backs /metrics and defaults to the
	// global registry.
	Metrics  *middleware.HTTPMetrics
	Gatherer prometheus.Gatherer

	CORS          middleware.CORSConfig
	CatalogMaxAge int

	// RateLimitRPS of 0 leaves the API unlimited.
	RateLimitRPS   int
	RateLimitBurst int
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Handler)
	}
	r.Use(middleware.Tracing())
	r.Use(middleware.RequestLogger(cfg.Logger))

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	products := NewProductHandler(cfg.Catalog, cfg.Logger)
	carts := NewCartHandler(cfg.Stores, cfg.Catalog, cfg.Logger)
	wishlists := NewWishlistHandler(cfg.Stores, cfg.Catalog, cfg.Logger)
	sessions := NewSessionHandler(cfg.Stores, cfg.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.Logger))
		r.Use(ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(cfg.CatalogMaxAge))

			r.Get("/products", products.ListProducts)
			r.Get("/products/{id}", products.GetProduct)
			r.Get("/categories", products.ListCategories)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(ProfileIDFromHeader)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", carts.GetCart)
				r.Delete("/", carts.ClearCart)
				r.Post("/items", carts.AddItem)
				r.Put("/items/{productId}", carts.UpdateItemQuantity)
				r.Delete("/items/{productId}", carts.RemoveItem)
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", wishlists.GetWishlist)
				r.Post("/{productId}/toggle", wishlists.Toggle)
			})

			r.Route("/session", func(r chi.Router) {
				r.Get("/", sessions.GetSession)
				r.Delete("/", sessions.Logout)
				r.Post("/login", sessions.Login)
				r.Post("/register", sessions.Register)
			})
		})
	})

	return r
}
