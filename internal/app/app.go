package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Thamizhjaisankar-git/amazon-clone/internal/catalog"
	"github.com/Thamizhjaisankar-git/amazon-clone/internal/config"
	"github.com/Thamizhjaisankar-git/amazon-clone/internal/event"
	handler "github.com/Thamizhjaisankar-git/amazon-clone/internal/handler/http"
	"github.com/Thamizhjaisankar-git/amazon-clone/internal/storage"
	"github.com/Thamizhjaisankar-git/amazon-clone/internal/storage/memory"
	pgstore "github.com/Thamizhjaisankar-git/amazon-clone/internal/storage/postgres"
	redisstore "github.com/Thamizhjaisankar-git/amazon-clone/internal/storage/redis"
	"github.com/Thamizhjaisankar-git/amazon-clone/internal/store"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/database"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/health"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/httpclient"
	pkgkafka "github.com/Thamizhjaisankar-git/amazon-clone/pkg/kafka"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/middleware"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/tracing"
)

const (
	serviceName      = "storefront"
	metricsNamespace = "storefront"
)

type closer struct {
	name  string
	close func() error
}

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	closers    []closer
	tracing    tracing.Shutdown
	handler    http.Handler
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
// Metrics go to the default Prometheus registry.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	return newApp(cfg, logger, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

func newApp(cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer, gatherer prometheus.Gatherer) (_ *App, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			a.closeAll()
		}
	}()

	a.tracing, err = tracing.Init(ctx, tracing.Config{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Endpoint:    cfg.OTELEndpoint,
		SampleRate:  cfg.OTELSampleRate,
		Enabled:     cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	database.SetSlowQueryLogging(time.Duration(cfg.SlowQueryThresholdMs)*time.Millisecond, logger)

	healthHandler := health.NewHandler()

	backend, err := a.openStorage(ctx, healthHandler, reg)
	if err != nil {
		return nil, err
	}

	breakerMetrics := httpclient.NewBreakerMetrics(metricsNamespace, reg)
	cat, err := loadCatalog(ctx, cfg, breakerMetrics, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog loaded",
		slog.Int("products", cat.Len()),
		slog.Int("categories", len(cat.Categories())),
	)

	var hooks store.Hooks
	if cfg.KafkaEnabled {
		producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		a.closers = append(a.closers, closer{"kafka producer", producer.Close})
		healthHandler.Register("kafka", producer.Ping)
		hooks = event.NewPublisher(producer, logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	stores := store.NewFactory(backend, logger, store.NewMetrics(metricsNamespace, reg), hooks)

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSAllowedOrigins

	a.handler = handler.NewRouter(handler.RouterConfig{
		Catalog:        cat,
		Stores:         stores,
		Health:         healthHandler,
		Logger:         logger,
		Metrics:        middleware.NewHTTPMetrics(metricsNamespace, reg),
		Gatherer:       gatherer,
		CORS:           cors,
		CatalogMaxAge:  cfg.CatalogMaxAge,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      a.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return a, nil
}

// openStorage connects the configured state backend and registers its
// readiness check.
func (a *App) openStorage(ctx context.Context, h *health.Handler, reg prometheus.Registerer) (storage.Storage, error) {
	switch a.cfg.StorageBackend {
	case config.BackendRedis:
		rdb, err := database.NewRedisClient(ctx, a.cfg.Redis())
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.closers = append(a.closers, closer{"redis", rdb.Close})
		s := redisstore.New(rdb, a.cfg.StateTTL())
		h.Register("redis", s.Ping)
		a.logger.Info("connected to Redis",
			slog.String("addr", a.cfg.RedisAddr),
			slog.Int("db", a.cfg.RedisDB),
		)
		return s, nil

	case config.BackendPostgres:
		pool, err := database.NewPostgresPool(ctx, a.cfg.Postgres(), a.logger)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		a.closers = append(a.closers, closer{"postgres", func() error { pool.Close(); return nil }})
		if err := database.RunMigrations(ctx, pool, pgstore.Migrations(), a.logger); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		if err := reg.Register(database.NewPoolStatsCollector(pool, metricsNamespace)); err != nil {
			return nil, fmt.Errorf("register pool metrics: %w", err)
		}
		h.Register("postgres", pool.Ping)
		return pgstore.New(pool), nil

	default:
		a.logger.Warn("using in-memory state storage; state is lost on restart")
		return memory.New(), nil
	}
}

func loadCatalog(ctx context.Context, cfg *config.Config, metrics *httpclient.BreakerMetrics, logger *slog.Logger) (*catalog.Catalog, error) {
	switch {
	case cfg.CatalogURL != "":
		client := httpclient.NewCircuitBreakerClient(
			httpclient.New(httpclient.DefaultConfig()),
			cfg.CatalogBreaker(),
			metrics,
			logger,
		)
		c, err := catalog.LoadURL(ctx, client, cfg.CatalogURL)
		if err != nil {
			return nil, fmt.Errorf("load catalog from %s: %w", cfg.CatalogURL, err)
		}
		return c, nil
	case cfg.CatalogPath != "":
		c, err := catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("load catalog from %s: %w", cfg.CatalogPath, err)
		}
		return c, nil
	default:
		return catalog.Seed()
	}
}

// Handler returns the HTTP handler the server runs.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.closeAll()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.closeAll()

	if a.tracing != nil {
		if err := a.tracing(shutdownCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}

// closeAll releases backends in reverse order of opening.
func (a *App) closeAll() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.close(); err != nil {
			a.logger.Error(c.name+" close error", slog.String("error", err.Error()))
		}
	}
	a.closers = nil
}
