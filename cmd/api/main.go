package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	validator "github.com/go-playground/validator/v10"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"

	"github.com/ruenthai/backend-pos/internal/accounting"
	"github.com/ruenthai/backend-pos/internal/analytics"
	"github.com/ruenthai/backend-pos/internal/audit"
	"github.com/ruenthai/backend-pos/internal/cart"
	"github.com/ruenthai/backend-pos/internal/catalog"
	"github.com/ruenthai/backend-pos/internal/checkout"
	"github.com/ruenthai/backend-pos/internal/common"
	"github.com/ruenthai/backend-pos/internal/config"
	"github.com/ruenthai/backend-pos/internal/drawer"
	"github.com/ruenthai/backend-pos/internal/events"
	"github.com/ruenthai/backend-pos/internal/health"
	"github.com/ruenthai/backend-pos/internal/hr"
	"github.com/ruenthai/backend-pos/internal/inventory"
	"github.com/ruenthai/backend-pos/internal/obs"
	"github.com/ruenthai/backend-pos/internal/order"
	"github.com/ruenthai/backend-pos/internal/security"
	"github.com/ruenthai/backend-pos/internal/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "pos")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)

	tracingEnabled := envBool("OBS_ENABLE_TRACING", true)
	if tracingEnabled {
		sampling := envFloat("OBS_TRACING_SAMPLING_RATIO", 1.0)
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "pos-api",
			Endpoint:      envOrDefault("OBS_OTLP_ENDPOINT", ""),
			Exporter:      envOrDefault("OBS_TRACING_EXPORTER", "otlp"),
			SamplingRatio: sampling,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	if envBool("DB_MIGRATE_ON_START", true) {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			logger.Fatal().Err(err).Msg("apply migrations")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse database config")
	}
	poolConfig.ConnConfig.Tracer = obs.PGXTracer{}
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "pos-api"

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}

	var redisClient *redis.Client
	if strings.TrimSpace(cfg.RedisURL) != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("parse redis url")
		}
		redisClient = redis.NewClient(redisOpts)
		if err := redisotel.InstrumentTracing(redisClient); err != nil {
			logger.Error().Err(err).Msg("instrument redis tracing")
		}
		if metricsEnabled {
			if err := redisotel.InstrumentMetrics(redisClient); err != nil {
				logger.Error().Err(err).Msg("instrument redis metrics")
			}
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error().Err(err).Msg("close redis")
			}
		}()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("ping redis")
		}
	} else {
		logger.Warn().Msg("REDIS_URL not set, idempotency and report caching disabled")
	}

	validate := validator.New()

	auditSvc := &audit.Service{Store: audit.PGStore{Pool: pool}, Log: logger}
	auditHandler := &audit.Handler{Svc: auditSvc}

	catalogSvc := &catalog.Service{Store: catalog.PGStore{Pool: pool}}
	catalogHandler := &catalog.Handler{Svc: catalogSvc, Validate: validate}

	cartSvc := cart.NewService(catalogSvc)
	cartHandler := &cart.Handler{Svc: cartSvc, TaxBps: cfg.TaxRateBps}

	var posMetrics *obs.POSMetrics
	if metricsEnabled {
		posMetrics = obs.NewPOSMetrics(metricsNamespace, nil)
	}

	drawerSvc := &drawer.Service{Store: drawer.PGStore{Pool: pool}, Audit: auditSvc}
	drawerHandler := &drawer.Handler{Svc: drawerSvc, Validate: validate, Metrics: posMetrics}

	inventorySvc := &inventory.Service{Store: inventory.PGStore{Pool: pool}, Log: logger}
	inventoryHandler := &inventory.Handler{Svc: inventorySvc, Validate: validate}

	bus := &events.Bus{
		Store:     events.PGStore{Pool: pool},
		Notifiers: []events.Notifier{inventory.Notifier{Svc: inventorySvc}},
	}

	orderStore := order.PGStore{Pool: pool}
	checkoutSvc := &checkout.Service{
		Carts:  cartSvc,
		Drawer: drawerSvc,
		Orders: orderStore,
		Bus:    bus,
		Audit:  auditSvc,
		Log:    logger,
		TaxBps: cfg.TaxRateBps,
	}
	checkoutHandler := &checkout.Handler{Svc: checkoutSvc, Validate: validate, Metrics: posMetrics}
	orderHandler := &order.Handler{Store: orderStore}

	analyticsSvc := &analytics.Service{
		Orders: orderStore,
		Cache:  redisClient,
		TTL:    envDurationMillis("ANALYTICS_CACHE_TTL_MS", int((24 * time.Hour).Milliseconds())),
		Log:    logger,
	}
	analyticsHandler := &analytics.Handler{Svc: analyticsSvc}

	hrSvc := &hr.Service{Store: hr.PGStore{Pool: pool}}
	hrHandler := &hr.Handler{Svc: hrSvc, Validate: validate}

	timesheet := &hr.Timesheet{Roster: hrSvc, Store: hr.PGTimeStore{Pool: pool}}
	timesheetHandler := &hr.TimesheetHandler{Sheet: timesheet}

	accountingSvc := &accounting.Service{Store: accounting.PGStore{Pool: pool}}
	accountingHandler := &accounting.Handler{Svc: accountingSvc}

	settingsSvc := &settings.Service{Store: settings.PGStore{Pool: pool}}
	settingsHandler := &settings.Handler{Svc: settingsSvc}

	idem := common.Idem{R: redisClient, TTL: cfg.IdempotencyTTL}

	var httpMetrics *obs.HTTPMetrics
	if metricsEnabled {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, buckets, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if metricsEnabled && httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(security.Headers{Enable: envBool("SECURE_HEADERS", true)}.Middleware)
	r.Use(security.BodyLimit{Max: cfg.MaxBodyBytes}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Idempotency-Key", "X-Terminal-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	healthHandler := health.Handler{
		Checker:      readinessChecker{db: pool, redis: redisClient},
		DBTimeout:    envDurationMillis("HEALTH_READY_DB_TIMEOUT_MS", 500),
		RedisTimeout: envDurationMillis("HEALTH_READY_REDIS_TIMEOUT_MS", 300),
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Route("/menu", func(m chi.Router) {
			m.Get("/categories", catalogHandler.Categories)
			m.Post("/categories", catalogHandler.CreateCategory)
			m.Put("/categories/{id}", catalogHandler.UpdateCategory)
			m.Get("/items", catalogHandler.Items)
			m.Post("/items", catalogHandler.CreateItem)
			m.Get("/items/{id}", catalogHandler.Item)
			m.Put("/items/{id}", catalogHandler.UpdateItem)
			m.Delete("/items/{id}", catalogHandler.DeleteItem)
		})

		v.Route("/cart", func(c chi.Router) {
			c.Get("/", cartHandler.Get)
			c.Post("/items", cartHandler.AddItem)
			c.Patch("/items/{itemId}", cartHandler.UpdateLine)
			c.Delete("/items/{itemId}", cartHandler.RemoveLine)
			c.Delete("/", cartHandler.Clear)
		})

		v.Route("/checkout", func(c chi.Router) {
			c.Get("/", checkoutHandler.Preview)
			c.With(idem.Middleware).Post("/", checkoutHandler.Finalize)
			c.Post("/cancel", checkoutHandler.Cancel)
		})

		v.Route("/drawer", func(d chi.Router) {
			d.Get("/", drawerHandler.Summary)
			d.Get("/shifts", drawerHandler.History)
			d.Group(func(g chi.Router) {
				g.Use(idem.Middleware)
				g.Post("/open", drawerHandler.Open)
				g.Post("/withdraw", drawerHandler.Withdraw)
				g.Post("/close", drawerHandler.Close)
			})
		})

		v.Route("/orders", func(o chi.Router) {
			o.Get("/", orderHandler.List)
			o.Get("/{orderID}", orderHandler.Get)
		})

		v.Route("/inventory", func(i chi.Router) {
			i.Get("/", inventoryHandler.List)
			i.Put("/", inventoryHandler.SetLevel)
		})

		v.Route("/hr/employees", func(e chi.Router) {
			e.Get("/", hrHandler.List)
			e.Post("/", hrHandler.Create)
			e.Get("/{employeeID}", hrHandler.Get)
			e.Put("/{employeeID}", hrHandler.Update)
			e.Post("/{employeeID}/clock-in", timesheetHandler.ClockIn)
			e.Post("/{employeeID}/clock-out", timesheetHandler.ClockOut)
			e.Get("/{employeeID}/time-entries", timesheetHandler.Entries)
		})

		v.Route("/accounting/expenses", func(a chi.Router) {
			a.Get("/", accountingHandler.List)
			a.Post("/", accountingHandler.Record)
			a.Get("/summary", accountingHandler.Summary)
			a.Delete("/{expenseID}", accountingHandler.Delete)
		})

		v.Route("/settings", func(s chi.Router) {
			s.Get("/", settingsHandler.Get)
			s.Put("/", settingsHandler.Update)
		})

		v.Get("/analytics/daily", analyticsHandler.Daily)
		v.Get("/audit", auditHandler.List)
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("server stopped")
}

func runMigrations(databaseURL string) error {
	source := envOrDefault("DB_MIGRATIONS_DIR", "file://migrations")
	m, err := migrate.New(source, databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

type readinessChecker struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func (c readinessChecker) PingDB(ctx context.Context, timeout time.Duration) error {
	if c.db == nil {
		return errors.New("db not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.db.Ping(ctx)
}

func (c readinessChecker) PingRedis(ctx context.Context, timeout time.Duration) error {
	if c.redis == nil {
		// redis is optional for the POS core
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.redis.Ping(ctx).Err()
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDurationMillis(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Millisecond
}
