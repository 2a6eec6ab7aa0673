package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"amal-cms/internal/common/pagination"
	appconfig "amal-cms/internal/config"
	"amal-cms/internal/domain/entity"
	hhttp "amal-cms/internal/handler/http"
	hauth "amal-cms/internal/handler/http/auth"
	"amal-cms/internal/handler/http/content"
	"amal-cms/internal/handler/http/middleware"
	"amal-cms/internal/handler/http/requestid"
	pgRepo "amal-cms/internal/infra/adapter/persistence/postgres"
	sqliteRepo "amal-cms/internal/infra/adapter/persistence/sqlite"
	"amal-cms/internal/infra/db"
	"amal-cms/internal/observability/logging"
	"amal-cms/internal/observability/slo"
	"amal-cms/internal/observability/tracing"
	"amal-cms/internal/repository"
	"amal-cms/internal/resilience/circuitbreaker"
	authservice "amal-cms/internal/service/auth"
	contentUC "amal-cms/internal/usecase/content"
	"amal-cms/pkg/config"
	"amal-cms/pkg/security/csp"
)

func main() {
	logger := logging.NewLogger()
	validateAdminCredentials(logger)
	validateJWTSecret(logger)

	shutdownTracer, err := tracing.InitTracer("amal-cms-api")
	if err != nil {
		logger.Error("failed to initialize tracer", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			logger.Error("failed to shut down tracer", slog.Any("error", err))
		}
	}()

	driver := db.DriverFromEnv()
	database := initDatabase(logger, driver)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	components := setupServer(logger, database, driver, version)

	runServer(logger, components, version)
}

// validateAdminCredentials refuses to start with empty or weak admin
// credentials.
func validateAdminCredentials(logger *slog.Logger) {
	if err := hauth.ValidateAdminCredentials(); err != nil {
		logger.Error("admin credentials validation failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// validateJWTSecret enforces a minimum of 32 characters (256 bits) and
// rejects common weak values.
func validateJWTSecret(logger *slog.Logger) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}
	if len(secret) < 32 {
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}
	weakSecrets := []string{"secret", "password", "test", "admin", "default"}
	for _, weak := range weakSecrets {
		if secret == weak || secret == weak+"123" {
			logger.Error("JWT_SECRET must not be a common weak value", slog.String("weak_value", weak))
			os.Exit(1)
		}
	}
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger, driver string) *sql.DB {
	database := db.Open(driver)
	if err := db.MigrateUp(database, driver); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler http.Handler
	Limiter *middleware.RateLimiter
}

// setupServer configures and returns the HTTP handler with all routes and
// middleware.
func setupServer(logger *slog.Logger, database *sql.DB, driver, version string) *ServerComponents {
	rateLimitConfig, err := config.LoadRateLimitConfig()
	if err != nil {
		logger.Error("failed to load rate limit configuration", slog.Any("error", err))
		os.Exit(1)
	}

	proxyConfig, err := middleware.LoadTrustedProxyConfig()
	if err != nil {
		logger.Error("failed to load trusted proxy configuration", slog.Any("error", err))
		os.Exit(1)
	}

	var ipExtractor middleware.IPExtractor
	if proxyConfig.Enabled {
		ipExtractor = middleware.NewTrustedProxyExtractor(*proxyConfig)
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(proxyConfig.AllowedCIDRs)))
	} else {
		ipExtractor = &middleware.RemoteAddrExtractor{}
		logger.Info("rate limiting: using RemoteAddr (secure mode, proxy headers ignored)")
	}

	var limiter *middleware.RateLimiter
	if rateLimitConfig.Enabled {
		limiter = middleware.NewRateLimiter(rateLimitConfig.Limit, rateLimitConfig.Window, ipExtractor)
		logger.Info("rate limiting initialized",
			slog.Int("limit", rateLimitConfig.Limit),
			slog.Duration("window", rateLimitConfig.Window))
	} else {
		logger.Warn("rate limiting is DISABLED")
	}

	cspConfig, err := config.LoadCSPConfig()
	if err != nil {
		logger.Error("failed to load CSP configuration", slog.Any("error", err))
		os.Exit(1)
	}

	healthHandler := &hhttp.HealthHandler{
		DB:                 database,
		Version:            version,
		RateLimiterEnabled: rateLimitConfig.Enabled,
		CSPEnabled:         cspConfig.Enabled,
		CSPReportOnly:      cspConfig.ReportOnly,
	}
	if limiter != nil {
		healthHandler.RateLimiter = limiter
	}

	mux := setupRoutes(logger, database, driver, healthHandler)
	handler := applyMiddleware(logger, mux, cspConfig, limiter)

	return &ServerComponents{
		Handler: handler,
		Limiter: limiter,
	}
}

// registerContent wires one content kind: repository for the configured
// storage backend, service on top, routes under the prefix.
func registerContent[T any, P contentUC.Record[T]](
	mux *http.ServeMux,
	prefix, kind, driver string,
	q repository.Querier,
	schema *repository.Schema[T],
	paginationCfg pagination.Config,
	logger *slog.Logger,
) {
	var repo repository.ContentRepository[T]
	if driver == db.DriverSQLite {
		repo = sqliteRepo.NewContentRepo[T, P](q, schema)
	} else {
		repo = pgRepo.NewContentRepo[T, P](q, schema)
	}
	content.Register(mux, prefix, contentUC.NewService[T, P](kind, repo), paginationCfg, logger)
}

// setupRoutes registers all HTTP routes. Authorization is applied per route
// inside content.Register: reads are public, writes require the admin role.
func setupRoutes(logger *slog.Logger, database *sql.DB, driver string, healthHandler *hhttp.HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()

	securityCfg, err := appconfig.LoadSecurityConfigFromEnv()
	if err != nil {
		logger.Error("failed to load security configuration", slog.Any("error", err))
		os.Exit(1)
	}
	authProvider := hauth.NewBasicAuthProvider(securityCfg.GetMinPasswordLength(), securityCfg.GetWeakPasswords())
	authService := authservice.NewAuthService(authProvider, securityCfg.GetPublicEndpoints())

	// Brute-force protection on the login endpoint.
	loginLimiter := hauth.NewLoginLimiter(5, 5)
	mux.Handle("/auth/token", loginLimiter.Wrap(hauth.TokenHandler(authService)))

	mux.Handle("/healthz", healthHandler)
	mux.Handle("/readyz", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/livez", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	paginationCfg := pagination.LoadFromEnv()

	// All content repositories share one circuit breaker so a dead database
	// trips fast instead of piling up queries across kinds.
	q := circuitbreaker.NewDBCircuitBreaker(database)

	registerContent[entity.Program, *entity.Program](mux, "/programs", "program", driver, q, &repository.Programs, paginationCfg, logger)
	registerContent[entity.Project, *entity.Project](mux, "/projects", "project", driver, q, &repository.Projects, paginationCfg, logger)
	registerContent[entity.Activity, *entity.Activity](mux, "/activities", "activity", driver, q, &repository.Activities, paginationCfg, logger)
	registerContent[entity.Publication, *entity.Publication](mux, "/publications", "publication", driver, q, &repository.Publications, paginationCfg, logger)
	registerContent[entity.Image, *entity.Image](mux, "/images", "image", driver, q, &repository.Images, paginationCfg, logger)
	registerContent[entity.SuccessStory, *entity.SuccessStory](mux, "/stories", "story", driver, q, &repository.SuccessStories, paginationCfg, logger)
	registerContent[entity.FAQ, *entity.FAQ](mux, "/faqs", "faq", driver, q, &repository.FAQs, paginationCfg, logger)
	registerContent[entity.Job, *entity.Job](mux, "/jobs", "job", driver, q, &repository.Jobs, paginationCfg, logger)

	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
//
// Order, outermost first: CORS, request ID, tracing, rate limit, recovery,
// logging, timeout, body limit, input validation, CSP, metrics.
func applyMiddleware(
	logger *slog.Logger,
	handler http.Handler,
	cspConfig *config.CSPConfig,
	limiter *middleware.RateLimiter,
) http.Handler {
	corsConfig, err := middleware.LoadCORSConfig()
	if err != nil {
		logger.Error("failed to load CORS configuration", slog.Any("error", err))
		os.Exit(1)
	}
	corsConfig.Logger = &middleware.SlogAdapter{Logger: logger}
	logger.Info("CORS enabled",
		slog.Int("allowed_origins_count", len(corsConfig.Validator.GetAllowedOrigins())),
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Int("max_age", corsConfig.MaxAge))

	var cspMiddleware func(http.Handler) http.Handler
	if cspConfig.Enabled {
		cspMW := middleware.NewCSPMiddleware(middleware.CSPMiddlewareConfig{
			Enabled:       true,
			DefaultPolicy: csp.StrictPolicy(),
			ReportOnly:    cspConfig.ReportOnly,
		})
		cspMiddleware = cspMW.Middleware()
		logger.Info("CSP enabled", slog.Bool("report_only", cspConfig.ReportOnly))
	} else {
		cspMiddleware = func(next http.Handler) http.Handler { return next }
		logger.Warn("CSP is disabled")
	}

	requestTimeout := config.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second)

	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = cspMiddleware(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain)
	chain = hhttp.Timeout(requestTimeout)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)

	if limiter != nil {
		chain = limiter.Middleware(chain)
	}

	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = middleware.CORS(*corsConfig)(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, components *ServerComponents, version string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if components.Limiter != nil {
		go hhttp.StartRateLimitCleanup(ctx, components.Limiter, hhttp.LoadCleanupInterval())
	}

	// Availability and latency objectives are recomputed off the hot path.
	go slo.StartRecomputeLoop(ctx, time.Minute)

	addr := config.GetEnvString("HTTP_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
