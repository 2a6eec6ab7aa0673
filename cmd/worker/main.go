package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"amal-cms/internal/domain/entity"
	"amal-cms/internal/handler/http/respond"
	pgRepo "amal-cms/internal/infra/adapter/persistence/postgres"
	sqliteRepo "amal-cms/internal/infra/adapter/persistence/sqlite"
	"amal-cms/internal/infra/db"
	workerPkg "amal-cms/internal/infra/worker"
	"amal-cms/internal/repository"
	"amal-cms/internal/resilience/circuitbreaker"
	"amal-cms/internal/resilience/retry"
	contentUC "amal-cms/internal/usecase/content"
)

// The stats worker keeps the content gauges current: every schedule tick it
// recounts rows per content kind and publishes the totals to Prometheus.
// Running the counts off the request path keeps COUNT(*) queries away from
// site traffic.
func main() {
	logger := initLogger()

	driver := db.DriverFromEnv()
	database := db.Open(driver)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	waitForMigrations(ctx, logger, database)

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("stats_timeout", workerConfig.StatsTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	refresher := workerPkg.NewStatsRefresher(newCounters(driver, database), logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runMetricsServer(ctx, logger)
	})
	g.Go(func() error {
		logger.Info("health check server starting", slog.String("addr", healthAddr))
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		startCronWorker(ctx, logger, refresher, workerConfig, workerMetrics, healthServer)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("worker stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger initializes a JSON logger honoring LOG_LEVEL.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// waitForMigrations blocks until the API's migrations created the schema.
func waitForMigrations(ctx context.Context, logger *slog.Logger, database *sql.DB) {
	const probe = "SELECT 1 FROM programs LIMIT 1"
	err := retry.WithBackoff(ctx, retry.MigrationWaitConfig(), func() error {
		_, err := database.ExecContext(ctx, probe)
		return err
	})
	if err != nil {
		logger.Error("migrations did not complete in time", slog.Any("error", err))
		os.Exit(1)
	}
}

// newCounter builds one content service for the configured storage backend.
func newCounter[T any, P contentUC.Record[T]](driver, kind string, q repository.Querier, schema *repository.Schema[T]) workerPkg.ContentCounter {
	var repo repository.ContentRepository[T]
	if driver == db.DriverSQLite {
		repo = sqliteRepo.NewContentRepo[T, P](q, schema)
	} else {
		repo = pgRepo.NewContentRepo[T, P](q, schema)
	}
	return contentUC.NewService[T, P](kind, repo)
}

// newCounters wires one counter per content kind over a shared circuit
// breaker so a dead database trips fast instead of piling up queries.
func newCounters(driver string, database *sql.DB) map[string]workerPkg.ContentCounter {
	q := circuitbreaker.NewDBCircuitBreaker(database)
	return map[string]workerPkg.ContentCounter{
		"program":     newCounter[entity.Program, *entity.Program](driver, "program", q, &repository.Programs),
		"project":     newCounter[entity.Project, *entity.Project](driver, "project", q, &repository.Projects),
		"activity":    newCounter[entity.Activity, *entity.Activity](driver, "activity", q, &repository.Activities),
		"publication": newCounter[entity.Publication, *entity.Publication](driver, "publication", q, &repository.Publications),
		"image":       newCounter[entity.Image, *entity.Image](driver, "image", q, &repository.Images),
		"story":       newCounter[entity.SuccessStory, *entity.SuccessStory](driver, "story", q, &repository.SuccessStories),
		"faq":         newCounter[entity.FAQ, *entity.FAQ](driver, "faq", q, &repository.FAQs),
		"job":         newCounter[entity.Job, *entity.Job](driver, "job", q, &repository.Jobs),
	}
}

// startCronWorker schedules the refresh job and blocks until shutdown.
func startCronWorker(ctx context.Context, logger *slog.Logger, refresher *workerPkg.StatsRefresher, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runStatsJob(logger, refresher, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	// Prime the gauges right away instead of waiting for the first tick.
	runStatsJob(logger, refresher, cfg, metrics)

	<-ctx.Done()
	healthServer.SetReady(false)

	stopCtx := c.Stop()
	<-stopCtx.Done()
	logger.Info("worker stopped")
}

// runStatsJob executes a single refresh run with timeout and error handling.
func runStatsJob(logger *slog.Logger, refresher *workerPkg.StatsRefresher, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) {
	startTime := time.Now()
	logger.Info("stats refresh started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.StatsTimeout)
	defer cancel()

	refreshed, err := refresher.RefreshAll(ctx)
	if err != nil {
		logger.Error("stats refresh failed", slog.String("error", respond.SanitizeError(err)))
		metrics.RecordJobRun("failure")
		metrics.RecordJobDuration(time.Since(startTime).Seconds())
		return
	}

	metrics.RecordJobRun("success")
	metrics.RecordJobDuration(time.Since(startTime).Seconds())
	metrics.RecordKindsRefreshed(refreshed)
	metrics.RecordLastSuccess()

	logger.Info("stats refresh completed",
		slog.Int("kinds", refreshed),
		slog.Duration("duration", time.Since(startTime)))
}
