package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentry "github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	_ "github.com/avencare/hospital_finance_app/cmd/docs"
	"github.com/avencare/hospital_finance_app/internal/core/services"
	"github.com/avencare/hospital_finance_app/internal/dto"
	"github.com/avencare/hospital_finance_app/internal/handlers"
	"github.com/avencare/hospital_finance_app/internal/middleware"
	"github.com/avencare/hospital_finance_app/internal/platform/config"
	"github.com/avencare/hospital_finance_app/internal/repositories/database/pgsql"
	"github.com/avencare/hospital_finance_app/pkg/database"
)

//	@title			Hospital Finance API
//	@version		1.0
//	@description	Double-entry finance core: journal, cash sessions, doctor payables, corporate accruals
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if cfg.SentryDSN != "" {
		environment := "development"
		if cfg.IsProduction {
			environment = "production"
		}
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: environment,
		}); err != nil {
			logger.Error("sentry initialization failed", "error", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if err := runMigrations(cfg.PostgresURL, logger); err != nil {
		logger.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPgxPool(ctx, cfg.PostgresURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	repos := pgsql.NewRepositoryProvider(pool)
	svcs := services.NewServiceContainer(repos, cfg.OutboxMaxAttempts)
	dto.RegisterValidators()

	go services.StartCorporateOutboxWorker(ctx, svcs.Corporate, cfg.OutboxTick, logger)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.SentryDSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("failed to configure trusted proxies", "error", err)
		os.Exit(1)
	}

	handlers.RegisterHandlers(r, svcs, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func runMigrations(databaseURL string, logger *slog.Logger) error {
	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	logger.Info("database migrations applied")
	return nil
}
