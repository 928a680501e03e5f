// Command server runs the attrition scoring API. main wires dependencies
// and owns the process lifecycle; business logic lives in the internal
// packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"attrisk/internal/auth"
	"attrisk/internal/auth/lockout"
	authMetrics "attrisk/internal/auth/metrics"
	"attrisk/internal/health"
	"attrisk/internal/history"
	"attrisk/internal/model"
	"attrisk/internal/platform/config"
	"attrisk/internal/platform/httpserver"
	"attrisk/internal/platform/logger"
	"attrisk/internal/platform/middleware"
	"attrisk/internal/platform/postgres"
	"attrisk/internal/platform/redis"
	"attrisk/internal/scoring/handler"
	scoringMetrics "attrisk/internal/scoring/metrics"
	"attrisk/internal/scoring/service"
	"attrisk/pkg/platform/audit"
	auditstore "attrisk/pkg/platform/audit/store"
	auditworker "attrisk/pkg/platform/audit/worker"
	"attrisk/pkg/platform/middleware/metadata"
	"attrisk/pkg/platform/middleware/requesttime"
)

const auditInboxSize = 256

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage. An empty DATABASE_URL keeps everything in memory, which is
	// enough for local runs and tests.
	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to open database", "error", err.Error())
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Error("failed to ensure schema", "error", err.Error())
			os.Exit(1)
		}
	}

	// Classifier artifact. A missing model is not fatal: the service starts
	// degraded and /predict answers 503 until the artifact is deployed.
	clf, err := model.Load(cfg.ModelPath)
	if err != nil {
		log.Warn("classifier artifact not loaded, predictions disabled",
			"path", cfg.ModelPath,
			"error", err.Error(),
		)
		clf = nil
	}
	adapter := model.NewAdapter(clf)

	// Credentials: the database table when available, otherwise the fixed
	// bootstrap identity from the environment.
	verifier, err := buildVerifier(cfg, db)
	if err != nil {
		log.Error("failed to configure authentication", "error", err.Error())
		os.Exit(1)
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var lockStore lockout.Store
	var memLocks *lockout.MemoryStore
	if redisClient != nil {
		lockStore = lockout.NewRedisStore(redisClient.Client)
	} else {
		memLocks = lockout.NewMemoryStore()
		lockStore = memLocks
	}
	locks, err := lockout.New(lockStore, lockout.WithLogger(log))
	if err != nil {
		log.Error("failed to configure lockout", "error", err.Error())
		os.Exit(1)
	}

	// Audit pipeline: handlers publish, one worker persists.
	auditInbox := make(chan audit.Event, auditInboxSize)
	auditor := audit.NewPublisher(auditInbox, log)
	var auditStore audit.Store
	if db != nil {
		auditStore = auditstore.NewPostgres(db)
	} else {
		auditStore = auditstore.NewMemory()
	}

	var histStore history.Store
	if db != nil {
		histStore = history.NewPostgres(db)
	} else {
		histStore = history.NewInMemory()
	}

	svc := service.NewService(adapter, histStore,
		service.WithAudit(auditor),
		service.WithMetrics(scoringMetrics.New()),
		service.WithLogger(log),
	)

	gate := middleware.RequireCredentials(verifier, locks, authMetrics.New(), auditor, log)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	handler.New(svc, log, gate).Register(r)
	var pinger health.Pinger
	if db != nil {
		pinger = db
	}
	health.New(adapter, pinger).Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return auditworker.New(auditStore, auditInbox, log).Run(gctx)
	})
	if memLocks != nil {
		g.Go(func() error {
			return memLocks.Sweep(gctx, time.Minute)
		})
	}
	g.Go(func() error {
		log.Info("starting attrisk server",
			"addr", cfg.Addr,
			"model_loaded", adapter.Loaded(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited with error", "error", err.Error())
		os.Exit(1)
	}
	log.Info("server stopped")
}

func buildVerifier(cfg config.Server, db *sql.DB) (auth.Verifier, error) {
	if db != nil {
		return auth.NewStoreVerifier(auth.NewPostgres(db))
	}
	if cfg.BootstrapUsername != "" && cfg.BootstrapPassword != "" {
		return auth.NewFixedVerifier(cfg.BootstrapUsername, cfg.BootstrapPassword)
	}
	return nil, errors.New("no credential source configured: set DATABASE_URL or API_USERNAME/API_PASSWORD")
}
