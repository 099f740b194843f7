package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/helpboard/internal/config"
	dbRedis "github.com/kailas-cloud/helpboard/internal/db/redis"
	logpkg "github.com/kailas-cloud/helpboard/internal/logger"
	"github.com/kailas-cloud/helpboard/internal/metrics"
	listingrepo "github.com/kailas-cloud/helpboard/internal/repository/listing"
	"github.com/kailas-cloud/helpboard/internal/repository/seed"
	staterepo "github.com/kailas-cloud/helpboard/internal/repository/state"
	chiTransport "github.com/kailas-cloud/helpboard/internal/transport/chi"
	discoveryuc "github.com/kailas-cloud/helpboard/internal/usecase/discovery"
	healthuc "github.com/kailas-cloud/helpboard/internal/usecase/health"
	listinguc "github.com/kailas-cloud/helpboard/internal/usecase/listing"
	sessionuc "github.com/kailas-cloud/helpboard/internal/usecase/session"
	"github.com/kailas-cloud/helpboard/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting helpboard API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("source", cfg.Source.Kind),
		zap.String("state_backend", cfg.State.Backend),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterDiscoveryMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database is optional: the seed source and bolt/file state work without it.
	var store *dbRedis.Store
	if cfg.Database.Enabled() {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.Database.Addrs,
			Password:   cfg.Database.Password,
			ClientName: cfg.Database.ClientName,
		})
		if err != nil {
			logger.Fatal("Failed to create database store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		logger.Info("Connected to database")
	}

	var listings *listingrepo.Repo
	if store != nil {
		listings = listingrepo.New(store)
	}

	// Seed file: served directly, imported into the store, or both.
	var seedSrc *seed.Source
	if cfg.Source.Kind == config.SourceSeed || cfg.Source.Import {
		seedSrc, err = seed.NewSource(cfg.Source.SeedPath, logger)
		if err != nil {
			logger.Fatal("Failed to load seed", zap.Error(err))
		}
		logger.Info("Seed loaded", zap.String("path", cfg.Source.SeedPath))
	}
	if cfg.Source.Import {
		created, err := seed.Import(ctx, seedSrc.Dataset(), listings)
		if err != nil {
			logger.Fatal("Seed import failed", zap.Error(err))
		}
		logger.Info("Seed imported", zap.Int("created", created))
	}

	var source discoveryuc.Source
	if cfg.Source.Kind == config.SourceStore {
		source = listings
	} else {
		source = seedSrc
		if cfg.Source.Watch {
			go func() {
				if err := seedSrc.Watch(ctx); err != nil {
					logger.Error("Seed watcher stopped", zap.Error(err))
				}
			}()
		}
	}

	persister, closeState, err := buildPersister(cfg.State, store)
	if err != nil {
		logger.Fatal("Failed to open state store", zap.Error(err))
	}
	defer closeState()

	engineOpts := []discoveryuc.Option{discoveryuc.WithParallelThreshold(cfg.Discovery.ParallelThreshold)}
	if cfg.Discovery.Workers > 0 {
		engineOpts = append(engineOpts, discoveryuc.WithWorkers(cfg.Discovery.Workers))
	}
	discoverySvc := discoveryuc.New(source, discoveryuc.NewEngine(engineOpts...), discoveryuc.Config{
		DefaultLimit: cfg.Discovery.DefaultLimit,
		MaxLimit:     cfg.Discovery.MaxLimit,
		MapPadding:   cfg.Discovery.MapPadding,
	})

	// Pass nil interfaces (not typed nil pointers) when a component is absent.
	var pinger healthuc.DBPinger
	var listingSvc *listinguc.Service
	if store != nil {
		pinger = store
		listingSvc = listinguc.New(listings)
	}
	healthSvc := healthuc.New(pinger)
	if seedSrc != nil {
		healthSvc.WithCheck("seed", seedSrc)
	}
	if hc, ok := persister.(healthuc.Checker); ok {
		healthSvc.WithCheck("state", hc)
	}

	server := chiTransport.NewServer(discoverySvc, listingSvc, sessionuc.New(persister), healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildPersister opens the configured session state backend.
func buildPersister(cfg config.StateConfig, store *dbRedis.Store) (sessionuc.Persister, func(), error) {
	noop := func() {}
	switch cfg.Backend {
	case config.StateFile:
		fs, err := staterepo.NewFileStore(cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		return fs, noop, nil
	case config.StateRedis:
		return staterepo.NewKVStore(store), noop, nil
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o750); err != nil {
			return nil, noop, fmt.Errorf("create state dir: %w", err)
		}
		bs, err := staterepo.OpenBolt(cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		return bs, func() { _ = bs.Close() }, nil
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
