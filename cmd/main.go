package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"storefront-service/internal/api"
	"storefront-service/internal/config"
	"storefront-service/internal/logger"
	"storefront-service/internal/session"
	"storefront-service/internal/store"
)

const appName = "StorefrontService"

func main() {
	if err := godotenv.Load(); err != nil {
		// Not fatal: environment variables may be set some other way.
		os.Stderr.WriteString("no .env file found, relying on system environment\n")
	}

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck
	log.Infow("starting service", "app", appName, "env", cfg.AppEnv, "catalog_source", cfg.CatalogSource)

	// --- Catalog Source ---
	source, closeSource, err := buildCatalogSource(cfg, log)
	if err != nil {
		log.Fatalw("failed to initialize catalog source", "error", err)
	}
	defer closeSource()

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	products, err := source.LoadProducts(loadCtx)
	cancelLoad()
	if err != nil {
		log.Fatalw("failed to load product catalog", "error", err)
	}
	log.Infow("catalog loaded", "products", len(products))

	// --- Session Manager ---
	sessions := session.NewManager(products, cfg.SessionTTL)
	pruneDone := make(chan struct{})
	go pruneSessions(sessions, cfg.SessionTTL, log, pruneDone)

	// --- HTTP Server ---
	handler := api.NewHTTPHandler(sessions, log)
	router := chi.NewRouter()
	setupBaseMiddleware(router)
	registerHealthCheck(router, sessions)
	handler.RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HttpServer.Port,
		Handler:      router,
		ReadTimeout:  cfg.HttpServer.TimeoutRead,
		WriteTimeout: cfg.HttpServer.TimeoutWrite,
		IdleTimeout:  cfg.HttpServer.TimeoutIdle,
	}

	go func() {
		log.Infow("HTTP server listening", "port", cfg.HttpServer.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("HTTP server error", "error", err)
		}
	}()

	// --- gRPC Health Server ---
	grpcServer, healthServer := setupGRPCServer(log)
	grpcListener, err := net.Listen("tcp", ":"+cfg.GrpcServer.Port)
	if err != nil {
		log.Fatalw("failed to listen for gRPC", "port", cfg.GrpcServer.Port, "error", err)
	}
	go func() {
		log.Infow("gRPC server listening", "port", cfg.GrpcServer.Port)
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			log.Fatalw("gRPC server error", "error", err)
		}
	}()

	waitForShutdown(log, httpServer, grpcServer, healthServer, pruneDone)
	log.Infow("service shutdown complete")
}

// buildCatalogSource picks the configured ProductSource. The returned
// closer is a no-op for the sample source.
func buildCatalogSource(cfg *config.Config, log *zap.SugaredLogger) (store.ProductSource, func(), error) {
	if cfg.CatalogSource == config.SourceSample {
		return store.NewSampleSource(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.Postgres.DSN())
	if err != nil {
		return nil, nil, err
	}
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, err
	}

	source := store.NewPostgresSource(db)
	closer := func() {
		if err := source.Close(); err != nil {
			log.Warnw("error closing catalog database", "error", err)
		}
	}
	return source, closer, nil
}

func pruneSessions(sessions *session.Manager, ttl time.Duration, log *zap.SugaredLogger, done <-chan struct{}) {
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := sessions.PruneIdle(); n > 0 {
				log.Debugw("pruned idle sessions", "count", n, "live", sessions.Len())
			}
		case <-done:
			return
		}
	}
}

func setupBaseMiddleware(router *chi.Mux) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
}

func registerHealthCheck(router *chi.Mux, sessions *session.Manager) {
	router.Get("/api/v1/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"status":        "healthy",
			"serviceName":   appName,
			"timestamp":     time.Now().UTC().Format(time.RFC3339),
			"live_sessions": sessions.Len(),
		})
	})
}

func setupGRPCServer(log *zap.SugaredLogger) (*grpc.Server, *health.Server) {
	s := grpc.NewServer()

	// Standard gRPC health checking protocol, used by orchestration probes.
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(s, healthServer)

	// Reflection, for tools like grpcurl.
	reflection.Register(s)
	log.Infow("gRPC health and reflection services registered")

	return s, healthServer
}

func waitForShutdown(
	log *zap.SugaredLogger,
	httpServer *http.Server,
	grpcServer *grpc.Server,
	healthServer *health.Server,
	pruneDone chan struct{},
) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	received := <-sigChan
	log.Infow("received signal, starting graceful shutdown", "signal", received.String())

	close(pruneDone)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stoppedGrpc := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stoppedGrpc)
	}()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warnw("HTTP server graceful shutdown failed", "error", err)
	} else {
		log.Infow("HTTP server gracefully shut down")
	}

	select {
	case <-stoppedGrpc:
		log.Infow("gRPC server gracefully shut down")
	case <-shutdownCtx.Done():
		log.Warnw("gRPC graceful shutdown timed out, forcing stop")
		grpcServer.Stop()
	}
}
