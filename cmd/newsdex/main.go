package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/newsdex/internal/bootstrap"
	"github.com/kailas-cloud/newsdex/internal/config"
	"github.com/kailas-cloud/newsdex/internal/engine"
	logpkg "github.com/kailas-cloud/newsdex/internal/logger"
	"github.com/kailas-cloud/newsdex/internal/metrics"
	"github.com/kailas-cloud/newsdex/internal/query"
	chiTransport "github.com/kailas-cloud/newsdex/internal/transport/chi"
	aggregationuc "github.com/kailas-cloud/newsdex/internal/usecase/aggregation"
	healthuc "github.com/kailas-cloud/newsdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/newsdex/internal/usecase/search"
	"github.com/kailas-cloud/newsdex/internal/version"
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

	logger.Info("Starting newsdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("engine_driver", cfg.Engine.Driver),
		zap.Strings("engine_addrs", cfg.Engine.Addrs),
		zap.String("engine_index", cfg.Engine.Index),
	)

	ctx := context.Background()
	driver, err := bootstrap.OpenDriver(ctx, cfg.Engine)
	if err != nil {
		logger.Fatal("Failed to create engine driver", zap.Error(err))
	}

	gateway := engine.NewGateway(driver, cfg.Engine.Timeout())
	defer func() { _ = gateway.Close() }()

	// Wait for the engine to be ready
	readiness := time.Duration(cfg.Engine.ReadinessTimeout) * time.Second
	if err := gateway.WaitForReady(ctx, readiness); err != nil {
		logger.Fatal("Engine not ready", zap.Error(err))
	}
	logger.Info("Connected to engine", zap.String("driver", gateway.Driver()))

	// Register engine metrics explicitly (no init())
	metrics.RegisterEngineMetrics()

	builder := query.NewBuilder(cfg.Engine.Index, cfg.Search.MaxResults)
	searchSvc := searchuc.New(gateway, builder)
	aggSvc := aggregationuc.New(gateway, builder)
	healthSvc := healthuc.New(gateway, gateway.Driver())

	server := chiTransport.NewServer(searchSvc, aggSvc, healthSvc, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
