package main

import (
	"context"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aescanero/predictor/internal/application/inference"
	"github.com/aescanero/predictor/internal/config"
	"github.com/aescanero/predictor/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/predictor/pkg/api/grpc"
	"github.com/aescanero/predictor/pkg/api/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting predictor",
		zap.String("version", Version),
		zap.String("build_time", BuildTime))

	if cfg.RawPort != "" && !cfg.HasValidPort() {
		logger.Warn("ignoring invalid PORT, using default",
			zap.String("port", cfg.RawPort),
			zap.Int("default", config.DefaultHTTPPort))
	}

	metricsCollector := prometheus.NewCollector(promclient.DefaultRegisterer)
	predictor := inference.NewPredictor(inference.NewValidator())

	var metricsHandler nethttp.Handler
	if cfg.MetricsEnabled {
		metricsHandler = promhttp.Handler()
	}

	httpServer := http.NewServer(&http.Config{
		Addr:           cfg.GetHTTPAddr(),
		Predictor:      predictor,
		Metrics:        metricsCollector,
		Logger:         logger,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		MetricsHandler: metricsHandler,
		ReadTimeout:    cfg.Timeouts.ReadTimeout,
		WriteTimeout:   cfg.Timeouts.WriteTimeout,
		IdleTimeout:    cfg.Timeouts.IdleTimeout,
	})

	var grpcServer *grpc.Server
	if cfg.GRPCPort != 0 {
		grpcServer, err = grpc.NewServer(&grpc.Config{
			Addr:   cfg.GetGRPCAddr(),
			Logger: logger,
		})
		if err != nil {
			logger.Fatal("failed to create gRPC server", zap.Error(err))
		}
	}

	// Start servers
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	if grpcServer != nil {
		go func() {
			if err := grpcServer.Start(); err != nil {
				logger.Fatal("gRPC server failed", zap.Error(err))
			}
		}()
	}

	logger.Info("predictor started",
		zap.String("http_addr", cfg.GetHTTPAddr()),
		zap.Int("grpc_port", cfg.GRPCPort),
		zap.Bool("metrics_enabled", cfg.MetricsEnabled))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("received shutdown signal")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
	defer cancel()

	// gRPC health flips to NOT_SERVING first so probes stop routing traffic
	if grpcServer != nil {
		if err := grpcServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("gRPC server shutdown error", zap.Error(err))
		}
	}

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	logger.Info("predictor shut down complete")
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
