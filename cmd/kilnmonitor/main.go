package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/geoin-git/kiln-monitor/internal/adapter/http"
	kafkaadapter "github.com/geoin-git/kiln-monitor/internal/adapter/kafka"
	"github.com/geoin-git/kiln-monitor/internal/adapter/source"
	"github.com/geoin-git/kiln-monitor/internal/config"
	"github.com/geoin-git/kiln-monitor/internal/domain"
	"github.com/geoin-git/kiln-monitor/internal/observability"
	"github.com/geoin-git/kiln-monitor/internal/pipeline"
	"github.com/geoin-git/kiln-monitor/internal/scheduler"
)

func main() {
	// .env is optional; deployments configure through the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	normalizer := domain.NewNormalizer(cfg.LatSwapThreshold, cfg.LngSwapThreshold)
	fetcher := source.NewClient(cfg.DataURL, cfg.FetchTimeout, logger)

	// Snapshot publishing is feature-flagged via KAFKA_ENABLED.
	var publisher pipeline.Publisher
	var kafkaWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		kafkaWriter = kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.ReferenceDate, logger)
		publisher = kafkaWriter
		logger.Info("snapshot publishing enabled", "topic", cfg.KafkaTopic)
	} else {
		logger.Info("snapshot publishing disabled")
	}

	svc := pipeline.New(fetcher, publisher, normalizer, cfg.ReferenceDate, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger)

	sched, err := scheduler.New(svc, cfg.RefreshInterval, cfg.FetchTimeout, logger)
	if err != nil {
		logger.Error("failed to create scheduler", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Initial load. Failure is not fatal: the scheduler retries on its
	// interval and /readyz reports not-ready until a load succeeds.
	initCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	if err := svc.Refresh(initCtx); err != nil {
		logger.Error("initial dataset load failed", "error", err)
	}
	cancel()

	sched.Start()

	<-ctx.Done()
	logger.Info("shutting down")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
