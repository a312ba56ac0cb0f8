// Command quakewatch polls the USGS earthquake feed on an interval and
// publishes previously unseen events to a sink (Kafka when enabled, the log
// otherwise). It also serves health, readiness, and metrics endpoints.
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

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/quake-feed/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/quake-feed/internal/adapter/kafka"
	"github.com/couchcryptid/quake-feed/internal/adapter/usgs"
	"github.com/couchcryptid/quake-feed/internal/boundary"
	"github.com/couchcryptid/quake-feed/internal/client"
	"github.com/couchcryptid/quake-feed/internal/config"
	"github.com/couchcryptid/quake-feed/internal/domain"
	"github.com/couchcryptid/quake-feed/internal/observability"
	"github.com/couchcryptid/quake-feed/internal/watch"
)

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	index, err := loadIndex(cfg)
	if err != nil {
		logger.Error("failed to load boundary dataset", "error", err, "path", cfg.BoundaryDataPath)
		os.Exit(1)
	}

	var transport domain.Transport = usgs.NewClient(cfg.USGSBaseURL, cfg.USGSTimeout, metrics, logger)
	transport = usgs.NewCachedTransport(transport, cfg.QueryCacheSize, metrics)

	qc := client.New(transport, usgs.Codec{}, index, metrics, logger)

	fetcher := watch.FetcherFunc(func(ctx context.Context, from, to time.Time) (domain.ResultSet, error) {
		b := qc.Query().
			StartAt(from).
			EndAt(to).
			OrderBy(domain.OrderTimeAsc)
		if cfg.WatchCountry != "" {
			b = b.Country(cfg.WatchCountry)
		}
		if cfg.WatchMinMagnitude > 0 {
			b = b.MinMagnitude(cfg.WatchMinMagnitude)
		}
		return b.Fetch(ctx)
	})

	// Sink selection (feature-flagged via KAFKA_ENABLED).
	var sink watch.Sink
	var kafkaWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		kafkaWriter = kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaSinkTopic, logger)
		sink = kafkaWriter
		logger.Info("kafka sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	} else {
		sink = watch.NewLogSink(logger)
		logger.Info("kafka sink disabled, logging events")
	}

	w := watch.New(fetcher, sink, clockwork.NewRealClock(), cfg.WatchInterval, cfg.WatchLookback, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, w, index, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start watcher.
	go func() {
		if err := w.Run(ctx); err != nil {
			logger.Error("watcher error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

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

// loadIndex builds the boundary index from BOUNDARY_DATA_PATH when set,
// otherwise from the embedded dataset.
func loadIndex(cfg *config.Config) (*boundary.Index, error) {
	if cfg.BoundaryDataPath != "" {
		return boundary.NewIndex(boundary.FileSource(cfg.BoundaryDataPath))
	}
	return boundary.Default()
}
