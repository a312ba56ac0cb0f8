package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"USGS_BASE_URL", "USGS_TIMEOUT", "QUERY_CACHE_SIZE", "BOUNDARY_DATA_PATH",
		"WATCH_COUNTRY", "WATCH_MIN_MAGNITUDE", "WATCH_INTERVAL", "WATCH_LOOKBACK",
		"KAFKA_ENABLED", "KAFKA_BROKERS", "KAFKA_SINK_TOPIC",
		"HTTP_ADDR", "LOG_LEVEL", "LOG_FORMAT", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.USGSBaseURL)
	assert.Equal(t, 10*time.Second, cfg.USGSTimeout)
	assert.Equal(t, 128, cfg.QueryCacheSize)
	assert.Empty(t, cfg.BoundaryDataPath)
	assert.Empty(t, cfg.WatchCountry)
	assert.Zero(t, cfg.WatchMinMagnitude)
	assert.Equal(t, time.Minute, cfg.WatchInterval)
	assert.Equal(t, 15*time.Minute, cfg.WatchLookback)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "earthquake-events", cfg.KafkaSinkTopic)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("USGS_BASE_URL", "http://localhost:9999/fdsnws/event/1/query?format=geojson")
	t.Setenv("USGS_TIMEOUT", "3s")
	t.Setenv("QUERY_CACHE_SIZE", "16")
	t.Setenv("WATCH_COUNTRY", "jp")
	t.Setenv("WATCH_MIN_MAGNITUDE", "4.5")
	t.Setenv("WATCH_INTERVAL", "30s")
	t.Setenv("WATCH_LOOKBACK", "5m")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "quakes")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/fdsnws/event/1/query?format=geojson", cfg.USGSBaseURL)
	assert.Equal(t, 3*time.Second, cfg.USGSTimeout)
	assert.Equal(t, 16, cfg.QueryCacheSize)
	assert.Equal(t, "JP", cfg.WatchCountry, "country code should be upper-cased")
	assert.Equal(t, 4.5, cfg.WatchMinMagnitude)
	assert.Equal(t, 30*time.Second, cfg.WatchInterval)
	assert.Equal(t, 5*time.Minute, cfg.WatchLookback)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "quakes", cfg.KafkaSinkTopic)
}

func TestLoad_InvalidDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("USGS_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "USGS_TIMEOUT")
}

func TestLoad_NegativeCacheSize(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUERY_CACHE_SIZE", "-5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QUERY_CACHE_SIZE")
}

func TestLoad_LookbackShorterThanInterval(t *testing.T) {
	clearEnv(t)
	t.Setenv("WATCH_INTERVAL", "10m")
	t.Setenv("WATCH_LOOKBACK", "1m")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WATCH_LOOKBACK")
}

func TestLoad_KafkaEnabledNeedsBrokers(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " , ")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoggerConfig(t *testing.T) {
	cfg := &Config{LogLevel: "debug", LogFormat: "text"}
	assert.Equal(t, "debug", cfg.LoggerLevel())
	assert.Equal(t, "text", cfg.LoggerFormat())
}
