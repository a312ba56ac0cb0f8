package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// Feed client.
	USGSBaseURL    string
	USGSTimeout    time.Duration
	QueryCacheSize int

	// Boundary dataset; empty means the embedded dataset.
	BoundaryDataPath string

	// Watcher.
	WatchCountry      string
	WatchMinMagnitude float64
	WatchInterval     time.Duration
	WatchLookback     time.Duration

	// Kafka sink; disabled unless KAFKA_ENABLED is true.
	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// LoggerLevel implements observability.LoggerConfig.
func (c *Config) LoggerLevel() string { return c.LogLevel }

// LoggerFormat implements observability.LoggerConfig.
func (c *Config) LoggerFormat() string { return c.LogFormat }

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	usgsTimeout, err := parseDuration("USGS_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	watchInterval, err := parseDuration("WATCH_INTERVAL", "1m")
	if err != nil {
		return nil, err
	}
	watchLookback, err := parseDuration("WATCH_LOOKBACK", "15m")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	cacheSize, err := parsePositiveInt("QUERY_CACHE_SIZE", 128)
	if err != nil {
		return nil, err
	}

	watchMinMag, err := parseFloat("WATCH_MIN_MAGNITUDE", 0)
	if err != nil {
		return nil, err
	}

	kafkaEnabled := envOrDefault("KAFKA_ENABLED", "false") == "true"

	cfg := &Config{
		USGSBaseURL:    os.Getenv("USGS_BASE_URL"),
		USGSTimeout:    usgsTimeout,
		QueryCacheSize: cacheSize,

		BoundaryDataPath: os.Getenv("BOUNDARY_DATA_PATH"),

		WatchCountry:      strings.ToUpper(os.Getenv("WATCH_COUNTRY")),
		WatchMinMagnitude: watchMinMag,
		WatchInterval:     watchInterval,
		WatchLookback:     watchLookback,

		KafkaEnabled:   kafkaEnabled,
		KafkaBrokers:   splitBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "earthquake-events"),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.WatchLookback < cfg.WatchInterval {
		return nil, errors.New("WATCH_LOOKBACK must be at least WATCH_INTERVAL")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_SINK_TOPIC is empty")
		}
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func parseFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return f, nil
}

// splitBrokers parses a comma-separated broker list, trimming whitespace and
// dropping empty entries.
func splitBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
