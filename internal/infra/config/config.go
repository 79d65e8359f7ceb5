package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	SnapshotModeMemory = "memory"
	SnapshotModeMongo  = "mongo"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env                 string
	HTTPAddr            string
	SnapshotMode        string
	MongoURI            string
	MongoDB             string
	KafkaBrokers        []string
	KafkaGroupID        string
	BookingFeedTopic    string
	FixturesPath        string
	NationalConcurrency int
	ShutdownTimeout     time.Duration
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		SnapshotMode:     strings.ToLower(getEnv("SNAPSHOT_MODE", SnapshotModeMemory)),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          getEnv("MONGO_DB", "bedspace"),
		KafkaGroupID:     getEnv("KAFKA_GROUP_ID", "bedspace-booking-feed"),
		BookingFeedTopic: getEnv("BOOKING_FEED_TOPIC", "booking-feed"),
		FixturesPath:     getEnv("FIXTURES_PATH", ""),
	}
	brokers := getEnv("KAFKA_BROKERS", "")
	if brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	concurrency, err := parseIntEnv("NATIONAL_CONCURRENCY", 8)
	if err != nil {
		return Config{}, err
	}
	cfg.NationalConcurrency = concurrency

	shutdown, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.ShutdownTimeout = shutdown

	switch cfg.SnapshotMode {
	case SnapshotModeMemory:
	case SnapshotModeMongo:
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required when SNAPSHOT_MODE=%s", SnapshotModeMongo)
		}
	default:
		return Config{}, fmt.Errorf("invalid SNAPSHOT_MODE: %q", cfg.SnapshotMode)
	}
	if cfg.NationalConcurrency < 1 {
		return Config{}, fmt.Errorf("NATIONAL_CONCURRENCY must be positive")
	}
	return cfg, nil
}

// FeedEnabled reports whether the booking-feed consumer should run.
func (c Config) FeedEnabled() bool {
	return len(c.KafkaBrokers) > 0 && c.SnapshotMode == SnapshotModeMemory
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return n, nil
}
