package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	FunctionsBaseURL   string
	RedisAddress       string
	RedisPassword      string
	RedisDB            int
	StatusPollInterval time.Duration
	SnapshotTTL        time.Duration
	RetryMaxAttempts   int
	WorkerPoolSize     int
	MaxShopsBatch      int
	ShutdownTimeout    time.Duration
	SeedDemoData       bool
}

const (
	defaultRunAddress         = ":8080"
	defaultStatusPollInterval = 5 * time.Second
	defaultSnapshotTTL        = 10 * time.Minute
	defaultRetryMaxAttempts   = 3
	defaultWorkerPoolSize     = 4
	defaultShutdownTimeout    = 10 * time.Second
	defaultMaxShopsBatch      = 32
)

// Load parses configuration from .env, environment variables and flags.
func Load() (*Config, error) {
	// A missing .env is fine; deployments configure via real environment.
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		FunctionsBaseURL:   getString(lookup, "FUNCTIONS_BASE_URL", ""),
		RedisAddress:       getString(lookup, "REDIS_ADDRESS", ""),
		RedisPassword:      getString(lookup, "REDIS_PASSWORD", ""),
		RedisDB:            getInt(lookup, "REDIS_DB", 0),
		StatusPollInterval: getDuration(lookup, "STATUS_POLL_INTERVAL", defaultStatusPollInterval),
		SnapshotTTL:        getDuration(lookup, "SNAPSHOT_TTL", defaultSnapshotTTL),
		RetryMaxAttempts:   getInt(lookup, "RETRY_MAX_ATTEMPTS", defaultRetryMaxAttempts),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		MaxShopsBatch:      getInt(lookup, "POLL_BATCH_SIZE", defaultMaxShopsBatch),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		SeedDemoData:       getBool(lookup, "SEED_DEMO_DATA", true),
	}

	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.StatusPollInterval.String()
		snapshotTTLStr     = cfg.SnapshotTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.FunctionsBaseURL, "f", cfg.FunctionsBaseURL, "Cloud functions base URL")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for the snapshot cache (empty disables caching)")
	fs.IntVar(&cfg.RetryMaxAttempts, "retry-attempts", cfg.RetryMaxAttempts, "Attempt cap for upstream status fetches")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent status workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between status polls")
	fs.StringVar(&snapshotTTLStr, "snapshot-ttl", snapshotTTLStr, "TTL for cached stats snapshots")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.MaxShopsBatch, "poll-batch", cfg.MaxShopsBatch, "Maximum shops per polling batch")
	fs.BoolVar(&cfg.SeedDemoData, "seed-demo", cfg.SeedDemoData, "Seed demo invoices on startup")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.StatusPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.SnapshotTTL, err = time.ParseDuration(snapshotTTLStr); err != nil {
		return nil, fmt.Errorf("invalid snapshot ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.RetryMaxAttempts <= 0 {
		cfg.RetryMaxAttempts = defaultRetryMaxAttempts
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxShopsBatch <= 0 {
		cfg.MaxShopsBatch = defaultMaxShopsBatch
	}

	if cfg.StatusPollInterval <= 0 {
		cfg.StatusPollInterval = defaultStatusPollInterval
	}

	if cfg.SnapshotTTL <= 0 {
		cfg.SnapshotTTL = defaultSnapshotTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.FunctionsBaseURL == "" {
		return nil, fmt.Errorf("cloud functions base URL must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
