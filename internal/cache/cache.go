// Package cache stores fetched stats snapshots and sync statuses in Redis.
// The cache is best-effort: a nil client or a failed round trip degrades to
// a miss, never to a request failure.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/konsiyer/dashboard/internal/domain/model"
)

// SnapshotCache keeps per-shop stats snapshots and sync statuses with a TTL.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewSnapshotCache creates a cache. A nil client disables caching entirely.
func NewSnapshotCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *SnapshotCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &SnapshotCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func snapshotKey(shopDomain string) string {
	return fmt.Sprintf("dashboard:snapshot:%s", shopDomain)
}

func statusKey(shopDomain string) string {
	return fmt.Sprintf("dashboard:sync:%s", shopDomain)
}

// GetSnapshot returns the cached stats snapshot for shopDomain, or nil on miss.
func (c *SnapshotCache) GetSnapshot(ctx context.Context, shopDomain string) (*model.StatsSnapshot, error) {
	if c.client == nil {
		return nil, nil
	}

	key := snapshotKey(shopDomain)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		c.logger.Warn("snapshot cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}

	var snapshot model.StatsSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		c.logger.Warn("cached snapshot is unreadable, treating as miss",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}

	return &snapshot, nil
}

// SetSnapshot stores a stats snapshot for shopDomain.
func (c *SnapshotCache) SetSnapshot(ctx context.Context, shopDomain string, snapshot *model.StatsSnapshot) error {
	if c.client == nil || snapshot == nil {
		return nil
	}

	key := snapshotKey(shopDomain)
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("snapshot cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return err
	}

	return nil
}

// GetStatus returns the cached sync status report for shopDomain, or nil on miss.
func (c *SnapshotCache) GetStatus(ctx context.Context, shopDomain string) (*model.StatusReport, error) {
	if c.client == nil {
		return nil, nil
	}

	key := statusKey(shopDomain)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		c.logger.Warn("status cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}

	var report model.StatusReport
	if err := json.Unmarshal(data, &report); err != nil {
		c.logger.Warn("cached status is unreadable, treating as miss",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}

	return &report, nil
}

// SetStatus stores the latest sync status report for shopDomain.
func (c *SnapshotCache) SetStatus(ctx context.Context, shopDomain string, report *model.StatusReport) error {
	if c.client == nil || report == nil {
		return nil
	}

	key := statusKey(shopDomain)
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal status report: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("status cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return err
	}

	return nil
}

// Invalidate removes all cached entries for shopDomain.
func (c *SnapshotCache) Invalidate(ctx context.Context, shopDomain string) error {
	if c.client == nil {
		return nil
	}

	if err := c.client.Del(ctx, snapshotKey(shopDomain), statusKey(shopDomain)).Err(); err != nil {
		c.logger.Warn("cache invalidation failed",
			slog.String("shop", shopDomain),
			slog.String("error", err.Error()),
		)
		return err
	}

	return nil
}
