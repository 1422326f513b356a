package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Nixie-Tech-LLC/onair/internal/station"
)

// SnapshotTTL bounds how stale a cached snapshot can get if the poller dies.
const SnapshotTTL = 2 * time.Minute

// ErrMiss is returned by Get when no snapshot is cached.
var ErrMiss = errors.New("snapshot not cached")

// SnapshotCache stores the latest on-air snapshot under <prefix>:snapshot.
type SnapshotCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewSnapshotCache(client *redis.Client, prefix string) *SnapshotCache {
	return &SnapshotCache{client: client, key: prefix + ":snapshot", ttl: SnapshotTTL}
}

func (c *SnapshotCache) Key() string { return c.key }

func (c *SnapshotCache) Set(ctx context.Context, snap station.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := c.client.Set(ctx, c.key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache snapshot: %w", err)
	}
	return nil
}

func (c *SnapshotCache) Get(ctx context.Context) (station.Snapshot, error) {
	var snap station.Snapshot
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return snap, ErrMiss
	}
	if err != nil {
		return snap, fmt.Errorf("read snapshot: %w", err)
	}
	if err := json.Unmarshal(raw, &snap); err != nil {
		return snap, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
