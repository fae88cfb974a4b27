// Package redis persists the latest raw snapshot per account-context as a
// best-effort warm cache. The in-memory accessor published by each
// coordinator stays the primary source; a failed write never fails a
// refresh.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultSnapshotTTL bounds how long a cached snapshot outlives its
// context's last successful refresh.
const DefaultSnapshotTTL = 24 * time.Hour

// Store handles Redis operations for cached snapshots.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a snapshot store. ttl <= 0 falls back to the default.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// SaveSnapshot stores the latest raw snapshot of a context and records the
// refresh time.
func (s *Store) SaveSnapshot(ctx context.Context, ucrID string, raw []byte) error {
	if err := s.client.Set(ctx, SnapshotKey(ucrID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	now := strconv.FormatInt(time.Now().Unix(), 10)
	if err := s.client.Set(ctx, RefreshKey(ucrID), now, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to record refresh time: %w", err)
	}
	return nil
}

// GetSnapshot retrieves a context's cached snapshot. A miss returns nil
// bytes and no error.
func (s *Store) GetSnapshot(ctx context.Context, ucrID string) ([]byte, error) {
	raw, err := s.client.Get(ctx, SnapshotKey(ucrID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return raw, nil
}

// LastRefresh returns when a context's snapshot was last written. The zero
// time means no record exists.
func (s *Store) LastRefresh(ctx context.Context, ucrID string) (time.Time, error) {
	val, err := s.client.Get(ctx, RefreshKey(ucrID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to get refresh time: %w", err)
	}
	epoch, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed refresh time: %w", err)
	}
	return time.Unix(epoch, 0), nil
}

// DeleteSnapshot drops a context's cached snapshot and refresh record.
func (s *Store) DeleteSnapshot(ctx context.Context, ucrID string) error {
	if err := s.client.Del(ctx, SnapshotKey(ucrID), RefreshKey(ucrID)).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
