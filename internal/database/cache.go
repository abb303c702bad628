package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Cache is a persistent key/value store with per-entry expiry, backed by the
// cache_entries table. It satisfies lectionary.Cache.
type Cache struct {
	db  *DB
	now func() time.Time
}

// NewCache returns a Cache over a migrated database.
func NewCache(db *DB) *Cache {
	return &Cache{db: db, now: time.Now}
}

// Get returns the value stored under key. Expired entries are reported as
// missing but left in place for PurgeExpired.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := c.db.QueryRowContext(ctx, `
		SELECT value FROM cache_entries
		WHERE key = ? AND (expires_at = 0 OR expires_at > ?)`,
		key, c.now().UnixMilli(),
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cache entry %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous entry. A non-positive
// ttl stores the entry without expiry.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = c.now().Add(ttl).UnixMilli()
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, value, expires_at, updated_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`,
		key, value, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("set cache entry %s: %w", key, err)
	}
	return nil
}

// PurgeExpired deletes every expired entry and returns how many were removed.
func (c *Cache) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		"DELETE FROM cache_entries WHERE expires_at > 0 AND expires_at <= ?",
		c.now().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("purge cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge cache rows affected: %w", err)
	}

	c.db.logger.Info("purged expired cache entries", "removed", n)
	return n, nil
}

// Count returns the number of stored entries, expired ones included.
func (c *Cache) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cache_entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("count cache entries: %w", err)
	}
	return n, nil
}
