package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultDedupTTL = 24 * time.Hour
	dedupKeyPrefix  = "docs_sent:"
)

// DocsDedup provides idempotency checks for partner document sends.
// Keys expire after the configured TTL; the lead's docs_sent flag is the
// durable record, the key only absorbs retries and concurrent duplicates.
type DocsDedup struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDocsDedup creates a DocsDedup wrapping the given Redis client. A
// non-positive ttl falls back to 24 hours.
func NewDocsDedup(client *redis.Client, ttl time.Duration) *DocsDedup {
	if ttl <= 0 {
		ttl = defaultDedupTTL
	}
	return &DocsDedup{client: client, ttl: ttl}
}

// IsDuplicate reports whether documents for this lead were already dispatched.
func (d *DocsDedup) IsDuplicate(ctx context.Context, leadID int64) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(leadID)).Result()
	if err != nil {
		return false, fmt.Errorf("docs dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that documents for this lead are being dispatched.
func (d *DocsDedup) Mark(ctx context.Context, leadID int64) error {
	return d.client.Set(ctx, d.key(leadID), "1", d.ttl).Err()
}

// Unmark removes the key after a failed dispatch so the send can be retried.
func (d *DocsDedup) Unmark(ctx context.Context, leadID int64) error {
	return d.client.Del(ctx, d.key(leadID)).Err()
}

func (d *DocsDedup) key(leadID int64) string {
	return fmt.Sprintf("%s%d", dedupKeyPrefix, leadID)
}
