package notifications

import (
	"context"
	stdErrors "errors"
	"strconv"
	"time"

	"github.com/jordanmartell/ideahub-backend/pkg/redis"
	"github.com/google/uuid"
)

// UnreadCache keeps each user's unread notification count in Redis so the
// badge endpoint does not hit the database on every poll. All methods are
// nil-receiver safe; a nil cache behaves as a permanent miss.
type UnreadCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUnreadCache wraps the redis client with the configured entry TTL.
func NewUnreadCache(client *redis.Client, ttl time.Duration) *UnreadCache {
	if client == nil {
		return nil
	}
	return &UnreadCache{client: client, ttl: ttl}
}

// Get returns the cached count and whether the entry was present.
func (c *UnreadCache) Get(ctx context.Context, userID uuid.UUID) (int64, bool, error) {
	if c == nil {
		return 0, false, nil
	}
	raw, err := c.client.Get(ctx, c.client.UnreadCountKey(userID.String()))
	if err != nil {
		if stdErrors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}
	count, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

// Set stores the count for the configured TTL.
func (c *UnreadCache) Set(ctx context.Context, userID uuid.UUID, count int64) error {
	if c == nil {
		return nil
	}
	return c.client.Set(ctx, c.client.UnreadCountKey(userID.String()), count, c.ttl)
}

// Invalidate drops the cached counts for the given users.
func (c *UnreadCache) Invalidate(ctx context.Context, userIDs ...uuid.UUID) error {
	if c == nil || len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, c.client.UnreadCountKey(id.String()))
	}
	return c.client.Del(ctx, keys...)
}
