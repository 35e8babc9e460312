package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/klwxsrx/deskbooking/internal/user/app/session"
	"github.com/klwxsrx/deskbooking/internal/user/domain"
	"github.com/klwxsrx/deskbooking/pkg/log"
)

const (
	DefaultValidityCacheTTL = 5 * time.Second

	validityCacheKeyPrefix = "user:token_valid_after:"
	absentWatermarkValue   = "-"
)

type (
	ValidityCache interface {
		session.ValidityTracker
		session.ValidityInvalidator
	}

	validityCache struct {
		client redis.Cmdable
		next   session.ValidityTracker
		ttl    time.Duration
		logger log.Logger
	}
)

// NewValidityCache memorizes watermarks of next for ttl, so a raised watermark is observed no later than ttl after commit.
// Cache failures are logged and fall back to next.
func NewValidityCache(
	client redis.Cmdable,
	next session.ValidityTracker,
	ttl time.Duration,
	logger log.Logger,
) ValidityCache {
	return &validityCache{
		client: client,
		next:   next,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *validityCache) GetTokenValidAfter(ctx context.Context, userID domain.UserID) (*time.Time, error) {
	key := validityCacheKey(userID)
	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		validAfter, err := decodeWatermark(cached)
		if err == nil {
			return validAfter, nil
		}
		c.logger.WithError(err).WithField("key", key).Warn(ctx, "failed to decode cached watermark")
	case !errors.Is(err, redis.Nil):
		c.logger.WithError(err).WithField("key", key).Warn(ctx, "failed to get cached watermark")
	}

	validAfter, err := c.next.GetTokenValidAfter(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = c.client.Set(ctx, key, encodeWatermark(validAfter), c.ttl).Err()
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn(ctx, "failed to cache watermark")
	}

	return validAfter, nil
}

func (c *validityCache) Forget(ctx context.Context, userID domain.UserID) {
	key := validityCacheKey(userID)
	err := c.client.Del(ctx, key).Err()
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Error(ctx, "failed to forget cached watermark")
	}
}

func validityCacheKey(userID domain.UserID) string {
	return validityCacheKeyPrefix + userID.String()
}

func encodeWatermark(validAfter *time.Time) string {
	if validAfter == nil {
		return absentWatermarkValue
	}

	return validAfter.UTC().Format(time.RFC3339Nano)
}

func decodeWatermark(value string) (*time.Time, error) {
	if value == absentWatermarkValue {
		return nil, nil
	}

	validAfter, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, fmt.Errorf("parse watermark %q: %w", value, err)
	}

	validAfter = validAfter.UTC()
	return &validAfter, nil
}
