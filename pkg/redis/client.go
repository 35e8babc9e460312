package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"

	"github.com/klwxsrx/deskbooking/pkg/log"
)

const defaultConnectionTimeout = 20 * time.Second

type Config struct {
	Address           string
	Password          string
	Database          int
	ConnectionTimeout time.Duration
}

type Client interface {
	redis.Cmdable
	Close(ctx context.Context)
}

type client struct {
	*redis.Client
	logger log.Logger
}

func NewClient(ctx context.Context, config *Config, logger log.Logger) (Client, error) {
	if config.ConnectionTimeout <= 0 {
		config.ConnectionTimeout = defaultConnectionTimeout
	}

	impl := redis.NewClient(&redis.Options{
		Addr:     config.Address,
		Password: config.Password,
		DB:       config.Database,
	})

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = time.Second
	eb.RandomizationFactor = 0
	eb.Multiplier = 2
	eb.MaxInterval = config.ConnectionTimeout / 4
	eb.MaxElapsedTime = config.ConnectionTimeout

	err := backoff.Retry(func() error {
		return impl.Ping(ctx).Err()
	}, backoff.WithContext(eb, ctx))
	if err != nil {
		_ = impl.Close()
		return nil, fmt.Errorf("ping redis %s: %w", config.Address, err)
	}

	return &client{
		Client: impl,
		logger: logger,
	}, nil
}

func (c *client) Close(ctx context.Context) {
	err := c.Client.Close()
	if err != nil {
		c.logger.WithError(err).Error(ctx, "failed to close redis client")
	}
}
