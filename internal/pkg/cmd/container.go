package cmd

import (
	"context"
	"fmt"
	"time"

	commonhttp "github.com/klwxsrx/deskbooking/internal/pkg/http"
	"github.com/klwxsrx/deskbooking/pkg/env"
	"github.com/klwxsrx/deskbooking/pkg/http"
	"github.com/klwxsrx/deskbooking/pkg/lazy"
	"github.com/klwxsrx/deskbooking/pkg/log"
	"github.com/klwxsrx/deskbooking/pkg/message"
	"github.com/klwxsrx/deskbooking/pkg/metric"
	"github.com/klwxsrx/deskbooking/pkg/observability"
	"github.com/klwxsrx/deskbooking/pkg/pulsar"
	"github.com/klwxsrx/deskbooking/pkg/redis"
	"github.com/klwxsrx/deskbooking/pkg/sql"
	"github.com/klwxsrx/deskbooking/pkg/worker"
)

const (
	metricsNamespace = "deskbooking"
	metricsPath      = "/metrics"

	listDelimiter = ","
)

type InfrastructureContainer struct {
	HTTPServer        lazy.Loader[http.Server]
	HTTPClientFactory lazy.Loader[HTTPClientFactory]
	MessageProducer   lazy.Loader[message.Producer]
	MessageConsumers  lazy.Loader[message.ConsumerProvider]
	MessageListener   lazy.Loader[MessageListenerFactory]
	DBMigrations      lazy.Loader[SQLMigrations]
	DB                lazy.Loader[sql.Database]
	Redis             lazy.Loader[redis.Client]
	Metrics           lazy.Loader[metric.Metrics]
	Observer          lazy.Loader[observability.Observer]
	Logger            lazy.Loader[log.Logger]

	metricsRegistry   lazy.Loader[*metric.PrometheusRegistry]
	messageBrokerImpl lazy.Loader[*pulsar.MessageBroker]
}

type MessageListenerFactory func(message.Consumer, message.Handler, ...message.ListenerOption) worker.ErrorJob

func NewInfrastructureContainer(ctx context.Context) *InfrastructureContainer {
	logger := loggerProvider()
	metricsRegistry := metricsRegistryProvider()
	metrics := lazy.New(func() (metric.Metrics, error) { return metricsRegistry.MustLoad().Metrics(), nil })
	observer := observerProvider(logger)

	db := sqlDatabaseProvider(logger)
	msgBrokerImpl := pulsarMessageBrokerProvider(logger)

	return &InfrastructureContainer{
		HTTPServer:        httpServerProvider(observer, metricsRegistry, metrics, logger),
		HTTPClientFactory: httpClientFactoryProvider(observer, metrics, logger),
		MessageProducer:   lazy.New(func() (message.Producer, error) { return msgBrokerImpl.Load() }),
		MessageConsumers:  lazy.New(func() (message.ConsumerProvider, error) { return msgBrokerImpl.Load() }),
		MessageListener:   messageListenerFactoryProvider(metrics, logger),
		DBMigrations:      sqlMigrationsProvider(ctx, db, logger),
		DB:                db,
		Redis:             redisProvider(ctx, logger),
		Metrics:           metrics,
		Observer:          observer,
		Logger:            logger,
		metricsRegistry:   metricsRegistry,
		messageBrokerImpl: msgBrokerImpl,
	}
}

func (i *InfrastructureContainer) Close(ctx context.Context) {
	i.messageBrokerImpl.IfLoaded(func(broker *pulsar.MessageBroker) { broker.Close() })
	i.Redis.IfLoaded(func(client redis.Client) { client.Close(ctx) })
	i.DB.IfLoaded(func(db sql.Database) { db.Close(ctx) })
}

func loggerProvider() lazy.Loader[log.Logger] {
	return lazy.New(func() (log.Logger, error) {
		level := env.Must(env.ParseWithDefault("LOG_LEVEL", "info"))
		return log.New(log.ParseLevel(level)), nil
	})
}

func metricsRegistryProvider() lazy.Loader[*metric.PrometheusRegistry] {
	return lazy.New(func() (*metric.PrometheusRegistry, error) {
		return metric.NewPrometheusRegistry(metricsNamespace), nil
	})
}

func observerProvider(
	logger lazy.Loader[log.Logger],
) lazy.Loader[observability.Observer] {
	return lazy.New(func() (observability.Observer, error) {
		return observability.New(
			observability.WithFieldsLogging(
				logger.MustLoad(),
				observability.LogFieldRequestID,
				observability.LogFieldPrincipal,
			),
		), nil
	})
}

func sqlDatabaseProvider(
	logger lazy.Loader[log.Logger],
) lazy.Loader[sql.Database] {
	return lazy.New(func() (sql.Database, error) {
		sqlConfig := &sql.Config{
			DSN: sql.DSN{
				User:     env.Must(env.Parse[string]("SQL_USER")),
				Password: env.Must(env.Parse[string]("SQL_PASSWORD")),
				Address:  env.Must(env.Parse[string]("SQL_ADDRESS")),
				Database: env.Must(env.Parse[string]("SQL_DATABASE")),
			},
			MaxOpenConnections: env.Must(env.ParseWithDefault("SQL_MAX_OPEN_CONNECTIONS", 10)),
			MaxIdleConnections: env.Must(env.ParseWithDefault("SQL_MAX_IDLE_CONNECTIONS", 5)),
			ConnectionTimeout:  env.Must(env.ParseWithDefault[time.Duration]("SQL_CONNECTION_TIMEOUT", 0)),
		}

		db, err := sql.NewDatabase(sqlConfig, logger.MustLoad())
		if err != nil {
			return nil, fmt.Errorf("open sql connection: %w", err)
		}

		return db, nil
	})
}

func sqlMigrationsProvider(
	ctx context.Context,
	db lazy.Loader[sql.Database],
	logger lazy.Loader[log.Logger],
) lazy.Loader[SQLMigrations] {
	return lazy.New(func() (SQLMigrations, error) {
		return NewSQLMigrations(
			ctx,
			sql.NewMigrator(db.MustLoad(), logger.MustLoad()),
			env.Must(env.ParseWithDefault("SQL_MIGRATIONS_ENABLED", true)),
			logger.MustLoad(),
		), nil
	})
}

func redisProvider(
	ctx context.Context,
	logger lazy.Loader[log.Logger],
) lazy.Loader[redis.Client] {
	return lazy.New(func() (redis.Client, error) {
		config := &redis.Config{
			Address:           env.Must(env.Parse[string]("REDIS_ADDRESS")),
			Password:          env.Must(env.ParseWithDefault("REDIS_PASSWORD", "")),
			Database:          env.Must(env.ParseWithDefault("REDIS_DATABASE", 0)),
			ConnectionTimeout: env.Must(env.ParseWithDefault[time.Duration]("REDIS_CONNECTION_TIMEOUT", 0)),
		}

		client, err := redis.NewClient(ctx, config, logger.MustLoad())
		if err != nil {
			return nil, fmt.Errorf("open redis connection: %w", err)
		}

		return client, nil
	})
}

func httpServerProvider(
	observer lazy.Loader[observability.Observer],
	metricsRegistry lazy.Loader[*metric.PrometheusRegistry],
	metrics lazy.Loader[metric.Metrics],
	logger lazy.Loader[log.Logger],
) lazy.Loader[http.Server] {
	return lazy.New(func() (http.Server, error) {
		address := env.Must(env.ParseWithDefault("HTTP_ADDRESS", http.DefaultServerAddress))
		allowedOrigins := env.Must(env.ParseOptionalList[string]("HTTP_CORS_ALLOWED_ORIGINS", listDelimiter))
		return http.NewServer(
			address,
			http.WithHealthCheck(nil),
			http.WithMetricsHandler(metricsPath, metricsRegistry.MustLoad().Handler()),
			http.WithCORSHandler(allowedOrigins...),
			http.WithObservability(
				observer.MustLoad(),
				commonhttp.RequestIDHeader,
				http.RequestIDHeaderExtractor(commonhttp.RequestIDHeader),
				http.RequestIDRandomUUIDExtractor(),
			),
			http.WithMetrics(metrics.MustLoad()),
			http.WithLogging(logger.MustLoad(), log.LevelInfo, log.LevelError, metricsPath),
		), nil
	})
}

func httpClientFactoryProvider(
	observer lazy.Loader[observability.Observer],
	metrics lazy.Loader[metric.Metrics],
	logger lazy.Loader[log.Logger],
) lazy.Loader[HTTPClientFactory] {
	return lazy.New(func() (HTTPClientFactory, error) {
		return NewHTTPClientFactory(
			http.WithRequestObservability(observer.MustLoad(), commonhttp.RequestIDHeader),
			http.WithRequestMetrics(metrics.MustLoad()),
			http.WithRequestLogging(logger.MustLoad(), log.LevelInfo, log.LevelWarn),
		), nil
	})
}

func pulsarMessageBrokerProvider(logger lazy.Loader[log.Logger]) lazy.Loader[*pulsar.MessageBroker] {
	return lazy.New(func() (*pulsar.MessageBroker, error) {
		config := &pulsar.Config{
			Address:           env.Must(env.Parse[string]("PULSAR_ADDRESS")),
			ConnectionTimeout: env.Must(env.ParseWithDefault[time.Duration]("PULSAR_CONNECTION_TIMEOUT", 0)),
		}

		messageBroker, err := pulsar.NewMessageBroker(config, logger.MustLoad())
		if err != nil {
			return nil, fmt.Errorf("open pulsar connection: %w", err)
		}

		return messageBroker, nil
	})
}

func messageListenerFactoryProvider(
	metrics lazy.Loader[metric.Metrics],
	logger lazy.Loader[log.Logger],
) lazy.Loader[MessageListenerFactory] {
	return lazy.New(func() (MessageListenerFactory, error) {
		return func(
			consumer message.Consumer,
			handler message.Handler,
			extraOpts ...message.ListenerOption,
		) worker.ErrorJob {
			opts := append([]message.ListenerOption{
				message.WithHandlerMetrics(metrics.MustLoad()),
				message.WithHandlerLogging(logger.MustLoad(), log.LevelInfo, log.LevelError),
			}, extraOpts...)

			return message.NewListener(consumer, handler, opts...)
		}, nil
	})
}
