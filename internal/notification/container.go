package notification

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/klwxsrx/deskbooking/internal/notification/app/mail"
	"github.com/klwxsrx/deskbooking/internal/notification/app/service"
	"github.com/klwxsrx/deskbooking/internal/notification/infra/http"
	"github.com/klwxsrx/deskbooking/internal/notification/infra/message"
	"github.com/klwxsrx/deskbooking/internal/pkg/cmd"
	pkgnotification "github.com/klwxsrx/deskbooking/internal/pkg/notification"
	"github.com/klwxsrx/deskbooking/pkg/env"
	"github.com/klwxsrx/deskbooking/pkg/lazy"
	"github.com/klwxsrx/deskbooking/pkg/log"
	pkgmessage "github.com/klwxsrx/deskbooking/pkg/message"
	pkgtime "github.com/klwxsrx/deskbooking/pkg/time"
	"github.com/klwxsrx/deskbooking/pkg/worker"
)

const (
	subscriberName pkgmessage.SubscriberName = "notification-worker"

	defaultDeliveryRetryElapsedTime = time.Minute
)

type DependencyContainer struct {
	notification lazy.Loader[service.Notification]
	logger       lazy.Loader[log.Logger]
}

func NewDependencyContainer(
	httpClientFactory lazy.Loader[cmd.HTTPClientFactory],
	logger lazy.Loader[log.Logger],
) DependencyContainer {
	sender := senderProvider(httpClientFactory)

	return DependencyContainer{
		notification: lazy.New(func() (service.Notification, error) {
			notification, err := service.NewNotification(
				sender.MustLoad(),
				env.Must(env.Parse[string]("NOTIFICATION_LINK_BASE_URL")),
				pkgtime.NewClock(),
				logger.MustLoad(),
			)
			if err != nil {
				return nil, fmt.Errorf("init notification service: %w", err)
			}

			return notification, nil
		}),
		logger: logger,
	}
}

func (c *DependencyContainer) MustInitMessageListeners(
	consumers lazy.Loader[pkgmessage.ConsumerProvider],
	listenerFactory lazy.Loader[cmd.MessageListenerFactory],
) []worker.ErrorJob {
	consumer, err := consumers.MustLoad().Consumer(pkgnotification.Topic, subscriberName, pkgmessage.ConsumptionTypeShared)
	if err != nil {
		panic(fmt.Errorf("init %s consumer: %w", pkgnotification.Topic, err))
	}

	workersCount := env.Must(env.ParseWithDefault("NOTIFICATION_WORKERS_COUNT", worker.MaxWorkersCountNumCPU))
	retryElapsedTime := env.Must(env.ParseWithDefault("NOTIFICATION_RETRY_ELAPSED_TIME", defaultDeliveryRetryElapsedTime))
	return []worker.ErrorJob{
		listenerFactory.MustLoad()(
			consumer,
			message.NewHandler(c.notification.MustLoad(), c.logger.MustLoad()),
			pkgmessage.WithHandlerMultipleWorkers(workersCount),
			pkgmessage.WithHandlerRetry(func() backoff.BackOff {
				return backoff.NewExponentialBackOff(backoff.WithMaxElapsedTime(retryElapsedTime))
			}),
		),
	}
}

func senderProvider(httpClientFactory lazy.Loader[cmd.HTTPClientFactory]) lazy.Loader[mail.Sender] {
	return lazy.New(func() (mail.Sender, error) {
		client := httpClientFactory.MustLoad().MustInitClient(http.Destination)
		return http.NewSender(client, env.Must(env.Parse[string]("MAIL_SENDER_ADDRESS"))), nil
	})
}
