package message

import (
	"context"
	"errors"

	"github.com/klwxsrx/deskbooking/internal/notification/app/mail"
	"github.com/klwxsrx/deskbooking/internal/notification/app/service"
	pkgnotification "github.com/klwxsrx/deskbooking/internal/pkg/notification"
	"github.com/klwxsrx/deskbooking/pkg/log"
	pkgmessage "github.com/klwxsrx/deskbooking/pkg/message"
)

// NewHandler acks messages which can never be delivered, so they do not block the subscription
func NewHandler(notification service.Notification, logger log.Logger) pkgmessage.Handler {
	return func(ctx context.Context, msg *pkgmessage.Message) error {
		notice, err := pkgnotification.Decode(msg)
		if err != nil {
			logger.WithError(err).Error(ctx, "skip malformed notification")
			return nil
		}

		err = notification.Notify(ctx, notice)
		if errors.Is(err, service.ErrUnknownNotificationType) || errors.Is(err, mail.ErrRejected) {
			logger.WithError(err).WithField("type", notice.Type).Error(ctx, "skip undeliverable notification")
			return nil
		}

		return err
	}
}
