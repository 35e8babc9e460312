package message

import (
	"context"
	"fmt"

	pkgnotification "github.com/klwxsrx/deskbooking/internal/pkg/notification"
	"github.com/klwxsrx/deskbooking/internal/user/app/notification"
	pkgmessage "github.com/klwxsrx/deskbooking/pkg/message"
)

type notifier struct {
	producer pkgmessage.Producer
}

func NewNotifier(producer pkgmessage.Producer) notification.Notifier {
	return notifier{producer: producer}
}

func (n notifier) Notify(ctx context.Context, notice notification.Notification) error {
	msg, err := pkgnotification.Encode(pkgnotification.Message{
		Type:      pkgnotification.Type(notice.Type),
		Recipient: notice.Recipient,
		Token:     notice.Token,
		ValidTill: notice.ValidTill,
	})
	if err != nil {
		return err
	}

	err = n.producer.Produce(ctx, msg)
	if err != nil {
		return fmt.Errorf("produce %s notification: %w", notice.Type, err)
	}

	return nil
}
