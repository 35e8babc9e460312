//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "Notifier=Notifier"
package notification

import (
	"context"
	"time"
)

const (
	TypeEmailVerification Type = "email_verification"
	TypePasswordReset     Type = "password_reset"
	TypePasswordChanged   Type = "password_changed"
)

type (
	Notifier interface {
		Notify(context.Context, Notification) error
	}

	Notification struct {
		Type      Type
		Recipient string
		Token     string
		ValidTill *time.Time
	}

	Type string
)
