//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "Sender=Sender"
package mail

import (
	"context"
	"errors"
)

// ErrRejected is returned when the mail provider refuses the mail itself, repeating the call would not help
var ErrRejected = errors.New("mail is rejected by provider")

type (
	Sender interface {
		Send(context.Context, Mail) error
	}

	Mail struct {
		To      string
		Subject string
		Text    string
	}
)
