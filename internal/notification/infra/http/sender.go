package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/klwxsrx/deskbooking/internal/notification/app/mail"
	pkghttp "github.com/klwxsrx/deskbooking/pkg/http"
)

const (
	Destination pkghttp.Destination = "mail"

	sendMessagePath = "/messages"
)

type sender struct {
	client pkghttp.Client
	from   string
}

// NewSender delivers mails through the HTTP API of the mail provider
func NewSender(client pkghttp.Client, from string) mail.Sender {
	return sender{
		client: client,
		from:   from,
	}
}

func (s sender) Send(ctx context.Context, m mail.Mail) error {
	resp, err := s.client.NewRequest(ctx).
		SetBody(sendMessageIn{
			From:    s.from,
			To:      []string{m.To},
			Subject: m.Subject,
			Text:    m.Text,
		}).
		Post(sendMessagePath)
	if err != nil {
		return fmt.Errorf("call mail provider: %w", err)
	}

	switch {
	case resp.IsSuccess():
		return nil
	case resp.StatusCode() == http.StatusBadRequest || resp.StatusCode() == http.StatusUnprocessableEntity:
		rejection := pkghttp.ParseResponseOptional(resp, pkghttp.JSONBody[rejectionOut](), nil)
		if rejection == nil || rejection.Message == "" {
			return fmt.Errorf("%w: status %d", mail.ErrRejected, resp.StatusCode())
		}
		return fmt.Errorf("%w: %s", mail.ErrRejected, rejection.Message)
	default:
		return fmt.Errorf("mail provider responded with status %d", resp.StatusCode())
	}
}

type sendMessageIn struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

type rejectionOut struct {
	Message string `json:"message"`
}
