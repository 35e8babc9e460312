package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/klwxsrx/deskbooking/internal/notification/app/mail"
	pkgnotification "github.com/klwxsrx/deskbooking/internal/pkg/notification"
	"github.com/klwxsrx/deskbooking/pkg/log"
	pkgtime "github.com/klwxsrx/deskbooking/pkg/time"
)

const (
	emailVerificationPath = "/email-verification"
	passwordResetPath     = "/password-reset"
)

var ErrUnknownNotificationType = errors.New("unknown notification type")

type (
	Notification interface {
		Notify(context.Context, pkgnotification.Message) error
	}

	notificationService struct {
		sender      mail.Sender
		linkBaseURL *url.URL
		clock       pkgtime.Clock
		logger      log.Logger
	}
)

// NewNotification builds links to the desk booking web app located at linkBaseURL
func NewNotification(
	sender mail.Sender,
	linkBaseURL string,
	clock pkgtime.Clock,
	logger log.Logger,
) (Notification, error) {
	baseURL, err := url.Parse(linkBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse link base url: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("link base url %q must be absolute", linkBaseURL)
	}

	return &notificationService{
		sender:      sender,
		linkBaseURL: baseURL,
		clock:       clock,
		logger:      logger,
	}, nil
}

// Notify skips tokens which expired while the message was queued, the user has to request a new one anyway
func (s *notificationService) Notify(ctx context.Context, msg pkgnotification.Message) error {
	if msg.ValidTill != nil && !s.clock.Now(ctx).Before(*msg.ValidTill) {
		s.logger.WithField("type", msg.Type).Warn(ctx, "notification token expired before delivery")
		return nil
	}

	var m mail.Mail
	switch msg.Type {
	case pkgnotification.TypeEmailVerification:
		m = mail.Mail{
			Subject: "Confirm your email",
			Text: fmt.Sprintf(
				"Open the link to confirm your email: %s\nThe link is valid till %s.",
				s.link(emailVerificationPath, msg.Token),
				formatValidTill(msg.ValidTill),
			),
		}
	case pkgnotification.TypePasswordReset:
		m = mail.Mail{
			Subject: "Reset your password",
			Text: fmt.Sprintf(
				"Open the link to set a new password: %s\nThe link is valid till %s. "+
					"Ignore this email if you did not request a password reset.",
				s.link(passwordResetPath, msg.Token),
				formatValidTill(msg.ValidTill),
			),
		}
	case pkgnotification.TypePasswordChanged:
		m = mail.Mail{
			Subject: "Your password was changed",
			Text: "The password of your desk booking account was changed and all sessions were signed out. " +
				"Reset the password if it was not you.",
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownNotificationType, msg.Type)
	}

	m.To = msg.Recipient
	err := s.sender.Send(ctx, m)
	if err != nil {
		return fmt.Errorf("send %s mail: %w", msg.Type, err)
	}

	return nil
}

func (s *notificationService) link(path, token string) string {
	link := *s.linkBaseURL
	link.Path = link.JoinPath(path).Path
	link.RawQuery = url.Values{"token": {token}}.Encode()
	return link.String()
}

func formatValidTill(validTill *time.Time) string {
	if validTill == nil {
		return "-"
	}

	return validTill.UTC().Format(time.RFC1123)
}
