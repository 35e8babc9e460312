package service

import (
	"context"
	"errors"

	"github.com/klwxsrx/deskbooking/internal/user/app/session"
	"github.com/klwxsrx/deskbooking/pkg/log"
	"github.com/klwxsrx/deskbooking/pkg/metric"
)

const (
	tokenRejectionsMetric = "auth_token_rejections_total"

	tokenRejectionReasonInvalid = "invalid"
	tokenRejectionReasonRevoked = "revoked"
)

type observedTokenValidator struct {
	next    TokenValidator
	metrics metric.Metrics
	logger  log.Logger
}

// NewObservedTokenValidator logs and counts token rejections, storage failures are left to the caller
func NewObservedTokenValidator(next TokenValidator, metrics metric.Metrics, logger log.Logger) TokenValidator {
	return observedTokenValidator{
		next:    next,
		metrics: metrics,
		logger:  logger,
	}
}

func (v observedTokenValidator) Validate(
	ctx context.Context,
	token session.EncodedToken,
	purpose session.TokenPurpose,
) (session.TokenData, error) {
	tokenData, err := v.next.Validate(ctx, token, purpose)
	if err == nil {
		return tokenData, nil
	}

	var reason string
	switch {
	case errors.Is(err, ErrRevokedToken):
		reason = tokenRejectionReasonRevoked
	case errors.Is(err, ErrInvalidToken):
		reason = tokenRejectionReasonInvalid
	default:
		return tokenData, err
	}

	v.metrics.With(metric.Labels{
		"reason":  reason,
		"purpose": string(purpose),
	}).Increment(tokenRejectionsMetric)
	v.logger.With(log.Fields{
		"reason":  reason,
		"purpose": purpose,
	}).WithError(err).Info(ctx, "token rejected")

	return tokenData, err
}
