package service

import (
	"context"
	"errors"

	"github.com/klwxsrx/deskbooking/internal/user/app/session"
)

type (
	// TokenValidator decides whether a bearer token is still honored.
	// Signature and expiration are verified before the watermark lookup, malformed tokens never reach the storage.
	TokenValidator interface {
		Validate(context.Context, session.EncodedToken, session.TokenPurpose) (session.TokenData, error)
	}

	tokenValidator struct {
		tokens   session.TokenGenerator
		validity session.ValidityTracker
	}
)

func NewTokenValidator(tokens session.TokenGenerator, validity session.ValidityTracker) TokenValidator {
	return tokenValidator{
		tokens:   tokens,
		validity: validity,
	}
}

func (v tokenValidator) Validate(
	ctx context.Context,
	token session.EncodedToken,
	purpose session.TokenPurpose,
) (session.TokenData, error) {
	tokenData, err := v.tokens.Decode(ctx, token, purpose)
	if err != nil {
		return session.TokenData{}, newError(ErrorKindInvalidToken, "decode token", err)
	}

	validAfter, err := v.validity.GetTokenValidAfter(ctx, tokenData.UserID)
	if errors.Is(err, session.ErrUnknownUser) {
		return session.TokenData{}, newError(ErrorKindInvalidToken, "token references unknown user", err)
	}
	if err != nil {
		return session.TokenData{}, newError(ErrorKindStorageFailure, "get token valid after", err)
	}

	if validAfter != nil && tokenData.IssuedAt.Before(*validAfter) {
		return session.TokenData{}, newError(ErrorKindRevokedToken, "token was issued before revocation", nil)
	}

	return tokenData, nil
}
