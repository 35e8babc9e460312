//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "TokenGenerator=TokenGenerator"
package session

import (
	"context"
	"errors"
	"time"

	"github.com/klwxsrx/deskbooking/internal/user/domain"
)

const (
	TokenPurposeSession           TokenPurpose = "session"
	TokenPurposeEmailVerification TokenPurpose = "email_verification"
	TokenPurposePasswordReset     TokenPurpose = "password_reset"
)

var ErrInvalidToken = errors.New("token is invalid or expired")

type (
	TokenGenerator interface {
		Generate(ctx context.Context, userID domain.UserID, purpose TokenPurpose, ttl time.Duration) (TokenData, error)
		// Decode verifies the token signature, expiration and purpose, fails with ErrInvalidToken otherwise
		Decode(ctx context.Context, token EncodedToken, purpose TokenPurpose) (TokenData, error)
	}

	TokenData struct {
		EncodedToken EncodedToken
		UserID       domain.UserID
		Purpose      TokenPurpose
		IssuedAt     time.Time
		ValidTill    time.Time
	}

	TokenPurpose string
	EncodedToken string
)
