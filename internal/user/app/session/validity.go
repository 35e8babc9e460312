//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "ValidityTracker=ValidityTracker,ValidityInvalidator=ValidityInvalidator"
package session

import (
	"context"
	"errors"
	"time"

	"github.com/klwxsrx/deskbooking/internal/user/domain"
)

var ErrUnknownUser = errors.New("unknown user")

type (
	ValidityTracker interface {
		// GetTokenValidAfter returns the user revocation watermark, nil if tokens were never revoked.
		// Fails with ErrUnknownUser when the user does not exist.
		GetTokenValidAfter(ctx context.Context, userID domain.UserID) (*time.Time, error)
	}

	// ValidityInvalidator drops watermarks memorized by readers, called after the watermark update is committed
	ValidityInvalidator interface {
		Forget(ctx context.Context, userID domain.UserID)
	}
)
