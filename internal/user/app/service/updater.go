package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/klwxsrx/deskbooking/internal/user/app/session"
	"github.com/klwxsrx/deskbooking/internal/user/domain"
	"github.com/klwxsrx/deskbooking/pkg/persistence"
)

var errSkipUpdate = errors.New("skip update")

// userUpdater serializes writes of a single user and drops memorized watermarks once the write is committed
type userUpdater struct {
	userRepo    domain.UserRepository
	transaction persistence.Transaction
	validity    session.ValidityInvalidator
}

// update fails with ErrUserNotFound, fn may return errSkipUpdate to leave the user untouched
func (u userUpdater) update(ctx context.Context, userID domain.UserID, fn func(*domain.User) error) error {
	err := u.transaction.WithinContext(ctx, func(ctx context.Context) error {
		user, err := u.userRepo.FindOne(ctx, domain.FindUserSpecification{IDs: []domain.UserID{userID}})
		if errors.Is(err, domain.ErrUserNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("find user by id: %w", err)
		}

		err = fn(user)
		if err != nil {
			return err
		}

		err = u.userRepo.Store(ctx, user)
		if err != nil {
			return fmt.Errorf("store user: %w", err)
		}

		return nil
	}, userLockName(userID))
	if errors.Is(err, errSkipUpdate) {
		return nil
	}
	if err != nil {
		return err
	}

	u.validity.Forget(ctx, userID)
	return nil
}

func userLockName(userID domain.UserID) string {
	return fmt.Sprintf("update_user_%s", userID)
}
