//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "User=User"
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/klwxsrx/deskbooking/internal/pkg/auth"
	"github.com/klwxsrx/deskbooking/internal/user/app/encoding"
	"github.com/klwxsrx/deskbooking/internal/user/app/notification"
	"github.com/klwxsrx/deskbooking/internal/user/app/permission"
	"github.com/klwxsrx/deskbooking/internal/user/app/policy"
	"github.com/klwxsrx/deskbooking/internal/user/app/session"
	"github.com/klwxsrx/deskbooking/internal/user/domain"
	"github.com/klwxsrx/deskbooking/pkg/persistence"
	pkgtime "github.com/klwxsrx/deskbooking/pkg/time"
)

type (
	User interface {
		GetByID(context.Context, domain.UserID) (*UserData, error)
		Register(context.Context, UserCredentials) (domain.UserID, error)
		VerifyEmail(ctx context.Context, token string) error
		Delete(context.Context, domain.UserID) error
	}

	UserCredentials struct {
		Email    string
		Password string
	}

	UserData struct {
		ID              domain.UserID
		Email           string
		EmailVerifiedAt *time.Time
		DeletedAt       *time.Time
	}

	userService struct {
		userRepo       domain.UserRepository
		updater        userUpdater
		transaction    persistence.Transaction
		sessionTokens  session.TokenGenerator
		tokenValidator TokenValidator
		passwordHasher encoding.PasswordHasher
		authPolicy     policy.AuthPolicy
		notifier       notification.Notifier
		permissions    auth.PermissionService
		clock          pkgtime.Clock
	}
)

func NewUser(
	userRepo domain.UserRepository,
	transaction persistence.Transaction,
	validity session.ValidityInvalidator,
	sessionTokens session.TokenGenerator,
	tokenValidator TokenValidator,
	passwordHasher encoding.PasswordHasher,
	authPolicy policy.AuthPolicy,
	notifier notification.Notifier,
	permissions auth.PermissionService,
	clock pkgtime.Clock,
) User {
	return &userService{
		userRepo: userRepo,
		updater: userUpdater{
			userRepo:    userRepo,
			transaction: transaction,
			validity:    validity,
		},
		transaction:    transaction,
		sessionTokens:  sessionTokens,
		tokenValidator: tokenValidator,
		passwordHasher: passwordHasher,
		authPolicy:     authPolicy,
		notifier:       notifier,
		permissions:    permissions,
		clock:          clock,
	}
}

func (s *userService) GetByID(ctx context.Context, userID domain.UserID) (*UserData, error) {
	if err := s.permissions.Check(ctx, permission.CanReadUser(userID)); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindOne(ctx, domain.FindUserSpecification{IDs: []domain.UserID{userID}})
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return toUserData(user), nil
}

// Register is idempotent for a user who has not verified the email yet, the verification email is sent again
func (s *userService) Register(ctx context.Context, credentials UserCredentials) (domain.UserID, error) {
	email := policy.NormalizeEmail(credentials.Email)
	if email == "" || !isValidPassword(credentials.Password) {
		return domain.UserID{}, ErrInvalidUserCredentials
	}
	if !s.authPolicy.IsAllowedEmail(email) {
		return domain.UserID{}, ErrEmailNotAllowed
	}

	passwordHash, err := s.passwordHasher.Hash(ctx, credentials.Password)
	if err != nil {
		return domain.UserID{}, newError(ErrorKindHashingFailure, "hash password", err)
	}

	registerUserImpl := func(ctx context.Context) (domain.UserID, error) {
		user, err := s.userRepo.FindOne(ctx, domain.FindUserSpecification{Emails: []string{email}})
		if errors.Is(err, domain.ErrUserNotFound) {
			userID := s.userRepo.NextID()
			err = s.userRepo.Store(ctx, &domain.User{
				ID:           userID,
				Email:        email,
				PasswordHash: passwordHash,
			})
			if err != nil {
				return domain.UserID{}, fmt.Errorf("store user: %w", err)
			}

			return userID, nil
		}
		if err != nil {
			return domain.UserID{}, fmt.Errorf("find user by email: %w", err)
		}

		if user.IsDeleted() {
			return domain.UserID{}, ErrUserIsAlreadyDeleted
		}
		if user.EmailVerifiedAt != nil {
			return domain.UserID{}, ErrUserAlreadyExists
		}

		samePassword, err := s.passwordHasher.Verify(ctx, user.PasswordHash, credentials.Password)
		if err != nil {
			return domain.UserID{}, newError(ErrorKindHashingFailure, "verify password", err)
		}
		if !samePassword {
			return domain.UserID{}, ErrUserAlreadyExists
		}

		return user.ID, nil
	}

	userID, err := persistence.WithinTransactionWithResult(ctx, s.transaction, registerUserImpl, registerUserLockName(email))
	if err != nil {
		return domain.UserID{}, err
	}

	err = s.sendEmailVerification(ctx, userID, email)
	if err != nil {
		return domain.UserID{}, err
	}

	return userID, nil
}

func (s *userService) VerifyEmail(ctx context.Context, token string) error {
	tokenData, err := s.tokenValidator.Validate(ctx, session.EncodedToken(token), session.TokenPurposeEmailVerification)
	if err != nil {
		return err
	}

	now := s.clock.Now(ctx)
	return s.updater.update(ctx, tokenData.UserID, func(user *domain.User) error {
		if user.EmailVerifiedAt != nil {
			return errSkipUpdate
		}

		user.VerifyEmail(now)
		return nil
	})
}

func (s *userService) Delete(ctx context.Context, userID domain.UserID) error {
	if err := s.permissions.Check(ctx, permission.CanManageUser(userID)); err != nil {
		return err
	}

	now := s.clock.Now(ctx)
	err := s.updater.update(ctx, userID, func(user *domain.User) error {
		if user.IsDeleted() {
			return errSkipUpdate
		}

		user.SetDeletedAt(now)
		return nil
	})
	if errors.Is(err, ErrUserNotFound) {
		return nil
	}

	return err
}

func (s *userService) sendEmailVerification(ctx context.Context, userID domain.UserID, email string) error {
	token, err := s.sessionTokens.Generate(
		ctx,
		userID,
		session.TokenPurposeEmailVerification,
		s.authPolicy.EmailVerificationTTL(),
	)
	if err != nil {
		return fmt.Errorf("generate email verification token: %w", err)
	}

	err = s.notifier.Notify(ctx, notification.Notification{
		Type:      notification.TypeEmailVerification,
		Recipient: email,
		Token:     string(token.EncodedToken),
		ValidTill: &token.ValidTill,
	})
	if err != nil {
		return fmt.Errorf("notify email verification: %w", err)
	}

	return nil
}

func registerUserLockName(email string) string {
	return fmt.Sprintf("register_user_%s", email)
}
