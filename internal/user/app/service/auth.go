//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "Authentication=Authentication"
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/klwxsrx/deskbooking/internal/pkg/auth"
	"github.com/klwxsrx/deskbooking/internal/user/app/encoding"
	"github.com/klwxsrx/deskbooking/internal/user/app/notification"
	"github.com/klwxsrx/deskbooking/internal/user/app/permission"
	"github.com/klwxsrx/deskbooking/internal/user/app/policy"
	"github.com/klwxsrx/deskbooking/internal/user/app/session"
	"github.com/klwxsrx/deskbooking/internal/user/domain"
	pkgauth "github.com/klwxsrx/deskbooking/pkg/auth"
	"github.com/klwxsrx/deskbooking/pkg/log"
	"github.com/klwxsrx/deskbooking/pkg/persistence"
	pkgtime "github.com/klwxsrx/deskbooking/pkg/time"
)

const (
	userSessionTTL             = 7 * 24 * time.Hour
	userSessionRenewalInterval = 15 * time.Minute

	decoyPassword = "decoy-password"
)

type (
	Authentication interface {
		Authenticate(ctx context.Context, email, password string) (SessionTokenData, error)
		VerifyAuthentication(context.Context, SessionToken) (AuthenticationData, error)
		RevokeSessions(context.Context, domain.UserID) error
		ChangePassword(ctx context.Context, userID domain.UserID, oldPassword, newPassword string) (SessionTokenData, error)
		RequestPasswordReset(ctx context.Context, email string) error
		ResetPassword(ctx context.Context, token string, newPassword string) error
	}

	SessionTokenData struct {
		Token     SessionToken
		ValidTill time.Time
	}

	AuthenticationData struct {
		UserID       domain.UserID
		RenewedToken *SessionTokenData
	}

	SessionToken string

	authenticationService struct {
		userRepo       domain.UserRepository
		updater        userUpdater
		sessionTokens  session.TokenGenerator
		tokenValidator TokenValidator
		passwordHasher encoding.PasswordHasher
		authPolicy     policy.AuthPolicy
		notifier       notification.Notifier
		permissions    auth.PermissionService
		clock          pkgtime.Clock
		logger         log.Logger

		decoyHashMutex sync.Mutex
		decoyHash      string
	}
)

func NewAuthentication(
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
	logger log.Logger,
) Authentication {
	return &authenticationService{
		userRepo: userRepo,
		updater: userUpdater{
			userRepo:    userRepo,
			transaction: transaction,
			validity:    validity,
		},
		sessionTokens:  sessionTokens,
		tokenValidator: tokenValidator,
		passwordHasher: passwordHasher,
		authPolicy:     authPolicy,
		notifier:       notifier,
		permissions:    permissions,
		clock:          clock,
		logger:         logger,
	}
}

func (s *authenticationService) Authenticate(ctx context.Context, email, password string) (SessionTokenData, error) {
	email = policy.NormalizeEmail(email)
	if email == "" || password == "" {
		return SessionTokenData{}, pkgauth.ErrUnauthenticated
	}

	user, err := s.userRepo.FindOne(ctx, domain.FindUserSpecification{Emails: []string{email}})
	if errors.Is(err, domain.ErrUserNotFound) {
		s.verifyDecoyPassword(ctx, password)
		return SessionTokenData{}, pkgauth.ErrUnauthenticated
	}
	if err != nil {
		return SessionTokenData{}, fmt.Errorf("find user by email: %w", err)
	}
	if user.IsDeleted() || user.PasswordHash == "" {
		s.verifyDecoyPassword(ctx, password)
		return SessionTokenData{}, pkgauth.ErrUnauthenticated
	}

	ok, err := s.passwordHasher.Verify(ctx, user.PasswordHash, password)
	if err != nil {
		return SessionTokenData{}, newError(ErrorKindHashingFailure, "verify password", err)
	}
	if !ok {
		return SessionTokenData{}, pkgauth.ErrUnauthenticated
	}

	if s.passwordHasher.NeedsRehash(user.PasswordHash) {
		s.rehashPassword(ctx, user, password)
	}

	return s.generateSessionToken(ctx, user.ID)
}

func (s *authenticationService) VerifyAuthentication(ctx context.Context, token SessionToken) (AuthenticationData, error) {
	tokenData, err := s.tokenValidator.Validate(ctx, session.EncodedToken(token), session.TokenPurposeSession)
	if err != nil {
		return AuthenticationData{}, err
	}

	if tokenData.IssuedAt.After(s.clock.Now(ctx).Add(-userSessionRenewalInterval)) {
		return AuthenticationData{UserID: tokenData.UserID}, nil
	}

	renewedToken, err := s.generateSessionToken(ctx, tokenData.UserID)
	if err != nil {
		return AuthenticationData{}, err
	}

	return AuthenticationData{
		UserID:       tokenData.UserID,
		RenewedToken: &renewedToken,
	}, nil
}

func (s *authenticationService) RevokeSessions(ctx context.Context, userID domain.UserID) error {
	if err := s.permissions.Check(ctx, permission.CanManageUser(userID)); err != nil {
		return err
	}

	now := s.clock.Now(ctx)
	return s.updater.update(ctx, userID, func(user *domain.User) error {
		user.RevokeTokens(now)
		return nil
	})
}

func (s *authenticationService) ChangePassword(
	ctx context.Context,
	userID domain.UserID,
	oldPassword, newPassword string,
) (SessionTokenData, error) {
	if err := s.permissions.Check(ctx, permission.CanManageUser(userID)); err != nil {
		return SessionTokenData{}, err
	}
	if !isValidPassword(newPassword) {
		return SessionTokenData{}, ErrInvalidUserCredentials
	}

	user, err := s.userRepo.FindOne(ctx, domain.FindUserSpecification{IDs: []domain.UserID{userID}})
	if errors.Is(err, domain.ErrUserNotFound) {
		return SessionTokenData{}, ErrUserNotFound
	}
	if err != nil {
		return SessionTokenData{}, fmt.Errorf("find user by id: %w", err)
	}
	if user.IsDeleted() {
		return SessionTokenData{}, ErrUserIsAlreadyDeleted
	}

	ok, err := s.passwordHasher.Verify(ctx, user.PasswordHash, oldPassword)
	if err != nil {
		return SessionTokenData{}, newError(ErrorKindHashingFailure, "verify password", err)
	}
	if !ok {
		return SessionTokenData{}, ErrInvalidUserCredentials
	}

	newPasswordHash, err := s.passwordHasher.Hash(ctx, newPassword)
	if err != nil {
		return SessionTokenData{}, newError(ErrorKindHashingFailure, "hash password", err)
	}

	now := s.clock.Now(ctx)
	err = s.updater.update(ctx, userID, func(current *domain.User) error {
		if current.PasswordHash != user.PasswordHash {
			return ErrInvalidUserCredentials
		}

		current.SetPasswordHash(newPasswordHash)
		current.RevokeTokens(now)
		return nil
	})
	if err != nil {
		return SessionTokenData{}, err
	}

	err = s.notifier.Notify(ctx, notification.Notification{
		Type:      notification.TypePasswordChanged,
		Recipient: user.Email,
	})
	if err != nil {
		s.logger.WithError(err).Error(ctx, "failed to notify about password change")
	}

	return s.generateSessionToken(ctx, userID)
}

func (s *authenticationService) RequestPasswordReset(ctx context.Context, email string) error {
	email = policy.NormalizeEmail(email)
	if email == "" {
		return nil
	}

	user, err := s.userRepo.FindOne(ctx, domain.FindUserSpecification{Emails: []string{email}})
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("find user by email: %w", err)
	}
	if user.IsDeleted() {
		return nil
	}

	token, err := s.sessionTokens.Generate(ctx, user.ID, session.TokenPurposePasswordReset, s.authPolicy.PasswordResetTTL())
	if err != nil {
		return fmt.Errorf("generate password reset token: %w", err)
	}

	err = s.notifier.Notify(ctx, notification.Notification{
		Type:      notification.TypePasswordReset,
		Recipient: user.Email,
		Token:     string(token.EncodedToken),
		ValidTill: &token.ValidTill,
	})
	if err != nil {
		return fmt.Errorf("notify password reset: %w", err)
	}

	return nil
}

// ResetPassword raises the watermark, so the reset token and every session of the user stop being honored
func (s *authenticationService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	if !isValidPassword(newPassword) {
		return ErrInvalidUserCredentials
	}

	tokenData, err := s.tokenValidator.Validate(ctx, session.EncodedToken(token), session.TokenPurposePasswordReset)
	if err != nil {
		return err
	}

	passwordHash, err := s.passwordHasher.Hash(ctx, newPassword)
	if err != nil {
		return newError(ErrorKindHashingFailure, "hash password", err)
	}

	now := s.clock.Now(ctx)
	return s.updater.update(ctx, tokenData.UserID, func(user *domain.User) error {
		user.SetPasswordHash(passwordHash)
		user.RevokeTokens(now)
		return nil
	})
}

// verifyDecoyPassword spends the same hashing work as a real verification,
// so unknown and deleted accounts answer as slowly as a wrong password.
func (s *authenticationService) verifyDecoyPassword(ctx context.Context, password string) {
	decoyHash, err := s.loadDecoyHash(ctx)
	if err != nil {
		s.logger.WithError(err).Warn(ctx, "failed to hash decoy password")
		return
	}

	_, _ = s.passwordHasher.Verify(ctx, decoyHash, password)
}

// loadDecoyHash hashes the decoy password once with the configured parameters.
// A failed attempt is retried on the next call.
func (s *authenticationService) loadDecoyHash(ctx context.Context) (string, error) {
	s.decoyHashMutex.Lock()
	defer s.decoyHashMutex.Unlock()

	if s.decoyHash != "" {
		return s.decoyHash, nil
	}

	decoyHash, err := s.passwordHasher.Hash(context.WithoutCancel(ctx), decoyPassword)
	if err != nil {
		return "", err
	}

	s.decoyHash = decoyHash
	return decoyHash, nil
}

func (s *authenticationService) rehashPassword(ctx context.Context, user *domain.User, password string) {
	passwordHash, err := s.passwordHasher.Hash(ctx, password)
	if err != nil {
		s.logger.WithError(err).Warn(ctx, "failed to rehash password")
		return
	}

	err = s.updater.update(ctx, user.ID, func(current *domain.User) error {
		if current.PasswordHash != user.PasswordHash {
			return errSkipUpdate
		}

		current.SetPasswordHash(passwordHash)
		return nil
	})
	if err != nil {
		s.logger.WithError(err).Warn(ctx, "failed to store rehashed password")
	}
}

func (s *authenticationService) generateSessionToken(ctx context.Context, userID domain.UserID) (SessionTokenData, error) {
	token, err := s.sessionTokens.Generate(ctx, userID, session.TokenPurposeSession, userSessionTTL)
	if err != nil {
		return SessionTokenData{}, fmt.Errorf("generate session token: %w", err)
	}

	return SessionTokenData{
		Token:     SessionToken(token.EncodedToken),
		ValidTill: token.ValidTill,
	}, nil
}

func isValidPassword(password string) bool {
	return password != "" && len(password) <= encoding.MaxPasswordLength
}
