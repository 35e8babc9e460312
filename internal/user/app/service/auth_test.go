package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/klwxsrx/deskbooking/internal/pkg/auth"
	"github.com/klwxsrx/deskbooking/internal/user/app/encoding"
	userappencodingmock "github.com/klwxsrx/deskbooking/internal/user/app/encoding/mock"
	"github.com/klwxsrx/deskbooking/internal/user/app/notification"
	userappnotificationmock "github.com/klwxsrx/deskbooking/internal/user/app/notification/mock"
	"github.com/klwxsrx/deskbooking/internal/user/app/policy"
	"github.com/klwxsrx/deskbooking/internal/user/app/service"
	"github.com/klwxsrx/deskbooking/internal/user/app/session"
	userappsessionmock "github.com/klwxsrx/deskbooking/internal/user/app/session/mock"
	"github.com/klwxsrx/deskbooking/internal/user/domain"
	userdomainmock "github.com/klwxsrx/deskbooking/internal/user/domain/mock"
	pkgauth "github.com/klwxsrx/deskbooking/pkg/auth"
	"github.com/klwxsrx/deskbooking/pkg/log"
	"github.com/klwxsrx/deskbooking/pkg/persistence"
	pkgtime "github.com/klwxsrx/deskbooking/pkg/time"
)

var testNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

type serviceDeps struct {
	userRepo    *userdomainmock.UserRepository
	tokens      *userappsessionmock.TokenGenerator
	validity    *userappsessionmock.ValidityTracker
	invalidator *userappsessionmock.ValidityInvalidator
	hasher      *userappencodingmock.PasswordHasher
	notifier    *userappnotificationmock.Notifier
	policy      policy.AuthPolicy
}

func newServiceDeps(t *testing.T) serviceDeps {
	ctrl := gomock.NewController(t)
	authPolicy, err := policy.New(policy.Config{
		AllowedEmailDomains:  []string{"example.com"},
		EmailVerificationTTL: policy.DefaultEmailVerificationTTL,
		PasswordResetTTL:     policy.DefaultPasswordResetTTL,
	})
	require.NoError(t, err)

	return serviceDeps{
		userRepo:    userdomainmock.NewUserRepository(ctrl),
		tokens:      userappsessionmock.NewTokenGenerator(ctrl),
		validity:    userappsessionmock.NewValidityTracker(ctrl),
		invalidator: userappsessionmock.NewValidityInvalidator(ctrl),
		hasher:      userappencodingmock.NewPasswordHasher(ctrl),
		notifier:    userappnotificationmock.NewNotifier(ctrl),
		policy:      authPolicy,
	}
}

func (d serviceDeps) authService() service.Authentication {
	return service.NewAuthentication(
		d.userRepo,
		persistence.NewTransactionStub(),
		d.invalidator,
		d.tokens,
		service.NewTokenValidator(d.tokens, d.validity),
		d.hasher,
		d.policy,
		d.notifier,
		pkgauth.NewPermissionService[auth.Principal](),
		pkgtime.NewFixedClock(testNow),
		log.NewStub(),
	)
}

func (d serviceDeps) userService() service.User {
	return service.NewUser(
		d.userRepo,
		persistence.NewTransactionStub(),
		d.invalidator,
		d.tokens,
		service.NewTokenValidator(d.tokens, d.validity),
		d.hasher,
		d.policy,
		d.notifier,
		pkgauth.NewPermissionService[auth.Principal](),
		pkgtime.NewFixedClock(testNow),
	)
}

func userContext(userID domain.UserID) context.Context {
	return pkgauth.WithAuthentication[auth.Principal](
		context.Background(),
		pkgauth.Auth[auth.Principal]{AuthPrincipal: auth.UserPrincipal(userID.UUID)},
	)
}

func sessionToken(userID domain.UserID, issuedAt time.Time) session.TokenData {
	return session.TokenData{
		EncodedToken: "session-token",
		UserID:       userID,
		Purpose:      session.TokenPurposeSession,
		IssuedAt:     issuedAt,
		ValidTill:    issuedAt.Add(7 * 24 * time.Hour),
	}
}

func TestAuthenticationService_Authenticate(t *testing.T) {
	user := &domain.User{
		ID:           domain.UserID{UUID: uuid.New()},
		Email:        "john@example.com",
		PasswordHash: "hash",
	}

	tests := []struct {
		name   string
		setup  func(d serviceDeps)
		expect func(t *testing.T, result service.SessionTokenData, err error)
	}{
		{
			name: "success",
			setup: func(d serviceDeps) {
				d.userRepo.EXPECT().FindOne(gomock.Any(), domain.FindUserSpecification{Emails: []string{"john@example.com"}}).Return(user, nil)
				d.hasher.EXPECT().Verify(gomock.Any(), "hash", "secret").Return(true, nil)
				d.hasher.EXPECT().NeedsRehash("hash").Return(false)
				d.tokens.EXPECT().Generate(gomock.Any(), user.ID, session.TokenPurposeSession, gomock.Any()).Return(sessionToken(user.ID, testNow), nil)
			},
			expect: func(t *testing.T, result service.SessionTokenData, err error) {
				require.NoError(t, err)
				assert.Equal(t, service.SessionToken("session-token"), result.Token)
			},
		},
		{
			name: "rehash_legacy_password",
			setup: func(d serviceDeps) {
				legacy := *user
				legacy.PasswordHash = "legacy"
				d.userRepo.EXPECT().FindOne(gomock.Any(), gomock.Any()).Return(&legacy, nil).Times(2)
				d.hasher.EXPECT().Verify(gomock.Any(), "legacy", "secret").Return(true, nil)
				d.hasher.EXPECT().NeedsRehash("legacy").Return(true)
				d.hasher.EXPECT().Hash(gomock.Any(), "secret").Return("rehashed", nil)
				d.userRepo.EXPECT().Store(gomock.Any(), gomock.Any()).Do(func(_ context.Context, stored *domain.User) {
					assert.Equal(t, "rehashed", stored.PasswordHash)
					assert.Nil(t, stored.TokenValidAfter)
				}).Return(nil)
				d.invalidator.EXPECT().Forget(gomock.Any(), user.ID)
				d.tokens.EXPECT().Generate(gomock.Any(), user.ID, session.TokenPurposeSession, gomock.Any()).Return(sessionToken(user.ID, testNow), nil)
			},
			expect: func(t *testing.T, _ service.SessionTokenData, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "unauthenticated_when_password_mismatch",
			setup: func(d serviceDeps) {
				d.userRepo.EXPECT().FindOne(gomock.Any(), gomock.Any()).Return(user, nil)
				d.hasher.EXPECT().Verify(gomock.Any(), "hash", "secret").Return(false, nil)
			},
			expect: func(t *testing.T, _ service.SessionTokenData, err error) {
				assert.ErrorIs(t, err, pkgauth.ErrUnauthenticated)
			},
		},
		{
			name: "unauthenticated_when_user_not_found",
			setup: func(d serviceDeps) {
				d.userRepo.EXPECT().FindOne(gomock.Any(), gomock.Any()).Return(nil, domain.ErrUserNotFound)
				d.hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("decoy", nil)
				d.hasher.EXPECT().Verify(gomock.Any(), "decoy", "secret").Return(false, nil)
			},
			expect: func(t *testing.T, _ service.SessionTokenData, err error) {
				assert.ErrorIs(t, err, pkgauth.ErrUnauthenticated)
			},
		},
		{
			name: "unauthenticated_when_user_deleted",
			setup: func(d serviceDeps) {
				deleted := *user
				deletedAt := testNow.Add(-time.Hour)
				deleted.DeletedAt = &deletedAt
				d.userRepo.EXPECT().FindOne(gomock.Any(), gomock.Any()).Return(&deleted, nil)
				d.hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("decoy", nil)
				d.hasher.EXPECT().Verify(gomock.Any(), "decoy", "secret").Return(true, nil)
			},
			expect: func(t *testing.T, _ service.SessionTokenData, err error) {
				assert.ErrorIs(t, err, pkgauth.ErrUnauthenticated)
			},
		},
		{
			name: "unauthenticated_when_user_has_no_password",
			setup: func(d serviceDeps) {
				noPassword := *user
				noPassword.PasswordHash = ""
				d.userRepo.EXPECT().FindOne(gomock.Any(), gomock.Any()).Return(&noPassword, nil)
				d.hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("decoy", nil)
				d.hasher.EXPECT().Verify(gomock.Any(), "decoy", "secret").Return(false, nil)
			},
			expect: func(t *testing.T, _ service.SessionTokenData, err error) {
				assert.ErrorIs(t, err, pkgauth.ErrUnauthenticated)
			},
		},
		{
			name: "unauthenticated_when_decoy_hashing_fails",
			setup: func(d serviceDeps) {
				d.userRepo.EXPECT().FindOne(gomock.Any(), gomock.Any()).Return(nil, domain.ErrUserNotFound)
				d.hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("", encoding.ErrHashing)
			},
			expect: func(t *testing.T, _ service.SessionTokenData, err error) {
				assert.ErrorIs(t, err, pkgauth.ErrUnauthenticated)
			},
		},
		{
			name: "hashing_failure_when_stored_hash_is_malformed",
			setup: func(d serviceDeps) {
				d.userRepo.EXPECT().FindOne(gomock.Any(), gomock.Any()).Return(user, nil)
				d.hasher.EXPECT().Verify(gomock.Any(), "hash", "secret").Return(false, encoding.ErrHashing)
			},
			expect: func(t *testing.T, _ service.SessionTokenData, err error) {
				assert.ErrorIs(t, err, service.ErrHashingFailure)
				assert.ErrorIs(t, err, encoding.ErrHashing)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newServiceDeps(t)
			tt.setup(d)

			result, err := d.authService().Authenticate(context.Background(), " John@Example.com ", "secret")
			tt.expect(t, result, err)
		})
	}
}

func TestAuthenticationService_Authenticate_DecoyHashIsReused(t *testing.T) {
	d := newServiceDeps(t)
	d.userRepo.EXPECT().FindOne(gomock.Any(), gomock.Any()).Return(nil, domain.ErrUserNotFound).Times(2)
	d.hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("decoy", nil).Times(1)
	d.hasher.EXPECT().Verify(gomock.Any(), "decoy", gomock.Any()).Return(false, nil).Times(2)

	authService := d.authService()
	for _, password := range []string{"first", "second"} {
		_, err := authService.Authenticate(context.Background(), "nobody@example.com", password)
		assert.ErrorIs(t, err, pkgauth.ErrUnauthenticated)
	}
}

func TestAuthenticationService_VerifyAuthentication(t *testing.T) {
	userID := domain.UserID{UUID: uuid.New()}

	tests := []struct {
		name   string
		setup  func(d serviceDeps)
		expect func(t *testing.T, result service.AuthenticationData, err error)
	}{
		{
			name: "fresh_token_is_not_renewed",
			setup: func(d serviceDeps) {
				d.tokens.EXPECT().Decode(gomock.Any(), gomock.Any(), session.TokenPurposeSession).Return(sessionToken(userID, testNow.Add(-time.Minute)), nil)
				d.validity.EXPECT().GetTokenValidAfter(gomock.Any(), userID).Return(nil, nil)
			},
			expect: func(t *testing.T, result service.AuthenticationData, err error) {
				require.NoError(t, err)
				assert.Equal(t, userID, result.UserID)
				assert.Nil(t, result.RenewedToken)
			},
		},
		{
			name: "old_token_is_renewed",
			setup: func(d serviceDeps) {
				d.tokens.EXPECT().Decode(gomock.Any(), gomock.Any(), session.TokenPurposeSession).Return(sessionToken(userID, testNow.Add(-time.Hour)), nil)
				d.validity.EXPECT().GetTokenValidAfter(gomock.Any(), userID).Return(nil, nil)
				renewed := sessionToken(userID, testNow)
				renewed.EncodedToken = "renewed"
				d.tokens.EXPECT().Generate(gomock.Any(), userID, session.TokenPurposeSession, gomock.Any()).Return(renewed, nil)
			},
			expect: func(t *testing.T, result service.AuthenticationData, err error) {
				require.NoError(t, err)
				require.NotNil(t, result.RenewedToken)
				assert.Equal(t, service.SessionToken("renewed"), result.RenewedToken.Token)
			},
		},
		{
			name: "revoked_token_is_never_renewed",
			setup: func(d serviceDeps) {
				d.tokens.EXPECT().Decode(gomock.Any(), gomock.Any(), session.TokenPurposeSession).Return(sessionToken(userID, testNow.Add(-time.Hour)), nil)
				watermark := testNow.Add(-time.Minute)
				d.validity.EXPECT().GetTokenValidAfter(gomock.Any(), userID).Return(&watermark, nil)
			},
			expect: func(t *testing.T, _ service.AuthenticationData, err error) {
				assert.ErrorIs(t, err, service.ErrRevokedToken)
			},
		},
		{
			name: "storage_failure_is_not_a_token_rejection",
			setup: func(d serviceDeps) {
				d.tokens.EXPECT().Decode(gomock.Any(), gomock.Any(), session.TokenPurposeSession).Return(sessionToken(userID, testNow), nil)
				d.validity.EXPECT().GetTokenValidAfter(gomock.Any(), userID).Return(nil, errors.New("timeout"))
			},
			expect: func(t *testing.T, _ service.AuthenticationData, err error) {
				assert.ErrorIs(t, err, service.ErrStorageFailure)
				assert.NotErrorIs(t, err, service.ErrInvalidToken)
				assert.NotErrorIs(t, err, service.ErrRevokedToken)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newServiceDeps(t)
			tt.setup(d)

			result, err := d.authService().VerifyAuthentication(context.Background(), "session-token")
			tt.expect(t, result, err)
		})
	}
}

func TestAuthenticationService_RevokeSessions(t *testing.T) {
	userID := domain.UserID{UUID: uuid.New()}
	d := newServiceDeps(t)
	d.userRepo.EXPECT().FindOne(gomock.Any(), gomock.Any()).Return(&domain.User{ID: userID}, nil)
	d.userRepo.EXPECT().Store(gomock.Any(), gomock.Any()).Do(func(_ context.Context, user *domain.User) {
		require.NotNil(t, user.TokenValidAfter)
		assert.Equal(t, testNow, *user.TokenValidAfter)
	}).Return(nil)
	d.invalidator.EXPECT().Forget(gomock.Any(), userID)

	err := d.authService().RevokeSessions(userContext(userID), userID)
	assert.NoError(t, err)
}

func TestAuthenticationService_RevokeSessions_OtherUser_PermissionDenied(t *testing.T) {
	d := newServiceDeps(t)

	err := d.authService().RevokeSessions(userContext(domain.UserID{UUID: uuid.New()}), domain.UserID{UUID: uuid.New()})
	assert.ErrorIs(t, err, pkgauth.ErrPermissionDenied)
}

func TestAuthenticationService_ChangePassword(t *testing.T) {
	user := &domain.User{
		ID:           domain.UserID{UUID: uuid.New()},
		Email:        "john@example.com",
		PasswordHash: "old-hash",
	}

	tests := []struct {
		name   string
		setup  func(d serviceDeps)
		expect func(t *testing.T, result service.SessionTokenData, err error)
	}{
		{
			name: "success_revokes_sessions_and_issues_new_one",
			setup: func(d serviceDeps) {
				current := *user
				d.userRepo.EXPECT().FindOne(gomock.Any(), gomock.Any()).Return(&current, nil).Times(2)
				d.hasher.EXPECT().Verify(gomock.Any(), "old-hash", "old").Return(true, nil)
				d.hasher.EXPECT().Hash(gomock.Any(), "new").Return("new-hash", nil)
				d.userRepo.EXPECT().Store(gomock.Any(), gomock.Any()).Do(func(_ context.Context, stored *domain.User) {
					assert.Equal(t, "new-hash", stored.PasswordHash)
					require.NotNil(t, stored.TokenValidAfter)
					assert.Equal(t, testNow, *stored.TokenValidAfter)
				}).Return(nil)
				d.invalidator.EXPECT().Forget(gomock.Any(), user.ID)
				d.notifier.EXPECT().Notify(gomock.Any(), notification.Notification{
					Type:      notification.TypePasswordChanged,
					Recipient: user.Email,
				}).Return(nil)
				d.tokens.EXPECT().Generate(gomock.Any(), user.ID, session.TokenPurposeSession, gomock.Any()).Return(sessionToken(user.ID, testNow), nil)
			},
			expect: func(t *testing.T, result service.SessionTokenData, err error) {
				require.NoError(t, err)
				assert.Equal(t, service.SessionToken("session-token"), result.Token)
			},
		},
		{
			name: "invalid_credentials_when_old_password_mismatch",
			setup: func(d serviceDeps) {
				d.userRepo.EXPECT().FindOne(gomock.Any(), gomock.Any()).Return(user, nil)
				d.hasher.EXPECT().Verify(gomock.Any(), "old-hash", "old").Return(false, nil)
			},
			expect: func(t *testing.T, _ service.SessionTokenData, err error) {
				assert.ErrorIs(t, err, service.ErrInvalidUserCredentials)
			},
		},
		{
			name: "hashing_failure",
			setup: func(d serviceDeps) {
				d.userRepo.EXPECT().FindOne(gomock.Any(), gomock.Any()).Return(user, nil)
				d.hasher.EXPECT().Verify(gomock.Any(), "old-hash", "old").Return(true, nil)
				d.hasher.EXPECT().Hash(gomock.Any(), "new").Return("", encoding.ErrHashing)
			},
			expect: func(t *testing.T, _ service.SessionTokenData, err error) {
				assert.ErrorIs(t, err, service.ErrHashingFailure)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newServiceDeps(t)
			tt.setup(d)

			result, err := d.authService().ChangePassword(userContext(user.ID), user.ID, "old", "new")
			tt.expect(t, result, err)
		})
	}
}

func TestAuthenticationService_RequestPasswordReset(t *testing.T) {
	user := &domain.User{ID: domain.UserID{UUID: uuid.New()}, Email: "john@example.com"}
	resetToken := session.TokenData{
		EncodedToken: "reset-token",
		UserID:       user.ID,
		Purpose:      session.TokenPurposePasswordReset,
		IssuedAt:     testNow,
		ValidTill:    testNow.Add(time.Hour),
	}

	t.Run("sends_reset_email", func(t *testing.T) {
		d := newServiceDeps(t)
		d.userRepo.EXPECT().FindOne(gomock.Any(), domain.FindUserSpecification{Emails: []string{"john@example.com"}}).Return(user, nil)
		d.tokens.EXPECT().Generate(gomock.Any(), user.ID, session.TokenPurposePasswordReset, time.Hour).Return(resetToken, nil)
		d.notifier.EXPECT().Notify(gomock.Any(), notification.Notification{
			Type:      notification.TypePasswordReset,
			Recipient: user.Email,
			Token:     "reset-token",
			ValidTill: &resetToken.ValidTill,
		}).Return(nil)

		err := d.authService().RequestPasswordReset(context.Background(), "john@example.com")
		assert.NoError(t, err)
	})

	t.Run("silently_succeeds_for_unknown_email", func(t *testing.T) {
		d := newServiceDeps(t)
		d.userRepo.EXPECT().FindOne(gomock.Any(), gomock.Any()).Return(nil, domain.ErrUserNotFound)

		err := d.authService().RequestPasswordReset(context.Background(), "unknown@example.com")
		assert.NoError(t, err)
	})
}

func TestAuthenticationService_ResetPassword(t *testing.T) {
	userID := domain.UserID{UUID: uuid.New()}
	resetToken := session.TokenData{
		EncodedToken: "reset-token",
		UserID:       userID,
		Purpose:      session.TokenPurposePasswordReset,
		IssuedAt:     testNow.Add(-10 * time.Minute),
	}

	t.Run("stores_hash_and_raises_watermark", func(t *testing.T) {
		d := newServiceDeps(t)
		d.tokens.EXPECT().Decode(gomock.Any(), session.EncodedToken("reset-token"), session.TokenPurposePasswordReset).Return(resetToken, nil)
		d.validity.EXPECT().GetTokenValidAfter(gomock.Any(), userID).Return(nil, nil)
		d.hasher.EXPECT().Hash(gomock.Any(), "new").Return("new-hash", nil)
		d.userRepo.EXPECT().FindOne(gomock.Any(), gomock.Any()).Return(&domain.User{ID: userID}, nil)
		d.userRepo.EXPECT().Store(gomock.Any(), gomock.Any()).Do(func(_ context.Context, user *domain.User) {
			assert.Equal(t, "new-hash", user.PasswordHash)
			require.NotNil(t, user.TokenValidAfter)
			assert.True(t, resetToken.IssuedAt.Before(*user.TokenValidAfter))
		}).Return(nil)
		d.invalidator.EXPECT().Forget(gomock.Any(), userID)

		err := d.authService().ResetPassword(context.Background(), "reset-token", "new")
		assert.NoError(t, err)
	})

	t.Run("rejects_used_token", func(t *testing.T) {
		d := newServiceDeps(t)
		d.tokens.EXPECT().Decode(gomock.Any(), gomock.Any(), session.TokenPurposePasswordReset).Return(resetToken, nil)
		watermark := testNow.Add(-5 * time.Minute)
		d.validity.EXPECT().GetTokenValidAfter(gomock.Any(), userID).Return(&watermark, nil)

		err := d.authService().ResetPassword(context.Background(), "reset-token", "new")
		assert.ErrorIs(t, err, service.ErrRevokedToken)
	})

	t.Run("rejects_empty_password_without_token_check", func(t *testing.T) {
		d := newServiceDeps(t)

		err := d.authService().ResetPassword(context.Background(), "reset-token", "")
		assert.ErrorIs(t, err, service.ErrInvalidUserCredentials)
	})
}
