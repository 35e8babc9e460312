package session_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klwxsrx/deskbooking/internal/user/app/service"
	"github.com/klwxsrx/deskbooking/internal/user/app/session"
	"github.com/klwxsrx/deskbooking/internal/user/domain"
	usersession "github.com/klwxsrx/deskbooking/internal/user/infra/session"
	pkgtime "github.com/klwxsrx/deskbooking/pkg/time"
)

var testSecret = []byte(strings.Repeat("s", 32))

func newTokenGenerator(t *testing.T, clock pkgtime.Clock) session.TokenGenerator {
	generator, err := usersession.NewTokenGenerator(usersession.Config{Secret: testSecret}, clock)
	require.NoError(t, err)
	return generator
}

func TestTokenGenerator_GenerateAndDecode(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 700_123_456, time.UTC)
	generator := newTokenGenerator(t, pkgtime.NewFixedClock(now))
	userID := domain.UserID{UUID: uuid.New()}

	token, err := generator.Generate(context.Background(), userID, session.TokenPurposeSession, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 1, 12, 0, 0, 700_000_000, time.UTC), token.IssuedAt)
	assert.Equal(t, time.Date(2024, time.March, 1, 13, 0, 0, 0, time.UTC), token.ValidTill)

	decoded, err := generator.Decode(context.Background(), token.EncodedToken, session.TokenPurposeSession)
	require.NoError(t, err)
	assert.Equal(t, token, decoded)
}

func TestTokenGenerator_Decode_Invalid(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	userID := domain.UserID{UUID: uuid.New()}
	generator := newTokenGenerator(t, pkgtime.NewFixedClock(now))
	valid, err := generator.Generate(context.Background(), userID, session.TokenPurposeSession, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   func(t *testing.T) session.EncodedToken
		purpose session.TokenPurpose
		clock   pkgtime.Clock
	}{
		{
			name:    "malformed",
			token:   func(*testing.T) session.EncodedToken { return "not-a-jwt" },
			purpose: session.TokenPurposeSession,
		},
		{
			name:    "wrong_purpose",
			token:   func(*testing.T) session.EncodedToken { return valid.EncodedToken },
			purpose: session.TokenPurposePasswordReset,
		},
		{
			name:    "expired",
			token:   func(*testing.T) session.EncodedToken { return valid.EncodedToken },
			purpose: session.TokenPurposeSession,
			clock:   pkgtime.NewFixedClock(now.Add(2 * time.Hour)),
		},
		{
			name: "bad_signature",
			token: func(t *testing.T) session.EncodedToken {
				other, err := usersession.NewTokenGenerator(
					usersession.Config{Secret: []byte(strings.Repeat("o", 32))},
					pkgtime.NewFixedClock(now),
				)
				require.NoError(t, err)
				token, err := other.Generate(context.Background(), userID, session.TokenPurposeSession, time.Hour)
				require.NoError(t, err)
				return token.EncodedToken
			},
			purpose: session.TokenPurposeSession,
		},
		{
			name: "unsigned",
			token: func(t *testing.T) session.EncodedToken {
				token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
					Issuer:    usersession.DefaultIssuer,
					Subject:   userID.String(),
					IssuedAt:  jwt.NewNumericDate(now),
					ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				}).SignedString(jwt.UnsafeAllowNoneSignatureType)
				require.NoError(t, err)
				return session.EncodedToken(token)
			},
			purpose: session.TokenPurposeSession,
		},
		{
			name: "invalid_subject",
			token: func(t *testing.T) session.EncodedToken {
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
					"iss":     usersession.DefaultIssuer,
					"sub":     "john",
					"iat":     now.Unix(),
					"iat_ms":  now.UnixMilli(),
					"exp":     now.Add(time.Hour).Unix(),
					"purpose": string(session.TokenPurposeSession),
				}).SignedString(testSecret)
				require.NoError(t, err)
				return session.EncodedToken(token)
			},
			purpose: session.TokenPurposeSession,
		},
		{
			name: "without_issued_at_millis",
			token: func(t *testing.T) session.EncodedToken {
				return signedClaims(t, jwt.MapClaims{
					"iss":     usersession.DefaultIssuer,
					"sub":     userID.String(),
					"iat":     now.Unix(),
					"exp":     now.Add(time.Hour).Unix(),
					"purpose": string(session.TokenPurposeSession),
				})
			},
			purpose: session.TokenPurposeSession,
		},
		{
			name: "issued_at_millis_from_other_second",
			token: func(t *testing.T) session.EncodedToken {
				return signedClaims(t, jwt.MapClaims{
					"iss":     usersession.DefaultIssuer,
					"sub":     userID.String(),
					"iat":     now.Unix(),
					"iat_ms":  now.Add(-time.Minute).UnixMilli(),
					"exp":     now.Add(time.Hour).Unix(),
					"purpose": string(session.TokenPurposeSession),
				})
			},
			purpose: session.TokenPurposeSession,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := tt.clock
			if clock == nil {
				clock = pkgtime.NewFixedClock(now)
			}

			_, err := newTokenGenerator(t, clock).Decode(context.Background(), tt.token(t), tt.purpose)
			assert.ErrorIs(t, err, session.ErrInvalidToken)
		})
	}
}

func signedClaims(t *testing.T, claims jwt.MapClaims) session.EncodedToken {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return session.EncodedToken(token)
}

type validityFunc func(context.Context, domain.UserID) (*time.Time, error)

func (f validityFunc) GetTokenValidAfter(ctx context.Context, userID domain.UserID) (*time.Time, error) {
	return f(ctx, userID)
}

func TestTokenValidation_RevocationWithinSameSecond(t *testing.T) {
	second := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	at := func(millis int) time.Time {
		return second.Add(time.Duration(millis) * time.Millisecond)
	}

	tests := []struct {
		name      string
		issuedAt  time.Time
		revokedAt time.Time
		expectErr error
	}{
		{name: "issued_before_revocation", issuedAt: at(200), revokedAt: at(500), expectErr: service.ErrRevokedToken},
		{name: "issued_after_revocation", issuedAt: at(700), revokedAt: at(500)},
		{name: "issued_at_revocation", issuedAt: at(500), revokedAt: at(500).Add(300 * time.Microsecond)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := domain.User{ID: domain.UserID{UUID: uuid.New()}}
			generator := newTokenGenerator(t, pkgtime.NewFixedClock(tt.issuedAt))
			token, err := generator.Generate(context.Background(), user.ID, session.TokenPurposeSession, time.Hour)
			require.NoError(t, err)

			user.RevokeTokens(tt.revokedAt)
			validator := service.NewTokenValidator(generator, validityFunc(func(context.Context, domain.UserID) (*time.Time, error) {
				return user.TokenValidAfter, nil
			}))

			_, err = validator.Validate(context.Background(), token.EncodedToken, session.TokenPurposeSession)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewTokenGenerator_ShortSecret(t *testing.T) {
	_, err := usersession.NewTokenGenerator(usersession.Config{Secret: []byte("short")}, pkgtime.NewClock())
	assert.Error(t, err)
}
