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

	"github.com/klwxsrx/deskbooking/internal/user/app/service"
	"github.com/klwxsrx/deskbooking/internal/user/app/session"
	userappsessionmock "github.com/klwxsrx/deskbooking/internal/user/app/session/mock"
	"github.com/klwxsrx/deskbooking/internal/user/domain"
)

func TestTokenValidator_Validate(t *testing.T) {
	userID := domain.UserID{UUID: uuid.New()}
	issuedAt := time.Unix(100, 0).UTC()
	tokenData := session.TokenData{
		EncodedToken: "token",
		UserID:       userID,
		Purpose:      session.TokenPurposeSession,
		IssuedAt:     issuedAt,
		ValidTill:    issuedAt.Add(time.Hour),
	}

	tests := []struct {
		name     string
		decode   func(m *userappsessionmock.TokenGenerator)
		validity func(m *userappsessionmock.ValidityTracker)
		expect   func(t *testing.T, result session.TokenData, err error)
	}{
		{
			name: "accepted_without_watermark",
			decode: func(m *userappsessionmock.TokenGenerator) {
				m.EXPECT().Decode(gomock.Any(), session.EncodedToken("token"), session.TokenPurposeSession).Return(tokenData, nil)
			},
			validity: func(m *userappsessionmock.ValidityTracker) {
				m.EXPECT().GetTokenValidAfter(gomock.Any(), userID).Return(nil, nil)
			},
			expect: func(t *testing.T, result session.TokenData, err error) {
				require.NoError(t, err)
				assert.Equal(t, tokenData, result)
			},
		},
		{
			name: "accepted_when_issued_at_watermark",
			decode: func(m *userappsessionmock.TokenGenerator) {
				m.EXPECT().Decode(gomock.Any(), gomock.Any(), gomock.Any()).Return(tokenData, nil)
			},
			validity: func(m *userappsessionmock.ValidityTracker) {
				m.EXPECT().GetTokenValidAfter(gomock.Any(), userID).Return(&issuedAt, nil)
			},
			expect: func(t *testing.T, _ session.TokenData, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "revoked_when_issued_before_watermark",
			decode: func(m *userappsessionmock.TokenGenerator) {
				m.EXPECT().Decode(gomock.Any(), gomock.Any(), gomock.Any()).Return(tokenData, nil)
			},
			validity: func(m *userappsessionmock.ValidityTracker) {
				watermark := issuedAt.Add(time.Second)
				m.EXPECT().GetTokenValidAfter(gomock.Any(), userID).Return(&watermark, nil)
			},
			expect: func(t *testing.T, _ session.TokenData, err error) {
				assert.ErrorIs(t, err, service.ErrRevokedToken)
				assert.NotErrorIs(t, err, service.ErrInvalidToken)
			},
		},
		{
			name: "invalid_without_watermark_lookup_when_malformed",
			decode: func(m *userappsessionmock.TokenGenerator) {
				m.EXPECT().Decode(gomock.Any(), gomock.Any(), gomock.Any()).Return(session.TokenData{}, session.ErrInvalidToken)
			},
			validity: func(*userappsessionmock.ValidityTracker) {},
			expect: func(t *testing.T, _ session.TokenData, err error) {
				assert.ErrorIs(t, err, service.ErrInvalidToken)
				assert.ErrorIs(t, err, session.ErrInvalidToken)
				assert.NotErrorIs(t, err, service.ErrRevokedToken)
			},
		},
		{
			name: "invalid_when_user_is_unknown",
			decode: func(m *userappsessionmock.TokenGenerator) {
				m.EXPECT().Decode(gomock.Any(), gomock.Any(), gomock.Any()).Return(tokenData, nil)
			},
			validity: func(m *userappsessionmock.ValidityTracker) {
				m.EXPECT().GetTokenValidAfter(gomock.Any(), userID).Return(nil, session.ErrUnknownUser)
			},
			expect: func(t *testing.T, _ session.TokenData, err error) {
				assert.ErrorIs(t, err, service.ErrInvalidToken)
			},
		},
		{
			name: "storage_failure_when_lookup_fails",
			decode: func(m *userappsessionmock.TokenGenerator) {
				m.EXPECT().Decode(gomock.Any(), gomock.Any(), gomock.Any()).Return(tokenData, nil)
			},
			validity: func(m *userappsessionmock.ValidityTracker) {
				m.EXPECT().GetTokenValidAfter(gomock.Any(), userID).Return(nil, errors.New("connection refused"))
			},
			expect: func(t *testing.T, _ session.TokenData, err error) {
				assert.ErrorIs(t, err, service.ErrStorageFailure)
				assert.False(t, service.IsTokenRejection(err))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			tokens := userappsessionmock.NewTokenGenerator(ctrl)
			validity := userappsessionmock.NewValidityTracker(ctrl)
			tt.decode(tokens)
			tt.validity(validity)

			result, err := service.NewTokenValidator(tokens, validity).Validate(
				context.Background(),
				"token",
				session.TokenPurposeSession,
			)
			tt.expect(t, result, err)
		})
	}
}

func TestTokenValidator_Validate_RevocationScenario(t *testing.T) {
	ctrl := gomock.NewController(t)
	user := &domain.User{ID: domain.UserID{UUID: uuid.New()}}
	tokens := userappsessionmock.NewTokenGenerator(ctrl)
	validator := service.NewTokenValidator(tokens, userValidityTracker{user: user})

	issue := func(sec int64) session.EncodedToken {
		token := session.EncodedToken(uuid.NewString())
		tokens.EXPECT().Decode(gomock.Any(), token, session.TokenPurposeSession).Return(session.TokenData{
			EncodedToken: token,
			UserID:       user.ID,
			Purpose:      session.TokenPurposeSession,
			IssuedAt:     time.Unix(sec, 0).UTC(),
		}, nil).AnyTimes()
		return token
	}

	oldToken := issue(100)
	_, err := validator.Validate(context.Background(), oldToken, session.TokenPurposeSession)
	require.NoError(t, err)

	user.RevokeTokens(time.Unix(150, 0))

	_, err = validator.Validate(context.Background(), oldToken, session.TokenPurposeSession)
	require.ErrorIs(t, err, service.ErrRevokedToken)

	newToken := issue(160)
	_, err = validator.Validate(context.Background(), newToken, session.TokenPurposeSession)
	require.NoError(t, err)
}

type userValidityTracker struct {
	user *domain.User
}

func (s userValidityTracker) GetTokenValidAfter(_ context.Context, userID domain.UserID) (*time.Time, error) {
	if userID != s.user.ID {
		return nil, session.ErrUnknownUser
	}

	return s.user.TokenValidAfter, nil
}
