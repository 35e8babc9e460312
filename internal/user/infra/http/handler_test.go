package http_test

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/klwxsrx/deskbooking/internal/pkg/auth"
	internalhttp "github.com/klwxsrx/deskbooking/internal/pkg/http"
	"github.com/klwxsrx/deskbooking/internal/user/app/service"
	userappservicemock "github.com/klwxsrx/deskbooking/internal/user/app/service/mock"
	"github.com/klwxsrx/deskbooking/internal/user/domain"
	userhttp "github.com/klwxsrx/deskbooking/internal/user/infra/http"
	pkgauth "github.com/klwxsrx/deskbooking/pkg/auth"
	pkghttp "github.com/klwxsrx/deskbooking/pkg/http"
	"github.com/klwxsrx/deskbooking/pkg/observability"
)

var validTill = time.Date(2024, time.March, 8, 12, 0, 0, 0, time.UTC)

type handlerDeps struct {
	authService *userappservicemock.Authentication
	userService *userappservicemock.User
	server      pkghttp.Server
}

func newHandlerDeps(t *testing.T) handlerDeps {
	ctrl := gomock.NewController(t)
	authService := userappservicemock.NewAuthentication(ctrl)
	userService := userappservicemock.NewUser(ctrl)

	server := pkghttp.NewServer(pkghttp.DefaultServerAddress, userhttp.WithErrorMapping())
	withAuth := userhttp.WithAuthentication(authService, observability.New())
	server.Register(userhttp.NewAuthenticateHandler(authService))
	server.Register(userhttp.NewVerifyAuthenticationHandler(authService))
	server.Register(userhttp.NewRevokeSessionsHandler(authService), withAuth...)
	server.Register(userhttp.NewChangePasswordHandler(authService), withAuth...)
	server.Register(userhttp.NewRequestPasswordResetHandler(authService))
	server.Register(userhttp.NewResetPasswordHandler(authService))
	server.Register(userhttp.NewRegisterUserHandler(userService))
	server.Register(userhttp.NewVerifyEmailHandler(userService))
	server.Register(userhttp.NewGetCurrentUserHandler(userService), withAuth...)
	server.Register(userhttp.NewGetUserByIDHandler(userService), withAuth...)
	server.Register(userhttp.NewDeleteUserByIDHandler(userService), withAuth...)

	return handlerDeps{
		authService: authService,
		userService: userService,
		server:      server,
	}
}

func (d handlerDeps) serve(t *testing.T, req *nethttp.Request) *httptest.ResponseRecorder {
	t.Helper()
	handler, ok := d.server.(nethttp.Handler)
	require.True(t, ok)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *nethttp.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}

	return nil
}

func TestAuthenticateHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		prepare      func(d handlerDeps)
		expectedCode int
	}{
		{
			name: "success",
			body: `{"email":"john@example.com","password":"secret"}`,
			prepare: func(d handlerDeps) {
				d.authService.EXPECT().Authenticate(gomock.Any(), "john@example.com", "secret").
					Return(service.SessionTokenData{Token: "session", ValidTill: validTill}, nil)
			},
			expectedCode: nethttp.StatusOK,
		},
		{
			name: "wrong_password",
			body: `{"email":"john@example.com","password":"wrong"}`,
			prepare: func(d handlerDeps) {
				d.authService.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(service.SessionTokenData{}, pkgauth.ErrUnauthenticated)
			},
			expectedCode: nethttp.StatusUnauthorized,
		},
		{
			name: "hashing_failure",
			body: `{"email":"john@example.com","password":"secret"}`,
			prepare: func(d handlerDeps) {
				d.authService.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(service.SessionTokenData{}, fmt.Errorf("verify: %w", service.ErrHashingFailure))
			},
			expectedCode: nethttp.StatusInternalServerError,
		},
		{
			name:         "malformed_body",
			body:         `{`,
			prepare:      func(handlerDeps) {},
			expectedCode: nethttp.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newHandlerDeps(t)
			tt.prepare(d)

			rec := d.serve(t, httptest.NewRequest(nethttp.MethodPost, "/auth", strings.NewReader(tt.body)))
			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedCode != nethttp.StatusOK {
				return
			}

			assert.JSONEq(t, fmt.Sprintf(`{"token":"session","validTill":%d}`, validTill.Unix()), rec.Body.String())
			cookie := findCookie(rec, internalhttp.SessionTokenCookieName)
			require.NotNil(t, cookie)
			assert.Equal(t, "session", cookie.Value)
			assert.True(t, cookie.HttpOnly)
		})
	}
}

func TestVerifyAuthenticationHandler(t *testing.T) {
	userID := domain.UserID{UUID: uuid.New()}

	tests := []struct {
		name           string
		request        func() *nethttp.Request
		prepare        func(d handlerDeps)
		expectedCode   int
		expectedCookie *string
	}{
		{
			name: "valid_cookie",
			request: func() *nethttp.Request {
				req := httptest.NewRequest(nethttp.MethodPost, "/auth/verification", nil)
				req.AddCookie(&nethttp.Cookie{Name: internalhttp.SessionTokenCookieName, Value: "session"})
				return req
			},
			prepare: func(d handlerDeps) {
				d.authService.EXPECT().VerifyAuthentication(gomock.Any(), service.SessionToken("session")).
					Return(service.AuthenticationData{UserID: userID}, nil)
			},
			expectedCode: nethttp.StatusOK,
		},
		{
			name: "renewed_bearer",
			request: func() *nethttp.Request {
				req := httptest.NewRequest(nethttp.MethodPost, "/auth/verification", nil)
				req.Header.Set(internalhttp.HeaderAuthorization, "Bearer session")
				return req
			},
			prepare: func(d handlerDeps) {
				d.authService.EXPECT().VerifyAuthentication(gomock.Any(), service.SessionToken("session")).
					Return(service.AuthenticationData{
						UserID:       userID,
						RenewedToken: &service.SessionTokenData{Token: "renewed", ValidTill: validTill},
					}, nil)
			},
			expectedCode:   nethttp.StatusOK,
			expectedCookie: ptr("renewed"),
		},
		{
			name: "revoked",
			request: func() *nethttp.Request {
				req := httptest.NewRequest(nethttp.MethodPost, "/auth/verification", nil)
				req.AddCookie(&nethttp.Cookie{Name: internalhttp.SessionTokenCookieName, Value: "session"})
				return req
			},
			prepare: func(d handlerDeps) {
				d.authService.EXPECT().VerifyAuthentication(gomock.Any(), gomock.Any()).
					Return(service.AuthenticationData{}, &service.Error{Kind: service.ErrorKindRevokedToken})
			},
			expectedCode:   nethttp.StatusUnauthorized,
			expectedCookie: ptr(""),
		},
		{
			name: "invalid",
			request: func() *nethttp.Request {
				req := httptest.NewRequest(nethttp.MethodPost, "/auth/verification", nil)
				req.AddCookie(&nethttp.Cookie{Name: internalhttp.SessionTokenCookieName, Value: "garbage"})
				return req
			},
			prepare: func(d handlerDeps) {
				d.authService.EXPECT().VerifyAuthentication(gomock.Any(), gomock.Any()).
					Return(service.AuthenticationData{}, &service.Error{Kind: service.ErrorKindInvalidToken})
			},
			expectedCode:   nethttp.StatusUnauthorized,
			expectedCookie: ptr(""),
		},
		{
			name: "storage_failure",
			request: func() *nethttp.Request {
				req := httptest.NewRequest(nethttp.MethodPost, "/auth/verification", nil)
				req.AddCookie(&nethttp.Cookie{Name: internalhttp.SessionTokenCookieName, Value: "session"})
				return req
			},
			prepare: func(d handlerDeps) {
				d.authService.EXPECT().VerifyAuthentication(gomock.Any(), gomock.Any()).
					Return(service.AuthenticationData{}, &service.Error{Kind: service.ErrorKindStorageFailure})
			},
			expectedCode: nethttp.StatusInternalServerError,
		},
		{
			name: "no_token",
			request: func() *nethttp.Request {
				return httptest.NewRequest(nethttp.MethodPost, "/auth/verification", nil)
			},
			prepare:      func(handlerDeps) {},
			expectedCode: nethttp.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newHandlerDeps(t)
			tt.prepare(d)

			rec := d.serve(t, tt.request())
			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedCode == nethttp.StatusOK {
				assert.Equal(t, userID.String(), rec.Header().Get(internalhttp.HeaderAuthUserID))
			} else {
				assert.Empty(t, rec.Header().Get(internalhttp.HeaderAuthUserID))
			}

			cookie := findCookie(rec, internalhttp.SessionTokenCookieName)
			if tt.expectedCookie == nil {
				assert.Nil(t, cookie)
				return
			}
			require.NotNil(t, cookie)
			assert.Equal(t, *tt.expectedCookie, cookie.Value)
		})
	}
}

func TestRegisterUserHandler(t *testing.T) {
	userID := domain.UserID{UUID: uuid.New()}

	tests := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{"created", nil, nethttp.StatusCreated},
		{"invalid_credentials", service.ErrInvalidUserCredentials, nethttp.StatusBadRequest},
		{"email_not_allowed", service.ErrEmailNotAllowed, nethttp.StatusForbidden},
		{"already_exists", service.ErrUserAlreadyExists, nethttp.StatusConflict},
		{"already_deleted", service.ErrUserIsAlreadyDeleted, nethttp.StatusForbidden},
		{"storage_failure", errors.New("connection refused"), nethttp.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newHandlerDeps(t)
			d.userService.EXPECT().Register(gomock.Any(), service.UserCredentials{
				Email:    "john@example.com",
				Password: "secret",
			}).Return(userID, tt.err)

			rec := d.serve(t, httptest.NewRequest(
				nethttp.MethodPost,
				"/users",
				strings.NewReader(`{"email":"john@example.com","password":"secret"}`),
			))
			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.err == nil {
				assert.JSONEq(t, fmt.Sprintf(`{"id":%q}`, userID.String()), rec.Body.String())
			}
		})
	}
}

func TestTokenConsumingHandlers(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		body    string
		prepare func(d handlerDeps, err error)
		okCode  int
	}{
		{
			name: "verify_email",
			path: "/email-verification",
			body: `{"token":"verification"}`,
			prepare: func(d handlerDeps, err error) {
				d.userService.EXPECT().VerifyEmail(gomock.Any(), "verification").Return(err)
			},
			okCode: nethttp.StatusNoContent,
		},
		{
			name: "reset_password",
			path: "/password-reset",
			body: `{"token":"reset","newPassword":"new-secret"}`,
			prepare: func(d handlerDeps, err error) {
				d.authService.EXPECT().ResetPassword(gomock.Any(), "reset", "new-secret").Return(err)
			},
			okCode: nethttp.StatusNoContent,
		},
	}
	results := []struct {
		name         string
		err          error
		expectedCode func(okCode int) int
	}{
		{"ok", nil, func(okCode int) int { return okCode }},
		{"invalid_token", &service.Error{Kind: service.ErrorKindInvalidToken}, func(int) int { return nethttp.StatusUnauthorized }},
		{"revoked_token", &service.Error{Kind: service.ErrorKindRevokedToken}, func(int) int { return nethttp.StatusUnauthorized }},
		{"storage_failure", &service.Error{Kind: service.ErrorKindStorageFailure}, func(int) int { return nethttp.StatusInternalServerError }},
	}
	for _, tt := range tests {
		for _, result := range results {
			t.Run(tt.name+"_"+result.name, func(t *testing.T) {
				d := newHandlerDeps(t)
				tt.prepare(d, result.err)

				rec := d.serve(t, httptest.NewRequest(nethttp.MethodPost, tt.path, strings.NewReader(tt.body)))
				assert.Equal(t, result.expectedCode(tt.okCode), rec.Code)
			})
		}
	}
}

func TestRequestPasswordResetHandler(t *testing.T) {
	d := newHandlerDeps(t)
	d.authService.EXPECT().RequestPasswordReset(gomock.Any(), "unknown@example.com").Return(nil)

	rec := d.serve(t, httptest.NewRequest(
		nethttp.MethodPost,
		"/password-reset-requests",
		strings.NewReader(`{"email":"unknown@example.com"}`),
	))
	assert.Equal(t, nethttp.StatusAccepted, rec.Code)
}

func TestAuthenticatedHandlers(t *testing.T) {
	userID := domain.UserID{UUID: uuid.New()}
	otherUserID := domain.UserID{UUID: uuid.New()}
	userData := &service.UserData{ID: userID, Email: "john@example.com"}

	withSession := func(req *nethttp.Request) *nethttp.Request {
		req.Header.Set(internalhttp.HeaderAuthorization, "Bearer session")
		return req
	}
	sessionAccepted := func(d handlerDeps) {
		d.authService.EXPECT().VerifyAuthentication(gomock.Any(), service.SessionToken("session")).
			Return(service.AuthenticationData{UserID: userID}, nil)
	}
	userFromContext := func(ctx context.Context) uuid.UUID {
		authentication, ok := pkgauth.GetAuthentication[auth.Principal](ctx)
		require.True(t, ok)
		require.NotNil(t, authentication.Principal())
		return *authentication.Principal().UserID
	}

	tests := []struct {
		name         string
		request      func() *nethttp.Request
		prepare      func(d handlerDeps)
		expectedCode int
	}{
		{
			name: "get_current_user",
			request: func() *nethttp.Request {
				return withSession(httptest.NewRequest(nethttp.MethodGet, "/current-user", nil))
			},
			prepare: func(d handlerDeps) {
				sessionAccepted(d)
				d.userService.EXPECT().GetByID(gomock.Any(), userID).
					DoAndReturn(func(ctx context.Context, _ domain.UserID) (*service.UserData, error) {
						assert.Equal(t, userID.UUID, userFromContext(ctx))
						return userData, nil
					})
			},
			expectedCode: nethttp.StatusOK,
		},
		{
			name: "get_current_user_without_token",
			request: func() *nethttp.Request {
				return httptest.NewRequest(nethttp.MethodGet, "/current-user", nil)
			},
			prepare:      func(handlerDeps) {},
			expectedCode: nethttp.StatusUnauthorized,
		},
		{
			name: "get_current_user_with_revoked_token",
			request: func() *nethttp.Request {
				return withSession(httptest.NewRequest(nethttp.MethodGet, "/current-user", nil))
			},
			prepare: func(d handlerDeps) {
				d.authService.EXPECT().VerifyAuthentication(gomock.Any(), gomock.Any()).
					Return(service.AuthenticationData{}, &service.Error{Kind: service.ErrorKindRevokedToken})
			},
			expectedCode: nethttp.StatusUnauthorized,
		},
		{
			name: "get_current_user_when_storage_fails",
			request: func() *nethttp.Request {
				return withSession(httptest.NewRequest(nethttp.MethodGet, "/current-user", nil))
			},
			prepare: func(d handlerDeps) {
				d.authService.EXPECT().VerifyAuthentication(gomock.Any(), gomock.Any()).
					Return(service.AuthenticationData{}, &service.Error{Kind: service.ErrorKindStorageFailure})
			},
			expectedCode: nethttp.StatusInternalServerError,
		},
		{
			name: "get_user_by_gateway_user_id",
			request: func() *nethttp.Request {
				req := httptest.NewRequest(nethttp.MethodGet, "/users/"+userID.String(), nil)
				req.Header.Set(internalhttp.HeaderAuthUserID, userID.String())
				return req
			},
			prepare: func(d handlerDeps) {
				d.userService.EXPECT().GetByID(gomock.Any(), userID).Return(userData, nil)
			},
			expectedCode: nethttp.StatusOK,
		},
		{
			name: "get_other_user_is_denied",
			request: func() *nethttp.Request {
				return withSession(httptest.NewRequest(nethttp.MethodGet, "/users/"+otherUserID.String(), nil))
			},
			prepare: func(d handlerDeps) {
				sessionAccepted(d)
				d.userService.EXPECT().GetByID(gomock.Any(), otherUserID).Return(nil, pkgauth.ErrPermissionDenied)
			},
			expectedCode: nethttp.StatusForbidden,
		},
		{
			name: "get_unknown_user",
			request: func() *nethttp.Request {
				return withSession(httptest.NewRequest(nethttp.MethodGet, "/users/"+userID.String(), nil))
			},
			prepare: func(d handlerDeps) {
				sessionAccepted(d)
				d.userService.EXPECT().GetByID(gomock.Any(), userID).Return(nil, service.ErrUserNotFound)
			},
			expectedCode: nethttp.StatusNotFound,
		},
		{
			name: "get_user_by_malformed_id",
			request: func() *nethttp.Request {
				return withSession(httptest.NewRequest(nethttp.MethodGet, "/users/42", nil))
			},
			prepare:      sessionAccepted,
			expectedCode: nethttp.StatusBadRequest,
		},
		{
			name: "delete_user",
			request: func() *nethttp.Request {
				return withSession(httptest.NewRequest(nethttp.MethodDelete, "/users/"+userID.String(), nil))
			},
			prepare: func(d handlerDeps) {
				sessionAccepted(d)
				d.userService.EXPECT().Delete(gomock.Any(), userID).Return(nil)
			},
			expectedCode: nethttp.StatusNoContent,
		},
		{
			name: "revoke_sessions",
			request: func() *nethttp.Request {
				return withSession(httptest.NewRequest(nethttp.MethodPost, "/auth/revocation", nil))
			},
			prepare: func(d handlerDeps) {
				sessionAccepted(d)
				d.authService.EXPECT().RevokeSessions(gomock.Any(), userID).Return(nil)
			},
			expectedCode: nethttp.StatusNoContent,
		},
		{
			name: "change_password",
			request: func() *nethttp.Request {
				return withSession(httptest.NewRequest(
					nethttp.MethodPut,
					"/current-user/password",
					strings.NewReader(`{"oldPassword":"secret","newPassword":"new-secret"}`),
				))
			},
			prepare: func(d handlerDeps) {
				sessionAccepted(d)
				d.authService.EXPECT().ChangePassword(gomock.Any(), userID, "secret", "new-secret").
					Return(service.SessionTokenData{Token: "new-session", ValidTill: validTill}, nil)
			},
			expectedCode: nethttp.StatusOK,
		},
		{
			name: "change_password_with_wrong_old_password",
			request: func() *nethttp.Request {
				return withSession(httptest.NewRequest(
					nethttp.MethodPut,
					"/current-user/password",
					strings.NewReader(`{"oldPassword":"wrong","newPassword":"new-secret"}`),
				))
			},
			prepare: func(d handlerDeps) {
				sessionAccepted(d)
				d.authService.EXPECT().ChangePassword(gomock.Any(), userID, "wrong", "new-secret").
					Return(service.SessionTokenData{}, service.ErrInvalidUserCredentials)
			},
			expectedCode: nethttp.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newHandlerDeps(t)
			tt.prepare(d)

			rec := d.serve(t, tt.request())
			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
