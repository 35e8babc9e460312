package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/klwxsrx/deskbooking/internal/pkg/auth"
	internalhttp "github.com/klwxsrx/deskbooking/internal/pkg/http"
	"github.com/klwxsrx/deskbooking/internal/user/app/service"
	"github.com/klwxsrx/deskbooking/internal/user/domain"
	pkgauth "github.com/klwxsrx/deskbooking/pkg/auth"
)

func newSessionCookie(token service.SessionTokenData) *http.Cookie {
	return &http.Cookie{
		Name:     internalhttp.SessionTokenCookieName,
		Value:    string(token.Token),
		Path:     "/",
		Expires:  token.ValidTill,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func expiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     internalhttp.SessionTokenCookieName,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func currentUserID(ctx context.Context) (domain.UserID, error) {
	authentication, ok := pkgauth.GetAuthentication[auth.Principal](ctx)
	if !ok || authentication.Principal() == nil || authentication.Principal().UserID == nil {
		return domain.UserID{}, pkgauth.ErrUnauthenticated
	}

	return domain.UserID{UUID: *authentication.Principal().UserID}, nil
}

type sessionTokenOut struct {
	Token     string `json:"token"`
	ValidTill int64  `json:"validTill"`
}

func toSessionTokenOut(token service.SessionTokenData) sessionTokenOut {
	return sessionTokenOut{
		Token:     string(token.Token),
		ValidTill: token.ValidTill.Unix(),
	}
}

type userOut struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	EmailVerifiedAt *int64    `json:"emailVerifiedAt,omitempty"`
	DeletedAt       *int64    `json:"deletedAt,omitempty"`
}

func toUserOut(user *service.UserData) userOut {
	out := userOut{
		ID:    user.ID.UUID,
		Email: user.Email,
	}
	if user.EmailVerifiedAt != nil {
		v := user.EmailVerifiedAt.Unix()
		out.EmailVerifiedAt = &v
	}
	if user.DeletedAt != nil {
		v := user.DeletedAt.Unix()
		out.DeletedAt = &v
	}

	return out
}
