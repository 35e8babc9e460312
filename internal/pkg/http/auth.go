package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/klwxsrx/deskbooking/internal/pkg/auth"
	pkgauth "github.com/klwxsrx/deskbooking/pkg/auth"
	pkghttp "github.com/klwxsrx/deskbooking/pkg/http"
)

const (
	HeaderAuthUserID      = "X-Auth-User-ID"
	HeaderAuthServiceName = "X-Auth-Service-Name"
	HeaderAuthorization   = "Authorization"
	RequestIDHeader       = "X-Request-ID"

	SessionTokenCookieName = "ust"

	bearerPrefix = "Bearer "
)

func UserIDTokenProvider(r *http.Request) (pkgauth.Token, bool) {
	userID, err := pkghttp.ParseRequest(r, pkghttp.Header[uuid.UUID](HeaderAuthUserID), nil)
	if err != nil || userID == uuid.Nil {
		return nil, false
	}

	return auth.UserIDToken{
		ID: userID,
	}, true
}

func ServiceNameTokenProvider(r *http.Request) (pkgauth.Token, bool) {
	serviceName, err := pkghttp.ParseRequest(r, pkghttp.Header[string](HeaderAuthServiceName), nil)
	if err != nil || serviceName == "" {
		return nil, false
	}

	return auth.ServiceNameToken{
		Name: auth.ServiceName(serviceName),
	}, true
}

func BearerSessionTokenProvider(r *http.Request) (pkgauth.Token, bool) {
	header, err := pkghttp.ParseRequest(r, pkghttp.Header[string](HeaderAuthorization), nil)
	if err != nil || len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return nil, false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return nil, false
	}

	return auth.SessionToken{Value: token}, true
}

func CookieSessionTokenProvider(r *http.Request) (pkgauth.Token, bool) {
	token, err := pkghttp.ParseRequest(r, pkghttp.CookieValue[string](SessionTokenCookieName), nil)
	if err != nil || token == "" {
		return nil, false
	}

	return auth.SessionToken{Value: token}, true
}
