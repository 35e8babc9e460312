package http

import (
	"net/http"

	"github.com/klwxsrx/deskbooking/internal/pkg/auth"
	internalhttp "github.com/klwxsrx/deskbooking/internal/pkg/http"
	"github.com/klwxsrx/deskbooking/internal/user/app/service"
	pkgauth "github.com/klwxsrx/deskbooking/pkg/auth"
	pkghttp "github.com/klwxsrx/deskbooking/pkg/http"
)

// verifyAuthenticationHandler is called by the API gateway for every user request.
// It returns the internal user id header and a renewed session cookie when the session is old enough.
type verifyAuthenticationHandler struct {
	authService service.Authentication
}

func NewVerifyAuthenticationHandler(authService service.Authentication) pkghttp.Handler {
	return verifyAuthenticationHandler{authService: authService}
}

func (h verifyAuthenticationHandler) Method() string {
	return http.MethodPost
}

func (h verifyAuthenticationHandler) Path() string {
	return "/auth/verification"
}

func (h verifyAuthenticationHandler) HTTPHandler() pkghttp.HandlerFunc {
	return func(w pkghttp.ResponseWriter, r *http.Request) error {
		token, ok := sessionTokenFromRequest(r)
		if !ok {
			return pkgauth.ErrUnauthenticated
		}

		authData, err := h.authService.VerifyAuthentication(r.Context(), token)
		if service.IsTokenRejection(err) {
			w.SetCookie(expiredSessionCookie())
		}
		if err != nil {
			return err
		}

		if authData.RenewedToken != nil {
			w.SetCookie(newSessionCookie(*authData.RenewedToken))
		}

		w.SetHeader(internalhttp.HeaderAuthUserID, authData.UserID.String())
		return nil
	}
}

func sessionTokenFromRequest(r *http.Request) (service.SessionToken, bool) {
	for _, provider := range []pkghttp.AuthTokenProvider{
		internalhttp.BearerSessionTokenProvider,
		internalhttp.CookieSessionTokenProvider,
	} {
		token, ok := provider(r)
		if !ok {
			continue
		}

		sessionToken, ok := token.(auth.SessionToken)
		if ok {
			return service.SessionToken(sessionToken.Value), true
		}
	}

	return "", false
}
