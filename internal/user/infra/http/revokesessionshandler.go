package http

import (
	"net/http"

	"github.com/klwxsrx/deskbooking/internal/user/app/service"
	pkghttp "github.com/klwxsrx/deskbooking/pkg/http"
)

type revokeSessionsHandler struct {
	authService service.Authentication
}

func NewRevokeSessionsHandler(authService service.Authentication) pkghttp.Handler {
	return revokeSessionsHandler{authService: authService}
}

func (h revokeSessionsHandler) Method() string {
	return http.MethodPost
}

func (h revokeSessionsHandler) Path() string {
	return "/auth/revocation"
}

func (h revokeSessionsHandler) HTTPHandler() pkghttp.HandlerFunc {
	return func(w pkghttp.ResponseWriter, r *http.Request) error {
		userID, err := currentUserID(r.Context())
		if err != nil {
			return err
		}

		err = h.authService.RevokeSessions(r.Context(), userID)
		if err != nil {
			return err
		}

		w.SetCookie(expiredSessionCookie())
		w.SetStatusCode(http.StatusNoContent)
		return nil
	}
}
