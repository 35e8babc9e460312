package http

import (
	"net/http"

	"github.com/klwxsrx/deskbooking/internal/user/app/service"
	pkghttp "github.com/klwxsrx/deskbooking/pkg/http"
)

type changePasswordHandler struct {
	authService service.Authentication
}

func NewChangePasswordHandler(authService service.Authentication) pkghttp.Handler {
	return changePasswordHandler{authService: authService}
}

func (h changePasswordHandler) Method() string {
	return http.MethodPut
}

func (h changePasswordHandler) Path() string {
	return "/current-user/password"
}

func (h changePasswordHandler) HTTPHandler() pkghttp.HandlerFunc {
	return func(w pkghttp.ResponseWriter, r *http.Request) (err error) {
		in, err := pkghttp.ParseRequest(r, pkghttp.JSONBody[changePasswordIn](), err)
		if err != nil {
			return err
		}

		userID, err := currentUserID(r.Context())
		if err != nil {
			return err
		}

		token, err := h.authService.ChangePassword(r.Context(), userID, in.OldPassword, in.NewPassword)
		if err != nil {
			return err
		}

		w.SetCookie(newSessionCookie(token))
		w.SetJSONBody(toSessionTokenOut(token))
		return nil
	}
}

type changePasswordIn struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}
