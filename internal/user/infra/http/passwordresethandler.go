package http

import (
	"net/http"

	"github.com/klwxsrx/deskbooking/internal/user/app/service"
	pkghttp "github.com/klwxsrx/deskbooking/pkg/http"
)

type (
	requestPasswordResetHandler struct {
		authService service.Authentication
	}

	resetPasswordHandler struct {
		authService service.Authentication
	}
)

func NewRequestPasswordResetHandler(authService service.Authentication) pkghttp.Handler {
	return requestPasswordResetHandler{authService: authService}
}

func (h requestPasswordResetHandler) Method() string {
	return http.MethodPost
}

func (h requestPasswordResetHandler) Path() string {
	return "/password-reset-requests"
}

// HTTPHandler answers 202 for unknown emails too, so the endpoint does not reveal registered users
func (h requestPasswordResetHandler) HTTPHandler() pkghttp.HandlerFunc {
	return func(w pkghttp.ResponseWriter, r *http.Request) (err error) {
		in, err := pkghttp.ParseRequest(r, pkghttp.JSONBody[requestPasswordResetIn](), err)
		if err != nil {
			return err
		}

		err = h.authService.RequestPasswordReset(r.Context(), in.Email)
		if err != nil {
			return err
		}

		w.SetStatusCode(http.StatusAccepted)
		return nil
	}
}

func NewResetPasswordHandler(authService service.Authentication) pkghttp.Handler {
	return resetPasswordHandler{authService: authService}
}

func (h resetPasswordHandler) Method() string {
	return http.MethodPost
}

func (h resetPasswordHandler) Path() string {
	return "/password-reset"
}

func (h resetPasswordHandler) HTTPHandler() pkghttp.HandlerFunc {
	return func(w pkghttp.ResponseWriter, r *http.Request) (err error) {
		in, err := pkghttp.ParseRequest(r, pkghttp.JSONBody[resetPasswordIn](), err)
		if err != nil {
			return err
		}

		err = h.authService.ResetPassword(r.Context(), in.Token, in.NewPassword)
		if err != nil {
			return err
		}

		w.SetStatusCode(http.StatusNoContent)
		return nil
	}
}

type (
	requestPasswordResetIn struct {
		Email string `json:"email"`
	}

	resetPasswordIn struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
)
