package http

import (
	"net/http"

	"github.com/klwxsrx/deskbooking/internal/user/app/service"
	pkghttp "github.com/klwxsrx/deskbooking/pkg/http"
)

type authenticateHandler struct {
	authService service.Authentication
}

func NewAuthenticateHandler(authService service.Authentication) pkghttp.Handler {
	return authenticateHandler{authService: authService}
}

func (h authenticateHandler) Method() string {
	return http.MethodPost
}

func (h authenticateHandler) Path() string {
	return "/auth"
}

func (h authenticateHandler) HTTPHandler() pkghttp.HandlerFunc {
	return func(w pkghttp.ResponseWriter, r *http.Request) (err error) {
		in, err := pkghttp.ParseRequest(r, pkghttp.JSONBody[authenticateIn](), err)
		if err != nil {
			return err
		}

		token, err := h.authService.Authenticate(r.Context(), in.Email, in.Password)
		if err != nil {
			return err
		}

		w.SetCookie(newSessionCookie(token))
		w.SetJSONBody(toSessionTokenOut(token))
		return nil
	}
}

type authenticateIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
