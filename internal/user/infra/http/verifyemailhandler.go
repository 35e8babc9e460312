package http

import (
	"net/http"

	"github.com/klwxsrx/deskbooking/internal/user/app/service"
	pkghttp "github.com/klwxsrx/deskbooking/pkg/http"
)

type verifyEmailHandler struct {
	userService service.User
}

func NewVerifyEmailHandler(userService service.User) pkghttp.Handler {
	return verifyEmailHandler{userService: userService}
}

func (h verifyEmailHandler) Method() string {
	return http.MethodPost
}

func (h verifyEmailHandler) Path() string {
	return "/email-verification"
}

func (h verifyEmailHandler) HTTPHandler() pkghttp.HandlerFunc {
	return func(w pkghttp.ResponseWriter, r *http.Request) (err error) {
		in, err := pkghttp.ParseRequest(r, pkghttp.JSONBody[verifyEmailIn](), err)
		if err != nil {
			return err
		}

		err = h.userService.VerifyEmail(r.Context(), in.Token)
		if err != nil {
			return err
		}

		w.SetStatusCode(http.StatusNoContent)
		return nil
	}
}

type verifyEmailIn struct {
	Token string `json:"token"`
}
