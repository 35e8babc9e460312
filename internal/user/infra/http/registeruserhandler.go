package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/klwxsrx/deskbooking/internal/user/app/service"
	pkghttp "github.com/klwxsrx/deskbooking/pkg/http"
)

type registerUserHandler struct {
	userService service.User
}

func NewRegisterUserHandler(userService service.User) pkghttp.Handler {
	return registerUserHandler{userService: userService}
}

func (h registerUserHandler) Method() string {
	return http.MethodPost
}

func (h registerUserHandler) Path() string {
	return "/users"
}

func (h registerUserHandler) HTTPHandler() pkghttp.HandlerFunc {
	return func(w pkghttp.ResponseWriter, r *http.Request) (err error) {
		in, err := pkghttp.ParseRequest(r, pkghttp.JSONBody[registerUserIn](), err)
		if err != nil {
			return err
		}

		userID, err := h.userService.Register(r.Context(), service.UserCredentials{
			Email:    in.Email,
			Password: in.Password,
		})
		if err != nil {
			return err
		}

		w.SetJSONBody(registerUserOut{ID: userID.UUID})
		w.SetStatusCode(http.StatusCreated)
		return nil
	}
}

type (
	registerUserIn struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	registerUserOut struct {
		ID uuid.UUID `json:"id"`
	}
)
