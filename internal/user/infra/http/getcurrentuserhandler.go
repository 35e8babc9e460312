package http

import (
	"net/http"

	"github.com/klwxsrx/deskbooking/internal/user/app/service"
	pkghttp "github.com/klwxsrx/deskbooking/pkg/http"
)

type getCurrentUserHandler struct {
	userService service.User
}

func NewGetCurrentUserHandler(userService service.User) pkghttp.Handler {
	return getCurrentUserHandler{userService: userService}
}

func (h getCurrentUserHandler) Method() string {
	return http.MethodGet
}

func (h getCurrentUserHandler) Path() string {
	return "/current-user"
}

func (h getCurrentUserHandler) HTTPHandler() pkghttp.HandlerFunc {
	return func(w pkghttp.ResponseWriter, r *http.Request) error {
		userID, err := currentUserID(r.Context())
		if err != nil {
			return err
		}

		result, err := h.userService.GetByID(r.Context(), userID)
		if err != nil {
			return err
		}

		w.SetJSONBody(toUserOut(result))
		return nil
	}
}
