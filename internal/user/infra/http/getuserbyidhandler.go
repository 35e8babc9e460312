package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/klwxsrx/deskbooking/internal/user/app/service"
	"github.com/klwxsrx/deskbooking/internal/user/domain"
	pkghttp "github.com/klwxsrx/deskbooking/pkg/http"
)

type (
	getUserByIDHandler struct {
		userService service.User
	}

	deleteUserByIDHandler struct {
		userService service.User
	}
)

func NewGetUserByIDHandler(userService service.User) pkghttp.Handler {
	return getUserByIDHandler{userService: userService}
}

func (h getUserByIDHandler) Method() string {
	return http.MethodGet
}

func (h getUserByIDHandler) Path() string {
	return "/users/{userID}"
}

func (h getUserByIDHandler) HTTPHandler() pkghttp.HandlerFunc {
	return func(w pkghttp.ResponseWriter, r *http.Request) (err error) {
		userID, err := pkghttp.ParseRequest(r, pkghttp.PathParameter[uuid.UUID]("userID"), err)
		if err != nil {
			return err
		}

		result, err := h.userService.GetByID(r.Context(), domain.UserID{UUID: userID})
		if err != nil {
			return err
		}

		w.SetJSONBody(toUserOut(result))
		return nil
	}
}

func NewDeleteUserByIDHandler(userService service.User) pkghttp.Handler {
	return deleteUserByIDHandler{userService: userService}
}

func (h deleteUserByIDHandler) Method() string {
	return http.MethodDelete
}

func (h deleteUserByIDHandler) Path() string {
	return "/users/{userID}"
}

func (h deleteUserByIDHandler) HTTPHandler() pkghttp.HandlerFunc {
	return func(w pkghttp.ResponseWriter, r *http.Request) (err error) {
		userID, err := pkghttp.ParseRequest(r, pkghttp.PathParameter[uuid.UUID]("userID"), err)
		if err != nil {
			return err
		}

		err = h.userService.Delete(r.Context(), domain.UserID{UUID: userID})
		if err != nil {
			return err
		}

		w.SetStatusCode(http.StatusNoContent)
		return nil
	}
}
