package http

import (
	"net/http"

	"github.com/klwxsrx/deskbooking/internal/user/app/service"
	pkgauth "github.com/klwxsrx/deskbooking/pkg/auth"
	pkghttp "github.com/klwxsrx/deskbooking/pkg/http"
)

// WithErrorMapping maps user service errors to status codes.
// Hashing and storage failures are left unmapped and result in 500.
func WithErrorMapping() pkghttp.ServerOption {
	return pkghttp.WithErrorMapping(map[int][]error{
		http.StatusBadRequest: {
			service.ErrInvalidUserCredentials,
		},
		http.StatusUnauthorized: {
			pkgauth.ErrUnauthenticated,
			service.ErrInvalidToken,
			service.ErrRevokedToken,
		},
		http.StatusForbidden: {
			pkgauth.ErrPermissionDenied,
			service.ErrEmailNotAllowed,
			service.ErrUserIsAlreadyDeleted,
		},
		http.StatusNotFound: {
			service.ErrUserNotFound,
		},
		http.StatusConflict: {
			service.ErrUserAlreadyExists,
		},
	})
}
