package permission

import (
	"github.com/klwxsrx/deskbooking/internal/pkg/auth"
	"github.com/klwxsrx/deskbooking/internal/user/domain"
	pkgauth "github.com/klwxsrx/deskbooking/pkg/auth"
)

// CanReadUser allows the owner and internal services, e.g. the booking service resolving a reservation owner
func CanReadUser(id domain.UserID) pkgauth.Permission[auth.Principal] {
	return pkgauth.AnyOf(isOwner(id), isService())
}

// CanManageUser allows the owner only, services are not allowed to change credentials or revoke sessions
func CanManageUser(id domain.UserID) pkgauth.Permission[auth.Principal] {
	return isOwner(id)
}

func isOwner(id domain.UserID) pkgauth.Permission[auth.Principal] {
	return func(auth pkgauth.Authentication[auth.Principal]) (bool, error) {
		principal := auth.Principal()
		return principal != nil && principal.UserID != nil && *principal.UserID == id.UUID, nil
	}
}

func isService() pkgauth.Permission[auth.Principal] {
	return func(auth pkgauth.Authentication[auth.Principal]) (bool, error) {
		principal := auth.Principal()
		return principal != nil && principal.ServiceName != nil, nil
	}
}
