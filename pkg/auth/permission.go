package auth

import (
	"context"
	"errors"
	"fmt"
)

var ErrPermissionDenied = errors.New("permission denied")

type (
	PermissionService[T Principal] interface {
		Check(context.Context, Permission[T]) error
	}

	Permission[T Principal] func(Authentication[T]) (bool, error)

	permissionService[T Principal] struct{}
)

func NewPermissionService[T Principal]() PermissionService[T] {
	return permissionService[T]{}
}

// Check fails with ErrUnauthenticated for anonymous requests, so callers can tell them apart from denied ones
func (p permissionService[T]) Check(ctx context.Context, permission Permission[T]) error {
	auth, ok := GetAuthentication[T](ctx)
	if !ok {
		return errAuthenticationNotFound
	}
	if !auth.IsAuthenticated() {
		return ErrUnauthenticated
	}

	allowed, err := permission(auth)
	if err != nil {
		return fmt.Errorf("check permission: %w", err)
	}
	if !allowed {
		return ErrPermissionDenied
	}

	return nil
}

// AnyOf allows the request when at least one of the permissions allows it
func AnyOf[T Principal](permissions ...Permission[T]) Permission[T] {
	return func(auth Authentication[T]) (bool, error) {
		for _, permission := range permissions {
			allowed, err := permission(auth)
			if err != nil {
				return false, err
			}
			if allowed {
				return true, nil
			}
		}

		return false, nil
	}
}
