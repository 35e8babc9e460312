package auth

import (
	"github.com/google/uuid"

	"github.com/klwxsrx/deskbooking/pkg/auth"
)

const (
	PrincipalTypeUser    auth.PrincipalType = "user"
	PrincipalTypeService auth.PrincipalType = "service"
)

type (
	// UserIDToken carries a user id already verified by the gateway
	UserIDToken struct {
		ID uuid.UUID
	}

	// SessionToken is a raw bearer token which must be verified by the user service
	SessionToken struct {
		Value string
	}

	ServiceNameToken struct {
		Name ServiceName
	}

	ServiceName string
)

func (t UserIDToken) Type() auth.PrincipalType {
	return PrincipalTypeUser
}

func (t SessionToken) Type() auth.PrincipalType {
	return PrincipalTypeUser
}

func (t ServiceNameToken) Type() auth.PrincipalType {
	return PrincipalTypeService
}
