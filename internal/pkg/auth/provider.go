package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/klwxsrx/deskbooking/pkg/auth"
)

type (
	Principal struct {
		UserID      *uuid.UUID
		ServiceName *ServiceName
	}

	provider struct{}
)

// NewProvider trusts gateway tokens as is, session tokens are not supported
func NewProvider() auth.Provider[Principal] {
	return provider{}
}

func (p provider) Authenticate(_ context.Context, token auth.Token) (auth.Authentication[Principal], error) {
	var principal *Principal
	switch t := token.(type) {
	case UserIDToken:
		principal = &Principal{UserID: &t.ID}
	case ServiceNameToken:
		principal = &Principal{ServiceName: &t.Name}
	default:
		return nil, fmt.Errorf("unsupported token with type %s", token.Type())
	}

	return auth.Auth[Principal]{AuthPrincipal: principal}, nil
}

func (p Principal) Type() auth.PrincipalType {
	switch {
	case p.UserID != nil:
		return PrincipalTypeUser
	case p.ServiceName != nil:
		return PrincipalTypeService
	default:
		return "unknown"
	}
}

func (p Principal) ID() *string {
	switch {
	case p.UserID != nil:
		v := p.UserID.String()
		return &v
	case p.ServiceName != nil:
		return (*string)(p.ServiceName)
	default:
		return nil
	}
}

func UserPrincipal(userID uuid.UUID) *Principal {
	return &Principal{UserID: &userID}
}

type PermissionService = auth.PermissionService[Principal]
