package http

import (
	"context"
	"fmt"

	"github.com/klwxsrx/deskbooking/internal/pkg/auth"
	internalhttp "github.com/klwxsrx/deskbooking/internal/pkg/http"
	"github.com/klwxsrx/deskbooking/internal/user/app/service"
	pkgauth "github.com/klwxsrx/deskbooking/pkg/auth"
	pkghttp "github.com/klwxsrx/deskbooking/pkg/http"
	"github.com/klwxsrx/deskbooking/pkg/observability"
)

type authProvider struct {
	authService service.Authentication
	gateway     pkgauth.Provider[auth.Principal]
}

// NewAuthProvider verifies session tokens with the user service itself, gateway tokens are trusted as is
func NewAuthProvider(authService service.Authentication) pkgauth.Provider[auth.Principal] {
	return authProvider{
		authService: authService,
		gateway:     auth.NewProvider(),
	}
}

func (p authProvider) Authenticate(ctx context.Context, token pkgauth.Token) (pkgauth.Authentication[auth.Principal], error) {
	sessionToken, ok := token.(auth.SessionToken)
	if !ok {
		return p.gateway.Authenticate(ctx, token)
	}

	authData, err := p.authService.VerifyAuthentication(ctx, service.SessionToken(sessionToken.Value))
	if service.IsTokenRejection(err) {
		return nil, fmt.Errorf("%w: %w", pkgauth.ErrUnauthenticated, err)
	}
	if err != nil {
		return nil, err
	}

	return pkgauth.Auth[auth.Principal]{AuthPrincipal: auth.UserPrincipal(authData.UserID.UUID)}, nil
}

// WithAuthentication requires a gateway user id or a session token from the bearer header or the session cookie
func WithAuthentication(authService service.Authentication, observer observability.Observer) []pkghttp.ServerOption {
	return []pkghttp.ServerOption{
		pkghttp.WithAuth(
			NewAuthProvider(authService),
			internalhttp.UserIDTokenProvider,
			internalhttp.ServiceNameTokenProvider,
			internalhttp.BearerSessionTokenProvider,
			internalhttp.CookieSessionTokenProvider,
		),
		pkghttp.WithAuthenticationRequirement(),
		pkghttp.WithPrincipalObservability(observer),
	}
}
