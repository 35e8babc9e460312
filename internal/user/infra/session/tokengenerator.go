package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/klwxsrx/deskbooking/internal/user/app/session"
	"github.com/klwxsrx/deskbooking/internal/user/domain"
	pkgtime "github.com/klwxsrx/deskbooking/pkg/time"
)

const (
	DefaultIssuer = "deskbooking-user-service"

	minSecretLength = 32
)

type (
	Config struct {
		Secret []byte
		Issuer string
	}

	// tokenGenerator issues HS256 signed JWT. The standard iat has second precision,
	// so the issuance time compared with the watermark is carried in iat_ms.
	tokenGenerator struct {
		secret []byte
		issuer string
		clock  pkgtime.Clock
	}

	tokenClaims struct {
		Purpose        session.TokenPurpose `json:"purpose"`
		IssuedAtMillis int64                `json:"iat_ms"`
		jwt.RegisteredClaims
	}
)

func NewTokenGenerator(config Config, clock pkgtime.Clock) (session.TokenGenerator, error) {
	if len(config.Secret) < minSecretLength {
		return nil, fmt.Errorf("token secret must be at least %d bytes", minSecretLength)
	}
	if config.Issuer == "" {
		config.Issuer = DefaultIssuer
	}

	return &tokenGenerator{
		secret: config.Secret,
		issuer: config.Issuer,
		clock:  clock,
	}, nil
}

func (g *tokenGenerator) Generate(
	ctx context.Context,
	userID domain.UserID,
	purpose session.TokenPurpose,
	ttl time.Duration,
) (session.TokenData, error) {
	issuedAt := g.clock.Now(ctx).UTC().Truncate(domain.TokenTimePrecision)
	validTill := issuedAt.Add(ttl).Truncate(time.Second)
	claims := tokenClaims{
		Purpose:        purpose,
		IssuedAtMillis: issuedAt.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(validTill),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ID:        uuid.NewString(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return session.TokenData{}, fmt.Errorf("sign token: %w", err)
	}

	return session.TokenData{
		EncodedToken: session.EncodedToken(token),
		UserID:       userID,
		Purpose:      purpose,
		IssuedAt:     issuedAt,
		ValidTill:    validTill,
	}, nil
}

func (g *tokenGenerator) Decode(
	ctx context.Context,
	token session.EncodedToken,
	purpose session.TokenPurpose,
) (session.TokenData, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(g.issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time {
			return g.clock.Now(ctx)
		}),
	)

	var claims tokenClaims
	_, err := parser.ParseWithClaims(string(token), &claims, func(*jwt.Token) (any, error) {
		return g.secret, nil
	})
	if err != nil {
		return session.TokenData{}, fmt.Errorf("%w: %w", session.ErrInvalidToken, err)
	}

	if claims.Purpose != purpose {
		return session.TokenData{}, fmt.Errorf("%w: unexpected token purpose %q", session.ErrInvalidToken, claims.Purpose)
	}
	if claims.IssuedAt == nil || claims.IssuedAtMillis <= 0 {
		return session.TokenData{}, fmt.Errorf("%w: %w", session.ErrInvalidToken, errors.New("token has no issued at"))
	}

	issuedAt := time.UnixMilli(claims.IssuedAtMillis).UTC()
	if !issuedAt.Truncate(time.Second).Equal(claims.IssuedAt.Time) {
		return session.TokenData{}, fmt.Errorf("%w: iat_ms does not match iat", session.ErrInvalidToken)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return session.TokenData{}, fmt.Errorf("%w: invalid subject: %w", session.ErrInvalidToken, err)
	}

	return session.TokenData{
		EncodedToken: token,
		UserID:       domain.UserID{UUID: userID},
		Purpose:      claims.Purpose,
		IssuedAt:     issuedAt,
		ValidTill:    claims.ExpiresAt.UTC(),
	}, nil
}
