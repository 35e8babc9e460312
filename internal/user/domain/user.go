//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "UserRepository=UserRepository"
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	Name = "user"

	// TokenTimePrecision is shared by token issuance times and the revocation watermark
	TokenTimePrecision = time.Millisecond
)

var ErrUserNotFound = errors.New("user not found")

type (
	User struct {
		ID              UserID
		Email           string
		PasswordHash    string
		EmailVerifiedAt *time.Time
		// TokenValidAfter is the revocation watermark, tokens issued before it are no longer honored
		TokenValidAfter *time.Time
		DeletedAt       *time.Time
	}

	UserRepository interface {
		NextID() UserID
		Store(context.Context, *User) error
		Find(context.Context, FindUserSpecification) ([]User, error)
		FindOne(context.Context, FindUserSpecification) (*User, error)
	}

	FindUserSpecification struct {
		IDs    []UserID
		Emails []string
	}

	UserID struct{ uuid.UUID }
)

// RevokeTokens raises the watermark to t truncated to TokenTimePrecision.
// The watermark never moves backwards.
func (u *User) RevokeTokens(t time.Time) {
	t = t.UTC().Truncate(TokenTimePrecision)
	if u.TokenValidAfter != nil && !t.After(*u.TokenValidAfter) {
		return
	}

	u.TokenValidAfter = &t
}

func (u *User) SetDeletedAt(t time.Time) {
	u.DeletedAt = &t
	u.RevokeTokens(t)
}

func (u *User) SetPasswordHash(passwordHash string) {
	u.PasswordHash = passwordHash
}

func (u *User) VerifyEmail(t time.Time) {
	if u.EmailVerifiedAt != nil {
		return
	}

	u.EmailVerifiedAt = &t
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}
