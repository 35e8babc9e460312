//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "PasswordHasher=PasswordHasher"
package encoding

import (
	"context"
	"errors"
)

const MaxPasswordLength = 1024

var ErrHashing = errors.New("password hashing failed")

type PasswordHasher interface {
	// Hash fails with ErrHashing when the password is empty or longer than MaxPasswordLength
	Hash(ctx context.Context, password string) (string, error)
	// Verify returns false on mismatch, ErrHashing only when passwordHash is malformed
	Verify(ctx context.Context, passwordHash, password string) (bool, error)
	// NeedsRehash reports whether passwordHash was produced by a legacy algorithm or weaker parameters
	NeedsRehash(passwordHash string) bool
}
