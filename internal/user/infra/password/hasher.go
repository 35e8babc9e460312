package password

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"

	"github.com/klwxsrx/deskbooking/internal/user/app/encoding"
	"github.com/klwxsrx/deskbooking/pkg/worker"
)

const (
	argon2Algorithm = "argon2id"
	saltLength      = 16
	keyLength       = 32

	minMemoryKB uint32 = 8 * 1024

	// maxParamsFactor bounds the cost a stored hash may request relative to the configured cost
	maxParamsFactor = 4
)

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

type (
	Config struct {
		MemoryKB    uint32
		Time        uint32
		Parallelism uint8
	}

	// hasher produces argon2id PHC strings and verifies legacy bcrypt hashes.
	// Computations run on the pool, so the caller context cancels the wait for a free worker.
	hasher struct {
		config Config
		pool   worker.Pool
	}

	argon2Hash struct {
		memoryKB    uint32
		time        uint32
		parallelism uint8
		salt        []byte
		key         []byte
	}
)

func DefaultConfig() Config {
	return Config{
		MemoryKB:    64 * 1024,
		Time:        3,
		Parallelism: 2,
	}
}

func NewHasher(config Config, pool worker.Pool) (encoding.PasswordHasher, error) {
	if config.MemoryKB < minMemoryKB {
		return nil, fmt.Errorf("argon2 memory must be at least %d KB", minMemoryKB)
	}
	if config.Time < 1 {
		return nil, errors.New("argon2 time must be at least 1")
	}
	if config.Parallelism < 1 {
		return nil, errors.New("argon2 parallelism must be at least 1")
	}

	return &hasher{config: config, pool: pool}, nil
}

func (h *hasher) Hash(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password is empty", encoding.ErrHashing)
	}
	if len(password) > encoding.MaxPasswordLength {
		return "", fmt.Errorf("%w: password is longer than %d bytes", encoding.ErrHashing, encoding.MaxPasswordLength)
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: generate salt: %w", encoding.ErrHashing, err)
	}

	return worker.Execute(ctx, h.pool, func() (string, error) {
		key := argon2.IDKey([]byte(password), salt, h.config.Time, h.config.MemoryKB, h.config.Parallelism, keyLength)
		return argon2Hash{
			memoryKB:    h.config.MemoryKB,
			time:        h.config.Time,
			parallelism: h.config.Parallelism,
			salt:        salt,
			key:         key,
		}.String(), nil
	})
}

func (h *hasher) Verify(ctx context.Context, passwordHash, password string) (bool, error) {
	if isBcrypt(passwordHash) {
		return worker.Execute(ctx, h.pool, func() (bool, error) {
			err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return false, nil
			}
			if err != nil {
				return false, fmt.Errorf("%w: %w", encoding.ErrHashing, err)
			}

			return true, nil
		})
	}

	parsed, err := parseArgon2Hash(passwordHash)
	if err != nil {
		return false, fmt.Errorf("%w: %w", encoding.ErrHashing, err)
	}
	if err = h.checkLimits(parsed); err != nil {
		return false, fmt.Errorf("%w: %w", encoding.ErrHashing, err)
	}

	return worker.Execute(ctx, h.pool, func() (bool, error) {
		key := argon2.IDKey([]byte(password), parsed.salt, parsed.time, parsed.memoryKB, parsed.parallelism, uint32(len(parsed.key))) //nolint:gosec
		return subtle.ConstantTimeCompare(key, parsed.key) == 1, nil
	})
}

func (h *hasher) NeedsRehash(passwordHash string) bool {
	if isBcrypt(passwordHash) {
		return true
	}

	parsed, err := parseArgon2Hash(passwordHash)
	if err != nil {
		return false
	}

	return parsed.memoryKB < h.config.MemoryKB ||
		parsed.time < h.config.Time ||
		parsed.parallelism < h.config.Parallelism ||
		len(parsed.key) < keyLength
}

func (h *hasher) checkLimits(parsed argon2Hash) error {
	switch {
	case uint64(parsed.memoryKB) > maxParamsFactor*uint64(h.config.MemoryKB):
		return fmt.Errorf("argon2 memory %d exceeds limit", parsed.memoryKB)
	case uint64(parsed.time) > maxParamsFactor*uint64(h.config.Time):
		return fmt.Errorf("argon2 time %d exceeds limit", parsed.time)
	case uint32(parsed.parallelism) > maxParamsFactor*uint32(h.config.Parallelism):
		return fmt.Errorf("argon2 parallelism %d exceeds limit", parsed.parallelism)
	case len(parsed.key) > maxParamsFactor*keyLength:
		return fmt.Errorf("argon2 key length %d exceeds limit", len(parsed.key))
	}

	return nil
}

func (a argon2Hash) String() string {
	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Algorithm,
		argon2.Version,
		a.memoryKB,
		a.time,
		a.parallelism,
		base64.RawStdEncoding.EncodeToString(a.salt),
		base64.RawStdEncoding.EncodeToString(a.key),
	)
}

func parseArgon2Hash(passwordHash string) (argon2Hash, error) {
	parts := strings.Split(passwordHash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != argon2Algorithm {
		return argon2Hash{}, errors.New("unsupported password hash format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return argon2Hash{}, fmt.Errorf("unsupported argon2 version %q", parts[2])
	}

	var result argon2Hash
	for _, param := range strings.Split(parts[3], ",") {
		name, value, ok := strings.Cut(param, "=")
		if !ok {
			return argon2Hash{}, fmt.Errorf("invalid argon2 parameter %q", param)
		}

		switch name {
		case "m":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil || v == 0 {
				return argon2Hash{}, fmt.Errorf("invalid argon2 memory %q", value)
			}
			result.memoryKB = uint32(v)
		case "t":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil || v == 0 {
				return argon2Hash{}, fmt.Errorf("invalid argon2 time %q", value)
			}
			result.time = uint32(v)
		case "p":
			v, err := strconv.ParseUint(value, 10, 8)
			if err != nil || v == 0 {
				return argon2Hash{}, fmt.Errorf("invalid argon2 parallelism %q", value)
			}
			result.parallelism = uint8(v)
		default:
			return argon2Hash{}, fmt.Errorf("unknown argon2 parameter %q", name)
		}
	}
	if result.memoryKB == 0 || result.time == 0 || result.parallelism == 0 {
		return argon2Hash{}, errors.New("missing argon2 parameters")
	}

	var err error
	result.salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(result.salt) == 0 {
		return argon2Hash{}, errors.New("invalid argon2 salt")
	}
	result.key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(result.key) == 0 {
		return argon2Hash{}, errors.New("invalid argon2 key")
	}

	return result, nil
}

func isBcrypt(passwordHash string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(passwordHash, prefix) {
			return true
		}
	}

	return false
}
