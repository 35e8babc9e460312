package service

import (
	"errors"
	"fmt"
)

const (
	ErrorKindInvalidToken ErrorKind = iota + 1
	ErrorKindRevokedToken
	ErrorKindHashingFailure
	ErrorKindStorageFailure
)

var (
	ErrInvalidToken   = &Error{Kind: ErrorKindInvalidToken}
	ErrRevokedToken   = &Error{Kind: ErrorKindRevokedToken}
	ErrHashingFailure = &Error{Kind: ErrorKindHashingFailure}
	ErrStorageFailure = &Error{Kind: ErrorKindStorageFailure}
)

var (
	ErrInvalidUserCredentials = errors.New("invalid user credentials")
	ErrEmailNotAllowed        = errors.New("email is not allowed")
	ErrUserNotFound           = errors.New("user not found")
	ErrUserIsAlreadyDeleted   = errors.New("user is already deleted")
	ErrUserAlreadyExists      = errors.New("user with specified email already exists")
)

type (
	// Error is the closed set of failures of token validation and credential hashing.
	// Sentinels match any Error of the same kind with errors.Is.
	Error struct {
		Kind    ErrorKind
		Message string
		Err     error
	}

	ErrorKind int
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindInvalidToken:
		return "invalid token"
	case ErrorKindRevokedToken:
		return "revoked token"
	case ErrorKindHashingFailure:
		return "hashing failure"
	case ErrorKindStorageFailure:
		return "storage failure"
	default:
		return "unknown error"
	}
}

// IsTokenRejection reports whether err is a definitive client-side token rejection
func IsTokenRejection(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrRevokedToken)
}

func newError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}
