package domain

import "errors"

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrPostNotFound       = errors.New("post not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownOperation   = errors.New("unknown operation")
)

// ValidationError reports malformed operation arguments. Detail is safe to
// show to the caller, as opposed to upstream failures which are logged and
// replaced by a generic message.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }

// NewValidationError wraps a user-facing message into a ValidationError.
func NewValidationError(detail string) error {
	return &ValidationError{Detail: detail}
}
