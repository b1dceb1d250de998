package domain

import "time"

// Session binds an opaque token to an authenticated user. The role is a copy
// of the user's role at login time; a later role change upstream only takes
// effect after re-login. Sessions are never mutated after creation — they are
// created at login and destroyed at logout or expiry.
type Session struct {
	Token     string
	UserID    string
	Role      Role
	CreatedAt time.Time
}

// DenyReason classifies why an access decision was negative.
type DenyReason string

const (
	DenyNoSession      DenyReason = "NO_SESSION"
	DenyRoleNotAllowed DenyReason = "ROLE_NOT_ALLOWED"
)

// AccessDecision is the ephemeral result of an authorization check. Session
// is nil when the caller was admitted as an anonymous guest.
type AccessDecision struct {
	Granted bool
	Reason  DenyReason
	Session *Session
}
