package domain

// Role identifies an actor's role. The numeric values mirror the ids in the
// upstream roles table, so a Role marshals directly as the wire-level role id.
type Role int

const (
	RoleAdmin     Role = 0
	RoleModerator Role = 1
	RoleReader    Role = 2
	RoleGuest     Role = 3
)

// RoleDefault is assigned to newly registered users. Registration never
// accepts a caller-supplied role.
const RoleDefault = RoleReader

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleModerator:
		return "moderator"
	case RoleReader:
		return "reader"
	case RoleGuest:
		return "guest"
	default:
		return "unknown"
	}
}

// Known reports whether r names a role the upstream roles table defines.
func (r Role) Known() bool {
	return r >= RoleAdmin && r <= RoleGuest
}

// RoleSet is an operation's explicit allowed-role set. There is no implicit
// hierarchy between roles: an operation is reachable by exactly the roles it
// lists, and nothing else.
type RoleSet []Role

// Allows reports whether r is a member of the set. An empty set denies every
// role, including admin.
func (s RoleSet) Allows(r Role) bool {
	for _, allowed := range s {
		if allowed == r {
			return true
		}
	}
	return false
}

// RoleRecord is a row of the upstream roles table.
type RoleRecord struct {
	ID   Role   `json:"id"`
	Name string `json:"name"`
}
