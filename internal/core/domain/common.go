package domain

// Role identifies what an actor is allowed to do platform-wide.
type Role string

const (
	RoleUser      Role = "user"
	RolePublisher Role = "publisher"
	RoleAdmin     Role = "admin"
)

// IsValid reports whether the role is one of the known platform roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RolePublisher, RoleAdmin:
		return true
	}
	return false
}

// Actor bundles the identity and role the request layer resolved for a call.
// Workflows never infer the role from entity state; it always travels with
// the actor.
type Actor struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
