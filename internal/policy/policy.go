// AngelaMos | 2026
// policy.go

package policy

import (
	"fmt"

	"github.com/carterperez-dev/reviewboard/internal/core"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("invalid role %q: %w", s, core.ErrInvalidInput)
	}
	return r, nil
}

// Actor is the requester a policy decides about. The zero value is an
// anonymous actor.
type Actor struct {
	ID            string
	Username      string
	Role          Role
	Superuser     bool
	Authenticated bool
}

func Anonymous() Actor {
	return Actor{}
}

type Privilege int

const (
	PrivilegeAnonymous Privilege = iota
	PrivilegeUser
	PrivilegeModerator
	PrivilegeAdmin
)

// Privilege collapses the role field and the superuser flag into a single
// ordering, so call sites never repeat the "admin or superuser" union.
func (a Actor) Privilege() Privilege {
	if !a.Authenticated {
		return PrivilegeAnonymous
	}
	if a.Superuser || a.Role == RoleAdmin {
		return PrivilegeAdmin
	}
	if a.Role == RoleModerator {
		return PrivilegeModerator
	}
	return PrivilegeUser
}

// ReadOnlyOrAuthenticated passes safe operations unconditionally and
// requires authentication for unsafe ones. Anonymous actors are rejected
// here, before any object is loaded.
func ReadOnlyOrAuthenticated(actor Actor, safe bool) error {
	if safe {
		return nil
	}
	if !actor.Authenticated {
		return fmt.Errorf("write requires authentication: %w", core.ErrUnauthorized)
	}
	return nil
}

// AdminOnly requires an authenticated actor with admin privilege.
func AdminOnly(actor Actor) error {
	if !actor.Authenticated {
		return fmt.Errorf("admin access requires authentication: %w", core.ErrUnauthorized)
	}
	if actor.Privilege() < PrivilegeAdmin {
		return fmt.Errorf("admin access required: %w", core.ErrForbidden)
	}
	return nil
}

// AdminOrReadOnly passes safe operations unconditionally and delegates
// unsafe ones to AdminOnly.
func AdminOrReadOnly(actor Actor, safe bool) error {
	if safe {
		return nil
	}
	return AdminOnly(actor)
}

// AuthorOrElevated is the object-level check for unsafe operations on
// authored records: the author, a moderator or an admin may act on it.
// Callers gate with ReadOnlyOrAuthenticated first so anonymous actors
// never reach this check.
func AuthorOrElevated(actor Actor, authorID string) error {
	if !actor.Authenticated {
		return fmt.Errorf("write requires authentication: %w", core.ErrUnauthorized)
	}
	if actor.ID == authorID {
		return nil
	}
	if actor.Privilege() >= PrivilegeModerator {
		return nil
	}
	return fmt.Errorf("not the author: %w", core.ErrForbidden)
}
