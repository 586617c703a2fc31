package identity

import (
	"strings"

	"github.com/google/uuid"
)

type Role string

const (
	RoleHR        Role = "hr"
	RoleAdmin     Role = "admin"
	RoleJobSeeker Role = "job_seeker"
)

func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleHR, RoleAdmin, RoleJobSeeker:
		return r, true
	default:
		return "", false
	}
}

// Identity is the authenticated caller as asserted by the identity provider.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

// CanManage reports whether the caller may mutate jobs and applications.
func (i Identity) CanManage() bool {
	return i.Role == RoleHR || i.Role == RoleAdmin
}

func (i Identity) IsJobSeeker() bool {
	return i.Role == RoleJobSeeker
}

func (i Identity) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
