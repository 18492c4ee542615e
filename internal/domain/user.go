package domain

import "time"

// Role enumerates staff roles. Ticket management requires SUPER_ADMIN or
// SUPPORT_AGENT; ticket deletion requires SUPER_ADMIN.
type Role string

const (
	RoleSuperAdmin   Role = "SUPER_ADMIN"
	RoleSupportAgent Role = "SUPPORT_AGENT"
	RoleViewer       Role = "VIEWER"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleSuperAdmin, RoleSupportAgent, RoleViewer:
		return true
	}
	return false
}

// User is a staff identity that authors replies and notes.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
