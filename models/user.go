// ABOUTME: This file defines the authenticated user identity and role model
// ABOUTME: Roles drive the admin/steward distinction consumed by the session coordinator

package models

// Role is the access level assigned to an account by the backend.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
	RoleSteward    Role = "steward"
	RoleUser       Role = "user"
)

// User is the identity record returned by the auth endpoints.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone,omitempty"`
	IsActive bool   `json:"is_active,omitempty"`
}

// IsAdmin reports whether the user can access the admin dashboard.
func (u *User) IsAdmin() bool {
	if u == nil {
		return false
	}
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// CanScan reports whether the user may operate the ticket scanner.
func (u *User) CanScan() bool {
	if u == nil {
		return false
	}
	return u.Role == RoleSteward || u.IsAdmin()
}
