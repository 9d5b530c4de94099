// Package models defines the wire types exchanged with the reservation
// backend. Field names mirror the JSON the API emits; nothing here is
// validated client-side beyond decoding.
package models

// Role distinguishes regular customers from restaurant admins.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User is the authenticated account profile.
type User struct {
	ID                   int64  `json:"id"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone,omitempty"`
	Role                 Role   `json:"role"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}

// IsAdmin reports whether the user may access /admin endpoints.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
