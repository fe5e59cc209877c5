// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package models

// Role levels control access to the admin surface.
const (
	// RoleUser grants recommendation and favorites access.
	RoleUser = "user"

	// RoleAdmin additionally grants the user management panel.
	RoleAdmin = "admin"
)

// User is an account record persisted in the users JSON store.
type User struct {
	// Username uniquely identifies the account.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the account password.
	// Never serialized into API responses.
	PasswordHash string `json:"password"`

	// Role is RoleUser or RoleAdmin.
	Role string `json:"role"`
}

// IsValidRole reports whether role is one of the defined role constants.
func IsValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
