package domain

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Editors and admins hold the edit-content capability that
// gates the whole product API.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// User represents an account that can sign in to the admin API
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// CanEditContent reports whether the user's role carries the edit-content
// capability.
func (u *User) CanEditContent() bool {
	return RoleCanEditContent(u.Role)
}

// RoleCanEditContent is the single permission rule of the product API.
func RoleCanEditContent(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}

// RefreshToken is a stored long-lived credential used to mint new access
// tokens.
type RefreshToken struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
}
