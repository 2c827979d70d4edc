package auth

import (
	"time"

	"backend-roteirando/internal/group"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Admin is a console administrator account. Group leaders do not get their
// own account row; their credential lives on the group record.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult carries the resolved role and, for leader logins, the bound
// group.
type LoginResult struct {
	Role  Role         `json:"role"`
	Group *group.Group `json:"group,omitempty"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
