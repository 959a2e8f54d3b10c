package models

import "time"

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a member of the unit
type User struct {
	ID           string    `json:"id" bson:"id"`
	Email        string    `json:"email" bson:"email"`
	FullName     string    `json:"full_name" bson:"full_name"`
	Rank         string    `json:"rank,omitempty" bson:"rank,omitempty"` // military rank, optional
	Role         string    `json:"role" bson:"role"`                     // "user" or "admin"
	Verified     bool      `json:"verified" bson:"verified"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	PasswordHash string    `json:"-" bson:"password_hash,omitempty"` // Never serialize password hash
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RegisterRequest is the payload for POST /auth/register
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Rank     string `json:"rank,omitempty"`
}

// LoginRequest is the payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}

// UserUpdate is a partial update for a user; nil fields are left untouched
type UserUpdate struct {
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Rank     *string `json:"rank,omitempty"`
	Role     *string `json:"role,omitempty"`
}
