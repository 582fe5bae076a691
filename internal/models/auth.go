package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the issued token and user info.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   int64       `json:"expires_in"`
	IssuedAt    time.Time   `json:"issued_at"`
	User        UserProfile `json:"user"`
}

// JWTClaims is the access-token payload. It carries the full identity context
// (role, department, email) so every guard and announcement filter receives
// identity explicitly instead of reading ambient session state.
type JWTClaims struct {
	Email      string   `json:"email"`
	Role       UserRole `json:"role"`
	Name       string   `json:"name"`
	Department string   `json:"department,omitempty"`
	jwt.RegisteredClaims
}
