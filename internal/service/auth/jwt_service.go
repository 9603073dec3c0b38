package auth

import (
	"context"
	"time"
)

// JWTService defines operations for issuing and checking bearer tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for the user.
	GenerateToken(ctx context.Context, userID int64) (string, error)

	// ValidateToken verifies the token signature, algorithm and lifetime and
	// returns its claims. Returns ErrExpiredToken for expired tokens and
	// ErrInvalidToken for anything else that fails verification.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded content of a valid token.
type Claims struct {
	// UserID is the id of the user the token was issued to.
	UserID int64 `json:"uid,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
