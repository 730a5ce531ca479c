package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims carried by access tokens.
type Claims struct {
	UserID string
	Roles  []string
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateAccessToken creates a new access token for a given user.
	GenerateAccessToken(userID string, roles []string) (string, error)

	// ValidateToken checks the validity of a token string and returns
	// its claims.
	ValidateToken(tokenString string) (*Claims, error)
}
