package service

import (
	"context"
)

// OAuthUser represents user information extracted from a verified
// OAuth ID token.
type OAuthUser struct {
	ID            string // Provider-specific user ID (Google's 'sub' claim)
	Email         string // User's email address
	Name          string // User's display name
	AvatarURL     string // URL to user's profile picture
	EmailVerified bool   // Whether the email is verified by the provider
}

// OAuthVerifier defines the interface for verifying OAuth ID tokens.
// This is used for the social sign-in path where the client sends an ID
// token directly.
type OAuthVerifier interface {
	// VerifyIDToken verifies an OAuth ID token and returns user information.
	VerifyIDToken(ctx context.Context, idToken string) (*OAuthUser, error)
}
