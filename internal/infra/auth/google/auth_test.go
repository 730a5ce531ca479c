package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"tapify/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClientID = "test-client-id.apps.googleusercontent.com"

func newTestVerifier(t *testing.T) *verifier {
	t.Helper()

	cfg := &config.Config{
		GoogleOAuth: &config.GoogleOAuthConfig{ClientID: testClientID},
	}

	v, ok := NewVerifier(cfg, slog.Default()).(*verifier)
	require.True(t, ok)

	return v
}

// fakeIDToken builds an unsigned JWT carrying the given claims. Claim
// checks run on the payload only, so the signature part can be a stub.
func fakeIDToken(t *testing.T, claims IDTokenClaims) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	require.NoError(t, err)

	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".stub"
}

func validClaims() IDTokenClaims {
	return IDTokenClaims{
		Iss:           "https://accounts.google.com",
		Sub:           "1234567890",
		Aud:           testClientID,
		Exp:           time.Now().Add(time.Hour).Unix(),
		Iat:           time.Now().Unix(),
		Email:         "user@example.com",
		EmailVerified: true,
		Name:          "Test User",
		Picture:       "https://example.com/avatar.png",
	}
}

func TestVerifier_VerifyIDToken(t *testing.T) {
	v := newTestVerifier(t)

	user, err := v.VerifyIDToken(context.Background(), fakeIDToken(t, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "1234567890", user.ID)
	assert.Equal(t, "user@example.com", user.Email)
	assert.Equal(t, "Test User", user.Name)
	assert.True(t, user.EmailVerified)
}

func TestVerifier_RejectsBadClaims(t *testing.T) {
	v := newTestVerifier(t)

	tests := []struct {
		name   string
		mutate func(*IDTokenClaims)
	}{
		{"wrong issuer", func(c *IDTokenClaims) { c.Iss = "https://evil.example.com" }},
		{"wrong audience", func(c *IDTokenClaims) { c.Aud = "other-client" }},
		{"expired", func(c *IDTokenClaims) { c.Exp = time.Now().Add(-time.Hour).Unix() }},
		{"email not verified", func(c *IDTokenClaims) { c.EmailVerified = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := validClaims()
			tt.mutate(&claims)

			_, err := v.VerifyIDToken(context.Background(), fakeIDToken(t, claims))
			assert.Error(t, err)
		})
	}
}

func TestVerifier_RejectsMalformedToken(t *testing.T) {
	v := newTestVerifier(t)

	_, err := v.VerifyIDToken(context.Background(), "not-a-jwt")
	assert.Error(t, err)

	_, err = v.VerifyIDToken(context.Background(), "a.%%%.c")
	assert.Error(t, err)
}
