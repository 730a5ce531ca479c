// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// User is the core account record. Email is the login identifier and is
// matched case-sensitively, exactly as stored.
type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"` // bcrypt hash; empty for users onboarded without a password
	IsAdmin    bool   `json:"isAdmin"`
	IsVerified bool   `json:"isVerified"`
}

// NewUserID generates a new user identifier.
func NewUserID() string {
	return "u_" + uuid.NewString()
}

// Sanitized returns a copy of the user safe to return over the API.
// The password hash never leaves the store boundary.
func (u User) Sanitized() User {
	u.Password = ""

	return u
}

// Roles returns the role claims carried in access tokens for this user.
func (u User) Roles() []string {
	if u.IsAdmin {
		return []string{"admin"}
	}

	return []string{"member"}
}

// DisplayNameFromEmail derives a human-readable name from the email
// local-part: dot-separated segments, each title-cased.
// "jane.doe@tapify.co" becomes "Jane Doe".
func DisplayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	segments := strings.Split(local, ".")
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		// Upper-case the first rune, not the first byte.
		first, size := utf8.DecodeRuneInString(segment)
		segments[i] = string(unicode.ToUpper(first)) + segment[size:]
	}

	return strings.Join(segments, " ")
}
