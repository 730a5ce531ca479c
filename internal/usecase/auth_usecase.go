// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"tapify/internal/domain/entity"
	"tapify/internal/domain/flow"
)

// --- Input DTOs ---

// StartVerificationInput starts the email verification step of signup.
type StartVerificationInput struct {
	Email         string
	AgreedToTerms bool
}

// SocialSignInInput carries the provider ID token for social sign-in.
type SocialSignInInput struct {
	IDToken string
}

// SubmitOTPInput submits a candidate code for an in-flight flow.
type SubmitOTPInput struct {
	FlowID string
	Code   string
}

// ResendOTPInput regenerates the code for an in-flight flow.
type ResendOTPInput struct {
	FlowID string
}

// CompleteRegistrationInput finishes signup with a chosen password.
type CompleteRegistrationInput struct {
	FlowID   string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// ForgotPasswordInput starts the password reset flow.
type ForgotPasswordInput struct {
	Email string
}

// ResetPasswordInput finishes the password reset flow.
type ResetPasswordInput struct {
	FlowID   string
	Password string
}

// --- Output DTOs ---

// FlowOutput describes where an unauthenticated flow stands: the view
// the client should present and, while a flow is in flight, its id.
type FlowOutput struct {
	FlowID string
	View   flow.View
	Notice string
}

// SessionOutput returns the established session after authentication.
type SessionOutput struct {
	AccessToken string
	User        entity.User
	View        flow.View
}

// SubmitOTPOutput is the result of an OTP submission. Session is set
// only when the flow completes directly into an authenticated view
// (social sign-in); otherwise Flow carries the next step.
type SubmitOTPOutput struct {
	Flow    FlowOutput
	Session *SessionOutput
}

// AuthUsecase drives the multi-step authentication flow. Flow state
// lives in process memory; only users and the session record persist.
type AuthUsecase interface {
	// StartVerification begins signup for an email. An email that
	// already has an account short-circuits to the login view instead of
	// issuing a code.
	StartVerification(ctx context.Context, input *StartVerificationInput) (*FlowOutput, error)

	// SocialSignIn verifies a provider ID token and starts a social
	// verification flow for the token's email.
	SocialSignIn(ctx context.Context, input *SocialSignInInput) (*FlowOutput, error)

	// SubmitOTP checks the candidate code and advances the flow.
	SubmitOTP(ctx context.Context, input *SubmitOTPInput) (*SubmitOTPOutput, error)

	// ResendOTP replaces the active code and redelivers it.
	ResendOTP(ctx context.Context, input *ResendOTPInput) (*FlowOutput, error)

	// CompleteRegistration creates the account and establishes a session.
	CompleteRegistration(ctx context.Context, input *CompleteRegistrationInput) (*SessionOutput, error)

	// Login authenticates by email and password. Members route to the
	// editor view, admins to the admin view.
	Login(ctx context.Context, input *LoginInput) (*SessionOutput, error)

	// ForgotPassword starts a reset flow for a known email.
	ForgotPassword(ctx context.Context, input *ForgotPasswordInput) (*FlowOutput, error)

	// ResetPassword overwrites the account password and routes back to
	// login.
	ResetPassword(ctx context.Context, input *ResetPasswordInput) (*FlowOutput, error)

	// Back abandons an in-flight flow and returns to the landing view.
	Back(ctx context.Context, flowID string) (*FlowOutput, error)

	// Session returns the persisted session user, or nil when signed out.
	Session(ctx context.Context) (*entity.User, error)

	// Logout clears the persisted session.
	Logout(ctx context.Context) error
}
