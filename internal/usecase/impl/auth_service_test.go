package impl

import (
	"context"
	"testing"

	domainerrors "tapify/internal/domain/errors"
	"tapify/internal/domain/flow"
	"tapify/internal/domain/service"
	"tapify/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_StartVerification_RequiresTerms(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.StartVerification(context.Background(), &usecase.StartVerificationInput{
		Email:         "jane.doe@tapify.co",
		AgreedToTerms: false,
	})

	require.ErrorIs(t, err, domainerrors.ErrTermsNotAgreed)
	assert.Empty(t, env.mailer.sent)
}

func TestAuthService_StartVerification_IssuesCode(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.auth.StartVerification(context.Background(), &usecase.StartVerificationInput{
		Email:         "jane.doe@tapify.co",
		AgreedToTerms: true,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, out.FlowID)
	assert.Equal(t, flow.ViewEnterOTP, out.View)
	require.Len(t, env.mailer.sent, 1)
	assert.Equal(t, "jane.doe@tapify.co", env.mailer.sent[0].email)
	assert.Equal(t, testOTPCode, env.mailer.sent[0].code)
}

func TestAuthService_StartVerification_ExistingEmailRoutesToLogin(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "member1@tapify.co", "member1", false)

	out, err := env.auth.StartVerification(context.Background(), &usecase.StartVerificationInput{
		Email:         "member1@tapify.co",
		AgreedToTerms: true,
	})

	require.NoError(t, err)
	assert.Equal(t, flow.ViewLogin, out.View)
	assert.Equal(t, "Account exists. Please login.", out.Notice)
	assert.Empty(t, out.FlowID)
	assert.Empty(t, env.mailer.sent, "no code should be issued for an existing account")
}

func TestAuthService_SubmitOTP_MismatchKeepsFlowAlive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	started, err := env.auth.StartVerification(ctx, &usecase.StartVerificationInput{
		Email:         "jane.doe@tapify.co",
		AgreedToTerms: true,
	})
	require.NoError(t, err)

	_, err = env.auth.SubmitOTP(ctx, &usecase.SubmitOTPInput{FlowID: started.FlowID, Code: "000000"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCode)

	// The flow survives a mismatch; the correct code still advances it.
	out, err := env.auth.SubmitOTP(ctx, &usecase.SubmitOTPInput{FlowID: started.FlowID, Code: testOTPCode})
	require.NoError(t, err)
	assert.Equal(t, flow.ViewRegister, out.Flow.View)
	assert.Nil(t, out.Session)
}

func TestAuthService_SubmitOTP_UnknownFlow(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.SubmitOTP(context.Background(), &usecase.SubmitOTPInput{
		FlowID: "missing",
		Code:   testOTPCode,
	})

	require.ErrorIs(t, err, domainerrors.ErrFlowNotFound)
}

func TestAuthService_ResendOTP_ReplacesCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	started, err := env.auth.StartVerification(ctx, &usecase.StartVerificationInput{
		Email:         "jane.doe@tapify.co",
		AgreedToTerms: true,
	})
	require.NoError(t, err)

	env.auth.(*authService).newCode = func() string { return "654321" }

	out, err := env.auth.ResendOTP(ctx, &usecase.ResendOTPInput{FlowID: started.FlowID})
	require.NoError(t, err)
	assert.Equal(t, flow.ViewEnterOTP, out.View)
	require.Len(t, env.mailer.sent, 2)
	assert.Equal(t, "654321", env.mailer.sent[1].code)

	// The original code stops matching once a new one is issued.
	_, err = env.auth.SubmitOTP(ctx, &usecase.SubmitOTPInput{FlowID: started.FlowID, Code: testOTPCode})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCode)

	advanced, err := env.auth.SubmitOTP(ctx, &usecase.SubmitOTPInput{FlowID: started.FlowID, Code: "654321"})
	require.NoError(t, err)
	assert.Equal(t, flow.ViewRegister, advanced.Flow.View)
}

func TestAuthService_CompleteRegistration_CreatesAccountAndCard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	started, err := env.auth.StartVerification(ctx, &usecase.StartVerificationInput{
		Email:         "jane.doe@tapify.co",
		AgreedToTerms: true,
	})
	require.NoError(t, err)

	_, err = env.auth.SubmitOTP(ctx, &usecase.SubmitOTPInput{FlowID: started.FlowID, Code: testOTPCode})
	require.NoError(t, err)

	session, err := env.auth.CompleteRegistration(ctx, &usecase.CompleteRegistrationInput{
		FlowID:   started.FlowID,
		Password: "s3cret",
	})
	require.NoError(t, err)

	assert.Equal(t, flow.ViewEditor, session.View)
	assert.Equal(t, "token-"+session.User.ID, session.AccessToken)
	assert.Empty(t, session.User.Password, "session payload must not carry the hash")
	assert.True(t, session.User.IsVerified)

	users, err := env.store.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "hashed:s3cret", users[0].Password)

	cards, err := env.store.Cards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, users[0].ID, cards[0].UserID)
	assert.Equal(t, "Jane Doe", cards[0].Name)

	persisted, err := env.auth.Session(ctx)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, users[0].ID, persisted.ID)

	// The flow is consumed on completion.
	_, err = env.auth.CompleteRegistration(ctx, &usecase.CompleteRegistrationInput{
		FlowID:   started.FlowID,
		Password: "again",
	})
	require.ErrorIs(t, err, domainerrors.ErrFlowNotFound)
}

func TestAuthService_Login_RoutesByRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "member1@tapify.co", "member1", false)
	env.seedUser(t, "admin@tapify.co", "admin", true)

	member, err := env.auth.Login(ctx, &usecase.LoginInput{Email: "member1@tapify.co", Password: "member1"})
	require.NoError(t, err)
	assert.Equal(t, flow.ViewEditor, member.View)

	admin, err := env.auth.Login(ctx, &usecase.LoginInput{Email: "admin@tapify.co", Password: "admin"})
	require.NoError(t, err)
	assert.Equal(t, flow.ViewAdmin, admin.View)

	entry := env.lastLog(t)
	assert.Equal(t, "User logged in", entry.Details)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "member1@tapify.co", "member1", false)
	env.seedUser(t, "onboarded@tapify.co", "", false)

	_, err := env.auth.Login(ctx, &usecase.LoginInput{Email: "member1@tapify.co", Password: "wrong"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = env.auth.Login(ctx, &usecase.LoginInput{Email: "nobody@tapify.co", Password: "member1"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	// Admin-onboarded accounts have no password until recovery sets one.
	_, err = env.auth.Login(ctx, &usecase.LoginInput{Email: "onboarded@tapify.co", Password: ""})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_PasswordResetFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "member1@tapify.co", "member1", false)

	started, err := env.auth.ForgotPassword(ctx, &usecase.ForgotPasswordInput{Email: "member1@tapify.co"})
	require.NoError(t, err)
	assert.Equal(t, flow.ViewEnterOTP, started.View)

	submitted, err := env.auth.SubmitOTP(ctx, &usecase.SubmitOTPInput{FlowID: started.FlowID, Code: testOTPCode})
	require.NoError(t, err)
	assert.Equal(t, flow.ViewResetPassword, submitted.Flow.View)

	out, err := env.auth.ResetPassword(ctx, &usecase.ResetPasswordInput{
		FlowID:   started.FlowID,
		Password: "fresh",
	})
	require.NoError(t, err)
	assert.Equal(t, flow.ViewLogin, out.View)
	assert.Equal(t, "Password reset successfully. Please login.", out.Notice)

	_, err = env.auth.Login(ctx, &usecase.LoginInput{Email: "member1@tapify.co", Password: "member1"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	session, err := env.auth.Login(ctx, &usecase.LoginInput{Email: "member1@tapify.co", Password: "fresh"})
	require.NoError(t, err)
	assert.Equal(t, flow.ViewEditor, session.View)
}

func TestAuthService_ForgotPassword_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.ForgotPassword(context.Background(), &usecase.ForgotPasswordInput{
		Email: "nobody@tapify.co",
	})

	require.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAuthService_SocialSignIn_CompletesIntoSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.oauth.user = &service.OAuthUser{
		ID:            "google-123",
		Email:         "jane.doe@tapify.co",
		EmailVerified: true,
	}

	started, err := env.auth.SocialSignIn(ctx, &usecase.SocialSignInInput{IDToken: "id-token"})
	require.NoError(t, err)
	assert.Equal(t, flow.ViewEnterOTP, started.View)

	out, err := env.auth.SubmitOTP(ctx, &usecase.SubmitOTPInput{FlowID: started.FlowID, Code: testOTPCode})
	require.NoError(t, err)
	require.NotNil(t, out.Session)
	assert.Equal(t, flow.ViewEditor, out.Session.View)
	assert.Equal(t, "jane.doe@tapify.co", out.Session.User.Email)
	assert.True(t, out.Session.User.IsVerified)

	cards, err := env.store.Cards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)
}

func TestAuthService_SocialSignIn_RejectedToken(t *testing.T) {
	env := newTestEnv(t)
	env.oauth.err = assert.AnError

	_, err := env.auth.SocialSignIn(context.Background(), &usecase.SocialSignInInput{IDToken: "bad"})

	require.ErrorIs(t, err, domainerrors.ErrOAuthTokenInvalid)
}

func TestAuthService_Back_AbandonsFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	started, err := env.auth.StartVerification(ctx, &usecase.StartVerificationInput{
		Email:         "jane.doe@tapify.co",
		AgreedToTerms: true,
	})
	require.NoError(t, err)

	out, err := env.auth.Back(ctx, started.FlowID)
	require.NoError(t, err)
	assert.Equal(t, flow.ViewLanding, out.View)

	_, err = env.auth.SubmitOTP(ctx, &usecase.SubmitOTPInput{FlowID: started.FlowID, Code: testOTPCode})
	require.ErrorIs(t, err, domainerrors.ErrFlowNotFound)
}

func TestAuthService_Logout_ClearsSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "member1@tapify.co", "member1", false)

	_, err := env.auth.Login(ctx, &usecase.LoginInput{Email: "member1@tapify.co", Password: "member1"})
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx))

	session, err := env.auth.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}
