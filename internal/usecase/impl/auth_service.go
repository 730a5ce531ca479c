package impl

import (
	"context"
	"log/slog"

	deliverycontext "tapify/internal/delivery/context"
	"tapify/internal/domain/entity"
	domainerrors "tapify/internal/domain/errors"
	"tapify/internal/domain/flow"
	"tapify/internal/domain/repository"
	"tapify/internal/domain/service"
	"tapify/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface. In-flight flows and
// their codes live in process memory only; accounts and the session
// record go through the store.
type authService struct {
	store    repository.Store
	flows    *flow.Registry
	newCode  func() string
	hasher   service.PasswordHasher
	tokens   service.TokenService
	mailer   service.Mailer
	oauth    service.OAuthVerifier
	activity usecase.ActivityUsecase
	cards    usecase.CardUsecase
	logger   *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Store    repository.Store
	Hasher   service.PasswordHasher
	Tokens   service.TokenService
	Mailer   service.Mailer
	OAuth    service.OAuthVerifier
	Activity usecase.ActivityUsecase
	Cards    usecase.CardUsecase
	Logger   *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		store:    params.Store,
		flows:    flow.NewRegistry(),
		newCode:  flow.NewCode,
		hasher:   params.Hasher,
		tokens:   params.Tokens,
		mailer:   params.Mailer,
		oauth:    params.OAuth,
		activity: params.Activity,
		cards:    params.Cards,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// StartVerification begins signup. An email that already has an account
// short-circuits to login instead of issuing a code, which prevents
// duplicate accounts per email.
func (srv *authService) StartVerification(ctx context.Context, input *usecase.StartVerificationInput) (*usecase.FlowOutput, error) {
	if input.Email == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "email is required")
	}
	if !input.AgreedToTerms {
		return nil, errors.Wrap(domainerrors.ErrTermsNotAgreed, "terms gate on email verification")
	}

	existing, err := srv.findUserByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		srv.log(ctx).Info("Signup for existing account, routing to login", slog.String("email", input.Email))

		return &usecase.FlowOutput{
			View:   flow.ViewLogin,
			Notice: "Account exists. Please login.",
		}, nil
	}

	return srv.startFlow(ctx, input.Email, flow.ContextSignup)
}

// SocialSignIn verifies the provider token, then runs the same email
// verification flow with a social context.
func (srv *authService) SocialSignIn(ctx context.Context, input *usecase.SocialSignInInput) (*usecase.FlowOutput, error) {
	oauthUser, err := srv.oauth.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		srv.log(ctx).Warn("Social sign-in token rejected", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrOAuthTokenInvalid, "social sign-in failed")
	}

	return srv.startFlow(ctx, oauthUser.Email, flow.ContextSocial)
}

func (srv *authService) startFlow(ctx context.Context, email string, fc flow.Context) (*usecase.FlowOutput, error) {
	f := flow.New(email, fc, srv.newCode())
	srv.flows.Put(f)

	if err := srv.mailer.SendVerificationCode(ctx, email, f.Code()); err != nil {
		srv.flows.Delete(f.ID)

		return nil, errors.Wrap(err, "failed to deliver verification code")
	}

	srv.log(ctx).Info("Verification flow started",
		slog.String("flowID", f.ID),
		slog.String("context", string(fc)),
	)

	return &usecase.FlowOutput{FlowID: f.ID, View: flow.ViewEnterOTP}, nil
}

// SubmitOTP checks the code and advances the flow. A mismatch keeps the
// flow alive on enter_otp. Social flows complete directly into a
// session.
func (srv *authService) SubmitOTP(ctx context.Context, input *usecase.SubmitOTPInput) (*usecase.SubmitOTPOutput, error) {
	f, ok := srv.flows.Get(input.FlowID)
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrFlowNotFound, "otp submission failed")
	}

	view, err := f.Submit(input.Code)
	if err != nil {
		srv.log(ctx).Warn("OTP mismatch", slog.String("flowID", f.ID))

		return nil, errors.Wrap(err, "otp submission failed")
	}

	if f.Context != flow.ContextSocial {
		return &usecase.SubmitOTPOutput{
			Flow: usecase.FlowOutput{FlowID: f.ID, View: view},
		}, nil
	}

	user, err := srv.findOrCreateSocialUser(ctx, f.Email)
	if err != nil {
		return nil, err
	}
	srv.flows.Delete(f.ID)

	session, err := srv.establishSession(ctx, *user)
	if err != nil {
		return nil, err
	}

	return &usecase.SubmitOTPOutput{
		Flow:    usecase.FlowOutput{View: session.View},
		Session: session,
	}, nil
}

// ResendOTP replaces the active code; the previous one stops matching
// immediately.
func (srv *authService) ResendOTP(ctx context.Context, input *usecase.ResendOTPInput) (*usecase.FlowOutput, error) {
	f, ok := srv.flows.Get(input.FlowID)
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrFlowNotFound, "otp resend failed")
	}

	f.Resend(srv.newCode())
	if err := srv.mailer.SendVerificationCode(ctx, f.Email, f.Code()); err != nil {
		return nil, errors.Wrap(err, "failed to redeliver verification code")
	}

	return &usecase.FlowOutput{FlowID: f.ID, View: flow.ViewEnterOTP}, nil
}

// CompleteRegistration creates the account and signs it in.
func (srv *authService) CompleteRegistration(ctx context.Context, input *usecase.CompleteRegistrationInput) (*usecase.SessionOutput, error) {
	f, ok := srv.flows.Get(input.FlowID)
	if !ok || f.View != flow.ViewRegister {
		return nil, errors.Wrap(domainerrors.ErrFlowNotFound, "registration failed")
	}
	if input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "password is required")
	}

	users, err := srv.store.Users(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read users")
	}
	for _, u := range users {
		if u.Email == f.Email {
			return nil, errors.Wrap(domainerrors.ErrUserAlreadyExists, "registration failed")
		}
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	user := entity.User{
		ID:         entity.NewUserID(),
		Email:      f.Email,
		Password:   hash,
		IsAdmin:    false,
		IsVerified: true,
	}
	users = append(users, user)
	if err := srv.store.PutUsers(ctx, users); err != nil {
		return nil, errors.Wrap(err, "failed to persist new user")
	}
	srv.flows.Delete(f.ID)

	srv.log(ctx).Info("User registered", slog.String("userID", user.ID))

	return srv.establishSession(ctx, user)
}

// Login authenticates by email and password.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.SessionOutput, error) {
	user, err := srv.findUserByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	// Accounts onboarded by an admin carry no password until the member
	// sets one through recovery.
	if user == nil || user.Password == "" || !srv.hasher.Check(input.Password, user.Password) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	session, err := srv.establishSession(ctx, *user)
	if err != nil {
		return nil, err
	}

	if _, err := srv.activity.Record(ctx, user.ID, user.Email, entity.ActionLogin, "User logged in"); err != nil {
		srv.log(ctx).Warn("Failed to record login", slog.Any("error", err))
	}

	return session, nil
}

// ForgotPassword reuses the verification flow with a reset context.
func (srv *authService) ForgotPassword(ctx context.Context, input *usecase.ForgotPasswordInput) (*usecase.FlowOutput, error) {
	user, err := srv.findUserByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.Wrap(domainerrors.ErrUserNotFound, "password reset failed")
	}

	return srv.startFlow(ctx, input.Email, flow.ContextReset)
}

// ResetPassword overwrites the account password and routes to login.
func (srv *authService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) (*usecase.FlowOutput, error) {
	f, ok := srv.flows.Get(input.FlowID)
	if !ok || f.View != flow.ViewResetPassword {
		return nil, errors.Wrap(domainerrors.ErrFlowNotFound, "password reset failed")
	}
	if input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "password is required")
	}

	users, err := srv.store.Users(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read users")
	}

	idx := -1
	for i := range users {
		if users[i].Email == f.Email {
			idx = i

			break
		}
	}
	if idx < 0 {
		return nil, errors.Wrap(domainerrors.ErrUserNotFound, "password reset failed")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during reset")
	}

	users[idx].Password = hash
	if err := srv.store.PutUsers(ctx, users); err != nil {
		return nil, errors.Wrap(err, "failed to persist password reset")
	}
	srv.flows.Delete(f.ID)

	srv.log(ctx).Info("Password reset completed", slog.String("userID", users[idx].ID))

	return &usecase.FlowOutput{
		View:   flow.ViewLogin,
		Notice: "Password reset successfully. Please login.",
	}, nil
}

// Back abandons any in-flight flow, which also discards the terms
// agreement it carried.
func (srv *authService) Back(ctx context.Context, flowID string) (*usecase.FlowOutput, error) {
	if flowID != "" {
		srv.flows.Delete(flowID)
	}

	return &usecase.FlowOutput{View: flow.ViewLanding}, nil
}

// Session returns the persisted session user, or nil when signed out.
func (srv *authService) Session(ctx context.Context) (*entity.User, error) {
	user, err := srv.store.Session(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read session")
	}

	return user, nil
}

// Logout clears the persisted session.
func (srv *authService) Logout(ctx context.Context) error {
	if err := srv.store.SetSession(ctx, nil); err != nil {
		return errors.Wrap(err, "failed to clear session")
	}

	return nil
}

func (srv *authService) findUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	users, err := srv.store.Users(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read users")
	}

	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}

	return nil, nil
}

func (srv *authService) findOrCreateSocialUser(ctx context.Context, email string) (*entity.User, error) {
	user, err := srv.findUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	users, err := srv.store.Users(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read users")
	}

	created := entity.User{
		ID:         entity.NewUserID(),
		Email:      email,
		IsAdmin:    false,
		IsVerified: true,
	}
	users = append(users, created)
	if err := srv.store.PutUsers(ctx, users); err != nil {
		return nil, errors.Wrap(err, "failed to persist social user")
	}

	srv.log(ctx).Info("Created account from social sign-in", slog.String("userID", created.ID))

	return &created, nil
}

// establishSession persists the session record, provisions the card and
// issues an access token. Members land on the editor, admins on the
// admin view.
func (srv *authService) establishSession(ctx context.Context, user entity.User) (*usecase.SessionOutput, error) {
	if err := srv.store.SetSession(ctx, &user); err != nil {
		return nil, errors.Wrap(err, "failed to persist session")
	}

	if _, err := srv.cards.EnsureCard(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to provision card on session start")
	}

	token, err := srv.tokens.GenerateAccessToken(user.ID, user.Roles())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	view := flow.ViewEditor
	if user.IsAdmin {
		view = flow.ViewAdmin
	}

	return &usecase.SessionOutput{
		AccessToken: token,
		User:        user.Sanitized(),
		View:        view,
	}, nil
}
