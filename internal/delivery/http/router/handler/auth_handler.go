// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"tapify/internal/delivery/http/response"
	"tapify/internal/domain/entity"
	"tapify/internal/domain/flow"
	"tapify/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication flow handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

type startVerificationRequest struct {
	Email         string `json:"email" validate:"required,email"`
	AgreedToTerms bool   `json:"agreedToTerms"`
}

type socialSignInRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type submitOTPRequest struct {
	FlowID string `json:"flowId" validate:"required"`
	Code   string `json:"code" validate:"required,len=6,numeric"`
}

type resendOTPRequest struct {
	FlowID string `json:"flowId" validate:"required"`
}

type completeRegistrationRequest struct {
	FlowID   string `json:"flowId" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	FlowID   string `json:"flowId" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

type backRequest struct {
	FlowID string `json:"flowId"`
}

type flowResponse struct {
	FlowID string `json:"flowId,omitempty"`
	View   string `json:"view"`
	Notice string `json:"notice,omitempty"`
}

type sessionResponse struct {
	AccessToken string      `json:"accessToken"`
	User        entity.User `json:"user"`
	View        string      `json:"view"`
}

type submitOTPResponse struct {
	flowResponse
	Session *sessionResponse `json:"session,omitempty"`
}

func newFlowResponse(out *usecase.FlowOutput) flowResponse {
	return flowResponse{
		FlowID: out.FlowID,
		View:   string(out.View),
		Notice: out.Notice,
	}
}

func newSessionResponse(out *usecase.SessionOutput) *sessionResponse {
	return &sessionResponse{
		AccessToken: out.AccessToken,
		User:        out.User,
		View:        string(out.View),
	}
}

// StartVerification handles the email verification step of signup.
func (h *AuthHandler) StartVerification(c echo.Context) error {
	var req startVerificationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.uc.StartVerification(c.Request().Context(), &usecase.StartVerificationInput{
		Email:         req.Email,
		AgreedToTerms: req.AgreedToTerms,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newFlowResponse(out))
}

// SocialSignIn handles sign-in with a provider ID token.
func (h *AuthHandler) SocialSignIn(c echo.Context) error {
	var req socialSignInRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid social sign-in input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.uc.SocialSignIn(c.Request().Context(), &usecase.SocialSignInInput{IDToken: req.IDToken})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newFlowResponse(out))
}

// SubmitOTP handles a code submission for an in-flight flow.
func (h *AuthHandler) SubmitOTP(c echo.Context) error {
	var req submitOTPRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid code input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.uc.SubmitOTP(c.Request().Context(), &usecase.SubmitOTPInput{
		FlowID: req.FlowID,
		Code:   req.Code,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	body := submitOTPResponse{flowResponse: newFlowResponse(&out.Flow)}
	if out.Session != nil {
		body.Session = newSessionResponse(out.Session)
	}

	return response.Success(c, http.StatusOK, body)
}

// ResendOTP regenerates and redelivers the active code.
func (h *AuthHandler) ResendOTP(c echo.Context) error {
	var req resendOTPRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid resend input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.uc.ResendOTP(c.Request().Context(), &usecase.ResendOTPInput{FlowID: req.FlowID})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newFlowResponse(out))
}

// CompleteRegistration finishes signup with a chosen password.
func (h *AuthHandler) CompleteRegistration(c echo.Context) error {
	var req completeRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.uc.CompleteRegistration(c.Request().Context(), &usecase.CompleteRegistrationInput{
		FlowID:   req.FlowID,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newSessionResponse(out))
}

// Login handles the user login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newSessionResponse(out))
}

// ForgotPassword starts the password reset flow.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.uc.ForgotPassword(c.Request().Context(), &usecase.ForgotPasswordInput{Email: req.Email})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newFlowResponse(out))
}

// ResetPassword finishes the password reset flow.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.uc.ResetPassword(c.Request().Context(), &usecase.ResetPasswordInput{
		FlowID:   req.FlowID,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newFlowResponse(out))
}

// Back abandons an in-flight flow and returns to the landing view.
func (h *AuthHandler) Back(c echo.Context) error {
	var req backRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}

	out, err := h.uc.Back(c.Request().Context(), req.FlowID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newFlowResponse(out))
}

// Session returns the persisted session user, or a signed-out landing
// state when none exists.
func (h *AuthHandler) Session(c echo.Context) error {
	user, err := h.uc.Session(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	if user == nil {
		return response.Success(c, http.StatusOK, flowResponse{View: string(flow.ViewLanding)})
	}

	view := flow.ViewEditor
	if user.IsAdmin {
		view = flow.ViewAdmin
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"user": user.Sanitized(),
		"view": string(view),
	})
}

// Logout clears the persisted session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.uc.Logout(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"})
}
