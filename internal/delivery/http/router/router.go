// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"tapify/internal/delivery/http/middleware"
	"tapify/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers and middleware injected by Fx.
type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	CardHandler    *handler.CardHandler
	ShareHandler   *handler.ShareHandler
	WalletHandler  *handler.WalletHandler
	AdminHandler   *handler.AdminHandler
	AssistHandler  *handler.AssistHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	cardHandler    *handler.CardHandler
	shareHandler   *handler.ShareHandler
	walletHandler  *handler.WalletHandler
	adminHandler   *handler.AdminHandler
	assistHandler  *handler.AssistHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		cardHandler:    params.CardHandler,
		shareHandler:   params.ShareHandler,
		walletHandler:  params.WalletHandler,
		adminHandler:   params.AdminHandler,
		assistHandler:  params.AssistHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Authentication flow routes, all unauthenticated
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/verify-email", r.authHandler.StartVerification)
		authGroup.POST("/social", r.authHandler.SocialSignIn)
		authGroup.POST("/otp", r.authHandler.SubmitOTP)
		authGroup.POST("/otp/resend", r.authHandler.ResendOTP)
		authGroup.POST("/register", r.authHandler.CompleteRegistration)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/forgot-password", r.authHandler.ForgotPassword)
		authGroup.POST("/reset-password", r.authHandler.ResetPassword)
		authGroup.POST("/back", r.authHandler.Back)
		authGroup.GET("/session", r.authHandler.Session)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	// Public card surface: anyone with a link can view, save to the
	// wallet or fetch share payloads.
	cardsGroup := e.Group("/cards")
	{
		cardsGroup.GET("/:id", r.cardHandler.GetPublic)
		cardsGroup.GET("/off/:payload", r.cardHandler.DecodeOffline)
		cardsGroup.GET("/:id/share", r.shareHandler.Payloads)
		cardsGroup.GET("/:id/qrcode", r.shareHandler.QRCode)
	}

	walletGroup := e.Group("/wallet")
	{
		walletGroup.POST("", r.walletHandler.Save)
		walletGroup.GET("", r.walletHandler.List)
	}

	// The owner's editing surface requires authentication
	cardGroup := e.Group("/card")
	cardGroup.Use(r.authMiddleware.Authenticate)
	{
		cardGroup.GET("", r.cardHandler.GetOwn)
		cardGroup.PUT("", r.cardHandler.Update)
		cardGroup.POST("/:id/nfc", r.shareHandler.WriteNFC)
		cardGroup.POST("/:id/order", r.shareHandler.Order)
	}

	assistGroup := e.Group("/assist")
	assistGroup.Use(r.authMiddleware.Authenticate)
	{
		assistGroup.POST("/translate", r.assistHandler.TranslateCard)
		assistGroup.POST("/image", r.assistHandler.EditImage)
	}

	// Admin routes require authentication and the "admin" role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole("admin"))
	{
		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.POST("/users", r.adminHandler.OnboardUser)
		adminGroup.POST("/users/:id/card", r.adminHandler.ProvisionCard)
		adminGroup.GET("/cards", r.adminHandler.ListCards)
		adminGroup.DELETE("/cards/:id", r.adminHandler.DeleteCard)
		adminGroup.GET("/logs", r.adminHandler.ListLogs)
		adminGroup.GET("/logs/summary", r.adminHandler.LogSummary)
	}
}
