package main

import (
	"context"
	"log/slog"
	"os"

	"tapify/config"
	"tapify/internal/delivery"
	"tapify/internal/delivery/http"
	"tapify/internal/delivery/http/middleware"
	"tapify/internal/delivery/http/router/handler"
	"tapify/internal/domain/entity"
	"tapify/internal/domain/repository"
	"tapify/internal/domain/service"
	"tapify/internal/infra/ai"
	"tapify/internal/infra/auth"
	"tapify/internal/infra/auth/google"
	logs "tapify/internal/infra/log"
	"tapify/internal/infra/mail"
	"tapify/internal/infra/persistence/kvstore"
	"tapify/internal/infra/pubsub"
	"tapify/internal/infra/qrcode"
	"tapify/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			seedAccounts,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
		),
		kvstore.Module,
		pubsub.Module,
		ai.Module,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			google.NewVerifier,
			mail.NewMailer,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewActivityService,
			impl.NewCardService,
			impl.NewAuthService,
			impl.NewShareService,
			impl.NewWalletService,
			impl.NewAdminService,
			impl.NewAssistService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewCardHandler,
			handler.NewShareHandler,
			handler.NewWalletHandler,
			handler.NewAdminHandler,
			handler.NewAssistHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// seedAccounts creates the bootstrap admin and demo member accounts
// when they do not already exist.
func seedAccounts(ctx context.Context, cfg *config.Config, store repository.Store, hasher service.PasswordHasher, logger *slog.Logger) error {
	if cfg.Seed == nil || !cfg.Seed.Enabled {
		return nil
	}

	users, err := store.Users(ctx)
	if err != nil {
		return err
	}

	seeds := []struct {
		email    string
		password string
		isAdmin  bool
	}{
		{cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, true},
		{cfg.Seed.DemoEmail, cfg.Seed.DemoPassword, false},
	}

	changed := false
	for _, seed := range seeds {
		if seed.email == "" {
			continue
		}
		exists := false
		for i := range users {
			if users[i].Email == seed.email {
				exists = true

				break
			}
		}
		if exists {
			continue
		}

		hash, err := hasher.Hash(seed.password)
		if err != nil {
			return err
		}

		users = append(users, entity.User{
			ID:         entity.NewUserID(),
			Email:      seed.email,
			Password:   hash,
			IsAdmin:    seed.isAdmin,
			IsVerified: true,
		})
		changed = true
		logger.Info("Seeded account", slog.String("email", seed.email), slog.Bool("isAdmin", seed.isAdmin))
	}

	if !changed {
		return nil
	}

	return store.PutUsers(ctx, users)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
