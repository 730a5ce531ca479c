// Package mail delivers one-time verification codes.
package mail

import (
	"log/slog"

	"tapify/config"
	"tapify/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Provider names accepted in the mail config.
const (
	ProviderSMTP      = "smtp"
	ProviderSimulated = "simulated"
)

// MailerParams holds dependencies for the Mailer, injected by Fx
type MailerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewMailer creates a Mailer based on configuration. When mail is not
// configured the simulated provider is used, which surfaces the code in
// the service log instead of sending anything.
func NewMailer(params MailerParams) (service.Mailer, error) {
	cfg := params.Config.Mail
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" || cfg.Provider == ProviderSimulated {
		logger.Info("Mail not configured, using simulated delivery")

		return newSimulatedMailer(logger), nil
	}

	if cfg.Provider != ProviderSMTP {
		return nil, errors.Errorf("unknown mail provider: %s", cfg.Provider)
	}

	if cfg.Host == "" || cfg.Port == 0 {
		return nil, errors.New("smtp host and port are required for smtp provider")
	}
	logger.Info("Using SMTP mail delivery",
		slog.String("host", cfg.Host),
		slog.Int("port", cfg.Port),
	)

	return newSMTPMailer(cfg, logger), nil
}
