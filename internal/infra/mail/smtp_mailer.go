package mail

import (
	"context"
	"fmt"
	"log/slog"

	"tapify/config"
	"tapify/internal/domain/service"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
)

// smtpMailer delivers verification codes through an SMTP relay.
type smtpMailer struct {
	cfg    *config.MailConfig
	dialer *gomail.Dialer
	logger *slog.Logger
}

func newSMTPMailer(cfg *config.MailConfig, logger *slog.Logger) service.Mailer {
	return &smtpMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger,
	}
}

// SendVerificationCode sends the code as a short plain-text message.
func (m *smtpMailer) SendVerificationCode(ctx context.Context, email, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Your Tapify verification code")
	msg.SetBody("text/plain", fmt.Sprintf("Your verification code is %s.\n\nIf you did not request this, you can ignore this message.", code))

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("Failed to send verification mail",
			slog.String("email", email),
			slog.Any("error", err),
		)

		return errors.Wrap(err, "send verification mail")
	}

	m.logger.Info("Verification code sent", slog.String("email", email))

	return nil
}
