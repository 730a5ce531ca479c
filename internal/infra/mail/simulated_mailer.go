package mail

import (
	"context"
	"log/slog"

	"tapify/internal/domain/service"
)

// simulatedMailer logs the code instead of delivering it, standing in
// for the banner the original client showed during development.
type simulatedMailer struct {
	logger *slog.Logger
}

func newSimulatedMailer(logger *slog.Logger) service.Mailer {
	return &simulatedMailer{logger: logger}
}

// SendVerificationCode surfaces the code in the service log.
func (m *simulatedMailer) SendVerificationCode(ctx context.Context, email, code string) error {
	m.logger.Info("[SimulatedMail] Verification code issued",
		slog.String("email", email),
		slog.String("code", code),
	)

	return nil
}
