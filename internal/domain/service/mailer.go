package service

import "context"

// Mailer delivers one-time verification codes. The simulated provider
// logs the code instead of sending mail, mirroring a development setup
// without an SMTP relay.
type Mailer interface {
	// SendVerificationCode delivers the code to the given address.
	SendVerificationCode(ctx context.Context, email, code string) error
}
