package mailer

import (
	"context"

	"github.com/rs/zerolog"
)

// ConsoleSender logs email instead of delivering it. Used when no
// SendGrid API key is configured, typically in development.
type ConsoleSender struct {
	log zerolog.Logger
}

// NewConsoleSender creates a ConsoleSender.
func NewConsoleSender(log zerolog.Logger) *ConsoleSender {
	return &ConsoleSender{log: log.With().Str("component", "console_mailer").Logger()}
}

// Send writes the email to the log.
func (s *ConsoleSender) Send(_ context.Context, email Email) error {
	s.log.Info().
		Str("to", email.ToEmail).
		Str("subject", email.Subject).
		Str("body", email.Body).
		Msg("email (console delivery)")
	return nil
}
