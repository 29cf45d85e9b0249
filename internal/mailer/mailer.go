// Package mailer delivers outbound email. The notification worker is
// the only producer; it drains the Redis queue and hands each message
// to the configured Sender.
package mailer

import "context"

// Email is one outbound message.
type Email struct {
	ToEmail string `json:"to_email"`
	ToName  string `json:"to_name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Sender delivers a single email.
type Sender interface {
	Send(ctx context.Context, email Email) error
}
