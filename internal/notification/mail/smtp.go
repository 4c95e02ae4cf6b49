// Package mail delivers notifications by e-mail through SMTP.
package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/tair/social-favorites/internal/notification/domain"
	"github.com/tair/social-favorites/pkg/config"
	"github.com/tair/social-favorites/pkg/logger"
)

// Sender is satisfied by *gomail.Dialer
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier sends one message per recipient
type SMTPNotifier struct {
	sender  Sender
	from    string
	breaker *CircuitBreaker
}

// NewSMTPNotifier builds a notifier backed by a gomail dialer
func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	return NewSMTPNotifierWithSender(gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password), cfg.From)
}

// NewSMTPNotifierWithSender wraps an existing sender
func NewSMTPNotifierWithSender(sender Sender, from string) *SMTPNotifier {
	return &SMTPNotifier{
		sender:  sender,
		from:    from,
		breaker: NewCircuitBreaker("smtp", 5, 30*time.Second),
	}
}

// Notify mails every recipient with an address; failures are collected, not fatal
func (s *SMTPNotifier) Notify(ctx context.Context, recipients []domain.Recipient, n domain.Notification) error {
	var errs []error
	for _, r := range recipients {
		if r.Email == "" {
			continue
		}

		msg := s.message(r, n)
		if err := s.breaker.Call(func() error { return s.sender.DialAndSend(msg) }); err != nil {
			logger.Warn(ctx).
				Err(err).
				Uint("user_id", r.UserID).
				Str("notification_id", n.ID).
				Msg("Failed to send notification e-mail")
			errs = append(errs, fmt.Errorf("mail %d: %w", r.UserID, err))
		}
	}
	return errors.Join(errs...)
}

func (s *SMTPNotifier) message(r domain.Recipient, n domain.Notification) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetAddressHeader("To", r.Email, r.Name)
	m.SetHeader("Subject", fmt.Sprintf("%s published a new post", n.AuthorName))
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\n%s just published \"%s\".\n",
		r.Name, n.AuthorName, n.PostTitle,
	))
	return m
}
