package app

import (
	"github.com/tair/social-favorites/internal/notification"
	"github.com/tair/social-favorites/internal/notification/domain"
	"github.com/tair/social-favorites/internal/notification/inbox"
	"github.com/tair/social-favorites/internal/notification/mail"
	"github.com/tair/social-favorites/pkg/config"
	"github.com/tair/social-favorites/pkg/logger"
)

// NewNotifier delivers to the Redis inbox and, when an SMTP host is configured, by e-mail
func NewNotifier(box *inbox.RedisInbox, smtp config.SMTPConfig) domain.Notifier {
	channels := notification.MultiNotifier{box}
	if smtp.Host != "" {
		channels = append(channels, mail.NewSMTPNotifier(smtp))
	}

	logger.Logger.Info().
		Bool("email", smtp.Host != "").
		Int("channels", len(channels)).
		Msg("Notification channels configured")
	return channels
}
