package notification

import (
	"context"
	"errors"

	"github.com/tair/social-favorites/internal/notification/domain"
)

// MultiNotifier fans one notification out to several channels
type MultiNotifier []domain.Notifier

// Notify calls every channel; a failing channel does not stop the others
func (m MultiNotifier) Notify(ctx context.Context, recipients []domain.Recipient, n domain.Notification) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.Notify(ctx, recipients, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
