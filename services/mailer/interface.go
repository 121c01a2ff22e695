package mailer

import (
	"context"

	"remindify/models"
)

// NotificationSender delivers a composed reminder event to the organizer.
// An error means the notification did not go out and the caller must not
// write a ledger record for it.
type NotificationSender interface {
	Send(ctx context.Context, event models.BookingReminderEvent) error
}
