package reminderRepo

import (
	"context"

	"remindify/models"
)

// ReminderRepository is the immutable ledger of sent reminders. Records are
// the dedup fence between passes: a record at elapsedMinutes T marks the
// booking as done for every threshold <= T of the same kind.
type ReminderRepository interface {
	// FindExisting returns the subset of bookingIDs having at least one
	// record of the given kind with elapsedMinutes >= minElapsed. Records of
	// other kinds never match.
	FindExisting(ctx context.Context, kind models.ReminderKind, bookingIDs []string, minElapsed int) (map[string]struct{}, error)

	// Create inserts a new ledger record. A concurrent run inserting the
	// same (bookingId, kind, elapsedMinutes) triple is not an error; exactly
	// one record exists afterwards either way.
	Create(ctx context.Context, record models.ReminderRecord) error
}
