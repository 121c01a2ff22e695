package models

import "time"

// ReminderKind tags what a ledger record was sent for. The reminders
// collection is shared across kinds; every query filters by kind.
type ReminderKind string

const (
	// ReminderKindPendingConfirmation marks escalation reminders for
	// booking requests still awaiting organizer confirmation.
	ReminderKindPendingConfirmation ReminderKind = "pending_booking_confirmation"
)

// ReminderRecord is the immutable dedup fence written after a successful
// send. A record at elapsedMinutes T suppresses all thresholds <= T for the
// same booking and kind; it is never updated or deleted.
type ReminderRecord struct {
	ID             string       `bson:"id" json:"id"`
	BookingID      string       `bson:"bookingId" json:"bookingId"`
	Kind           ReminderKind `bson:"kind" json:"kind"`
	ElapsedMinutes int          `bson:"elapsedMinutes" json:"elapsedMinutes"`
	CreatedAt      time.Time    `bson:"createdAt" json:"createdAt"`
}
