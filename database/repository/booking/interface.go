package bookingRepo

import (
	"context"
	"time"

	"remindify/models"
)

// BookingRepository is the read model consumed by the dispatch engine.
type BookingRepository interface {
	// FindPendingOlderThan returns all bookings with status "pending" whose
	// creation time is at or before the cutoff, with organizer and attendee
	// projections embedded.
	FindPendingOlderThan(ctx context.Context, cutoff time.Time) ([]models.Booking, error)
}
