package dispatch

import (
	"context"

	"remindify/models"

	bookingRepo "remindify/database/repository/booking"
	reminderRepo "remindify/database/repository/reminder"
	"remindify/services/i18n"
	"remindify/services/mailer"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DispatchService runs one tiered reminder pass over pending bookings.
type DispatchService interface {
	// Run executes all threshold passes and returns the aggregated report.
	// It is safe to invoke repeatedly and concurrently with itself: the
	// reminder ledger is the dedup fence. A bulk fetch failure aborts the
	// whole run and is returned as an error.
	Run(ctx context.Context) (models.DispatchReport, error)

	// LastReport returns the most recently stored run report, or nil when
	// none has been stored yet.
	LastReport(ctx context.Context) (*models.DispatchReport, error)
}

// DefaultDispatchService implements DispatchService.
type DefaultDispatchService struct {
	Bookings  bookingRepo.BookingRepository
	Reminders reminderRepo.ReminderRepository
	Resolver  i18n.TranslatorResolver
	Sender    mailer.NotificationSender
	Cache     *redis.Client // optional; last-run report storage
	Logger    *zap.Logger
}

func (s *DefaultDispatchService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
