package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"remindify/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// reminderThresholds are the escalation tiers in elapsed minutes since
// booking creation: 48h, 24h and 3h, processed in this literal order. Each
// tier is independent; order does not affect correctness.
var reminderThresholds = []int{2880, 1440, 180}

const lastRunCacheKey = "dispatch:pending-reminders:last-run"

// Run executes one full dispatch pass across all thresholds. Per-booking
// failures are contained in the report; a fetch failure aborts the run so
// the next trigger retries it whole.
func (s *DefaultDispatchService) Run(ctx context.Context) (models.DispatchReport, error) {
	report := models.DispatchReport{RanAt: time.Now().UTC()}

	for _, minutes := range reminderThresholds {
		outcomes, err := s.runThreshold(ctx, minutes)
		if err != nil {
			return models.DispatchReport{}, err
		}
		report.Outcomes = append(report.Outcomes, outcomes...)
	}

	s.logger().Info("dispatch run finished",
		zap.Int("notificationsSent", report.NotificationsSent()),
		zap.Int("outcomes", len(report.Outcomes)),
	)
	s.storeReport(ctx, report)
	return report, nil
}

// runThreshold evaluates one elapsed-time tier against the current wall
// clock and returns the outcome of every candidate booking.
func (s *DefaultDispatchService) runThreshold(ctx context.Context, minutes int) ([]models.BookingOutcome, error) {
	cutoff := time.Now().Add(-time.Duration(minutes) * time.Minute)

	bookings, err := s.Bookings.FindPendingOlderThan(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("threshold %d: failed to fetch pending bookings: %w", minutes, err)
	}
	if len(bookings) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}

	// A record at elapsed >= minutes counts as done for this tier: a larger
	// recorded elapsed value suppresses smaller-threshold resends, but not
	// the other way around.
	existing, err := s.Reminders.FindExisting(ctx, models.ReminderKindPendingConfirmation, ids, minutes)
	if err != nil {
		return nil, fmt.Errorf("threshold %d: failed to fetch existing reminders: %w", minutes, err)
	}

	var outcomes []models.BookingOutcome
	for _, b := range bookings {
		if _, done := existing[b.ID]; done {
			continue
		}
		outcomes = append(outcomes, s.dispatchBooking(ctx, b, minutes))
	}
	return outcomes, nil
}

// dispatchBooking runs the per-booking send procedure: validate, compose,
// send, fence. Every failure is contained in the returned outcome.
func (s *DefaultDispatchService) dispatchBooking(ctx context.Context, b models.Booking, minutes int) models.BookingOutcome {
	out := models.BookingOutcome{BookingID: b.ID, UID: b.UID, ElapsedMinutes: minutes}

	if b.Status != models.BookingStatusPending {
		out.Status = models.OutcomeSkipped
		out.Reason = "booking is no longer pending"
		return out
	}
	if b.Organizer.DisplayName() == "" {
		out.Status = models.OutcomeSkipped
		out.Reason = "organizer has no display name"
		s.logger().Warn("skipping booking", zap.String("uid", b.UID), zap.String("reason", out.Reason))
		return out
	}
	if b.Organizer.TimeZone == "" {
		out.Status = models.OutcomeSkipped
		out.Reason = "organizer has no timezone"
		s.logger().Warn("skipping booking", zap.String("uid", b.UID), zap.String("reason", out.Reason))
		return out
	}

	event := s.composeEvent(b)

	if err := s.Sender.Send(ctx, event); err != nil {
		out.Status = models.OutcomeFailed
		out.Reason = fmt.Sprintf("send failed: %v", err)
		s.logger().Error("reminder send failed", zap.String("uid", b.UID), zap.Error(err))
		return out
	}

	record := models.ReminderRecord{
		ID:             uuid.New().String(),
		BookingID:      b.ID,
		Kind:           models.ReminderKindPendingConfirmation,
		ElapsedMinutes: minutes,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Reminders.Create(ctx, record); err != nil {
		// The notification went out but the fence did not persist; the next
		// pass may send a duplicate. Accepted failure mode, surfaced here.
		out.Status = models.OutcomeFailed
		out.Reason = fmt.Sprintf("ledger write failed after send: %v", err)
		s.logger().Error("reminder ledger write failed, duplicate send possible on next pass",
			zap.String("uid", b.UID),
			zap.Int("elapsedMinutes", minutes),
			zap.Error(err),
		)
		return out
	}

	out.Status = models.OutcomeSent
	return out
}

// storeReport caches the finished report so the last run stays inspectable.
// Best effort only.
func (s *DefaultDispatchService) storeReport(ctx context.Context, report models.DispatchReport) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		s.logger().Warn("failed to marshal dispatch report", zap.Error(err))
		return
	}
	if err := s.Cache.Set(ctx, lastRunCacheKey, data, 0).Err(); err != nil {
		s.logger().Warn("failed to store dispatch report", zap.Error(err))
	}
}

// LastReport loads the most recently stored run report from the cache.
func (s *DefaultDispatchService) LastReport(ctx context.Context) (*models.DispatchReport, error) {
	if s.Cache == nil {
		return nil, nil
	}
	data, err := s.Cache.Get(ctx, lastRunCacheKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load last dispatch report: %w", err)
	}
	var report models.DispatchReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("failed to parse last dispatch report: %w", err)
	}
	return &report, nil
}
