package models

import "time"

// Outcome status values for a single booking within a dispatch pass.
const (
	OutcomeSent    = "sent"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// BookingOutcome records what happened to one candidate booking at one
// threshold. Skipped and failed bookings carry a reason; they are retried on
// the next pass because no ledger record was written for them.
type BookingOutcome struct {
	BookingID      string `json:"bookingId"`
	UID            string `json:"uid"`
	ElapsedMinutes int    `json:"elapsedMinutes"`
	Status         string `json:"status"`
	Reason         string `json:"reason,omitempty"`
}

// DispatchReport aggregates the outcomes of one full dispatch run across all
// thresholds. The sent count is derived from the outcomes, never tracked as
// separate mutable state.
type DispatchReport struct {
	RanAt    time.Time        `json:"ranAt"`
	Outcomes []BookingOutcome `json:"outcomes"`
}

// NotificationsSent counts the bookings that were sent and fenced.
func (r DispatchReport) NotificationsSent() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == OutcomeSent {
			n++
		}
	}
	return n
}
