package models

// EventLanguage pairs a resolved translation function with the locale it was
// resolved for. The function never crosses the wire.
type EventLanguage struct {
	Translate func(key string, args ...any) string `json:"-"`
	Locale    string                               `json:"locale"`
}

// EventOrganizer is the organizer block of an outbound reminder event.
type EventOrganizer struct {
	Email    string        `json:"email"`
	Name     string        `json:"name"`
	TimeZone string        `json:"timeZone"`
	Language EventLanguage `json:"language"`
	FCMToken string        `json:"-"` // push mirror only, never serialized
}

// EventAttendee mirrors one booking attendee; slice order in the event equals
// attendee order on the booking.
type EventAttendee struct {
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	TimeZone string        `json:"timeZone"`
	Language EventLanguage `json:"language"`
}

// BookingReminderEvent is the composed, locale-aware payload handed to the
// notification sender for one booking at one threshold.
type BookingReminderEvent struct {
	UID                 string               `json:"uid"`
	Type                string               `json:"type"`
	Title               string               `json:"title"`
	Description         string               `json:"description,omitempty"`
	CustomInputs        map[string]any       `json:"customInputs,omitempty"`
	Location            string               `json:"location"`
	StartTime           string               `json:"startTime"` // RFC 3339
	EndTime             string               `json:"endTime"`   // RFC 3339
	Organizer           EventOrganizer       `json:"organizer"`
	Attendees           []EventAttendee      `json:"attendees"`
	DestinationCalendar *DestinationCalendar `json:"destinationCalendar,omitempty"`
}
