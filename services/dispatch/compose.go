package dispatch

import (
	"sync"
	"time"

	"remindify/models"
	"remindify/services/i18n"
)

// composeEvent builds the locale-aware reminder event for one booking.
// Attendee translators are resolved concurrently; the attendee order of the
// event always equals the order on the booking, whatever order resolutions
// complete in. The event is only composed once every resolution is done.
func (s *DefaultDispatchService) composeEvent(b models.Booking) models.BookingReminderEvent {
	organizerLocale := b.Organizer.Locale
	if organizerLocale == "" {
		organizerLocale = i18n.DefaultLocale
	}
	organizerT := s.Resolver.Resolve(organizerLocale)

	attendees := make([]models.EventAttendee, len(b.Attendees))
	var wg sync.WaitGroup
	for i, a := range b.Attendees {
		wg.Add(1)
		go func(i int, a models.Attendee) {
			defer wg.Done()
			locale := a.Locale
			if locale == "" {
				locale = i18n.DefaultLocale
			}
			t := s.Resolver.Resolve(locale)
			attendees[i] = models.EventAttendee{
				Name:     a.Name,
				Email:    a.Email,
				TimeZone: a.TimeZone,
				Language: models.EventLanguage{Translate: t, Locale: locale},
			}
		}(i, a)
	}
	wg.Wait()

	destination := b.DestinationCalendar
	if destination == nil {
		destination = b.Organizer.DestinationCalendar
	}

	// Custom inputs ride along only when they form a non-empty key/value map.
	var customInputs map[string]any
	if len(b.CustomInputs) > 0 {
		customInputs = b.CustomInputs
	}

	return models.BookingReminderEvent{
		UID:          b.UID,
		Type:         b.Title,
		Title:        b.Title,
		Description:  b.Description,
		CustomInputs: customInputs,
		Location:     b.Location,
		StartTime:    b.StartTime.Format(time.RFC3339),
		EndTime:      b.EndTime.Format(time.RFC3339),
		Organizer: models.EventOrganizer{
			Email:    b.Organizer.Email,
			Name:     b.Organizer.DisplayName(),
			TimeZone: b.Organizer.TimeZone,
			Language: models.EventLanguage{Translate: organizerT, Locale: organizerLocale},
			FCMToken: b.Organizer.FCMToken,
		},
		Attendees:           attendees,
		DestinationCalendar: destination,
	}
}
