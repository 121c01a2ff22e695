package dispatch

import (
	"testing"
	"time"

	"remindify/models"

	"go.uber.org/zap"
)

func composeService() *DefaultDispatchService {
	return &DefaultDispatchService{
		// Jitter shuffles completion order of the translator goroutines.
		Resolver: fakeResolver{jitter: 3 * time.Millisecond},
		Logger:   zap.NewNop(),
	}
}

func TestComposeEventPreservesAttendeeOrder(t *testing.T) {
	svc := composeService()
	b := pendingBooking("b1", 50*time.Hour)
	b.Attendees = []models.Attendee{
		{Name: "A", Email: "a@example.com", TimeZone: "UTC", Locale: "en"},
		{Name: "B", Email: "b@example.com", TimeZone: "Europe/Paris", Locale: "fr"},
		{Name: "C", Email: "c@example.com", TimeZone: "Europe/Madrid", Locale: "es"},
	}

	for i := 0; i < 20; i++ {
		ev := svc.composeEvent(b)
		want := []string{"en", "fr", "es"}
		if len(ev.Attendees) != len(want) {
			t.Fatalf("attendee count = %d, want %d", len(ev.Attendees), len(want))
		}
		for j, locale := range want {
			if ev.Attendees[j].Language.Locale != locale {
				t.Fatalf("iteration %d: attendee %d locale = %q, want %q", i, j, ev.Attendees[j].Language.Locale, locale)
			}
			if ev.Attendees[j].Language.Translate == nil {
				t.Fatalf("attendee %d has no translator", j)
			}
		}
	}
}

func TestComposeEventDefaultsLocalesToEnglish(t *testing.T) {
	svc := composeService()
	b := pendingBooking("b1", 50*time.Hour)
	b.Organizer.Locale = ""
	b.Attendees = []models.Attendee{{Name: "A", Email: "a@example.com", TimeZone: "UTC"}}

	ev := svc.composeEvent(b)
	if ev.Organizer.Language.Locale != "en" {
		t.Errorf("organizer locale = %q, want en", ev.Organizer.Language.Locale)
	}
	if ev.Attendees[0].Language.Locale != "en" {
		t.Errorf("attendee locale = %q, want en", ev.Attendees[0].Language.Locale)
	}
}

func TestComposeEventPayloadShape(t *testing.T) {
	svc := composeService()
	b := pendingBooking("b1", 50*time.Hour)
	b.Description = "Quarterly sync"
	b.Location = ""
	b.CustomInputs = nil

	ev := svc.composeEvent(b)
	if ev.UID != b.UID {
		t.Errorf("uid = %q, want %q", ev.UID, b.UID)
	}
	if ev.Type != b.Title || ev.Title != b.Title {
		t.Errorf("type/title = %q/%q, want both %q", ev.Type, ev.Title, b.Title)
	}
	if ev.Location != "" {
		t.Errorf("location = %q, want empty string", ev.Location)
	}
	if ev.CustomInputs != nil {
		t.Errorf("customInputs = %v, want omitted", ev.CustomInputs)
	}
	if _, err := time.Parse(time.RFC3339, ev.StartTime); err != nil {
		t.Errorf("startTime %q is not RFC 3339: %v", ev.StartTime, err)
	}
	if _, err := time.Parse(time.RFC3339, ev.EndTime); err != nil {
		t.Errorf("endTime %q is not RFC 3339: %v", ev.EndTime, err)
	}
}

func TestComposeEventCarriesNonEmptyCustomInputs(t *testing.T) {
	svc := composeService()
	b := pendingBooking("b1", 50*time.Hour)
	b.CustomInputs = map[string]any{"phone": "+123456"}

	ev := svc.composeEvent(b)
	if ev.CustomInputs["phone"] != "+123456" {
		t.Errorf("customInputs = %v, want the booking's map", ev.CustomInputs)
	}
}

func TestComposeEventDestinationCalendarFallback(t *testing.T) {
	svc := composeService()

	b := pendingBooking("b1", 50*time.Hour)
	b.Organizer.DestinationCalendar = &models.DestinationCalendar{Integration: "google", ExternalID: "organizer-cal"}
	b.DestinationCalendar = nil

	ev := svc.composeEvent(b)
	if ev.DestinationCalendar == nil || ev.DestinationCalendar.ExternalID != "organizer-cal" {
		t.Errorf("destination = %+v, want organizer fallback", ev.DestinationCalendar)
	}

	b.DestinationCalendar = &models.DestinationCalendar{Integration: "caldav", ExternalID: "booking-cal"}
	ev = svc.composeEvent(b)
	if ev.DestinationCalendar == nil || ev.DestinationCalendar.ExternalID != "booking-cal" {
		t.Errorf("destination = %+v, want booking override", ev.DestinationCalendar)
	}
}
