package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"remindify/models"
	"remindify/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

type translateFunc = func(key string, args ...any) string

// DefaultNotificationSender emails the organizer and, when a push client and
// device token are available, mirrors a best-effort push notification. Only
// the email outcome decides success.
type DefaultNotificationSender struct {
	Mailer *SMTPMailer
	Push   *messaging.Client
}

func NewDefaultNotificationSender(m *SMTPMailer, push *messaging.Client) (*DefaultNotificationSender, error) {
	if m == nil {
		return nil, fmt.Errorf("notification sender initialization error: mailer is nil")
	}
	return &DefaultNotificationSender{Mailer: m, Push: push}, nil
}

// Send composes the localized reminder email from the event and delivers it
// to the organizer.
func (s *DefaultNotificationSender) Send(ctx context.Context, ev models.BookingReminderEvent) error {
	t := ev.Organizer.Language.Translate
	if t == nil {
		return fmt.Errorf("event for booking %s has no organizer translator", ev.UID)
	}

	subject := t("pending_subject", ev.Title)
	body := composeBody(ev, t)

	if err := s.Mailer.SendMail(ev.Organizer.Email, subject, body); err != nil {
		return err
	}

	s.mirrorPush(ctx, ev, t)
	return nil
}

// composeBody renders the plain-text email in the organizer's locale, with
// times shown in the organizer's timezone.
func composeBody(ev models.BookingReminderEvent, t translateFunc) string {
	start := formatInZone(ev.StartTime, ev.Organizer.TimeZone)
	end := formatInZone(ev.EndTime, ev.Organizer.TimeZone)

	var b strings.Builder
	b.WriteString(t("pending_greeting", ev.Organizer.Name))
	b.WriteString("\n\n")
	b.WriteString(t("pending_intro", ev.Title))
	b.WriteString("\n\n")
	b.WriteString(t("pending_when", start, end))
	b.WriteString("\n")
	if ev.Location != "" {
		b.WriteString(t("pending_where", ev.Location))
		b.WriteString("\n")
	}
	if ev.Description != "" {
		b.WriteString("\n")
		b.WriteString(ev.Description)
		b.WriteString("\n")
	}
	if len(ev.Attendees) > 0 {
		b.WriteString("\n")
		b.WriteString(t("pending_attendees"))
		b.WriteString("\n")
		for _, a := range ev.Attendees {
			b.WriteString(fmt.Sprintf("- %s (%s)\n", a.Name, a.Email))
		}
	}
	b.WriteString("\n")
	b.WriteString(t("pending_action"))
	b.WriteString("\n")
	return b.String()
}

// formatInZone renders an RFC 3339 instant in the given IANA zone, falling
// back to the raw value if either fails to parse.
func formatInZone(instant, zone string) string {
	ts, err := time.Parse(time.RFC3339, instant)
	if err != nil {
		return instant
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return ts.Format("Mon, 02 Jan 2006 15:04 MST")
	}
	return ts.In(loc).Format("Mon, 02 Jan 2006 15:04 MST")
}

// mirrorPush sends a best-effort FCM push to the organizer's device. Push
// failures are logged and never affect the send outcome.
func (s *DefaultNotificationSender) mirrorPush(ctx context.Context, ev models.BookingReminderEvent, t translateFunc) {
	if s.Push == nil || ev.Organizer.FCMToken == "" {
		return
	}

	msg := &messaging.Message{
		Token: ev.Organizer.FCMToken,
		Notification: &messaging.Notification{
			Title: t("pending_push_title"),
			Body:  t("pending_push_body", ev.Title),
		},
		Data: map[string]string{
			"uid":  ev.UID,
			"type": "booking_confirmation_pending",
		},
	}

	if _, err := s.Push.Send(ctx, msg); err != nil {
		utils.GetLogger().Warn("push mirror failed",
			zap.String("uid", ev.UID),
			zap.Error(err),
		)
	}
}
