package models

import "time"

// Booking statuses as stored in the bookings collection.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusRejected  = "rejected"
)

// Booking is the read-model projection of a booking request, with organizer
// and attendee contact data embedded. This service never mutates bookings.
type Booking struct {
	ID                  string               `bson:"id" json:"id"`
	UID                 string               `bson:"uid" json:"uid"` // correlation id shared with the booking pages
	Status              string               `bson:"status" json:"status"`
	Title               string               `bson:"title" json:"title"`
	Description         string               `bson:"description,omitempty" json:"description,omitempty"`
	Location            string               `bson:"location,omitempty" json:"location,omitempty"`
	CustomInputs        map[string]any       `bson:"customInputs,omitempty" json:"customInputs,omitempty"`
	CreatedAt           time.Time            `bson:"createdAt" json:"createdAt"`
	StartTime           time.Time            `bson:"startTime" json:"startTime"`
	EndTime             time.Time            `bson:"endTime" json:"endTime"`
	Organizer           Organizer            `bson:"organizer" json:"organizer"`
	Attendees           []Attendee           `bson:"attendees" json:"attendees"`
	DestinationCalendar *DestinationCalendar `bson:"destinationCalendar,omitempty" json:"destinationCalendar,omitempty"`
}

// Organizer is the booking owner who still has to confirm the request.
type Organizer struct {
	ID                  string               `bson:"id" json:"id"`
	Email               string               `bson:"email" json:"email"`
	Name                string               `bson:"name,omitempty" json:"name,omitempty"`
	Username            string               `bson:"username,omitempty" json:"username,omitempty"`
	Locale              string               `bson:"locale,omitempty" json:"locale,omitempty"`
	TimeZone            string               `bson:"timeZone,omitempty" json:"timeZone,omitempty"`
	FCMToken            string               `bson:"fcmToken,omitempty" json:"-"`
	DestinationCalendar *DestinationCalendar `bson:"destinationCalendar,omitempty" json:"destinationCalendar,omitempty"`
}

// DisplayName returns the organizer name, falling back to the username.
func (o Organizer) DisplayName() string {
	if o.Name != "" {
		return o.Name
	}
	return o.Username
}

// Attendee order is significant and must be preserved end to end.
type Attendee struct {
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	TimeZone string `bson:"timeZone" json:"timeZone"`
	Locale   string `bson:"locale,omitempty" json:"locale,omitempty"`
}

// DestinationCalendar points at the external calendar a booking lands in.
type DestinationCalendar struct {
	Integration string `bson:"integration" json:"integration"`
	ExternalID  string `bson:"externalId" json:"externalId"`
}
