package events

import (
	"context"
	"time"

	"contour/pkg/locale"
	"contour/pkg/model"
	"contour/pkg/sanitizer"
)

const (
	TypeBookingSubmitted     = "booking.submitted"
	TypeContactSubmitted     = "contact.submitted"
	TypeNewsletterSubscribed = "newsletter.subscribed"

	SchemaVersion = "1"
	Source        = "contour"
)

// Event is a domain fact to be published. Key orders events of one entity on
// the same partition.
type Event struct {
	Type          string
	Key           string
	CorrelationID string
	OccurredAt    time.Time
	Payload       any
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type BookingSubmitted struct {
	DraftID        string    `json:"draft_id,omitempty"`
	AppointmentID  string    `json:"appointment_id,omitempty"`
	IdempotencyKey string    `json:"idempotency_key"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	PhoneE164      string    `json:"phone_e164,omitempty"`
	Country        string    `json:"country,omitempty"`
	ServiceName    string    `json:"service_name"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Message        *string   `json:"message"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

type ContactSubmitted struct {
	MessageID   string    `json:"message_id,omitempty"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneE164   string    `json:"phone_e164,omitempty"`
	Country     string    `json:"country,omitempty"`
	WordCount   int       `json:"word_count"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type NewsletterSubscribed struct {
	SubscriberID string    `json:"subscriber_id,omitempty"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// EnrichPhone returns the E.164 form of phone and its country code, trying the
// clinic's region first. Both are empty when the number cannot be parsed.
func EnrichPhone(phone, region string) (e164, country string) {
	e164 = sanitizer.NormalizePhone(phone, locale.PhoneRegions(region)...)
	if e164 == "" {
		return "", ""
	}
	if c := locale.InferCountryFromPhone(e164); c != nil {
		country = c.Code
	}
	return e164, country
}

func NewBookingSubmitted(p model.BookingPayload, draftID, appointmentID, key, region, correlationID string, at time.Time) Event {
	e164, country := EnrichPhone(p.Phone, region)
	return Event{
		Type:          TypeBookingSubmitted,
		Key:           key,
		CorrelationID: correlationID,
		OccurredAt:    at,
		Payload: BookingSubmitted{
			DraftID:        draftID,
			AppointmentID:  appointmentID,
			IdempotencyKey: key,
			Name:           p.Name,
			Email:          p.Email,
			Phone:          p.Phone,
			PhoneE164:      e164,
			Country:        country,
			ServiceName:    p.ServiceName,
			Date:           p.Date,
			Time:           p.Time,
			Message:        p.Message,
			SubmittedAt:    at,
		},
	}
}
