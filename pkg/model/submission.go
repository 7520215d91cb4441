package model

import "time"

// Submission records a booking that was accepted by the clinic API, keyed by the
// idempotency key (or draft ID) it was submitted under. It is used only to answer
// repeated submits without forwarding twice.
type Submission struct {
	Key           string         `json:"key" bson:"_id"`
	DraftID       string         `json:"draft_id,omitempty" bson:"draft_id,omitempty"`
	Payload       BookingPayload `json:"payload" bson:"payload"`
	AppointmentID string         `json:"appointment_id,omitempty" bson:"appointment_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at" bson:"created_at"`
}
