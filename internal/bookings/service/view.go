package service

import (
	"contour/internal/bookings/form"
	"contour/pkg/model"
)

// DraftView is what clients see of a draft after every operation.
type DraftView struct {
	Draft       model.BookingDraft                     `json:"draft"`
	State       form.State                             `json:"state"`
	Submittable bool                                   `json:"submittable"`
	Results     map[model.Field]model.ValidationResult `json:"results"`
	Slots       []model.TimeSlot                       `json:"slots"`
}

type FieldUpdate struct {
	Field  model.Field            `json:"field"`
	Result model.ValidationResult `json:"result"`
	DraftView
}

type SubmitResult struct {
	AppointmentID string               `json:"appointment_id,omitempty"`
	Payload       model.BookingPayload `json:"payload"`
	State         form.State           `json:"state"`
	// Replayed is set when the idempotency key had already been submitted and
	// nothing was forwarded this time.
	Replayed bool `json:"replayed"`
}

func newDraftView(c *form.Controller) *DraftView {
	return &DraftView{
		Draft:       c.Draft(),
		State:       c.State(),
		Submittable: c.IsSubmittable(),
		Results:     c.Results(),
		Slots:       c.Slots(),
	}
}
