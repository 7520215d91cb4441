// Package form implements the booking form's draft controller: it applies field
// edits, keeps the slot list in step with the chosen date, and decides when the
// draft may be submitted.
//
// A Controller is owned by one visitor session and is not safe for concurrent use.
package form

import (
	"errors"
	"strings"
	"time"

	"contour/pkg/model"
	"contour/pkg/sanitizer"
	"contour/pkg/slots"
	"contour/pkg/validation"
)

var ErrPreconditionViolation = errors.New("booking draft is not submittable")

type Option func(*Controller)

// WithClock sets the source of "now". It should return times in the clinic's
// location, since slot filtering compares wall-clock values.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

func WithMaxWords(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxWords = n
		}
	}
}

func WithMessageRequired(required bool) Option {
	return func(c *Controller) {
		c.messageRequired = required
	}
}

type Controller struct {
	draft   model.BookingDraft
	results map[model.Field]model.ValidationResult
	slots   []model.TimeSlot

	now             func() time.Time
	maxWords        int
	messageRequired bool
}

func New(opts ...Option) *Controller {
	c := &Controller{
		results:  make(map[model.Field]model.ValidationResult),
		slots:    []model.TimeSlot{},
		now:      time.Now,
		maxWords: validation.DefaultMaxWords,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnFieldChange applies one edit and returns the field's inline result. Edits
// to a submitted draft are ignored.
func (c *Controller) OnFieldChange(field model.Field, raw string) model.ValidationResult {
	if c.draft.Submitted {
		return model.Invalid(model.ReasonPreconditionViolation, "This booking has already been submitted")
	}
	if !field.IsValid() {
		return model.Invalid(model.ReasonInvalidFormat, "Unknown field")
	}

	now := c.now()
	value := raw

	switch field {
	case model.FieldPhone:
		value = sanitizer.FilterPhoneInput(raw)

	case model.FieldMessage:
		value = sanitizer.TruncateWords(raw, c.maxWords)

	case model.FieldDate:
		value = strings.TrimSpace(raw)
		c.draft.Time = ""
		delete(c.results, model.FieldTime)
		c.slots = c.slotsFor(value, now)

	case model.FieldTime:
		value = strings.TrimSpace(raw)
		c.slots = c.slotsFor(c.draft.Date, now)
	}

	result := ValidateField(field, value, c.draft.Date, now, c.maxWords, c.messageRequired)

	if field == model.FieldTime && !result.Valid {
		value = ""
	}

	c.draft.Set(field, value)
	c.draft.UpdatedAt = now
	c.results[field] = result
	return result
}

func (c *Controller) slotsFor(date string, now time.Time) []model.TimeSlot {
	if _, err := time.Parse(slots.DateLayout, date); err != nil {
		return []model.TimeSlot{}
	}
	return slots.Generate(date, now)
}

// Results returns the inline result of every field edited so far.
func (c *Controller) Results() map[model.Field]model.ValidationResult {
	out := make(map[model.Field]model.ValidationResult, len(c.results))
	for k, v := range c.results {
		out[k] = v
	}
	return out
}

// IsSubmittable re-checks the whole draft rather than trusting earlier results.
func (c *Controller) IsSubmittable() bool {
	if c.draft.Submitted {
		return false
	}

	d := c.draft
	now := c.now()
	if !validation.ValidateEmail(d.Email).Valid || !validation.ValidatePhone(d.Phone).Valid {
		return false
	}
	for _, v := range []string{d.Name, d.Date, d.Time, d.Service} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	if !validation.ValidateDate(d.Date, now).Valid || !validateTime(d.Time, d.Date, now).Valid {
		return false
	}
	if !validation.ValidateService(d.Service).Valid {
		return false
	}
	return validation.ValidateMessage(d.Message, c.maxWords, c.messageRequired).Valid
}

func (c *Controller) State() State {
	switch {
	case c.draft.Submitted:
		return StateSubmitted
	case c.IsSubmittable():
		return StateSubmittable
	default:
		return StateEditing
	}
}

// BuildPayload returns ErrPreconditionViolation when IsSubmittable is false.
func (c *Controller) BuildPayload() (model.BookingPayload, error) {
	if !c.IsSubmittable() {
		return model.BookingPayload{}, ErrPreconditionViolation
	}

	d := c.draft
	svc, _ := model.LookupService(strings.TrimSpace(d.Service))

	payload := model.BookingPayload{
		Name:        strings.TrimSpace(d.Name),
		Email:       strings.TrimSpace(d.Email),
		Phone:       strings.TrimSpace(d.Phone),
		ServiceName: svc.Name,
		Date:        strings.TrimSpace(d.Date),
		Time:        strings.TrimSpace(d.Time),
	}
	if msg := strings.TrimSpace(d.Message); msg != "" {
		payload.Message = &msg
	}
	return payload, nil
}

func (c *Controller) MarkSubmitted() {
	c.draft.Submitted = true
	c.draft.UpdatedAt = c.now()
}

// Reset discards the draft and starts a new one in Editing.
func (c *Controller) Reset() {
	c.draft = model.BookingDraft{}
	c.results = make(map[model.Field]model.ValidationResult)
	c.slots = []model.TimeSlot{}
}

func (c *Controller) Draft() model.BookingDraft {
	return c.draft
}

// Slots returns the slot list for the current date as of the last date or time
// edit.
func (c *Controller) Slots() []model.TimeSlot {
	out := make([]model.TimeSlot, len(c.slots))
	copy(out, c.slots)
	return out
}

// Restore loads a previously saved draft and recomputes results and slots for
// every non-empty field. A stored time that has since passed is kept in the draft
// but reported as SlotUnavailable.
func (c *Controller) Restore(d model.BookingDraft) {
	c.draft = d
	c.results = make(map[model.Field]model.ValidationResult)

	now := c.now()
	c.slots = c.slotsFor(d.Date, now)
	for _, f := range model.BookingFields {
		v := d.Get(f)
		if v == "" {
			continue
		}
		c.results[f] = ValidateField(f, v, d.Date, now, c.maxWords, c.messageRequired)
	}
}
