package service

import (
	"context"
	"errors"
	"time"

	bookingserrors "contour/internal/bookings/errors"
	"contour/internal/bookings/form"
	"contour/internal/bookings/repository"
	"contour/internal/bookings/validator"
	"contour/pkg/config"
	apperrors "contour/pkg/errors"
	"contour/pkg/events"
	"contour/pkg/locale"
	"contour/pkg/metrics"
	"contour/pkg/middleware"
	"contour/pkg/model"
	"contour/pkg/slots"

	"github.com/google/uuid"
)

const (
	OutcomeAccepted      = "accepted"
	OutcomeReplayed      = "replayed"
	OutcomeRejected      = "rejected"
	OutcomeUpstreamError = "upstream_error"

	upstreamResource = "appointments"
)

type BookingService interface {
	CreateDraft(ctx context.Context) (*DraftView, error)
	GetDraft(ctx context.Context, id string) (*DraftView, error)
	UpdateField(ctx context.Context, id string, req *validator.FieldEditRequest) (*FieldUpdate, error)
	Slots(ctx context.Context, date string) ([]model.TimeSlot, error)
	DraftSlots(ctx context.Context, id string) ([]model.TimeSlot, error)
	Submit(ctx context.Context, id, idempotencyKey string) (*SubmitResult, error)
	Cancel(ctx context.Context, id string) error
	SubmitOnce(ctx context.Context, req *validator.BookingRequest, idempotencyKey string) (*SubmitResult, error)
	Validate(ctx context.Context, req *validator.FieldEditRequest) (model.ValidationResult, error)
	Services() []model.Service
}

// AppointmentClient creates appointments in the clinic API.
type AppointmentClient interface {
	Create(ctx context.Context, body any) (*model.Appointment, error)
}

type Option func(*bookingService)

// WithClock replaces the config clock; tests pin "now" with it.
func WithClock(now func() time.Time) Option {
	return func(s *bookingService) {
		if now != nil {
			s.now = now
		}
	}
}

type bookingService struct {
	drafts      repository.DraftRepository
	submissions repository.SubmissionRepository
	bookings    AppointmentClient
	publisher   events.Publisher
	validator   *validator.BookingValidator
	metrics     *metrics.Metrics
	cfg         *config.Config

	locks  *keyedMutex
	now    func() time.Time
	region string
}

func NewBookingService(
	drafts repository.DraftRepository,
	submissions repository.SubmissionRepository,
	bookings AppointmentClient,
	publisher events.Publisher,
	validator *validator.BookingValidator,
	m *metrics.Metrics,
	cfg *config.Config,
	opts ...Option,
) BookingService {
	s := &bookingService{
		drafts:      drafts,
		submissions: submissions,
		bookings:    bookings,
		publisher:   publisher,
		validator:   validator,
		metrics:     m,
		cfg:         cfg,
		locks:       newKeyedMutex(),
		now:         cfg.Now,
		region:      locale.DetectRegion(cfg.ClinicTimezone),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *bookingService) controller() *form.Controller {
	return form.New(
		form.WithClock(s.now),
		form.WithMaxWords(s.cfg.MessageMaxWords),
		form.WithMessageRequired(s.cfg.MessageRequired),
	)
}

func (s *bookingService) CreateDraft(ctx context.Context) (*DraftView, error) {
	draft := &model.BookingDraft{}
	if err := s.drafts.Create(ctx, draft); err != nil {
		s.cfg.Log.Error("Failed to create booking draft", "error", err)
		return nil, apperrors.Internal("Failed to create booking draft", err)
	}
	s.metrics.DraftsCreated.Inc()

	s.cfg.Log.Info("Booking draft created", "draft_id", draft.ID)

	c := s.controller()
	c.Restore(*draft)
	return newDraftView(c), nil
}

func (s *bookingService) GetDraft(ctx context.Context, id string) (*DraftView, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return newDraftView(c), nil
}

func (s *bookingService) UpdateField(ctx context.Context, id string, req *validator.FieldEditRequest) (*FieldUpdate, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.State().IsTerminal() {
		return nil, apperrors.Conflict("Booking draft has already been submitted")
	}

	field := model.Field(req.Field)
	result := c.OnFieldChange(field, req.Value)
	s.metrics.FieldValidations.WithLabelValues(string(field), reasonLabel(result)).Inc()

	draft := c.Draft()
	if err := s.drafts.Save(ctx, &draft); err != nil {
		return nil, s.draftError(err, id, "Failed to save booking draft")
	}

	s.cfg.Log.Debug("Booking draft field updated",
		"draft_id", id,
		"field", field,
		"valid", result.Valid,
		"reason", result.Reason,
	)

	return &FieldUpdate{
		Field:     field,
		Result:    result,
		DraftView: *newDraftView(c),
	}, nil
}

func (s *bookingService) Slots(_ context.Context, date string) ([]model.TimeSlot, error) {
	if _, err := time.Parse(slots.DateLayout, date); err != nil {
		return nil, apperrors.InvalidInput("date must be in YYYY-MM-DD format")
	}
	return slots.Generate(date, s.now()), nil
}

func (s *bookingService) DraftSlots(ctx context.Context, id string) ([]model.TimeSlot, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.Slots(), nil
}

// Submit forwards a submittable draft once per idempotency key. The key defaults
// to the draft ID, so a retried submit of the same draft is answered from the
// ledger even after the draft itself is gone.
func (s *bookingService) Submit(ctx context.Context, id, idempotencyKey string) (*SubmitResult, error) {
	key := idempotencyKey
	if key == "" {
		key = "draft:" + id
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	if res, ok := s.replay(ctx, key); ok {
		s.deleteDraft(ctx, id)
		return res, nil
	}

	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := c.BuildPayload()
	if err != nil {
		s.metrics.SubmissionsTotal.WithLabelValues(OutcomeRejected).Inc()
		s.cfg.Log.Warn("Booking draft is not submittable", "draft_id", id)
		return nil, s.notSubmittable(c)
	}

	appointmentID, err := s.forward(ctx, payload, id, key)
	if err != nil {
		// The draft is left as it was so the visitor can retry.
		return nil, err
	}

	c.MarkSubmitted()
	s.deleteDraft(ctx, id)

	return &SubmitResult{
		AppointmentID: appointmentID,
		Payload:       payload,
		State:         c.State(),
	}, nil
}

func (s *bookingService) Cancel(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.drafts.Delete(ctx, id); err != nil {
		return s.draftError(err, id, "Failed to delete booking draft")
	}
	s.cfg.Log.Info("Booking draft cancelled", "draft_id", id)
	return nil
}

// SubmitOnce runs a whole form body through a throwaway controller and forwards
// it when every field passes.
func (s *bookingService) SubmitOnce(ctx context.Context, req *validator.BookingRequest, idempotencyKey string) (*SubmitResult, error) {
	if err := s.validator.ValidateBooking(req); err != nil {
		return nil, validationError(err, "Invalid booking request")
	}

	if idempotencyKey != "" {
		if res, ok := s.replay(ctx, idempotencyKey); ok {
			return res, nil
		}
	}

	c := s.controller()
	fields := req.Fields()
	for _, f := range model.BookingFields {
		result := c.OnFieldChange(f, fields[f])
		s.metrics.FieldValidations.WithLabelValues(string(f), reasonLabel(result)).Inc()
	}

	payload, err := c.BuildPayload()
	if err != nil {
		s.metrics.SubmissionsTotal.WithLabelValues(OutcomeRejected).Inc()
		return nil, s.notSubmittable(c)
	}

	key := idempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	appointmentID, err := s.forward(ctx, payload, "", key)
	if err != nil {
		return nil, err
	}
	c.MarkSubmitted()

	return &SubmitResult{
		AppointmentID: appointmentID,
		Payload:       payload,
		State:         c.State(),
	}, nil
}

// Validate checks one value without touching any draft. For a time, req.Date
// supplies the day whose slots it must belong to.
func (s *bookingService) Validate(_ context.Context, req *validator.FieldEditRequest) (model.ValidationResult, error) {
	if err := s.validateRequest(req); err != nil {
		return model.ValidationResult{}, err
	}

	c := s.controller()
	field := model.Field(req.Field)
	if field == model.FieldTime && req.Date != "" {
		c.OnFieldChange(model.FieldDate, req.Date)
	}
	result := c.OnFieldChange(field, req.Value)
	s.metrics.FieldValidations.WithLabelValues(string(field), reasonLabel(result)).Inc()
	return result, nil
}

func (s *bookingService) Services() []model.Service {
	out := make([]model.Service, len(model.ServiceCatalog))
	copy(out, model.ServiceCatalog)
	return out
}

// --- Helpers ---

func (s *bookingService) load(ctx context.Context, id string) (*form.Controller, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking draft ID cannot be empty")
	}
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, s.draftError(err, id, "Failed to retrieve booking draft")
	}
	c := s.controller()
	c.Restore(*draft)
	return c, nil
}

func (s *bookingService) draftError(err error, id, msg string) error {
	switch {
	case errors.Is(err, bookingserrors.ErrDraftNotFound):
		return apperrors.NotFoundWithID("Booking draft", id)
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking draft ID format")
	}
	s.cfg.Log.Error(msg, "draft_id", id, "error", err)
	return apperrors.Internal(msg, err)
}

func (s *bookingService) validateRequest(req *validator.FieldEditRequest) error {
	if err := s.validator.ValidateFieldEdit(req); err != nil {
		s.cfg.Log.Warn("Field edit validation failed", "error", err)
		return validationError(err, "Invalid field edit")
	}
	return nil
}

func (s *bookingService) replay(ctx context.Context, key string) (*SubmitResult, bool) {
	sub, err := s.submissions.Find(ctx, key)
	if err != nil {
		if !errors.Is(err, bookingserrors.ErrSubmissionNotFound) {
			// Without the ledger we cannot tell; fall through and let the
			// clinic API see the booking.
			s.cfg.Log.Error("Failed to read submission ledger", "key", key, "error", err)
		}
		return nil, false
	}

	s.metrics.SubmissionsTotal.WithLabelValues(OutcomeReplayed).Inc()
	s.cfg.Log.Info("Booking submission replayed", "key", key, "appointment_id", sub.AppointmentID)
	return &SubmitResult{
		AppointmentID: sub.AppointmentID,
		Payload:       sub.Payload,
		State:         form.StateSubmitted,
		Replayed:      true,
	}, true
}

// forward sends payload to the clinic API, records it in the ledger and
// publishes the event. Only the clinic API call can fail the submission.
func (s *bookingService) forward(ctx context.Context, payload model.BookingPayload, draftID, key string) (string, error) {
	start := time.Now()
	appt, err := s.bookings.Create(ctx, payload)
	s.metrics.SubmissionLatency.Observe(time.Since(start).Seconds())
	s.metrics.UpstreamRequests.WithLabelValues(upstreamResource, metrics.Status(err)).Inc()
	if err != nil {
		s.metrics.SubmissionsTotal.WithLabelValues(OutcomeUpstreamError).Inc()
		s.cfg.Log.Error("Failed to forward booking to clinic API",
			"draft_id", draftID,
			"key", key,
			"error", err,
		)
		return "", apperrors.BadGateway("Clinic API", err)
	}

	var appointmentID string
	if appt != nil {
		appointmentID = appt.ID
	}

	now := s.now()
	sub := &model.Submission{
		Key:           key,
		DraftID:       draftID,
		Payload:       payload,
		AppointmentID: appointmentID,
		CreatedAt:     now.UTC(),
	}
	if err := s.submissions.Save(ctx, sub); err != nil {
		if errors.Is(err, bookingserrors.ErrDuplicateSubmission) {
			s.cfg.Log.Warn("Submission already recorded", "key", key)
		} else {
			s.cfg.Log.Error("Failed to record submission", "key", key, "error", err)
		}
	}

	event := events.NewBookingSubmitted(payload, draftID, appointmentID, key, s.region, middleware.RequestIDFromContext(ctx), now)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"event_type", event.Type,
			"key", key,
			"error", err,
		)
	}

	s.metrics.SubmissionsTotal.WithLabelValues(OutcomeAccepted).Inc()
	s.cfg.Log.Info("Booking submitted successfully",
		"draft_id", draftID,
		"appointment_id", appointmentID,
		"service", payload.ServiceName,
		"date", payload.Date,
		"time", payload.Time,
	)
	return appointmentID, nil
}

func (s *bookingService) deleteDraft(ctx context.Context, id string) {
	if err := s.drafts.Delete(ctx, id); err != nil && !errors.Is(err, bookingserrors.ErrDraftNotFound) {
		s.cfg.Log.Warn("Failed to delete submitted booking draft", "draft_id", id, "error", err)
	}
}

// notSubmittable lists every field that currently blocks submission.
func (s *bookingService) notSubmittable(c *form.Controller) error {
	d := c.Draft()
	details := make(map[string]any)
	now := s.now()
	results := c.Results()
	for _, f := range model.BookingFields {
		r, ok := results[f]
		if !ok {
			r = form.ValidateField(f, d.Get(f), d.Date, now, s.cfg.MessageMaxWords, s.cfg.MessageRequired)
		}
		if !r.Valid {
			details[string(f)] = r
		}
	}
	return apperrors.PreconditionFailed("Booking is not ready to submit", details)
}

func validationError(err error, msg string) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation(msg, verrs.Details())
	}
	return apperrors.Validation(msg, map[string]any{"error": err.Error()})
}

func reasonLabel(r model.ValidationResult) string {
	if r.Valid {
		return "valid"
	}
	return string(r.Reason)
}
