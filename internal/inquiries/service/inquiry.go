package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"contour/internal/inquiries/validator"
	"contour/pkg/client"
	"contour/pkg/config"
	apperrors "contour/pkg/errors"
	"contour/pkg/events"
	"contour/pkg/locale"
	"contour/pkg/metrics"
	"contour/pkg/middleware"
	"contour/pkg/model"
	"contour/pkg/sanitizer"
	"contour/pkg/validation"
)

type InquiryService interface {
	SubmitContact(ctx context.Context, req *validator.ContactRequest) (*model.ContactMessage, error)
	Subscribe(ctx context.Context, req *validator.NewsletterRequest) (*model.Subscriber, error)
}

type ContactClient interface {
	Create(ctx context.Context, body any) (*model.ContactMessage, error)
}

type SubscriberClient interface {
	Create(ctx context.Context, body any) (*model.Subscriber, error)
}

type inquiryService struct {
	contact     ContactClient
	subscribers SubscriberClient
	publisher   events.Publisher
	validator   *validator.InquiryValidator
	metrics     *metrics.Metrics
	cfg         *config.Config

	now    func() time.Time
	region string
}

func NewInquiryService(
	contact ContactClient,
	subscribers SubscriberClient,
	publisher events.Publisher,
	validator *validator.InquiryValidator,
	m *metrics.Metrics,
	cfg *config.Config,
) InquiryService {
	return &inquiryService{
		contact:     contact,
		subscribers: subscribers,
		publisher:   publisher,
		validator:   validator,
		metrics:     m,
		cfg:         cfg,
		now:         cfg.Now,
		region:      locale.DetectRegion(cfg.ClinicTimezone),
	}
}

func (s *inquiryService) SubmitContact(ctx context.Context, req *validator.ContactRequest) (*model.ContactMessage, error) {
	if err := s.shape(req); err != nil {
		return nil, err
	}

	phone := sanitizer.FilterPhoneInput(req.Phone)
	details := invalidFields(map[string]model.ValidationResult{
		"name":    validation.ValidateRequired(model.FieldName, req.Name),
		"email":   validation.ValidateEmail(req.Email),
		"message": validation.ValidateMessage(req.Message, s.cfg.MessageMaxWords, true),
	})
	// Phone is optional on the contact form.
	if strings.TrimSpace(phone) != "" {
		if r := validation.ValidatePhone(phone); !r.Valid {
			details["phone"] = r
		}
	}
	if len(details) > 0 {
		s.cfg.Log.Warn("Contact form validation failed", "fields", len(details))
		return nil, apperrors.Validation("Invalid contact form", details)
	}

	msg := model.ContactMessage{
		Name:    sanitizer.NormalizeName(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
	}
	if phone = strings.TrimSpace(phone); phone != "" {
		msg.Phone = &phone
	}

	created, err := s.contact.Create(ctx, msg)
	s.metrics.UpstreamRequests.WithLabelValues("contact", metrics.Status(err)).Inc()
	if err != nil {
		s.cfg.Log.Error("Failed to forward contact message", "error", err)
		return nil, apperrors.BadGateway("Clinic API", err)
	}
	if created == nil {
		created = &msg
	}

	e164, country := events.EnrichPhone(phone, s.region)
	s.publish(ctx, events.Event{
		Type:          events.TypeContactSubmitted,
		Key:           sanitizer.NormalizeEmail(msg.Email),
		CorrelationID: middleware.RequestIDFromContext(ctx),
		OccurredAt:    s.now(),
		Payload: events.ContactSubmitted{
			MessageID:   created.ID,
			Name:        msg.Name,
			Email:       msg.Email,
			PhoneE164:   e164,
			Country:     country,
			WordCount:   validation.CountWords(msg.Message),
			SubmittedAt: s.now(),
		},
	})

	s.cfg.Log.Info("Contact message submitted", "message_id", created.ID)
	return created, nil
}

func (s *inquiryService) Subscribe(ctx context.Context, req *validator.NewsletterRequest) (*model.Subscriber, error) {
	if err := s.shape(req); err != nil {
		return nil, err
	}
	if r := validation.ValidateEmail(req.Email); !r.Valid {
		return nil, apperrors.Validation("Invalid newsletter signup", map[string]any{"email": r})
	}

	email := sanitizer.NormalizeEmail(req.Email)
	created, err := s.subscribers.Create(ctx, model.Subscriber{Email: email})
	s.metrics.UpstreamRequests.WithLabelValues("subscribers", metrics.Status(err)).Inc()
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
			return nil, apperrors.Conflict("Email is already subscribed")
		}
		s.cfg.Log.Error("Failed to forward newsletter signup", "error", err)
		return nil, apperrors.BadGateway("Clinic API", err)
	}
	if created == nil {
		created = &model.Subscriber{Email: email}
	}

	s.publish(ctx, events.Event{
		Type:          events.TypeNewsletterSubscribed,
		Key:           email,
		CorrelationID: middleware.RequestIDFromContext(ctx),
		OccurredAt:    s.now(),
		Payload: events.NewsletterSubscribed{
			SubscriberID: created.ID,
			Email:        email,
			SubscribedAt: s.now(),
		},
	})

	s.cfg.Log.Info("Newsletter subscription created", "subscriber_id", created.ID)
	return created, nil
}

func (s *inquiryService) shape(req any) error {
	if err := s.validator.ValidateShape(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperrors.Validation("Invalid request", verrs.Details())
		}
		return apperrors.Validation("Invalid request", map[string]any{"error": err.Error()})
	}
	return nil
}

// publish never fails the request; the clinic API already has the data.
func (s *inquiryService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}

func invalidFields(results map[string]model.ValidationResult) map[string]any {
	details := make(map[string]any)
	for field, r := range results {
		if !r.Valid {
			details[field] = r
		}
	}
	return details
}
