package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"contour/pkg/logger"
	"contour/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Details renders the errors as an AppError details map keyed by field.
func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

// FieldEditRequest is the body of a single field edit or a stateless field check.
type FieldEditRequest struct {
	Field string `json:"field" validate:"required,booking_field"`
	Value string `json:"value" validate:"max=20000"`
	// Date gives context for a stateless time check.
	Date string `json:"date,omitempty"`
}

// BookingRequest is the one-shot form body. It only checks shape; the form
// controller applies the field rules.
type BookingRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,max=320"`
	Phone   string `json:"phone" validate:"required,max=64"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Time    string `json:"time" validate:"required,datetime=15:04"`
	Service string `json:"service" validate:"required,service_id"`
	Message string `json:"message" validate:"max=20000"`
}

func (r BookingRequest) Fields() map[model.Field]string {
	return map[model.Field]string{
		model.FieldName:    r.Name,
		model.FieldEmail:   r.Email,
		model.FieldPhone:   r.Phone,
		model.FieldDate:    r.Date,
		model.FieldTime:    r.Time,
		model.FieldService: r.Service,
		model.FieldMessage: r.Message,
	}
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("booking_field", validateBookingField); err != nil {
		log.Fatal("Failed to register 'booking_field' validator",
			"error", err,
		)
	}
	if err := v.RegisterValidation("service_id", validateServiceID); err != nil {
		log.Fatal("Failed to register 'service_id' validator",
			"error", err,
		)
	}

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

func validateBookingField(fl validator.FieldLevel) bool {
	return model.Field(fl.Field().String()).IsValid()
}

func validateServiceID(fl validator.FieldLevel) bool {
	_, ok := model.LookupService(strings.TrimSpace(fl.Field().String()))
	return ok
}

func (v *BookingValidator) ValidateFieldEdit(req *FieldEditRequest) error {
	return v.validateStruct(req)
}

func (v *BookingValidator) ValidateBooking(req *BookingRequest) error {
	return v.validateStruct(req)
}

func (v *BookingValidator) validateStruct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "datetime":
			message = fmt.Sprintf("%s must match the layout %s", err.Field(), err.Param())
		case "booking_field":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), fieldNames())
		case "service_id":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), strings.Join(model.ServiceIDs(), ", "))
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

func fieldNames() string {
	names := make([]string, 0, len(model.BookingFields))
	for _, f := range model.BookingFields {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
