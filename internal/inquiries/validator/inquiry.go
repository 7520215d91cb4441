package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"contour/pkg/logger"

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

func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

type ContactRequest struct {
	Name    string `json:"name" validate:"max=200"`
	Email   string `json:"email" validate:"max=320"`
	Phone   string `json:"phone" validate:"max=64"`
	Message string `json:"message" validate:"max=20000"`
}

type NewsletterRequest struct {
	Email string `json:"email" validate:"max=320"`
}

type InquiryValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewInquiryValidator(log *logger.Logger) *InquiryValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &InquiryValidator{
		validate: v,
		logger:   log,
	}
}

// ValidateShape checks sizes only. Content rules live in pkg/validation so the
// messages match the booking form's.
func (v *InquiryValidator) ValidateShape(req any) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			var out ValidationErrors
			for _, fe := range validationErrs {
				msg := fe.Error()
				if fe.Tag() == "max" {
					msg = fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
				}
				out = append(out, ValidationError{Field: fe.Field(), Message: msg})
			}
			return out
		}
		return err
	}
	return nil
}
