package form

import (
	"time"

	"contour/pkg/model"
	"contour/pkg/slots"
	"contour/pkg/validation"
)

// ValidateField checks a single value the way the controller would, without a
// draft. A time is checked against the slots of date as of now.
func ValidateField(field model.Field, value, date string, now time.Time, maxWords int, messageRequired bool) model.ValidationResult {
	switch field {
	case model.FieldName:
		return validation.ValidateRequired(field, value)
	case model.FieldEmail:
		return validation.ValidateEmail(value)
	case model.FieldPhone:
		return validation.ValidatePhone(value)
	case model.FieldDate:
		return validation.ValidateDate(value, now)
	case model.FieldTime:
		return validateTime(value, date, now)
	case model.FieldService:
		return validation.ValidateService(value)
	case model.FieldMessage:
		return validation.ValidateMessage(value, maxWords, messageRequired)
	}
	return model.Invalid(model.ReasonInvalidFormat, "Unknown field")
}

func validateTime(value, date string, now time.Time) model.ValidationResult {
	if value == "" {
		return model.Invalid(model.ReasonEmptyField, "Please select a time")
	}
	if date == "" {
		return model.Invalid(model.ReasonSlotUnavailable, "Please choose a date first")
	}
	if !slots.Contains(slots.Generate(date, now), value) {
		return model.Invalid(model.ReasonSlotUnavailable, "This time is no longer available")
	}
	return model.Valid()
}
