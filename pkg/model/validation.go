package model

type Reason string

const (
	ReasonNone                  Reason = ""
	ReasonEmptyField            Reason = "EmptyField"
	ReasonInvalidFormat         Reason = "InvalidFormat"
	ReasonTooShort              Reason = "TooShort"
	ReasonTooLong               Reason = "TooLong"
	ReasonInvalidCharacters     Reason = "InvalidCharacters"
	ReasonTooManyWords          Reason = "TooManyWords"
	ReasonPreconditionViolation Reason = "PreconditionViolation"
	ReasonSlotUnavailable       Reason = "SlotUnavailable"
	ReasonDateInPast            Reason = "DateInPast"
	ReasonUnknownService        Reason = "UnknownService"
)

// ValidationResult describes one field. Message is meant to be shown inline next
// to the field, so it is empty when the field is valid.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Reason  Reason `json:"reason,omitempty"`
	Message string `json:"message"`
}

func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

func Invalid(reason Reason, message string) ValidationResult {
	return ValidationResult{
		Valid:   false,
		Reason:  reason,
		Message: message,
	}
}
