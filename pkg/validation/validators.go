package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"contour/pkg/model"
)

const DefaultMaxWords = 500

var (
	reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	dateLayout = "2006-01-02"
)

func ValidateEmail(email string) model.ValidationResult {
	email = strings.TrimSpace(email)
	if email == "" {
		return model.Invalid(model.ReasonEmptyField, "Email is required")
	}
	// \s in RE2 is ASCII only.
	if strings.IndexFunc(email, unicode.IsSpace) >= 0 || !reEmail.MatchString(email) {
		return model.Invalid(model.ReasonInvalidFormat, "Please enter a valid email address")
	}
	return model.Valid()
}

// ValidatePhone counts digits only, so "+1 (555) 123-4567" has 11.
func ValidatePhone(phone string) model.ValidationResult {
	if strings.TrimSpace(phone) == "" {
		return model.Invalid(model.ReasonEmptyField, "Phone number is required")
	}

	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}

	if digits < 10 {
		return model.Invalid(model.ReasonTooShort, "Phone number must be at least 10 digits")
	}
	if digits > 15 {
		return model.Invalid(model.ReasonTooLong, "Phone number cannot exceed 15 digits")
	}
	for _, r := range phone {
		if !IsPhoneRune(r) {
			return model.Invalid(model.ReasonInvalidCharacters, "Phone number can only contain digits, spaces, +, - and parentheses")
		}
	}
	return model.Valid()
}

// IsPhoneRune reports whether r may appear in a phone field.
func IsPhoneRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r == '+', r == '-', r == '(', r == ')':
		return true
	case unicode.IsSpace(r):
		return true
	}
	return false
}

// ValidateMessage checks the word count. A maxWords of zero or less means
// DefaultMaxWords.
func ValidateMessage(message string, maxWords int, required bool) model.ValidationResult {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	count := CountWords(message)
	if count == 0 {
		if required {
			return model.Invalid(model.ReasonEmptyField, "Message is required")
		}
		return model.Valid()
	}
	if count > maxWords {
		return model.Invalid(model.ReasonTooManyWords, "Message cannot exceed "+strconv.Itoa(maxWords)+" words")
	}
	return model.Valid()
}

func CountWords(s string) int {
	return len(strings.Fields(s))
}

func ValidateRequired(field model.Field, value string) model.ValidationResult {
	if strings.TrimSpace(value) == "" {
		return model.Invalid(model.ReasonEmptyField, fieldLabel(field)+" is required")
	}
	return model.Valid()
}

// ValidateDate rejects dates before now's calendar day. now should already be in
// the clinic's location.
func ValidateDate(date string, now time.Time) model.ValidationResult {
	date = strings.TrimSpace(date)
	if date == "" {
		return model.Invalid(model.ReasonEmptyField, "Date is required")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return model.Invalid(model.ReasonInvalidFormat, "Date must be in YYYY-MM-DD format")
	}
	// Layout is zero padded, so string order is date order.
	if date < now.Format(dateLayout) {
		return model.Invalid(model.ReasonDateInPast, "Please choose today or a later date")
	}
	return model.Valid()
}

func ValidateService(id string) model.ValidationResult {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Invalid(model.ReasonEmptyField, "Please select a service")
	}
	if _, ok := model.LookupService(id); !ok {
		return model.Invalid(model.ReasonUnknownService, "Please select a service from the list")
	}
	return model.Valid()
}

func fieldLabel(field model.Field) string {
	s := string(field)
	if s == "" {
		return "Field"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
