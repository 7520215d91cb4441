package validation

import (
	"strings"
	"testing"
	"time"

	"contour/pkg/model"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		wantValid  bool
		wantReason model.Reason
	}{
		{name: "valid", email: "jane@example.com", wantValid: true},
		{name: "valid with subdomain", email: "jane.doe@mail.example.co.uk", wantValid: true},
		{name: "surrounding spaces are ignored", email: "  jane@example.com ", wantValid: true},
		{name: "empty", email: "", wantReason: model.ReasonEmptyField},
		{name: "only spaces", email: "   ", wantReason: model.ReasonEmptyField},
		{name: "missing at", email: "jane.example.com", wantReason: model.ReasonInvalidFormat},
		{name: "missing dot after at", email: "jane@example", wantReason: model.ReasonInvalidFormat},
		{name: "space inside", email: "jane doe@example.com", wantReason: model.ReasonInvalidFormat},
		{name: "two ats", email: "jane@@example.com", wantReason: model.ReasonInvalidFormat},
		{name: "no-break space in local part", email: "jane\u00a0doe@example.com", wantReason: model.ReasonInvalidFormat},
		{name: "em space in domain", email: "jane@exa\u2003mple.com", wantReason: model.ReasonInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateEmail(tt.email)
			if got.Valid != tt.wantValid {
				t.Fatalf("ValidateEmail(%q).Valid = %v, want %v", tt.email, got.Valid, tt.wantValid)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("ValidateEmail(%q).Reason = %q, want %q", tt.email, got.Reason, tt.wantReason)
			}
			if !got.Valid && got.Message == "" {
				t.Error("invalid result has no message")
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name       string
		phone      string
		wantValid  bool
		wantReason model.Reason
	}{
		{name: "ten digits", phone: "5551234567", wantValid: true},
		{name: "formatted us number", phone: "+1 (555) 123-4567", wantValid: true},
		{name: "fifteen digits", phone: "+123456789012345", wantValid: true},
		{name: "empty", phone: "", wantReason: model.ReasonEmptyField},
		{name: "whitespace", phone: "  ", wantReason: model.ReasonEmptyField},
		{name: "nine digits", phone: "555123456", wantReason: model.ReasonTooShort},
		{name: "sixteen digits", phone: "1234567890123456", wantReason: model.ReasonTooLong},
		{name: "letters with enough digits", phone: "555-123-4567 ext", wantReason: model.ReasonInvalidCharacters},
		{name: "short wins over characters", phone: "abc123", wantReason: model.ReasonTooShort},
		{name: "dot separator", phone: "555.123.4567", wantReason: model.ReasonInvalidCharacters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePhone(tt.phone)
			if got.Valid != tt.wantValid {
				t.Fatalf("ValidatePhone(%q).Valid = %v, want %v", tt.phone, got.Valid, tt.wantValid)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("ValidatePhone(%q).Reason = %q, want %q", tt.phone, got.Reason, tt.wantReason)
			}
		})
	}
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestValidateMessage(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		maxWords   int
		required   bool
		wantValid  bool
		wantReason model.Reason
	}{
		{name: "optional and empty", message: "", wantValid: true},
		{name: "optional and blank", message: " \n\t ", wantValid: true},
		{name: "required and empty", message: "", required: true, wantReason: model.ReasonEmptyField},
		{name: "exactly at limit", message: words(500), wantValid: true},
		{name: "one over limit", message: words(501), wantReason: model.ReasonTooManyWords},
		{name: "custom limit", message: words(11), maxWords: 10, wantReason: model.ReasonTooManyWords},
		{name: "extra whitespace is not a word", message: "  hello   there \n friend ", maxWords: 3, wantValid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateMessage(tt.message, tt.maxWords, tt.required)
			if got.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v", got.Valid, tt.wantValid)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestValidateMessage_MessageNamesLimit(t *testing.T) {
	got := ValidateMessage(words(21), 20, false)
	if !strings.Contains(got.Message, "20") {
		t.Errorf("Message = %q, want it to mention the limit", got.Message)
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"one two", 2},
		{" one\ttwo\nthree  ", 3},
	}
	for _, tt := range tests {
		if got := CountWords(tt.in); got != tt.want {
			t.Errorf("CountWords(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestValidateDate(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		date       string
		wantReason model.Reason
	}{
		{name: "today", date: "2025-06-10"},
		{name: "tomorrow", date: "2025-06-11"},
		{name: "yesterday", date: "2025-06-09", wantReason: model.ReasonDateInPast},
		{name: "empty", date: "", wantReason: model.ReasonEmptyField},
		{name: "wrong layout", date: "10/06/2025", wantReason: model.ReasonInvalidFormat},
		{name: "not a date", date: "2025-02-30", wantReason: model.ReasonInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateDate(tt.date, now)
			if got.Reason != tt.wantReason {
				t.Errorf("ValidateDate(%q).Reason = %q, want %q", tt.date, got.Reason, tt.wantReason)
			}
			if got.Valid != (tt.wantReason == model.ReasonNone) {
				t.Errorf("ValidateDate(%q).Valid = %v", tt.date, got.Valid)
			}
		})
	}
}

func TestValidateService(t *testing.T) {
	if got := ValidateService("cavitation"); !got.Valid {
		t.Errorf("ValidateService(cavitation) = %+v, want valid", got)
	}
	if got := ValidateService(""); got.Reason != model.ReasonEmptyField {
		t.Errorf("Reason = %q, want EmptyField", got.Reason)
	}
	if got := ValidateService("liposuction"); got.Reason != model.ReasonUnknownService {
		t.Errorf("Reason = %q, want UnknownService", got.Reason)
	}
}

func TestValidateRequired(t *testing.T) {
	got := ValidateRequired(model.FieldName, " ")
	if got.Valid || got.Reason != model.ReasonEmptyField {
		t.Fatalf("got %+v, want EmptyField", got)
	}
	if got.Message != "Name is required" {
		t.Errorf("Message = %q", got.Message)
	}
	if !ValidateRequired(model.FieldName, "Jane").Valid {
		t.Error("non-empty value should be valid")
	}
}
