package sanitizer

import "testing"

func TestFilterPhoneInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already clean", input: "+1 (555) 123-4567", want: "+1 (555) 123-4567"},
		{name: "letters removed", input: "555-abc-1234", want: "555--1234"},
		{name: "dots removed", input: "555.123.4567", want: "5551234567"},
		{name: "emoji removed", input: "☎ 5551234567", want: " 5551234567"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterPhoneInput(tt.input)
			if got != tt.want {
				t.Errorf("FilterPhoneInput(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := FilterPhoneInput(got); again != got {
				t.Errorf("FilterPhoneInput not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		regions []string
		want    string
	}{
		{
			name:  "valid E.164 format",
			input: "+972541234567",
			want:  "+972541234567",
		},
		{
			name:  "with spaces",
			input: "+972 54 123 4567",
			want:  "+972541234567",
		},
		{
			name:  "with parentheses",
			input: "+1 (650) 253-0000",
			want:  "+16502530000",
		},
		{
			name:  "national us number uses first region",
			input: "(650) 253-0000",
			want:  "+16502530000",
		},
		{
			name:  "national israeli number falls through to IL",
			input: "054-123-4567",
			want:  "+972541234567",
		},
		{
			name:    "explicit region order",
			input:   "054-123-4567",
			regions: []string{"IL"},
			want:    "+972541234567",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
		{
			name:  "garbage",
			input: "not a phone",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input, tt.regions...)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
