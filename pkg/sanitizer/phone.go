package sanitizer

import (
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

var (
	defaultRegions = []string{
		"US",
		"IL",
	}
)

// FilterPhoneInput drops every rune that cannot appear in a phone field. It is
// applied on each keystroke, so it only filters and never reformats.
func FilterPhoneInput(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '+' || r == '-' || r == '(' || r == ')' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePhone formats phone as E.164, trying regions in order for numbers
// without a country prefix. It returns "" when no region yields a valid number.
func NormalizePhone(phone string, regions ...string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}
	if len(regions) == 0 {
		regions = defaultRegions
	}

	for _, region := range regions {
		parsedNumber, err := phonenumbers.Parse(phone, region)
		if err != nil || !phonenumbers.IsValidNumber(parsedNumber) {
			continue
		}
		return phonenumbers.Format(parsedNumber, phonenumbers.E164)
	}
	return ""
}
