package locale

import (
	"sort"
	"strings"
	"time"
)

const (
	DefaultTimezone = "UTC"

	DefaultRegion = "US"
)

type Country struct {
	Code            string   // ISO 3166-1 alpha-2 country code (e.g., "US", "IL")
	Name            string   // Human-readable country name
	PhonePrefixes   []string // Valid phone number prefixes (e.g., ["+1", "1"])
	DefaultTimezone string   // IANA timezone identifier (e.g., "America/New_York")
}

var (
	Countries = map[string]Country{
		"US": {
			Code:            "US",
			Name:            "United States",
			PhonePrefixes:   []string{"+1", "1"},
			DefaultTimezone: "America/New_York",
		},
		"IL": {
			Code:            "IL",
			Name:            "Israel",
			PhonePrefixes:   []string{"+972", "972"},
			DefaultTimezone: "Asia/Jerusalem",
		},
		"GB": {
			Code:            "GB",
			Name:            "United Kingdom",
			PhonePrefixes:   []string{"+44", "44"},
			DefaultTimezone: "Europe/London",
		},
	}

	TimeZoneTags = map[string][]string{
		"US": {"America/New_York", "America/Chicago", "America/Denver", "America/Los_Angeles", "US/Eastern", "US/Pacific"},
		"IL": {"Asia/Jerusalem", "Israel", "Asia/Tel_Aviv"},
		"GB": {"Europe/London", "GB"},
	}
)

// LoadLocation resolves the clinic timezone, falling back to UTC when tz is empty
// or unknown to the tzdata on this host.
func LoadLocation(tz string) *time.Location {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// PhoneRegions lists the known regions with primary first, for parsing phone
// numbers entered without a country prefix.
func PhoneRegions(primary string) []string {
	rest := make([]string, 0, len(Countries))
	for code := range Countries {
		if code != primary {
			rest = append(rest, code)
		}
	}
	sort.Strings(rest)

	if _, ok := Countries[primary]; !ok {
		return rest
	}
	return append([]string{primary}, rest...)
}
