package locale

import "strings"

func DetectRegion(tz string) string {
	for region, zones := range TimeZoneTags {
		for _, z := range zones {
			if strings.EqualFold(tz, z) {
				return region
			}
		}
	}
	return DefaultRegion
}

// InferCountryFromPhone matches an E.164 (or bare international) number against
// the known prefixes. Numbers are tried longest prefix first so "+972" is never
// taken for a "+9" style shorter code.
func InferCountryFromPhone(phone string) *Country {
	normalized := strings.TrimSpace(phone)
	if normalized == "" {
		return nil
	}

	var best *Country
	bestLen := 0
	for code := range Countries {
		country := Countries[code]
		for _, prefix := range country.PhonePrefixes {
			if len(prefix) > bestLen && strings.HasPrefix(normalized, prefix) {
				c := country
				best = &c
				bestLen = len(prefix)
			}
		}
	}
	return best
}
