package sanitizer

import "strings"

// Slugify lowercases name and joins its ASCII letter and digit runs with single
// hyphens: "Summer Body: 5 Tips!" becomes "summer-body-5-tips".
func Slugify(name string) string {
	var b strings.Builder
	pendingHyphen := false

	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			r += 'a' - 'A'
			fallthrough
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_' || r == '\t' || r == '\n':
			pendingHyphen = true
		}
	}
	return b.String()
}
