// Package sanitizer normalizes visitor input before it is validated or forwarded.
//
// All functions are idempotent and never fail: invalid input yields an empty
// string (or slice) rather than an error.
//
// Normalization includes:
//   - Phone fields: keep only characters a phone number may contain while typing
//   - Phone numbers: best-effort E.164 for downstream consumers
//   - Strings: collapse whitespace, trim, cap word count
//   - Slugs: lowercase, hyphen separated, ASCII letters and digits only
//   - Image URLs: lowercase host, drop tracking parameters
//   - Tags: slugified, without duplicates or empty values
package sanitizer
