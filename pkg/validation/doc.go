// Package validation holds the field validators shared by the booking, contact and
// newsletter forms. Every validator returns a model.ValidationResult whose Message
// can be shown next to the field as-is.
package validation
