package model

// TimeSlot is a bookable start time. Value is HH:MM (24h), Label is h:mm AM/PM.
type TimeSlot struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
