// Package slots builds the list of bookable appointment times for a day.
package slots

import (
	"fmt"
	"time"

	"contour/pkg/model"
)

const (
	DateLayout = "2006-01-02"

	NoSlotsMessage = "No available time slots for this date"
)

// Window is the clinic's bookable range for a day. End is the last start time
// offered, so a window of 09:00 to 21:00 includes 21:00 itself.
type Window struct {
	StartHour int
	EndHour   int
	Step      time.Duration
}

var DefaultWindow = Window{
	StartHour: 9,
	EndHour:   21,
	Step:      30 * time.Minute,
}

// Generate returns the default window's slots for selectedDate. When selectedDate
// is now's calendar day, slots earlier than now are dropped.
func Generate(selectedDate string, now time.Time) []model.TimeSlot {
	return GenerateWithin(DefaultWindow, selectedDate, now)
}

func GenerateWithin(w Window, selectedDate string, now time.Time) []model.TimeSlot {
	step := int(w.Step / time.Minute)
	if step <= 0 {
		step = 30
	}

	isToday := selectedDate == now.Format(DateLayout)
	cutoff := now.Hour()*100 + now.Minute()
	last := w.EndHour * 60

	out := make([]model.TimeSlot, 0, (last-w.StartHour*60)/step+1)
	for minutes := w.StartHour * 60; minutes <= last; minutes += step {
		h, m := minutes/60, minutes%60
		if isToday && h*100+m < cutoff {
			continue
		}
		out = append(out, model.TimeSlot{
			Value: Value(h, m),
			Label: Label(h, m),
		})
	}
	return out
}

// Value formats a slot as HH:MM in 24h time.
func Value(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// Label formats a slot for display, e.g. "9:00 AM" or "12:30 PM".
func Label(hour, minute int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, minute, period)
}

func Contains(slots []model.TimeSlot, value string) bool {
	for _, s := range slots {
		if s.Value == value {
			return true
		}
	}
	return false
}
