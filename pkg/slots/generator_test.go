package slots

import (
	"testing"
	"time"

	"contour/pkg/model"
)

func at(date string, hour, minute int) time.Time {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		panic(err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		now       time.Time
		wantLen   int
		wantFirst string
		wantLast  string
	}{
		{
			name:      "future date gets the full day",
			date:      "2025-06-10",
			now:       at("2025-06-09", 15, 0),
			wantLen:   25,
			wantFirst: "09:00",
			wantLast:  "21:00",
		},
		{
			name:      "today before opening",
			date:      "2025-06-10",
			now:       at("2025-06-10", 8, 0),
			wantLen:   25,
			wantFirst: "09:00",
			wantLast:  "21:00",
		},
		{
			name:      "today mid afternoon starts at next half hour",
			date:      "2025-06-10",
			now:       at("2025-06-10", 14, 5),
			wantLen:   14,
			wantFirst: "14:30",
			wantLast:  "21:00",
		},
		{
			name:      "today exactly on a slot keeps that slot",
			date:      "2025-06-10",
			now:       at("2025-06-10", 14, 30),
			wantLen:   14,
			wantFirst: "14:30",
			wantLast:  "21:00",
		},
		{
			name:      "today at closing keeps the last slot",
			date:      "2025-06-10",
			now:       at("2025-06-10", 21, 0),
			wantLen:   1,
			wantFirst: "21:00",
			wantLast:  "21:00",
		},
		{
			name:    "today after closing",
			date:    "2025-06-10",
			now:     at("2025-06-10", 21, 30),
			wantLen: 0,
		},
		{
			name:      "past date is not filtered",
			date:      "2025-06-01",
			now:       at("2025-06-10", 22, 0),
			wantLen:   25,
			wantFirst: "09:00",
			wantLast:  "21:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.date, tt.now)
			if got == nil {
				t.Fatal("Generate() returned nil, want non-nil slice")
			}
			if len(got) != tt.wantLen {
				t.Fatalf("len(Generate()) = %d, want %d", len(got), tt.wantLen)
			}
			if tt.wantLen == 0 {
				return
			}
			if got[0].Value != tt.wantFirst {
				t.Errorf("first slot = %q, want %q", got[0].Value, tt.wantFirst)
			}
			if got[len(got)-1].Value != tt.wantLast {
				t.Errorf("last slot = %q, want %q", got[len(got)-1].Value, tt.wantLast)
			}
		})
	}
}

func TestGenerate_OrderedAndStepped(t *testing.T) {
	got := Generate("2025-06-10", at("2025-06-01", 0, 0))
	for i := 1; i < len(got); i++ {
		if got[i-1].Value >= got[i].Value {
			t.Fatalf("slots not ascending at %d: %q >= %q", i, got[i-1].Value, got[i].Value)
		}
	}
	if Contains(got, "21:30") {
		t.Error("21:30 must not be offered")
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         string
	}{
		{9, 0, "9:00 AM"},
		{9, 30, "9:30 AM"},
		{11, 30, "11:30 AM"},
		{12, 0, "12:00 PM"},
		{12, 30, "12:30 PM"},
		{13, 0, "1:00 PM"},
		{21, 0, "9:00 PM"},
		{0, 15, "12:15 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Label(tt.hour, tt.minute); got != tt.want {
				t.Errorf("Label(%d, %d) = %q, want %q", tt.hour, tt.minute, got, tt.want)
			}
		})
	}
}

func TestGenerate_Pairs(t *testing.T) {
	got := Generate("2025-06-10", at("2025-06-10", 11, 45))
	want := []model.TimeSlot{
		{Value: "12:00", Label: "12:00 PM"},
		{Value: "12:30", Label: "12:30 PM"},
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("slot %d = %+v, want %+v", i, got[i], w)
		}
	}
}

func TestGenerateWithin(t *testing.T) {
	w := Window{StartHour: 10, EndHour: 12, Step: time.Hour}
	got := GenerateWithin(w, "2025-06-10", at("2025-06-09", 0, 0))
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[2].Value != "12:00" {
		t.Errorf("last = %q, want 12:00", got[2].Value)
	}
}

func TestContains(t *testing.T) {
	list := Generate("2025-06-10", at("2025-06-09", 0, 0))
	if !Contains(list, "14:30") {
		t.Error("Contains(14:30) = false, want true")
	}
	if Contains(list, "14:15") {
		t.Error("Contains(14:15) = true, want false")
	}
	if Contains(nil, "09:00") {
		t.Error("Contains(nil) = true, want false")
	}
}
