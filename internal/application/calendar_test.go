package application

import (
	"testing"
	"time"
)

func TestDayOfWeek(t *testing.T) {
	cal := NewBusinessCalendar(time.UTC)

	tests := []struct {
		dayKey string
		want   int
	}{
		{"2026-01-04", 0}, // Sunday
		{"2026-01-05", 1}, // Monday
		{"2026-01-09", 5}, // Friday
		{"2026-01-10", 6}, // Saturday
		{"2026-02-28", 6},
		{"2026-03-01", 0},
	}

	for _, tt := range tests {
		got, err := cal.DayOfWeek(tt.dayKey)
		if err != nil {
			t.Fatalf("DayOfWeek(%q): %v", tt.dayKey, err)
		}
		if got != tt.want {
			t.Errorf("DayOfWeek(%q) = %d, want %d", tt.dayKey, got, tt.want)
		}
	}
}

func TestDayOfWeekTimezoneInvariance(t *testing.T) {
	// The weekday of a day key must not depend on the business timezone:
	// "2026-01-05" is a Monday in Auckland and in Honolulu alike.
	zones := []string{"UTC", "Pacific/Auckland", "Pacific/Honolulu", "Europe/Paris"}
	for _, name := range zones {
		loc, err := time.LoadLocation(name)
		if err != nil {
			t.Fatalf("LoadLocation(%q): %v", name, err)
		}
		cal := NewBusinessCalendar(loc)
		got, err := cal.DayOfWeek("2026-01-05")
		if err != nil {
			t.Fatalf("DayOfWeek in %s: %v", name, err)
		}
		if got != 1 {
			t.Errorf("DayOfWeek(2026-01-05) in %s = %d, want 1", name, got)
		}
	}
}

func TestDayKeyRoundTrip(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatal(err)
	}
	cal := NewBusinessCalendar(paris)

	// 23:30 UTC on Jan 5 is already Jan 6 in Paris.
	instant := time.Date(2026, 1, 5, 23, 30, 0, 0, time.UTC)
	if got := cal.DayKey(instant); got != "2026-01-06" {
		t.Errorf("DayKey = %q, want 2026-01-06", got)
	}
}

func TestSlotStart(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatal(err)
	}
	cal := NewBusinessCalendar(paris)

	start, err := cal.SlotStart("2026-01-05", "09:30")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2026, 1, 5, 9, 30, 0, 0, paris)
	if !start.Equal(want) {
		t.Errorf("SlotStart = %v, want %v", start, want)
	}
}

func TestValidDayKey(t *testing.T) {
	cal := NewBusinessCalendar(time.UTC)

	valid := []string{"2026-01-05", "2024-02-29", "1999-12-31"}
	for _, s := range valid {
		if !cal.ValidDayKey(s) {
			t.Errorf("ValidDayKey(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "2026-1-5", "05-01-2026", "2026-13-01", "2026-02-30", "2026-01-05T00:00:00Z", "not-a-date"}
	for _, s := range invalid {
		if cal.ValidDayKey(s) {
			t.Errorf("ValidDayKey(%q) = true, want false", s)
		}
	}
}

func TestAddDays(t *testing.T) {
	cal := NewBusinessCalendar(time.UTC)

	got, err := cal.AddDays("2026-01-30", 3)
	if err != nil {
		t.Fatal(err)
	}
	if got != "2026-02-02" {
		t.Errorf("AddDays = %q, want 2026-02-02", got)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		hour    int
		minute  int
		wantErr bool
	}{
		{"09:30", 9, 30, false},
		{"00:00", 0, 0, false},
		{"23:59", 23, 59, false},
		{"24:00", 0, 0, true},
		{"12:60", 0, 0, true},
		{"9h30", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		hour, minute, err := parseTimeOfDay(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseTimeOfDay(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseTimeOfDay(%q): %v", tt.in, err)
			continue
		}
		if hour != tt.hour || minute != tt.minute {
			t.Errorf("parseTimeOfDay(%q) = %d:%d, want %d:%d", tt.in, hour, minute, tt.hour, tt.minute)
		}
	}
}
