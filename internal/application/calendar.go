package application

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dayKeyLayout is the canonical business-day representation. Every date that
// crosses a store or service boundary is a day key in this layout; raw
// timestamps are converted once, at the edge, and never compared directly.
const dayKeyLayout = "2006-01-02"

var dayKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// BusinessCalendar converts between wall-clock instants and business day
// keys in a single reference timezone, so that day-of-week matching and the
// 24-hour cancellation window are immune to UTC conversion artifacts.
type BusinessCalendar struct {
	loc *time.Location
}

// NewBusinessCalendar creates a calendar anchored to the given timezone.
// A nil location falls back to the system timezone.
func NewBusinessCalendar(loc *time.Location) *BusinessCalendar {
	if loc == nil {
		loc = time.Local
	}
	return &BusinessCalendar{loc: loc}
}

// DayKey returns the business day key of an instant.
func (c *BusinessCalendar) DayKey(t time.Time) string {
	return t.In(c.loc).Format(dayKeyLayout)
}

// ValidDayKey reports whether s is a well-formed day key.
func (c *BusinessCalendar) ValidDayKey(s string) bool {
	if !dayKeyPattern.MatchString(s) {
		return false
	}
	_, err := time.ParseInLocation(dayKeyLayout, s, c.loc)
	return err == nil
}

// DayOfWeek returns the weekday (0 = Sunday .. 6 = Saturday) of a day key.
// The weekday is taken at business-timezone noon, so dates near a day
// boundary can never resolve to the wrong weekday.
func (c *BusinessCalendar) DayOfWeek(dayKey string) (int, error) {
	t, err := time.ParseInLocation(dayKeyLayout, dayKey, c.loc)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", dayKey, err)
	}
	noon := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, c.loc)
	return int(noon.Weekday()), nil
}

// SlotStart combines a day key with a slot start time ("HH:MM") into the
// wall-clock instant the slot begins at.
func (c *BusinessCalendar) SlotStart(dayKey, startTime string) (time.Time, error) {
	t, err := time.ParseInLocation(dayKeyLayout, dayKey, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dayKey, err)
	}
	hour, minute, err := parseTimeOfDay(startTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, c.loc), nil
}

// AddDays returns the day key days after the given one.
func (c *BusinessCalendar) AddDays(dayKey string, days int) (string, error) {
	t, err := time.ParseInLocation(dayKeyLayout, dayKey, c.loc)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", dayKey, err)
	}
	return t.AddDate(0, 0, days).Format(dayKeyLayout), nil
}

// FormatDayKey renders a day key as a human-readable date for emails.
func (c *BusinessCalendar) FormatDayKey(dayKey string) string {
	t, err := time.ParseInLocation(dayKeyLayout, dayKey, c.loc)
	if err != nil {
		return dayKey
	}
	return t.Format("Monday, January 2, 2006")
}

// parseTimeOfDay splits an "HH:MM" 24-hour time into its components.
func parseTimeOfDay(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time of day %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid time of day %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time of day %q", s)
	}
	return hour, minute, nil
}
