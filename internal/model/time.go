package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// backendTimeLayout is the timestamp format the backend stores on the
// created/updated fields of every record.
const backendTimeLayout = "2006-01-02 15:04:05.000Z"

// t2m converts an HH:MM clock string to minutes since midnight.
func t2m(t string) (int, error) {
	hh, mm, ok := strings.Cut(t, ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	if hours < 0 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	return hours*60 + minutes, nil
}

// m2t converts minutes since midnight to an HH:MM clock string.
func m2t(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// MinuteOfDay converts an HH:MM clock string to minutes since midnight.
func MinuteOfDay(t string) (int, error) {
	return t2m(t)
}

// SlotTimes computes the appointment times generated for a slot:
// floor(minutes(end-start)/space) entries at start, start+space, and so on.
// A slot that would generate zero appointments is a configuration error and
// fails instead of silently producing an empty slot.
func SlotTimes(start, end string, space int) ([]string, error) {
	if space <= 0 {
		return nil, fmt.Errorf("slot space must be positive, got %d", space)
	}

	from, err := t2m(start)
	if err != nil {
		return nil, fmt.Errorf("slot start: %w", err)
	}
	to, err := t2m(end)
	if err != nil {
		return nil, fmt.Errorf("slot end: %w", err)
	}

	n := (to - from) / space
	if to <= from || n <= 0 {
		return nil, fmt.Errorf("slot %s-%s with space %d generates no appointments", start, end, space)
	}

	times := make([]string, 0, n)
	for i := 0; i < n; i++ {
		times = append(times, m2t(from+i*space))
	}
	return times, nil
}

// NormalizeDate trims a backend date value down to its YYYY-MM-DD day part.
func NormalizeDate(date string) string {
	if len(date) > 10 {
		return date[:10]
	}
	return date
}

// DateInRange reports whether date falls inside [from, to] inclusive.
// YYYY-MM-DD strings compare correctly as plain strings.
func DateInRange(date, from, to string) bool {
	d := NormalizeDate(date)
	return d >= NormalizeDate(from) && d <= NormalizeDate(to)
}

// ParseBackendTime parses a record created/updated timestamp.
func ParseBackendTime(s string) (time.Time, error) {
	t, err := time.Parse(backendTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse backend time %q: %w", s, err)
	}
	return t, nil
}

// WeekBounds returns the Monday and Sunday of the week containing day.
func WeekBounds(day time.Time) (string, string) {
	normalized := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	daysSinceMonday := int(normalized.Weekday()) - 1
	if normalized.Weekday() == time.Sunday {
		daysSinceMonday = 6
	}

	start := normalized.AddDate(0, 0, -daysSinceMonday)
	end := start.AddDate(0, 0, 6)

	return start.Format("2006-01-02"), end.Format("2006-01-02")
}
