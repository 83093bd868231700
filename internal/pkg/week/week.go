// Package week derives the identifiers used to key weekly roster grids:
// the WeekKey of a Monday-anchored week and the day labels of its seven days.
package week

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Anchor returns the Monday 00:00 of the week containing t, in t's location.
func Anchor(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}

// Key returns the WeekKey for a week start date, e.g. "Aug-4-2025".
func Key(start time.Time) string {
	return fmt.Sprintf("%s-%d-%d", start.Month().String()[:3], start.Day(), start.Year())
}

// ParseKey parses a WeekKey back into its week start date (UTC midnight).
func ParseKey(key string) (time.Time, error) {
	parts := strings.Split(key, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid week key %q", key)
	}

	var month time.Month
	for m := time.January; m <= time.December; m++ {
		if m.String()[:3] == parts[0] {
			month = m
			break
		}
	}
	if month == 0 {
		return time.Time{}, fmt.Errorf("invalid week key %q: unknown month %q", key, parts[0])
	}

	day, err := strconv.Atoi(parts[1])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid week key %q: bad day %q", key, parts[1])
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week key %q: bad year %q", key, parts[2])
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// DayLabels returns the seven display labels of the week starting at start,
// e.g. "Mon 4-Aug", "Tue 5-Aug", ... "Sun 10-Aug".
func DayLabels(start time.Time) []string {
	labels := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		labels = append(labels, fmt.Sprintf("%s %d-%s", d.Weekday().String()[:3], d.Day(), d.Month().String()[:3]))
	}
	return labels
}

// Range returns the display range of the week starting at start,
// e.g. "4-Aug to 10-Aug".
func Range(start time.Time) string {
	end := start.AddDate(0, 0, 6)
	return fmt.Sprintf("%d-%s to %d-%s", start.Day(), start.Month().String()[:3], end.Day(), end.Month().String()[:3])
}
