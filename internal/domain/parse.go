package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidTime = errors.New("invalid time")
	ErrInvalidID   = errors.New("invalid id")
)

// ParseDayMonth parses "DD.MM" (single digits allowed, e.g. "6.2").
func ParseDayMonth(s string) (MonthDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 2 {
		return MonthDay{}, fmt.Errorf("%w: expected DD.MM", ErrInvalidDate)
	}
	d, ok := digits(parts[0])
	if !ok {
		return MonthDay{}, fmt.Errorf("%w: day %q", ErrInvalidDate, parts[0])
	}
	m, ok := digits(parts[1])
	if !ok {
		return MonthDay{}, fmt.Errorf("%w: month %q", ErrInvalidDate, parts[1])
	}
	return NewMonthDay(time.Month(m), d)
}

// ParseClock parses "HH:MM" into hour and minute (00:00..23:59).
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: expected HH:MM", ErrInvalidTime)
	}
	hour, ok := digits(parts[0])
	if !ok || hour > 23 {
		return 0, 0, fmt.Errorf("%w: hour %q", ErrInvalidTime, parts[0])
	}
	minute, ok = digits(parts[1])
	if !ok || minute > 59 {
		return 0, 0, fmt.Errorf("%w: minute %q", ErrInvalidTime, parts[1])
	}
	return hour, minute, nil
}

// digits parses one or two ASCII digits. Signs and spaces are rejected.
func digits(s string) (int, bool) {
	if len(s) == 0 || len(s) > 2 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}

// ParseID parses a positive record id.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// FormatClock returns HH:MM.
func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
