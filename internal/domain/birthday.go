package domain

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"
)

// StoredYear is the fixed year written into persisted birthday dates.
// 2000 is a leap year, so 29 February can be stored.
const StoredYear = 2000

// MonthDay is a recurring calendar day without a year.
type MonthDay struct {
	Month time.Month
	Day   int
}

// NewMonthDay validates that month/day name a real calendar day.
func NewMonthDay(month time.Month, day int) (MonthDay, error) {
	if month < time.January || month > time.December || day < 1 {
		return MonthDay{}, fmt.Errorf("%w: %02d.%02d", ErrInvalidDate, day, month)
	}
	t := time.Date(StoredYear, month, day, 0, 0, 0, 0, time.UTC)
	if t.Month() != month || t.Day() != day {
		return MonthDay{}, fmt.Errorf("%w: %02d.%02d", ErrInvalidDate, day, month)
	}
	return MonthDay{Month: month, Day: day}, nil
}

// MonthDayOf returns the month-day of t in t's location.
func MonthDayOf(t time.Time) MonthDay {
	return MonthDay{Month: t.Month(), Day: t.Day()}
}

// ParseStoredDate parses the persisted YYYY-MM-DD form. The year is ignored.
func ParseStoredDate(s string) (MonthDay, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return MonthDay{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return MonthDay{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	d, err := strconv.Atoi(parts[2])
	if err != nil {
		return MonthDay{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return NewMonthDay(time.Month(m), d)
}

// Stored returns the canonical persisted form, e.g. "2000-02-06".
func (md MonthDay) Stored() string {
	return fmt.Sprintf("%04d-%02d-%02d", StoredYear, int(md.Month), md.Day)
}

// String returns DD.MM as users type it.
func (md MonthDay) String() string {
	return fmt.Sprintf("%02d.%02d", md.Day, int(md.Month))
}

// Matches reports whether t falls on this month-day, regardless of year.
func (md MonthDay) Matches(t time.Time) bool {
	return MonthDayOf(t) == md
}

// Birthday is one recorded birthday, scoped to a chat.
type Birthday struct {
	ID     int64
	UserID int64
	ChatID int64
	Name   string
	Date   MonthDay
}

// Mention renders an HTML link that Telegram shows as a user mention.
func (b Birthday) Mention() string {
	return fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, b.UserID, html.EscapeString(b.Name))
}

// FilterOn keeps the birthdays that fall on day, preserving order.
func FilterOn(birthdays []Birthday, day time.Time) []Birthday {
	var res []Birthday
	for _, b := range birthdays {
		if b.Date.Matches(day) {
			res = append(res, b)
		}
	}
	return res
}
