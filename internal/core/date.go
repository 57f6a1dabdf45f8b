package core

import (
	"strings"
	"time"
)

// Date is a calendar date with no time component, normalized to UTC
// midnight. It serializes as ISO-8601 (YYYY-MM-DD) at the storage boundary.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// ISO renders the date as YYYY-MM-DD.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// ParseISO parses a YYYY-MM-DD string, the only format the stores read and
// write.
func ParseISO(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t.UTC()}, nil
}

// Day-first layouts tried in order by ParseDateLenient. ISO comes last so
// an unambiguous export still round-trips.
var lenientLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"2 January 2006",
	"2006-01-02",
	"2006/01/02",
}

// ParseDateLenient parses free-form date strings from bank exports,
// preferring day-first interpretations. It returns ErrInvalidDate when no
// layout matches; import substitutes today's date in that case rather than
// rejecting the row.
func ParseDateLenient(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrInvalidDate
	}
	for _, layout := range lenientLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), int(t.Month()), t.Day()), nil
		}
	}
	return Date{}, ErrInvalidDate
}

// Weekend reports whether the date falls on Saturday or Sunday.
func (d Date) Weekend() bool {
	wd := d.Time.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
