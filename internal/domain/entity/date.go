package entity

import (
	"time"
)

// dateLayout is the only accepted wire format for calendar dates.
// A trailing time component is rejected, not silently dropped.
const dateLayout = "2006-01-02"

// Date is a calendar day with no time component. Callers that filter by
// date pass a *Date, never a raw string, so a malformed date can only
// enter the system at the adapter boundary where it is parsed.
type Date struct {
	t time.Time
}

// ParseDate parses a strict YYYY-MM-DD string into a Date.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return Date{}, &ValidationError{
			Field:   "date",
			Message: "invalid date format, use YYYY-MM-DD",
		}
	}
	return Date{t: t}, nil
}

// DateOf truncates a point in time to its calendar day in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// String renders the date in YYYY-MM-DD form.
func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// Time returns midnight UTC of the calendar day.
func (d Date) Time() time.Time {
	return d.t
}
