package model

import (
	"fmt"
	"time"
)

// Date is a calendar day stored as a zero-padded "YYYY-MM-DD" string.
// Zero padding matters: timelines and latest-row lookups order dates
// lexically, which is only correct when every date has this exact shape.
type Date string

const dateLayout = "2006-01-02"

// ParseDate validates s as a zero-padded ISO-8601 date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	// time.Parse accepts some non-canonical forms; round-trip to reject them.
	if t.Format(dateLayout) != s {
		return "", fmt.Errorf("invalid date %q: want zero-padded YYYY-MM-DD", s)
	}
	return Date(s), nil
}

// Today returns the current local date.
func Today() Date {
	return Date(time.Now().Format(dateLayout))
}

func (d Date) String() string { return string(d) }

// Time returns the date as a midnight local time.Time.
func (d Date) Time() time.Time {
	t, _ := time.Parse(dateLayout, string(d))
	return t
}
