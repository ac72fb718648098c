package model

import (
	"encoding/json"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day. It accepts a handful of common layouts on input
// and always renders as YYYY-MM-DD.
type Date struct {
	time.Time
}

var dateLayouts = []string{
	DateLayout,
	"2006/01/02",
	"02-01-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseDate parses s using the accepted layouts and truncates the result to
// midnight UTC of the day it names.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return NormalizeDate(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("cannot parse date: %q", s)
}

func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid date format (string expected): %w", err)
	}

	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte(`null`), nil
	}

	return json.Marshal(d.Time.Format(DateLayout))
}

func (d Date) String() string {
	return d.Time.Format(DateLayout)
}
