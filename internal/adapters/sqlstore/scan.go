package sqlstore

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// timestampLayout is the wall-clock format written to solved_date. Every
// backend accepts it for its timestamp column and it sorts lexically in SQLite.
const timestampLayout = "2006-01-02 15:04:05"

func formatTimestamp(t time.Time) string {
	return t.In(time.Local).Format(timestampLayout)
}

// wallClock scans a timestamp column into local wall-clock time. Drivers
// return time.Time, string or []byte depending on backend and column type.
type wallClock struct {
	Time time.Time
}

func (w *wallClock) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		w.Time = time.Date(v.Year(), v.Month(), v.Day(), v.Hour(), v.Minute(), v.Second(), 0, time.Local)
		return nil
	case string:
		return w.parse(v)
	case []byte:
		return w.parse(string(v))
	case nil:
		return errors.New("missing solved_date timestamp")
	}
	return fmt.Errorf("unsupported timestamp type %T", src)
}

func (w *wallClock) parse(s string) error {
	s = strings.TrimSpace(s)
	for _, layout := range []string{timestampLayout, "2006-01-02T15:04:05", time.RFC3339, "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			w.Time = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local)
			return nil
		}
	}
	return fmt.Errorf("unparseable solved_date timestamp %q", s)
}

// calendarDate scans a DATE(...) expression.
type calendarDate struct {
	Date civil.Date
}

func (c *calendarDate) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		c.Date = civil.DateOf(v)
		return nil
	case string:
		return c.parse(v)
	case []byte:
		return c.parse(string(v))
	}
	return fmt.Errorf("unsupported date value %v", src)
}

func (c *calendarDate) parse(s string) error {
	s = strings.TrimSpace(s)
	if len(s) > len("2006-01-02") {
		s = s[:len("2006-01-02")]
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return fmt.Errorf("unparseable date %q: %w", s, err)
	}
	c.Date = d
	return nil
}
