// Package types provides the core value types shared by the date extraction
// pipeline: calendar dates, timezones and the annotation records returned to
// callers.
package types

import (
	"fmt"
	"time"
)

// Date represents a calendar date without time component.
type Date struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31
}

// FromTime creates a Date from a time.Time.
func FromTime(t time.Time) Date {
	return Date{
		Year:  t.Year(),
		Month: int(t.Month()),
		Day:   t.Day(),
	}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Components returns the numeric values a textual date may legitimately
// contain: the full year, the two-digit year, the month and the day.
func (d Date) Components() []int {
	return []int{d.Year, d.Year % 100, d.Month, d.Day}
}

// TimezoneKind represents the type of timezone specification.
type TimezoneKind int

const (
	TimezoneNone TimezoneKind = iota
	TimezoneUTC
	TimezoneOffset
	TimezoneNamed
)

// Timezone represents a timezone attached to a parsed date.
type Timezone struct {
	Kind    TimezoneKind
	Hours   int    // for Offset
	Minutes int    // for Offset
	Name    string // for Named (e.g., "America/New_York") and abbreviations
}

// Location converts the timezone to a *time.Location. Offset timezones map
// to fixed zones; named zones are resolved through the tz database.
func (tz Timezone) Location() (*time.Location, error) {
	switch tz.Kind {
	case TimezoneUTC:
		return time.UTC, nil
	case TimezoneOffset:
		seconds := tz.Hours*3600 + tz.Minutes*60
		if tz.Hours < 0 {
			seconds = tz.Hours*3600 - tz.Minutes*60
		}
		return time.FixedZone(tz.Name, seconds), nil
	case TimezoneNamed:
		loc, err := time.LoadLocation(tz.Name)
		if err != nil {
			return nil, fmt.Errorf("loading location %q: %w", tz.Name, err)
		}
		return loc, nil
	default:
		return nil, fmt.Errorf("timezone has no location")
	}
}
