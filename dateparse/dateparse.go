// Package dateparse resolves the date-valued strings that appear in search
// operators: relative offsets ("-7d"), a fixed natural-language vocabulary
// ("yesterday", "last month"), absolute calendar dates, and hyphen-delimited
// date ranges.
//
// Conventions: weeks start on Sunday, absolute dates without an explicit
// offset are interpreted in the local time zone, and all natural dates
// normalize the time of day to local midnight.
package dateparse

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ErrInvalidUnit is returned when a relative offset unit is not one of h, d, w, m, y
var ErrInvalidUnit = errors.New("invalid relative date unit")

// Range is a pair of resolved instants bounding a period
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Resolution is the outcome of resolving a date-valued string.
// Exactly one of Date or Range is set.
type Resolution struct {
	Date  *time.Time `json:"date,omitempty"`
	Range *Range     `json:"range,omitempty"`
}

// Resolver resolves date strings against an injectable clock.
// The zero value reads time.Now; tests supply a fixed Now instead.
type Resolver struct {
	Now func() time.Time
}

func (r Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}

	return time.Now()
}

var relativePattern = regexp.MustCompile(`^-(\d+)([hdwmyHDWMY])$`)

// Resolve converts a date-valued string into a single instant or an
// instant pair. Candidates are tried in order: relative offset, named
// natural date, absolute date, hyphen-delimited range. Trying the whole
// value as an absolute date before any range split keeps a plain ISO date
// like 2024-01-01 from being misread as a range. Returns nil when nothing
// matches; it never fails.
func (r Resolver) Resolve(value string) *Resolution {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	if m := relativePattern.FindStringSubmatch(value); m != nil {
		amount, _ := strconv.Atoi(m[1])

		if date, err := r.ResolveRelative(amount, rune(m[2][0])); err == nil {
			return &Resolution{Date: &date}
		}
	}

	if date, ok := r.resolveNatural(value); ok {
		return &Resolution{Date: &date}
	}

	if date, ok := parseAbsolute(value); ok {
		return &Resolution{Date: &date}
	}

	if rng, ok := resolveRange(value); ok {
		return &Resolution{Range: rng}
	}

	return nil
}

// ResolveRelative subtracts amount units from the current instant.
// Month and year offsets shift the calendar field rather than a fixed day
// count; a week is seven days. The clock is read fresh on every call.
func (r Resolver) ResolveRelative(amount int, unit rune) (time.Time, error) {
	now := r.now()

	switch unicode.ToLower(unit) {
	case 'h':
		return now.Add(-time.Duration(amount) * time.Hour), nil
	case 'd':
		return now.AddDate(0, 0, -amount), nil
	case 'w':
		return now.AddDate(0, 0, -7*amount), nil
	case 'm':
		return now.AddDate(0, -amount, 0), nil
	case 'y':
		return now.AddDate(-amount, 0, 0), nil
	default:
		return time.Time{}, ErrInvalidUnit
	}
}

// resolveNatural matches the fixed natural-date vocabulary
func (r Resolver) resolveNatural(value string) (time.Time, bool) {
	now := r.now()

	switch strings.ToLower(value) {
	case "today":
		return midnight(now), true
	case "yesterday":
		return midnight(now.AddDate(0, 0, -1)), true
	case "tomorrow":
		return midnight(now.AddDate(0, 0, 1)), true
	case "last week":
		return midnight(now.AddDate(0, 0, -7)), true
	case "last month":
		return midnight(now.AddDate(0, -1, 0)), true
	case "last year":
		return midnight(now.AddDate(-1, 0, 0)), true
	case "this week":
		// most recent Sunday
		return midnight(now.AddDate(0, 0, -int(now.Weekday()))), true
	case "this month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	case "this year":
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), true
	default:
		return time.Time{}, false
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// absoluteLayouts are tried in order for step-3 absolute parsing
var absoluteLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"2 Jan 2006",
}

func parseAbsolute(value string) (time.Time, bool) {
	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// resolveRange splits the value at every '-' from left to right and takes
// the first split point where both halves parse as absolute dates
func resolveRange(value string) (*Range, bool) {
	for i := 0; i < len(value); i++ {
		if value[i] != '-' {
			continue
		}

		start, ok := parseAbsolute(strings.TrimSpace(value[:i]))
		if !ok {
			continue
		}

		end, ok := parseAbsolute(strings.TrimSpace(value[i+1:]))
		if !ok {
			continue
		}

		return &Range{Start: start, End: end}, true
	}

	return nil, false
}

// Default resolver on the real clock
var defaultResolver Resolver

// Resolve resolves value against the wall clock
func Resolve(value string) *Resolution {
	return defaultResolver.Resolve(value)
}

// ResolveRelative subtracts amount units from the wall-clock now
func ResolveRelative(amount int, unit rune) (time.Time, error) {
	return defaultResolver.ResolveRelative(amount, unit)
}
