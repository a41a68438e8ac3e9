// Package core holds the expense domain: dates, money, records and the
// aggregation logic that everything else is a shell around.
package core

import (
	"strconv"
	"strings"
	"time"
)

// ParseDate normalizes flexible date input into a calendar date.
//
// Accepted forms, resolved against ref:
//
//	"7" or "15"    day only; year and month taken from ref
//	"24-01-15"     two-digit year; "20" is prefixed
//	"01-15"        month and day; year taken from ref
//	"2024-01-15"   full date, parsed as-is
//
// Anything else, or a string naming an impossible calendar date
// (day 32, Feb 30, month 13), fails with ErrParseDate.
func ParseDate(input string, ref Date) (Date, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Date{}, ErrParseDate
	}

	// Bare day of month.
	if len(s) <= 2 && allDigits(s) {
		day, err := strconv.Atoi(s)
		if err != nil {
			return Date{}, ErrParseDate
		}
		return makeDate(ref.Year(), ref.Month(), day)
	}

	parts := strings.Split(s, "-")
	switch {
	case len(parts) == 3 && len(parts[0]) == 4:
		year, month, day, err := atoi3(parts[0], parts[1], parts[2])
		if err != nil {
			return Date{}, err
		}
		return makeDate(year, month, day)

	case len(parts) == 3 && len(parts[0]) >= 1 && len(parts[0]) <= 2:
		year, month, day, err := atoi3(parts[0], parts[1], parts[2])
		if err != nil {
			return Date{}, err
		}
		return makeDate(2000+year, month, day)

	case len(parts) == 2:
		_, month, day, err := atoi3("0", parts[0], parts[1])
		if err != nil {
			return Date{}, err
		}
		return makeDate(ref.Year(), month, day)
	}

	return Date{}, ErrParseDate
}

// ParseMonth parses a YYYY-MM selector.
func ParseMonth(input string) (year int, month int, err error) {
	parts := strings.Split(strings.TrimSpace(input), "-")
	if len(parts) != 2 || len(parts[0]) != 4 {
		return 0, 0, ErrParseDate
	}
	year, month, _, err = atoi3(parts[0], parts[1], "1")
	if err != nil {
		return 0, 0, err
	}
	if month < 1 || month > 12 {
		return 0, 0, ErrParseDate
	}
	return year, month, nil
}

// makeDate builds a date and rejects components that time.Date would
// silently normalize (e.g. Feb 30 rolling into March).
func makeDate(year, month, day int) (Date, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return Date{}, ErrParseDate
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return Date{}, ErrParseDate
	}
	return Date{Time: t}, nil
}

func atoi3(a, b, c string) (int, int, int, error) {
	for _, s := range []string{a, b, c} {
		if s == "" || !allDigits(s) {
			return 0, 0, 0, ErrParseDate
		}
	}
	x, _ := strconv.Atoi(a)
	y, _ := strconv.Atoi(b)
	z, _ := strconv.Atoi(c)
	return x, y, z, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
