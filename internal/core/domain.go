package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date is a calendar date. It carries no time-of-day and no time zone.
	// The canonical textual form is YYYY-MM-DD, which sorts lexically in
	// calendar order.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Expense struct {
		Date        Date
		Description string // optional free text
		Amount      Money
		Category    string
	}
)

var (
	ErrParseDate         = errors.New("unrecognized date")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrInvalidSelection  = errors.New("selection out of range")
	ErrEmptyLedger       = errors.New("no expenses recorded")
)

// NewDate creates a Date from year, month, day. Components are trusted;
// use ParseDate for raw input.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month (1-12)
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// String returns the canonical YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.AddDate(0, 0, n)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrCategoryNotFound
	}
	return nil
}
