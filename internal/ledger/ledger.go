// Package ledger holds the in-memory expense collection: an ordered,
// append-only sequence with no edit or delete operations.
package ledger

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"tally/internal/core"
)

// CategoryChecker answers membership questions at insert time. An expense
// keeps its category name even if the category is later removed; the
// reference is not re-validated afterwards.
type CategoryChecker interface {
	Contains(name string) bool
}

// Ledger is the ordered collection of expense records for one session.
// Not safe for concurrent use; callers serialize access.
type Ledger struct {
	categories CategoryChecker
	items      []core.Expense
}

func New(categories CategoryChecker) *Ledger {
	return &Ledger{categories: categories}
}

// Add appends an expense. The amount must be positive and the category
// must exist in the registry at this moment; on any failure the ledger is
// left unchanged.
func (l *Ledger) Add(e core.Expense) error {
	e.Category = strings.ToLower(strings.TrimSpace(e.Category))
	if err := e.Validate(); err != nil {
		return err
	}
	if !l.categories.Contains(e.Category) {
		return fmt.Errorf("category %q: %w", e.Category, core.ErrCategoryNotFound)
	}
	l.items = append(l.items, e)
	return nil
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.items)
}

// All returns a copy of every record in insertion order.
func (l *Ledger) All() []core.Expense {
	return slices.Clone(l.items)
}

// Query returns a lazy sequence of the records matching pred, in insertion
// order. The sequence is restartable: each range re-reads the current
// ledger contents.
func (l *Ledger) Query(pred func(core.Expense) bool) iter.Seq[core.Expense] {
	return func(yield func(core.Expense) bool) {
		for _, e := range l.items {
			if pred(e) && !yield(e) {
				return
			}
		}
	}
}

// OnDay is a Query predicate matching a single calendar date.
func OnDay(target core.Date) func(core.Expense) bool {
	return func(e core.Expense) bool {
		return e.Date.Equal(target.Time)
	}
}

// Between is a Query predicate matching the inclusive range [start, end].
func Between(start, end core.Date) func(core.Expense) bool {
	return func(e core.Expense) bool {
		return core.InRange(e.Date, start, end)
	}
}
