package ledger

import (
	"errors"
	"slices"
	"testing"

	"tally/internal/core"
	"tally/internal/registry"
)

func newTestLedger(t *testing.T) (*Ledger, *registry.Registry) {
	t.Helper()
	reg := registry.New()
	return New(reg), reg
}

func expense(day int, cents int64, category string) core.Expense {
	return core.Expense{
		Date:     core.NewDate(2024, 1, day),
		Amount:   core.Money{Cents: cents},
		Category: category,
	}
}

func TestAddAndAll(t *testing.T) {
	l, _ := newTestLedger(t)
	if err := l.Add(expense(5, 10000, "groceries")); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if err := l.Add(expense(10, 3000, "utilities")); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if l.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", l.Len())
	}
	all := l.All()
	if all[0].Date.Day() != 5 || all[1].Date.Day() != 10 {
		t.Fatalf("insertion order not preserved: %+v", all)
	}

	// All returns a copy: mutating it must not touch the ledger.
	all[0].Amount = core.Money{Cents: 1}
	if l.All()[0].Amount.Cents != 10000 {
		t.Fatalf("All leaked internal state")
	}
}

func TestAddRejectsInvalidAmount(t *testing.T) {
	l, _ := newTestLedger(t)
	for _, cents := range []int64{0, -100} {
		err := l.Add(expense(5, cents, "groceries"))
		if !errors.Is(err, core.ErrInvalidAmount) {
			t.Fatalf("cents=%d: expected ErrInvalidAmount, got %v", cents, err)
		}
	}
	if l.Len() != 0 {
		t.Fatalf("ledger changed on failed add")
	}
}

func TestAddRejectsUnknownCategory(t *testing.T) {
	l, _ := newTestLedger(t)
	err := l.Add(expense(5, 100, "holidays"))
	if !errors.Is(err, core.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("ledger changed on failed add")
	}
}

func TestAddNormalizesCategory(t *testing.T) {
	l, reg := newTestLedger(t)
	if err := reg.AddCustom("rent"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if err := l.Add(expense(5, 100, "  Rent ")); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got := l.All()[0].Category; got != "rent" {
		t.Fatalf("expected normalized category, got %q", got)
	}
}

func TestCategoryRemovalDoesNotCascade(t *testing.T) {
	l, reg := newTestLedger(t)
	_ = reg.AddCustom("rent")
	if err := l.Add(expense(5, 100, "rent")); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if err := reg.RemoveCustom("rent"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	// The record keeps its soft reference.
	if got := l.All()[0].Category; got != "rent" {
		t.Fatalf("expected record untouched, got %q", got)
	}
	// But new adds against the removed category fail.
	if err := l.Add(expense(6, 100, "rent")); !errors.Is(err, core.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestQuery(t *testing.T) {
	l, _ := newTestLedger(t)
	_ = l.Add(expense(5, 10000, "groceries"))
	_ = l.Add(expense(20, 5000, "groceries"))
	_ = l.Add(expense(10, 3000, "transportation"))

	got := slices.Collect(l.Query(OnDay(core.NewDate(2024, 1, 5))))
	if len(got) != 1 || got[0].Amount.Cents != 10000 {
		t.Fatalf("unexpected daily query result: %+v", got)
	}

	start, end := core.MonthRange(2024, 1)
	got = slices.Collect(l.Query(Between(start, end)))
	if len(got) != 3 {
		t.Fatalf("expected 3 records for 2024-01, got %d", len(got))
	}

	// Restartable: a second range sees the same records.
	seq := l.Query(Between(start, end))
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if len(first) != len(second) {
		t.Fatalf("sequence not restartable: %d vs %d", len(first), len(second))
	}

	// Early break must not panic or over-consume.
	n := 0
	for range l.Query(func(core.Expense) bool { return true }) {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("expected early break after 1, got %d", n)
	}
}
