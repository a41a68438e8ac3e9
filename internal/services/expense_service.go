// Package services orchestrates the registry, ledger and persistence
// behind a single serialized facade used by the presentation shells.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"tally/internal/core"
	"tally/internal/export"
	"tally/internal/ledger"
	"tally/internal/registry"
)

// Persister loads and saves the ledger state. A nil Persister means the
// session is memory-only.
type Persister interface {
	Load(ctx context.Context) ([]core.Expense, []string, error)
	Save(ctx context.Context, expenses []core.Expense, custom []string) error
}

// PeriodView is the result of a daily or monthly query. Expenses may be
// empty; callers report that rather than dropping the view.
type PeriodView struct {
	Expenses []core.Expense
	Total    core.Money
}

// ExpenseService owns one session's state. The core is single-threaded by
// design; the mutex only serializes the HTTP shell's concurrent requests.
type ExpenseService struct {
	mu    sync.Mutex
	reg   *registry.Registry
	led   *ledger.Ledger
	store Persister
}

// Open builds a service, loading persisted state when a store is given.
func Open(ctx context.Context, store Persister) (*ExpenseService, error) {
	s := &ExpenseService{store: store}

	var expenses []core.Expense
	var custom []string
	if store != nil {
		var err error
		expenses, custom, err = store.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load ledger: %w", err)
		}
	}

	s.reg = registry.NewWithCustom(custom)
	s.led = ledger.New(s.reg)
	for i, e := range expenses {
		if err := s.restore(ctx, i, e); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// restore re-admits one persisted record. A category removed in a past
// session leaves a dangling reference; that is part of the documented
// model, so the category is registered just long enough to load the
// record rather than losing it.
func (s *ExpenseService) restore(ctx context.Context, i int, e core.Expense) error {
	err := s.led.Add(e)
	if err == nil {
		return nil
	}
	slog.WarnContext(ctx, "Persisted expense references unknown category",
		"record", i, "category", e.Category, "error", err)

	if s.reg.AddCustom(e.Category) != nil {
		return fmt.Errorf("restore record %d: %w", i, err)
	}
	err = s.led.Add(e)
	_ = s.reg.RemoveCustom(e.Category)
	if err != nil {
		return fmt.Errorf("restore record %d: %w", i, err)
	}
	return nil
}

// AddExpense validates and appends a record, then persists. Validation
// failures leave the ledger untouched.
func (s *ExpenseService) AddExpense(ctx context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.led.Add(e); err != nil {
		return err
	}
	if err := s.persist(ctx); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Expense recorded",
		"date", e.Date.String(),
		"category", e.Category,
		"amount", e.Amount.String(),
		"ledger_size", s.led.Len())
	return nil
}

// Expenses returns all records in insertion order.
func (s *ExpenseService) Expenses() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.led.All()
}

// Categories returns every category name, defaults first.
func (s *ExpenseService) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.All()
}

// CategoryByIndex resolves a menu position to a category name.
func (s *ExpenseService) CategoryByIndex(i int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.ByIndex(i)
}

func (s *ExpenseService) AddCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reg.AddCustom(name); err != nil {
		return err
	}
	if err := s.persist(ctx); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Category added", "name", name)
	return nil
}

func (s *ExpenseService) RenameCategory(ctx context.Context, oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reg.RenameCustom(oldName, newName); err != nil {
		return err
	}
	if err := s.persist(ctx); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Category renamed", "from", oldName, "to", newName)
	return nil
}

func (s *ExpenseService) RemoveCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reg.RemoveCustom(name); err != nil {
		return err
	}
	if err := s.persist(ctx); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Category removed", "name", name)
	return nil
}

// Summary aggregates the whole ledger. ErrEmptyLedger when nothing is
// recorded yet.
func (s *ExpenseService) Summary(ctx context.Context) (core.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Summarize(s.led.All())
}

// Daily returns the expenses dated exactly target.
func (s *ExpenseService) Daily(ctx context.Context, target core.Date) PeriodView {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := slices.Collect(s.led.Query(ledger.OnDay(target)))
	return PeriodView{Expenses: emptyNotNil(matched), Total: core.Total(matched)}
}

// Monthly returns the expenses within a calendar month.
func (s *ExpenseService) Monthly(ctx context.Context, year, month int) PeriodView {
	s.mu.Lock()
	defer s.mu.Unlock()
	start, end := core.MonthRange(year, month)
	matched := slices.Collect(s.led.Query(ledger.Between(start, end)))
	return PeriodView{Expenses: emptyNotNil(matched), Total: core.Total(matched)}
}

// Weekly partitions a month into 7-day windows; empty windows included.
func (s *ExpenseService) Weekly(ctx context.Context, year, month int) []core.WeekBucket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.BucketByWeek(s.led.All(), year, month)
}

// Export writes the full ledger as CSV to path.
func (s *ExpenseService) Export(ctx context.Context, path string) (int, error) {
	s.mu.Lock()
	expenses := s.led.All()
	s.mu.Unlock()
	if err := export.SaveCSV(ctx, path, expenses); err != nil {
		return 0, err
	}
	return len(expenses), nil
}

// Close flushes state to the store.
func (s *ExpenseService) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx)
}

func (s *ExpenseService) persist(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(ctx, s.led.All(), s.reg.Custom()); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

func emptyNotNil(in []core.Expense) []core.Expense {
	if in == nil {
		return []core.Expense{}
	}
	return in
}
