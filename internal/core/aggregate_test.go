package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func sampleLedger() []Expense {
	return []Expense{
		{Date: NewDate(2024, 1, 5), Description: "weekly shop", Amount: Money{Cents: 10000}, Category: "food"},
		{Date: NewDate(2024, 1, 20), Description: "takeaway", Amount: Money{Cents: 5000}, Category: "food"},
		{Date: NewDate(2024, 1, 10), Description: "petrol", Amount: Money{Cents: 3000}, Category: "fuel"},
	}
}

func TestTotal(t *testing.T) {
	if got := Total(sampleLedger()); got.Cents != 18000 {
		t.Fatalf("expected 18000, got %d", got.Cents)
	}
	if got := Total(nil); got.Cents != 0 {
		t.Fatalf("expected 0 for empty input, got %d", got.Cents)
	}
}

func TestSumByCategory(t *testing.T) {
	sums := SumByCategory(sampleLedger())
	if len(sums) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(sums))
	}
	if sums["food"].Cents != 15000 || sums["fuel"].Cents != 3000 {
		t.Fatalf("unexpected sums: %v", sums)
	}

	// Category sums must add up to the total.
	var sum int64
	for _, m := range sums {
		sum += m.Cents
	}
	if sum != Total(sampleLedger()).Cents {
		t.Fatalf("category sums %d != total %d", sum, Total(sampleLedger()).Cents)
	}
}

func TestAverageByCategory(t *testing.T) {
	ledger := sampleLedger()
	avgs := AverageByCategory(ledger)
	sums := SumByCategory(ledger)
	counts := CountByCategory(ledger)
	for name, avg := range avgs {
		want := sums[name].Decimal().Div(decimal.NewFromInt(int64(counts[name])))
		if !avg.Equal(want) {
			t.Fatalf("%s: expected %s, got %s", name, want, avg)
		}
	}
	if !avgs["food"].Equal(decimal.RequireFromString("75")) {
		t.Fatalf("food average expected 75, got %s", avgs["food"])
	}
}

func TestExtremes(t *testing.T) {
	highest, lowest, err := Extremes(sampleLedger())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if highest.Name != "food" || highest.Amount.Cents != 15000 {
		t.Fatalf("unexpected highest %+v", highest)
	}
	if lowest.Name != "fuel" || lowest.Amount.Cents != 3000 {
		t.Fatalf("unexpected lowest %+v", lowest)
	}
}

func TestExtremesEmpty(t *testing.T) {
	if _, _, err := Extremes(nil); !errors.Is(err, ErrEmptyLedger) {
		t.Fatalf("expected ErrEmptyLedger, got %v", err)
	}
}

func TestExtremesTieBreak(t *testing.T) {
	// Equal sums: the lexically smaller name wins on both ends.
	tied := []Expense{
		{Date: NewDate(2024, 2, 1), Amount: Money{Cents: 100}, Category: "zeta"},
		{Date: NewDate(2024, 2, 2), Amount: Money{Cents: 100}, Category: "alpha"},
	}
	highest, lowest, err := Extremes(tied)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if highest.Name != "alpha" || lowest.Name != "alpha" {
		t.Fatalf("expected alpha/alpha, got %s/%s", highest.Name, lowest.Name)
	}
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(sampleLedger())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if s.Total.Cents != 18000 || s.Count != 3 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if !s.PerRecord.Equal(decimal.RequireFromString("60")) {
		t.Fatalf("per-record average expected 60, got %s", s.PerRecord)
	}
	if len(s.Categories) != 2 {
		t.Fatalf("expected 2 category rows, got %d", len(s.Categories))
	}
	// Rows ordered by amount descending.
	if s.Categories[0].Name != "food" || s.Categories[1].Name != "fuel" {
		t.Fatalf("unexpected row order: %+v", s.Categories)
	}
	if s.Categories[0].Count != 2 {
		t.Fatalf("food count expected 2, got %d", s.Categories[0].Count)
	}
	if s.Highest.Name != "food" || s.Lowest.Name != "fuel" {
		t.Fatalf("unexpected extremes: %+v", s)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if _, err := Summarize(nil); !errors.Is(err, ErrEmptyLedger) {
		t.Fatalf("expected ErrEmptyLedger, got %v", err)
	}
}
