package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Aggregation over expense slices. All functions here are pure: they never
// mutate their input and depend only on it.

// Total returns the sum of all amounts, zero for an empty slice.
func Total(expenses []Expense) Money {
	var sum Money
	for _, e := range expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// SumByCategory maps each category to the sum of its amounts. Categories
// with no matching expense are absent, not zero-valued.
func SumByCategory(expenses []Expense) map[string]Money {
	sums := make(map[string]Money)
	for _, e := range expenses {
		sums[e.Category] = sums[e.Category].Add(e.Amount)
	}
	return sums
}

// CountByCategory maps each category to its number of expenses.
func CountByCategory(expenses []Expense) map[string]int {
	counts := make(map[string]int)
	for _, e := range expenses {
		counts[e.Category]++
	}
	return counts
}

// AverageByCategory maps each category to sum/count as an exact decimal.
// A category is present only if at least one expense matched, so the
// divisor is never zero.
func AverageByCategory(expenses []Expense) map[string]decimal.Decimal {
	sums := SumByCategory(expenses)
	counts := CountByCategory(expenses)
	avgs := make(map[string]decimal.Decimal, len(sums))
	for name, sum := range sums {
		avgs[name] = sum.Decimal().Div(decimal.NewFromInt(int64(counts[name])))
	}
	return avgs
}

// Extremes returns the categories with the highest and lowest summed
// amount. Ties break to the lexically smaller category name, so the
// result is deterministic. Fails with ErrEmptyLedger when no expenses
// are given.
func Extremes(expenses []Expense) (highest, lowest CategoryAmount, err error) {
	sums := SumByCategory(expenses)
	if len(sums) == 0 {
		return CategoryAmount{}, CategoryAmount{}, ErrEmptyLedger
	}
	names := make([]string, 0, len(sums))
	for name := range sums {
		names = append(names, name)
	}
	sort.Strings(names)

	highest = CategoryAmount{Name: names[0], Amount: sums[names[0]]}
	lowest = highest
	for _, name := range names[1:] {
		amount := sums[name]
		if amount.Cents > highest.Amount.Cents {
			highest = CategoryAmount{Name: name, Amount: amount}
		}
		if amount.Cents < lowest.Amount.Cents {
			lowest = CategoryAmount{Name: name, Amount: amount}
		}
	}
	return highest, lowest, nil
}

// Summarize builds the full summary for a sequence of expenses: total,
// transaction count, per-category statistics ordered by amount descending,
// and the extremes. Fails with ErrEmptyLedger for an empty sequence.
func Summarize(expenses []Expense) (Summary, error) {
	if len(expenses) == 0 {
		return Summary{}, ErrEmptyLedger
	}

	total := Total(expenses)
	sums := SumByCategory(expenses)
	counts := CountByCategory(expenses)

	stats := make([]CategoryStat, 0, len(sums))
	for name, sum := range sums {
		count := counts[name]
		stats = append(stats, CategoryStat{
			Name:    name,
			Amount:  sum,
			Count:   count,
			Average: sum.Decimal().Div(decimal.NewFromInt(int64(count))),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Amount.Cents != stats[j].Amount.Cents {
			return stats[i].Amount.Cents > stats[j].Amount.Cents
		}
		return stats[i].Name < stats[j].Name
	})

	highest, lowest, err := Extremes(expenses)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Total:      total,
		Count:      len(expenses),
		PerRecord:  total.Decimal().Div(decimal.NewFromInt(int64(len(expenses)))),
		Categories: stats,
		Highest:    highest,
		Lowest:     lowest,
	}, nil
}
