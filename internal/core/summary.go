package core

import "github.com/shopspring/decimal"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// CategoryStat is one category row of a summary.
type CategoryStat struct {
	Name    string
	Amount  Money
	Count   int
	Average decimal.Decimal
}

// Summary is the structured result of aggregating a sequence of expenses.
// Presentation layers format it; the core never builds display strings.
type Summary struct {
	Total      Money
	Count      int
	PerRecord  decimal.Decimal // average amount per transaction
	Categories []CategoryStat  // ordered by amount descending
	Highest    CategoryAmount
	Lowest     CategoryAmount
}

// WeekBucket is one window of a weekly breakdown. Empty windows are kept
// so callers can report "no expenses found" instead of dropping them.
type WeekBucket struct {
	Number   int // 1-based within the month
	Start    Date
	End      Date
	Expenses []Expense
	Total    Money
}
