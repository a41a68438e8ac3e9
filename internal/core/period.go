package core

// Period bucketing: daily, weekly and monthly views over a sequence of
// expenses. Ranges are inclusive on both ends.

// MonthRange returns the first and last calendar day of a month. The end
// is computed as the first day of the next month minus one day, which
// handles the December rollover and leap Februaries.
func MonthRange(year, month int) (start, end Date) {
	start = NewDate(year, month, 1)
	end = NewDate(year, month+1, 1).AddDays(-1)
	return start, end
}

// InRange reports whether d falls within [start, end].
func InRange(d, start, end Date) bool {
	return !d.Before(start.Time) && !d.After(end.Time)
}

// FilterDay returns the expenses dated exactly target, in input order.
func FilterDay(expenses []Expense, target Date) []Expense {
	out := make([]Expense, 0)
	for _, e := range expenses {
		if e.Date.Equal(target.Time) {
			out = append(out, e)
		}
	}
	return out
}

// FilterMonth returns the expenses within the given month, in input order.
func FilterMonth(expenses []Expense, year, month int) []Expense {
	start, end := MonthRange(year, month)
	out := make([]Expense, 0)
	for _, e := range expenses {
		if InRange(e.Date, start, end) {
			out = append(out, e)
		}
	}
	return out
}

// BucketByWeek partitions a month into consecutive 7-day windows starting
// at day 1 and assigns each matching expense to its window. The final
// window is clipped to the month's end, so it may be shorter than seven
// days (a 31-day month yields windows of 7,7,7,7,3). Windows with no
// expenses are still returned.
func BucketByWeek(expenses []Expense, year, month int) []WeekBucket {
	start, end := MonthRange(year, month)

	var buckets []WeekBucket
	number := 1
	for ws := start; !ws.After(end.Time); ws = ws.AddDays(7) {
		we := ws.AddDays(6)
		if we.After(end.Time) {
			we = end
		}
		bucket := WeekBucket{Number: number, Start: ws, End: we, Expenses: []Expense{}}
		for _, e := range expenses {
			if InRange(e.Date, ws, we) {
				bucket.Expenses = append(bucket.Expenses, e)
				bucket.Total = bucket.Total.Add(e.Amount)
			}
		}
		buckets = append(buckets, bucket)
		number++
	}
	return buckets
}
