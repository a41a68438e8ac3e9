// Package export writes the ledger to spreadsheet-compatible files.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"tally/internal/core"
)

var header = []string{"amount", "description", "category", "date"}

// WriteCSV writes one row per expense in ledger order, preceded by a
// header row. An empty ledger yields the header row only.
func WriteCSV(w io.Writer, expenses []core.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, e := range expenses {
		row := []string{
			e.Amount.Decimal().StringFixed(2),
			e.Description,
			e.Category,
			e.Date.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the export to the given path, overwriting any existing
// file.
func SaveCSV(ctx context.Context, path string, expenses []core.Expense) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := WriteCSV(f, expenses); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	slog.InfoContext(ctx, "Ledger exported", "path", path, "rows", len(expenses))
	return nil
}

// DefaultFilename names an export after the day it was taken.
func DefaultFilename(now time.Time) string {
	return "expenses_" + now.Format("20060102") + ".csv"
}
