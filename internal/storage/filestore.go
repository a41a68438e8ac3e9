// Package storage persists the ledger and custom categories to a single
// JSON file. The file is read once at startup and rewritten atomically on
// change.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"tally/internal/core"
)

// File layout:
//
//	{
//	  "expenses": [{"amount": 12.34, "description": "...", "category": "...", "date": "YYYY-MM-DD"}],
//	  "custom_categories": {"rent": 0}
//	}
//
// The numeric values under custom_categories are a leftover counter field;
// they are ignored on load and written as 0.

type FileStore struct {
	path string
}

type fileExpense struct {
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
}

func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the ledger file. A missing file is not an error: it yields an
// empty ledger and no custom categories.
func (s *FileStore) Load(ctx context.Context) ([]core.Expense, []string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.InfoContext(ctx, "Ledger file absent, starting empty", "path", s.path)
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read ledger file: %w", err)
	}

	var doc struct {
		Expenses         []fileExpense   `json:"expenses"`
		CustomCategories json.RawMessage `json:"custom_categories"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("decode ledger file: %w", err)
	}

	expenses := make([]core.Expense, 0, len(doc.Expenses))
	for i, fe := range doc.Expenses {
		cents, err := core.ParseDecimalToCents(fe.Amount.String())
		if err != nil {
			return nil, nil, fmt.Errorf("record %d: amount %q: %w", i, fe.Amount, err)
		}
		date, err := parseCanonicalDate(fe.Date)
		if err != nil {
			return nil, nil, fmt.Errorf("record %d: date %q: %w", i, fe.Date, err)
		}
		expenses = append(expenses, core.Expense{
			Date:        date,
			Description: fe.Description,
			Amount:      core.Money{Cents: cents},
			Category:    fe.Category,
		})
	}

	custom, err := decodeCategoryKeys(doc.CustomCategories)
	if err != nil {
		return nil, nil, fmt.Errorf("decode custom categories: %w", err)
	}

	slog.InfoContext(ctx, "Ledger loaded",
		"path", s.path,
		"expenses", len(expenses),
		"custom_categories", len(custom))
	return expenses, custom, nil
}

// Save rewrites the ledger file atomically (temp file + rename).
func (s *FileStore) Save(ctx context.Context, expenses []core.Expense, custom []string) error {
	var buf bytes.Buffer
	buf.WriteString(`{"expenses":[`)
	for i, e := range expenses {
		if i > 0 {
			buf.WriteByte(',')
		}
		fe := fileExpense{
			Amount:      json.Number(e.Amount.String()),
			Description: e.Description,
			Category:    e.Category,
			Date:        e.Date.String(),
		}
		b, err := json.Marshal(fe)
		if err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
		buf.Write(b)
	}
	// Write categories by hand to keep their insertion order in the file.
	buf.WriteString(`],"custom_categories":{`)
	for i, name := range custom {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return fmt.Errorf("encode category %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteString(":0")
	}
	buf.WriteString("}}")

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write ledger file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace ledger file: %w", err)
	}

	slog.DebugContext(ctx, "Ledger saved",
		"path", s.path,
		"expenses", len(expenses),
		"custom_categories", len(custom))
	return nil
}

// decodeCategoryKeys extracts object keys in document order. A plain
// map[string]float64 unmarshal would scramble the custom category order.
func decodeCategoryKeys(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", tok)
		}
		keys = append(keys, key)
		// Placeholder counter value, unused.
		var ignored json.Number
		if err := dec.Decode(&ignored); err != nil {
			return nil, fmt.Errorf("category %q: %w", key, err)
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return keys, nil
}

func parseCanonicalDate(s string) (core.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return core.Date{}, core.ErrParseDate
	}
	return core.Date{Time: t}, nil
}
