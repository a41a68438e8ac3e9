// Package backend selects how a session's state is kept: persisted to the
// ledger file, or memory-only.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"tally/internal/services"
	"tally/internal/storage"
)

// Type represents the kind of backend
type Type string

const (
	FileBackend   Type = "file"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known
func (t Type) IsValid() bool {
	switch t {
	case FileBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Config holds what a backend needs to start.
type Config struct {
	Type       Type
	LedgerFile string
}

// Open creates the service for the configured backend, loading persisted
// state for the file backend.
func Open(ctx context.Context, cfg Config) (*services.ExpenseService, error) {
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case FileBackend:
		store, err := storage.NewFileStore(cfg.LedgerFile)
		if err != nil {
			return nil, fmt.Errorf("initialize file store: %w", err)
		}
		svc, err := services.Open(ctx, store)
		if err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "Initialized file backend", "ledger_file", cfg.LedgerFile)
		return svc, nil

	default:
		svc, err := services.Open(ctx, nil)
		if err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "Initialized memory backend")
		return svc, nil
	}
}
