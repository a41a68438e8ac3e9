// tally-export loads the ledger file and writes a CSV export, without
// starting the server.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"tally/internal/config"
	"tally/internal/export"
	applog "tally/internal/log"
	"tally/internal/services"
	"tally/internal/storage"
)

func main() {
	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Component: "tally-export",
	})
	applog.SetDefault(logger)

	out := flag.String("out", "", "output path (default: <export dir>/expenses_YYYYMMDD.csv)")
	flag.Parse()

	path := *out
	if path == "" {
		path = filepath.Join(cfg.ExportDir, export.DefaultFilename(time.Now()))
	}

	ctx := context.Background()

	store, err := storage.NewFileStore(cfg.LedgerFile)
	if err != nil {
		logger.Error("Failed to open ledger file", "error", err, "path", cfg.LedgerFile)
		os.Exit(1)
	}
	svc, err := services.Open(ctx, store)
	if err != nil {
		logger.Error("Failed to load ledger", "error", err, "path", cfg.LedgerFile)
		os.Exit(1)
	}

	rows, err := svc.Export(ctx, path)
	if err != nil {
		logger.Error("Export failed", "error", err, "path", path)
		os.Exit(1)
	}
	logger.Info("Export complete", "path", path, "rows", rows)
}
