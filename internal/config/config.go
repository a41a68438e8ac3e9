package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection: "file" persists to LedgerFile, "memory" keeps
	// the session in RAM only.
	DataBackend string

	// Persistence
	LedgerFile string

	// Export
	ExportDir string

	// Logging
	LogLevel string
}

// Load reads configuration from the environment, after loading a local
// .env file when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8081"),
		DataBackend: getEnv("DATA_BACKEND", "file"),
		LedgerFile:  getEnv("LEDGER_FILE", "./data/expenses.json"),
		ExportDir:   getEnv("EXPORT_DIR", "./data"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "file", "memory":
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [file memory]", c.DataBackend))
	}

	if c.DataBackend == "file" && strings.TrimSpace(c.LedgerFile) == "" {
		errs = append(errs, "ledger file path is required for the file backend")
	}
	if strings.TrimSpace(c.ExportDir) == "" {
		errs = append(errs, "export directory is required")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
