// Package http is the presentation shell: a JSON API over the expense
// service. All validation errors surface as client errors; core state is
// never partially mutated on a failed request.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"tally/internal/cache"
	"tally/internal/core"
	"tally/internal/services"
)

type Server struct {
	http.Server
	svc         *services.ExpenseService
	exportDir   string
	rateLimiter *rateLimiter

	// Cached read views, purged on every write.
	summaryCache *cache.LRUCache[core.Summary]
	monthCache   *cache.LRUCache[services.PeriodView]

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// server.
func NewServer(addr string, svc *services.ExpenseService, exportDir string) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:           addr,
			Handler:        mux,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16,
		},
		svc:          svc,
		exportDir:    exportDir,
		rateLimiter:  newRateLimiter(),
		summaryCache: cache.NewLRUCache[core.Summary](4, 5*time.Minute),
		monthCache:   cache.NewLRUCache[services.PeriodView](100, 5*time.Minute),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /expenses", s.withMiddleware(s.handleAddExpense))
	mux.HandleFunc("GET /expenses", s.withMiddleware(s.handleListExpenses))

	mux.HandleFunc("GET /categories", s.withMiddleware(s.handleListCategories))
	mux.HandleFunc("POST /categories", s.withMiddleware(s.handleAddCategory))
	mux.HandleFunc("PATCH /categories/{name}", s.withMiddleware(s.handleRenameCategory))
	mux.HandleFunc("DELETE /categories/{name}", s.withMiddleware(s.handleRemoveCategory))

	mux.HandleFunc("GET /summary", s.withMiddleware(s.handleSummary))
	mux.HandleFunc("GET /periods/daily", s.withMiddleware(s.handleDaily))
	mux.HandleFunc("GET /periods/monthly", s.withMiddleware(s.handleMonthly))
	mux.HandleFunc("GET /periods/weekly", s.withMiddleware(s.handleWeekly))

	mux.HandleFunc("POST /export", s.withMiddleware(s.handleExport))

	return s
}

// Shutdown stops the listener and background cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// invalidateViews drops every cached read view. Writes are rare in a
// single-user tracker; purging everything keeps invalidation trivial.
func (s *Server) invalidateViews() {
	s.summaryCache.Purge()
	s.monthCache.Purge()
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
