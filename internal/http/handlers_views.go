package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"tally/internal/core"
	"tally/internal/export"
	"tally/internal/services"
)

type summaryResponse struct {
	Total      json.Number       `json:"total"`
	Count      int               `json:"count"`
	PerRecord  json.Number       `json:"average_per_record"`
	Categories []categoryStatRow `json:"categories"`
	Highest    categoryAmountRow `json:"highest"`
	Lowest     categoryAmountRow `json:"lowest"`
}

type categoryStatRow struct {
	Name    string      `json:"name"`
	Amount  json.Number `json:"amount"`
	Count   int         `json:"count"`
	Average json.Number `json:"average"`
}

type categoryAmountRow struct {
	Name   string      `json:"name"`
	Amount json.Number `json:"amount"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if cached, ok := s.summaryCache.Get("summary"); ok {
		slog.DebugContext(r.Context(), "Summary cache hit")
		writeJSON(w, http.StatusOK, toSummaryResponse(cached))
		return
	}

	sum, err := s.svc.Summary(r.Context())
	if errors.Is(err, core.ErrEmptyLedger) {
		// An empty ledger is feedback, not a failure.
		writeJSON(w, http.StatusOK, struct {
			Count   int    `json:"count"`
			Message string `json:"message"`
		}{0, "no expenses recorded yet"})
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Summary error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.summaryCache.Set("summary", sum)
	writeJSON(w, http.StatusOK, toSummaryResponse(sum))
}

func toSummaryResponse(sum core.Summary) summaryResponse {
	out := summaryResponse{
		Total:     json.Number(sum.Total.String()),
		Count:     sum.Count,
		PerRecord: json.Number(sum.PerRecord.StringFixed(2)),
		Highest:   categoryAmountRow{Name: sum.Highest.Name, Amount: json.Number(sum.Highest.Amount.String())},
		Lowest:    categoryAmountRow{Name: sum.Lowest.Name, Amount: json.Number(sum.Lowest.Amount.String())},
	}
	for _, c := range sum.Categories {
		out.Categories = append(out.Categories, categoryStatRow{
			Name:    c.Name,
			Amount:  json.Number(c.Amount.String()),
			Count:   c.Count,
			Average: json.Number(c.Average.StringFixed(2)),
		})
	}
	return out
}

type periodResponse struct {
	Total    json.Number   `json:"total"`
	Count    int           `json:"count"`
	Expenses []expenseJSON `json:"expenses"`
	Message  string        `json:"message,omitempty"`
}

func toPeriodResponse(v services.PeriodView) periodResponse {
	out := periodResponse{
		Total:    json.Number(v.Total.String()),
		Count:    len(v.Expenses),
		Expenses: toExpenseListJSON(v.Expenses),
	}
	if len(v.Expenses) == 0 {
		out.Message = "no expenses found"
	}
	return out
}

// handleDaily serves /periods/daily?date=..., where date accepts the same
// flexible forms as expense entry.
func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		writeError(w, http.StatusBadRequest, "date query parameter is required")
		return
	}
	date, err := core.ParseDate(raw, today())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPeriodResponse(s.svc.Daily(r.Context(), date)))
}

// handleMonthly serves /periods/monthly?month=YYYY-MM.
func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	year, month, ok := s.parseMonthParam(w, r)
	if !ok {
		return
	}

	key := r.URL.Query().Get("month")
	if cached, hit := s.monthCache.Get(key); hit {
		slog.DebugContext(r.Context(), "Month cache hit", "month", key)
		writeJSON(w, http.StatusOK, toPeriodResponse(cached))
		return
	}

	view := s.svc.Monthly(r.Context(), year, month)
	s.monthCache.Set(key, view)
	writeJSON(w, http.StatusOK, toPeriodResponse(view))
}

type weekBucketRow struct {
	Week     int           `json:"week"`
	Start    string        `json:"start"`
	End      string        `json:"end"`
	Total    json.Number   `json:"total"`
	Expenses []expenseJSON `json:"expenses"`
	Message  string        `json:"message,omitempty"`
}

// handleWeekly serves /periods/weekly?month=YYYY-MM. Every window of the
// month appears in the response, including empty ones.
func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request) {
	year, month, ok := s.parseMonthParam(w, r)
	if !ok {
		return
	}

	buckets := s.svc.Weekly(r.Context(), year, month)
	rows := make([]weekBucketRow, len(buckets))
	for i, b := range buckets {
		rows[i] = weekBucketRow{
			Week:     b.Number,
			Start:    b.Start.String(),
			End:      b.End.String(),
			Total:    json.Number(b.Total.String()),
			Expenses: toExpenseListJSON(b.Expenses),
		}
		if len(b.Expenses) == 0 {
			rows[i].Message = "no expenses found"
		}
	}
	writeJSON(w, http.StatusOK, struct {
		Weeks []weekBucketRow `json:"weeks"`
	}{rows})
}

func (s *Server) parseMonthParam(w http.ResponseWriter, r *http.Request) (year, month int, ok bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("month"))
	if raw == "" {
		writeError(w, http.StatusBadRequest, "month query parameter is required (YYYY-MM)")
		return 0, 0, false
	}
	year, month, err := core.ParseMonth(raw)
	if err != nil {
		writeDomainError(w, err)
		return 0, 0, false
	}
	return year, month, true
}

type exportRequest struct {
	Filename string `json:"filename"`
}

// handleExport writes the ledger as CSV under the configured export
// directory and reports where it went.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	filename := sanitizeInput(req.Filename)
	if filename == "" {
		filename = export.DefaultFilename(time.Now())
	}
	if filepath.Base(filename) != filename {
		writeError(w, http.StatusUnprocessableEntity, "filename must not contain path separators")
		return
	}

	path := filepath.Join(s.exportDir, filename)
	rows, err := s.svc.Export(r.Context(), path)
	if err != nil {
		slog.ErrorContext(r.Context(), "Export error", "error", err, "path", path)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Path string `json:"path"`
		Rows int    `json:"rows"`
	}{path, rows})
}
