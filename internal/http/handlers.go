package http

import (
	"errors"
	"log/slog"
	"net/http"

	"tally/internal/core"
)

type addExpenseRequest struct {
	Amount        flexNumber `json:"amount"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	CategoryIndex *int       `json:"category_index"`
	Date          string     `json:"date"`
}

// handleAddExpense records one expense. The category may be given by name
// or as an index into the category list; the date accepts the flexible
// forms understood by ParseDate.
func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount.String())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	date, err := core.ParseDate(req.Date, today())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	category := sanitizeInput(req.Category)
	if req.CategoryIndex != nil {
		// Menu indexes are a shell concern: translate to the key here,
		// before the core sees it.
		category, err = s.svc.CategoryByIndex(*req.CategoryIndex)
		if err != nil {
			writeDomainError(w, err)
			return
		}
	}

	e := core.Expense{
		Date:        date,
		Description: sanitizeInput(req.Description),
		Amount:      core.Money{Cents: cents},
		Category:    category,
	}
	if err := s.svc.AddExpense(r.Context(), e); err != nil {
		if !isDomainErr(err) {
			slog.ErrorContext(r.Context(), "Expense append error", "error", err)
		}
		writeDomainError(w, err)
		return
	}

	s.invalidateViews()
	writeJSON(w, http.StatusCreated, toExpenseJSON(e))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Expenses []expenseJSON `json:"expenses"`
	}{toExpenseListJSON(s.svc.Expenses())})
}

type categoryListResponse struct {
	Categories []categoryJSON `json:"categories"`
}

type categoryJSON struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	names := s.svc.Categories()
	out := categoryListResponse{Categories: make([]categoryJSON, len(names))}
	for i, name := range names {
		out.Categories[i] = categoryJSON{Index: i, Name: name}
	}
	writeJSON(w, http.StatusOK, out)
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	name := sanitizeInput(req.Name)
	if name == "" {
		writeError(w, http.StatusUnprocessableEntity, "category name is required")
		return
	}
	if err := s.svc.AddCategory(r.Context(), name); err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateViews()
	writeJSON(w, http.StatusCreated, categoryRequest{Name: name})
}

func (s *Server) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	oldName := r.PathValue("name")
	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	newName := sanitizeInput(req.Name)
	if newName == "" {
		writeError(w, http.StatusUnprocessableEntity, "new category name is required")
		return
	}
	if err := s.svc.RenameCategory(r.Context(), oldName, newName); err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateViews()
	writeJSON(w, http.StatusOK, categoryRequest{Name: newName})
}

func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := s.svc.RemoveCategory(r.Context(), name); err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateViews()
	w.WriteHeader(http.StatusNoContent)
}

func isDomainErr(err error) bool {
	for _, kind := range []error{
		core.ErrParseDate, core.ErrInvalidAmount, core.ErrDuplicateCategory,
		core.ErrCategoryNotFound, core.ErrInvalidSelection, core.ErrEmptyLedger,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
