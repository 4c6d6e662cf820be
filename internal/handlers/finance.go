package handlers

import (
	"net/http"
	"time"

	"github.com/finwiser/finwiser/internal/middleware"
)

// FinanceSummary returns total income, total expenses, and net balance.
func (h *Handlers) FinanceSummary(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	summary, err := h.store.Summary(r.Context(), userID)
	if err != nil {
		h.internalError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, summary)
}

// CategoryExpenses returns expense totals grouped by category label,
// highest first.
func (h *Handlers) CategoryExpenses(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	totals, err := h.store.CategoryTotals(r.Context(), userID)
	if err != nil {
		h.internalError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, totals)
}

// FinancialInsights returns heuristic alerts and recommendations derived
// from the user's ledger.
func (h *Handlers) FinancialInsights(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	ctx := r.Context()

	summary, err := h.store.Summary(ctx, userID)
	if err != nil {
		h.internalError(w, err)
		return
	}

	breakdown, err := h.store.CategoryTotals(ctx, userID)
	if err != nil {
		h.internalError(w, err)
		return
	}

	report := h.advisor.Analyze(*summary, breakdown)
	writeSuccess(w, http.StatusOK, report)
}

// SpendingPatterns returns expense totals grouped by category and
// day-of-month over the trailing one-month window.
func (h *Handlers) SpendingPatterns(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	since := time.Now().AddDate(0, -1, 0)
	patterns, err := h.store.SpendingPatterns(r.Context(), userID, since)
	if err != nil {
		h.internalError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, patterns)
}
