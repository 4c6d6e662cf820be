package handlers

import (
	"net/http"

	"github.com/finwiser/finwiser/internal/middleware"
	"github.com/finwiser/finwiser/internal/models"
	"github.com/finwiser/finwiser/internal/storage"
)

type transactionRequest struct {
	Type        string   `json:"type"`
	Amount      *float64 `json:"amount"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
}

// CreateTransaction records a new ledger entry. The date defaults to the
// current time; the category is free text and is not checked against the
// category registry.
func (h *Handlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !models.ValidType(req.Type) {
		writeError(w, http.StatusBadRequest, "type must be income or expense")
		return
	}
	if req.Amount == nil || *req.Amount < 0 {
		writeError(w, http.StatusBadRequest, "amount must be a non-negative number")
		return
	}

	date := ""
	if req.Date != "" {
		normalized, err := parseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		date = normalized
	}

	txn := &models.Transaction{
		UserID:      userID,
		Type:        req.Type,
		Amount:      *req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	}

	if err := h.store.CreateTransaction(r.Context(), txn); err != nil {
		h.logger.Error("CreateTransaction failed", "user_id", userID, "error", err)
		h.internalError(w, err)
		return
	}

	h.logger.Info("Transaction created", "user_id", userID, "transaction_id", txn.ID, "type", txn.Type)
	writeSuccess(w, http.StatusCreated, txn)
}

type transactionListResponse struct {
	Transactions   []models.Transaction   `json:"transactions"`
	Summary        *models.Summary        `json:"summary"`
	MonthlyData    []models.MonthlyTotal  `json:"monthlyData"`
	CategoryTotals []models.CategoryTotal `json:"categoryTotals"`
}

// ListTransactions returns the user's ledger, newest first, together
// with aggregates recomputed at request time.
func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	ctx := r.Context()

	transactions, err := h.store.ListTransactions(ctx, userID)
	if err != nil {
		h.internalError(w, err)
		return
	}

	summary, err := h.store.Summary(ctx, userID)
	if err != nil {
		h.internalError(w, err)
		return
	}

	monthly, err := h.store.MonthlyTotals(ctx, userID)
	if err != nil {
		h.internalError(w, err)
		return
	}

	categoryTotals, err := h.store.CategoryTotals(ctx, userID)
	if err != nil {
		h.internalError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, transactionListResponse{
		Transactions:   transactions,
		Summary:        summary,
		MonthlyData:    monthly,
		CategoryTotals: categoryTotals,
	})
}

// UpdateTransaction applies a partial update to an owned transaction.
func (h *Handlers) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := r.PathValue("id")

	var req struct {
		Type        *string  `json:"type"`
		Amount      *float64 `json:"amount"`
		Category    *string  `json:"category"`
		Description *string  `json:"description"`
		Date        *string  `json:"date"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Type != nil && !models.ValidType(*req.Type) {
		writeError(w, http.StatusBadRequest, "type must be income or expense")
		return
	}
	if req.Amount != nil && *req.Amount < 0 {
		writeError(w, http.StatusBadRequest, "amount must be a non-negative number")
		return
	}

	upd := storage.TransactionUpdate{
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	}
	if req.Date != nil {
		normalized, err := parseDate(*req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		upd.Date = &normalized
	}

	txn, err := h.store.UpdateTransaction(r.Context(), userID, id, upd)
	if err != nil {
		h.storeError(w, err, "Transaction not found")
		return
	}

	h.logger.Info("Transaction updated", "user_id", userID, "transaction_id", id)
	writeSuccess(w, http.StatusOK, txn)
}

// DeleteTransaction removes an owned transaction.
func (h *Handlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := r.PathValue("id")

	if err := h.store.DeleteTransaction(r.Context(), userID, id); err != nil {
		h.storeError(w, err, "Transaction not found")
		return
	}

	h.logger.Info("Transaction deleted", "user_id", userID, "transaction_id", id)
	writeMessage(w, http.StatusOK, "Transaction removed")
}
