// Package handlers implements the REST JSON API over the storage,
// auth, blob, and insights layers.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/finwiser/finwiser/internal/auth"
	"github.com/finwiser/finwiser/internal/blob"
	"github.com/finwiser/finwiser/internal/insights"
	"github.com/finwiser/finwiser/internal/middleware"
	"github.com/finwiser/finwiser/internal/storage"
)

// Handlers holds the dependencies shared by all HTTP handlers.
type Handlers struct {
	store         storage.Store
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	files         blob.FileStore
	advisor       insights.Advisor
	logger        *slog.Logger
	development   bool
}

// New creates a Handlers instance.
func New(store storage.Store, authenticator auth.Authenticator, jwtManager *auth.JWTManager, files blob.FileStore, advisor insights.Advisor, logger *slog.Logger, development bool) *Handlers {
	return &Handlers{
		store:         store,
		authenticator: authenticator,
		jwtManager:    jwtManager,
		files:         files,
		advisor:       advisor,
		logger:        logger,
		development:   development,
	}
}

// Routes registers every route on the given mux. Registration and login
// are public; everything else goes through the auth middleware.
func (h *Handlers) Routes(mux *http.ServeMux) {
	requireAuth := middleware.RequireAuth(h.jwtManager, h.store)
	protected := func(handler http.HandlerFunc) http.Handler {
		return requireAuth(handler)
	}

	// Users
	mux.HandleFunc("POST /users/register", h.Register)
	mux.HandleFunc("POST /users/login", h.Login)
	mux.Handle("GET /users/profile", protected(h.Profile))
	mux.Handle("PUT /users/profile", protected(h.UpdateProfile))
	mux.Handle("PUT /users/password", protected(h.ChangePassword))

	// Transactions
	mux.Handle("POST /transactions", protected(h.CreateTransaction))
	mux.Handle("GET /transactions", protected(h.ListTransactions))
	mux.Handle("PUT /transactions/{id}", protected(h.UpdateTransaction))
	mux.Handle("DELETE /transactions/{id}", protected(h.DeleteTransaction))

	// Categories
	mux.Handle("POST /categories", protected(h.CreateCategory))
	mux.Handle("GET /categories", protected(h.ListCategories))
	mux.Handle("PUT /categories/{id}", protected(h.RenameCategory))
	mux.Handle("DELETE /categories/{id}", protected(h.DeleteCategory))

	// Goals
	mux.Handle("POST /goals", protected(h.CreateGoal))
	mux.Handle("GET /goals", protected(h.ListGoals))
	mux.Handle("PUT /goals/{id}", protected(h.UpdateGoal))
	mux.Handle("DELETE /goals/{id}", protected(h.DeleteGoal))
	mux.Handle("PATCH /goals/{id}/progress", protected(h.AdvanceGoalProgress))

	// Documents
	mux.Handle("POST /documents", protected(h.UploadDocument))
	mux.Handle("GET /documents", protected(h.ListDocuments))
	mux.Handle("GET /documents/{id}", protected(h.GetDocument))
	mux.Handle("GET /documents/{id}/download", protected(h.DownloadDocument))
	mux.Handle("PUT /documents/{id}", protected(h.UpdateDocument))
	mux.Handle("DELETE /documents/{id}", protected(h.DeleteDocument))

	// Finance (read-only aggregation)
	mux.Handle("GET /finance/summary", protected(h.FinanceSummary))
	mux.Handle("GET /finance/category-expenses", protected(h.CategoryExpenses))
	mux.Handle("GET /finance/insights", protected(h.FinancialInsights))
	mux.Handle("GET /finance/spending-patterns", protected(h.SpendingPatterns))

	// Catch-all for unmatched routes
	mux.HandleFunc("/", h.NotFound)
}

// NotFound answers unmatched routes with the JSON error envelope.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found")
}
