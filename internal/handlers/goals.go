package handlers

import (
	"net/http"

	"github.com/finwiser/finwiser/internal/middleware"
	"github.com/finwiser/finwiser/internal/models"
	"github.com/finwiser/finwiser/internal/storage"
)

type goalRequest struct {
	Name         string   `json:"name"`
	TargetAmount *float64 `json:"targetAmount"`
	Deadline     string   `json:"deadline"`
	Description  string   `json:"description"`
}

// CreateGoal adds a savings/spending target with zero progress.
func (h *Handlers) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.TargetAmount == nil || *req.TargetAmount <= 0 {
		writeError(w, http.StatusBadRequest, "targetAmount must be a positive number")
		return
	}

	deadline := ""
	if req.Deadline != "" {
		normalized, err := parseDate(req.Deadline)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		deadline = normalized
	}

	goal := &models.Goal{
		UserID:       userID,
		Name:         req.Name,
		TargetAmount: *req.TargetAmount,
		Deadline:     deadline,
		Description:  req.Description,
	}

	if err := h.store.CreateGoal(r.Context(), goal); err != nil {
		h.logger.Error("CreateGoal failed", "user_id", userID, "error", err)
		h.internalError(w, err)
		return
	}

	h.logger.Info("Goal created", "user_id", userID, "goal_id", goal.ID)
	writeSuccess(w, http.StatusCreated, goal)
}

type goalListResponse struct {
	Goals []models.Goal               `json:"goals"`
	Stats map[string]models.GoalStats `json:"stats"`
}

// ListGoals returns the user's goals ordered by deadline plus per-status
// statistics computed at request time.
func (h *Handlers) ListGoals(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	ctx := r.Context()

	goals, err := h.store.ListGoals(ctx, userID)
	if err != nil {
		h.internalError(w, err)
		return
	}

	stats, err := h.store.GoalStatsByStatus(ctx, userID)
	if err != nil {
		h.internalError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, goalListResponse{Goals: goals, Stats: stats})
}

// UpdateGoal applies a partial update to an owned goal. Direct
// overwrites of currentAmount and status are permitted; no status
// recomputation is forced here.
func (h *Handlers) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := r.PathValue("id")

	var req struct {
		Name          *string  `json:"name"`
		TargetAmount  *float64 `json:"targetAmount"`
		CurrentAmount *float64 `json:"currentAmount"`
		Deadline      *string  `json:"deadline"`
		Description   *string  `json:"description"`
		Status        *string  `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Status != nil && *req.Status != models.GoalOngoing && *req.Status != models.GoalCompleted {
		writeError(w, http.StatusBadRequest, "status must be ongoing or completed")
		return
	}

	upd := storage.GoalUpdate{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Description:   req.Description,
		Status:        req.Status,
	}
	if req.Deadline != nil {
		normalized, err := parseDate(*req.Deadline)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		upd.Deadline = &normalized
	}

	goal, err := h.store.UpdateGoal(r.Context(), userID, id, upd)
	if err != nil {
		h.storeError(w, err, "Goal not found")
		return
	}

	h.logger.Info("Goal updated", "user_id", userID, "goal_id", id)
	writeSuccess(w, http.StatusOK, goal)
}

// DeleteGoal removes an owned goal.
func (h *Handlers) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := r.PathValue("id")

	if err := h.store.DeleteGoal(r.Context(), userID, id); err != nil {
		h.storeError(w, err, "Goal not found")
		return
	}

	h.logger.Info("Goal deleted", "user_id", userID, "goal_id", id)
	writeMessage(w, http.StatusOK, "Goal removed")
}

// AdvanceGoalProgress adds to a goal's accumulated amount. Crossing the
// target flips the goal to completed, permanently.
func (h *Handlers) AdvanceGoalProgress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := r.PathValue("id")

	var req struct {
		Amount *float64 `json:"amount"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Amount == nil || *req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be a positive number")
		return
	}

	goal, err := h.store.AdvanceGoalProgress(r.Context(), userID, id, *req.Amount)
	if err != nil {
		h.storeError(w, err, "Goal not found")
		return
	}

	h.logger.Info("Goal progress advanced",
		"user_id", userID,
		"goal_id", id,
		"current_amount", goal.CurrentAmount,
		"status", goal.Status,
	)
	writeSuccess(w, http.StatusOK, goal)
}
