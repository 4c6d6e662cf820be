package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finwiser/finwiser/internal/models"
	"github.com/finwiser/finwiser/internal/storage"
)

const goalColumns = "id, user_id, name, target_amount, current_amount, deadline, status, description, created_at, updated_at"

func scanGoal(row interface{ Scan(...any) error }) (*models.Goal, error) {
	g := &models.Goal{}
	err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.Name,
		&g.TargetAmount,
		&g.CurrentAmount,
		&g.Deadline,
		&g.Status,
		&g.Description,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// CreateGoal inserts a new goal with zero progress and ongoing status.
func (s *SQLiteStore) CreateGoal(ctx context.Context, goal *models.Goal) error {
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	if goal.CreatedAt == 0 {
		goal.CreatedAt = time.Now().Unix()
	}
	goal.UpdatedAt = goal.CreatedAt
	goal.CurrentAmount = 0
	goal.Status = models.GoalOngoing

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO goals ("+goalColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		goal.ID, goal.UserID, goal.Name, goal.TargetAmount, goal.CurrentAmount,
		goal.Deadline, goal.Status, goal.Description, goal.CreatedAt, goal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	return nil
}

// ListGoals returns all goals for the user ordered by deadline.
func (s *SQLiteStore) ListGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+goalColumns+" FROM goals WHERE user_id = ? ORDER BY deadline ASC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goals: %w", err)
	}

	return goals, nil
}

// GoalStatsByStatus aggregates the user's goals by status.
func (s *SQLiteStore) GoalStatsByStatus(ctx context.Context, userID string) (map[string]models.GoalStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*), SUM(target_amount), SUM(current_amount)
		FROM goals
		WHERE user_id = ?
		GROUP BY status`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate goals: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]models.GoalStats)
	for rows.Next() {
		var status string
		var st models.GoalStats
		if err := rows.Scan(&status, &st.Count, &st.TotalTarget, &st.TotalCurrent); err != nil {
			return nil, fmt.Errorf("failed to scan goal stats: %w", err)
		}
		stats[status] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goal stats: %w", err)
	}

	return stats, nil
}

func (s *SQLiteStore) getGoal(ctx context.Context, userID, id string) (*models.Goal, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+goalColumns+" FROM goals WHERE id = ? AND user_id = ?",
		id, userID,
	)
	g, err := scanGoal(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return g, nil
}

// UpdateGoal applies a partial update to a goal owned by the user and
// returns the updated record. CurrentAmount and Status may be
// overwritten directly; no status recomputation happens here.
func (s *SQLiteStore) UpdateGoal(ctx context.Context, userID, id string, upd storage.GoalUpdate) (*models.Goal, error) {
	g, err := s.getGoal(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		g.Name = *upd.Name
	}
	if upd.TargetAmount != nil {
		g.TargetAmount = *upd.TargetAmount
	}
	if upd.CurrentAmount != nil {
		g.CurrentAmount = *upd.CurrentAmount
	}
	if upd.Deadline != nil {
		g.Deadline = *upd.Deadline
	}
	if upd.Description != nil {
		g.Description = *upd.Description
	}
	if upd.Status != nil {
		g.Status = *upd.Status
	}
	g.UpdatedAt = time.Now().Unix()

	_, err = s.db.ExecContext(ctx,
		"UPDATE goals SET name = ?, target_amount = ?, current_amount = ?, deadline = ?, status = ?, description = ?, updated_at = ? WHERE id = ? AND user_id = ?",
		g.Name, g.TargetAmount, g.CurrentAmount, g.Deadline, g.Status, g.Description, g.UpdatedAt, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return g, nil
}

// DeleteGoal removes a goal owned by the user.
func (s *SQLiteStore) DeleteGoal(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM goals WHERE id = ? AND user_id = ?",
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// AdvanceGoalProgress adds amount to the goal's current amount. Once
// current >= target the goal is marked completed; further increments
// never move it back to ongoing.
func (s *SQLiteStore) AdvanceGoalProgress(ctx context.Context, userID, id string, amount float64) (*models.Goal, error) {
	g, err := s.getGoal(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	g.CurrentAmount += amount
	if g.CurrentAmount >= g.TargetAmount {
		g.Status = models.GoalCompleted
	}
	g.UpdatedAt = time.Now().Unix()

	_, err = s.db.ExecContext(ctx,
		"UPDATE goals SET current_amount = ?, status = ?, updated_at = ? WHERE id = ? AND user_id = ?",
		g.CurrentAmount, g.Status, g.UpdatedAt, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to advance goal progress: %w", err)
	}

	return g, nil
}
