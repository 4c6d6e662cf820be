package models

// Goal statuses. The ongoing -> completed transition is one-directional
// under AdvanceGoalProgress; a generic update may overwrite status freely.
const (
	GoalOngoing   = "ongoing"
	GoalCompleted = "completed"
)

// Goal represents a savings or spending target with explicit progress.
// Progress is advanced by the user, never derived from transactions.
type Goal struct {
	// ID is the unique identifier for the goal (UUID format).
	ID string `json:"id"`

	// UserID is the owning user.
	UserID string `json:"userId"`

	// Name is the display name of the goal.
	Name string `json:"name"`

	// TargetAmount is the amount to reach.
	TargetAmount float64 `json:"targetAmount"`

	// CurrentAmount is accumulated progress, starting at 0. It may
	// exceed TargetAmount.
	CurrentAmount float64 `json:"currentAmount"`

	// Deadline is the target date, RFC3339 UTC.
	Deadline string `json:"deadline"`

	// Status is "ongoing" or "completed".
	Status string `json:"status"`

	// Description is an optional note.
	Description string `json:"description"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// GoalStats aggregates goals of one status for a user.
type GoalStats struct {
	Count        int     `json:"count"`
	TotalTarget  float64 `json:"totalTarget"`
	TotalCurrent float64 `json:"totalCurrent"`
}
