// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/finwiser/finwiser/internal/models"
)

// ErrNotFound is returned when a record does not exist or is not owned
// by the requesting user. Callers cannot distinguish the two cases;
// owner scoping deliberately makes unowned records invisible.
var ErrNotFound = errors.New("record not found")

// TransactionUpdate carries a partial update for a transaction.
// Nil fields are left unchanged.
type TransactionUpdate struct {
	Type        *string
	Amount      *float64
	Category    *string
	Description *string
	Date        *string
}

// GoalUpdate carries a partial update for a goal. Nil fields are left
// unchanged. CurrentAmount and Status may be overwritten directly; no
// status recomputation is forced on a generic update.
type GoalUpdate struct {
	Name          *string
	TargetAmount  *float64
	CurrentAmount *float64
	Deadline      *string
	Description   *string
	Status        *string
}

// Store defines the interface for finwiser's persistence operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the handler layer. Every method that touches a
// user-owned entity takes the owning user's ID and scopes by it.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, userID, username, email string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, userID, passwordHash string) error

	// Categories
	CreateCategory(ctx context.Context, category *models.Category) error
	ListCategories(ctx context.Context, userID string) ([]models.Category, error)
	GetCategory(ctx context.Context, userID, id string) (*models.Category, error)
	// RenameCategory updates the category and, in the same database
	// transaction, rewrites the category label on every transaction of
	// the user that carried the old name. Returns the updated category.
	RenameCategory(ctx context.Context, userID, id, newName, newType string) (*models.Category, error)
	// DeleteCategory reassigns affected transactions to the
	// "uncategorized" sentinel, then removes the category, atomically.
	DeleteCategory(ctx context.Context, userID, id string) error

	// Transactions
	CreateTransaction(ctx context.Context, txn *models.Transaction) error
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, id string, upd TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error

	// Goals
	CreateGoal(ctx context.Context, goal *models.Goal) error
	ListGoals(ctx context.Context, userID string) ([]models.Goal, error)
	GoalStatsByStatus(ctx context.Context, userID string) (map[string]models.GoalStats, error)
	UpdateGoal(ctx context.Context, userID, id string, upd GoalUpdate) (*models.Goal, error)
	DeleteGoal(ctx context.Context, userID, id string) error
	// AdvanceGoalProgress adds amount to the goal's current amount and
	// flips status to completed once current >= target.
	AdvanceGoalProgress(ctx context.Context, userID, id string, amount float64) (*models.Goal, error)

	// Documents
	CreateDocument(ctx context.Context, doc *models.Document) error
	ListDocuments(ctx context.Context, userID string) ([]models.Document, error)
	GetDocument(ctx context.Context, userID, id string) (*models.Document, error)
	UpdateDocument(ctx context.Context, userID, id, title, description string) (*models.Document, error)
	DeleteDocument(ctx context.Context, userID, id string) (*models.Document, error)
	DocumentStats(ctx context.Context, userID string) (*models.DocumentStats, error)

	// Aggregation (read-only, recomputed on every call)
	Summary(ctx context.Context, userID string) (*models.Summary, error)
	CategoryTotals(ctx context.Context, userID string) ([]models.CategoryTotal, error)
	MonthlyTotals(ctx context.Context, userID string) ([]models.MonthlyTotal, error)
	SpendingPatterns(ctx context.Context, userID string, since time.Time) ([]models.SpendingPattern, error)

	// Close releases any resources held by the store.
	Close() error
}
