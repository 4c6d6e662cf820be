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

// CreateCategory inserts a new category for a user.
// The category's ID and CreatedAt are populated if unset.
func (s *SQLiteStore) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if category.CreatedAt == 0 {
		category.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (id, user_id, name, type, created_at) VALUES (?, ?, ?, ?, ?)",
		category.ID, category.UserID, category.Name, category.Type, category.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// ListCategories returns all categories owned by the user.
func (s *SQLiteStore) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, name, type, created_at FROM categories WHERE user_id = ?",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

// GetCategory retrieves a category by ID, scoped to the owning user.
func (s *SQLiteStore) GetCategory(ctx context.Context, userID, id string) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, type, created_at FROM categories WHERE id = ? AND user_id = ?",
		id, userID,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

// RenameCategory updates a category's name and type, then rewrites the
// category label on every transaction of the user that carried the old
// name. Both steps run in one database transaction so a crash cannot
// leave the ledger half-renamed.
func (s *SQLiteStore) RenameCategory(ctx context.Context, userID, id, newName, newType string) (*models.Category, error) {
	category, err := s.GetCategory(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	oldName := category.Name

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"UPDATE categories SET name = ?, type = ? WHERE id = ? AND user_id = ?",
		newName, newType, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to rename category: %w", err)
	}

	// Cascade: the ledger references categories by name, not by ID.
	if oldName != newName {
		_, err = tx.ExecContext(ctx,
			"UPDATE transactions SET category = ?, updated_at = ? WHERE user_id = ? AND category = ?",
			newName, time.Now().Unix(), userID, oldName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to cascade category rename: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	category.Name = newName
	category.Type = newType
	return category, nil
}

// DeleteCategory reassigns the user's transactions referencing the
// category to the "uncategorized" sentinel, then deletes the category.
// Both steps run in one database transaction.
func (s *SQLiteStore) DeleteCategory(ctx context.Context, userID, id string) error {
	category, err := s.GetCategory(ctx, userID, id)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"UPDATE transactions SET category = ?, updated_at = ? WHERE user_id = ? AND category = ?",
		models.UncategorizedName, time.Now().Unix(), userID, category.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to reassign transactions: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"DELETE FROM categories WHERE id = ? AND user_id = ?",
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
