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

const transactionColumns = "id, user_id, type, amount, category, description, date, created_at, updated_at"

func scanTransaction(row interface{ Scan(...any) error }) (*models.Transaction, error) {
	t := &models.Transaction{}
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Type,
		&t.Amount,
		&t.Category,
		&t.Description,
		&t.Date,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// CreateTransaction inserts a new transaction into the ledger.
// The transaction's ID, Date and timestamps are populated if unset.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	now := time.Now()
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.Date == "" {
		txn.Date = now.UTC().Format(time.RFC3339)
	}
	if txn.CreatedAt == 0 {
		txn.CreatedAt = now.Unix()
	}
	txn.UpdatedAt = txn.CreatedAt

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO transactions ("+transactionColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		txn.ID, txn.UserID, txn.Type, txn.Amount, txn.Category, txn.Description, txn.Date, txn.CreatedAt, txn.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// ListTransactions returns all transactions for the user, newest first.
func (s *SQLiteStore) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE user_id = ? ORDER BY date DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

func (s *SQLiteStore) getTransaction(ctx context.Context, userID, id string) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ? AND user_id = ?",
		id, userID,
	)
	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return t, nil
}

// UpdateTransaction applies a partial update to a transaction owned by
// the user and returns the updated record.
func (s *SQLiteStore) UpdateTransaction(ctx context.Context, userID, id string, upd storage.TransactionUpdate) (*models.Transaction, error) {
	t, err := s.getTransaction(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if upd.Type != nil {
		t.Type = *upd.Type
	}
	if upd.Amount != nil {
		t.Amount = *upd.Amount
	}
	if upd.Category != nil {
		t.Category = *upd.Category
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Date != nil {
		t.Date = *upd.Date
	}
	t.UpdatedAt = time.Now().Unix()

	_, err = s.db.ExecContext(ctx,
		"UPDATE transactions SET type = ?, amount = ?, category = ?, description = ?, date = ?, updated_at = ? WHERE id = ? AND user_id = ?",
		t.Type, t.Amount, t.Category, t.Description, t.Date, t.UpdatedAt, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return t, nil
}

// DeleteTransaction removes a transaction owned by the user.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM transactions WHERE id = ? AND user_id = ?",
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
