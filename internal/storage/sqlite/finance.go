package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/finwiser/finwiser/internal/models"
)

// Summary sums the user's ledger by type. Recomputed in full on every
// call; nothing is cached.
func (s *SQLiteStore) Summary(ctx context.Context, userID string) (*models.Summary, error) {
	summary := &models.Summary{}
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = ?`,
		userID,
	).Scan(&summary.TotalIncome, &summary.TotalExpenses)
	if err != nil {
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}

	summary.NetBalance = summary.TotalIncome - summary.TotalExpenses
	return summary, nil
}

// CategoryTotals sums the user's expenses by category label, highest
// total first.
func (s *SQLiteStore) CategoryTotals(ctx context.Context, userID string) ([]models.CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, SUM(amount) AS total
		FROM transactions
		WHERE user_id = ? AND type = 'expense'
		GROUP BY category
		ORDER BY total DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute category totals: %w", err)
	}
	defer rows.Close()

	totals := []models.CategoryTotal{}
	for rows.Next() {
		var ct models.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category totals: %w", err)
	}

	return totals, nil
}

// MonthlyTotals sums the user's ledger by (year, month, type) for chart
// data, in chronological order.
func (s *SQLiteStore) MonthlyTotals(ctx context.Context, userID string) ([]models.MonthlyTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			CAST(strftime('%Y', date) AS INTEGER) AS year,
			CAST(strftime('%m', date) AS INTEGER) AS month,
			type,
			SUM(amount)
		FROM transactions
		WHERE user_id = ?
		GROUP BY year, month, type
		ORDER BY year ASC, month ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly totals: %w", err)
	}
	defer rows.Close()

	totals := []models.MonthlyTotal{}
	for rows.Next() {
		var mt models.MonthlyTotal
		if err := rows.Scan(&mt.Year, &mt.Month, &mt.Type, &mt.Total); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		totals = append(totals, mt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly totals: %w", err)
	}

	return totals, nil
}

// SpendingPatterns sums the user's expenses by (category, day-of-month)
// for dates at or after since, ascending by day.
func (s *SQLiteStore) SpendingPatterns(ctx context.Context, userID string, since time.Time) ([]models.SpendingPattern, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, CAST(strftime('%d', date) AS INTEGER) AS day, SUM(amount)
		FROM transactions
		WHERE user_id = ? AND type = 'expense' AND date >= ?
		GROUP BY category, day
		ORDER BY day ASC`,
		userID, since.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute spending patterns: %w", err)
	}
	defer rows.Close()

	patterns := []models.SpendingPattern{}
	for rows.Next() {
		var p models.SpendingPattern
		if err := rows.Scan(&p.Category, &p.Day, &p.Total); err != nil {
			return nil, fmt.Errorf("failed to scan spending pattern: %w", err)
		}
		patterns = append(patterns, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate spending patterns: %w", err)
	}

	return patterns, nil
}
