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

const documentColumns = "id, user_id, title, description, storage_key, file_type, file_size, uploaded_at"

func scanDocument(row interface{ Scan(...any) error }) (*models.Document, error) {
	d := &models.Document{}
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.Title,
		&d.Description,
		&d.StorageKey,
		&d.FileType,
		&d.FileSize,
		&d.UploadedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// CreateDocument inserts metadata for an uploaded file.
func (s *SQLiteStore) CreateDocument(ctx context.Context, doc *models.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.UploadedAt == 0 {
		doc.UploadedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO documents ("+documentColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		doc.ID, doc.UserID, doc.Title, doc.Description, doc.StorageKey, doc.FileType, doc.FileSize, doc.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

// ListDocuments returns all documents for the user, newest first.
func (s *SQLiteStore) ListDocuments(ctx context.Context, userID string) ([]models.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE user_id = ? ORDER BY uploaded_at DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	documents := []models.Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return documents, nil
}

// GetDocument retrieves a document by ID, scoped to the owning user.
func (s *SQLiteStore) GetDocument(ctx context.Context, userID, id string) (*models.Document, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE id = ? AND user_id = ?",
		id, userID,
	)
	d, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return d, nil
}

// UpdateDocument updates the title and description of a document and
// returns the updated record.
func (s *SQLiteStore) UpdateDocument(ctx context.Context, userID, id, title, description string) (*models.Document, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE documents SET title = ?, description = ? WHERE id = ? AND user_id = ?",
		title, description, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}
	if n == 0 {
		return nil, storage.ErrNotFound
	}

	return s.GetDocument(ctx, userID, id)
}

// DeleteDocument removes a document's metadata and returns the deleted
// record so callers can clean up the stored file.
func (s *SQLiteStore) DeleteDocument(ctx context.Context, userID, id string) (*models.Document, error) {
	d, err := s.GetDocument(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx,
		"DELETE FROM documents WHERE id = ? AND user_id = ?",
		id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to delete document: %w", err)
	}

	return d, nil
}

// DocumentStats summarizes the user's stored documents grouped by MIME type.
func (s *SQLiteStore) DocumentStats(ctx context.Context, userID string) (*models.DocumentStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT file_type, COUNT(*), SUM(file_size)
		FROM documents
		WHERE user_id = ?
		GROUP BY file_type`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate documents: %w", err)
	}
	defer rows.Close()

	stats := &models.DocumentStats{ByType: make(map[string]models.DocumentTypeStats)}
	for rows.Next() {
		var fileType string
		var ts models.DocumentTypeStats
		if err := rows.Scan(&fileType, &ts.Count, &ts.TotalSize); err != nil {
			return nil, fmt.Errorf("failed to scan document stats: %w", err)
		}
		stats.ByType[fileType] = ts
		stats.TotalFiles += ts.Count
		stats.TotalSize += ts.TotalSize
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate document stats: %w", err)
	}

	return stats, nil
}
