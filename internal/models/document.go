package models

// Document represents metadata for an uploaded file. The binary itself
// lives in the blob store under StorageKey.
type Document struct {
	// ID is the unique identifier for the document (UUID format).
	ID string `json:"id"`

	// UserID is the owning user.
	UserID string `json:"userId"`

	// Title is the display name of the document.
	Title string `json:"title"`

	// Description is an optional note.
	Description string `json:"description"`

	// StorageKey locates the stored file (path for local storage,
	// object key for S3).
	StorageKey string `json:"storageKey"`

	// FileType is the MIME type reported at upload.
	FileType string `json:"fileType"`

	// FileSize is the size in bytes.
	FileSize int64 `json:"fileSize"`

	// UploadedAt is the Unix timestamp of the upload.
	UploadedAt int64 `json:"uploadedAt"`
}

// DocumentTypeStats aggregates documents of one MIME type for a user.
type DocumentTypeStats struct {
	Count     int   `json:"count"`
	TotalSize int64 `json:"size"`
}

// DocumentStats summarizes a user's stored documents.
type DocumentStats struct {
	TotalFiles int                          `json:"totalFiles"`
	TotalSize  int64                        `json:"totalSize"`
	ByType     map[string]DocumentTypeStats `json:"byType"`
}
