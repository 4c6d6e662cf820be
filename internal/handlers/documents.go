package handlers

import (
	"io"
	"net/http"

	"github.com/finwiser/finwiser/internal/blob"
	"github.com/finwiser/finwiser/internal/middleware"
	"github.com/finwiser/finwiser/internal/models"
)

// maxUploadSize caps document uploads at 32 MiB.
const maxUploadSize = 32 << 20

// UploadDocument accepts a multipart upload ("file" field plus optional
// "title" and "description"), stores the binary in the blob store, and
// records the metadata.
func (h *Handlers) UploadDocument(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	title := r.FormValue("title")
	if title == "" {
		title = header.Filename
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := blob.NewKey(userID, header.Filename)
	if err := h.files.Save(r.Context(), key, file, header.Size, contentType); err != nil {
		h.logger.Error("Document upload failed", "user_id", userID, "error", err)
		h.internalError(w, err)
		return
	}

	doc := &models.Document{
		UserID:      userID,
		Title:       title,
		Description: r.FormValue("description"),
		StorageKey:  key,
		FileType:    contentType,
		FileSize:    header.Size,
	}
	if err := h.store.CreateDocument(r.Context(), doc); err != nil {
		h.logger.Error("Document metadata insert failed", "user_id", userID, "error", err)
		// Don't leave an orphaned blob behind.
		if delErr := h.files.Delete(r.Context(), key); delErr != nil {
			h.logger.Warn("Failed to remove orphaned file", "key", key, "error", delErr)
		}
		h.internalError(w, err)
		return
	}

	h.logger.Info("Document uploaded", "user_id", userID, "document_id", doc.ID, "size", doc.FileSize)
	writeSuccess(w, http.StatusCreated, doc)
}

type documentListResponse struct {
	Documents []models.Document     `json:"documents"`
	Stats     *models.DocumentStats `json:"stats"`
}

// ListDocuments returns the user's documents, newest first, with storage
// statistics.
func (h *Handlers) ListDocuments(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	ctx := r.Context()

	documents, err := h.store.ListDocuments(ctx, userID)
	if err != nil {
		h.internalError(w, err)
		return
	}

	stats, err := h.store.DocumentStats(ctx, userID)
	if err != nil {
		h.internalError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, documentListResponse{Documents: documents, Stats: stats})
}

// GetDocument returns one document's metadata.
func (h *Handlers) GetDocument(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := r.PathValue("id")

	doc, err := h.store.GetDocument(r.Context(), userID, id)
	if err != nil {
		h.storeError(w, err, "Document not found")
		return
	}

	writeSuccess(w, http.StatusOK, doc)
}

// DownloadDocument streams the stored file back to the owner.
func (h *Handlers) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := r.PathValue("id")

	doc, err := h.store.GetDocument(r.Context(), userID, id)
	if err != nil {
		h.storeError(w, err, "Document not found")
		return
	}

	reader, err := h.files.Open(r.Context(), doc.StorageKey)
	if err != nil {
		h.logger.Error("Document download failed", "document_id", id, "key", doc.StorageKey, "error", err)
		h.internalError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", doc.FileType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Title+`"`)
	io.Copy(w, reader)
}

type updateDocumentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateDocument updates a document's title and description.
func (h *Handlers) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := r.PathValue("id")

	var req updateDocumentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	doc, err := h.store.UpdateDocument(r.Context(), userID, id, req.Title, req.Description)
	if err != nil {
		h.storeError(w, err, "Document not found")
		return
	}

	h.logger.Info("Document updated", "user_id", userID, "document_id", id)
	writeSuccess(w, http.StatusOK, doc)
}

// DeleteDocument removes the metadata record, then best-effort deletes
// the stored file. A failed file deletion is logged but does not roll
// back the metadata removal.
func (h *Handlers) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id := r.PathValue("id")

	doc, err := h.store.DeleteDocument(r.Context(), userID, id)
	if err != nil {
		h.storeError(w, err, "Document not found")
		return
	}

	if err := h.files.Delete(r.Context(), doc.StorageKey); err != nil {
		h.logger.Warn("Failed to delete stored file", "document_id", id, "key", doc.StorageKey, "error", err)
	}

	h.logger.Info("Document deleted", "user_id", userID, "document_id", id)
	writeMessage(w, http.StatusOK, "Document removed")
}
