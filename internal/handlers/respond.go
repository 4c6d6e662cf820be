package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/finwiser/finwiser/internal/storage"
)

// response is the JSON envelope used by every endpoint.
type response struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, response{Status: "success", Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response{Status: "success", Message: message})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response{Status: "error", Message: message})
}

// decodeJSON parses the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// storeError maps storage failures to HTTP responses. Absent and unowned
// records are indistinguishable and both answer 404. Unexpected errors
// answer 500; details leak only in development mode.
func (h *Handlers) storeError(w http.ResponseWriter, err error, notFoundMessage string) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, notFoundMessage)
		return
	}
	h.internalError(w, err)
}

func (h *Handlers) internalError(w http.ResponseWriter, err error) {
	if h.development {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}

// parseDate accepts RFC3339 or a bare YYYY-MM-DD date and normalizes to
// RFC3339 UTC.
func parseDate(dateStr string) (string, error) {
	if t, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return t.UTC().Format(time.RFC3339), nil
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected RFC3339 or YYYY-MM-DD", dateStr)
	}
	return t.UTC().Format(time.RFC3339), nil
}
