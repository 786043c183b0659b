package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"reelbase/models"
)

// successEnvelope always carries a data key, even when the value is null:
// "no rating yet" is a valid answer, not a missing field.
type successEnvelope struct {
	Success    bool               `json:"success"`
	Data       any                `json:"data"`
	Message    string             `json:"message,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Path    string `json:"path,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("http.respond.encode_failed", "error", err)
	}
}

func respondData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, successEnvelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusOK, successEnvelope{Success: true, Data: data, Message: message})
}

// respondList wraps a page of rows with pagination metadata. Count is the
// number of rows actually returned after filtering, not the number asked
// for.
func respondList[T any](w http.ResponseWriter, rows []T, limit, offset int) {
	writeJSON(w, http.StatusOK, successEnvelope{
		Success: true,
		Data:    rows,
		Pagination: &models.Pagination{
			Limit:  limit,
			Offset: offset,
			Count:  len(rows),
		},
	})
}

// respondError is the single translation layer from error kind to HTTP
// status; handlers never pick status codes per route.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	if app, ok := models.AsAppError(err); ok {
		switch app.Kind {
		case models.KindValidation:
			status = http.StatusBadRequest
		case models.KindNotFound:
			status = http.StatusNotFound
		case models.KindConflict:
			status = http.StatusConflict
		case models.KindUpstream:
			status = http.StatusInternalServerError
		}
		message = app.Message
	}

	if status >= http.StatusInternalServerError {
		slog.Error("http.request.failed", "error", err)
	}
	writeJSON(w, status, errorEnvelope{Success: false, Error: message})
}

// notFoundRoute is the catch-all for unmatched paths.
func notFoundRoute(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorEnvelope{
		Success: false,
		Error:   "endpoint not found",
		Path:    r.URL.Path,
	})
}
