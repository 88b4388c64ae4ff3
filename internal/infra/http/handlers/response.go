package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/xavierca1/lead-outreach/internal/entity"
	"github.com/xavierca1/lead-outreach/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}

// writeError maps use case and store failures: not found is 404, caller
// mistakes are 400, anything else is a 500 carrying the raw message.
func writeError(w http.ResponseWriter, err error) {
	var de *usecase.DomainError
	switch {
	case errors.Is(err, entity.ErrLeadNotFound):
		writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.As(err, &de):
		writeErrorResponse(w, http.StatusBadRequest, de.Code, de.Message)
	default:
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", err.Error())
	}
}

// decodeOptional accepts an empty body as the zero value.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
