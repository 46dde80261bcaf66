package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/fiich/fiich-api/internal/apperr"
)

// httpError maps the error taxonomy onto HTTP status codes and writes a
// single human-readable message.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case apperr.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, apperr.ErrInvalidState):
		http.Error(w, "invitation is no longer pending", http.StatusConflict)
	case errors.Is(err, apperr.ErrUnauthorized):
		http.Error(w, "insufficient permissions", http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
