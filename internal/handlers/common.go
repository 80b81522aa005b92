package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-ledger/internal/logger"
	"github.com/sbilibin2017/gw-token-ledger/internal/middlewares"
	"github.com/sbilibin2017/gw-token-ledger/internal/services"
)

// ErrorResponse is the body of every error answer.
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Unauthorized
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorw("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// userID reads the caller set by AuthMiddleware and answers 401 when it is absent.
func userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middlewares.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return id, true
}

// writeServiceError maps service errors that need no extra payload to a status code.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrUnsupportedEntity):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotEntityOwner):
		writeError(w, http.StatusForbidden, "Not the owner of this entity")
	case errors.Is(err, services.ErrEntityNotFound):
		writeError(w, http.StatusNotFound, "Entity not found")
	case errors.Is(err, services.ErrStatementNotFound):
		writeError(w, http.StatusNotFound, "Statement not found")
	case errors.Is(err, services.ErrAlreadyApplied):
		writeError(w, http.StatusConflict, "Already applied to this job")
	case errors.Is(err, services.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
