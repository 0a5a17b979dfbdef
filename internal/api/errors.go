package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"paperpal/internal/llm"
	"paperpal/internal/session"
)

const contextTooLargeDetail = "the document is too long for the model's context window; please try a paper with fewer pages"

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func jsonValidationError(w http.ResponseWriter, errs map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(map[string]any{"errors": errs})
}

// writeDomainError maps domain errors onto response codes: known
// model/session failures are the client's problem (4xx), anything else is
// ours (5xx). The provider's message is passed through except for context
// overflow, which gets a user-actionable detail.
func writeDomainError(w http.ResponseWriter, err error) {
	var gwErr *llm.GatewayError
	switch {
	case errors.Is(err, llm.ErrContextTooLarge):
		jsonError(w, contextTooLargeDetail, http.StatusBadRequest)
	case errors.As(err, &gwErr):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, session.ErrNotReady):
		jsonError(w, err.Error(), http.StatusBadRequest)
	default:
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}
