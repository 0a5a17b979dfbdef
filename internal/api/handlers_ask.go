package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"paperpal/internal/chat"
	"paperpal/internal/session"
)

// handleAsk answers a question against the current session's paper. The
// session must have a section set before any model call is attempted, and
// the new history is committed only after the model call succeeds.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON request", http.StatusBadRequest)
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		jsonValidationError(w, errs)
		return
	}

	cur := s.sessions.Current()
	if !cur.Ready() {
		writeDomainError(w, session.ErrNotReady)
		return
	}

	gw := s.gateway(s.requestAPIKey(r), s.requestModel(r))
	mgr := chat.NewManager(gw, s.cfg.HistoryThreshold, s.log)

	answer, newHistory, err := mgr.Answer(r.Context(), cur.History, req.Question, cur.SectionPaths)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.sessions.CommitHistory(cur.ID, newHistory); err != nil {
		// A new upload replaced the session mid-answer. The answer still
		// belongs to the paper that was asked about, so return it; only
		// the stale history is discarded.
		if errors.Is(err, session.ErrStale) {
			s.log.Warn("history commit skipped", "session_id", cur.ID, "reason", err)
		} else {
			writeDomainError(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AskResponse{Answer: answer})
}
