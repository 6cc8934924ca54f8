package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ewhitfield/hearthside/internal/access"
	"github.com/ewhitfield/hearthside/internal/model"
	"github.com/ewhitfield/hearthside/internal/store"
)

var errInvalidID = errors.New("invalid id")

func parseIDParam(r *http.Request) (int64, error) {
	idStr := r.PathValue("id")
	return strconv.ParseInt(idStr, 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// eventRecipients returns the event creator and all contributors except
// the acting user, for notification fanout.
func eventRecipients(cs *store.ContributorStore, logger *slog.Logger, ev *model.Event, actorID int64) []int64 {
	contributors, err := cs.ListByEvent(ev.ID)
	if err != nil {
		logger.Error("list contributors for fanout", "event_id", ev.ID, "error", err)
		contributors = nil
	}

	seen := map[int64]bool{actorID: true}
	var ids []int64
	if !seen[ev.CreatedBy] {
		seen[ev.CreatedBy] = true
		ids = append(ids, ev.CreatedBy)
	}
	for _, c := range contributors {
		if !seen[c.UserID] {
			seen[c.UserID] = true
			ids = append(ids, c.UserID)
		}
	}
	return ids
}

// writeError maps access and store errors onto the API's status codes.
// Unrecognized errors are logged and reported as a plain 500 so internal
// detail never reaches the client.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, access.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, access.ErrCreatorRemoval):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "cannot remove event creator"})
	case errors.Is(err, access.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	case errors.Is(err, store.ErrDuplicate):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "already exists"})
	default:
		logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
