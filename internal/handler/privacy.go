package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ewhitfield/hearthside/internal/access"
	"github.com/ewhitfield/hearthside/internal/auth"
	"github.com/ewhitfield/hearthside/internal/model"
	"github.com/ewhitfield/hearthside/internal/store"
)

type PrivacyHandler struct {
	privacy  *store.PrivacyStore
	resolver *access.Resolver
	logger   *slog.Logger
}

func NewPrivacyHandler(ps *store.PrivacyStore, res *access.Resolver, logger *slog.Logger) *PrivacyHandler {
	return &PrivacyHandler{privacy: ps, resolver: res, logger: logger.With("component", "privacy")}
}

// requireEvent resolves the event and checks the creator-only rule
// shared by every privacy operation.
func (h *PrivacyHandler) requireEvent(r *http.Request) (*model.Event, error) {
	eventID, err := parseIDParam(r)
	if err != nil {
		return nil, errInvalidID
	}
	userID := auth.UserID(r.Context())
	ev, err := h.resolver.ViewEvent(userID, eventID)
	if err != nil {
		return nil, err
	}
	if err := h.resolver.ManagePrivacy(userID, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (h *PrivacyHandler) List(w http.ResponseWriter, r *http.Request) {
	ev, err := h.requireEvent(r)
	if err != nil {
		h.writePrivacyError(w, err)
		return
	}

	overrides, err := h.privacy.ListByEvent(ev.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if overrides == nil {
		overrides = []model.EventPrivacy{}
	}
	writeJSON(w, http.StatusOK, overrides)
}

func (h *PrivacyHandler) Get(w http.ResponseWriter, r *http.Request) {
	ev, err := h.requireEvent(r)
	if err != nil {
		h.writePrivacyError(w, err)
		return
	}
	targetID, err := strconv.ParseInt(r.PathValue("user_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user_id"})
		return
	}

	override, err := h.privacy.Get(ev.ID, targetID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if override == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, override)
}

type privacyRequest struct {
	CanView        bool `json:"can_view"`
	CanEdit        bool `json:"can_edit"`
	CanComment     bool `json:"can_comment"`
	CanUploadMedia bool `json:"can_upload_media"`
}

// Set creates or replaces the override for the target user on this
// event.
func (h *PrivacyHandler) Set(w http.ResponseWriter, r *http.Request) {
	ev, err := h.requireEvent(r)
	if err != nil {
		h.writePrivacyError(w, err)
		return
	}
	targetID, err := strconv.ParseInt(r.PathValue("user_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user_id"})
		return
	}
	if targetID == ev.CreatedBy {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cannot override the event creator"})
		return
	}

	req := privacyRequest{CanView: true, CanComment: true}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	override, err := h.privacy.Set(ev.ID, targetID, req.CanView, req.CanEdit, req.CanComment, req.CanUploadMedia)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, override)
}

func (h *PrivacyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ev, err := h.requireEvent(r)
	if err != nil {
		h.writePrivacyError(w, err)
		return
	}
	targetID, err := strconv.ParseInt(r.PathValue("user_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user_id"})
		return
	}

	existing, err := h.privacy.Get(ev.ID, targetID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	if err := h.privacy.Delete(ev.ID, targetID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PrivacyHandler) writePrivacyError(w http.ResponseWriter, err error) {
	if err == errInvalidID {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	writeError(w, h.logger, err)
}
