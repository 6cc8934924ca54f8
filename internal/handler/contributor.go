package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ewhitfield/hearthside/internal/access"
	"github.com/ewhitfield/hearthside/internal/auth"
	"github.com/ewhitfield/hearthside/internal/model"
	"github.com/ewhitfield/hearthside/internal/notify"
	"github.com/ewhitfield/hearthside/internal/store"
)

type ContributorHandler struct {
	contributors *store.ContributorStore
	families     *store.FamilyStore
	resolver     *access.Resolver
	notifier     *notify.Service
	logger       *slog.Logger
}

func NewContributorHandler(cs *store.ContributorStore, fs *store.FamilyStore, res *access.Resolver, n *notify.Service, logger *slog.Logger) *ContributorHandler {
	return &ContributorHandler{
		contributors: cs,
		families:     fs,
		resolver:     res,
		notifier:     n,
		logger:       logger.With("component", "contributor"),
	}
}

func (h *ContributorHandler) List(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	userID := auth.UserID(r.Context())
	ev, err := h.resolver.ViewEvent(userID, eventID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.resolver.ViewContributors(userID, ev); err != nil {
		writeError(w, h.logger, err)
		return
	}

	contributors, err := h.contributors.ListByEvent(eventID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if contributors == nil {
		contributors = []model.EventContributor{}
	}
	writeJSON(w, http.StatusOK, contributors)
}

type contributorRequest struct {
	UserID    int64  `json:"user_id"`
	Role      string `json:"role"`
	CanEdit   bool   `json:"can_edit"`
	CanDelete bool   `json:"can_delete"`
	CanInvite bool   `json:"can_invite"`
}

// Add grants a family member a contributor role on an event. The target
// must already belong to the event's family.
func (h *ContributorHandler) Add(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	userID := auth.UserID(r.Context())
	ev, err := h.resolver.ViewEvent(userID, eventID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.resolver.ManageContributors(userID, ev); err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req contributorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.Role == "" {
		req.Role = model.ContributorViewer
	}
	if !model.ValidContributorRole(req.Role) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid role"})
		return
	}
	if req.UserID == ev.CreatedBy {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "event creator is already a contributor"})
		return
	}

	member, err := h.families.GetMember(ev.FamilyID, req.UserID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if member == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user is not a family member"})
		return
	}

	contributor, err := h.contributors.Add(eventID, req.UserID, req.Role, req.CanEdit, req.CanDelete, req.CanInvite, userID)
	if errors.Is(err, store.ErrDuplicate) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "already a contributor"})
		return
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.notifier.Notify([]int64{req.UserID}, model.NotificationSystem,
		"Added as contributor", "You can now contribute to "+ev.Title, &ev.ID)

	writeJSON(w, http.StatusCreated, contributor)
}

func (h *ContributorHandler) Update(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	targetID, err := strconv.ParseInt(r.PathValue("user_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user_id"})
		return
	}

	userID := auth.UserID(r.Context())
	ev, err := h.resolver.ViewEvent(userID, eventID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.resolver.ManageContributors(userID, ev); err != nil {
		writeError(w, h.logger, err)
		return
	}

	existing, err := h.contributors.Get(eventID, targetID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "contributor not found"})
		return
	}

	req := contributorRequest{
		Role:      existing.Role,
		CanEdit:   existing.CanEdit,
		CanDelete: existing.CanDelete,
		CanInvite: existing.CanInvite,
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if !model.ValidContributorRole(req.Role) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid role"})
		return
	}

	updated, err := h.contributors.Update(eventID, targetID, req.Role, req.CanEdit, req.CanDelete, req.CanInvite)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ContributorHandler) Remove(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	targetID, err := strconv.ParseInt(r.PathValue("user_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user_id"})
		return
	}

	userID := auth.UserID(r.Context())
	ev, err := h.resolver.ViewEvent(userID, eventID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.resolver.RemoveContributor(userID, ev, targetID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	existing, err := h.contributors.Get(eventID, targetID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "contributor not found"})
		return
	}

	if err := h.contributors.Remove(eventID, targetID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
