package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ewhitfield/hearthside/internal/access"
	"github.com/ewhitfield/hearthside/internal/auth"
	"github.com/ewhitfield/hearthside/internal/model"
	"github.com/ewhitfield/hearthside/internal/notify"
	"github.com/ewhitfield/hearthside/internal/store"
	"github.com/ewhitfield/hearthside/internal/websocket"
)

type CommentHandler struct {
	comments     *store.CommentStore
	contributors *store.ContributorStore
	resolver     *access.Resolver
	notifier     *notify.Service
	hub          *websocket.Hub
	logger       *slog.Logger
}

func NewCommentHandler(cs *store.CommentStore, cons *store.ContributorStore, res *access.Resolver, n *notify.Service, hub *websocket.Hub, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		comments:     cs,
		contributors: cons,
		resolver:     res,
		notifier:     n,
		hub:          hub,
		logger:       logger.With("component", "comment"),
	}
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if _, err := h.resolver.ViewEvent(auth.UserID(r.Context()), eventID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	comments, err := h.comments.ListByEvent(eventID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	writeJSON(w, http.StatusOK, comments)
}

type commentRequest struct {
	Body     string `json:"body"`
	ParentID *int64 `json:"parent_id"`
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
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
	if err := h.resolver.CanComment(userID, ev); err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	req.Body = strings.TrimSpace(req.Body)
	if req.Body == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "body is required"})
		return
	}

	if req.ParentID != nil {
		parent, err := h.comments.GetByID(*req.ParentID)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		if parent == nil || parent.EventID != eventID {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid parent_id"})
			return
		}
	}

	comment, err := h.comments.Create(eventID, userID, req.Body, req.ParentID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.notifier.Notify(eventRecipients(h.contributors, h.logger, ev, userID), model.NotificationComment,
		"New comment", "Someone commented on "+ev.Title, &ev.ID)
	h.hub.Broadcast(ev.FamilyID, websocket.NewMessage("comment", "created", comment.ID, map[string]any{"event_id": ev.ID}))

	writeJSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	comment, err := h.comments.GetByID(id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if comment == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	userID := auth.UserID(r.Context())
	ev, err := h.resolver.ViewEvent(userID, comment.EventID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.resolver.CanEditComment(userID, comment); err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	req.Body = strings.TrimSpace(req.Body)
	if req.Body == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "body is required"})
		return
	}

	updated, err := h.comments.Update(id, req.Body)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ev.FamilyID, websocket.NewMessage("comment", "updated", updated.ID, map[string]any{"event_id": ev.ID}))
	writeJSON(w, http.StatusOK, updated)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	comment, err := h.comments.GetByID(id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if comment == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	userID := auth.UserID(r.Context())
	ev, err := h.resolver.ViewEvent(userID, comment.EventID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.resolver.CanDeleteComment(userID, ev, comment); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.comments.Delete(id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ev.FamilyID, websocket.NewMessage("comment", "deleted", id, map[string]any{"event_id": ev.ID}))
	w.WriteHeader(http.StatusNoContent)
}
