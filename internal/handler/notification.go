package handler

import (
	"log/slog"
	"net/http"

	"github.com/ewhitfield/hearthside/internal/auth"
	"github.com/ewhitfield/hearthside/internal/model"
	"github.com/ewhitfield/hearthside/internal/store"
)

type NotificationHandler struct {
	notifications *store.NotificationStore
	logger        *slog.Logger
}

func NewNotificationHandler(ns *store.NotificationStore, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: ns, logger: logger.With("component", "notification")}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"
	notifications, err := h.notifications.ListByUser(auth.UserID(r.Context()), unreadOnly)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	writeJSON(w, http.StatusOK, notifications)
}

// own resolves a notification and hides other users' notifications as
// not found.
func (h *NotificationHandler) own(r *http.Request) (*model.Notification, error) {
	id, err := parseIDParam(r)
	if err != nil {
		return nil, errInvalidID
	}
	n, err := h.notifications.GetByID(id)
	if err != nil {
		return nil, err
	}
	if n == nil || n.UserID != auth.UserID(r.Context()) {
		return nil, nil
	}
	return n, nil
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.own(r)
	if err == errInvalidID {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if n == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	updated, err := h.notifications.MarkRead(n.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.MarkAllRead(auth.UserID(r.Context())); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	n, err := h.own(r)
	if err == errInvalidID {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if n == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	if err := h.notifications.Delete(n.ID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
