package handler

import (
	"log/slog"
	"net/http"

	"github.com/ewhitfield/hearthside/internal/access"
	"github.com/ewhitfield/hearthside/internal/auth"
	"github.com/ewhitfield/hearthside/internal/model"
	"github.com/ewhitfield/hearthside/internal/notify"
	"github.com/ewhitfield/hearthside/internal/storage"
	"github.com/ewhitfield/hearthside/internal/store"
	"github.com/ewhitfield/hearthside/internal/websocket"
)

const maxUploadBytes = 32 << 20

type MediaHandler struct {
	media        *store.MediaStore
	contributors *store.ContributorStore
	resolver     *access.Resolver
	objects      *storage.Store
	notifier     *notify.Service
	hub          *websocket.Hub
	logger       *slog.Logger
}

func NewMediaHandler(ms *store.MediaStore, cs *store.ContributorStore, res *access.Resolver, objects *storage.Store, n *notify.Service, hub *websocket.Hub, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{
		media:        ms,
		contributors: cs,
		resolver:     res,
		objects:      objects,
		notifier:     n,
		hub:          hub,
		logger:       logger.With("component", "media"),
	}
}

func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if _, err := h.resolver.ViewEvent(auth.UserID(r.Context()), eventID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	items, err := h.media.ListByEvent(eventID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if items == nil {
		items = []model.Media{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Upload attaches a file to an event. The request is multipart form
// data with the file under the "file" field.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
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
	if err := h.resolver.CanUploadMedia(userID, ev); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if !h.objects.Configured() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "media storage not configured"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file is required"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, url, err := h.objects.Upload(r.Context(), header.Filename, contentType, file, header.Size)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	item, err := h.media.Create(eventID, userID, header.Filename, contentType, header.Size, url, ev.IsPublic)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.notifier.Notify(eventRecipients(h.contributors, h.logger, ev, userID), model.NotificationMediaUpload,
		"New media", "A file was added to "+ev.Title, &ev.ID)
	h.hub.Broadcast(ev.FamilyID, websocket.NewMessage("media", "uploaded", item.ID, map[string]any{"event_id": ev.ID}))

	writeJSON(w, http.StatusCreated, item)
}

func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	item, err := h.media.GetByID(id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if item == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	userID := auth.UserID(r.Context())
	ev, err := h.resolver.ViewEvent(userID, item.EventID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.resolver.CanDeleteMedia(userID, ev, item); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.media.Delete(id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.objects.Delete(r.Context(), storage.KeyFromURL(item.URL)); err != nil {
		h.logger.Error("delete media object", "media_id", id, "error", err)
	}

	h.hub.Broadcast(ev.FamilyID, websocket.NewMessage("media", "deleted", id, map[string]any{"event_id": ev.ID}))
	w.WriteHeader(http.StatusNoContent)
}
