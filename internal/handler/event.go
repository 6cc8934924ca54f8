package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ewhitfield/hearthside/internal/access"
	"github.com/ewhitfield/hearthside/internal/auth"
	"github.com/ewhitfield/hearthside/internal/model"
	"github.com/ewhitfield/hearthside/internal/notify"
	"github.com/ewhitfield/hearthside/internal/store"
	"github.com/ewhitfield/hearthside/internal/websocket"
)

type EventHandler struct {
	events       *store.EventStore
	contributors *store.ContributorStore
	resolver     *access.Resolver
	notifier     *notify.Service
	hub          *websocket.Hub
	logger       *slog.Logger
}

func NewEventHandler(es *store.EventStore, cs *store.ContributorStore, res *access.Resolver, n *notify.Service, hub *websocket.Hub, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		events:       es,
		contributors: cs,
		resolver:     res,
		notifier:     n,
		hub:          hub,
		logger:       logger.With("component", "event"),
	}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	familyID, err := strconv.ParseInt(r.URL.Query().Get("family_id"), 10, 64)
	if err != nil || familyID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid family_id"})
		return
	}

	userID := auth.UserID(r.Context())
	if _, err := h.resolver.RequireFamilyMember(userID, familyID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	events, err := h.events.ListByFamily(familyID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	visible, err := h.resolver.VisibleEvents(userID, events)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, visible)
}

type eventRequest struct {
	FamilyID    int64     `json:"family_id"`
	Title       string    `json:"title"`
	EventDate   time.Time `json:"event_date"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	EventType   string    `json:"event_type"`
	Tags        []string  `json:"tags"`
	IsPublic    bool      `json:"is_public"`
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}
	if req.EventDate.IsZero() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "event_date is required"})
		return
	}
	if req.EventType == "" {
		req.EventType = model.EventTypeOther
	}
	if !model.ValidEventType(req.EventType) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid event_type"})
		return
	}

	userID := auth.UserID(r.Context())
	if _, err := h.resolver.RequireFamilyMember(userID, req.FamilyID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	ev, err := h.events.Create(req.FamilyID, userID, req.Title, req.EventDate,
		req.Location, req.Description, req.EventType, req.Tags, req.IsPublic)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ev.FamilyID, websocket.NewMessage("event", "created", ev.ID, nil))
	writeJSON(w, http.StatusCreated, ev)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	ev, err := h.resolver.ViewEvent(auth.UserID(r.Context()), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

type eventUpdateRequest struct {
	Title       *string    `json:"title"`
	EventDate   *time.Time `json:"event_date"`
	Location    *string    `json:"location"`
	Description *string    `json:"description"`
	EventType   *string    `json:"event_type"`
	Tags        []string   `json:"tags"`
	IsPublic    *bool      `json:"is_public"`
}

// Update patches event fields. Absent fields keep their current values.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	userID := auth.UserID(r.Context())
	ev, err := h.resolver.ViewEvent(userID, id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.resolver.CanEditEvent(userID, ev); err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req eventUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	title := ev.Title
	if req.Title != nil {
		if *req.Title == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
			return
		}
		title = *req.Title
	}
	eventDate := ev.EventDate
	if req.EventDate != nil {
		eventDate = *req.EventDate
	}
	location := ev.Location
	if req.Location != nil {
		location = *req.Location
	}
	description := ev.Description
	if req.Description != nil {
		description = *req.Description
	}
	eventType := ev.EventType
	if req.EventType != nil {
		if !model.ValidEventType(*req.EventType) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid event_type"})
			return
		}
		eventType = *req.EventType
	}
	tags := ev.Tags
	if req.Tags != nil {
		tags = req.Tags
	}
	isPublic := ev.IsPublic
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	updated, err := h.events.Update(id, title, eventDate, location, description, eventType, tags, isPublic)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.notifier.Notify(eventRecipients(h.contributors, h.logger, updated, userID), model.NotificationEventUpdate,
		"Event updated", updated.Title+" was updated", &updated.ID)
	h.hub.Broadcast(updated.FamilyID, websocket.NewMessage("event", "updated", updated.ID, nil))

	writeJSON(w, http.StatusOK, updated)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	userID := auth.UserID(r.Context())
	ev, err := h.resolver.ViewEvent(userID, id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.resolver.CanDeleteEvent(userID, ev); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.events.Delete(id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ev.FamilyID, websocket.NewMessage("event", "deleted", ev.ID, nil))
	w.WriteHeader(http.StatusNoContent)
}
