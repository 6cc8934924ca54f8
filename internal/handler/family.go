package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/ewhitfield/hearthside/internal/access"
	"github.com/ewhitfield/hearthside/internal/auth"
	"github.com/ewhitfield/hearthside/internal/model"
	"github.com/ewhitfield/hearthside/internal/notify"
	"github.com/ewhitfield/hearthside/internal/store"
)

type FamilyHandler struct {
	families *store.FamilyStore
	users    *store.UserStore
	resolver *access.Resolver
	notifier *notify.Service
	logger   *slog.Logger
}

func NewFamilyHandler(fs *store.FamilyStore, us *store.UserStore, res *access.Resolver, n *notify.Service, logger *slog.Logger) *FamilyHandler {
	return &FamilyHandler{
		families: fs,
		users:    us,
		resolver: res,
		notifier: n,
		logger:   logger.With("component", "family"),
	}
}

func (h *FamilyHandler) List(w http.ResponseWriter, r *http.Request) {
	families, err := h.families.ListForUser(auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if families == nil {
		families = []model.Family{}
	}
	writeJSON(w, http.StatusOK, families)
}

type familyRequest struct {
	Name       string `json:"name"`
	IsPublic   bool   `json:"is_public"`
	JoinPolicy string `json:"join_policy"`
	MaxMembers *int   `json:"max_members"`
}

func (h *FamilyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req familyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if req.JoinPolicy == "" {
		req.JoinPolicy = model.JoinPolicyInvite
	}
	if req.JoinPolicy != model.JoinPolicyOpen && req.JoinPolicy != model.JoinPolicyInvite {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid join_policy"})
		return
	}
	if req.MaxMembers != nil && *req.MaxMembers < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "max_members must be positive"})
		return
	}

	fam, err := h.families.Create(req.Name, auth.UserID(r.Context()), req.IsPublic, req.JoinPolicy, req.MaxMembers)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, fam)
}

func (h *FamilyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if _, err := h.resolver.RequireFamilyMember(auth.UserID(r.Context()), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	fam, err := h.families.GetByID(id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, fam)
}

func (h *FamilyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	fam, err := h.resolver.ManageFamily(auth.UserID(r.Context()), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	req := familyRequest{
		Name:       fam.Name,
		IsPublic:   fam.IsPublic,
		JoinPolicy: fam.JoinPolicy,
		MaxMembers: fam.MaxMembers,
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if req.JoinPolicy != model.JoinPolicyOpen && req.JoinPolicy != model.JoinPolicyInvite {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid join_policy"})
		return
	}

	updated, err := h.families.Update(id, req.Name, req.IsPublic, req.JoinPolicy, req.MaxMembers)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *FamilyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if _, err := h.resolver.ManageFamily(auth.UserID(r.Context()), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.families.Delete(id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FamilyHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if _, err := h.resolver.RequireFamilyMember(auth.UserID(r.Context()), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	members, err := h.families.ListMembers(id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if members == nil {
		members = []model.FamilyMember{}
	}
	writeJSON(w, http.StatusOK, members)
}

type addMemberRequest struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

func (h *FamilyHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	fam, err := h.resolver.ManageFamily(auth.UserID(r.Context()), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.Role == "" {
		req.Role = model.RoleMember
	}
	if req.Role != model.RoleAdmin && req.Role != model.RoleMember {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid role"})
		return
	}

	target, err := h.users.GetByID(req.UserID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if target == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}

	if fam.MaxMembers != nil {
		count, err := h.families.CountMembers(id)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		if count >= *fam.MaxMembers {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "family is full"})
			return
		}
	}

	member, err := h.families.AddMember(id, req.UserID, req.Role)
	if errors.Is(err, store.ErrDuplicate) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "already a member"})
		return
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.notifier.Notify([]int64{req.UserID}, model.NotificationSystem,
		"Added to family", "You were added to "+fam.Name, &fam.ID)

	writeJSON(w, http.StatusCreated, member)
}

// RemoveMember removes a member. Admins can remove anyone; a member can
// always remove themselves.
func (h *FamilyHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
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
	if targetID == userID {
		if _, err := h.resolver.RequireFamilyMember(userID, id); err != nil {
			writeError(w, h.logger, err)
			return
		}
	} else {
		if _, err := h.resolver.ManageFamily(userID, id); err != nil {
			writeError(w, h.logger, err)
			return
		}
	}

	target, err := h.families.GetMember(id, targetID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if target == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "member not found"})
		return
	}

	if err := h.families.RemoveMember(id, targetID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
