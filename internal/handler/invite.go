package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/ewhitfield/hearthside/internal/access"
	"github.com/ewhitfield/hearthside/internal/auth"
	"github.com/ewhitfield/hearthside/internal/email"
	"github.com/ewhitfield/hearthside/internal/model"
	"github.com/ewhitfield/hearthside/internal/notify"
	"github.com/ewhitfield/hearthside/internal/store"
)

const inviteTTL = 7 * 24 * time.Hour

type InviteHandler struct {
	invites  *store.InviteStore
	families *store.FamilyStore
	users    *store.UserStore
	resolver *access.Resolver
	notifier *notify.Service
	mailer   *email.Client
	logger   *slog.Logger
}

func NewInviteHandler(is *store.InviteStore, fs *store.FamilyStore, us *store.UserStore, res *access.Resolver, n *notify.Service, mailer *email.Client, logger *slog.Logger) *InviteHandler {
	return &InviteHandler{
		invites:  is,
		families: fs,
		users:    us,
		resolver: res,
		notifier: n,
		mailer:   mailer,
		logger:   logger.With("component", "invite"),
	}
}

type inviteRequest struct {
	Email string `json:"email"`
}

// Create issues an invitation to join the family. The invite email is
// best effort; the invite row and token are the source of truth.
func (h *InviteHandler) Create(w http.ResponseWriter, r *http.Request) {
	familyID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	userID := auth.UserID(r.Context())
	fam, err := h.resolver.ManageFamily(userID, familyID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid email"})
		return
	}

	invitee, err := h.users.GetByEmail(req.Email)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if invitee != nil {
		member, err := h.families.GetMember(familyID, invitee.ID)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		if member != nil {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "already a member"})
			return
		}
	}

	inv, err := h.invites.Create(familyID, req.Email, userID, inviteTTL)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if h.mailer.Configured() {
		if err := h.mailer.SendInvite(req.Email, inv.Token, fam.Name); err != nil {
			h.logger.Error("send invite email", "invite_id", inv.ID, "error", err)
		}
	}
	if invitee != nil {
		h.notifier.Notify([]int64{invitee.ID}, model.NotificationInvitation,
			"Family invitation", "You were invited to join "+fam.Name, &fam.ID)
	}

	writeJSON(w, http.StatusCreated, inv)
}

// Accept redeems an invite token for the authenticated user. The token
// must be pending and addressed to the caller's email.
func (h *InviteHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "token is required"})
		return
	}

	inv, err := h.invites.GetByToken(req.Token)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if inv == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "invite not found"})
		return
	}

	userID := auth.UserID(r.Context())
	user, err := h.users.GetByID(userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if user == nil || !strings.EqualFold(user.Email, inv.Email) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "invite is for a different account"})
		return
	}

	fam, err := h.families.GetByID(inv.FamilyID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if fam == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "family not found"})
		return
	}
	if fam.MaxMembers != nil {
		count, err := h.families.CountMembers(fam.ID)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		if count >= *fam.MaxMembers {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "family is full"})
			return
		}
	}

	member, err := h.families.AddMember(inv.FamilyID, userID, model.RoleMember)
	if errors.Is(err, store.ErrDuplicate) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "already a member"})
		return
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.invites.MarkAccepted(inv.ID); err != nil {
		h.logger.Error("mark invite accepted", "invite_id", inv.ID, "error", err)
	}

	h.notifier.Notify([]int64{inv.InvitedBy}, model.NotificationSystem,
		"Invitation accepted", user.Name+" joined "+fam.Name, &fam.ID)

	writeJSON(w, http.StatusCreated, member)
}
