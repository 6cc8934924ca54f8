package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ewhitfield/hearthside/internal/access"
	"github.com/ewhitfield/hearthside/internal/config"
	"github.com/ewhitfield/hearthside/internal/email"
	"github.com/ewhitfield/hearthside/internal/handler"
	"github.com/ewhitfield/hearthside/internal/middleware"
	"github.com/ewhitfield/hearthside/internal/notify"
	"github.com/ewhitfield/hearthside/internal/storage"
	"github.com/ewhitfield/hearthside/internal/store"
	ws "github.com/ewhitfield/hearthside/internal/websocket"
)

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	authH         *handler.AuthHandler
	profileH      *handler.ProfileHandler
	familyH       *handler.FamilyHandler
	inviteH       *handler.InviteHandler
	eventH        *handler.EventHandler
	mediaH        *handler.MediaHandler
	commentH      *handler.CommentHandler
	contributorH  *handler.ContributorHandler
	privacyH      *handler.PrivacyHandler
	notificationH *handler.NotificationHandler
	pushH         *handler.PushHandler
	sessionStore  *store.SessionStore
	inviteStore   *store.InviteStore
	familyStore   *store.FamilyStore
	rateLimiter   *middleware.RateLimiter
	logger        *slog.Logger
}

func New(db *sql.DB, cfg config.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)
	familyStore := store.NewFamilyStore(db)
	inviteStore := store.NewInviteStore(db)
	eventStore := store.NewEventStore(db)
	mediaStore := store.NewMediaStore(db)
	commentStore := store.NewCommentStore(db)
	contributorStore := store.NewContributorStore(db)
	privacyStore := store.NewPrivacyStore(db)
	notificationStore := store.NewNotificationStore(db)
	pushStore := store.NewPushStore(db)

	resolver := access.NewResolver(familyStore, eventStore, contributorStore, privacyStore)

	var pushSvc *notify.Push
	if cfg.VAPIDPublicKey != "" && cfg.VAPIDPrivateKey != "" {
		pushSvc = notify.NewPush(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.PushSubscriber)
	}
	notifier := notify.NewService(notificationStore, pushStore, pushSvc, logger)

	objects := storage.New(storage.Config{
		Endpoint:      cfg.S3Endpoint,
		Bucket:        cfg.S3Bucket,
		Region:        cfg.S3Region,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})

	mailer := email.NewClient(cfg.PostmarkToken, cfg.EmailFrom, cfg.BaseURL)

	return &Server{
		db:            db,
		hub:           hub,
		authH:         handler.NewAuthHandler(userStore, sessionStore, logger),
		profileH:      handler.NewProfileHandler(userStore, logger),
		familyH:       handler.NewFamilyHandler(familyStore, userStore, resolver, notifier, logger),
		inviteH:       handler.NewInviteHandler(inviteStore, familyStore, userStore, resolver, notifier, mailer, logger),
		eventH:        handler.NewEventHandler(eventStore, contributorStore, resolver, notifier, hub, logger),
		mediaH:        handler.NewMediaHandler(mediaStore, contributorStore, resolver, objects, notifier, hub, logger),
		commentH:      handler.NewCommentHandler(commentStore, contributorStore, resolver, notifier, hub, logger),
		contributorH:  handler.NewContributorHandler(contributorStore, familyStore, resolver, notifier, logger),
		privacyH:      handler.NewPrivacyHandler(privacyStore, resolver, logger),
		notificationH: handler.NewNotificationHandler(notificationStore, logger),
		pushH:         handler.NewPushHandler(pushStore, pushSvc, logger),
		sessionStore:  sessionStore,
		inviteStore:   inviteStore,
		familyStore:   familyStore,
		rateLimiter:   middleware.NewRateLimiter(),
		logger:        logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// InviteStore returns the invite store for cleanup tasks.
func (s *Server) InviteStore() *store.InviteStore {
	return s.inviteStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /auth/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /auth/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/logout", s.authH.Logout)

	// Profile
	mux.HandleFunc("GET /api/profile", s.profileH.Get)
	mux.HandleFunc("PUT /api/profile", s.profileH.Update)

	// Families
	mux.HandleFunc("GET /api/families", s.familyH.List)
	mux.HandleFunc("POST /api/families", s.familyH.Create)
	mux.HandleFunc("GET /api/families/{id}", s.familyH.Get)
	mux.HandleFunc("PUT /api/families/{id}", s.familyH.Update)
	mux.HandleFunc("DELETE /api/families/{id}", s.familyH.Delete)
	mux.HandleFunc("GET /api/families/{id}/members", s.familyH.ListMembers)
	mux.HandleFunc("POST /api/families/{id}/members", s.familyH.AddMember)
	mux.HandleFunc("DELETE /api/families/{id}/members/{user_id}", s.familyH.RemoveMember)

	// Invitations
	mux.HandleFunc("POST /api/families/{id}/invites", s.inviteH.Create)
	mux.HandleFunc("POST /api/invites/accept", s.inviteH.Accept)

	// Events
	mux.HandleFunc("GET /api/events", s.eventH.List)
	mux.HandleFunc("POST /api/events", s.eventH.Create)
	mux.HandleFunc("GET /api/events/{id}", s.eventH.Get)
	mux.HandleFunc("PUT /api/events/{id}", s.eventH.Update)
	mux.HandleFunc("DELETE /api/events/{id}", s.eventH.Delete)

	// Media
	mux.HandleFunc("GET /api/events/{id}/media", s.mediaH.List)
	mux.HandleFunc("POST /api/events/{id}/media", s.mediaH.Upload)
	mux.HandleFunc("DELETE /api/media/{id}", s.mediaH.Delete)

	// Comments
	mux.HandleFunc("GET /api/events/{id}/comments", s.commentH.List)
	mux.HandleFunc("POST /api/events/{id}/comments", s.commentH.Create)
	mux.HandleFunc("PUT /api/comments/{id}", s.commentH.Update)
	mux.HandleFunc("DELETE /api/comments/{id}", s.commentH.Delete)

	// Contributors
	mux.HandleFunc("GET /api/events/{id}/contributors", s.contributorH.List)
	mux.HandleFunc("POST /api/events/{id}/contributors", s.contributorH.Add)
	mux.HandleFunc("PUT /api/events/{id}/contributors/{user_id}", s.contributorH.Update)
	mux.HandleFunc("DELETE /api/events/{id}/contributors/{user_id}", s.contributorH.Remove)

	// Privacy overrides
	mux.HandleFunc("GET /api/events/{id}/privacy", s.privacyH.List)
	mux.HandleFunc("GET /api/events/{id}/privacy/{user_id}", s.privacyH.Get)
	mux.HandleFunc("PUT /api/events/{id}/privacy/{user_id}", s.privacyH.Set)
	mux.HandleFunc("DELETE /api/events/{id}/privacy/{user_id}", s.privacyH.Delete)

	// Notifications
	mux.HandleFunc("GET /api/notifications", s.notificationH.List)
	mux.HandleFunc("POST /api/notifications/{id}/read", s.notificationH.MarkRead)
	mux.HandleFunc("POST /api/notifications/read-all", s.notificationH.MarkAllRead)
	mux.HandleFunc("DELETE /api/notifications/{id}", s.notificationH.Delete)

	// Push subscriptions
	mux.HandleFunc("GET /api/push/vapid-key", s.pushH.VAPIDKey)
	mux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
	mux.HandleFunc("GET /api/push/subscriptions", s.pushH.List)
	mux.HandleFunc("DELETE /api/push/subscriptions/{id}", s.pushH.Unsubscribe)

	// Real-time sync
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.familyStore, s.logger.With("component", "websocket")))
}
