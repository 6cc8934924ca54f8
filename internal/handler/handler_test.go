package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ewhitfield/hearthside/internal/access"
	"github.com/ewhitfield/hearthside/internal/auth"
	"github.com/ewhitfield/hearthside/internal/database"
	"github.com/ewhitfield/hearthside/internal/model"
	"github.com/ewhitfield/hearthside/internal/notify"
	"github.com/ewhitfield/hearthside/internal/store"
	"github.com/ewhitfield/hearthside/internal/websocket"
)

type fixture struct {
	users         *store.UserStore
	sessions      *store.SessionStore
	families      *store.FamilyStore
	events        *store.EventStore
	comments      *store.CommentStore
	contributors  *store.ContributorStore
	privacy       *store.PrivacyStore
	notifications *store.NotificationStore
	resolver      *access.Resolver
	notifier      *notify.Service
	hub           *websocket.Hub
	logger        *slog.Logger
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &fixture{
		users:         store.NewUserStore(db),
		sessions:      store.NewSessionStore(db),
		families:      store.NewFamilyStore(db),
		events:        store.NewEventStore(db),
		comments:      store.NewCommentStore(db),
		contributors:  store.NewContributorStore(db),
		privacy:       store.NewPrivacyStore(db),
		notifications: store.NewNotificationStore(db),
		hub:           websocket.NewHub(logger),
		logger:        logger,
	}
	f.resolver = access.NewResolver(f.families, f.events, f.contributors, f.privacy)
	f.notifier = notify.NewService(f.notifications, store.NewPushStore(db), nil, logger)
	return f
}

func (f *fixture) user(t *testing.T, email string) *model.User {
	t.Helper()
	u, err := f.users.Create(email, "Test User", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (f *fixture) family(t *testing.T, creatorID int64) *model.Family {
	t.Helper()
	fam, err := f.families.Create("Whitfields", creatorID, false, model.JoinPolicyInvite, nil)
	if err != nil {
		t.Fatalf("create family: %v", err)
	}
	return fam
}

func (f *fixture) event(t *testing.T, familyID, creatorID int64) *model.Event {
	t.Helper()
	ev, err := f.events.Create(familyID, creatorID, "Beach Day", time.Now(), "", "",
		model.EventTypeGathering, nil, false)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return ev
}

// asUser builds a request carrying the user's identity, with path values
// set the way the router would.
func asUser(method, target string, body any, userID int64, pathValues map[string]string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	r := httptest.NewRequest(method, target, &buf)
	r = r.WithContext(auth.WithIdentity(context.Background(), auth.Identity{UserID: userID}))
	for k, v := range pathValues {
		r.SetPathValue(k, v)
	}
	return r
}

func jsonDecode(w *httptest.ResponseRecorder, v any) error {
	return json.NewDecoder(w.Body).Decode(v)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp["error"]
}
