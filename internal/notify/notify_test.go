package notify

import (
	"io"
	"log/slog"
	"testing"

	"github.com/ewhitfield/hearthside/internal/database"
	"github.com/ewhitfield/hearthside/internal/model"
	"github.com/ewhitfield/hearthside/internal/store"
)

func setupService(t *testing.T) (*Service, *store.NotificationStore, int64) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	users := store.NewUserStore(db)
	user, err := users.Create("nora@example.com", "Nora", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	notifications := store.NewNotificationStore(db)
	subscriptions := store.NewPushStore(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(notifications, subscriptions, nil, logger), notifications, user.ID
}

func TestNotifyCreatesNotificationPerRecipient(t *testing.T) {
	svc, notifications, userID := setupService(t)

	refID := int64(42)
	svc.Notify([]int64{userID}, model.NotificationComment, "New comment", "Nora commented on Beach Day", &refID)
	svc.Notify([]int64{userID}, model.NotificationMediaUpload, "New photo", "Nora added a photo", &refID)

	list, err := notifications.ListByUser(userID, false)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(list))
	}
	for _, n := range list {
		if n.Read {
			t.Errorf("notification %d should start unread", n.ID)
		}
		if n.RefID == nil || *n.RefID != refID {
			t.Errorf("notification %d missing ref id", n.ID)
		}
	}
}

func TestNotifyWithoutPushConfigured(t *testing.T) {
	svc, notifications, userID := setupService(t)

	svc.Notify([]int64{userID}, model.NotificationInvitation, "Family invitation", "You were invited to the Whitfields", nil)

	list, err := notifications.ListByUser(userID, true)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 unread notification, got %d", len(list))
	}
	if list[0].Type != model.NotificationInvitation {
		t.Errorf("type = %q, want %q", list[0].Type, model.NotificationInvitation)
	}
}
