package handler

import (
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/ewhitfield/hearthside/internal/model"
)

func (f *fixture) notification(t *testing.T, userID int64) *model.Notification {
	t.Helper()
	n, err := f.notifications.Create(userID, model.NotificationSystem, "Hello", "Welcome", nil)
	if err != nil {
		t.Fatalf("create notification: %v", err)
	}
	return n
}

func TestMarkReadForeignNotificationIsNotFound(t *testing.T) {
	f := setup(t)
	owner := f.user(t, "esme@example.com")
	other := f.user(t, "theo@example.com")
	n := f.notification(t, owner.ID)
	h := NewNotificationHandler(f.notifications, f.logger)

	id := strconv.FormatInt(n.ID, 10)
	w := httptest.NewRecorder()
	h.MarkRead(w, asUser("POST", "/api/notifications/"+id+"/read", nil, other.ID, map[string]string{"id": id}))

	// Other users' notifications read as missing, not forbidden.
	if w.Code != 404 {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	w = httptest.NewRecorder()
	h.MarkRead(w, asUser("POST", "/api/notifications/"+id+"/read", nil, owner.ID, map[string]string{"id": id}))
	if w.Code != 200 {
		t.Fatalf("status = %d, want 200 for owner", w.Code)
	}
}

func TestDeleteNotificationOwnerOnly(t *testing.T) {
	f := setup(t)
	owner := f.user(t, "esme@example.com")
	other := f.user(t, "theo@example.com")
	n := f.notification(t, owner.ID)
	h := NewNotificationHandler(f.notifications, f.logger)

	id := strconv.FormatInt(n.ID, 10)
	w := httptest.NewRecorder()
	h.Delete(w, asUser("DELETE", "/api/notifications/"+id, nil, other.ID, map[string]string{"id": id}))
	if w.Code != 404 {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	w = httptest.NewRecorder()
	h.Delete(w, asUser("DELETE", "/api/notifications/"+id, nil, owner.ID, map[string]string{"id": id}))
	if w.Code != 204 {
		t.Fatalf("status = %d, want 204 for owner", w.Code)
	}
}
