package handler

import (
	"net/http/httptest"
	"strconv"
	"testing"
)

func (f *fixture) privacyHandler() *PrivacyHandler {
	return NewPrivacyHandler(f.privacy, f.resolver, f.logger)
}

func TestSetPrivacyCreatorOnly(t *testing.T) {
	f := setup(t)
	creator := f.user(t, "esme@example.com")
	member := f.user(t, "theo@example.com")
	fam := f.family(t, creator.ID)
	if _, err := f.families.AddMember(fam.ID, member.ID, "member"); err != nil {
		t.Fatalf("add member: %v", err)
	}
	ev := f.event(t, fam.ID, creator.ID)
	// Even a contributor with every capability may not touch overrides.
	if _, err := f.contributors.Add(ev.ID, member.ID, "editor", true, true, true, creator.ID); err != nil {
		t.Fatalf("add contributor: %v", err)
	}
	h := f.privacyHandler()

	id := strconv.FormatInt(ev.ID, 10)
	target := strconv.FormatInt(member.ID, 10)
	body := map[string]any{"can_view": true, "can_comment": false}

	w := httptest.NewRecorder()
	h.Set(w, asUser("PUT", "/api/events/"+id+"/privacy/"+target, body, member.ID,
		map[string]string{"id": id, "user_id": target}))
	if w.Code != 403 {
		t.Fatalf("status = %d, want 403 for non-creator", w.Code)
	}

	w = httptest.NewRecorder()
	h.Set(w, asUser("PUT", "/api/events/"+id+"/privacy/"+target, body, creator.ID,
		map[string]string{"id": id, "user_id": target}))
	if w.Code != 200 {
		t.Fatalf("status = %d, want 200 for creator: %s", w.Code, w.Body.String())
	}
}

func TestSetPrivacyOnCreatorRejected(t *testing.T) {
	f := setup(t)
	creator := f.user(t, "esme@example.com")
	fam := f.family(t, creator.ID)
	ev := f.event(t, fam.ID, creator.ID)
	h := f.privacyHandler()

	id := strconv.FormatInt(ev.ID, 10)
	target := strconv.FormatInt(creator.ID, 10)

	w := httptest.NewRecorder()
	h.Set(w, asUser("PUT", "/api/events/"+id+"/privacy/"+target,
		map[string]any{"can_view": false}, creator.ID,
		map[string]string{"id": id, "user_id": target}))

	if w.Code != 400 {
		t.Fatalf("status = %d, want 400 for override on creator", w.Code)
	}
}

func TestDeletePrivacyMissingIsNotFound(t *testing.T) {
	f := setup(t)
	creator := f.user(t, "esme@example.com")
	member := f.user(t, "theo@example.com")
	fam := f.family(t, creator.ID)
	if _, err := f.families.AddMember(fam.ID, member.ID, "member"); err != nil {
		t.Fatalf("add member: %v", err)
	}
	ev := f.event(t, fam.ID, creator.ID)
	h := f.privacyHandler()

	id := strconv.FormatInt(ev.ID, 10)
	target := strconv.FormatInt(member.ID, 10)

	w := httptest.NewRecorder()
	h.Delete(w, asUser("DELETE", "/api/events/"+id+"/privacy/"+target, nil, creator.ID,
		map[string]string{"id": id, "user_id": target}))

	if w.Code != 404 {
		t.Fatalf("status = %d, want 404 for absent override", w.Code)
	}
}
