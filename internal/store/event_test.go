package store

import (
	"testing"
	"time"

	"github.com/ewhitfield/hearthside/internal/model"
)

func TestEventTagsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	us := NewUserStore(db)
	fs := NewFamilyStore(db)
	es := NewEventStore(db)

	creator := createTestUser(t, us, "esme@example.com")
	fam, err := fs.Create("Whitfields", creator.ID, false, model.JoinPolicyInvite, nil)
	if err != nil {
		t.Fatalf("create family: %v", err)
	}

	ev, err := es.Create(fam.ID, creator.ID, "Beach Day", time.Now(), "Cape May", "",
		model.EventTypeGathering, []string{"summer", "beach"}, false)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if len(ev.Tags) != 2 || ev.Tags[0] != "summer" || ev.Tags[1] != "beach" {
		t.Errorf("tags = %v, want [summer beach]", ev.Tags)
	}

	// nil tags persist as an empty list, never null
	bare, err := es.Create(fam.ID, creator.ID, "Quiet Day", time.Now(), "", "",
		model.EventTypeOther, nil, false)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if bare.Tags == nil || len(bare.Tags) != 0 {
		t.Errorf("tags = %v, want empty list", bare.Tags)
	}
}

func TestEventListOrderedByDateDesc(t *testing.T) {
	db := setupTestDB(t)
	us := NewUserStore(db)
	fs := NewFamilyStore(db)
	es := NewEventStore(db)

	creator := createTestUser(t, us, "esme@example.com")
	fam, err := fs.Create("Whitfields", creator.ID, false, model.JoinPolicyInvite, nil)
	if err != nil {
		t.Fatalf("create family: %v", err)
	}

	older := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if _, err := es.Create(fam.ID, creator.ID, "Old Reunion", older, "", "", model.EventTypeGathering, nil, false); err != nil {
		t.Fatalf("create event: %v", err)
	}
	if _, err := es.Create(fam.ID, creator.ID, "New Reunion", newer, "", "", model.EventTypeGathering, nil, false); err != nil {
		t.Fatalf("create event: %v", err)
	}

	events, err := es.ListByFamily(fam.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Title != "New Reunion" {
		t.Errorf("first event = %q, want most recent first", events[0].Title)
	}
}

func TestEventUpdate(t *testing.T) {
	db := setupTestDB(t)
	us := NewUserStore(db)
	fs := NewFamilyStore(db)
	es := NewEventStore(db)

	creator := createTestUser(t, us, "esme@example.com")
	fam, err := fs.Create("Whitfields", creator.ID, false, model.JoinPolicyInvite, nil)
	if err != nil {
		t.Fatalf("create family: %v", err)
	}
	ev, err := es.Create(fam.ID, creator.ID, "Beach Day", time.Now(), "", "", model.EventTypeGathering, nil, false)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	updated, err := es.Update(ev.ID, "Lake Day", ev.EventDate, "Lake George", "Changed venue",
		model.EventTypeGathering, []string{"lake"}, true)
	if err != nil {
		t.Fatalf("update event: %v", err)
	}
	if updated.Title != "Lake Day" || updated.Location != "Lake George" || !updated.IsPublic {
		t.Errorf("update not persisted: %+v", updated)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "lake" {
		t.Errorf("tags = %v, want [lake]", updated.Tags)
	}
}
