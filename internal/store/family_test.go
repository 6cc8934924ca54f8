package store

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/ewhitfield/hearthside/internal/database"
	"github.com/ewhitfield/hearthside/internal/model"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, us *UserStore, email string) *model.User {
	t.Helper()
	u, err := us.Create(email, "Test User", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestFamilyCreateAddsAdminMembership(t *testing.T) {
	db := setupTestDB(t)
	us := NewUserStore(db)
	fs := NewFamilyStore(db)

	creator := createTestUser(t, us, "esme@example.com")
	fam, err := fs.Create("Whitfields", creator.ID, false, model.JoinPolicyInvite, nil)
	if err != nil {
		t.Fatalf("create family: %v", err)
	}
	if fam.CreatedBy != creator.ID {
		t.Errorf("created_by = %d, want %d", fam.CreatedBy, creator.ID)
	}

	members, err := fs.ListMembers(fam.ID)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(members))
	}
	if members[0].UserID != creator.ID || members[0].Role != model.RoleAdmin {
		t.Errorf("creator membership = %+v, want admin for user %d", members[0], creator.ID)
	}
}

func TestAddMemberDuplicate(t *testing.T) {
	db := setupTestDB(t)
	us := NewUserStore(db)
	fs := NewFamilyStore(db)

	creator := createTestUser(t, us, "esme@example.com")
	other := createTestUser(t, us, "theo@example.com")
	fam, err := fs.Create("Whitfields", creator.ID, false, model.JoinPolicyInvite, nil)
	if err != nil {
		t.Fatalf("create family: %v", err)
	}

	if _, err := fs.AddMember(fam.ID, other.ID, model.RoleMember); err != nil {
		t.Fatalf("add member: %v", err)
	}
	_, err = fs.AddMember(fam.ID, other.ID, model.RoleMember)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	count, err := fs.CountMembers(fam.ID)
	if err != nil {
		t.Fatalf("count members: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestFamilyDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	us := NewUserStore(db)
	fs := NewFamilyStore(db)
	es := NewEventStore(db)

	creator := createTestUser(t, us, "esme@example.com")
	fam, err := fs.Create("Whitfields", creator.ID, false, model.JoinPolicyInvite, nil)
	if err != nil {
		t.Fatalf("create family: %v", err)
	}
	ev, err := es.Create(fam.ID, creator.ID, "Reunion", time.Now(), "", "", model.EventTypeGathering, nil, false)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	if err := fs.Delete(fam.ID); err != nil {
		t.Fatalf("delete family: %v", err)
	}

	gone, err := es.GetByID(ev.ID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if gone != nil {
		t.Error("event should be deleted with its family")
	}
	m, err := fs.GetMember(fam.ID, creator.ID)
	if err != nil {
		t.Fatalf("get member: %v", err)
	}
	if m != nil {
		t.Error("membership should be deleted with its family")
	}
}

func TestListForUser(t *testing.T) {
	db := setupTestDB(t)
	us := NewUserStore(db)
	fs := NewFamilyStore(db)

	esme := createTestUser(t, us, "esme@example.com")
	theo := createTestUser(t, us, "theo@example.com")

	if _, err := fs.Create("Whitfields", esme.ID, false, model.JoinPolicyInvite, nil); err != nil {
		t.Fatalf("create family: %v", err)
	}
	if _, err := fs.Create("Ashbys", theo.ID, false, model.JoinPolicyInvite, nil); err != nil {
		t.Fatalf("create family: %v", err)
	}

	families, err := fs.ListForUser(esme.ID)
	if err != nil {
		t.Fatalf("list families: %v", err)
	}
	if len(families) != 1 {
		t.Fatalf("expected 1 family, got %d", len(families))
	}
	if families[0].Name != "Whitfields" {
		t.Errorf("name = %q, want Whitfields", families[0].Name)
	}
}

func TestFamilyMaxMembersRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	us := NewUserStore(db)
	fs := NewFamilyStore(db)

	creator := createTestUser(t, us, "esme@example.com")
	limit := 4
	fam, err := fs.Create("Whitfields", creator.ID, true, model.JoinPolicyOpen, &limit)
	if err != nil {
		t.Fatalf("create family: %v", err)
	}
	if fam.MaxMembers == nil || *fam.MaxMembers != 4 {
		t.Fatalf("max_members = %v, want 4", fam.MaxMembers)
	}
	if !fam.IsPublic || fam.JoinPolicy != model.JoinPolicyOpen {
		t.Errorf("flags not persisted: %+v", fam)
	}

	updated, err := fs.Update(fam.ID, fam.Name, false, model.JoinPolicyInvite, nil)
	if err != nil {
		t.Fatalf("update family: %v", err)
	}
	if updated.MaxMembers != nil {
		t.Errorf("max_members should be cleared, got %v", *updated.MaxMembers)
	}
}
