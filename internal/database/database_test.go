package database

import "testing"

func TestOpenEnforcesForeignKeys(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	var enabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("read foreign_keys pragma: %v", err)
	}
	if enabled != 1 {
		t.Fatalf("foreign_keys = %d, want 1", enabled)
	}
}

func TestOpenCascadesOnDelete(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	var userID int64
	err = db.QueryRow(
		`INSERT INTO users (email, name, password_hash) VALUES ('ada@example.com', 'Ada', 'hash') RETURNING id`,
	).Scan(&userID)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}

	var familyID int64
	err = db.QueryRow(
		`INSERT INTO families (name, created_by) VALUES ('Lovelace', ?) RETURNING id`, userID,
	).Scan(&familyID)
	if err != nil {
		t.Fatalf("insert family: %v", err)
	}

	var eventID int64
	err = db.QueryRow(
		`INSERT INTO events (family_id, created_by, title, event_date) VALUES (?, ?, 'Reunion', '2026-06-01') RETURNING id`,
		familyID, userID,
	).Scan(&eventID)
	if err != nil {
		t.Fatalf("insert event: %v", err)
	}
	if _, err := db.Exec(
		`INSERT INTO comments (event_id, author_id, body) VALUES (?, ?, 'see you there')`, eventID, userID,
	); err != nil {
		t.Fatalf("insert comment: %v", err)
	}

	if _, err := db.Exec(`DELETE FROM events WHERE id = ?`, eventID); err != nil {
		t.Fatalf("delete event: %v", err)
	}

	var orphans int
	if err := db.QueryRow(`SELECT COUNT(*) FROM comments WHERE event_id = ?`, eventID).Scan(&orphans); err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if orphans != 0 {
		t.Fatalf("comments left after event delete = %d, want 0", orphans)
	}
}
