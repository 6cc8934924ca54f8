package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ewhitfield/hearthside/internal/model"
)

type EventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

const eventCols = `id, family_id, created_by, title, event_date, location, description, event_type, tags, is_public, created_at, updated_at`

func scanEvent(scanner interface{ Scan(...any) error }) (*model.Event, error) {
	var e model.Event
	var tagsJSON string
	var isPublic int
	err := scanner.Scan(&e.ID, &e.FamilyID, &e.CreatedBy, &e.Title, &e.EventDate, &e.Location,
		&e.Description, &e.EventType, &tagsJSON, &isPublic, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.IsPublic = isPublic != 0
	if err := json.Unmarshal([]byte(tagsJSON), &e.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return &e, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(data), nil
}

func (s *EventStore) Create(familyID, createdBy int64, title string, eventDate time.Time, location, description, eventType string, tags []string, isPublic bool) (*model.Event, error) {
	tagsJSON, err := encodeTags(tags)
	if err != nil {
		return nil, err
	}
	var isPublicInt int
	if isPublic {
		isPublicInt = 1
	}

	result, err := s.db.Exec(
		`INSERT INTO events (family_id, created_by, title, event_date, location, description, event_type, tags, is_public)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		familyID, createdBy, title, eventDate.UTC(), location, description, eventType, tagsJSON, isPublicInt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *EventStore) GetByID(id int64) (*model.Event, error) {
	row := s.db.QueryRow(`SELECT `+eventCols+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (s *EventStore) ListByFamily(familyID int64) ([]model.Event, error) {
	rows, err := s.db.Query(
		`SELECT `+eventCols+` FROM events WHERE family_id = ? ORDER BY event_date DESC`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (s *EventStore) Update(id int64, title string, eventDate time.Time, location, description, eventType string, tags []string, isPublic bool) (*model.Event, error) {
	tagsJSON, err := encodeTags(tags)
	if err != nil {
		return nil, err
	}
	var isPublicInt int
	if isPublic {
		isPublicInt = 1
	}

	_, err = s.db.Exec(
		`UPDATE events
		 SET title = ?, event_date = ?, location = ?, description = ?, event_type = ?, tags = ?, is_public = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		title, eventDate.UTC(), location, description, eventType, tagsJSON, isPublicInt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return s.GetByID(id)
}

func (s *EventStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
