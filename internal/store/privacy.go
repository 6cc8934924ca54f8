package store

import (
	"database/sql"
	"fmt"

	"github.com/ewhitfield/hearthside/internal/model"
)

type PrivacyStore struct {
	db *sql.DB
}

func NewPrivacyStore(db *sql.DB) *PrivacyStore {
	return &PrivacyStore{db: db}
}

const privacyCols = `id, event_id, user_id, can_view, can_edit, can_comment, can_upload_media, created_at, updated_at`

func scanPrivacy(scanner interface{ Scan(...any) error }) (*model.EventPrivacy, error) {
	var p model.EventPrivacy
	var canView, canEdit, canComment, canUpload int
	err := scanner.Scan(&p.ID, &p.EventID, &p.UserID, &canView, &canEdit, &canComment, &canUpload,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.CanView = canView != 0
	p.CanEdit = canEdit != 0
	p.CanComment = canComment != 0
	p.CanUploadMedia = canUpload != 0
	return &p, nil
}

// Set creates or replaces the privacy override for (event, user).
func (s *PrivacyStore) Set(eventID, userID int64, canView, canEdit, canComment, canUploadMedia bool) (*model.EventPrivacy, error) {
	_, err := s.db.Exec(
		`INSERT INTO event_privacy (event_id, user_id, can_view, can_edit, can_comment, can_upload_media)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (event_id, user_id) DO UPDATE SET
		   can_view = excluded.can_view,
		   can_edit = excluded.can_edit,
		   can_comment = excluded.can_comment,
		   can_upload_media = excluded.can_upload_media,
		   updated_at = CURRENT_TIMESTAMP`,
		eventID, userID, boolToInt(canView), boolToInt(canEdit), boolToInt(canComment), boolToInt(canUploadMedia),
	)
	if err != nil {
		return nil, fmt.Errorf("set privacy: %w", err)
	}
	return s.Get(eventID, userID)
}

func (s *PrivacyStore) Get(eventID, userID int64) (*model.EventPrivacy, error) {
	row := s.db.QueryRow(
		`SELECT `+privacyCols+` FROM event_privacy WHERE event_id = ? AND user_id = ?`,
		eventID, userID,
	)
	p, err := scanPrivacy(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get privacy: %w", err)
	}
	return p, nil
}

func (s *PrivacyStore) ListByEvent(eventID int64) ([]model.EventPrivacy, error) {
	rows, err := s.db.Query(
		`SELECT `+privacyCols+` FROM event_privacy WHERE event_id = ? ORDER BY created_at ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list privacy: %w", err)
	}
	defer rows.Close()

	var overrides []model.EventPrivacy
	for rows.Next() {
		p, err := scanPrivacy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan privacy: %w", err)
		}
		overrides = append(overrides, *p)
	}
	return overrides, rows.Err()
}

func (s *PrivacyStore) Delete(eventID, userID int64) error {
	_, err := s.db.Exec(
		`DELETE FROM event_privacy WHERE event_id = ? AND user_id = ?`,
		eventID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete privacy: %w", err)
	}
	return nil
}
