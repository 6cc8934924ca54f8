package store

import (
	"database/sql"
	"fmt"

	"github.com/ewhitfield/hearthside/internal/model"
)

type MediaStore struct {
	db *sql.DB
}

func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

const mediaCols = `id, event_id, uploaded_by, file_name, mime_type, size_bytes, url, is_public, created_at, updated_at`

func scanMedia(scanner interface{ Scan(...any) error }) (*model.Media, error) {
	var m model.Media
	var isPublic int
	err := scanner.Scan(&m.ID, &m.EventID, &m.UploadedBy, &m.FileName, &m.MimeType,
		&m.SizeBytes, &m.URL, &isPublic, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.IsPublic = isPublic != 0
	return &m, nil
}

func (s *MediaStore) Create(eventID, uploadedBy int64, fileName, mimeType string, sizeBytes int64, url string, isPublic bool) (*model.Media, error) {
	var isPublicInt int
	if isPublic {
		isPublicInt = 1
	}
	result, err := s.db.Exec(
		`INSERT INTO media (event_id, uploaded_by, file_name, mime_type, size_bytes, url, is_public)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		eventID, uploadedBy, fileName, mimeType, sizeBytes, url, isPublicInt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert media: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *MediaStore) GetByID(id int64) (*model.Media, error) {
	row := s.db.QueryRow(`SELECT `+mediaCols+` FROM media WHERE id = ?`, id)
	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get media: %w", err)
	}
	return m, nil
}

func (s *MediaStore) ListByEvent(eventID int64) ([]model.Media, error) {
	rows, err := s.db.Query(
		`SELECT `+mediaCols+` FROM media WHERE event_id = ? ORDER BY created_at ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var items []model.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func (s *MediaStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM media WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	return nil
}
