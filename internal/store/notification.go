package store

import (
	"database/sql"
	"fmt"

	"github.com/ewhitfield/hearthside/internal/model"
)

type NotificationStore struct {
	db *sql.DB
}

func NewNotificationStore(db *sql.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

const notificationCols = `id, user_id, type, title, message, ref_id, read, created_at, updated_at`

func scanNotification(scanner interface{ Scan(...any) error }) (*model.Notification, error) {
	var n model.Notification
	var refID sql.NullInt64
	var read int
	err := scanner.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &refID, &read, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if refID.Valid {
		n.RefID = &refID.Int64
	}
	n.Read = read != 0
	return &n, nil
}

func (s *NotificationStore) Create(userID int64, typ, title, message string, refID *int64) (*model.Notification, error) {
	var ref sql.NullInt64
	if refID != nil {
		ref = sql.NullInt64{Int64: *refID, Valid: true}
	}
	result, err := s.db.Exec(
		`INSERT INTO notifications (user_id, type, title, message, ref_id) VALUES (?, ?, ?, ?, ?)`,
		userID, typ, title, message, ref,
	)
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *NotificationStore) GetByID(id int64) (*model.Notification, error) {
	row := s.db.QueryRow(`SELECT `+notificationCols+` FROM notifications WHERE id = ?`, id)
	n, err := scanNotification(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return n, nil
}

func (s *NotificationStore) ListByUser(userID int64, unreadOnly bool) ([]model.Notification, error) {
	query := `SELECT ` + notificationCols + ` FROM notifications WHERE user_id = ?`
	if unreadOnly {
		query += ` AND read = 0`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, *n)
	}
	return notifications, rows.Err()
}

func (s *NotificationStore) MarkRead(id int64) (*model.Notification, error) {
	_, err := s.db.Exec(
		`UPDATE notifications SET read = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("mark read: %w", err)
	}
	return s.GetByID(id)
}

func (s *NotificationStore) MarkAllRead(userID int64) error {
	_, err := s.db.Exec(
		`UPDATE notifications SET read = 1, updated_at = CURRENT_TIMESTAMP WHERE user_id = ? AND read = 0`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("mark all read: %w", err)
	}
	return nil
}

func (s *NotificationStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM notifications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}
