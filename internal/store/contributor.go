package store

import (
	"database/sql"
	"fmt"

	"github.com/ewhitfield/hearthside/internal/model"
)

type ContributorStore struct {
	db *sql.DB
}

func NewContributorStore(db *sql.DB) *ContributorStore {
	return &ContributorStore{db: db}
}

const contributorCols = `id, event_id, user_id, role, can_edit, can_delete, can_invite, added_by, created_at, updated_at`

func scanContributor(scanner interface{ Scan(...any) error }) (*model.EventContributor, error) {
	var c model.EventContributor
	var canEdit, canDelete, canInvite int
	err := scanner.Scan(&c.ID, &c.EventID, &c.UserID, &c.Role, &canEdit, &canDelete, &canInvite,
		&c.AddedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.CanEdit = canEdit != 0
	c.CanDelete = canDelete != 0
	c.CanInvite = canInvite != 0
	return &c, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (s *ContributorStore) Add(eventID, userID int64, role string, canEdit, canDelete, canInvite bool, addedBy int64) (*model.EventContributor, error) {
	result, err := s.db.Exec(
		`INSERT INTO event_contributors (event_id, user_id, role, can_edit, can_delete, can_invite, added_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		eventID, userID, role, boolToInt(canEdit), boolToInt(canDelete), boolToInt(canInvite), addedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert contributor: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+contributorCols+` FROM event_contributors WHERE id = ?`, id)
	return scanContributor(row)
}

func (s *ContributorStore) Get(eventID, userID int64) (*model.EventContributor, error) {
	row := s.db.QueryRow(
		`SELECT `+contributorCols+` FROM event_contributors WHERE event_id = ? AND user_id = ?`,
		eventID, userID,
	)
	c, err := scanContributor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get contributor: %w", err)
	}
	return c, nil
}

func (s *ContributorStore) ListByEvent(eventID int64) ([]model.EventContributor, error) {
	rows, err := s.db.Query(
		`SELECT `+contributorCols+` FROM event_contributors WHERE event_id = ? ORDER BY created_at ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list contributors: %w", err)
	}
	defer rows.Close()

	var contributors []model.EventContributor
	for rows.Next() {
		c, err := scanContributor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contributor: %w", err)
		}
		contributors = append(contributors, *c)
	}
	return contributors, rows.Err()
}

func (s *ContributorStore) Update(eventID, userID int64, role string, canEdit, canDelete, canInvite bool) (*model.EventContributor, error) {
	_, err := s.db.Exec(
		`UPDATE event_contributors
		 SET role = ?, can_edit = ?, can_delete = ?, can_invite = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE event_id = ? AND user_id = ?`,
		role, boolToInt(canEdit), boolToInt(canDelete), boolToInt(canInvite), eventID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update contributor: %w", err)
	}
	return s.Get(eventID, userID)
}

func (s *ContributorStore) Remove(eventID, userID int64) error {
	_, err := s.db.Exec(
		`DELETE FROM event_contributors WHERE event_id = ? AND user_id = ?`,
		eventID, userID,
	)
	if err != nil {
		return fmt.Errorf("remove contributor: %w", err)
	}
	return nil
}
