package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ewhitfield/hearthside/internal/model"
	"github.com/google/uuid"
)

type InviteStore struct {
	db *sql.DB
}

func NewInviteStore(db *sql.DB) *InviteStore {
	return &InviteStore{db: db}
}

const inviteCols = `id, family_id, email, token, invited_by, expires_at, accepted_at, created_at`

func scanInvite(scanner interface{ Scan(...any) error }) (*model.Invite, error) {
	var inv model.Invite
	var acceptedAt sql.NullTime
	err := scanner.Scan(&inv.ID, &inv.FamilyID, &inv.Email, &inv.Token, &inv.InvitedBy,
		&inv.ExpiresAt, &acceptedAt, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	if acceptedAt.Valid {
		inv.AcceptedAt = &acceptedAt.Time
	}
	return &inv, nil
}

func (s *InviteStore) Create(familyID int64, email string, invitedBy int64, ttl time.Duration) (*model.Invite, error) {
	token := uuid.NewString()
	expiresAt := time.Now().Add(ttl).UTC()

	result, err := s.db.Exec(
		`INSERT INTO invites (family_id, email, token, invited_by, expires_at) VALUES (?, ?, ?, ?, ?)`,
		familyID, email, token, invitedBy, expiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert invite: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+inviteCols+` FROM invites WHERE id = ?`, id)
	return scanInvite(row)
}

// GetByToken returns a pending invite for the token, or nil if the token
// is unknown, expired, or already accepted.
func (s *InviteStore) GetByToken(token string) (*model.Invite, error) {
	row := s.db.QueryRow(
		`SELECT `+inviteCols+` FROM invites WHERE token = ? AND accepted_at IS NULL AND expires_at > ?`,
		token, time.Now().UTC(),
	)
	inv, err := scanInvite(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get invite: %w", err)
	}
	return inv, nil
}

func (s *InviteStore) MarkAccepted(id int64) error {
	_, err := s.db.Exec(
		`UPDATE invites SET accepted_at = ? WHERE id = ?`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("mark invite accepted: %w", err)
	}
	return nil
}

func (s *InviteStore) DeleteExpired() (int64, error) {
	result, err := s.db.Exec(
		`DELETE FROM invites WHERE accepted_at IS NULL AND expires_at <= ?`,
		time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("delete expired invites: %w", err)
	}
	return result.RowsAffected()
}
