package store

import (
	"database/sql"
	"fmt"

	"github.com/ewhitfield/hearthside/internal/model"
)

type CommentStore struct {
	db *sql.DB
}

func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

const commentCols = `id, event_id, author_id, body, parent_id, edited, created_at, updated_at`

func scanComment(scanner interface{ Scan(...any) error }) (*model.Comment, error) {
	var c model.Comment
	var parentID sql.NullInt64
	var edited int
	err := scanner.Scan(&c.ID, &c.EventID, &c.AuthorID, &c.Body, &parentID, &edited, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if parentID.Valid {
		c.ParentID = &parentID.Int64
	}
	c.Edited = edited != 0
	return &c, nil
}

func (s *CommentStore) Create(eventID, authorID int64, body string, parentID *int64) (*model.Comment, error) {
	var parent sql.NullInt64
	if parentID != nil {
		parent = sql.NullInt64{Int64: *parentID, Valid: true}
	}
	result, err := s.db.Exec(
		`INSERT INTO comments (event_id, author_id, body, parent_id) VALUES (?, ?, ?, ?)`,
		eventID, authorID, body, parent,
	)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *CommentStore) GetByID(id int64) (*model.Comment, error) {
	row := s.db.QueryRow(`SELECT `+commentCols+` FROM comments WHERE id = ?`, id)
	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return c, nil
}

func (s *CommentStore) ListByEvent(eventID int64) ([]model.Comment, error) {
	rows, err := s.db.Query(
		`SELECT `+commentCols+` FROM comments WHERE event_id = ? ORDER BY created_at ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

// Update replaces the comment body and marks it edited.
func (s *CommentStore) Update(id int64, body string) (*model.Comment, error) {
	_, err := s.db.Exec(
		`UPDATE comments SET body = ?, edited = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		body, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return s.GetByID(id)
}

func (s *CommentStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
