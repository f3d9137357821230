package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dskendzo/eventplanner/internal/entity"
)

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO comments (event_id, author_id, parent_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		comment.EventID,
		comment.AuthorID,
		comment.ParentID,
		comment.Content,
		now,
		now,
	).Scan(&comment.ID)

	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	comment.CreatedAt = now
	comment.UpdatedAt = now
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*entity.Comment, error) {
	query := `
		SELECT id, event_id, author_id, parent_id, content, is_edited, edited_at, created_at, updated_at
		FROM comments
		WHERE id = $1
	`

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return comment, nil
}

func (r *commentRepository) GetByEvent(ctx context.Context, eventID int64) ([]*entity.Comment, error) {
	query := `
		SELECT id, event_id, author_id, parent_id, content, is_edited, edited_at, created_at, updated_at
		FROM comments
		WHERE event_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []*entity.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	query := `
		UPDATE comments
		SET content = $1, is_edited = TRUE, edited_at = $2, updated_at = $2
		WHERE id = $3
	`

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query, comment.Content, now, comment.ID)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrCommentNotFound
	}

	comment.IsEdited = true
	comment.EditedAt = &now
	comment.UpdatedAt = now
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM comments WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrCommentNotFound
	}

	return nil
}

func scanComment(row rowScanner) (*entity.Comment, error) {
	var comment entity.Comment
	var parentID sql.NullInt64
	var editedAt sql.NullTime

	err := row.Scan(
		&comment.ID,
		&comment.EventID,
		&comment.AuthorID,
		&parentID,
		&comment.Content,
		&comment.IsEdited,
		&editedAt,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if parentID.Valid {
		comment.ParentID = &parentID.Int64
	}
	if editedAt.Valid {
		comment.EditedAt = &editedAt.Time
	}

	return &comment, nil
}
