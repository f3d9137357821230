package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dskendzo/eventplanner/internal/entity"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `
	id, title, description, category, location, date, end_date,
	max_participants, current_participants, price, organizer_id,
	is_outside, status, created_at, updated_at
`

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (
			title, description, category, location, date, end_date,
			max_participants, price, organizer_id, is_outside, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		event.Title,
		event.Description,
		event.Category,
		event.Location,
		event.Date,
		event.EndDate,
		event.MaxParticipants,
		event.Price,
		event.OrganizerID,
		event.IsOutside,
		event.Status,
		now,
		now,
	).Scan(&event.ID)

	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	event.CreatedAt = now
	event.UpdatedAt = now
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

func (r *eventRepository) GetAll(ctx context.Context, filter *EventFilter) ([]*entity.Event, int, error) {
	if filter == nil {
		filter = &EventFilter{}
	}

	where := ` WHERE 1=1`
	args := []interface{}{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d OR location ILIKE $%d)", n, n, n)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	args = append(args, limit)
	limitClause := fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	limitClause += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM events`+where+limitClause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating events: %w", err)
	}

	return events, total, nil
}

func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, category = $3, location = $4,
		    date = $5, end_date = $6, max_participants = $7, price = $8,
		    is_outside = $9, status = $10, updated_at = $11
		WHERE id = $12
	`

	result, err := r.db.ExecContext(ctx, query,
		event.Title,
		event.Description,
		event.Category,
		event.Location,
		event.Date,
		event.EndDate,
		event.MaxParticipants,
		event.Price,
		event.IsOutside,
		event.Status,
		time.Now(),
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrEventNotFound
	}

	event.UpdatedAt = time.Now()
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrEventNotFound
	}

	return nil
}

func (r *eventRepository) UpdateParticipantCount(ctx context.Context, eventID int64, count int) error {
	query := `UPDATE events SET current_participants = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, count, time.Now(), eventID)
	if err != nil {
		return fmt.Errorf("failed to update participant count: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrEventNotFound
	}

	return nil
}

func (r *eventRepository) CompleteElapsed(ctx context.Context, before time.Time) (int64, error) {
	query := `UPDATE events SET status = 'completed', updated_at = $1 WHERE status = 'published' AND end_date < $2`
	result, err := r.db.ExecContext(ctx, query, time.Now(), before)
	if err != nil {
		return 0, fmt.Errorf("failed to complete elapsed events: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

func scanEvent(row rowScanner) (*entity.Event, error) {
	var event entity.Event
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Category,
		&event.Location,
		&event.Date,
		&event.EndDate,
		&event.MaxParticipants,
		&event.CurrentParticipants,
		&event.Price,
		&event.OrganizerID,
		&event.IsOutside,
		&event.Status,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}
