package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dskendzo/eventplanner/internal/entity"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type registrationRepository struct {
	db *sql.DB
}

func NewRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

// Create inserts a registration with the capacity check and the insert in one
// transaction. SELECT ... FOR UPDATE on the event row serializes concurrent
// joins for the same event, so the count cannot go stale between the check
// and the insert and the event never oversells.
func (r *registrationRepository) Create(ctx context.Context, reg *entity.Registration) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var maxParticipants int
	query := `SELECT max_participants FROM events WHERE id = $1 FOR UPDATE`
	err = tx.QueryRowContext(ctx, query, reg.EventID).Scan(&maxParticipants)
	if err == sql.ErrNoRows {
		return entity.ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock event: %w", err)
	}

	var activeCount int
	query = `SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND status IN ('pending', 'confirmed')`
	err = tx.QueryRowContext(ctx, query, reg.EventID).Scan(&activeCount)
	if err != nil {
		return fmt.Errorf("failed to count active registrations: %w", err)
	}

	if maxParticipants > 0 && activeCount >= maxParticipants {
		return entity.ErrEventFull
	}

	query = `
		INSERT INTO registrations (
			event_id, user_id, status, payment_status, payment_amount,
			special_requirements, registration_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	now := time.Now()
	err = tx.QueryRowContext(ctx, query,
		reg.EventID,
		reg.UserID,
		reg.Status,
		reg.PaymentStatus,
		reg.PaymentAmount,
		reg.SpecialRequirements,
		now,
		now,
		now,
	).Scan(&reg.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return entity.ErrAlreadyRegistered
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}

	reg.RegistrationDate = now
	reg.CreatedAt = now
	reg.UpdatedAt = now

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *registrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*entity.Registration, error) {
	query := `
		SELECT
			id, event_id, user_id, status, payment_status, payment_amount,
			special_requirements, registration_date, check_in_time,
			check_out_time, created_at, updated_at
		FROM registrations
		WHERE event_id = $1 AND user_id = $2
	`

	reg, err := scanRegistration(r.db.QueryRowContext(ctx, query, eventID, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration by event and user: %w", err)
	}

	return reg, nil
}

func (r *registrationRepository) GetByUser(ctx context.Context, userID int64) ([]*entity.Registration, error) {
	query := `
		SELECT
			id, event_id, user_id, status, payment_status, payment_amount,
			special_requirements, registration_date, check_in_time,
			check_out_time, created_at, updated_at
		FROM registrations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations by user: %w", err)
	}
	defer rows.Close()

	var regs []*entity.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, reg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registrations: %w", err)
	}

	return regs, nil
}

func (r *registrationRepository) Update(ctx context.Context, reg *entity.Registration) error {
	query := `
		UPDATE registrations
		SET status = $1, payment_status = $2, payment_amount = $3,
		    special_requirements = $4, check_in_time = $5, check_out_time = $6,
		    updated_at = $7
		WHERE id = $8
	`

	result, err := r.db.ExecContext(ctx, query,
		reg.Status,
		reg.PaymentStatus,
		reg.PaymentAmount,
		reg.SpecialRequirements,
		reg.CheckInTime,
		reg.CheckOutTime,
		time.Now(),
		reg.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update registration: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrRegistrationNotFound
	}

	reg.UpdatedAt = time.Now()
	return nil
}

func (r *registrationRepository) DeleteByEventAndUser(ctx context.Context, eventID, userID int64) error {
	query := `DELETE FROM registrations WHERE event_id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrRegistrationNotFound
	}

	return nil
}

func (r *registrationRepository) DeleteByEvent(ctx context.Context, eventID int64) (int64, error) {
	query := `DELETE FROM registrations WHERE event_id = $1`
	result, err := r.db.ExecContext(ctx, query, eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete registrations by event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

func (r *registrationRepository) CountActiveByEvent(ctx context.Context, eventID int64) (int, error) {
	query := `SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND status IN ('pending', 'confirmed')`
	var count int
	err := r.db.QueryRowContext(ctx, query, eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active registrations: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRegistration(row rowScanner) (*entity.Registration, error) {
	var reg entity.Registration
	var checkIn, checkOut sql.NullTime
	var requirements sql.NullString

	err := row.Scan(
		&reg.ID,
		&reg.EventID,
		&reg.UserID,
		&reg.Status,
		&reg.PaymentStatus,
		&reg.PaymentAmount,
		&requirements,
		&reg.RegistrationDate,
		&checkIn,
		&checkOut,
		&reg.CreatedAt,
		&reg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	reg.SpecialRequirements = requirements.String
	if checkIn.Valid {
		reg.CheckInTime = &checkIn.Time
	}
	if checkOut.Valid {
		reg.CheckOutTime = &checkOut.Time
	}

	return &reg, nil
}
