package repository

import (
	"context"
	"time"

	"github.com/dskendzo/eventplanner/internal/entity"
)

type EventFilter struct {
	Category string
	Status   string
	Search   string
	Limit    int
	Offset   int
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	GetAll(ctx context.Context, filter *EventFilter) ([]*entity.Event, int, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id int64) error

	// UpdateParticipantCount persists the materialized participant counter.
	// The value always comes from an authoritative count query, never from
	// an in-place increment.
	UpdateParticipantCount(ctx context.Context, eventID int64, count int) error

	// CompleteElapsed marks published events whose end date passed as
	// completed and returns how many rows changed.
	CompleteElapsed(ctx context.Context, before time.Time) (int64, error)
}

type RegistrationRepository interface {
	// Create inserts a registration after re-checking event capacity inside
	// a transaction that locks the event row. The (user_id, event_id) unique
	// constraint is the guarantee against double-joining.
	Create(ctx context.Context, reg *entity.Registration) error

	GetByEventAndUser(ctx context.Context, eventID, userID int64) (*entity.Registration, error)
	GetByUser(ctx context.Context, userID int64) ([]*entity.Registration, error)
	Update(ctx context.Context, reg *entity.Registration) error
	DeleteByEventAndUser(ctx context.Context, eventID, userID int64) error
	DeleteByEvent(ctx context.Context, eventID int64) (int64, error)

	// CountActiveByEvent counts registrations in status pending or confirmed.
	CountActiveByEvent(ctx context.Context, eventID int64) (int, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id int64) (*entity.Comment, error)
	GetByEvent(ctx context.Context, eventID int64) ([]*entity.Comment, error)
	Update(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id int64) error
}
