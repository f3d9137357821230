package service

import (
	"context"
	"time"

	repository "github.com/dskendzo/eventplanner/internal/database/postgres"
	"github.com/dskendzo/eventplanner/internal/entity"
	"github.com/dskendzo/eventplanner/pkg/weatherapi"
)

// RegistrationService mediates join/cancel requests against event capacity.
type RegistrationService interface {
	// Participate signs the user up for the event. Registrations are created
	// directly in confirmed status; the payment amount mirrors the event
	// price at creation time.
	Participate(ctx context.Context, userID, eventID int64, req *ParticipateRequest) (*entity.Registration, error)

	// Cancel removes the user's registration. A second cancel in a row
	// returns ErrRegistrationNotFound, which callers treat as "already
	// cancelled".
	Cancel(ctx context.Context, userID, eventID int64) error

	// MyStatus returns the active registration, or nil without error when
	// the user never joined.
	MyStatus(ctx context.Context, userID, eventID int64) (*entity.Registration, error)

	GetUserRegistrations(ctx context.Context, userID int64) ([]*entity.Registration, error)

	// DeleteAllForEvent removes every registration for the event. Invoked
	// when the event itself is deleted, so no counter recompute is needed.
	DeleteAllForEvent(ctx context.Context, eventID int64) error

	CheckIn(ctx context.Context, userID, eventID int64) (*entity.Registration, error)
	CheckOut(ctx context.Context, userID, eventID int64) (*entity.Registration, error)
}

// WeatherService fronts the external forecast provider with a TTL cache.
type WeatherService interface {
	// GetForecast returns the cached or freshly fetched forecast for the
	// location and date. A provider failure yields (nil, nil): weather is
	// supplementary and callers must treat a missing forecast as a normal,
	// displayable state.
	GetForecast(ctx context.Context, location string, date time.Time) (*entity.Forecast, error)
}

type EventService interface {
	CreateEvent(ctx context.Context, organizerID int64, req *CreateEventRequest) (*entity.Event, error)
	GetEvent(ctx context.Context, id int64) (*entity.EventDetails, error)
	GetAllEvents(ctx context.Context, filter *repository.EventFilter) ([]*entity.Event, int, error)
	UpdateEvent(ctx context.Context, actorID int64, actorRole entity.UserRole, id int64, req *UpdateEventRequest) (*entity.Event, error)
	DeleteEvent(ctx context.Context, actorID int64, actorRole entity.UserRole, id int64) error

	// CompleteElapsedEvents transitions published events whose end date has
	// passed into completed status. Driven by the sweep worker.
	CompleteElapsedEvents(ctx context.Context) (int64, error)
}

type UserService interface {
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, string, error)
	Login(ctx context.Context, req *LoginRequest) (*entity.User, string, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
}

type CommentService interface {
	AddComment(ctx context.Context, authorID, eventID int64, req *AddCommentRequest) (*entity.Comment, error)
	GetEventComments(ctx context.Context, eventID int64) ([]*entity.Comment, error)
	UpdateComment(ctx context.Context, actorID int64, actorRole entity.UserRole, commentID int64, content string) (*entity.Comment, error)
	DeleteComment(ctx context.Context, actorID int64, actorRole entity.UserRole, commentID int64) error
}

// ForecastProvider is the external weather API surface consumed by the
// weather service.
type ForecastProvider interface {
	Forecast(ctx context.Context, location string) (*weatherapi.CityForecast, error)
}

// ForecastCache is the expiring (location, date) store in front of the
// provider. Get returns (nil, nil) on a miss; expiry is the store's concern.
type ForecastCache interface {
	Get(ctx context.Context, location string, date time.Time) (*entity.Forecast, error)
	Set(ctx context.Context, location string, date time.Time, forecast *entity.Forecast) error
}

// RegistrationNotifier delivers sign-up confirmations. Implementations are
// best-effort; delivery failures never fail the registration.
type RegistrationNotifier interface {
	SendRegistrationConfirmation(user *entity.User, event *entity.Event) error
}
