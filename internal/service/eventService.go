package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/dskendzo/eventplanner/internal/database/postgres"
	"github.com/dskendzo/eventplanner/internal/entity"

	"github.com/sirupsen/logrus"
)

type CreateEventRequest struct {
	Title           string    `json:"title" binding:"required,max=100"`
	Description     string    `json:"description" binding:"required,max=1000"`
	Category        string    `json:"category" binding:"omitempty,oneof=conference workshop social sports other"`
	Location        string    `json:"location" binding:"required"`
	Date            time.Time `json:"date" binding:"required"`
	EndDate         time.Time `json:"end_date" binding:"required"`
	MaxParticipants int       `json:"max_participants" binding:"omitempty,min=1"`
	Price           float64   `json:"price" binding:"omitempty,min=0"`
	IsOutside       bool      `json:"is_outside"`
	Status          string    `json:"status" binding:"omitempty,oneof=draft published"`
}

type UpdateEventRequest struct {
	Title           *string    `json:"title" binding:"omitempty,max=100"`
	Description     *string    `json:"description" binding:"omitempty,max=1000"`
	Category        *string    `json:"category" binding:"omitempty,oneof=conference workshop social sports other"`
	Location        *string    `json:"location"`
	Date            *time.Time `json:"date"`
	EndDate         *time.Time `json:"end_date"`
	MaxParticipants *int       `json:"max_participants" binding:"omitempty,min=1"`
	Price           *float64   `json:"price" binding:"omitempty,min=0"`
	IsOutside       *bool      `json:"is_outside"`
	Status          *string    `json:"status" binding:"omitempty,oneof=draft published cancelled completed"`
}

type eventService struct {
	eventRepo        repository.EventRepository
	registrationRepo repository.RegistrationRepository
	weather          WeatherService
}

func NewEventService(
	eventRepo repository.EventRepository,
	registrationRepo repository.RegistrationRepository,
	weather WeatherService,
) EventService {
	return &eventService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		weather:          weather,
	}
}

func canEditEvent(event *entity.Event, actorID int64, actorRole entity.UserRole) bool {
	if actorRole == entity.RoleAdmin {
		return true
	}
	return event.OrganizerID == actorID
}

func (s *eventService) CreateEvent(ctx context.Context, organizerID int64, req *CreateEventRequest) (*entity.Event, error) {
	if req.Date.Before(time.Now()) {
		return nil, entity.ErrEventDatePast
	}

	event := &entity.Event{
		Title:           req.Title,
		Description:     req.Description,
		Category:        entity.EventCategory(req.Category),
		Location:        req.Location,
		Date:            req.Date,
		EndDate:         req.EndDate,
		MaxParticipants: req.MaxParticipants,
		Price:           req.Price,
		OrganizerID:     organizerID,
		IsOutside:       req.IsOutside,
		Status:          entity.EventStatus(req.Status),
	}

	if event.Category == "" {
		event.Category = entity.EventCategoryOther
	}
	if event.MaxParticipants == 0 {
		event.MaxParticipants = 50
	}
	if event.Status == "" {
		event.Status = entity.EventStatusDraft
	}
	if event.EndDate.IsZero() {
		event.EndDate = event.Date
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	logrus.Infof("Event created: id=%d title=%q organizer=%d", event.ID, event.Title, event.OrganizerID)
	return event, nil
}

// GetEvent returns the event, with a forecast attached for outdoor events.
// A failed weather lookup leaves the forecast empty; the detail request
// itself always succeeds when the event exists.
func (s *eventService) GetEvent(ctx context.Context, id int64) (*entity.EventDetails, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details := &entity.EventDetails{Event: *event}

	if event.IsOutside && !event.Date.IsZero() {
		forecast, err := s.weather.GetForecast(ctx, event.Location, event.Date)
		if err == nil && forecast != nil {
			details.WeatherForecast = forecast
		}
	}

	return details, nil
}

func (s *eventService) GetAllEvents(ctx context.Context, filter *repository.EventFilter) ([]*entity.Event, int, error) {
	return s.eventRepo.GetAll(ctx, filter)
}

func (s *eventService) UpdateEvent(ctx context.Context, actorID int64, actorRole entity.UserRole, id int64, req *UpdateEventRequest) (*entity.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canEditEvent(event, actorID, actorRole) {
		return nil, entity.ErrForbidden
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Category != nil {
		event.Category = entity.EventCategory(*req.Category)
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.EndDate != nil {
		event.EndDate = *req.EndDate
	}
	if req.MaxParticipants != nil {
		event.MaxParticipants = *req.MaxParticipants
	}
	if req.Price != nil {
		event.Price = *req.Price
	}
	if req.IsOutside != nil {
		event.IsOutside = *req.IsOutside
	}
	if req.Status != nil {
		event.Status = entity.EventStatus(*req.Status)
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, actorID int64, actorRole entity.UserRole, id int64) error {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !canEditEvent(event, actorID, actorRole) {
		return entity.ErrForbidden
	}

	// Registrations go first: they reference the event and the event's
	// counter no longer matters once the event is gone.
	if _, err := s.registrationRepo.DeleteByEvent(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event registrations: %w", err)
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}

	logrus.Infof("Event deleted: id=%d", id)
	return nil
}

func (s *eventService) CompleteElapsedEvents(ctx context.Context) (int64, error) {
	return s.eventRepo.CompleteElapsed(ctx, time.Now())
}
