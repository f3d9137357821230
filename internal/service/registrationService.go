package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/dskendzo/eventplanner/internal/database/postgres"
	"github.com/dskendzo/eventplanner/internal/entity"

	"github.com/sirupsen/logrus"
)

// ParticipateRequest carries the optional sign-up fields.
type ParticipateRequest struct {
	SpecialRequirements string `json:"special_requirements" binding:"max=500"`
}

type registrationService struct {
	registrationRepo repository.RegistrationRepository
	eventRepo        repository.EventRepository
	userRepo         repository.UserRepository
	notifier         RegistrationNotifier
}

func NewRegistrationService(
	registrationRepo repository.RegistrationRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	notifier RegistrationNotifier,
) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		notifier:         notifier,
	}
}

func (s *registrationService) Participate(ctx context.Context, userID, eventID int64, req *ParticipateRequest) (*entity.Registration, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	// Soft pre-check so a full event fails fast. The hard guarantee is the
	// locked re-check inside registrationRepo.Create.
	count, err := s.registrationRepo.CountActiveByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to check event capacity: %w", err)
	}
	if event.MaxParticipants > 0 && count >= event.MaxParticipants {
		return nil, entity.ErrEventFull
	}

	reg := &entity.Registration{
		EventID:       eventID,
		UserID:        userID,
		Status:        entity.RegistrationStatusConfirmed,
		PaymentStatus: entity.PaymentStatusPending,
		PaymentAmount: event.Price,
	}
	if req != nil {
		reg.SpecialRequirements = req.SpecialRequirements
	}

	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		return nil, err
	}

	s.recountParticipants(ctx, eventID)

	logrus.WithFields(logrus.Fields{
		"event_id": eventID,
		"user_id":  userID,
	}).Info("Registration created")

	if s.notifier != nil {
		if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
			go func() {
				if err := s.notifier.SendRegistrationConfirmation(user, event); err != nil {
					logrus.Warnf("Failed to send registration confirmation: %v", err)
				}
			}()
		}
	}

	return reg, nil
}

func (s *registrationService) Cancel(ctx context.Context, userID, eventID int64) error {
	reg, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to look up registration: %w", err)
	}
	if reg == nil {
		return entity.ErrRegistrationNotFound
	}

	if err := s.registrationRepo.DeleteByEventAndUser(ctx, eventID, userID); err != nil {
		return err
	}

	s.recountParticipants(ctx, eventID)

	logrus.WithFields(logrus.Fields{
		"event_id": eventID,
		"user_id":  userID,
	}).Info("Registration cancelled")

	return nil
}

func (s *registrationService) MyStatus(ctx context.Context, userID, eventID int64) (*entity.Registration, error) {
	return s.registrationRepo.GetByEventAndUser(ctx, eventID, userID)
}

func (s *registrationService) GetUserRegistrations(ctx context.Context, userID int64) ([]*entity.Registration, error) {
	return s.registrationRepo.GetByUser(ctx, userID)
}

func (s *registrationService) DeleteAllForEvent(ctx context.Context, eventID int64) error {
	deleted, err := s.registrationRepo.DeleteByEvent(ctx, eventID)
	if err != nil {
		return err
	}

	// The event usually survives the clear, so its counter must drop to
	// zero. When this runs as part of deleting the event itself the recount
	// finds no row and is logged as a warning, nothing more.
	s.recountParticipants(ctx, eventID)

	if deleted > 0 {
		logrus.Infof("Deleted %d registrations for event %d", deleted, eventID)
	}
	return nil
}

func (s *registrationService) CheckIn(ctx context.Context, userID, eventID int64) (*entity.Registration, error) {
	reg, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up registration: %w", err)
	}
	if reg == nil {
		return nil, entity.ErrRegistrationNotFound
	}

	now := time.Now()
	reg.CheckInTime = &now
	reg.Status = entity.RegistrationStatusAttended

	if err := s.registrationRepo.Update(ctx, reg); err != nil {
		return nil, err
	}

	// Check-in moves the registration out of the active statuses, so the
	// participant counter changes too.
	s.recountParticipants(ctx, eventID)

	return reg, nil
}

func (s *registrationService) CheckOut(ctx context.Context, userID, eventID int64) (*entity.Registration, error) {
	reg, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up registration: %w", err)
	}
	if reg == nil {
		return nil, entity.ErrRegistrationNotFound
	}

	now := time.Now()
	reg.CheckOutTime = &now

	if err := s.registrationRepo.Update(ctx, reg); err != nil {
		return nil, err
	}

	return reg, nil
}

// recountParticipants refreshes the materialized current_participants value
// from an authoritative count, never an in-place increment. A failure is
// logged and tolerated: the counter is a view, not the source of truth, and
// the next mutation recomputes it again.
func (s *registrationService) recountParticipants(ctx context.Context, eventID int64) {
	count, err := s.registrationRepo.CountActiveByEvent(ctx, eventID)
	if err != nil {
		logrus.Warnf("Failed to recount participants for event %d: %v", eventID, err)
		return
	}

	if err := s.eventRepo.UpdateParticipantCount(ctx, eventID, count); err != nil {
		logrus.Warnf("Failed to persist participant count for event %d: %v", eventID, err)
	}
}
