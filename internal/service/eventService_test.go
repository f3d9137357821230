package service

import (
	"context"
	"testing"
	"time"

	"github.com/dskendzo/eventplanner/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWeatherService struct {
	forecast *entity.Forecast
}

func (f *fakeWeatherService) GetForecast(ctx context.Context, location string, date time.Time) (*entity.Forecast, error) {
	return f.forecast, nil
}

func TestGetEventAttachesForecastForOutdoorEvent(t *testing.T) {
	event := newTestEvent(1, 10, 0)
	event.IsOutside = true

	eventRepo := newFakeEventRepo(event)
	regRepo := newFakeRegistrationRepo(eventRepo)
	weather := &fakeWeatherService{forecast: &entity.Forecast{Location: "Skopje", Temperature: 19}}
	svc := NewEventService(eventRepo, regRepo, weather)

	details, err := svc.GetEvent(context.Background(), 1)
	require.NoError(t, err)

	require.NotNil(t, details.WeatherForecast)
	assert.Equal(t, "Skopje", details.WeatherForecast.Location)
}

func TestGetEventSurvivesMissingForecast(t *testing.T) {
	event := newTestEvent(1, 10, 0)
	event.IsOutside = true

	eventRepo := newFakeEventRepo(event)
	regRepo := newFakeRegistrationRepo(eventRepo)
	svc := NewEventService(eventRepo, regRepo, &fakeWeatherService{})

	// Weather gateway degraded to "no forecast"; the detail request still works.
	details, err := svc.GetEvent(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, details.WeatherForecast)
}

func TestGetEventSkipsWeatherForIndoorEvent(t *testing.T) {
	event := newTestEvent(1, 10, 0)
	event.IsOutside = false

	eventRepo := newFakeEventRepo(event)
	regRepo := newFakeRegistrationRepo(eventRepo)
	weather := &fakeWeatherService{forecast: &entity.Forecast{Location: "Skopje"}}
	svc := NewEventService(eventRepo, regRepo, weather)

	details, err := svc.GetEvent(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, details.WeatherForecast)
}

func TestUpdateEventRequiresOwnership(t *testing.T) {
	event := newTestEvent(1, 10, 0)
	event.OrganizerID = 5

	eventRepo := newFakeEventRepo(event)
	regRepo := newFakeRegistrationRepo(eventRepo)
	svc := NewEventService(eventRepo, regRepo, &fakeWeatherService{})

	title := "New title"
	req := &UpdateEventRequest{Title: &title}

	_, err := svc.UpdateEvent(context.Background(), 9, entity.RoleUser, 1, req)
	assert.ErrorIs(t, err, entity.ErrForbidden)

	// The organizer and an admin may both edit.
	updated, err := svc.UpdateEvent(context.Background(), 5, entity.RoleOrganizer, 1, req)
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)

	_, err = svc.UpdateEvent(context.Background(), 9, entity.RoleAdmin, 1, req)
	require.NoError(t, err)
}

func TestDeleteEventRemovesRegistrations(t *testing.T) {
	event := newTestEvent(1, 10, 0)
	event.OrganizerID = 5

	eventRepo := newFakeEventRepo(event)
	regRepo := newFakeRegistrationRepo(eventRepo)
	regSvc := NewRegistrationService(regRepo, eventRepo, nil, nil)
	svc := NewEventService(eventRepo, regRepo, &fakeWeatherService{})
	ctx := context.Background()

	_, err := regSvc.Participate(ctx, 7, 1, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvent(ctx, 5, entity.RoleOrganizer, 1))

	count, err := regRepo.CountActiveByEvent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = svc.GetEvent(ctx, 1)
	assert.ErrorIs(t, err, entity.ErrEventNotFound)
}

func TestCreateEventRejectsPastDate(t *testing.T) {
	eventRepo := newFakeEventRepo()
	regRepo := newFakeRegistrationRepo(eventRepo)
	svc := NewEventService(eventRepo, regRepo, &fakeWeatherService{})

	req := &CreateEventRequest{
		Title:       "Yesterday's party",
		Description: "too late",
		Location:    "Skopje",
		Date:        time.Now().Add(-24 * time.Hour),
		EndDate:     time.Now().Add(-20 * time.Hour),
	}

	_, err := svc.CreateEvent(context.Background(), 1, req)
	assert.ErrorIs(t, err, entity.ErrEventDatePast)
}

func TestCreateEventAppliesDefaults(t *testing.T) {
	eventRepo := newFakeEventRepo()
	regRepo := newFakeRegistrationRepo(eventRepo)
	svc := NewEventService(eventRepo, regRepo, &fakeWeatherService{})

	req := &CreateEventRequest{
		Title:       "Meetup",
		Description: "monthly gathering",
		Location:    "Skopje",
		Date:        time.Now().Add(72 * time.Hour),
	}

	event, err := svc.CreateEvent(context.Background(), 1, req)
	require.NoError(t, err)

	assert.Equal(t, entity.EventCategoryOther, event.Category)
	assert.Equal(t, 50, event.MaxParticipants)
	assert.Equal(t, entity.EventStatusDraft, event.Status)
	assert.Equal(t, event.Date, event.EndDate)
}
