package service

import (
	"context"
	"sync"
	"testing"
	"time"

	repository "github.com/dskendzo/eventplanner/internal/database/postgres"
	"github.com/dskendzo/eventplanner/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventRepo keeps events in memory and records participant counter
// updates the way the postgres repository would persist them.
type fakeEventRepo struct {
	mu     sync.Mutex
	events map[int64]*entity.Event
}

func newFakeEventRepo(events ...*entity.Event) *fakeEventRepo {
	repo := &fakeEventRepo{events: make(map[int64]*entity.Event)}
	for _, e := range events {
		repo.events[e.ID] = e
	}
	return repo
}

func (f *fakeEventRepo) Create(ctx context.Context, event *entity.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	event.ID = int64(len(f.events) + 1)
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[id]
	if !ok {
		return nil, entity.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEventRepo) GetAll(ctx context.Context, filter *repository.EventFilter) ([]*entity.Event, int, error) {
	return nil, 0, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, event *entity.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[event.ID]; !ok {
		return entity.ErrEventNotFound
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return entity.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) UpdateParticipantCount(ctx context.Context, eventID int64, count int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[eventID]
	if !ok {
		return entity.ErrEventNotFound
	}
	event.CurrentParticipants = count
	return nil
}

func (f *fakeEventRepo) CompleteElapsed(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeEventRepo) participants(id int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events[id].CurrentParticipants
}

// fakeRegistrationRepo mirrors the postgres repository's contract: Create
// re-checks capacity against the event store and surfaces the unique
// constraint as ErrAlreadyRegistered.
type fakeRegistrationRepo struct {
	mu     sync.Mutex
	nextID int64
	regs   map[int64]*entity.Registration
	events *fakeEventRepo
}

func newFakeRegistrationRepo(events *fakeEventRepo) *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		regs:   make(map[int64]*entity.Registration),
		events: events,
	}
}

func (f *fakeRegistrationRepo) Create(ctx context.Context, reg *entity.Registration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events.mu.Lock()
	event, ok := f.events.events[reg.EventID]
	f.events.mu.Unlock()
	if !ok {
		return entity.ErrEventNotFound
	}

	active := 0
	for _, existing := range f.regs {
		if existing.EventID == reg.EventID && existing.UserID == reg.UserID {
			return entity.ErrAlreadyRegistered
		}
		if existing.EventID == reg.EventID && existing.Active() {
			active++
		}
	}

	if event.MaxParticipants > 0 && active >= event.MaxParticipants {
		return entity.ErrEventFull
	}

	f.nextID++
	reg.ID = f.nextID
	reg.RegistrationDate = time.Now()
	copied := *reg
	f.regs[reg.ID] = &copied
	return nil
}

func (f *fakeRegistrationRepo) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*entity.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, reg := range f.regs {
		if reg.EventID == eventID && reg.UserID == userID {
			copied := *reg
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRegistrationRepo) GetByUser(ctx context.Context, userID int64) ([]*entity.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var regs []*entity.Registration
	for _, reg := range f.regs {
		if reg.UserID == userID {
			copied := *reg
			regs = append(regs, &copied)
		}
	}
	return regs, nil
}

func (f *fakeRegistrationRepo) Update(ctx context.Context, reg *entity.Registration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.regs[reg.ID]; !ok {
		return entity.ErrRegistrationNotFound
	}
	copied := *reg
	f.regs[reg.ID] = &copied
	return nil
}

func (f *fakeRegistrationRepo) DeleteByEventAndUser(ctx context.Context, eventID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, reg := range f.regs {
		if reg.EventID == eventID && reg.UserID == userID {
			delete(f.regs, id)
			return nil
		}
	}
	return entity.ErrRegistrationNotFound
}

func (f *fakeRegistrationRepo) DeleteByEvent(ctx context.Context, eventID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for id, reg := range f.regs {
		if reg.EventID == eventID {
			delete(f.regs, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeRegistrationRepo) CountActiveByEvent(ctx context.Context, eventID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, reg := range f.regs {
		if reg.EventID == eventID && reg.Active() {
			count++
		}
	}
	return count, nil
}

func newTestEvent(id int64, maxParticipants int, price float64) *entity.Event {
	return &entity.Event{
		ID:              id,
		Title:           "Test event",
		Location:        "Skopje",
		Date:            time.Now().Add(48 * time.Hour),
		EndDate:         time.Now().Add(50 * time.Hour),
		MaxParticipants: maxParticipants,
		Price:           price,
		Status:          entity.EventStatusPublished,
	}
}

func newTestRegistrationService(events ...*entity.Event) (RegistrationService, *fakeEventRepo, *fakeRegistrationRepo) {
	eventRepo := newFakeEventRepo(events...)
	regRepo := newFakeRegistrationRepo(eventRepo)
	svc := NewRegistrationService(regRepo, eventRepo, nil, nil)
	return svc, eventRepo, regRepo
}

func TestParticipateCreatesConfirmedRegistration(t *testing.T) {
	svc, eventRepo, _ := newTestRegistrationService(newTestEvent(1, 10, 25.0))
	ctx := context.Background()

	reg, err := svc.Participate(ctx, 7, 1, &ParticipateRequest{SpecialRequirements: "vegetarian"})
	require.NoError(t, err)

	assert.Equal(t, entity.RegistrationStatusConfirmed, reg.Status)
	assert.Equal(t, entity.PaymentStatusPending, reg.PaymentStatus)
	assert.Equal(t, 25.0, reg.PaymentAmount)
	assert.Equal(t, "vegetarian", reg.SpecialRequirements)
	assert.Equal(t, 1, eventRepo.participants(1))
}

func TestParticipateUnknownEvent(t *testing.T) {
	svc, _, _ := newTestRegistrationService()

	_, err := svc.Participate(context.Background(), 7, 99, nil)
	assert.ErrorIs(t, err, entity.ErrEventNotFound)
}

func TestParticipateTwiceIsRejected(t *testing.T) {
	svc, _, _ := newTestRegistrationService(newTestEvent(1, 10, 0))
	ctx := context.Background()

	_, err := svc.Participate(ctx, 7, 1, nil)
	require.NoError(t, err)

	_, err = svc.Participate(ctx, 7, 1, nil)
	assert.ErrorIs(t, err, entity.ErrAlreadyRegistered)
}

func TestCapacityEnforcedAtLastSlot(t *testing.T) {
	svc, eventRepo, _ := newTestRegistrationService(newTestEvent(1, 1, 0))
	ctx := context.Background()

	_, err := svc.Participate(ctx, 1, 1, nil)
	require.NoError(t, err)

	_, err = svc.Participate(ctx, 2, 1, nil)
	assert.ErrorIs(t, err, entity.ErrEventFull)
	assert.Equal(t, 1, eventRepo.participants(1))
}

func TestCancelThenCancelAgain(t *testing.T) {
	svc, eventRepo, _ := newTestRegistrationService(newTestEvent(1, 10, 0))
	ctx := context.Background()

	_, err := svc.Participate(ctx, 7, 1, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, 7, 1))
	assert.Equal(t, 0, eventRepo.participants(1))

	// Second cancel reports not-found; callers treat it as already cancelled.
	assert.ErrorIs(t, svc.Cancel(ctx, 7, 1), entity.ErrRegistrationNotFound)
}

func TestCancelWithoutRegistration(t *testing.T) {
	svc, _, _ := newTestRegistrationService(newTestEvent(1, 10, 0))

	err := svc.Cancel(context.Background(), 7, 1)
	assert.ErrorIs(t, err, entity.ErrRegistrationNotFound)
}

func TestMyStatusReturnsNilWhenNotRegistered(t *testing.T) {
	svc, _, _ := newTestRegistrationService(newTestEvent(1, 10, 0))

	reg, err := svc.MyStatus(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.Nil(t, reg)
}

func TestCounterTracksActiveRegistrations(t *testing.T) {
	svc, eventRepo, regRepo := newTestRegistrationService(newTestEvent(1, 10, 0))
	ctx := context.Background()

	steps := []struct {
		name string
		op   func() error
		want int
	}{
		{"first user joins", func() error { _, err := svc.Participate(ctx, 1, 1, nil); return err }, 1},
		{"second user joins", func() error { _, err := svc.Participate(ctx, 2, 1, nil); return err }, 2},
		{"third user joins", func() error { _, err := svc.Participate(ctx, 3, 1, nil); return err }, 3},
		{"second user cancels", func() error { return svc.Cancel(ctx, 2, 1) }, 2},
		{"second user rejoins", func() error { return errOnly(svc.Participate(ctx, 2, 1, nil)) }, 3},
		{"first user cancels", func() error { return svc.Cancel(ctx, 1, 1) }, 2},
	}

	for _, step := range steps {
		require.NoError(t, step.op(), step.name)

		active, err := regRepo.CountActiveByEvent(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, step.want, active, step.name)
		assert.Equal(t, active, eventRepo.participants(1), step.name)
	}
}

func TestCheckInMarksAttendance(t *testing.T) {
	svc, eventRepo, _ := newTestRegistrationService(newTestEvent(1, 10, 0))
	ctx := context.Background()

	_, err := svc.Participate(ctx, 7, 1, nil)
	require.NoError(t, err)

	reg, err := svc.CheckIn(ctx, 7, 1)
	require.NoError(t, err)

	assert.Equal(t, entity.RegistrationStatusAttended, reg.Status)
	require.NotNil(t, reg.CheckInTime)

	// Attended registrations no longer count toward capacity.
	assert.Equal(t, 0, eventRepo.participants(1))
}

func TestDeleteAllForEvent(t *testing.T) {
	svc, eventRepo, regRepo := newTestRegistrationService(newTestEvent(1, 10, 0))
	ctx := context.Background()

	for userID := int64(1); userID <= 3; userID++ {
		_, err := svc.Participate(ctx, userID, 1, nil)
		require.NoError(t, err)
	}
	require.Equal(t, 3, eventRepo.participants(1))

	require.NoError(t, svc.DeleteAllForEvent(ctx, 1))

	count, err := regRepo.CountActiveByEvent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// The event outlives the clear, so its counter must follow the (now
	// empty) attendance list.
	assert.Equal(t, 0, eventRepo.participants(1))
}

func TestDeleteAllForEventAfterEventRemoved(t *testing.T) {
	svc, eventRepo, _ := newTestRegistrationService(newTestEvent(1, 10, 0))
	ctx := context.Background()

	_, err := svc.Participate(ctx, 7, 1, nil)
	require.NoError(t, err)

	require.NoError(t, eventRepo.Delete(ctx, 1))

	// The recount finds no event row; the clear still succeeds.
	require.NoError(t, svc.DeleteAllForEvent(ctx, 1))
}

func errOnly(_ *entity.Registration, err error) error {
	return err
}
