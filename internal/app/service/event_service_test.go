package service

import (
	"testing"
	"time"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/repository"
	"github.com/aionlab/aion-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryEventRepository keeps events in memory. The events table uses a
// postgres array column, so the sqlite test database cannot host it.
type memoryEventRepository struct {
	events         map[uint]*model.Event
	participations []model.EventParticipation
	nextEventID    uint
	nextPartID     uint
}

func newMemoryEventRepository() *memoryEventRepository {
	return &memoryEventRepository{events: map[uint]*model.Event{}}
}

func (r *memoryEventRepository) Create(event *model.Event) error {
	r.nextEventID++
	event.ID = r.nextEventID
	copied := *event
	r.events[event.ID] = &copied
	return nil
}

func (r *memoryEventRepository) FindByID(id uint) (*model.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *memoryEventRepository) FindAll(activeOnly bool) ([]model.Event, error) {
	var events []model.Event
	for _, event := range r.events {
		if activeOnly && !event.IsActive {
			continue
		}
		events = append(events, *event)
	}
	return events, nil
}

func (r *memoryEventRepository) Update(event *model.Event) error {
	if _, ok := r.events[event.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *event
	r.events[event.ID] = &copied
	return nil
}

func (r *memoryEventRepository) Delete(id uint) error {
	delete(r.events, id)
	return nil
}

func (r *memoryEventRepository) CreateParticipation(participation *model.EventParticipation) error {
	r.nextPartID++
	participation.ID = r.nextPartID
	r.participations = append(r.participations, *participation)
	return nil
}

func (r *memoryEventRepository) FindParticipation(eventID, userID uint) (*model.EventParticipation, error) {
	for i := range r.participations {
		if r.participations[i].EventID == eventID && r.participations[i].UserID == userID {
			copied := r.participations[i]
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryEventRepository) CountParticipants(eventID uint) (int64, error) {
	var count int64
	for i := range r.participations {
		if r.participations[i].EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (r *memoryEventRepository) CloseEnded(now time.Time) (int64, error) {
	var count int64
	for _, event := range r.events {
		if event.IsActive && event.EndsAt.Before(now) {
			event.IsActive = false
			count++
		}
	}
	return count, nil
}

func setupEventServiceTest(t *testing.T) (EventService, PointService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	pointService := NewPointService(repository.NewPointRepository(testDB))
	return NewEventService(newMemoryEventRepository(), pointService), pointService
}

func eventMutation(title string, startsAt, endsAt time.Time) EventMutation {
	return EventMutation{
		Title:    title,
		Body:     "본문",
		Images:   []string{"https://cdn.example.com/event.jpg"},
		StartsAt: startsAt,
		EndsAt:   endsAt,
	}
}

func runningEventMutation(title string) EventMutation {
	now := time.Now()
	return eventMutation(title, now.Add(-time.Hour), now.Add(time.Hour))
}

func TestEventService_CreateEvent_Success(t *testing.T) {
	svc, _ := setupEventServiceTest(t)

	event, err := svc.CreateEvent(runningEventMutation("  가을 향수 이벤트  "))
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.Equal(t, "가을 향수 이벤트", event.Title)
	assert.True(t, event.IsActive)
	require.Len(t, event.Images, 1)
}

func TestEventService_CreateEvent_TitleRequired(t *testing.T) {
	svc, _ := setupEventServiceTest(t)

	_, err := svc.CreateEvent(runningEventMutation("   "))
	assert.ErrorIs(t, err, ErrEventTitleEmpty)
}

func TestEventService_CreateEvent_InvalidWindow(t *testing.T) {
	svc, _ := setupEventServiceTest(t)

	now := time.Now()
	_, err := svc.CreateEvent(eventMutation("이벤트", now.Add(time.Hour), now))
	assert.ErrorIs(t, err, ErrEventInvalidWindow)
}

func TestEventService_JoinEvent_GrantsPoints(t *testing.T) {
	svc, pointService := setupEventServiceTest(t)

	event, err := svc.CreateEvent(runningEventMutation("참여 이벤트"))
	require.NoError(t, err)

	participation, err := svc.JoinEvent(event.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, event.ID, participation.EventID)
	assert.Equal(t, uint(1), participation.UserID)

	balance, err := pointService.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, eventJoinPointAmount, balance)
}

func TestEventService_JoinEvent_Duplicate(t *testing.T) {
	svc, pointService := setupEventServiceTest(t)

	event, err := svc.CreateEvent(runningEventMutation("참여 이벤트"))
	require.NoError(t, err)

	_, err = svc.JoinEvent(event.ID, 1)
	require.NoError(t, err)

	_, err = svc.JoinEvent(event.ID, 1)
	assert.ErrorIs(t, err, ErrEventAlreadyJoined)

	// 중복 참여는 포인트도 다시 적립되지 않는다
	balance, err := pointService.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, eventJoinPointAmount, balance)

	// 다른 회원은 참여할 수 있다
	_, err = svc.JoinEvent(event.ID, 2)
	require.NoError(t, err)
}

func TestEventService_JoinEvent_NotStarted(t *testing.T) {
	svc, _ := setupEventServiceTest(t)

	now := time.Now()
	event, err := svc.CreateEvent(eventMutation("예정 이벤트", now.Add(time.Hour), now.Add(2*time.Hour)))
	require.NoError(t, err)

	_, err = svc.JoinEvent(event.ID, 1)
	assert.ErrorIs(t, err, ErrEventNotActive)
}

func TestEventService_JoinEvent_Ended(t *testing.T) {
	svc, _ := setupEventServiceTest(t)

	now := time.Now()
	event, err := svc.CreateEvent(eventMutation("종료 이벤트", now.Add(-2*time.Hour), now.Add(-time.Hour)))
	require.NoError(t, err)

	_, err = svc.JoinEvent(event.ID, 1)
	assert.ErrorIs(t, err, ErrEventNotActive)
}

func TestEventService_JoinEvent_InactiveEvent(t *testing.T) {
	svc, _ := setupEventServiceTest(t)

	input := runningEventMutation("비공개 이벤트")
	inactive := false
	input.IsActive = &inactive
	event, err := svc.CreateEvent(input)
	require.NoError(t, err)

	_, err = svc.JoinEvent(event.ID, 1)
	assert.ErrorIs(t, err, ErrEventNotActive)
}

func TestEventService_JoinEvent_EventNotFound(t *testing.T) {
	svc, _ := setupEventServiceTest(t)

	_, err := svc.JoinEvent(9999, 1)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventService_CountParticipants(t *testing.T) {
	svc, _ := setupEventServiceTest(t)

	event, err := svc.CreateEvent(runningEventMutation("참여 이벤트"))
	require.NoError(t, err)

	_, err = svc.JoinEvent(event.ID, 1)
	require.NoError(t, err)
	_, err = svc.JoinEvent(event.ID, 2)
	require.NoError(t, err)

	count, err := svc.CountParticipants(event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestEventService_CloseEndedEvents(t *testing.T) {
	svc, _ := setupEventServiceTest(t)

	now := time.Now()
	ended, err := svc.CreateEvent(eventMutation("종료 이벤트", now.Add(-2*time.Hour), now.Add(-time.Hour)))
	require.NoError(t, err)
	running, err := svc.CreateEvent(runningEventMutation("진행 이벤트"))
	require.NoError(t, err)

	count, err := svc.CloseEndedEvents(now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	closed, err := svc.GetEventByID(ended.ID)
	require.NoError(t, err)
	assert.False(t, closed.IsActive)

	stillRunning, err := svc.GetEventByID(running.ID)
	require.NoError(t, err)
	assert.True(t, stillRunning.IsActive)

	// 이미 닫힌 이벤트는 다시 집계되지 않는다
	count, err = svc.CloseEndedEvents(now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestEventService_UpdateEvent_NotFound(t *testing.T) {
	svc, _ := setupEventServiceTest(t)

	_, err := svc.UpdateEvent(9999, runningEventMutation("수정"))
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventService_DeleteEvent(t *testing.T) {
	svc, _ := setupEventServiceTest(t)

	event, err := svc.CreateEvent(runningEventMutation("삭제 이벤트"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvent(event.ID))

	_, err = svc.GetEventByID(event.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}
