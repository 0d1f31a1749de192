package service

import (
	"errors"
	"strings"
	"time"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/repository"
	"github.com/aionlab/aion-backend/pkg/logger"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound      = errors.New("이벤트를 찾을 수 없습니다")
	ErrEventNotActive     = errors.New("진행 중인 이벤트가 아닙니다")
	ErrEventAlreadyJoined = errors.New("이미 참여한 이벤트입니다")
	ErrEventTitleEmpty    = errors.New("이벤트 제목을 입력해주세요")
	ErrEventInvalidWindow = errors.New("이벤트 기간이 올바르지 않습니다")
)

type EventMutation struct {
	Title    string
	Body     string
	Images   []string
	StartsAt time.Time
	EndsAt   time.Time
	IsActive *bool
}

type EventService interface {
	ListEvents(activeOnly bool) ([]model.Event, error)
	GetEventByID(id uint) (*model.Event, error)
	CreateEvent(input EventMutation) (*model.Event, error)
	UpdateEvent(id uint, input EventMutation) (*model.Event, error)
	DeleteEvent(id uint) error
	JoinEvent(eventID, userID uint) (*model.EventParticipation, error)
	CountParticipants(eventID uint) (int64, error)
	CloseEndedEvents(now time.Time) (int64, error)
}

// 이벤트 참여 1회당 적립되는 포인트
const eventJoinPointAmount = 100

type eventService struct {
	eventRepo    repository.EventRepository
	pointService PointService
}

func NewEventService(eventRepo repository.EventRepository, pointService PointService) EventService {
	return &eventService{
		eventRepo:    eventRepo,
		pointService: pointService,
	}
}

func (s *eventService) ListEvents(activeOnly bool) ([]model.Event, error) {
	events, err := s.eventRepo.FindAll(activeOnly)
	if err != nil {
		logger.Error("Failed to list events", err)
		return nil, err
	}
	return events, nil
}

func (s *eventService) GetEventByID(id uint) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) CreateEvent(input EventMutation) (*model.Event, error) {
	logger.Info("Creating event", map[string]interface{}{
		"title": input.Title,
	})

	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrEventTitleEmpty
	}
	if !input.EndsAt.After(input.StartsAt) {
		return nil, ErrEventInvalidWindow
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	event := &model.Event{
		Title:    strings.TrimSpace(input.Title),
		Body:     input.Body,
		Images:   pq.StringArray(input.Images),
		StartsAt: input.StartsAt,
		EndsAt:   input.EndsAt,
		IsActive: isActive,
	}

	if err := s.eventRepo.Create(event); err != nil {
		return nil, err
	}

	logger.Info("Event created", map[string]interface{}{
		"event_id": event.ID,
		"title":    event.Title,
	})
	return event, nil
}

func (s *eventService) UpdateEvent(id uint, input EventMutation) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrEventTitleEmpty
	}
	if !input.EndsAt.After(input.StartsAt) {
		return nil, ErrEventInvalidWindow
	}

	event.Title = strings.TrimSpace(input.Title)
	event.Body = input.Body
	if input.Images != nil {
		event.Images = pq.StringArray(input.Images)
	}
	event.StartsAt = input.StartsAt
	event.EndsAt = input.EndsAt
	if input.IsActive != nil {
		event.IsActive = *input.IsActive
	}

	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) DeleteEvent(id uint) error {
	if _, err := s.eventRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	return s.eventRepo.Delete(id)
}

func (s *eventService) JoinEvent(eventID, userID uint) (*model.EventParticipation, error) {
	logger.Info("Joining event", map[string]interface{}{
		"event_id": eventID,
		"user_id":  userID,
	})

	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	now := time.Now()
	if !event.IsActive || now.Before(event.StartsAt) || now.After(event.EndsAt) {
		return nil, ErrEventNotActive
	}

	existing, err := s.eventRepo.FindParticipation(eventID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEventAlreadyJoined
	}

	participation := &model.EventParticipation{
		EventID: eventID,
		UserID:  userID,
	}
	if err := s.eventRepo.CreateParticipation(participation); err != nil {
		return nil, err
	}

	// 적립 실패가 참여 자체를 막지는 않는다
	if err := s.pointService.GrantEventPoints(userID, eventJoinPointAmount); err != nil {
		logger.Warn("Failed to grant event points", map[string]interface{}{
			"event_id": eventID,
			"user_id":  userID,
			"error":    err.Error(),
		})
	}

	logger.Info("Event joined", map[string]interface{}{
		"event_id": eventID,
		"user_id":  userID,
	})
	return participation, nil
}

func (s *eventService) CountParticipants(eventID uint) (int64, error) {
	return s.eventRepo.CountParticipants(eventID)
}

func (s *eventService) CloseEndedEvents(now time.Time) (int64, error) {
	count, err := s.eventRepo.CloseEnded(now)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Info("Ended events closed", map[string]interface{}{
			"count": count,
		})
	}
	return count, nil
}
