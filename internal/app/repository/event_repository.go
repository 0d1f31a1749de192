package repository

import (
	"time"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/pkg/logger"
	"gorm.io/gorm"
)

type EventRepository interface {
	Create(event *model.Event) error
	FindByID(id uint) (*model.Event, error)
	FindAll(activeOnly bool) ([]model.Event, error)
	Update(event *model.Event) error
	Delete(id uint) error

	CreateParticipation(participation *model.EventParticipation) error
	FindParticipation(eventID, userID uint) (*model.EventParticipation, error)
	CountParticipants(eventID uint) (int64, error)
	CloseEnded(now time.Time) (int64, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(event *model.Event) error {
	if err := r.db.Create(event).Error; err != nil {
		logger.Error("Failed to create event in database", err, map[string]interface{}{
			"title": event.Title,
		})
		return err
	}
	return nil
}

func (r *eventRepository) FindByID(id uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindAll(activeOnly bool) ([]model.Event, error) {
	query := r.db.Order("starts_at DESC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var events []model.Event
	if err := query.Find(&events).Error; err != nil {
		logger.Error("Failed to find events in database", err, nil)
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) Update(event *model.Event) error {
	if err := r.db.Save(event).Error; err != nil {
		logger.Error("Failed to update event in database", err, map[string]interface{}{
			"event_id": event.ID,
		})
		return err
	}
	return nil
}

func (r *eventRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Event{}, id).Error; err != nil {
		logger.Error("Failed to delete event from database", err, map[string]interface{}{
			"event_id": id,
		})
		return err
	}
	return nil
}

func (r *eventRepository) CreateParticipation(participation *model.EventParticipation) error {
	if err := r.db.Create(participation).Error; err != nil {
		logger.Error("Failed to create event participation", err, map[string]interface{}{
			"event_id": participation.EventID,
			"user_id":  participation.UserID,
		})
		return err
	}
	return nil
}

func (r *eventRepository) FindParticipation(eventID, userID uint) (*model.EventParticipation, error) {
	var participation model.EventParticipation
	err := r.db.
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&participation).Error
	if err != nil {
		return nil, err
	}
	return &participation, nil
}

func (r *eventRepository) CountParticipants(eventID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.EventParticipation{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count event participants", err, map[string]interface{}{
			"event_id": eventID,
		})
		return 0, err
	}
	return count, nil
}

func (r *eventRepository) CloseEnded(now time.Time) (int64, error) {
	result := r.db.Model(&model.Event{}).
		Where("is_active = ? AND ends_at < ?", true, now).
		Update("is_active", false)
	if result.Error != nil {
		logger.Error("Failed to close ended events", result.Error, nil)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
