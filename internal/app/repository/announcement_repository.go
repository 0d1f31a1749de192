package repository

import (
	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/pkg/logger"
	"gorm.io/gorm"
)

type AnnouncementRepository interface {
	Create(announcement *model.Announcement) error
	FindByID(id uint) (*model.Announcement, error)
	FindAll(limit, offset int) ([]model.Announcement, int64, error)
	Update(announcement *model.Announcement) error
	Delete(id uint) error
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(announcement *model.Announcement) error {
	if err := r.db.Create(announcement).Error; err != nil {
		logger.Error("Failed to create announcement in database", err, map[string]interface{}{
			"title": announcement.Title,
		})
		return err
	}
	return nil
}

func (r *announcementRepository) FindByID(id uint) (*model.Announcement, error) {
	var announcement model.Announcement
	if err := r.db.First(&announcement, id).Error; err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (r *announcementRepository) FindAll(limit, offset int) ([]model.Announcement, int64, error) {
	var total int64
	if err := r.db.Model(&model.Announcement{}).Count(&total).Error; err != nil {
		logger.Error("Failed to count announcements in database", err, nil)
		return nil, 0, err
	}

	var announcements []model.Announcement
	err := r.db.
		Order("pinned DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&announcements).Error
	if err != nil {
		logger.Error("Failed to find announcements in database", err, nil)
		return nil, 0, err
	}
	return announcements, total, nil
}

func (r *announcementRepository) Update(announcement *model.Announcement) error {
	if err := r.db.Save(announcement).Error; err != nil {
		logger.Error("Failed to update announcement in database", err, map[string]interface{}{
			"announcement_id": announcement.ID,
		})
		return err
	}
	return nil
}

func (r *announcementRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Announcement{}, id).Error; err != nil {
		logger.Error("Failed to delete announcement from database", err, map[string]interface{}{
			"announcement_id": id,
		})
		return err
	}
	return nil
}
