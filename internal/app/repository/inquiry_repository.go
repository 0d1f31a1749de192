package repository

import (
	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/pkg/logger"
	"gorm.io/gorm"
)

type InquiryRepository interface {
	Create(inquiry *model.Inquiry) error
	FindByID(id uint) (*model.Inquiry, error)
	FindByUserID(userID uint) ([]model.Inquiry, error)
	FindAll(status model.InquiryStatus, limit, offset int) ([]model.Inquiry, int64, error)
	Update(inquiry *model.Inquiry) error
	Delete(id uint) error
}

type inquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(inquiry *model.Inquiry) error {
	if err := r.db.Create(inquiry).Error; err != nil {
		logger.Error("Failed to create inquiry in database", err, map[string]interface{}{
			"user_id": inquiry.UserID,
		})
		return err
	}
	return nil
}

func (r *inquiryRepository) FindByID(id uint) (*model.Inquiry, error) {
	var inquiry model.Inquiry
	if err := r.db.Preload("User").First(&inquiry, id).Error; err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) FindByUserID(userID uint) ([]model.Inquiry, error) {
	var inquiries []model.Inquiry
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&inquiries).Error
	if err != nil {
		logger.Error("Failed to find user inquiries in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return inquiries, nil
}

func (r *inquiryRepository) FindAll(status model.InquiryStatus, limit, offset int) ([]model.Inquiry, int64, error) {
	query := r.db.Model(&model.Inquiry{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count inquiries in database", err, nil)
		return nil, 0, err
	}

	var inquiries []model.Inquiry
	err := query.
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&inquiries).Error
	if err != nil {
		logger.Error("Failed to find inquiries in database", err, nil)
		return nil, 0, err
	}
	return inquiries, total, nil
}

func (r *inquiryRepository) Update(inquiry *model.Inquiry) error {
	if err := r.db.Omit("User").Save(inquiry).Error; err != nil {
		logger.Error("Failed to update inquiry in database", err, map[string]interface{}{
			"inquiry_id": inquiry.ID,
		})
		return err
	}
	return nil
}

func (r *inquiryRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Inquiry{}, id).Error; err != nil {
		logger.Error("Failed to delete inquiry from database", err, map[string]interface{}{
			"inquiry_id": id,
		})
		return err
	}
	return nil
}
