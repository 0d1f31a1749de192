package repository

import (
	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/pkg/logger"
	"gorm.io/gorm"
)

type PointRepository interface {
	FindRuleByAction(action model.PointAction) (*model.PointRule, error)
	FindAllRules() ([]model.PointRule, error)
	UpdateRule(rule *model.PointRule) error

	CreateEntry(entry *model.UserPoint) error
	FindEntriesByUserID(userID uint, limit, offset int) ([]model.UserPoint, int64, error)
	SumByUserID(userID uint) (int, error)
}

type pointRepository struct {
	db *gorm.DB
}

func NewPointRepository(db *gorm.DB) PointRepository {
	return &pointRepository{db: db}
}

func (r *pointRepository) FindRuleByAction(action model.PointAction) (*model.PointRule, error) {
	var rule model.PointRule
	if err := r.db.Where("action = ?", action).First(&rule).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *pointRepository) FindAllRules() ([]model.PointRule, error) {
	var rules []model.PointRule
	if err := r.db.Order("action ASC").Find(&rules).Error; err != nil {
		logger.Error("Failed to find point rules in database", err, nil)
		return nil, err
	}
	return rules, nil
}

func (r *pointRepository) UpdateRule(rule *model.PointRule) error {
	if err := r.db.Save(rule).Error; err != nil {
		logger.Error("Failed to update point rule in database", err, map[string]interface{}{
			"action": rule.Action,
		})
		return err
	}
	return nil
}

func (r *pointRepository) CreateEntry(entry *model.UserPoint) error {
	if err := r.db.Create(entry).Error; err != nil {
		logger.Error("Failed to create point entry in database", err, map[string]interface{}{
			"user_id": entry.UserID,
			"amount":  entry.Amount,
		})
		return err
	}
	return nil
}

func (r *pointRepository) FindEntriesByUserID(userID uint, limit, offset int) ([]model.UserPoint, int64, error) {
	var total int64
	if err := r.db.Model(&model.UserPoint{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		logger.Error("Failed to count point entries in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, 0, err
	}

	var entries []model.UserPoint
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		logger.Error("Failed to find point entries in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *pointRepository) SumByUserID(userID uint) (int, error) {
	var sum struct {
		Total int
	}
	err := r.db.Model(&model.UserPoint{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ?", userID).
		Scan(&sum).Error
	if err != nil {
		logger.Error("Failed to sum user points in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return 0, err
	}
	return sum.Total, nil
}
