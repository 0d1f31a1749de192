package service

import (
	"errors"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/repository"
	"github.com/aionlab/aion-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrPointRuleNotFound  = errors.New("적립 규칙을 찾을 수 없습니다")
	ErrInsufficientPoints = errors.New("포인트가 부족합니다")
)

type PointService interface {
	GetBalance(userID uint) (int, error)
	GetHistory(userID uint, limit, offset int) ([]model.UserPoint, int64, error)
	SpendPoints(userID uint, amount int) error
	GrantEventPoints(userID uint, amount int) error
	ListRules() ([]model.PointRule, error)
	UpdateRule(action model.PointAction, rate float64, isActive bool) (*model.PointRule, error)
}

type pointService struct {
	pointRepo repository.PointRepository
}

func NewPointService(pointRepo repository.PointRepository) PointService {
	return &pointService{pointRepo: pointRepo}
}

func (s *pointService) GetBalance(userID uint) (int, error) {
	balance, err := s.pointRepo.SumByUserID(userID)
	if err != nil {
		logger.Error("Failed to get point balance", err, map[string]interface{}{
			"user_id": userID,
		})
		return 0, err
	}
	return balance, nil
}

func (s *pointService) GetHistory(userID uint, limit, offset int) ([]model.UserPoint, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.pointRepo.FindEntriesByUserID(userID, limit, offset)
}

func (s *pointService) SpendPoints(userID uint, amount int) error {
	if amount <= 0 {
		return ErrInsufficientPoints
	}

	balance, err := s.pointRepo.SumByUserID(userID)
	if err != nil {
		return err
	}
	if balance < amount {
		logger.Warn("Insufficient point balance", map[string]interface{}{
			"user_id":   userID,
			"balance":   balance,
			"requested": amount,
		})
		return ErrInsufficientPoints
	}

	entry := &model.UserPoint{
		UserID: userID,
		Amount: -amount,
		Action: model.PointActionSpend,
	}
	if err := s.pointRepo.CreateEntry(entry); err != nil {
		return err
	}

	logger.Info("Points spent", map[string]interface{}{
		"user_id": userID,
		"amount":  amount,
	})
	return nil
}

func (s *pointService) GrantEventPoints(userID uint, amount int) error {
	if amount <= 0 {
		return nil
	}

	entry := &model.UserPoint{
		UserID: userID,
		Amount: amount,
		Action: model.PointActionEvent,
	}
	if err := s.pointRepo.CreateEntry(entry); err != nil {
		return err
	}

	logger.Info("Event points granted", map[string]interface{}{
		"user_id": userID,
		"amount":  amount,
	})
	return nil
}

func (s *pointService) ListRules() ([]model.PointRule, error) {
	return s.pointRepo.FindAllRules()
}

func (s *pointService) UpdateRule(action model.PointAction, rate float64, isActive bool) (*model.PointRule, error) {
	rule, err := s.pointRepo.FindRuleByAction(action)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPointRuleNotFound
		}
		return nil, err
	}

	rule.Rate = rate
	rule.IsActive = isActive
	if err := s.pointRepo.UpdateRule(rule); err != nil {
		return nil, err
	}

	logger.Info("Point rule updated", map[string]interface{}{
		"action":    action,
		"rate":      rate,
		"is_active": isActive,
	})
	return rule, nil
}
