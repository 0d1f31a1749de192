package service

import (
	"errors"
	"strings"
	"time"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/repository"
	"github.com/aionlab/aion-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInquiryNotFound   = errors.New("문의를 찾을 수 없습니다")
	ErrInquiryTitleEmpty = errors.New("문의 제목을 입력해주세요")
	ErrInquiryAnswered   = errors.New("이미 답변이 완료된 문의입니다")
	ErrAnswerEmpty       = errors.New("답변 내용을 입력해주세요")
)

type InquiryService interface {
	CreateInquiry(userID uint, title, body string) (*model.Inquiry, error)
	GetUserInquiries(userID uint) ([]model.Inquiry, error)
	GetInquiryByID(userID uint, inquiryID uint, isAdmin bool) (*model.Inquiry, error)
	ListInquiries(status model.InquiryStatus, limit, offset int) ([]model.Inquiry, int64, error)
	AnswerInquiry(inquiryID uint, answer string) (*model.Inquiry, error)
	DeleteInquiry(userID uint, inquiryID uint, isAdmin bool) error
}

type inquiryService struct {
	inquiryRepo repository.InquiryRepository
}

func NewInquiryService(inquiryRepo repository.InquiryRepository) InquiryService {
	return &inquiryService{inquiryRepo: inquiryRepo}
}

func (s *inquiryService) CreateInquiry(userID uint, title, body string) (*model.Inquiry, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrInquiryTitleEmpty
	}

	inquiry := &model.Inquiry{
		UserID: userID,
		Title:  strings.TrimSpace(title),
		Body:   body,
		Status: model.InquiryPending,
	}
	if err := s.inquiryRepo.Create(inquiry); err != nil {
		return nil, err
	}

	logger.Info("Inquiry created", map[string]interface{}{
		"inquiry_id": inquiry.ID,
		"user_id":    userID,
	})
	return inquiry, nil
}

func (s *inquiryService) GetUserInquiries(userID uint) ([]model.Inquiry, error) {
	inquiries, err := s.inquiryRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user inquiries", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return inquiries, nil
}

func (s *inquiryService) GetInquiryByID(userID uint, inquiryID uint, isAdmin bool) (*model.Inquiry, error) {
	inquiry, err := s.inquiryRepo.FindByID(inquiryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, err
	}

	if !isAdmin && inquiry.UserID != userID {
		logger.Warn("Inquiry access denied: ownership mismatch", map[string]interface{}{
			"user_id":    userID,
			"inquiry_id": inquiryID,
		})
		return nil, ErrInquiryNotFound
	}
	return inquiry, nil
}

func (s *inquiryService) ListInquiries(status model.InquiryStatus, limit, offset int) ([]model.Inquiry, int64, error) {
	if limit <= 0 {
		limit = 20
	}

	inquiries, total, err := s.inquiryRepo.FindAll(status, limit, offset)
	if err != nil {
		logger.Error("Failed to list inquiries", err)
		return nil, 0, err
	}
	return inquiries, total, nil
}

func (s *inquiryService) AnswerInquiry(inquiryID uint, answer string) (*model.Inquiry, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, ErrAnswerEmpty
	}

	inquiry, err := s.inquiryRepo.FindByID(inquiryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, err
	}

	if inquiry.Status == model.InquiryAnswered {
		return nil, ErrInquiryAnswered
	}

	now := time.Now()
	inquiry.Answer = answer
	inquiry.AnsweredAt = &now
	inquiry.Status = model.InquiryAnswered

	if err := s.inquiryRepo.Update(inquiry); err != nil {
		return nil, err
	}

	logger.Info("Inquiry answered", map[string]interface{}{
		"inquiry_id": inquiryID,
	})
	return inquiry, nil
}

func (s *inquiryService) DeleteInquiry(userID uint, inquiryID uint, isAdmin bool) error {
	inquiry, err := s.inquiryRepo.FindByID(inquiryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInquiryNotFound
		}
		return err
	}

	if !isAdmin && inquiry.UserID != userID {
		return ErrInquiryNotFound
	}

	return s.inquiryRepo.Delete(inquiryID)
}
