package service

import (
	"errors"
	"strings"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/repository"
	"github.com/aionlab/aion-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrAnnouncementNotFound   = errors.New("공지사항을 찾을 수 없습니다")
	ErrAnnouncementTitleEmpty = errors.New("공지 제목을 입력해주세요")
)

type AnnouncementService interface {
	ListAnnouncements(limit, offset int) ([]model.Announcement, int64, error)
	GetAnnouncementByID(id uint) (*model.Announcement, error)
	CreateAnnouncement(title, body string, pinned bool) (*model.Announcement, error)
	UpdateAnnouncement(id uint, title, body string, pinned bool) (*model.Announcement, error)
	DeleteAnnouncement(id uint) error
}

type announcementService struct {
	announcementRepo repository.AnnouncementRepository
}

func NewAnnouncementService(announcementRepo repository.AnnouncementRepository) AnnouncementService {
	return &announcementService{announcementRepo: announcementRepo}
}

func (s *announcementService) ListAnnouncements(limit, offset int) ([]model.Announcement, int64, error) {
	if limit <= 0 {
		limit = 20
	}

	announcements, total, err := s.announcementRepo.FindAll(limit, offset)
	if err != nil {
		logger.Error("Failed to list announcements", err)
		return nil, 0, err
	}
	return announcements, total, nil
}

func (s *announcementService) GetAnnouncementByID(id uint) (*model.Announcement, error) {
	announcement, err := s.announcementRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return announcement, nil
}

func (s *announcementService) CreateAnnouncement(title, body string, pinned bool) (*model.Announcement, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrAnnouncementTitleEmpty
	}

	announcement := &model.Announcement{
		Title:  strings.TrimSpace(title),
		Body:   body,
		Pinned: pinned,
	}
	if err := s.announcementRepo.Create(announcement); err != nil {
		return nil, err
	}

	logger.Info("Announcement created", map[string]interface{}{
		"announcement_id": announcement.ID,
		"pinned":          pinned,
	})
	return announcement, nil
}

func (s *announcementService) UpdateAnnouncement(id uint, title, body string, pinned bool) (*model.Announcement, error) {
	announcement, err := s.announcementRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}

	if strings.TrimSpace(title) == "" {
		return nil, ErrAnnouncementTitleEmpty
	}

	announcement.Title = strings.TrimSpace(title)
	announcement.Body = body
	announcement.Pinned = pinned

	if err := s.announcementRepo.Update(announcement); err != nil {
		return nil, err
	}
	return announcement, nil
}

func (s *announcementService) DeleteAnnouncement(id uint) error {
	if _, err := s.announcementRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}
	return s.announcementRepo.Delete(id)
}
