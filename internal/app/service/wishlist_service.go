package service

import (
	"errors"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/repository"
	"github.com/aionlab/aion-backend/pkg/logger"
	"gorm.io/gorm"
)

type WishlistService interface {
	GetWishlist(userID uint) ([]model.WishlistItem, error)
	ToggleWishlist(userID, perfumeID uint) (bool, error)
	IsWishlisted(userID, perfumeID uint) (bool, error)
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	perfumeRepo  repository.PerfumeRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, perfumeRepo repository.PerfumeRepository) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		perfumeRepo:  perfumeRepo,
	}
}

func (s *wishlistService) GetWishlist(userID uint) ([]model.WishlistItem, error) {
	items, err := s.wishlistRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return items, nil
}

// ToggleWishlist adds the perfume when absent and removes it when present.
// Returns true when the perfume ends up wishlisted.
func (s *wishlistService) ToggleWishlist(userID, perfumeID uint) (bool, error) {
	logger.Debug("Toggling wishlist", map[string]interface{}{
		"user_id":    userID,
		"perfume_id": perfumeID,
	})

	if _, err := s.perfumeRepo.FindByID(perfumeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrPerfumeNotFound
		}
		return false, err
	}

	existing, err := s.wishlistRepo.FindByUserAndPerfume(userID, perfumeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check wishlist item", err, map[string]interface{}{
			"user_id":    userID,
			"perfume_id": perfumeID,
		})
		return false, err
	}

	if existing != nil {
		if err := s.wishlistRepo.Delete(existing.ID); err != nil {
			return false, err
		}
		return false, nil
	}

	item := &model.WishlistItem{
		UserID:    userID,
		PerfumeID: perfumeID,
	}
	if err := s.wishlistRepo.Create(item); err != nil {
		return false, err
	}
	return true, nil
}

func (s *wishlistService) IsWishlisted(userID, perfumeID uint) (bool, error) {
	_, err := s.wishlistRepo.FindByUserAndPerfume(userID, perfumeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
