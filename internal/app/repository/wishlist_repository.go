package repository

import (
	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/pkg/logger"
	"gorm.io/gorm"
)

type WishlistRepository interface {
	FindByUserID(userID uint) ([]model.WishlistItem, error)
	FindByUserAndPerfume(userID, perfumeID uint) (*model.WishlistItem, error)
	Create(item *model.WishlistItem) error
	Delete(id uint) error
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) FindByUserID(userID uint) ([]model.WishlistItem, error) {
	var items []model.WishlistItem
	err := r.db.
		Preload("Perfume").
		Preload("Perfume.Brand").
		Preload("Perfume.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("perfume_images.position ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find wishlist items in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return items, nil
}

func (r *wishlistRepository) FindByUserAndPerfume(userID, perfumeID uint) (*model.WishlistItem, error) {
	var item model.WishlistItem
	err := r.db.
		Where("user_id = ? AND perfume_id = ?", userID, perfumeID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepository) Create(item *model.WishlistItem) error {
	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create wishlist item in database", err, map[string]interface{}{
			"user_id":    item.UserID,
			"perfume_id": item.PerfumeID,
		})
		return err
	}
	return nil
}

func (r *wishlistRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.WishlistItem{}, id).Error; err != nil {
		logger.Error("Failed to delete wishlist item from database", err, map[string]interface{}{
			"wishlist_item_id": id,
		})
		return err
	}
	return nil
}
