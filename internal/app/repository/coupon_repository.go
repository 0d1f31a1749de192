package repository

import (
	"time"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/pkg/logger"
	"gorm.io/gorm"
)

type CouponRepository interface {
	Create(coupon *model.Coupon) error
	FindByID(id uint) (*model.Coupon, error)
	FindByCode(code string) (*model.Coupon, error)
	FindAll() ([]model.Coupon, error)
	Update(coupon *model.Coupon) error
	Delete(id uint) error

	IssueToUser(userCoupon *model.UserCoupon) error
	FindUserCoupons(userID uint) ([]model.UserCoupon, error)
	FindUserCouponByID(id uint) (*model.UserCoupon, error)
	FindUserCouponByUserAndCoupon(userID, couponID uint) (*model.UserCoupon, error)
	MarkUsed(id uint, usedAt time.Time) error
	DeactivateExpired(now time.Time) (int64, error)
}

type couponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Create(coupon *model.Coupon) error {
	if err := r.db.Create(coupon).Error; err != nil {
		logger.Error("Failed to create coupon in database", err, map[string]interface{}{
			"code": coupon.Code,
		})
		return err
	}
	return nil
}

func (r *couponRepository) FindByID(id uint) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.db.First(&coupon, id).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) FindByCode(code string) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.db.Where("code = ?", code).First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) FindAll() ([]model.Coupon, error) {
	var coupons []model.Coupon
	if err := r.db.Order("created_at DESC").Find(&coupons).Error; err != nil {
		logger.Error("Failed to find coupons in database", err, nil)
		return nil, err
	}
	return coupons, nil
}

func (r *couponRepository) Update(coupon *model.Coupon) error {
	if err := r.db.Save(coupon).Error; err != nil {
		logger.Error("Failed to update coupon in database", err, map[string]interface{}{
			"coupon_id": coupon.ID,
		})
		return err
	}
	return nil
}

func (r *couponRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Coupon{}, id).Error; err != nil {
		logger.Error("Failed to delete coupon from database", err, map[string]interface{}{
			"coupon_id": id,
		})
		return err
	}
	return nil
}

func (r *couponRepository) IssueToUser(userCoupon *model.UserCoupon) error {
	if err := r.db.Create(userCoupon).Error; err != nil {
		logger.Error("Failed to issue coupon to user", err, map[string]interface{}{
			"user_id":   userCoupon.UserID,
			"coupon_id": userCoupon.CouponID,
		})
		return err
	}
	return nil
}

func (r *couponRepository) FindUserCoupons(userID uint) ([]model.UserCoupon, error) {
	var userCoupons []model.UserCoupon
	err := r.db.
		Preload("Coupon").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&userCoupons).Error
	if err != nil {
		logger.Error("Failed to find user coupons in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return userCoupons, nil
}

func (r *couponRepository) FindUserCouponByID(id uint) (*model.UserCoupon, error) {
	var userCoupon model.UserCoupon
	if err := r.db.Preload("Coupon").First(&userCoupon, id).Error; err != nil {
		return nil, err
	}
	return &userCoupon, nil
}

func (r *couponRepository) FindUserCouponByUserAndCoupon(userID, couponID uint) (*model.UserCoupon, error) {
	var userCoupon model.UserCoupon
	err := r.db.
		Where("user_id = ? AND coupon_id = ?", userID, couponID).
		First(&userCoupon).Error
	if err != nil {
		return nil, err
	}
	return &userCoupon, nil
}

func (r *couponRepository) MarkUsed(id uint, usedAt time.Time) error {
	result := r.db.Model(&model.UserCoupon{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", usedAt)
	if result.Error != nil {
		logger.Error("Failed to mark user coupon as used", result.Error, map[string]interface{}{
			"user_coupon_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *couponRepository) DeactivateExpired(now time.Time) (int64, error) {
	result := r.db.Model(&model.Coupon{}).
		Where("is_active = ? AND expires_at < ?", true, now).
		Update("is_active", false)
	if result.Error != nil {
		logger.Error("Failed to deactivate expired coupons", result.Error, nil)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
