package service

import (
	"errors"
	"strings"
	"time"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/repository"
	"github.com/aionlab/aion-backend/pkg/logger"
	"github.com/aionlab/aion-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrCouponNotFound      = errors.New("쿠폰을 찾을 수 없습니다")
	ErrCouponAlreadyIssued = errors.New("이미 발급받은 쿠폰입니다")
	ErrCouponExpired       = errors.New("만료된 쿠폰입니다")
	ErrCouponInactive      = errors.New("사용이 중지된 쿠폰입니다")
	ErrCouponInvalidWindow = errors.New("쿠폰 사용 기간이 올바르지 않습니다")
)

type CouponMutation struct {
	Code           string
	Name           string
	DiscountType   model.DiscountType
	DiscountValue  float64
	MinOrderAmount float64
	StartsAt       time.Time
	ExpiresAt      time.Time
	IsActive       *bool
}

type CouponService interface {
	ListCoupons() ([]model.Coupon, error)
	GetCouponByID(id uint) (*model.Coupon, error)
	CreateCoupon(input CouponMutation) (*model.Coupon, error)
	UpdateCoupon(id uint, input CouponMutation) (*model.Coupon, error)
	DeleteCoupon(id uint) error
	ClaimCoupon(userID uint, code string) (*model.UserCoupon, error)
	GetUserCoupons(userID uint) ([]model.UserCoupon, error)
	ExpireCoupons(now time.Time) (int64, error)
}

type couponService struct {
	couponRepo repository.CouponRepository
}

func NewCouponService(couponRepo repository.CouponRepository) CouponService {
	return &couponService{couponRepo: couponRepo}
}

func (s *couponService) ListCoupons() ([]model.Coupon, error) {
	coupons, err := s.couponRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list coupons", err)
		return nil, err
	}
	return coupons, nil
}

func (s *couponService) GetCouponByID(id uint) (*model.Coupon, error) {
	coupon, err := s.couponRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return coupon, nil
}

func (s *couponService) CreateCoupon(input CouponMutation) (*model.Coupon, error) {
	logger.Info("Creating coupon", map[string]interface{}{
		"code": input.Code,
		"name": input.Name,
	})

	if !input.ExpiresAt.After(input.StartsAt) {
		return nil, ErrCouponInvalidWindow
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		code = util.GenerateCouponCode("")
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	coupon := &model.Coupon{
		Code:           code,
		Name:           input.Name,
		DiscountType:   input.DiscountType,
		DiscountValue:  input.DiscountValue,
		MinOrderAmount: input.MinOrderAmount,
		StartsAt:       input.StartsAt,
		ExpiresAt:      input.ExpiresAt,
		IsActive:       isActive,
	}

	if err := s.couponRepo.Create(coupon); err != nil {
		return nil, err
	}

	logger.Info("Coupon created", map[string]interface{}{
		"coupon_id": coupon.ID,
		"code":      coupon.Code,
	})
	return coupon, nil
}

func (s *couponService) UpdateCoupon(id uint, input CouponMutation) (*model.Coupon, error) {
	coupon, err := s.couponRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	if !input.ExpiresAt.After(input.StartsAt) {
		return nil, ErrCouponInvalidWindow
	}

	coupon.Name = input.Name
	coupon.DiscountType = input.DiscountType
	coupon.DiscountValue = input.DiscountValue
	coupon.MinOrderAmount = input.MinOrderAmount
	coupon.StartsAt = input.StartsAt
	coupon.ExpiresAt = input.ExpiresAt
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}

	if err := s.couponRepo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (s *couponService) DeleteCoupon(id uint) error {
	if _, err := s.couponRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCouponNotFound
		}
		return err
	}
	return s.couponRepo.Delete(id)
}

func (s *couponService) ClaimCoupon(userID uint, code string) (*model.UserCoupon, error) {
	logger.Info("Claiming coupon", map[string]interface{}{
		"user_id": userID,
		"code":    code,
	})

	coupon, err := s.couponRepo.FindByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	if !coupon.IsActive {
		return nil, ErrCouponInactive
	}
	if time.Now().After(coupon.ExpiresAt) {
		return nil, ErrCouponExpired
	}

	existing, err := s.couponRepo.FindUserCouponByUserAndCoupon(userID, coupon.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCouponAlreadyIssued
	}

	userCoupon := &model.UserCoupon{
		UserID:   userID,
		CouponID: coupon.ID,
	}
	if err := s.couponRepo.IssueToUser(userCoupon); err != nil {
		return nil, err
	}

	logger.Info("Coupon claimed", map[string]interface{}{
		"user_id":        userID,
		"coupon_id":      coupon.ID,
		"user_coupon_id": userCoupon.ID,
	})
	return s.couponRepo.FindUserCouponByID(userCoupon.ID)
}

func (s *couponService) GetUserCoupons(userID uint) ([]model.UserCoupon, error) {
	userCoupons, err := s.couponRepo.FindUserCoupons(userID)
	if err != nil {
		logger.Error("Failed to fetch user coupons", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return userCoupons, nil
}

func (s *couponService) ExpireCoupons(now time.Time) (int64, error) {
	count, err := s.couponRepo.DeactivateExpired(now)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Info("Expired coupons deactivated", map[string]interface{}{
			"count": count,
		})
	}
	return count, nil
}
