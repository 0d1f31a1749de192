package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/service"
	apperrors "github.com/aionlab/aion-backend/internal/errors"
	"github.com/aionlab/aion-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CouponController struct {
	couponService service.CouponService
}

func NewCouponController(couponService service.CouponService) *CouponController {
	return &CouponController{couponService: couponService}
}

type CouponRequest struct {
	Code           string    `json:"code"`
	Name           string    `json:"name" binding:"required"`
	DiscountType   string    `json:"discount_type" binding:"required,oneof=percent fixed"`
	DiscountValue  float64   `json:"discount_value" binding:"required,min=0"`
	MinOrderAmount float64   `json:"min_order_amount"`
	StartsAt       time.Time `json:"starts_at" binding:"required"`
	ExpiresAt      time.Time `json:"expires_at" binding:"required"`
	IsActive       *bool     `json:"is_active"`
}

type ClaimCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

func toCouponMutation(req CouponRequest) service.CouponMutation {
	return service.CouponMutation{
		Code:           req.Code,
		Name:           req.Name,
		DiscountType:   model.DiscountType(req.DiscountType),
		DiscountValue:  req.DiscountValue,
		MinOrderAmount: req.MinOrderAmount,
		StartsAt:       req.StartsAt,
		ExpiresAt:      req.ExpiresAt,
		IsActive:       req.IsActive,
	}
}

// ListCoupons returns all coupons (admin)
// GET /api/v1/admin/coupons
func (ctrl *CouponController) ListCoupons(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	coupons, err := ctrl.couponService.ListCoupons()
	if err != nil {
		log.Error("Failed to list coupons", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"coupons": coupons,
		"count":   len(coupons),
	})
}

// CreateCoupon registers a coupon (admin)
// POST /api/v1/admin/coupons
func (ctrl *CouponController) CreateCoupon(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	coupon, err := ctrl.couponService.CreateCoupon(toCouponMutation(req))
	if err != nil {
		if errors.Is(err, service.ErrCouponInvalidWindow) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "쿠폰 사용 기간이 올바르지 않습니다")
			return
		}
		log.Error("Failed to create coupon", err, map[string]interface{}{
			"code": req.Code,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create coupon")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "쿠폰이 등록되었습니다",
		"coupon":  coupon,
	})
}

// UpdateCoupon edits a coupon (admin)
// PUT /api/v1/admin/coupons/:id
func (ctrl *CouponController) UpdateCoupon(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "쿠폰 ID가 올바르지 않습니다")
		return
	}

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	coupon, err := ctrl.couponService.UpdateCoupon(uint(id), toCouponMutation(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCouponNotFound):
			apperrors.NotFound(c, apperrors.CouponNotFound, "쿠폰을 찾을 수 없습니다")
		case errors.Is(err, service.ErrCouponInvalidWindow):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "쿠폰 사용 기간이 올바르지 않습니다")
		default:
			log.Error("Failed to update coupon", err, map[string]interface{}{
				"coupon_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update coupon")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "쿠폰이 수정되었습니다",
		"coupon":  coupon,
	})
}

// DeleteCoupon removes a coupon (admin)
// DELETE /api/v1/admin/coupons/:id
func (ctrl *CouponController) DeleteCoupon(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "쿠폰 ID가 올바르지 않습니다")
		return
	}

	if err := ctrl.couponService.DeleteCoupon(uint(id)); err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			apperrors.NotFound(c, apperrors.CouponNotFound, "쿠폰을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to delete coupon", err, map[string]interface{}{
			"coupon_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "쿠폰이 삭제되었습니다"})
}

// ClaimCoupon issues a coupon to the authenticated user by code
// POST /api/v1/coupons/claim
func (ctrl *CouponController) ClaimCoupon(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req ClaimCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "쿠폰 코드를 입력해주세요")
		return
	}

	userCoupon, err := ctrl.couponService.ClaimCoupon(userID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCouponNotFound):
			apperrors.NotFound(c, apperrors.CouponNotFound, "쿠폰을 찾을 수 없습니다")
		case errors.Is(err, service.ErrCouponAlreadyIssued):
			apperrors.Conflict(c, apperrors.CouponAlreadyOwned, "이미 발급받은 쿠폰입니다")
		case errors.Is(err, service.ErrCouponExpired):
			apperrors.BadRequest(c, apperrors.CouponExpired, "만료된 쿠폰입니다")
		case errors.Is(err, service.ErrCouponInactive):
			apperrors.BadRequest(c, apperrors.CouponNotUsable, "사용이 중지된 쿠폰입니다")
		default:
			log.Error("Failed to claim coupon", err, map[string]interface{}{
				"user_id": userID,
				"code":    req.Code,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "claim coupon")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "쿠폰이 발급되었습니다",
		"coupon":  userCoupon,
	})
}

// GetMyCoupons returns the user's issued coupons
// GET /api/v1/coupons
func (ctrl *CouponController) GetMyCoupons(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	userCoupons, err := ctrl.couponService.GetUserCoupons(userID)
	if err != nil {
		log.Error("Failed to get user coupons", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"coupons": userCoupons,
		"count":   len(userCoupons),
	})
}
