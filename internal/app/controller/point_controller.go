package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/service"
	apperrors "github.com/aionlab/aion-backend/internal/errors"
	"github.com/aionlab/aion-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type PointController struct {
	pointService service.PointService
}

func NewPointController(pointService service.PointService) *PointController {
	return &PointController{pointService: pointService}
}

type SpendPointsRequest struct {
	Amount int `json:"amount" binding:"required,min=1"`
}

type UpdatePointRuleRequest struct {
	Rate     float64 `json:"rate" binding:"min=0,max=100"`
	IsActive *bool   `json:"isActive" binding:"required"`
}

// GetBalance returns the user's current point balance
// GET /api/v1/points/balance
func (ctrl *PointController) GetBalance(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	balance, err := ctrl.pointService.GetBalance(userID)
	if err != nil {
		log.Error("Failed to get point balance", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// GetHistory returns the user's point ledger, newest first
// GET /api/v1/points/history
func (ctrl *PointController) GetHistory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, total, err := ctrl.pointService.GetHistory(userID, limit, offset)
	if err != nil {
		log.Error("Failed to get point history", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"points": entries,
		"total":  total,
	})
}

// SpendPoints deducts points from the user's balance
// POST /api/v1/points/spend
func (ctrl *PointController) SpendPoints(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req SpendPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "사용할 포인트를 올바르게 입력해주세요")
		return
	}

	if err := ctrl.pointService.SpendPoints(userID, req.Amount); err != nil {
		if errors.Is(err, service.ErrInsufficientPoints) {
			apperrors.BadRequest(c, apperrors.PointInsufficient, "포인트가 부족합니다")
			return
		}
		log.Error("Failed to spend points", err, map[string]interface{}{
			"user_id": userID,
			"amount":  req.Amount,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "spend points")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "포인트가 사용되었습니다"})
}

// ListRules returns all accrual rules for the admin console
// GET /api/v1/admin/points/rules
func (ctrl *PointController) ListRules(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	rules, err := ctrl.pointService.ListRules()
	if err != nil {
		log.Error("Failed to list point rules", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// UpdateRule adjusts an accrual rule's rate or active flag
// PUT /api/v1/admin/points/rules/:action
func (ctrl *PointController) UpdateRule(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	action := model.PointAction(c.Param("action"))

	var req UpdatePointRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	rule, err := ctrl.pointService.UpdateRule(action, req.Rate, *req.IsActive)
	if err != nil {
		if errors.Is(err, service.ErrPointRuleNotFound) {
			apperrors.NotFound(c, apperrors.PointRuleNotFound, "적립 규칙을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to update point rule", err, map[string]interface{}{
			"action": string(action),
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update point rule")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "적립 규칙이 수정되었습니다",
		"rule":    rule,
	})
}
