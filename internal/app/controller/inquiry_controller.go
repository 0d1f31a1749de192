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

type InquiryController struct {
	inquiryService service.InquiryService
}

func NewInquiryController(inquiryService service.InquiryService) *InquiryController {
	return &InquiryController{inquiryService: inquiryService}
}

type InquiryRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

type AnswerInquiryRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// CreateInquiry submits a new inquiry
// POST /api/v1/inquiries
func (ctrl *InquiryController) CreateInquiry(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	inquiry, err := ctrl.inquiryService.CreateInquiry(userID, req.Title, req.Body)
	if err != nil {
		if errors.Is(err, service.ErrInquiryTitleEmpty) {
			apperrors.BadRequest(c, apperrors.ValidationRequired, "문의 제목을 입력해주세요")
			return
		}
		log.Error("Failed to create inquiry", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create inquiry")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "문의가 등록되었습니다",
		"inquiry": inquiry,
	})
}

// GetMyInquiries returns the user's inquiries
// GET /api/v1/inquiries
func (ctrl *InquiryController) GetMyInquiries(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	inquiries, err := ctrl.inquiryService.GetUserInquiries(userID)
	if err != nil {
		log.Error("Failed to get inquiries", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"inquiries": inquiries,
		"count":     len(inquiries),
	})
}

// GetInquiry returns one inquiry; users see only their own
// GET /api/v1/inquiries/:id
func (ctrl *InquiryController) GetInquiry(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "문의 ID가 올바르지 않습니다")
		return
	}

	inquiry, err := ctrl.inquiryService.GetInquiryByID(userID, uint(id), middleware.IsAdmin(c))
	if err != nil {
		if errors.Is(err, service.ErrInquiryNotFound) {
			apperrors.NotFound(c, apperrors.InquiryNotFound, "문의를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to get inquiry", err, map[string]interface{}{
			"inquiry_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"inquiry": inquiry})
}

// DeleteInquiry removes an inquiry; users can delete only their own
// DELETE /api/v1/inquiries/:id
func (ctrl *InquiryController) DeleteInquiry(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "문의 ID가 올바르지 않습니다")
		return
	}

	if err := ctrl.inquiryService.DeleteInquiry(userID, uint(id), middleware.IsAdmin(c)); err != nil {
		if errors.Is(err, service.ErrInquiryNotFound) {
			apperrors.NotFound(c, apperrors.InquiryNotFound, "문의를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to delete inquiry", err, map[string]interface{}{
			"inquiry_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "문의가 삭제되었습니다"})
}

// ListAllInquiries returns inquiries for the admin console
// GET /api/v1/admin/inquiries
func (ctrl *InquiryController) ListAllInquiries(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	status := model.InquiryStatus(c.Query("status"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	inquiries, total, err := ctrl.inquiryService.ListInquiries(status, limit, offset)
	if err != nil {
		log.Error("Failed to list inquiries", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"inquiries": inquiries,
		"total":     total,
	})
}

// AnswerInquiry posts an admin answer to an inquiry
// PUT /api/v1/admin/inquiries/:id/answer
func (ctrl *InquiryController) AnswerInquiry(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "문의 ID가 올바르지 않습니다")
		return
	}

	var req AnswerInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "답변 내용을 입력해주세요")
		return
	}

	inquiry, err := ctrl.inquiryService.AnswerInquiry(uint(id), req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInquiryNotFound):
			apperrors.NotFound(c, apperrors.InquiryNotFound, "문의를 찾을 수 없습니다")
		case errors.Is(err, service.ErrInquiryAnswered):
			apperrors.Conflict(c, apperrors.ResourceConflict, "이미 답변이 완료된 문의입니다")
		case errors.Is(err, service.ErrAnswerEmpty):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "답변 내용을 입력해주세요")
		default:
			log.Error("Failed to answer inquiry", err, map[string]interface{}{
				"inquiry_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "answer inquiry")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "답변이 등록되었습니다",
		"inquiry": inquiry,
	})
}
