package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aionlab/aion-backend/internal/app/service"
	apperrors "github.com/aionlab/aion-backend/internal/errors"
	"github.com/aionlab/aion-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AnnouncementController struct {
	announcementService service.AnnouncementService
}

func NewAnnouncementController(announcementService service.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{announcementService: announcementService}
}

type AnnouncementRequest struct {
	Title  string `json:"title" binding:"required"`
	Body   string `json:"body"`
	Pinned bool   `json:"pinned"`
}

// ListAnnouncements returns announcements, pinned first
// GET /api/v1/announcements
func (ctrl *AnnouncementController) ListAnnouncements(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	announcements, total, err := ctrl.announcementService.ListAnnouncements(limit, offset)
	if err != nil {
		log.Error("Failed to list announcements", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"announcements": announcements,
		"total":         total,
	})
}

// GetAnnouncement returns one announcement
// GET /api/v1/announcements/:id
func (ctrl *AnnouncementController) GetAnnouncement(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "공지 ID가 올바르지 않습니다")
		return
	}

	announcement, err := ctrl.announcementService.GetAnnouncementByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "공지사항을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to get announcement", err, map[string]interface{}{
			"announcement_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"announcement": announcement})
}

// CreateAnnouncement registers an announcement (admin)
// POST /api/v1/admin/announcements
func (ctrl *AnnouncementController) CreateAnnouncement(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	announcement, err := ctrl.announcementService.CreateAnnouncement(req.Title, req.Body, req.Pinned)
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementTitleEmpty) {
			apperrors.BadRequest(c, apperrors.ValidationRequired, "공지 제목을 입력해주세요")
			return
		}
		log.Error("Failed to create announcement", err, map[string]interface{}{
			"title": req.Title,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create announcement")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "공지사항이 등록되었습니다",
		"announcement": announcement,
	})
}

// UpdateAnnouncement edits an announcement (admin)
// PUT /api/v1/admin/announcements/:id
func (ctrl *AnnouncementController) UpdateAnnouncement(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "공지 ID가 올바르지 않습니다")
		return
	}

	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	announcement, err := ctrl.announcementService.UpdateAnnouncement(uint(id), req.Title, req.Body, req.Pinned)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAnnouncementNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "공지사항을 찾을 수 없습니다")
		case errors.Is(err, service.ErrAnnouncementTitleEmpty):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "공지 제목을 입력해주세요")
		default:
			log.Error("Failed to update announcement", err, map[string]interface{}{
				"announcement_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update announcement")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "공지사항이 수정되었습니다",
		"announcement": announcement,
	})
}

// DeleteAnnouncement removes an announcement (admin)
// DELETE /api/v1/admin/announcements/:id
func (ctrl *AnnouncementController) DeleteAnnouncement(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "공지 ID가 올바르지 않습니다")
		return
	}

	if err := ctrl.announcementService.DeleteAnnouncement(uint(id)); err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "공지사항을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to delete announcement", err, map[string]interface{}{
			"announcement_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "공지사항이 삭제되었습니다"})
}
