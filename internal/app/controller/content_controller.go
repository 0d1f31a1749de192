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

type ContentController struct {
	contentService service.ContentService
}

func NewContentController(contentService service.ContentService) *ContentController {
	return &ContentController{contentService: contentService}
}

type ContentItemRequest struct {
	ItemType  string `json:"item_type" binding:"required,oneof=message image media text perfume"`
	Text      string `json:"text"`
	Icon      string `json:"icon"`
	ImageURL  string `json:"image_url"`
	LinkURL   string `json:"link_url"`
	PerfumeID *uint  `json:"perfume_id"`
}

type ContentVersionRequest struct {
	Title       string               `json:"title" binding:"required"`
	Description string               `json:"description"`
	ThemeColor  string               `json:"theme_color"`
	Published   *bool                `json:"published"`
	Items       []ContentItemRequest `json:"items"`
}

func parseContentType(c *gin.Context) (model.ContentType, model.CollectionKind, bool) {
	contentType := model.ContentType(c.Param("type"))
	switch contentType {
	case model.ContentTypeBanner, model.ContentTypeHero, model.ContentTypeCollection:
	default:
		apperrors.BadRequest(c, apperrors.ContentInvalidType, "지원하지 않는 콘텐츠 유형입니다")
		return "", "", false
	}

	kind := model.CollectionKind(c.Query("kind"))
	if contentType == model.ContentTypeCollection && kind == model.KindNone {
		apperrors.BadRequest(c, apperrors.ContentKindRequired, "컬렉션 구분을 지정해주세요")
		return "", "", false
	}
	return contentType, kind, true
}

func toItemInputs(items []ContentItemRequest) []service.ContentItemInput {
	inputs := make([]service.ContentItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, service.ContentItemInput{
			ItemType:  model.ContentItemType(item.ItemType),
			Text:      item.Text,
			Icon:      item.Icon,
			ImageURL:  item.ImageURL,
			LinkURL:   item.LinkURL,
			PerfumeID: item.PerfumeID,
		})
	}
	return inputs
}

func respondContentServiceError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, service.ErrContentNotFound):
		apperrors.NotFound(c, apperrors.ContentNotFound, "콘텐츠를 찾을 수 없습니다")
	case errors.Is(err, service.ErrContentTypeMismatch):
		apperrors.BadRequest(c, apperrors.ContentTypeMismatch, "콘텐츠 유형이 일치하지 않습니다")
	case errors.Is(err, service.ErrContentTitleEmpty):
		apperrors.BadRequest(c, apperrors.ContentTitleRequired, "콘텐츠 제목을 입력해주세요")
	case errors.Is(err, service.ErrContentItemsEmpty):
		apperrors.BadRequest(c, apperrors.ContentItemsRequired, "콘텐츠 항목을 1개 이상 등록해주세요")
	case errors.Is(err, service.ErrContentKindRequired):
		apperrors.BadRequest(c, apperrors.ContentKindRequired, "컬렉션 구분을 지정해주세요")
	default:
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
	}
}

// GetActiveContent returns the currently active version for public rendering
// GET /api/v1/content/:type/active
func (ctrl *ContentController) GetActiveContent(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	contentType, kind, ok := parseContentType(c)
	if !ok {
		return
	}

	content, err := ctrl.contentService.GetActiveContent(c.Request.Context(), contentType, kind)
	if err != nil {
		log.Error("Failed to get active content", err, map[string]interface{}{
			"type": contentType,
			"kind": kind,
		})
		respondContentServiceError(c, err, "get active content")
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": content})
}

// ListHistory returns all versions of a content type, newest first
// GET /api/v1/admin/content/:type
func (ctrl *ContentController) ListHistory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	contentType, kind, ok := parseContentType(c)
	if !ok {
		return
	}

	versions, err := ctrl.contentService.ListHistory(contentType, kind)
	if err != nil {
		log.Error("Failed to list content history", err, map[string]interface{}{
			"type": contentType,
			"kind": kind,
		})
		respondContentServiceError(c, err, "list content history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"versions": versions,
		"count":    len(versions),
	})
}

// GetVersion returns a single version with its items
// GET /api/v1/admin/content/versions/:id
func (ctrl *ContentController) GetVersion(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "버전 ID가 올바르지 않습니다")
		return
	}

	version, err := ctrl.contentService.GetVersion(uint(id))
	if err != nil {
		log.Warn("Failed to get content version", map[string]interface{}{
			"version_id": id,
			"error":      err.Error(),
		})
		respondContentServiceError(c, err, "get content version")
		return
	}

	c.JSON(http.StatusOK, gin.H{"version": version})
}

// PublishVersion stores a new version and makes it the active one
// POST /api/v1/admin/content/:type
func (ctrl *ContentController) PublishVersion(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	contentType, kind, ok := parseContentType(c)
	if !ok {
		return
	}

	var req ContentVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid content version request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	version, err := ctrl.contentService.PublishVersion(contentType, kind, service.ContentVersionInput{
		Title:       req.Title,
		Description: req.Description,
		ThemeColor:  req.ThemeColor,
		Published:   req.Published,
		Items:       toItemInputs(req.Items),
	})
	if err != nil {
		log.Error("Failed to publish content version", err, map[string]interface{}{
			"type": contentType,
			"kind": kind,
		})
		respondContentServiceError(c, err, "publish content version")
		return
	}

	adminID, _ := middleware.GetUserID(c)
	log.Info("Content version published", map[string]interface{}{
		"version_id": version.ID,
		"type":       contentType,
		"admin_id":   adminID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "콘텐츠가 등록되었습니다",
		"version": version,
	})
}

// ActivateVersion makes the given version the single active one of its type
// PUT /api/v1/admin/content/:type/:id/activate
func (ctrl *ContentController) ActivateVersion(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	contentType, kind, ok := parseContentType(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "버전 ID가 올바르지 않습니다")
		return
	}

	version, err := ctrl.contentService.ActivateVersion(contentType, kind, uint(id))
	if err != nil {
		log.Error("Failed to activate content version", err, map[string]interface{}{
			"version_id": id,
			"type":       contentType,
		})
		respondContentServiceError(c, err, "activate content version")
		return
	}

	adminID, _ := middleware.GetUserID(c)
	log.Info("Content version activated", map[string]interface{}{
		"version_id": version.ID,
		"type":       contentType,
		"admin_id":   adminID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "콘텐츠가 적용되었습니다",
		"version": version,
	})
}

// UpdateVersion edits a stored version's fields and replaces its items
// PUT /api/v1/admin/content/versions/:id
func (ctrl *ContentController) UpdateVersion(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "버전 ID가 올바르지 않습니다")
		return
	}

	var req ContentVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid content version request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	version, err := ctrl.contentService.UpdateVersion(uint(id), service.ContentVersionInput{
		Title:       req.Title,
		Description: req.Description,
		ThemeColor:  req.ThemeColor,
		Published:   req.Published,
		Items:       toItemInputs(req.Items),
	})
	if err != nil {
		log.Error("Failed to update content version", err, map[string]interface{}{
			"version_id": id,
		})
		respondContentServiceError(c, err, "update content version")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "콘텐츠가 수정되었습니다",
		"version": version,
	})
}

// DeleteVersion removes a version from history. Deleting the active
// version makes the public surface fall back to the default content.
// DELETE /api/v1/admin/content/versions/:id
func (ctrl *ContentController) DeleteVersion(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "버전 ID가 올바르지 않습니다")
		return
	}

	if err := ctrl.contentService.DeleteVersion(uint(id)); err != nil {
		log.Error("Failed to delete content version", err, map[string]interface{}{
			"version_id": id,
		})
		respondContentServiceError(c, err, "delete content version")
		return
	}

	adminID, _ := middleware.GetUserID(c)
	log.Info("Content version deleted", map[string]interface{}{
		"version_id": id,
		"admin_id":   adminID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "콘텐츠가 삭제되었습니다"})
}
