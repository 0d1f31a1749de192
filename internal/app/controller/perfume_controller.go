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

type PerfumeController struct {
	perfumeService  service.PerfumeService
	wishlistService service.WishlistService
}

func NewPerfumeController(perfumeService service.PerfumeService, wishlistService service.WishlistService) *PerfumeController {
	return &PerfumeController{
		perfumeService:  perfumeService,
		wishlistService: wishlistService,
	}
}

type PerfumeNoteRequest struct {
	ScentID  uint   `json:"scent_id" binding:"required"`
	Position string `json:"position" binding:"required,oneof=top middle base"`
}

type PerfumeRequest struct {
	BrandID       uint                 `json:"brand_id" binding:"required"`
	Name          string               `json:"name" binding:"required"`
	NameKo        string               `json:"name_ko"`
	Description   string               `json:"description"`
	Concentration string               `json:"concentration" binding:"omitempty,oneof=parfum edp edt edc"`
	Price         float64              `json:"price" binding:"required,min=0"`
	Volume        int                  `json:"volume"`
	StockQuantity int                  `json:"stock_quantity"`
	Published     *bool                `json:"published"`
	ImageURLs     []string             `json:"image_urls"`
	Notes         []PerfumeNoteRequest `json:"notes"`
	TagIDs        []uint               `json:"tag_ids"`
}

func toPerfumeMutation(req PerfumeRequest) service.PerfumeMutation {
	notes := make([]service.PerfumeNoteInput, 0, len(req.Notes))
	for _, n := range req.Notes {
		notes = append(notes, service.PerfumeNoteInput{
			ScentID:  n.ScentID,
			Position: model.NotePosition(n.Position),
		})
	}
	return service.PerfumeMutation{
		BrandID:       req.BrandID,
		Name:          req.Name,
		NameKo:        req.NameKo,
		Description:   req.Description,
		Concentration: model.Concentration(req.Concentration),
		Price:         req.Price,
		Volume:        req.Volume,
		StockQuantity: req.StockQuantity,
		Published:     req.Published,
		ImageURLs:     req.ImageURLs,
		Notes:         notes,
		TagIDs:        req.TagIDs,
	}
}

// ListPerfumes returns perfumes matching filter and sort options
// GET /api/v1/perfumes
func (ctrl *PerfumeController) ListPerfumes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts := service.PerfumeListOptions{
		Search:        c.Query("search"),
		Sort:          service.PerfumeSort(c.DefaultQuery("sort", "popularity")),
		SortAscending: c.Query("order") == "asc",
		PublishedOnly: !middleware.IsAdmin(c),
	}

	if v := c.Query("brand_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			brandID := uint(id)
			opts.BrandID = &brandID
		}
	}
	if v := c.Query("tag_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			tagID := uint(id)
			opts.TagID = &tagID
		}
	}
	if v := c.Query("scent_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			scentID := uint(id)
			opts.ScentID = &scentID
		}
	}
	if v := c.Query("concentration"); v != "" {
		concentration := model.Concentration(v)
		opts.Concentration = &concentration
	}
	if v := c.Query("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			opts.Limit = limit
		}
	}
	if v := c.Query("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil {
			opts.Offset = offset
		}
	}

	perfumes, err := ctrl.perfumeService.ListPerfumes(opts)
	if err != nil {
		log.Error("Failed to list perfumes", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"perfumes": perfumes,
		"count":    len(perfumes),
	})
}

// SearchPerfumes returns published perfumes matching a text query
// GET /api/v1/perfumes/search
func (ctrl *PerfumeController) SearchPerfumes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	perfumes, err := ctrl.perfumeService.SearchPerfumes(query, limit)
	if err != nil {
		log.Error("Failed to search perfumes", err, map[string]interface{}{
			"query": query,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"perfumes": perfumes,
		"count":    len(perfumes),
		"query":    query,
	})
}

// GetPerfume returns a single perfume with brand, images, notes and tags
// GET /api/v1/perfumes/:id
func (ctrl *PerfumeController) GetPerfume(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "향수 ID가 올바르지 않습니다")
		return
	}

	perfume, err := ctrl.perfumeService.GetPerfumeByID(uint(id), true)
	if err != nil {
		if errors.Is(err, service.ErrPerfumeNotFound) {
			apperrors.NotFound(c, apperrors.PerfumeNotFound, "향수를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to get perfume", err, map[string]interface{}{
			"perfume_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	// 로그인한 회원에게는 찜 여부를 함께 내려준다
	wishlisted := false
	if userID, ok := middleware.GetUserID(c); ok {
		wishlisted, err = ctrl.wishlistService.IsWishlisted(userID, uint(id))
		if err != nil {
			log.Warn("Failed to check wishlist state", map[string]interface{}{
				"perfume_id": id,
				"user_id":    userID,
			})
			wishlisted = false
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"perfume":       perfume,
		"is_wishlisted": wishlisted,
	})
}

// CreatePerfume registers a new perfume (admin)
// POST /api/v1/admin/perfumes
func (ctrl *PerfumeController) CreatePerfume(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PerfumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid perfume request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	perfume, err := ctrl.perfumeService.CreatePerfume(toPerfumeMutation(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBrandNotFound):
			apperrors.BadRequest(c, apperrors.BrandNotFound, "브랜드를 찾을 수 없습니다")
		case errors.Is(err, service.ErrPerfumeNameEmpty):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "향수 이름을 입력해주세요")
		default:
			log.Error("Failed to create perfume", err, map[string]interface{}{
				"name": req.Name,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create perfume")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "향수가 등록되었습니다",
		"perfume": perfume,
	})
}

// UpdatePerfume edits a perfume and wholesale-replaces its child rows
// PUT /api/v1/admin/perfumes/:id
func (ctrl *PerfumeController) UpdatePerfume(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "향수 ID가 올바르지 않습니다")
		return
	}

	var req PerfumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	perfume, err := ctrl.perfumeService.UpdatePerfume(uint(id), toPerfumeMutation(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPerfumeNotFound):
			apperrors.NotFound(c, apperrors.PerfumeNotFound, "향수를 찾을 수 없습니다")
		case errors.Is(err, service.ErrBrandNotFound):
			apperrors.BadRequest(c, apperrors.BrandNotFound, "브랜드를 찾을 수 없습니다")
		case errors.Is(err, service.ErrPerfumeNameEmpty):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "향수 이름을 입력해주세요")
		default:
			log.Error("Failed to update perfume", err, map[string]interface{}{
				"perfume_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update perfume")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "향수가 수정되었습니다",
		"perfume": perfume,
	})
}

// DeletePerfume removes a perfume (admin)
// DELETE /api/v1/admin/perfumes/:id
func (ctrl *PerfumeController) DeletePerfume(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "향수 ID가 올바르지 않습니다")
		return
	}

	if err := ctrl.perfumeService.DeletePerfume(uint(id)); err != nil {
		if errors.Is(err, service.ErrPerfumeNotFound) {
			apperrors.NotFound(c, apperrors.PerfumeNotFound, "향수를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to delete perfume", err, map[string]interface{}{
			"perfume_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete perfume")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "향수가 삭제되었습니다"})
}
