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

type BrandController struct {
	brandService service.BrandService
}

func NewBrandController(brandService service.BrandService) *BrandController {
	return &BrandController{brandService: brandService}
}

type BrandRequest struct {
	Name        string `json:"name" binding:"required"`
	NameKo      string `json:"name_ko"`
	Country     string `json:"country"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
}

// ListBrands returns all brands
// GET /api/v1/brands
func (ctrl *BrandController) ListBrands(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	brands, err := ctrl.brandService.ListBrands()
	if err != nil {
		log.Error("Failed to list brands", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"brands": brands,
		"count":  len(brands),
	})
}

// GetBrand returns one brand with its perfumes
// GET /api/v1/brands/:id
func (ctrl *BrandController) GetBrand(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "브랜드 ID가 올바르지 않습니다")
		return
	}

	brand, err := ctrl.brandService.GetBrandByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			apperrors.NotFound(c, apperrors.BrandNotFound, "브랜드를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to get brand", err, map[string]interface{}{
			"brand_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"brand": brand})
}

// CreateBrand registers a new brand (admin)
// POST /api/v1/admin/brands
func (ctrl *BrandController) CreateBrand(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	brand, err := ctrl.brandService.CreateBrand(&model.Brand{
		Name:        req.Name,
		NameKo:      req.NameKo,
		Country:     req.Country,
		Description: req.Description,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrBrandNameEmpty) {
			apperrors.BadRequest(c, apperrors.ValidationRequired, "브랜드 이름을 입력해주세요")
			return
		}
		log.Error("Failed to create brand", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create brand")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "브랜드가 등록되었습니다",
		"brand":   brand,
	})
}

// UpdateBrand edits a brand (admin)
// PUT /api/v1/admin/brands/:id
func (ctrl *BrandController) UpdateBrand(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "브랜드 ID가 올바르지 않습니다")
		return
	}

	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	brand, err := ctrl.brandService.UpdateBrand(uint(id), &model.Brand{
		Name:        req.Name,
		NameKo:      req.NameKo,
		Country:     req.Country,
		Description: req.Description,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBrandNotFound):
			apperrors.NotFound(c, apperrors.BrandNotFound, "브랜드를 찾을 수 없습니다")
		case errors.Is(err, service.ErrBrandNameEmpty):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "브랜드 이름을 입력해주세요")
		default:
			log.Error("Failed to update brand", err, map[string]interface{}{
				"brand_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update brand")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "브랜드가 수정되었습니다",
		"brand":   brand,
	})
}

// DeleteBrand removes a brand (admin)
// DELETE /api/v1/admin/brands/:id
func (ctrl *BrandController) DeleteBrand(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "브랜드 ID가 올바르지 않습니다")
		return
	}

	if err := ctrl.brandService.DeleteBrand(uint(id)); err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			apperrors.NotFound(c, apperrors.BrandNotFound, "브랜드를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to delete brand", err, map[string]interface{}{
			"brand_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete brand")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "브랜드가 삭제되었습니다"})
}
