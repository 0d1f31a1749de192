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

type WishlistController struct {
	wishlistService service.WishlistService
}

func NewWishlistController(wishlistService service.WishlistService) *WishlistController {
	return &WishlistController{wishlistService: wishlistService}
}

// GetWishlist returns the user's wishlist
// GET /api/v1/wishlist
func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	items, err := ctrl.wishlistService.GetWishlist(userID)
	if err != nil {
		log.Error("Failed to get wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// ToggleWishlist adds or removes a perfume from the wishlist
// POST /api/v1/wishlist/:perfumeId/toggle
func (ctrl *WishlistController) ToggleWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	perfumeID, err := strconv.ParseUint(c.Param("perfumeId"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "향수 ID가 올바르지 않습니다")
		return
	}

	wishlisted, err := ctrl.wishlistService.ToggleWishlist(userID, uint(perfumeID))
	if err != nil {
		if errors.Is(err, service.ErrPerfumeNotFound) {
			apperrors.NotFound(c, apperrors.PerfumeNotFound, "향수를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to toggle wishlist", err, map[string]interface{}{
			"user_id":    userID,
			"perfume_id": perfumeID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "toggle wishlist")
		return
	}

	message := "위시리스트에서 삭제되었습니다"
	if wishlisted {
		message = "위시리스트에 추가되었습니다"
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    message,
		"wishlisted": wishlisted,
	})
}
