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

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

type CreateOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	UserCouponID    *uint  `json:"user_coupon_id"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed shipping delivered cancelled"`
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending completed failed refunded"`
}

// CreateOrder creates an order from the user's cart
// POST /api/v1/orders
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	order, err := ctrl.orderService.CreateOrderFromCart(userID, req.ShippingAddress, req.UserCouponID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			apperrors.BadRequest(c, apperrors.OrderEmptyCart, "장바구니가 비어 있습니다")
		case errors.Is(err, service.ErrShippingAddressEmpty):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "배송지 주소를 입력해주세요")
		case errors.Is(err, service.ErrInsufficientStock):
			apperrors.BadRequest(c, apperrors.PerfumeOutOfStock, "재고가 부족한 상품이 있습니다")
		case errors.Is(err, service.ErrPerfumeNotFound):
			apperrors.BadRequest(c, apperrors.PerfumeNotFound, "판매하지 않는 상품이 포함되어 있습니다")
		case errors.Is(err, service.ErrCouponNotUsable):
			apperrors.BadRequest(c, apperrors.CouponNotUsable, "사용할 수 없는 쿠폰입니다")
		case errors.Is(err, service.ErrCouponMinOrderAmount):
			apperrors.BadRequest(c, apperrors.CouponMinNotMet, "쿠폰 최소 주문 금액을 충족하지 않습니다")
		default:
			log.Error("Failed to create order", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create order")
		}
		return
	}

	log.Info("Order created", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "주문이 완료되었습니다",
		"order":   order,
	})
}

// GetMyOrders returns the user's orders, newest first
// GET /api/v1/orders
func (ctrl *OrderController) GetMyOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		log.Error("Failed to get orders", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrder returns one of the user's orders
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "주문 ID가 올바르지 않습니다")
		return
	}

	order, err := ctrl.orderService.GetOrderByID(userID, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "주문을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to get order", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelOrder cancels a pending order and restores stock
// POST /api/v1/orders/:id/cancel
func (ctrl *OrderController) CancelOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "주문 ID가 올바르지 않습니다")
		return
	}

	if err := ctrl.orderService.CancelOrder(userID, uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "주문을 찾을 수 없습니다")
		case errors.Is(err, service.ErrOrderNotCancellable):
			apperrors.BadRequest(c, apperrors.OrderNotCancellable, "취소할 수 없는 주문 상태입니다")
		default:
			log.Error("Failed to cancel order", err, map[string]interface{}{
				"user_id":  userID,
				"order_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "cancel order")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "주문이 취소되었습니다"})
}

// ListAllOrders returns all orders for the admin console
// GET /api/v1/admin/orders
func (ctrl *OrderController) ListAllOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, total, err := ctrl.orderService.ListOrders(limit, offset)
	if err != nil {
		log.Error("Failed to list orders", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
	})
}

// UpdateOrderStatus changes an order's status (admin)
// PUT /api/v1/admin/orders/:id/status
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "주문 ID가 올바르지 않습니다")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	if err := ctrl.orderService.UpdateOrderStatus(uint(id), model.OrderStatus(req.Status)); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "주문을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": id,
			"status":   req.Status,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update order status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "주문 상태가 변경되었습니다"})
}

// UpdatePaymentStatus changes an order's payment status (admin)
// PUT /api/v1/admin/orders/:id/payment-status
func (ctrl *OrderController) UpdatePaymentStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "주문 ID가 올바르지 않습니다")
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	if err := ctrl.orderService.UpdatePaymentStatus(uint(id), model.PaymentStatus(req.Status)); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "주문을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to update payment status", err, map[string]interface{}{
			"order_id": id,
			"status":   req.Status,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update payment status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "결제 상태가 변경되었습니다"})
}
