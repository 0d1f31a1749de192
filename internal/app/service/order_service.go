package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/repository"
	"github.com/aionlab/aion-backend/pkg/logger"
	"github.com/aionlab/aion-backend/pkg/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound        = errors.New("주문을 찾을 수 없습니다")
	ErrEmptyCart            = errors.New("장바구니가 비어 있습니다")
	ErrShippingAddressEmpty = errors.New("배송지 주소를 입력해주세요")
	ErrCouponNotUsable      = errors.New("사용할 수 없는 쿠폰입니다")
	ErrCouponMinOrderAmount = errors.New("쿠폰 최소 주문 금액을 충족하지 않습니다")
	ErrOrderNotCancellable  = errors.New("취소할 수 없는 주문 상태입니다")
)

type OrderService interface {
	CreateOrderFromCart(userID uint, shippingAddress string, userCouponID *uint) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrderByID(userID, orderID uint) (*model.Order, error)
	ListOrders(limit, offset int) ([]model.Order, int64, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) error
	UpdatePaymentStatus(orderID uint, status model.PaymentStatus) error
	CancelOrder(userID, orderID uint) error
}

type orderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	perfumeRepo repository.PerfumeRepository
	couponRepo  repository.CouponRepository
	pointRepo   repository.PointRepository
	db          *gorm.DB
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	perfumeRepo repository.PerfumeRepository,
	couponRepo repository.CouponRepository,
	pointRepo repository.PointRepository,
	db *gorm.DB,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		perfumeRepo: perfumeRepo,
		couponRepo:  couponRepo,
		pointRepo:   pointRepo,
		db:          db,
	}
}

func (s *orderService) CreateOrderFromCart(userID uint, shippingAddress string, userCouponID *uint) (*model.Order, error) {
	logger.Info("Creating order from cart", map[string]interface{}{
		"user_id":        userID,
		"user_coupon_id": userCouponID,
	})

	if shippingAddress == "" {
		return nil, ErrShippingAddressEmpty
	}

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if len(cartItems) == 0 {
		logger.Warn("Cannot create order: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during order creation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	var (
		totalAmount float64
		orderItems  []model.OrderItem
	)

	for _, cartItem := range cartItems {
		var perfume model.Perfume
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&perfume, cartItem.PerfumeID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Perfume not found during order creation", map[string]interface{}{
					"user_id":    userID,
					"perfume_id": cartItem.PerfumeID,
				})
				return nil, ErrPerfumeNotFound
			}
			logger.Error("Failed to fetch perfume during order creation", err, map[string]interface{}{
				"user_id":    userID,
				"perfume_id": cartItem.PerfumeID,
			})
			return nil, err
		}

		if perfume.StockQuantity < cartItem.Quantity {
			tx.Rollback()
			logger.Warn("Order creation failed: insufficient stock", map[string]interface{}{
				"user_id":    userID,
				"perfume_id": cartItem.PerfumeID,
				"requested":  cartItem.Quantity,
				"available":  perfume.StockQuantity,
			})
			return nil, ErrInsufficientStock
		}

		orderItems = append(orderItems, model.OrderItem{
			PerfumeID: cartItem.PerfumeID,
			Quantity:  cartItem.Quantity,
			Price:     perfume.Price,
		})
		totalAmount += perfume.Price * float64(cartItem.Quantity)

		if err := tx.Model(&model.Perfume{}).
			Where("id = ?", perfume.ID).
			Update("stock_quantity", gorm.Expr("stock_quantity - ?", cartItem.Quantity)).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to update perfume stock", err, map[string]interface{}{
				"user_id":    userID,
				"perfume_id": perfume.ID,
			})
			return nil, err
		}
	}

	var discountAmount float64
	if userCouponID != nil {
		discountAmount, err = s.applyCoupon(tx, userID, *userCouponID, totalAmount)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	order := &model.Order{
		OrderNumber:     util.GenerateOrderNumber(),
		UserID:          userID,
		TotalAmount:     totalAmount - discountAmount,
		DiscountAmount:  discountAmount,
		Status:          model.OrderStatusPending,
		PaymentStatus:   model.PaymentStatusPending,
		ShippingAddress: shippingAddress,
		UserCouponID:    userCouponID,
		OrderItems:      orderItems,
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id":      userID,
			"total_amount": order.TotalAmount,
		})
		return nil, err
	}

	if err := s.earnOrderPoints(tx, userID, order); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to clear cart after order creation", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order transaction", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": order.ID,
		})
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total_amount": order.TotalAmount,
		"item_count":   len(orderItems),
	})

	return s.orderRepo.FindByID(order.ID)
}

// applyCoupon validates the user coupon inside the order transaction and
// marks it used. Returns the discount amount.
func (s *orderService) applyCoupon(tx *gorm.DB, userID, userCouponID uint, totalAmount float64) (float64, error) {
	var userCoupon model.UserCoupon
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Coupon").
		Where("id = ? AND user_id = ?", userCouponID, userID).
		First(&userCoupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCouponNotUsable
		}
		logger.Error("Failed to fetch user coupon during order creation", err, map[string]interface{}{
			"user_id":        userID,
			"user_coupon_id": userCouponID,
		})
		return 0, err
	}

	now := time.Now()
	coupon := userCoupon.Coupon
	if userCoupon.UsedAt != nil || !coupon.IsActive ||
		now.Before(coupon.StartsAt) || now.After(coupon.ExpiresAt) {
		logger.Warn("Coupon not usable for order", map[string]interface{}{
			"user_id":        userID,
			"user_coupon_id": userCouponID,
			"used":           userCoupon.UsedAt != nil,
			"is_active":      coupon.IsActive,
		})
		return 0, ErrCouponNotUsable
	}
	if totalAmount < coupon.MinOrderAmount {
		return 0, ErrCouponMinOrderAmount
	}

	discount := coupon.DiscountValue
	if coupon.DiscountType == model.DiscountPercent {
		discount = totalAmount * coupon.DiscountValue / 100
	}
	if discount > totalAmount {
		discount = totalAmount
	}

	if err := tx.Model(&model.UserCoupon{}).
		Where("id = ? AND used_at IS NULL", userCouponID).
		Update("used_at", now).Error; err != nil {
		logger.Error("Failed to mark coupon as used", err, map[string]interface{}{
			"user_coupon_id": userCouponID,
		})
		return 0, err
	}

	return discount, nil
}

// earnOrderPoints records the point accrual ledger entry for an order.
// A missing or inactive rule means no accrual.
func (s *orderService) earnOrderPoints(tx *gorm.DB, userID uint, order *model.Order) error {
	var rule model.PointRule
	if err := tx.Where("action = ?", model.PointActionOrder).First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		logger.Error("Failed to fetch point rule", err, nil)
		return err
	}
	if !rule.IsActive || rule.Rate <= 0 {
		return nil
	}

	amount := int(order.TotalAmount * rule.Rate / 100)
	if amount <= 0 {
		return nil
	}

	entry := &model.UserPoint{
		UserID:  userID,
		Amount:  amount,
		Action:  model.PointActionOrder,
		OrderID: &order.ID,
	}
	if err := tx.Create(entry).Error; err != nil {
		logger.Error("Failed to record point accrual", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": order.ID,
		})
		return err
	}
	return nil
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	logger.Debug("Fetching user orders", map[string]interface{}{
		"user_id": userID,
	})

	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		return nil, err
	}

	if order.UserID != userID {
		logger.Warn("Order access denied: ownership mismatch", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
			"owner_id": order.UserID,
		})
		return nil, ErrOrderNotFound
	}

	return order, nil
}

func (s *orderService) ListOrders(limit, offset int) ([]model.Order, int64, error) {
	orders, total, err := s.orderRepo.FindAll(limit, offset)
	if err != nil {
		logger.Error("Failed to list orders", err, nil)
		return nil, 0, err
	}
	return orders, total, nil
}

func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) error {
	logger.Info("Updating order status", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	if _, err := s.orderRepo.FindByID(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	return s.orderRepo.UpdateStatus(orderID, status)
}

func (s *orderService) UpdatePaymentStatus(orderID uint, status model.PaymentStatus) error {
	logger.Info("Updating payment status", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	if _, err := s.orderRepo.FindByID(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	return s.orderRepo.UpdatePaymentStatus(orderID, status)
}

func (s *orderService) CancelOrder(userID, orderID uint) error {
	order, err := s.GetOrderByID(userID, orderID)
	if err != nil {
		return err
	}

	if order.Status != model.OrderStatusPending && order.Status != model.OrderStatusConfirmed {
		logger.Warn("Order not cancellable", map[string]interface{}{
			"order_id": orderID,
			"status":   order.Status,
		})
		return ErrOrderNotCancellable
	}

	tx := s.db.Begin()

	// 취소 시 재고 복구
	for _, item := range order.OrderItems {
		if err := tx.Model(&model.Perfume{}).
			Where("id = ?", item.PerfumeID).
			Update("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to restore perfume stock", err, map[string]interface{}{
				"order_id":   orderID,
				"perfume_id": item.PerfumeID,
			})
			return err
		}
	}

	if err := tx.Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", model.OrderStatusCancelled).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to cancel order", err, map[string]interface{}{
			"order_id": orderID,
		})
		return err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order cancellation", err, map[string]interface{}{
			"order_id": orderID,
		})
		return err
	}

	logger.Info("Order cancelled", map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
	})
	return nil
}
