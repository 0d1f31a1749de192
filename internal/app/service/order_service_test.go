package service

import (
	"testing"
	"time"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/repository"
	"github.com/aionlab/aion-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (OrderService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	svc := NewOrderService(
		repository.NewOrderRepository(testDB),
		repository.NewCartRepository(testDB),
		repository.NewPerfumeRepository(testDB),
		repository.NewCouponRepository(testDB),
		repository.NewPointRepository(testDB),
		testDB,
	)
	return svc, testDB
}

func createOrderTestUser(t *testing.T, testDB *gorm.DB) *model.User {
	user := &model.User{
		Email:        "order@example.com",
		PasswordHash: "hashed",
		Name:         "주문자",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func createOrderTestPerfume(t *testing.T, testDB *gorm.DB, price float64, stock int) *model.Perfume {
	brand := &model.Brand{Name: "Test Brand"}
	require.NoError(t, testDB.Create(brand).Error)

	perfume := &model.Perfume{
		Name:          "Test Perfume",
		NameKo:        "테스트 향수",
		BrandID:       brand.ID,
		Price:         price,
		Volume:        50,
		Concentration: model.ConcentrationEDP,
		StockQuantity: stock,
		Published:     true,
	}
	require.NoError(t, testDB.Create(perfume).Error)
	return perfume
}

func addCartItem(t *testing.T, testDB *gorm.DB, userID, perfumeID uint, quantity int) {
	require.NoError(t, testDB.Create(&model.CartItem{
		UserID:    userID,
		PerfumeID: perfumeID,
		Quantity:  quantity,
	}).Error)
}

func issueTestCoupon(t *testing.T, testDB *gorm.DB, userID uint, coupon *model.Coupon) *model.UserCoupon {
	require.NoError(t, testDB.Create(coupon).Error)
	userCoupon := &model.UserCoupon{UserID: userID, CouponID: coupon.ID}
	require.NoError(t, testDB.Create(userCoupon).Error)
	return userCoupon
}

func TestOrderService_CreateOrderFromCart_Success(t *testing.T) {
	svc, testDB := setupOrderServiceTest(t)
	user := createOrderTestUser(t, testDB)
	perfume := createOrderTestPerfume(t, testDB, 50000, 10)
	addCartItem(t, testDB, user.ID, perfume.ID, 2)

	order, err := svc.CreateOrderFromCart(user.ID, "서울시 강남구 테헤란로 1", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, float64(100000), order.TotalAmount)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, model.PaymentStatusPending, order.PaymentStatus)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, float64(50000), order.OrderItems[0].Price)

	// 재고 차감 확인
	var updated model.Perfume
	require.NoError(t, testDB.First(&updated, perfume.ID).Error)
	assert.Equal(t, 8, updated.StockQuantity)

	// 장바구니 비움 확인
	var cartCount int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount)
	assert.Equal(t, int64(0), cartCount)
}

func TestOrderService_CreateOrderFromCart_EmptyShippingAddress(t *testing.T) {
	svc, testDB := setupOrderServiceTest(t)
	user := createOrderTestUser(t, testDB)

	_, err := svc.CreateOrderFromCart(user.ID, "", nil)
	assert.ErrorIs(t, err, ErrShippingAddressEmpty)
}

func TestOrderService_CreateOrderFromCart_EmptyCart(t *testing.T) {
	svc, testDB := setupOrderServiceTest(t)
	user := createOrderTestUser(t, testDB)

	_, err := svc.CreateOrderFromCart(user.ID, "서울시 강남구", nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderService_CreateOrderFromCart_InsufficientStock(t *testing.T) {
	svc, testDB := setupOrderServiceTest(t)
	user := createOrderTestUser(t, testDB)
	perfume := createOrderTestPerfume(t, testDB, 30000, 1)
	addCartItem(t, testDB, user.ID, perfume.ID, 3)

	_, err := svc.CreateOrderFromCart(user.ID, "서울시 강남구", nil)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// 롤백으로 재고가 그대로여야 한다
	var updated model.Perfume
	require.NoError(t, testDB.First(&updated, perfume.ID).Error)
	assert.Equal(t, 1, updated.StockQuantity)
}

func TestOrderService_CreateOrderFromCart_PercentCoupon(t *testing.T) {
	svc, testDB := setupOrderServiceTest(t)
	user := createOrderTestUser(t, testDB)
	perfume := createOrderTestPerfume(t, testDB, 100000, 5)
	addCartItem(t, testDB, user.ID, perfume.ID, 1)

	userCoupon := issueTestCoupon(t, testDB, user.ID, &model.Coupon{
		Code:          "WELCOME10",
		Name:          "신규 가입 10% 할인",
		DiscountType:  model.DiscountPercent,
		DiscountValue: 10,
		StartsAt:      time.Now().Add(-time.Hour),
		ExpiresAt:     time.Now().Add(time.Hour),
		IsActive:      true,
	})

	order, err := svc.CreateOrderFromCart(user.ID, "서울시 강남구", &userCoupon.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(10000), order.DiscountAmount)
	assert.Equal(t, float64(90000), order.TotalAmount)

	// 쿠폰 사용 처리 확인
	var used model.UserCoupon
	require.NoError(t, testDB.First(&used, userCoupon.ID).Error)
	assert.NotNil(t, used.UsedAt)
}

func TestOrderService_CreateOrderFromCart_FixedCouponCappedAtTotal(t *testing.T) {
	svc, testDB := setupOrderServiceTest(t)
	user := createOrderTestUser(t, testDB)
	perfume := createOrderTestPerfume(t, testDB, 5000, 5)
	addCartItem(t, testDB, user.ID, perfume.ID, 1)

	userCoupon := issueTestCoupon(t, testDB, user.ID, &model.Coupon{
		Code:          "FIXED10000",
		Name:          "만원 할인",
		DiscountType:  model.DiscountFixed,
		DiscountValue: 10000,
		StartsAt:      time.Now().Add(-time.Hour),
		ExpiresAt:     time.Now().Add(time.Hour),
		IsActive:      true,
	})

	order, err := svc.CreateOrderFromCart(user.ID, "서울시 강남구", &userCoupon.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(5000), order.DiscountAmount)
	assert.Equal(t, float64(0), order.TotalAmount)
}

func TestOrderService_CreateOrderFromCart_CouponMinOrderAmount(t *testing.T) {
	svc, testDB := setupOrderServiceTest(t)
	user := createOrderTestUser(t, testDB)
	perfume := createOrderTestPerfume(t, testDB, 20000, 5)
	addCartItem(t, testDB, user.ID, perfume.ID, 1)

	userCoupon := issueTestCoupon(t, testDB, user.ID, &model.Coupon{
		Code:           "MIN50000",
		Name:           "5만원 이상 할인",
		DiscountType:   model.DiscountFixed,
		DiscountValue:  5000,
		MinOrderAmount: 50000,
		StartsAt:       time.Now().Add(-time.Hour),
		ExpiresAt:      time.Now().Add(time.Hour),
		IsActive:       true,
	})

	_, err := svc.CreateOrderFromCart(user.ID, "서울시 강남구", &userCoupon.ID)
	assert.ErrorIs(t, err, ErrCouponMinOrderAmount)
}

func TestOrderService_CreateOrderFromCart_UsedCouponRejected(t *testing.T) {
	svc, testDB := setupOrderServiceTest(t)
	user := createOrderTestUser(t, testDB)
	perfume := createOrderTestPerfume(t, testDB, 20000, 5)
	addCartItem(t, testDB, user.ID, perfume.ID, 1)

	userCoupon := issueTestCoupon(t, testDB, user.ID, &model.Coupon{
		Code:          "ONCE",
		Name:          "일회용 쿠폰",
		DiscountType:  model.DiscountFixed,
		DiscountValue: 1000,
		StartsAt:      time.Now().Add(-time.Hour),
		ExpiresAt:     time.Now().Add(time.Hour),
		IsActive:      true,
	})
	usedAt := time.Now()
	require.NoError(t, testDB.Model(userCoupon).Update("used_at", usedAt).Error)

	_, err := svc.CreateOrderFromCart(user.ID, "서울시 강남구", &userCoupon.ID)
	assert.ErrorIs(t, err, ErrCouponNotUsable)
}

func TestOrderService_CreateOrderFromCart_ExpiredCouponRejected(t *testing.T) {
	svc, testDB := setupOrderServiceTest(t)
	user := createOrderTestUser(t, testDB)
	perfume := createOrderTestPerfume(t, testDB, 20000, 5)
	addCartItem(t, testDB, user.ID, perfume.ID, 1)

	userCoupon := issueTestCoupon(t, testDB, user.ID, &model.Coupon{
		Code:          "EXPIRED",
		Name:          "만료 쿠폰",
		DiscountType:  model.DiscountFixed,
		DiscountValue: 1000,
		StartsAt:      time.Now().Add(-48 * time.Hour),
		ExpiresAt:     time.Now().Add(-24 * time.Hour),
		IsActive:      true,
	})

	_, err := svc.CreateOrderFromCart(user.ID, "서울시 강남구", &userCoupon.ID)
	assert.ErrorIs(t, err, ErrCouponNotUsable)
}

func TestOrderService_CreateOrderFromCart_EarnsPoints(t *testing.T) {
	svc, testDB := setupOrderServiceTest(t)
	user := createOrderTestUser(t, testDB)
	perfume := createOrderTestPerfume(t, testDB, 100000, 5)
	addCartItem(t, testDB, user.ID, perfume.ID, 1)

	require.NoError(t, testDB.Create(&model.PointRule{
		Action:   model.PointActionOrder,
		Rate:     1.0,
		IsActive: true,
	}).Error)

	order, err := svc.CreateOrderFromCart(user.ID, "서울시 강남구", nil)
	require.NoError(t, err)

	var entry model.UserPoint
	require.NoError(t, testDB.Where("user_id = ?", user.ID).First(&entry).Error)
	assert.Equal(t, 1000, entry.Amount)
	assert.Equal(t, model.PointActionOrder, entry.Action)
	require.NotNil(t, entry.OrderID)
	assert.Equal(t, order.ID, *entry.OrderID)
}

func TestOrderService_CreateOrderFromCart_NoPointsWithoutActiveRule(t *testing.T) {
	svc, testDB := setupOrderServiceTest(t)
	user := createOrderTestUser(t, testDB)
	perfume := createOrderTestPerfume(t, testDB, 100000, 5)
	addCartItem(t, testDB, user.ID, perfume.ID, 1)

	require.NoError(t, testDB.Create(&model.PointRule{
		Action:   model.PointActionOrder,
		Rate:     1.0,
		IsActive: false,
	}).Error)

	_, err := svc.CreateOrderFromCart(user.ID, "서울시 강남구", nil)
	require.NoError(t, err)

	var pointCount int64
	testDB.Model(&model.UserPoint{}).Where("user_id = ?", user.ID).Count(&pointCount)
	assert.Equal(t, int64(0), pointCount)
}

func TestOrderService_GetOrderByID_OwnershipEnforced(t *testing.T) {
	svc, testDB := setupOrderServiceTest(t)
	user := createOrderTestUser(t, testDB)
	perfume := createOrderTestPerfume(t, testDB, 10000, 5)
	addCartItem(t, testDB, user.ID, perfume.ID, 1)

	order, err := svc.CreateOrderFromCart(user.ID, "서울시 강남구", nil)
	require.NoError(t, err)

	found, err := svc.GetOrderByID(user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, found.OrderNumber)

	_, err = svc.GetOrderByID(user.ID+1, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_CancelOrder_RestoresStock(t *testing.T) {
	svc, testDB := setupOrderServiceTest(t)
	user := createOrderTestUser(t, testDB)
	perfume := createOrderTestPerfume(t, testDB, 10000, 5)
	addCartItem(t, testDB, user.ID, perfume.ID, 3)

	order, err := svc.CreateOrderFromCart(user.ID, "서울시 강남구", nil)
	require.NoError(t, err)

	require.NoError(t, svc.CancelOrder(user.ID, order.ID))

	cancelled, err := svc.GetOrderByID(user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, cancelled.Status)

	var updated model.Perfume
	require.NoError(t, testDB.First(&updated, perfume.ID).Error)
	assert.Equal(t, 5, updated.StockQuantity)
}

func TestOrderService_CancelOrder_NotCancellableWhenShipping(t *testing.T) {
	svc, testDB := setupOrderServiceTest(t)
	user := createOrderTestUser(t, testDB)
	perfume := createOrderTestPerfume(t, testDB, 10000, 5)
	addCartItem(t, testDB, user.ID, perfume.ID, 1)

	order, err := svc.CreateOrderFromCart(user.ID, "서울시 강남구", nil)
	require.NoError(t, err)
	require.NoError(t, svc.UpdateOrderStatus(order.ID, model.OrderStatusShipping))

	err = svc.CancelOrder(user.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotCancellable)
}

func TestOrderService_ListOrders_ReturnsTotal(t *testing.T) {
	svc, testDB := setupOrderServiceTest(t)
	user := createOrderTestUser(t, testDB)
	perfume := createOrderTestPerfume(t, testDB, 10000, 10)

	for i := 0; i < 3; i++ {
		addCartItem(t, testDB, user.ID, perfume.ID, 1)
		_, err := svc.CreateOrderFromCart(user.ID, "서울시 강남구", nil)
		require.NoError(t, err)
	}

	orders, total, err := svc.ListOrders(2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, orders, 2)
}
