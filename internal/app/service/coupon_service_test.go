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

func setupCouponServiceTest(t *testing.T) (CouponService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewCouponService(repository.NewCouponRepository(testDB)), testDB
}

func couponMutation(code string, starts, expires time.Time) CouponMutation {
	return CouponMutation{
		Code:          code,
		Name:          "테스트 쿠폰",
		DiscountType:  model.DiscountPercent,
		DiscountValue: 10,
		StartsAt:      starts,
		ExpiresAt:     expires,
	}
}

func TestCouponService_CreateCoupon_NormalizesCode(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)

	coupon, err := svc.CreateCoupon(couponMutation("  summer10  ", time.Now(), time.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "SUMMER10", coupon.Code)
	assert.True(t, coupon.IsActive)
}

func TestCouponService_CreateCoupon_GeneratesCodeWhenEmpty(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)

	coupon, err := svc.CreateCoupon(couponMutation("", time.Now(), time.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.NotEmpty(t, coupon.Code)
}

func TestCouponService_CreateCoupon_InvalidWindow(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)

	_, err := svc.CreateCoupon(couponMutation("BAD", time.Now().Add(time.Hour), time.Now()))
	assert.ErrorIs(t, err, ErrCouponInvalidWindow)
}

func TestCouponService_ClaimCoupon_Success(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)

	_, err := svc.CreateCoupon(couponMutation("CLAIM10", time.Now().Add(-time.Hour), time.Now().Add(time.Hour)))
	require.NoError(t, err)

	userCoupon, err := svc.ClaimCoupon(1, "claim10")
	require.NoError(t, err)
	assert.Equal(t, uint(1), userCoupon.UserID)
	assert.Nil(t, userCoupon.UsedAt)
	assert.Equal(t, "CLAIM10", userCoupon.Coupon.Code)
}

func TestCouponService_ClaimCoupon_Duplicate(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)

	_, err := svc.CreateCoupon(couponMutation("ONCE10", time.Now().Add(-time.Hour), time.Now().Add(time.Hour)))
	require.NoError(t, err)

	_, err = svc.ClaimCoupon(1, "ONCE10")
	require.NoError(t, err)

	_, err = svc.ClaimCoupon(1, "ONCE10")
	assert.ErrorIs(t, err, ErrCouponAlreadyIssued)

	// 다른 사용자는 발급받을 수 있다
	_, err = svc.ClaimCoupon(2, "ONCE10")
	assert.NoError(t, err)
}

func TestCouponService_ClaimCoupon_UnknownCode(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)

	_, err := svc.ClaimCoupon(1, "NOPE")
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestCouponService_ClaimCoupon_Expired(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)

	_, err := svc.CreateCoupon(couponMutation("OLD10", time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour)))
	require.NoError(t, err)

	_, err = svc.ClaimCoupon(1, "OLD10")
	assert.ErrorIs(t, err, ErrCouponExpired)
}

func TestCouponService_ClaimCoupon_Inactive(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)

	inactive := false
	input := couponMutation("OFF10", time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	input.IsActive = &inactive
	_, err := svc.CreateCoupon(input)
	require.NoError(t, err)

	_, err = svc.ClaimCoupon(1, "OFF10")
	assert.ErrorIs(t, err, ErrCouponInactive)
}

func TestCouponService_ExpireCoupons(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)

	_, err := svc.CreateCoupon(couponMutation("LIVE10", time.Now().Add(-time.Hour), time.Now().Add(time.Hour)))
	require.NoError(t, err)
	_, err = svc.CreateCoupon(couponMutation("DEAD10", time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour)))
	require.NoError(t, err)

	count, err := svc.ExpireCoupons(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	coupons, err := svc.ListCoupons()
	require.NoError(t, err)
	for _, c := range coupons {
		if c.Code == "DEAD10" {
			assert.False(t, c.IsActive)
		}
		if c.Code == "LIVE10" {
			assert.True(t, c.IsActive)
		}
	}

	// 이미 비활성화된 쿠폰은 다시 세지 않는다
	count, err = svc.ExpireCoupons(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestCouponService_UpdateCoupon(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)

	coupon, err := svc.CreateCoupon(couponMutation("EDIT10", time.Now().Add(-time.Hour), time.Now().Add(time.Hour)))
	require.NoError(t, err)

	input := couponMutation("EDIT10", time.Now().Add(-time.Hour), time.Now().Add(2*time.Hour))
	input.Name = "수정된 쿠폰"
	input.DiscountValue = 20

	updated, err := svc.UpdateCoupon(coupon.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "수정된 쿠폰", updated.Name)
	assert.Equal(t, float64(20), updated.DiscountValue)

	_, err = svc.UpdateCoupon(9999, input)
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestCouponService_DeleteCoupon(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)

	coupon, err := svc.CreateCoupon(couponMutation("DEL10", time.Now().Add(-time.Hour), time.Now().Add(time.Hour)))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCoupon(coupon.ID))

	_, err = svc.GetCouponByID(coupon.ID)
	assert.ErrorIs(t, err, ErrCouponNotFound)
}
