package model

import (
	"time"

	"gorm.io/gorm"
)

type DiscountType string // 할인 방식

const (
	DiscountPercent DiscountType = "percent" // 정률 할인 (%)
	DiscountFixed   DiscountType = "fixed"   // 정액 할인 (원)
)

type Coupon struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Code           string         `gorm:"uniqueIndex;not null" json:"code"` // 쿠폰 코드
	Name           string         `gorm:"not null" json:"name"`             // 쿠폰 이름
	DiscountType   DiscountType   `gorm:"type:varchar(10);not null" json:"discount_type"`
	DiscountValue  float64        `gorm:"not null" json:"discount_value"`
	MinOrderAmount float64        `gorm:"default:0" json:"min_order_amount"` // 최소 주문 금액
	StartsAt       time.Time      `json:"starts_at"`                         // 사용 시작일
	ExpiresAt      time.Time      `json:"expires_at"`                        // 만료일
	IsActive       bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Coupon) TableName() string {
	return "coupons"
}

// UserCoupon is a coupon issued to a specific user
type UserCoupon struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	CouponID  uint           `gorm:"not null;index" json:"coupon_id"`
	UsedAt    *time.Time     `json:"used_at,omitempty"` // 사용 시각 (미사용이면 null)
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Coupon Coupon `gorm:"foreignKey:CouponID" json:"coupon,omitempty"`
}

func (UserCoupon) TableName() string {
	return "user_coupons"
}
