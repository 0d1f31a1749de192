package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string   // 주문 상태 코드
type PaymentStatus string // 결제 상태 코드

const (
	OrderStatusPending   OrderStatus = "pending"   // 주문 접수
	OrderStatusConfirmed OrderStatus = "confirmed" // 주문 확정
	OrderStatusShipping  OrderStatus = "shipping"  // 배송 중
	OrderStatusDelivered OrderStatus = "delivered" // 배송 완료
	OrderStatusCancelled OrderStatus = "cancelled" // 주문 취소

	PaymentStatusPending   PaymentStatus = "pending"   // 결제 대기
	PaymentStatusCompleted PaymentStatus = "completed" // 결제 완료
	PaymentStatusFailed    PaymentStatus = "failed"    // 결제 실패
	PaymentStatusRefunded  PaymentStatus = "refunded"  // 환불 완료
)

type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                     // 주문 ID
	OrderNumber     string         `gorm:"uniqueIndex;not null" json:"order_number"`                 // 주문 번호
	UserID          uint           `gorm:"not null;index" json:"user_id"`                            // 주문자 ID
	TotalAmount     float64        `gorm:"not null" json:"total_amount"`                             // 총 결제 금액 (할인 적용 후)
	DiscountAmount  float64        `gorm:"default:0" json:"discount_amount"`                         // 쿠폰 할인 금액
	Status          OrderStatus    `gorm:"type:varchar(20);default:'pending'" json:"status"`         // 주문 상태
	PaymentStatus   PaymentStatus  `gorm:"type:varchar(20);default:'pending'" json:"payment_status"` // 결제 상태
	ShippingAddress string         `gorm:"type:text" json:"shipping_address"`                        // 배송지 주소
	UserCouponID    *uint          `gorm:"index" json:"user_coupon_id,omitempty"`                    // 사용한 쿠폰
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	User       User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	OrderID   uint           `gorm:"not null;index" json:"order_id"`
	PerfumeID uint           `gorm:"not null;index" json:"perfume_id"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	Price     float64        `gorm:"not null" json:"price"` // 주문 시점 단가 스냅샷
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Perfume Perfume `gorm:"foreignKey:PerfumeID" json:"perfume,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
