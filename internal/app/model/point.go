package model

import (
	"time"

	"gorm.io/gorm"
)

type PointAction string // 적립/차감 사유 코드

const (
	PointActionOrder  PointAction = "order"  // 주문 적립
	PointActionSpend  PointAction = "spend"  // 사용 차감
	PointActionEvent  PointAction = "event"  // 이벤트 지급
	PointActionExpire PointAction = "expire" // 만료 차감
)

// PointRule defines how many points an action earns (정률은 백분율)
type PointRule struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Action    PointAction    `gorm:"type:varchar(20);uniqueIndex;not null" json:"action"`
	Rate      float64        `gorm:"not null" json:"rate"` // 주문 금액 대비 적립률 (%)
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PointRule) TableName() string {
	return "point_rules"
}

// UserPoint is one ledger entry; the balance is the sum of Amount
type UserPoint struct {
	ID        uint        `gorm:"primarykey" json:"id"`
	UserID    uint        `gorm:"not null;index" json:"user_id"`
	Amount    int         `gorm:"not null" json:"amount"` // 양수 적립, 음수 차감
	Action    PointAction `gorm:"type:varchar(20);not null" json:"action"`
	OrderID   *uint       `gorm:"index" json:"order_id,omitempty"`
	CreatedAt time.Time   `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (UserPoint) TableName() string {
	return "user_points"
}
