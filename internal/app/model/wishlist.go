package model

import (
	"time"

	"gorm.io/gorm"
)

type WishlistItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`             // 찜 항목 ID
	UserID    uint           `gorm:"not null;index" json:"user_id"`    // 사용자 ID
	PerfumeID uint           `gorm:"not null;index" json:"perfume_id"` // 향수 ID
	CreatedAt time.Time      `json:"created_at"`                       // 생성 시각
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                   // 삭제 시각(소프트 삭제)

	// Associations (loaded with Preload)
	Perfume Perfume `gorm:"foreignKey:PerfumeID" json:"perfume,omitempty"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
