package model

import (
	"time"

	"gorm.io/gorm"
)

type InquiryStatus string // 문의 처리 상태

const (
	InquiryPending  InquiryStatus = "pending"  // 답변 대기
	InquiryAnswered InquiryStatus = "answered" // 답변 완료
)

type Inquiry struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	Title      string         `gorm:"not null" json:"title"`
	Body       string         `gorm:"type:text" json:"body"`
	Answer     string         `gorm:"type:text" json:"answer"`
	AnsweredAt *time.Time     `json:"answered_at,omitempty"`
	Status     InquiryStatus  `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Inquiry) TableName() string {
	return "inquiries"
}
