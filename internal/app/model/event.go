package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Event struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Title     string         `gorm:"not null" json:"title"`     // 이벤트 제목
	Body      string         `gorm:"type:text" json:"body"`     // 본문
	Images    pq.StringArray `gorm:"type:text[]" json:"images"` // 이벤트 이미지 URL 목록
	StartsAt  time.Time      `json:"starts_at"`                 // 시작일
	EndsAt    time.Time      `json:"ends_at"`                   // 종료일
	IsActive  bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Participations []EventParticipation `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Event) TableName() string {
	return "events"
}

// EventParticipation records one user joining an event (한 이벤트당 1회)
type EventParticipation struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_event_participations_event_user" json:"event_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_event_participations_event_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (EventParticipation) TableName() string {
	return "event_participations"
}
