package model

import (
	"time"

	"gorm.io/gorm"
)

type ContentType string    // 버전 관리 콘텐츠 종류
type CollectionKind string // 컬렉션 페이지 구분
type ContentItemType string

const (
	ContentTypeBanner     ContentType = "banner"     // 상단 띠 배너
	ContentTypeHero       ContentType = "hero"       // 메인 히어로 캐러셀
	ContentTypeCollection ContentType = "collection" // 컬렉션/시그니처 페이지

	KindNone       CollectionKind = ""           // 구분 없음 (banner, hero)
	KindCollection CollectionKind = "collection" // 컬렉션 페이지
	KindSignature  CollectionKind = "signature"  // 시그니처 페이지

	ItemTypeMessage ContentItemType = "message" // 배너 문구
	ItemTypeImage   ContentItemType = "image"   // 히어로 이미지
	ItemTypeMedia   ContentItemType = "media"   // 컬렉션 배경 미디어
	ItemTypeText    ContentItemType = "text"    // 컬렉션 텍스트 블록
	ItemTypePerfume ContentItemType = "perfume" // 컬렉션-향수 연결
)

// ContentVersion is one saved version of a managed content type.
// At most one version per (type, kind) is active at a time; the full
// history is kept so an operator can roll back to any earlier version.
type ContentVersion struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Type        ContentType    `gorm:"type:varchar(20);not null;index:idx_content_versions_type_kind" json:"type"`
	Kind        CollectionKind `gorm:"type:varchar(20);not null;default:'';index:idx_content_versions_type_kind" json:"kind"`
	Title       string         `gorm:"not null" json:"title"` // 운영자용 버전 라벨
	Description string         `gorm:"type:text" json:"description"`
	ThemeColor  string         `gorm:"type:varchar(20)" json:"theme_color"` // 컬렉션 전용
	Published   bool           `gorm:"default:true" json:"published"`       // 컬렉션 전용 공개 여부
	IsActive    bool           `gorm:"not null;default:false;index" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Items []ContentItem `gorm:"foreignKey:VersionID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (ContentVersion) TableName() string {
	return "content_versions"
}

// ContentItem is a child row owned exclusively by one ContentVersion.
// On edit the whole set is replaced; Position is a dense 0-based index.
type ContentItem struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	VersionID uint            `gorm:"not null;index" json:"version_id"`
	ItemType  ContentItemType `gorm:"type:varchar(20);not null" json:"item_type"`
	Position  int             `gorm:"not null" json:"position"`
	Text      string          `gorm:"type:text" json:"text"`
	Icon      string          `gorm:"type:varchar(20)" json:"icon"`
	ImageURL  string          `json:"image_url"`
	LinkURL   string          `json:"link_url"`
	PerfumeID *uint           `gorm:"index" json:"perfume_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`

	Perfume *Perfume `gorm:"foreignKey:PerfumeID" json:"perfume,omitempty"`
}

func (ContentItem) TableName() string {
	return "content_items"
}
