package model

import (
	"time"

	"gorm.io/gorm"
)

type Concentration string // 부향률

const (
	ConcentrationParfum Concentration = "parfum" // 퍼퓸
	ConcentrationEDP    Concentration = "edp"    // 오 드 퍼퓸
	ConcentrationEDT    Concentration = "edt"    // 오 드 뚜왈렛
	ConcentrationEDC    Concentration = "edc"    // 오 드 코롱
)

type NotePosition string // 노트 단계

const (
	NoteTop    NotePosition = "top"    // 탑 노트
	NoteMiddle NotePosition = "middle" // 미들 노트
	NoteBase   NotePosition = "base"   // 베이스 노트
)

type Perfume struct {
	ID            uint           `gorm:"primarykey" json:"id"`           // 향수 ID
	Name          string         `gorm:"not null" json:"name"`           // 제품명
	NameKo        string         `json:"name_ko"`                        // 한글 제품명
	BrandID       uint           `gorm:"not null;index" json:"brand_id"` // 브랜드 ID
	Description   string         `gorm:"type:text" json:"description"`   // 제품 설명
	Price         float64        `gorm:"not null" json:"price"`          // 판매가 (원)
	Volume        int            `json:"volume"`                         // 용량 (ml)
	Concentration Concentration  `gorm:"type:varchar(20)" json:"concentration"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"` // 재고 수량
	Published     bool           `gorm:"default:true" json:"published"`   // 공개 여부
	ViewCount     int            `gorm:"default:0" json:"view_count"`     // 조회수
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Brand  Brand          `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Images []PerfumeImage `gorm:"foreignKey:PerfumeID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Notes  []PerfumeNote  `gorm:"foreignKey:PerfumeID;constraint:OnDelete:CASCADE" json:"notes,omitempty"`
	Tags   []PerfumeTag   `gorm:"foreignKey:PerfumeID;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
}

func (Perfume) TableName() string {
	return "perfumes"
}

type PerfumeImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	PerfumeID uint      `gorm:"not null;index" json:"perfume_id"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	Position  int       `gorm:"not null;default:0" json:"position"` // 표시 순서
	CreatedAt time.Time `json:"created_at"`
}

func (PerfumeImage) TableName() string {
	return "perfume_images"
}

// Scent is a reusable fragrance note (e.g. bergamot, sandalwood)
type Scent struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"` // 향 이름
	NameKo    string         `gorm:"type:varchar(50)" json:"name_ko"`                   // 한글 이름
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Scent) TableName() string {
	return "scents"
}

// PerfumeNote links a perfume to a scent at a note position
type PerfumeNote struct {
	ID        uint         `gorm:"primarykey" json:"id"`
	PerfumeID uint         `gorm:"not null;index" json:"perfume_id"`
	ScentID   uint         `gorm:"not null;index" json:"scent_id"`
	Position  NotePosition `gorm:"type:varchar(10);not null" json:"position"`
	CreatedAt time.Time    `json:"created_at"`

	Scent Scent `gorm:"foreignKey:ScentID" json:"scent,omitempty"`
}

func (PerfumeNote) TableName() string {
	return "perfume_notes"
}

// PreferenceTag is a predefined preference keyword (예: "데일리", "포근한")
type PreferenceTag struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PreferenceTag) TableName() string {
	return "preference_tags"
}

// PerfumeTag is the many-to-many link between perfumes and preference tags
type PerfumeTag struct {
	PerfumeID uint      `gorm:"primaryKey;index" json:"perfume_id"`
	TagID     uint      `gorm:"primaryKey;index" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`

	Tag PreferenceTag `gorm:"foreignKey:TagID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tag,omitempty"`
}

func (PerfumeTag) TableName() string {
	return "perfume_tags"
}
