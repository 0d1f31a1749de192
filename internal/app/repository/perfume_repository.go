package repository

import (
	"fmt"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/pkg/logger"
	"gorm.io/gorm"
)

type PerfumeSort string

const (
	PerfumeSortPrice     PerfumeSort = "price"
	PerfumeSortCreatedAt PerfumeSort = "created_at"
	PerfumeSortViewCount PerfumeSort = "view_count"
)

type PerfumeFilter struct {
	BrandID       *uint
	Concentration *model.Concentration
	TagID         *uint
	ScentID       *uint
	Search        string
	PublishedOnly bool
	SortBy        PerfumeSort
	SortAscending bool
	Limit         int
	Offset        int
}

type PerfumeRepository interface {
	Create(perfume *model.Perfume) error
	FindAll() ([]model.Perfume, error)
	FindWithFilter(filter PerfumeFilter) ([]model.Perfume, error)
	FindByID(id uint) (*model.Perfume, error)
	Update(perfume *model.Perfume) error
	Delete(id uint) error
	UpdateStock(id uint, quantity int) error
	IncrementViewCount(id uint) error
	ReplaceImages(perfumeID uint, images []model.PerfumeImage) error
	ReplaceNotes(perfumeID uint, notes []model.PerfumeNote) error
	ReplaceTags(perfumeID uint, tagIDs []uint) error
	BulkCreate(perfumes []model.Perfume, batchSize int) error
}

type perfumeRepository struct {
	db *gorm.DB
}

func NewPerfumeRepository(db *gorm.DB) PerfumeRepository {
	return &perfumeRepository{db: db}
}

func (r *perfumeRepository) baseQuery() *gorm.DB {
	return r.db.Model(&model.Perfume{}).
		Preload("Brand").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("perfume_images.position ASC")
		}).
		Preload("Notes.Scent").
		Preload("Tags.Tag")
}

func (r *perfumeRepository) Create(perfume *model.Perfume) error {
	logger.Debug("Creating perfume in database", map[string]interface{}{
		"name":     perfume.Name,
		"brand_id": perfume.BrandID,
	})

	if err := r.db.Create(perfume).Error; err != nil {
		logger.Error("Failed to create perfume in database", err, map[string]interface{}{
			"name":     perfume.Name,
			"brand_id": perfume.BrandID,
		})
		return err
	}

	logger.Debug("Perfume created in database", map[string]interface{}{
		"perfume_id": perfume.ID,
		"name":       perfume.Name,
	})
	return nil
}

func (r *perfumeRepository) BulkCreate(perfumes []model.Perfume, batchSize int) error {
	if err := r.db.CreateInBatches(perfumes, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create perfumes", err, map[string]interface{}{
			"count": len(perfumes),
		})
		return err
	}
	return nil
}

func (r *perfumeRepository) FindAll() ([]model.Perfume, error) {
	return r.FindWithFilter(PerfumeFilter{})
}

func (r *perfumeRepository) FindWithFilter(filter PerfumeFilter) ([]model.Perfume, error) {
	logger.Debug("Finding perfumes with filter", map[string]interface{}{
		"brand_id":      filter.BrandID,
		"concentration": filter.Concentration,
		"tag_id":        filter.TagID,
		"scent_id":      filter.ScentID,
		"search":        filter.Search,
		"sort_by":       filter.SortBy,
		"limit":         filter.Limit,
		"offset":        filter.Offset,
	})

	query := r.baseQuery()

	if filter.PublishedOnly {
		query = query.Where("perfumes.published = ?", true)
	}

	if filter.BrandID != nil {
		query = query.Where("perfumes.brand_id = ?", *filter.BrandID)
	}

	if filter.Concentration != nil {
		query = query.Where("perfumes.concentration = ?", *filter.Concentration)
	}

	if filter.TagID != nil {
		query = query.
			Joins("JOIN perfume_tags ON perfume_tags.perfume_id = perfumes.id").
			Where("perfume_tags.tag_id = ?", *filter.TagID)
	}

	if filter.ScentID != nil {
		query = query.
			Joins("JOIN perfume_notes ON perfume_notes.perfume_id = perfumes.id").
			Where("perfume_notes.scent_id = ?", *filter.ScentID)
	}

	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.
			Joins("JOIN brands ON brands.id = perfumes.brand_id").
			Where(
				"perfumes.name LIKE ? OR perfumes.name_ko LIKE ? OR perfumes.description LIKE ? OR brands.name LIKE ? OR brands.name_ko LIKE ?",
				like, like, like, like, like,
			)
	}

	direction := "DESC"
	if filter.SortAscending {
		direction = "ASC"
	}
	switch filter.SortBy {
	case PerfumeSortPrice:
		query = query.Order("perfumes.price " + direction)
	case PerfumeSortViewCount:
		query = query.Order("perfumes.view_count " + direction)
		query = query.Order("perfumes.created_at DESC")
	case PerfumeSortCreatedAt:
		fallthrough
	default:
		query = query.Order("perfumes.created_at " + direction)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var perfumes []model.Perfume
	if err := query.Distinct("perfumes.*").Find(&perfumes).Error; err != nil {
		logger.Error("Failed to find perfumes with filter", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, err
	}

	logger.Debug("Perfumes found with filter", map[string]interface{}{
		"count": len(perfumes),
	})
	return perfumes, nil
}

func (r *perfumeRepository) FindByID(id uint) (*model.Perfume, error) {
	logger.Debug("Finding perfume by ID in database", map[string]interface{}{
		"perfume_id": id,
	})

	var perfume model.Perfume
	if err := r.baseQuery().First(&perfume, id).Error; err != nil {
		logger.Error("Failed to find perfume by ID in database", err, map[string]interface{}{
			"perfume_id": id,
		})
		return nil, err
	}

	return &perfume, nil
}

func (r *perfumeRepository) Update(perfume *model.Perfume) error {
	logger.Debug("Updating perfume in database", map[string]interface{}{
		"perfume_id": perfume.ID,
		"name":       perfume.Name,
	})

	if err := r.db.Omit("Images", "Notes", "Tags", "Brand").Save(perfume).Error; err != nil {
		logger.Error("Failed to update perfume in database", err, map[string]interface{}{
			"perfume_id": perfume.ID,
		})
		return err
	}

	return nil
}

func (r *perfumeRepository) Delete(id uint) error {
	logger.Debug("Deleting perfume from database", map[string]interface{}{
		"perfume_id": id,
	})

	if err := r.db.Delete(&model.Perfume{}, id).Error; err != nil {
		logger.Error("Failed to delete perfume from database", err, map[string]interface{}{
			"perfume_id": id,
		})
		return err
	}

	return nil
}

func (r *perfumeRepository) UpdateStock(id uint, quantity int) error {
	logger.Debug("Updating perfume stock in database", map[string]interface{}{
		"perfume_id": id,
		"quantity":   quantity,
	})

	if err := r.db.Model(&model.Perfume{}).Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity)).Error; err != nil {
		logger.Error("Failed to update perfume stock in database", err, map[string]interface{}{
			"perfume_id": id,
			"quantity":   quantity,
		})
		return err
	}

	return nil
}

func (r *perfumeRepository) IncrementViewCount(id uint) error {
	if err := r.db.Model(&model.Perfume{}).Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + ?", 1)).Error; err != nil {
		logger.Error("Failed to increment perfume view count in database", err, map[string]interface{}{
			"perfume_id": id,
		})
		return err
	}
	return nil
}

// ReplaceImages swaps the whole image set in one transaction (delete then insert)
func (r *perfumeRepository) ReplaceImages(perfumeID uint, images []model.PerfumeImage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("perfume_id = ?", perfumeID).Delete(&model.PerfumeImage{}).Error; err != nil {
			return err
		}
		for i := range images {
			images[i].ID = 0
			images[i].PerfumeID = perfumeID
			images[i].Position = i
		}
		if len(images) == 0 {
			return nil
		}
		return tx.Create(&images).Error
	})
}

// ReplaceNotes swaps the whole note set in one transaction
func (r *perfumeRepository) ReplaceNotes(perfumeID uint, notes []model.PerfumeNote) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("perfume_id = ?", perfumeID).Delete(&model.PerfumeNote{}).Error; err != nil {
			return err
		}
		for i := range notes {
			notes[i].ID = 0
			notes[i].PerfumeID = perfumeID
		}
		if len(notes) == 0 {
			return nil
		}
		return tx.Create(&notes).Error
	})
}

// ReplaceTags swaps the whole tag set in one transaction
func (r *perfumeRepository) ReplaceTags(perfumeID uint, tagIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("perfume_id = ?", perfumeID).Delete(&model.PerfumeTag{}).Error; err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}
		links := make([]model.PerfumeTag, 0, len(tagIDs))
		for _, tagID := range tagIDs {
			links = append(links, model.PerfumeTag{PerfumeID: perfumeID, TagID: tagID})
		}
		return tx.Create(&links).Error
	})
}
