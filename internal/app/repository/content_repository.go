package repository

import (
	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContentRepository stores versioned content (banner, hero, collection).
// At most one version per (type, kind) is active; activation, child
// replacement and deletion each run inside a single transaction so a
// partial write can never leave the history inconsistent.
type ContentRepository interface {
	CreateActiveVersion(version *model.ContentVersion) error
	FindByID(id uint) (*model.ContentVersion, error)
	FindAllByType(contentType model.ContentType, kind model.CollectionKind) ([]model.ContentVersion, error)
	FindActive(contentType model.ContentType, kind model.CollectionKind) (*model.ContentVersion, error)
	Activate(contentType model.ContentType, kind model.CollectionKind, id uint) error
	UpdateVersionWithItems(version *model.ContentVersion, items []model.ContentItem) error
	Delete(id uint) error
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

// CreateActiveVersion inserts the version with its items and makes it the
// sole active version of its (type, kind). Deactivating the siblings and
// inserting the new row happen in one transaction.
func (r *contentRepository) CreateActiveVersion(version *model.ContentVersion) error {
	logger.Debug("Creating content version in database", map[string]interface{}{
		"type":       version.Type,
		"kind":       version.Kind,
		"title":      version.Title,
		"item_count": len(version.Items),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ContentVersion{}).
			Where("type = ? AND kind = ?", version.Type, version.Kind).
			Update("is_active", false).Error; err != nil {
			return err
		}

		version.IsActive = true
		return tx.Create(version).Error
	})
	if err != nil {
		logger.Error("Failed to create content version in database", err, map[string]interface{}{
			"type":  version.Type,
			"kind":  version.Kind,
			"title": version.Title,
		})
		return err
	}

	logger.Debug("Content version created in database", map[string]interface{}{
		"version_id": version.ID,
		"type":       version.Type,
	})
	return nil
}

func (r *contentRepository) baseQuery() *gorm.DB {
	return r.db.Model(&model.ContentVersion{}).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("content_items.position ASC")
		}).
		Preload("Items.Perfume")
}

func (r *contentRepository) FindByID(id uint) (*model.ContentVersion, error) {
	logger.Debug("Finding content version by ID in database", map[string]interface{}{
		"version_id": id,
	})

	var version model.ContentVersion
	if err := r.baseQuery().First(&version, id).Error; err != nil {
		logger.Error("Failed to find content version by ID in database", err, map[string]interface{}{
			"version_id": id,
		})
		return nil, err
	}

	return &version, nil
}

func (r *contentRepository) FindAllByType(contentType model.ContentType, kind model.CollectionKind) ([]model.ContentVersion, error) {
	logger.Debug("Listing content version history", map[string]interface{}{
		"type": contentType,
		"kind": kind,
	})

	var versions []model.ContentVersion
	err := r.baseQuery().
		Where("type = ? AND kind = ?", contentType, kind).
		Order("created_at DESC").
		Order("id DESC").
		Find(&versions).Error
	if err != nil {
		logger.Error("Failed to list content version history", err, map[string]interface{}{
			"type": contentType,
			"kind": kind,
		})
		return nil, err
	}

	logger.Debug("Content version history listed", map[string]interface{}{
		"type":  contentType,
		"kind":  kind,
		"count": len(versions),
	})
	return versions, nil
}

func (r *contentRepository) FindActive(contentType model.ContentType, kind model.CollectionKind) (*model.ContentVersion, error) {
	logger.Debug("Finding active content version in database", map[string]interface{}{
		"type": contentType,
		"kind": kind,
	})

	var version model.ContentVersion
	err := r.baseQuery().
		Where("type = ? AND kind = ? AND is_active = ?", contentType, kind, true).
		First(&version).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find active content version in database", err, map[string]interface{}{
				"type": contentType,
				"kind": kind,
			})
		}
		return nil, err
	}

	return &version, nil
}

// Activate deactivates every version of (type, kind) and activates the target,
// all inside one transaction. The target row is locked first so two racing
// activations serialize instead of ending with zero or two active versions.
func (r *contentRepository) Activate(contentType model.ContentType, kind model.CollectionKind, id uint) error {
	logger.Debug("Activating content version in database", map[string]interface{}{
		"type":       contentType,
		"kind":       kind,
		"version_id": id,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var target model.ContentVersion
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND type = ? AND kind = ?", id, contentType, kind).
			First(&target).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.ContentVersion{}).
			Where("type = ? AND kind = ?", contentType, kind).
			Update("is_active", false).Error; err != nil {
			return err
		}

		return tx.Model(&model.ContentVersion{}).
			Where("id = ?", id).
			Update("is_active", true).Error
	})
	if err != nil {
		logger.Error("Failed to activate content version in database", err, map[string]interface{}{
			"type":       contentType,
			"kind":       kind,
			"version_id": id,
		})
		return err
	}

	logger.Debug("Content version activated in database", map[string]interface{}{
		"type":       contentType,
		"version_id": id,
	})
	return nil
}

// UpdateVersionWithItems updates the editable fields of a version and
// swaps out its entire child set, as one transaction. No partial diffing
// is attempted; is_active changes go through Activate.
func (r *contentRepository) UpdateVersionWithItems(version *model.ContentVersion, items []model.ContentItem) error {
	logger.Debug("Updating content version in database", map[string]interface{}{
		"version_id": version.ID,
		"title":      version.Title,
		"item_count": len(items),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ContentVersion{}).
			Where("id = ?", version.ID).
			Select("title", "description", "theme_color", "published").
			Updates(map[string]interface{}{
				"title":       version.Title,
				"description": version.Description,
				"theme_color": version.ThemeColor,
				"published":   version.Published,
			}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().
			Where("version_id = ?", version.ID).
			Delete(&model.ContentItem{}).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].ID = 0
			items[i].VersionID = version.ID
			items[i].Position = i
		}

		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		logger.Error("Failed to update content version in database", err, map[string]interface{}{
			"version_id": version.ID,
		})
		return err
	}

	logger.Debug("Content version updated in database", map[string]interface{}{
		"version_id": version.ID,
		"item_count": len(items),
	})
	return nil
}

func (r *contentRepository) Delete(id uint) error {
	logger.Debug("Deleting content version from database", map[string]interface{}{
		"version_id": id,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("version_id = ?", id).
			Delete(&model.ContentItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ContentVersion{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete content version from database", err, map[string]interface{}{
			"version_id": id,
		})
		return err
	}

	logger.Debug("Content version deleted from database", map[string]interface{}{
		"version_id": id,
	})
	return nil
}
