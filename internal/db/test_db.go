package db

import (
	"fmt"
	"log"

	"github.com/aionlab/aion-backend/internal/app/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing.
// Event is excluded because its pq.StringArray column is postgres-only.
func SetupTestDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&model.User{},
		&model.PasswordReset{},
		&model.LoginAudit{},
		&model.Brand{},
		&model.Perfume{},
		&model.PerfumeImage{},
		&model.Scent{},
		&model.PerfumeNote{},
		&model.PreferenceTag{},
		&model.PerfumeTag{},
		&model.ContentVersion{},
		&model.ContentItem{},
		&model.Coupon{},
		&model.UserCoupon{},
		&model.Announcement{},
		&model.Inquiry{},
		&model.Order{},
		&model.OrderItem{},
		&model.CartItem{},
		&model.WishlistItem{},
		&model.PointRule{},
		&model.UserPoint{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return db, nil
}

// CleanupTestDB cleans up the test database
func CleanupTestDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Failed to get DB instance: %v", err)
		return
	}
	sqlDB.Close()
}

// TruncateAllTables removes all data from tables
func TruncateAllTables(db *gorm.DB) error {
	tables := []string{
		"content_items", "content_versions",
		"cart_items", "wishlist_items", "order_items", "orders",
		"perfume_tags", "perfume_notes", "perfume_images", "perfumes", "brands",
		"user_coupons", "coupons", "user_points", "users",
	}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return err
		}
	}
	return nil
}
