package db

import (
	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
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
		&model.Event{},
		&model.EventParticipation{},
		&model.Announcement{},
		&model.Inquiry{},
		&model.Order{},
		&model.OrderItem{},
		&model.CartItem{},
		&model.WishlistItem{},
		&model.PointRule{},
		&model.UserPoint{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedScents(); err != nil {
		logger.Error("Failed to seed scents", err)
		return err
	}

	if err := seedPreferenceTags(); err != nil {
		logger.Error("Failed to seed preference tags", err)
		return err
	}

	if err := seedPointRules(); err != nil {
		logger.Error("Failed to seed point rules", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

// seedScents 기본 향 노트 데이터 생성 (향수 등록 시 선택에 필요)
func seedScents() error {
	var count int64
	if err := DB.Model(&model.Scent{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Scents already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding scent data...")

	scents := []model.Scent{
		{Name: "bergamot", NameKo: "베르가못"},
		{Name: "lemon", NameKo: "레몬"},
		{Name: "black pepper", NameKo: "블랙페퍼"},
		{Name: "rose", NameKo: "로즈"},
		{Name: "jasmine", NameKo: "자스민"},
		{Name: "iris", NameKo: "아이리스"},
		{Name: "lavender", NameKo: "라벤더"},
		{Name: "sandalwood", NameKo: "샌달우드"},
		{Name: "cedarwood", NameKo: "시더우드"},
		{Name: "vetiver", NameKo: "베티버"},
		{Name: "musk", NameKo: "머스크"},
		{Name: "amber", NameKo: "앰버"},
		{Name: "vanilla", NameKo: "바닐라"},
		{Name: "patchouli", NameKo: "패출리"},
	}

	for _, scent := range scents {
		if err := DB.Create(&scent).Error; err != nil {
			logger.Error("Failed to create scent", err, map[string]interface{}{
				"scent": scent.Name,
			})
			return err
		}
	}

	logger.Info("Scents seeded successfully", map[string]interface{}{
		"total_scents": len(scents),
	})
	return nil
}

// seedPreferenceTags 취향 태그 데이터 생성
func seedPreferenceTags() error {
	var count int64
	if err := DB.Model(&model.PreferenceTag{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Preference tags already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding preference tag data...")

	tags := []model.PreferenceTag{
		{Name: "데일리"},
		{Name: "포근한"},
		{Name: "시트러스"},
		{Name: "우디"},
		{Name: "플로럴"},
		{Name: "스파이시"},
		{Name: "달콤한"},
		{Name: "비누향"},
		{Name: "여름용"},
		{Name: "겨울용"},
		{Name: "선물용"},
	}

	for _, tag := range tags {
		if err := DB.Create(&tag).Error; err != nil {
			logger.Error("Failed to create preference tag", err, map[string]interface{}{
				"tag": tag.Name,
			})
			return err
		}
	}

	logger.Info("Preference tags seeded successfully", map[string]interface{}{
		"total_tags": len(tags),
	})
	return nil
}

// seedPointRules 기본 포인트 적립 규칙 생성
func seedPointRules() error {
	var count int64
	if err := DB.Model(&model.PointRule{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	rule := model.PointRule{
		Action:   model.PointActionOrder,
		Rate:     1.0, // 주문 금액의 1% 적립
		IsActive: true,
	}
	if err := DB.Create(&rule).Error; err != nil {
		logger.Error("Failed to create point rule", err)
		return err
	}

	logger.Info("Point rules seeded successfully")
	return nil
}
