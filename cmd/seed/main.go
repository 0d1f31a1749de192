package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/aionlab/aion-backend/config"
	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/repository"
	"github.com/aionlab/aion-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// 카탈로그 XLSX 컬럼 순서:
// 0 브랜드명, 1 한글 브랜드명, 2 제품명, 3 한글 제품명, 4 부향률,
// 5 가격, 6 용량(ml), 7 재고, 8 설명, 9 이미지 URL(쉼표 구분)
const minColumns = 8

func main() {
	// 명령줄 인자 확인
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// DB 연결
	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	brandRepo := repository.NewBrandRepository(db.GetDB())
	perfumeRepo := repository.NewPerfumeRepository(db.GetDB())

	// XLSX 파일 읽기
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	perfumes, err := readPerfumesFromXLSX(filePath, brandRepo)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total perfumes to import: %d\n", len(perfumes))

	// 사용자 확인
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	// 배치로 저장
	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := perfumeRepo.BulkCreate(perfumes, batchSize); err != nil {
		log.Fatal("Failed to bulk create perfumes:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total perfumes imported: %d\n", len(perfumes))
}

func readPerfumesFromXLSX(filePath string, brandRepo repository.BrandRepository) ([]model.Perfume, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	// 브랜드는 행 단위로 조회하면 느려서 미리 캐시
	brandCache, err := loadBrandCache(brandRepo)
	if err != nil {
		return nil, err
	}

	var perfumes []model.Perfume
	seen := make(map[string]bool) // 중복 제거용 (브랜드+제품명)
	skippedCount := 0

	// 첫 행은 헤더이므로 스킵
	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < minColumns {
			skippedCount++
			continue
		}

		brandName := strings.TrimSpace(row[0])
		brandNameKo := strings.TrimSpace(row[1])
		name := strings.TrimSpace(row[2])
		nameKo := strings.TrimSpace(row[3])
		concentration := strings.ToLower(strings.TrimSpace(row[4]))
		priceStr := strings.TrimSpace(row[5])
		volumeStr := strings.TrimSpace(row[6])
		stockStr := strings.TrimSpace(row[7])

		var description, imageURLs string
		if len(row) > 8 {
			description = strings.TrimSpace(row[8])
		}
		if len(row) > 9 {
			imageURLs = strings.TrimSpace(row[9])
		}

		if brandName == "" || name == "" {
			skippedCount++
			continue
		}

		if !isValidConcentration(concentration) {
			skippedCount++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			skippedCount++
			continue
		}

		volume, _ := strconv.Atoi(volumeStr)
		stock, _ := strconv.Atoi(stockStr)

		// 중복 체크 (브랜드+제품명 기준)
		key := fmt.Sprintf("%s|%s", brandName, name)
		if seen[key] {
			skippedCount++
			continue
		}
		seen[key] = true

		brandID, err := resolveBrand(brandRepo, brandCache, brandName, brandNameKo)
		if err != nil {
			return nil, err
		}

		perfume := model.Perfume{
			BrandID:       brandID,
			Name:          name,
			NameKo:        nameKo,
			Description:   description,
			Price:         price,
			Volume:        volume,
			Concentration: model.Concentration(concentration),
			StockQuantity: stock,
			Published:     true,
		}

		for pos, url := range splitURLs(imageURLs) {
			perfume.Images = append(perfume.Images, model.PerfumeImage{
				ImageURL: url,
				Position: pos,
			})
		}

		perfumes = append(perfumes, perfume)

		if len(perfumes)%500 == 0 {
			fmt.Printf("Processed %d perfumes...\n", len(perfumes))
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid perfumes: %d\n", len(perfumes))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return perfumes, nil
}

func loadBrandCache(brandRepo repository.BrandRepository) (map[string]uint, error) {
	brands, err := brandRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load brands: %w", err)
	}

	cache := make(map[string]uint, len(brands))
	for _, brand := range brands {
		cache[strings.ToLower(brand.Name)] = brand.ID
	}
	return cache, nil
}

// resolveBrand는 캐시에서 브랜드를 찾고 없으면 새로 만든다
func resolveBrand(brandRepo repository.BrandRepository, cache map[string]uint, name, nameKo string) (uint, error) {
	key := strings.ToLower(name)
	if id, ok := cache[key]; ok {
		return id, nil
	}

	brand := model.Brand{Name: name, NameKo: nameKo}
	if err := brandRepo.Create(&brand); err != nil {
		return 0, fmt.Errorf("failed to create brand %s: %w", name, err)
	}

	cache[key] = brand.ID
	return brand.ID, nil
}

func isValidConcentration(c string) bool {
	switch model.Concentration(c) {
	case model.ConcentrationParfum, model.ConcentrationEDP, model.ConcentrationEDT, model.ConcentrationEDC:
		return true
	}
	return false
}

func splitURLs(s string) []string {
	if s == "" {
		return nil
	}

	var urls []string
	for _, part := range strings.Split(s, ",") {
		if url := strings.TrimSpace(part); url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}
