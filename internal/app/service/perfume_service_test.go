package service

import (
	"testing"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/repository"
	"github.com/aionlab/aion-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPerfumeServiceTest(t *testing.T) (PerfumeService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	svc := NewPerfumeService(
		repository.NewPerfumeRepository(testDB),
		repository.NewBrandRepository(testDB),
	)
	return svc, testDB
}

func createTestBrand(t *testing.T, testDB *gorm.DB, name string) *model.Brand {
	t.Helper()
	brand := &model.Brand{Name: name, NameKo: name}
	require.NoError(t, testDB.Create(brand).Error)
	return brand
}

func perfumeMutation(brandID uint, name string) PerfumeMutation {
	return PerfumeMutation{
		BrandID:       brandID,
		Name:          name,
		NameKo:        name,
		Concentration: model.ConcentrationEDP,
		Price:         89000,
		Volume:        50,
		StockQuantity: 10,
	}
}

func TestPerfumeService_CreatePerfume_Success(t *testing.T) {
	svc, testDB := setupPerfumeServiceTest(t)
	brand := createTestBrand(t, testDB, "Tamburins")

	input := perfumeMutation(brand.ID, "  Chamo  ")
	input.ImageURLs = []string{"a.jpg", "b.jpg"}
	perfume, err := svc.CreatePerfume(input)
	require.NoError(t, err)
	assert.NotZero(t, perfume.ID)
	assert.Equal(t, "Chamo", perfume.Name)
	assert.True(t, perfume.Published)
	require.Len(t, perfume.Images, 2)
	assert.Equal(t, 0, perfume.Images[0].Position)
	assert.Equal(t, 1, perfume.Images[1].Position)
}

func TestPerfumeService_CreatePerfume_NameRequired(t *testing.T) {
	svc, testDB := setupPerfumeServiceTest(t)
	brand := createTestBrand(t, testDB, "Tamburins")

	_, err := svc.CreatePerfume(perfumeMutation(brand.ID, "   "))
	assert.ErrorIs(t, err, ErrPerfumeNameEmpty)
}

func TestPerfumeService_CreatePerfume_BrandNotFound(t *testing.T) {
	svc, _ := setupPerfumeServiceTest(t)

	_, err := svc.CreatePerfume(perfumeMutation(9999, "Chamo"))
	assert.ErrorIs(t, err, ErrBrandNotFound)
}

func TestPerfumeService_ListPerfumes_FilterByBrand(t *testing.T) {
	svc, testDB := setupPerfumeServiceTest(t)
	tamburins := createTestBrand(t, testDB, "Tamburins")
	diptyque := createTestBrand(t, testDB, "Diptyque")

	_, err := svc.CreatePerfume(perfumeMutation(tamburins.ID, "Chamo"))
	require.NoError(t, err)
	_, err = svc.CreatePerfume(perfumeMutation(diptyque.ID, "Philosykos"))
	require.NoError(t, err)

	perfumes, err := svc.ListPerfumes(PerfumeListOptions{BrandID: &tamburins.ID})
	require.NoError(t, err)
	require.Len(t, perfumes, 1)
	assert.Equal(t, "Chamo", perfumes[0].Name)
}

func TestPerfumeService_ListPerfumes_PublishedOnly(t *testing.T) {
	svc, testDB := setupPerfumeServiceTest(t)
	brand := createTestBrand(t, testDB, "Tamburins")

	_, err := svc.CreatePerfume(perfumeMutation(brand.ID, "공개 향수"))
	require.NoError(t, err)

	hidden := perfumeMutation(brand.ID, "비공개 향수")
	unpublished := false
	hidden.Published = &unpublished
	_, err = svc.CreatePerfume(hidden)
	require.NoError(t, err)

	perfumes, err := svc.ListPerfumes(PerfumeListOptions{PublishedOnly: true})
	require.NoError(t, err)
	require.Len(t, perfumes, 1)
	assert.Equal(t, "공개 향수", perfumes[0].Name)
}

func TestPerfumeService_ListPerfumes_SortByPriceAscending(t *testing.T) {
	svc, testDB := setupPerfumeServiceTest(t)
	brand := createTestBrand(t, testDB, "Tamburins")

	cheap := perfumeMutation(brand.ID, "저가")
	cheap.Price = 30000
	_, err := svc.CreatePerfume(cheap)
	require.NoError(t, err)

	expensive := perfumeMutation(brand.ID, "고가")
	expensive.Price = 150000
	_, err = svc.CreatePerfume(expensive)
	require.NoError(t, err)

	perfumes, err := svc.ListPerfumes(PerfumeListOptions{
		Sort:          PerfumeSortPrice,
		SortAscending: true,
	})
	require.NoError(t, err)
	require.Len(t, perfumes, 2)
	assert.Equal(t, "저가", perfumes[0].Name)
	assert.Equal(t, "고가", perfumes[1].Name)
}

func TestPerfumeService_ListPerfumes_FilterByConcentration(t *testing.T) {
	svc, testDB := setupPerfumeServiceTest(t)
	brand := createTestBrand(t, testDB, "Tamburins")

	_, err := svc.CreatePerfume(perfumeMutation(brand.ID, "EDP 향수"))
	require.NoError(t, err)

	edt := perfumeMutation(brand.ID, "EDT 향수")
	edt.Concentration = model.ConcentrationEDT
	_, err = svc.CreatePerfume(edt)
	require.NoError(t, err)

	concentration := model.ConcentrationEDT
	perfumes, err := svc.ListPerfumes(PerfumeListOptions{Concentration: &concentration})
	require.NoError(t, err)
	require.Len(t, perfumes, 1)
	assert.Equal(t, "EDT 향수", perfumes[0].Name)
}

func TestPerfumeService_SearchPerfumes_MatchesNameAndBrand(t *testing.T) {
	svc, testDB := setupPerfumeServiceTest(t)
	tamburins := createTestBrand(t, testDB, "Tamburins")
	diptyque := createTestBrand(t, testDB, "Diptyque")

	_, err := svc.CreatePerfume(perfumeMutation(tamburins.ID, "Chamo"))
	require.NoError(t, err)
	_, err = svc.CreatePerfume(perfumeMutation(diptyque.ID, "Philosykos"))
	require.NoError(t, err)

	// 제품명으로 검색
	byName, err := svc.SearchPerfumes("Cham", 10)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Chamo", byName[0].Name)

	// 브랜드명으로 검색
	byBrand, err := svc.SearchPerfumes("Dipty", 10)
	require.NoError(t, err)
	require.Len(t, byBrand, 1)
	assert.Equal(t, "Philosykos", byBrand[0].Name)
}

func TestPerfumeService_SearchPerfumes_EmptyQuery(t *testing.T) {
	svc, _ := setupPerfumeServiceTest(t)

	perfumes, err := svc.SearchPerfumes("   ", 10)
	require.NoError(t, err)
	assert.Len(t, perfumes, 0)
}

func TestPerfumeService_GetPerfumeByID_CountsView(t *testing.T) {
	svc, testDB := setupPerfumeServiceTest(t)
	brand := createTestBrand(t, testDB, "Tamburins")

	created, err := svc.CreatePerfume(perfumeMutation(brand.ID, "Chamo"))
	require.NoError(t, err)

	_, err = svc.GetPerfumeByID(created.ID, true)
	require.NoError(t, err)
	_, err = svc.GetPerfumeByID(created.ID, true)
	require.NoError(t, err)

	// 관리자 조회는 조회수를 올리지 않는다
	found, err := svc.GetPerfumeByID(created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 2, found.ViewCount)
}

func TestPerfumeService_GetPerfumeByID_NotFound(t *testing.T) {
	svc, _ := setupPerfumeServiceTest(t)

	_, err := svc.GetPerfumeByID(9999, false)
	assert.ErrorIs(t, err, ErrPerfumeNotFound)
}

func TestPerfumeService_UpdatePerfume_ReplacesImages(t *testing.T) {
	svc, testDB := setupPerfumeServiceTest(t)
	brand := createTestBrand(t, testDB, "Tamburins")

	input := perfumeMutation(brand.ID, "Chamo")
	input.ImageURLs = []string{"old.jpg"}
	created, err := svc.CreatePerfume(input)
	require.NoError(t, err)

	update := perfumeMutation(brand.ID, "Chamo Reborn")
	update.ImageURLs = []string{"new-1.jpg", "new-2.jpg"}
	updated, err := svc.UpdatePerfume(created.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Chamo Reborn", updated.Name)
	require.Len(t, updated.Images, 2)
	assert.Equal(t, "new-1.jpg", updated.Images[0].ImageURL)
}

func TestPerfumeService_DeletePerfume(t *testing.T) {
	svc, testDB := setupPerfumeServiceTest(t)
	brand := createTestBrand(t, testDB, "Tamburins")

	created, err := svc.CreatePerfume(perfumeMutation(brand.ID, "Chamo"))
	require.NoError(t, err)

	require.NoError(t, svc.DeletePerfume(created.ID))

	_, err = svc.GetPerfumeByID(created.ID, false)
	assert.ErrorIs(t, err, ErrPerfumeNotFound)
}

func TestPerfumeService_CheckStock(t *testing.T) {
	svc, testDB := setupPerfumeServiceTest(t)
	brand := createTestBrand(t, testDB, "Tamburins")

	input := perfumeMutation(brand.ID, "Chamo")
	input.StockQuantity = 3
	created, err := svc.CreatePerfume(input)
	require.NoError(t, err)

	assert.NoError(t, svc.CheckStock(created.ID, 3))
	assert.ErrorIs(t, svc.CheckStock(created.ID, 4), ErrInsufficientStock)
}
