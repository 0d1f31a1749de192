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

func setupCartServiceTest(t *testing.T) (CartService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	svc := NewCartService(
		repository.NewCartRepository(testDB),
		repository.NewPerfumeRepository(testDB),
	)
	return svc, testDB
}

func createCartTestPerfume(t *testing.T, testDB *gorm.DB, stock int) *model.Perfume {
	brand := &model.Brand{Name: "Cart Brand"}
	require.NoError(t, testDB.Create(brand).Error)

	perfume := &model.Perfume{
		Name:          "Cart Perfume",
		NameKo:        "장바구니 향수",
		BrandID:       brand.ID,
		Price:         45000,
		Volume:        50,
		Concentration: model.ConcentrationEDT,
		StockQuantity: stock,
		Published:     true,
	}
	require.NoError(t, testDB.Create(perfume).Error)
	return perfume
}

func TestCartService_AddToCart_CreatesItem(t *testing.T) {
	svc, testDB := setupCartServiceTest(t)
	perfume := createCartTestPerfume(t, testDB, 10)

	item, err := svc.AddToCart(1, perfume.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, perfume.ID, item.PerfumeID)
}

func TestCartService_AddToCart_MergesQuantity(t *testing.T) {
	svc, testDB := setupCartServiceTest(t)
	perfume := createCartTestPerfume(t, testDB, 10)

	_, err := svc.AddToCart(1, perfume.ID, 2)
	require.NoError(t, err)
	item, err := svc.AddToCart(1, perfume.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	// 항목이 중복 생성되면 안 된다
	items, err := svc.GetCart(1)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCartService_AddToCart_InsufficientStock(t *testing.T) {
	svc, testDB := setupCartServiceTest(t)
	perfume := createCartTestPerfume(t, testDB, 3)

	_, err := svc.AddToCart(1, perfume.ID, 5)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// 합산 수량이 재고를 넘으면 거부한다
	_, err = svc.AddToCart(1, perfume.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(1, perfume.ID, 2)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestCartService_AddToCart_PerfumeNotFound(t *testing.T) {
	svc, _ := setupCartServiceTest(t)

	_, err := svc.AddToCart(1, 9999, 1)
	assert.ErrorIs(t, err, ErrPerfumeNotFound)
}

func TestCartService_AddToCart_InvalidQuantity(t *testing.T) {
	svc, testDB := setupCartServiceTest(t)
	perfume := createCartTestPerfume(t, testDB, 10)

	_, err := svc.AddToCart(1, perfume.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_UpdateQuantity_Success(t *testing.T) {
	svc, testDB := setupCartServiceTest(t)
	perfume := createCartTestPerfume(t, testDB, 10)

	item, err := svc.AddToCart(1, perfume.ID, 1)
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(1, item.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)
}

func TestCartService_UpdateQuantity_OwnershipEnforced(t *testing.T) {
	svc, testDB := setupCartServiceTest(t)
	perfume := createCartTestPerfume(t, testDB, 10)

	item, err := svc.AddToCart(1, perfume.ID, 1)
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(2, item.ID, 4)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_UpdateQuantity_ExceedsStock(t *testing.T) {
	svc, testDB := setupCartServiceTest(t)
	perfume := createCartTestPerfume(t, testDB, 3)

	item, err := svc.AddToCart(1, perfume.ID, 1)
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(1, item.ID, 5)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestCartService_RemoveFromCart(t *testing.T) {
	svc, testDB := setupCartServiceTest(t)
	perfume := createCartTestPerfume(t, testDB, 10)

	item, err := svc.AddToCart(1, perfume.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFromCart(1, item.ID))

	items, err := svc.GetCart(1)
	require.NoError(t, err)
	assert.Empty(t, items)

	err = svc.RemoveFromCart(1, item.ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_ClearCart(t *testing.T) {
	svc, testDB := setupCartServiceTest(t)
	first := createCartTestPerfume(t, testDB, 10)
	second := &model.Perfume{
		Name:          "Second Perfume",
		NameKo:        "두번째 향수",
		BrandID:       first.BrandID,
		Price:         60000,
		Concentration: model.ConcentrationEDP,
		StockQuantity: 10,
		Published:     true,
	}
	require.NoError(t, testDB.Create(second).Error)

	_, err := svc.AddToCart(1, first.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(1, second.ID, 2)
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(1))

	items, err := svc.GetCart(1)
	require.NoError(t, err)
	assert.Empty(t, items)
}
