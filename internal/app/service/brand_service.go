package service

import (
	"errors"
	"strings"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/repository"
	"github.com/aionlab/aion-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrBrandNameEmpty = errors.New("브랜드 이름을 입력해주세요")

type BrandService interface {
	ListBrands() ([]model.Brand, error)
	GetBrandByID(id uint) (*model.Brand, error)
	CreateBrand(brand *model.Brand) (*model.Brand, error)
	UpdateBrand(id uint, brand *model.Brand) (*model.Brand, error)
	DeleteBrand(id uint) error
}

type brandService struct {
	brandRepo repository.BrandRepository
}

func NewBrandService(brandRepo repository.BrandRepository) BrandService {
	return &brandService{brandRepo: brandRepo}
}

func (s *brandService) ListBrands() ([]model.Brand, error) {
	brands, err := s.brandRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list brands", err)
		return nil, err
	}
	return brands, nil
}

func (s *brandService) GetBrandByID(id uint) (*model.Brand, error) {
	brand, err := s.brandRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		logger.Error("Failed to fetch brand", err, map[string]interface{}{
			"brand_id": id,
		})
		return nil, err
	}
	return brand, nil
}

func (s *brandService) CreateBrand(brand *model.Brand) (*model.Brand, error) {
	if strings.TrimSpace(brand.Name) == "" {
		return nil, ErrBrandNameEmpty
	}

	brand.Name = strings.TrimSpace(brand.Name)
	if err := s.brandRepo.Create(brand); err != nil {
		logger.Error("Failed to create brand", err, map[string]interface{}{
			"name": brand.Name,
		})
		return nil, err
	}

	logger.Info("Brand created", map[string]interface{}{
		"brand_id": brand.ID,
		"name":     brand.Name,
	})
	return brand, nil
}

func (s *brandService) UpdateBrand(id uint, input *model.Brand) (*model.Brand, error) {
	brand, err := s.brandRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, err
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrBrandNameEmpty
	}

	brand.Name = strings.TrimSpace(input.Name)
	brand.NameKo = input.NameKo
	brand.Country = input.Country
	brand.Description = input.Description
	brand.LogoURL = input.LogoURL

	if err := s.brandRepo.Update(brand); err != nil {
		logger.Error("Failed to update brand", err, map[string]interface{}{
			"brand_id": id,
		})
		return nil, err
	}
	return brand, nil
}

func (s *brandService) DeleteBrand(id uint) error {
	if _, err := s.brandRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBrandNotFound
		}
		return err
	}

	if err := s.brandRepo.Delete(id); err != nil {
		logger.Error("Failed to delete brand", err, map[string]interface{}{
			"brand_id": id,
		})
		return err
	}

	logger.Info("Brand deleted", map[string]interface{}{
		"brand_id": id,
	})
	return nil
}
