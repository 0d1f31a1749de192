package service

import (
	"errors"
	"strings"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/repository"
	"github.com/aionlab/aion-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrPerfumeNotFound   = errors.New("향수를 찾을 수 없습니다")
	ErrBrandNotFound     = errors.New("브랜드를 찾을 수 없습니다")
	ErrInsufficientStock = errors.New("재고가 부족합니다")
	ErrPerfumeNameEmpty  = errors.New("향수 이름을 입력해주세요")
)

type PerfumeSort string

const (
	PerfumeSortPrice      PerfumeSort = "price"
	PerfumeSortCreatedAt  PerfumeSort = "created_at"
	PerfumeSortPopularity PerfumeSort = "popularity"
)

type PerfumeListOptions struct {
	BrandID       *uint
	Concentration *model.Concentration
	TagID         *uint
	ScentID       *uint
	Search        string
	PublishedOnly bool
	Sort          PerfumeSort
	SortAscending bool
	Limit         int
	Offset        int
}

type PerfumeNoteInput struct {
	ScentID  uint
	Position model.NotePosition
}

type PerfumeMutation struct {
	BrandID       uint
	Name          string
	NameKo        string
	Description   string
	Concentration model.Concentration
	Price         float64
	Volume        int
	StockQuantity int
	Published     *bool
	ImageURLs     []string
	Notes         []PerfumeNoteInput
	TagIDs        []uint
}

type PerfumeService interface {
	ListPerfumes(opts PerfumeListOptions) ([]model.Perfume, error)
	GetPerfumeByID(id uint, countView bool) (*model.Perfume, error)
	SearchPerfumes(query string, limit int) ([]model.Perfume, error)
	CreatePerfume(input PerfumeMutation) (*model.Perfume, error)
	UpdatePerfume(id uint, input PerfumeMutation) (*model.Perfume, error)
	DeletePerfume(id uint) error
	CheckStock(perfumeID uint, quantity int) error
}

type perfumeService struct {
	perfumeRepo repository.PerfumeRepository
	brandRepo   repository.BrandRepository
}

func NewPerfumeService(perfumeRepo repository.PerfumeRepository, brandRepo repository.BrandRepository) PerfumeService {
	return &perfumeService{
		perfumeRepo: perfumeRepo,
		brandRepo:   brandRepo,
	}
}

func (s *perfumeService) ListPerfumes(opts PerfumeListOptions) ([]model.Perfume, error) {
	logger.Debug("Listing perfumes", map[string]interface{}{
		"brand_id": opts.BrandID,
		"search":   opts.Search,
		"sort":     opts.Sort,
		"limit":    opts.Limit,
		"offset":   opts.Offset,
	})

	filter := repository.PerfumeFilter{
		BrandID:       opts.BrandID,
		Concentration: opts.Concentration,
		TagID:         opts.TagID,
		ScentID:       opts.ScentID,
		Search:        opts.Search,
		PublishedOnly: opts.PublishedOnly,
		SortAscending: opts.SortAscending,
		Limit:         opts.Limit,
		Offset:        opts.Offset,
	}

	switch opts.Sort {
	case PerfumeSortPrice:
		filter.SortBy = repository.PerfumeSortPrice
	case PerfumeSortCreatedAt:
		filter.SortBy = repository.PerfumeSortCreatedAt
	case PerfumeSortPopularity:
		fallthrough
	default:
		filter.SortBy = repository.PerfumeSortViewCount
	}

	perfumes, err := s.perfumeRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list perfumes", err)
		return nil, err
	}
	return perfumes, nil
}

func (s *perfumeService) GetPerfumeByID(id uint, countView bool) (*model.Perfume, error) {
	perfume, err := s.perfumeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Perfume not found", map[string]interface{}{
				"perfume_id": id,
			})
			return nil, ErrPerfumeNotFound
		}
		logger.Error("Failed to fetch perfume", err, map[string]interface{}{
			"perfume_id": id,
		})
		return nil, err
	}

	if countView {
		if err := s.perfumeRepo.IncrementViewCount(id); err != nil {
			logger.Warn("Failed to increment view count", map[string]interface{}{
				"perfume_id": id,
			})
		}
	}

	return perfume, nil
}

func (s *perfumeService) SearchPerfumes(query string, limit int) ([]model.Perfume, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.Perfume{}, nil
	}
	if limit <= 0 {
		limit = 20
	}

	return s.ListPerfumes(PerfumeListOptions{
		Search:        query,
		PublishedOnly: true,
		Limit:         limit,
	})
}

func (s *perfumeService) CreatePerfume(input PerfumeMutation) (*model.Perfume, error) {
	logger.Info("Creating perfume", map[string]interface{}{
		"name":     input.Name,
		"brand_id": input.BrandID,
	})

	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrPerfumeNameEmpty
	}

	if _, err := s.brandRepo.FindByID(input.BrandID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, err
	}

	published := true
	if input.Published != nil {
		published = *input.Published
	}

	perfume := &model.Perfume{
		BrandID:       input.BrandID,
		Name:          strings.TrimSpace(input.Name),
		NameKo:        input.NameKo,
		Description:   input.Description,
		Concentration: input.Concentration,
		Price:         input.Price,
		Volume:        input.Volume,
		StockQuantity: input.StockQuantity,
		Published:     published,
	}

	for i, url := range input.ImageURLs {
		perfume.Images = append(perfume.Images, model.PerfumeImage{
			ImageURL: url,
			Position: i,
		})
	}
	for _, note := range input.Notes {
		perfume.Notes = append(perfume.Notes, model.PerfumeNote{
			ScentID:  note.ScentID,
			Position: note.Position,
		})
	}

	if err := s.perfumeRepo.Create(perfume); err != nil {
		logger.Error("Failed to create perfume", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	if len(input.TagIDs) > 0 {
		if err := s.perfumeRepo.ReplaceTags(perfume.ID, input.TagIDs); err != nil {
			logger.Error("Failed to set perfume tags", err, map[string]interface{}{
				"perfume_id": perfume.ID,
			})
			return nil, err
		}
	}

	logger.Info("Perfume created", map[string]interface{}{
		"perfume_id": perfume.ID,
		"name":       perfume.Name,
	})

	return s.perfumeRepo.FindByID(perfume.ID)
}

func (s *perfumeService) UpdatePerfume(id uint, input PerfumeMutation) (*model.Perfume, error) {
	logger.Info("Updating perfume", map[string]interface{}{
		"perfume_id": id,
	})

	perfume, err := s.perfumeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPerfumeNotFound
		}
		return nil, err
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrPerfumeNameEmpty
	}

	if input.BrandID != 0 && input.BrandID != perfume.BrandID {
		if _, err := s.brandRepo.FindByID(input.BrandID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBrandNotFound
			}
			return nil, err
		}
		perfume.BrandID = input.BrandID
	}

	perfume.Name = strings.TrimSpace(input.Name)
	perfume.NameKo = input.NameKo
	perfume.Description = input.Description
	perfume.Concentration = input.Concentration
	perfume.Price = input.Price
	perfume.Volume = input.Volume
	perfume.StockQuantity = input.StockQuantity
	if input.Published != nil {
		perfume.Published = *input.Published
	}

	if err := s.perfumeRepo.Update(perfume); err != nil {
		logger.Error("Failed to update perfume", err, map[string]interface{}{
			"perfume_id": id,
		})
		return nil, err
	}

	if input.ImageURLs != nil {
		images := make([]model.PerfumeImage, 0, len(input.ImageURLs))
		for i, url := range input.ImageURLs {
			images = append(images, model.PerfumeImage{
				PerfumeID: id,
				ImageURL:  url,
				Position:  i,
			})
		}
		if err := s.perfumeRepo.ReplaceImages(id, images); err != nil {
			logger.Error("Failed to replace perfume images", err, map[string]interface{}{
				"perfume_id": id,
			})
			return nil, err
		}
	}

	if input.Notes != nil {
		notes := make([]model.PerfumeNote, 0, len(input.Notes))
		for _, note := range input.Notes {
			notes = append(notes, model.PerfumeNote{
				PerfumeID: id,
				ScentID:   note.ScentID,
				Position:  note.Position,
			})
		}
		if err := s.perfumeRepo.ReplaceNotes(id, notes); err != nil {
			logger.Error("Failed to replace perfume notes", err, map[string]interface{}{
				"perfume_id": id,
			})
			return nil, err
		}
	}

	if input.TagIDs != nil {
		if err := s.perfumeRepo.ReplaceTags(id, input.TagIDs); err != nil {
			logger.Error("Failed to replace perfume tags", err, map[string]interface{}{
				"perfume_id": id,
			})
			return nil, err
		}
	}

	return s.perfumeRepo.FindByID(id)
}

func (s *perfumeService) DeletePerfume(id uint) error {
	if _, err := s.perfumeRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPerfumeNotFound
		}
		return err
	}

	if err := s.perfumeRepo.Delete(id); err != nil {
		logger.Error("Failed to delete perfume", err, map[string]interface{}{
			"perfume_id": id,
		})
		return err
	}

	logger.Info("Perfume deleted", map[string]interface{}{
		"perfume_id": id,
	})
	return nil
}

func (s *perfumeService) CheckStock(perfumeID uint, quantity int) error {
	perfume, err := s.perfumeRepo.FindByID(perfumeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPerfumeNotFound
		}
		return err
	}

	if perfume.StockQuantity < quantity {
		logger.Warn("Insufficient stock", map[string]interface{}{
			"perfume_id": perfumeID,
			"stock":      perfume.StockQuantity,
			"requested":  quantity,
		})
		return ErrInsufficientStock
	}
	return nil
}
