package service

import (
	"errors"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/repository"
	"github.com/aionlab/aion-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("장바구니 항목을 찾을 수 없습니다")
	ErrInvalidQuantity  = errors.New("수량은 1개 이상이어야 합니다")
)

type CartService interface {
	GetCart(userID uint) ([]model.CartItem, error)
	AddToCart(userID, perfumeID uint, quantity int) (*model.CartItem, error)
	UpdateQuantity(userID, cartItemID uint, quantity int) (*model.CartItem, error)
	RemoveFromCart(userID, cartItemID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	perfumeRepo repository.PerfumeRepository
}

func NewCartService(cartRepo repository.CartRepository, perfumeRepo repository.PerfumeRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		perfumeRepo: perfumeRepo,
	}
}

func (s *cartService) GetCart(userID uint) ([]model.CartItem, error) {
	logger.Debug("Fetching cart", map[string]interface{}{
		"user_id": userID,
	})

	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return items, nil
}

func (s *cartService) AddToCart(userID, perfumeID uint, quantity int) (*model.CartItem, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"perfume_id": perfumeID,
		"quantity":   quantity,
	})

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	perfume, err := s.perfumeRepo.FindByID(perfumeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPerfumeNotFound
		}
		return nil, err
	}

	// 이미 담긴 향수면 수량을 합산한다
	existing, err := s.cartRepo.FindByUserAndPerfume(userID, perfumeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing cart item", err, map[string]interface{}{
			"user_id":    userID,
			"perfume_id": perfumeID,
		})
		return nil, err
	}

	if existing != nil {
		newQuantity := existing.Quantity + quantity
		if perfume.StockQuantity < newQuantity {
			return nil, ErrInsufficientStock
		}
		existing.Quantity = newQuantity
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		return s.cartRepo.FindByID(existing.ID)
	}

	if perfume.StockQuantity < quantity {
		return nil, ErrInsufficientStock
	}

	item := &model.CartItem{
		UserID:    userID,
		PerfumeID: perfumeID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}

	return s.cartRepo.FindByID(item.ID)
}

func (s *cartService) UpdateQuantity(userID, cartItemID uint, quantity int) (*model.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	if item.UserID != userID {
		logger.Warn("Cart item access denied: ownership mismatch", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": cartItemID,
		})
		return nil, ErrCartItemNotFound
	}

	perfume, err := s.perfumeRepo.FindByID(item.PerfumeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPerfumeNotFound
		}
		return nil, err
	}
	if perfume.StockQuantity < quantity {
		return nil, ErrInsufficientStock
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		return nil, err
	}

	return s.cartRepo.FindByID(cartItemID)
}

func (s *cartService) RemoveFromCart(userID, cartItemID uint) error {
	item, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}
	if item.UserID != userID {
		return ErrCartItemNotFound
	}

	return s.cartRepo.Delete(cartItemID)
}

func (s *cartService) ClearCart(userID uint) error {
	logger.Info("Clearing cart", map[string]interface{}{
		"user_id": userID,
	})
	return s.cartRepo.DeleteByUserID(userID)
}
