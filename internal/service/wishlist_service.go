package service

import (
	"errors"

	"github.com/elitebuy/internal/constants"
	"github.com/elitebuy/internal/models"
	"github.com/elitebuy/internal/repository"
)

// WishlistService 收藏服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewWishlistService 创建收藏服务
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// Add 收藏商品，保存商品与分类名快照
func (s *WishlistService) Add(userID, productID uint) (*models.WishlistItem, error) {
	exists, err := s.wishlistRepo.Exists(userID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrWishlistExists
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	categoryName := constants.UnknownCategoryName
	category, err := s.categoryRepo.GetByID(product.CategoryID)
	if err != nil {
		return nil, err
	}
	if category != nil {
		categoryName = category.Name
	}
	item := &models.WishlistItem{
		UserID:          userID,
		ProductID:       product.ID,
		ProductName:     product.Name,
		ProductPrice:    product.Price,
		ProductImage:    product.PrimaryImage(),
		ProductCategory: categoryName,
	}
	if err := s.wishlistRepo.Create(item); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrWishlistExists
		}
		return nil, err
	}
	return item, nil
}

// Remove 取消收藏
func (s *WishlistService) Remove(userID, productID uint) error {
	deleted, err := s.wishlistRepo.Delete(userID, productID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrWishlistNotFound
	}
	return nil
}

// List 收藏列表
func (s *WishlistService) List(userID uint) ([]models.WishlistItem, error) {
	return s.wishlistRepo.ListByUser(userID)
}

// Contains 是否已收藏
func (s *WishlistService) Contains(userID, productID uint) (bool, error) {
	return s.wishlistRepo.Exists(userID, productID)
}
