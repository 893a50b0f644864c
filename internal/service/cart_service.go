package service

import (
	"errors"
	"fmt"

	"github.com/elitebuy/internal/cart"
	"github.com/elitebuy/internal/models"
	"github.com/elitebuy/internal/repository"
)

// CartService 购物车服务，每个用户一辆购物车，持久化在存储中
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	locks       *keyedMutex
}

// CartView 购物车展示数据
type CartView struct {
	Items     []models.CartItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Total     models.Money      `json:"total"`
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		locks:       newKeyedMutex(),
	}
}

// GetCart 获取购物车
func (s *CartService) GetCart(userID uint) (*CartView, error) {
	c, err := s.Load(userID)
	if err != nil {
		return nil, err
	}
	return buildCartView(userID, c), nil
}

// AddItem 加入购物车，已存在时累加数量
func (s *CartService) AddItem(userID, productID uint, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductNotAvailable
	}
	return s.mutate(userID, func(c *cart.Cart) error {
		if err := c.AddItem(toCartProduct(product), quantity); err != nil {
			if errors.Is(err, cart.ErrInvalidQuantity) {
				return ErrInvalidQuantity
			}
			return err
		}
		return nil
	})
}

// UpdateQuantity 修改数量，数量小于等于 0 时移除
func (s *CartService) UpdateQuantity(userID, productID uint, quantity int) (*CartView, error) {
	return s.mutate(userID, func(c *cart.Cart) error {
		c.UpdateQuantity(productID, quantity)
		return nil
	})
}

// RemoveItem 移除商品，不存在时不报错
func (s *CartService) RemoveItem(userID, productID uint) (*CartView, error) {
	return s.mutate(userID, func(c *cart.Cart) error {
		c.RemoveItem(productID)
		return nil
	})
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	unlock := s.locks.Lock(cartLockKey(userID))
	defer unlock()
	return s.cartRepo.ClearByUser(userID)
}

// Load 读取购物车聚合
func (s *CartService) Load(userID uint) (*cart.Cart, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	lines := make([]cart.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, cart.Line{
			Product: cart.Product{
				ID:         item.ProductID,
				Name:       item.ProductName,
				Price:      item.ProductPrice.Decimal,
				Image:      item.ProductImage,
				CategoryID: item.CategoryID,
			},
			Quantity: item.Quantity,
		})
	}
	return cart.New(lines...), nil
}

func (s *CartService) mutate(userID uint, apply func(c *cart.Cart) error) (*CartView, error) {
	unlock := s.locks.Lock(cartLockKey(userID))
	defer unlock()

	c, err := s.Load(userID)
	if err != nil {
		return nil, err
	}
	if err := apply(c); err != nil {
		return nil, err
	}
	view := buildCartView(userID, c)
	if err := s.cartRepo.ReplaceByUser(userID, view.Items); err != nil {
		return nil, err
	}
	return view, nil
}

func buildCartView(userID uint, c *cart.Cart) *CartView {
	lines := c.Lines()
	items := make([]models.CartItem, 0, len(lines))
	for idx, line := range lines {
		items = append(items, models.CartItem{
			UserID:       userID,
			ProductID:    line.Product.ID,
			ProductName:  line.Product.Name,
			ProductPrice: models.NewMoneyFromDecimal(line.Product.Price),
			ProductImage: line.Product.Image,
			CategoryID:   line.Product.CategoryID,
			Quantity:     line.Quantity,
			Position:     idx,
		})
	}
	return &CartView{
		Items:     items,
		ItemCount: c.ItemCount(),
		Total:     models.NewMoneyFromDecimal(c.Total()),
	}
}

func toCartProduct(product *models.Product) cart.Product {
	return cart.Product{
		ID:         product.ID,
		Name:       product.Name,
		Price:      product.Price.Decimal,
		Image:      product.PrimaryImage(),
		CategoryID: product.CategoryID,
	}
}

func cartLockKey(userID uint) string {
	return fmt.Sprintf("cart:%d", userID)
}
