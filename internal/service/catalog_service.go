package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/elitebuy/internal/cache"
	"github.com/elitebuy/internal/constants"
	"github.com/elitebuy/internal/logger"
	"github.com/elitebuy/internal/models"
	"github.com/elitebuy/internal/repository"
)

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// CatalogService 商品与分类服务，前台查询走 Redis 缓存
type CatalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cacheTTL     time.Duration
}

// ProductInput 后台商品写入参数
type ProductInput struct {
	CategoryID    uint          `json:"category_id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Price         models.Money  `json:"price"`
	OriginalPrice *models.Money `json:"original_price"`
	ImageURL      string        `json:"image_url"`
	Images        []string      `json:"images"`
	Tags          []string      `json:"tags"`
	Stock         int           `json:"stock"`
	IsFeatured    bool          `json:"is_featured"`
	IsActive      *bool         `json:"is_active"`
}

// CategoryInput 后台分类写入参数
type CategoryInput struct {
	ParentID    *uint  `json:"parent_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

// NewCatalogService 创建商品目录服务
func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, cacheTTL time.Duration) *CatalogService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cacheTTL:     cacheTTL,
	}
}

// ListProducts 前台商品列表，仅上架商品
func (s *CatalogService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = true
	filter.Search = strings.TrimSpace(filter.Search)
	return s.productRepo.List(filter)
}

// GetProduct 前台商品详情
func (s *CatalogService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// FeaturedProducts 推荐商品，可按分类过滤并限制数量
func (s *CatalogService) FeaturedProducts(ctx context.Context, categoryID uint, limit int) ([]models.Product, error) {
	if limit < 0 {
		limit = 0
	}
	version := s.cacheVersion(ctx)
	key := cache.VersionedKey(constants.CacheNamespaceCatalog, version, "featured", fmt.Sprint(categoryID), fmt.Sprint(limit))
	return cache.Remember(ctx, key, s.cacheTTL, func() ([]models.Product, error) {
		return s.productRepo.ListFeatured(categoryID, limit)
	})
}

// Categories 启用的分类，parentID 为空时返回顶级分类
func (s *CatalogService) Categories(ctx context.Context, parentID *uint) ([]models.Category, error) {
	parentKey := "root"
	if parentID != nil && *parentID > 0 {
		parentKey = fmt.Sprint(*parentID)
	}
	version := s.cacheVersion(ctx)
	key := cache.VersionedKey(constants.CacheNamespaceCatalog, version, "categories", parentKey)
	return cache.Remember(ctx, key, s.cacheTTL, func() ([]models.Category, error) {
		return s.categoryRepo.ListActive(parentID)
	})
}

// ListAllProducts 后台商品列表
func (s *CatalogService) ListAllProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = false
	filter.Search = strings.TrimSpace(filter.Search)
	return s.productRepo.List(filter)
}

// CreateProduct 后台创建商品
func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	product := &models.Product{}
	if err := s.applyProductInput(product, input); err != nil {
		return nil, err
	}
	active := product.IsActive
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	if !active {
		product.IsActive = false
		if err := s.productRepo.Update(product); err != nil {
			return nil, err
		}
	}
	s.invalidate(ctx)
	return product, nil
}

// UpdateProduct 后台更新商品
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := s.applyProductInput(product, input); err != nil {
		return nil, err
	}
	product.Category = nil
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return product, nil
}

// DeleteProduct 后台删除商品，历史订单保留快照
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	deleted, err := s.productRepo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProductNotFound
	}
	s.invalidate(ctx)
	return nil
}

// ListAllCategories 后台分类列表
func (s *CatalogService) ListAllCategories() ([]models.Category, error) {
	return s.categoryRepo.ListAll()
}

// CreateCategory 后台创建分类
func (s *CatalogService) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	category := &models.Category{IsActive: true}
	if err := s.applyCategoryInput(category, input); err != nil {
		return nil, err
	}
	active := category.IsActive
	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	if !active {
		category.IsActive = false
		if err := s.categoryRepo.Update(category); err != nil {
			return nil, err
		}
	}
	s.invalidate(ctx)
	return category, nil
}

// UpdateCategory 后台更新分类
func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	if input.ParentID != nil && *input.ParentID == id {
		return nil, ErrCategoryInvalid
	}
	if err := s.applyCategoryInput(category, input); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Update(category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

// DeleteCategory 后台删除分类，仍有商品时拒绝
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	counts, err := s.productRepo.CountByCategory()
	if err != nil {
		return err
	}
	if counts[id] > 0 {
		return ErrCategoryInUse
	}
	deleted, err := s.categoryRepo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCategoryNotFound
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) applyProductInput(product *models.Product, input ProductInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Price.IsNegative() || input.Stock < 0 {
		return ErrProductInvalid
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	product.CategoryID = input.CategoryID
	product.Name = name
	product.Description = strings.TrimSpace(input.Description)
	product.Price = input.Price
	product.OriginalPrice = input.OriginalPrice
	product.ImageURL = strings.TrimSpace(input.ImageURL)
	product.Images = models.StringArray(input.Images)
	product.Tags = models.StringArray(input.Tags)
	product.Stock = input.Stock
	product.IsFeatured = input.IsFeatured
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	} else if product.ID == 0 {
		product.IsActive = true
	}
	return nil
}

func (s *CatalogService) applyCategoryInput(category *models.Category, input CategoryInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrCategoryInvalid
	}
	if input.ParentID != nil && *input.ParentID > 0 {
		parent, err := s.categoryRepo.GetByID(*input.ParentID)
		if err != nil {
			return err
		}
		if parent == nil {
			return ErrCategoryNotFound
		}
		parentID := *input.ParentID
		category.ParentID = &parentID
	} else {
		category.ParentID = nil
	}
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = buildSlug(name)
	}
	if slug == "" {
		return ErrCategoryInvalid
	}
	category.Name = name
	category.Slug = slug
	category.Description = strings.TrimSpace(input.Description)
	category.ImageURL = strings.TrimSpace(input.ImageURL)
	category.SortOrder = input.SortOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	return nil
}

func (s *CatalogService) cacheVersion(ctx context.Context) int64 {
	version, err := cache.NamespaceVersion(ctx, constants.CacheNamespaceCatalog)
	if err != nil {
		logger.Warnw("catalog_cache_version_failed", "error", err)
		return 0
	}
	return version
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if err := cache.BumpNamespace(ctx, constants.CacheNamespaceCatalog); err != nil {
		logger.Warnw("catalog_cache_invalidate_failed", "error", err)
	}
}

func buildSlug(name string) string {
	slug := slugInvalidChars.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
