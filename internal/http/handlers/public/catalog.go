package public

import (
	"strconv"
	"strings"

	handlershared "github.com/elitebuy/internal/http/handlers/shared"
	"github.com/elitebuy/internal/http/response"
	"github.com/elitebuy/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetProducts 获取上架商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)

	categoryID, ok := parseOptionalUintQuery(c, "category_id")
	if !ok {
		return
	}

	products, total, err := h.CatalogService.ListProducts(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: categoryID,
		Search:     strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, products, handlershared.BuildPagination(page, pageSize, total))
}

// GetFeaturedProducts 获取推荐商品
func (h *Handler) GetFeaturedProducts(c *gin.Context) {
	categoryID, ok := parseOptionalUintQuery(c, "category_id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	products, err := h.CatalogService.FeaturedProducts(c.Request.Context(), categoryID, limit)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, products)
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	product, err := h.CatalogService.GetProduct(id)
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, product)
}

// GetCategories 获取启用的分类，parent_id 缺省时返回顶级分类
func (h *Handler) GetCategories(c *gin.Context) {
	var parentID *uint
	if raw := strings.TrimSpace(c.Query("parent_id")); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		id := uint(value)
		parentID = &id
	}

	categories, err := h.CatalogService.Categories(c.Request.Context(), parentID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, categories)
}

func parseOptionalUintQuery(c *gin.Context, key string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return 0, false
	}
	return uint(value), true
}
