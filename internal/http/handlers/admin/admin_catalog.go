package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/elitebuy/internal/http/handlers/shared"
	"github.com/elitebuy/internal/http/response"
	"github.com/elitebuy/internal/repository"
	"github.com/elitebuy/internal/service"

	"github.com/gin-gonic/gin"
)

var catalogAdminErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrProductInvalid, Code: response.CodeBadRequest, Key: "error.product_invalid"},
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
	{Target: service.ErrCategoryExists, Code: response.CodeConflict, Key: "error.category_exists"},
	{Target: service.ErrCategoryInvalid, Code: response.CodeBadRequest, Key: "error.category_invalid"},
	{Target: service.ErrCategoryInUse, Code: response.CodeConflict, Key: "error.category_in_use"},
}

// GetAdminProducts 后台商品列表，包含下架商品
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)

	var categoryID uint
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		categoryID = uint(value)
	}

	products, total, err := h.CatalogService.ListAllProducts(repository.ProductListFilter{
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

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req service.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.CatalogService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req service.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.CatalogService.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetAdminCategories 后台分类列表
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CatalogService.ListAllCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req service.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CatalogService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req service.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CatalogService.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, catalogAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
