package public

import (
	"github.com/elitebuy/internal/http/response"

	"github.com/gin-gonic/gin"
)

// WishlistRequest 收藏请求
type WishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist 获取收藏列表
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	items, err := h.WishlistService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, items)
}

// AddWishlistItem 加入收藏
func (h *Handler) AddWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.WishlistService.Add(uid, req.ProductID)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, item)
}

// RemoveWishlistItem 取消收藏
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		return
	}
	if err := h.WishlistService.Remove(uid, productID); err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"removed": true})
}

// CheckWishlistItem 查询商品是否已收藏
func (h *Handler) CheckWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		return
	}
	exists, err := h.WishlistService.Contains(uid, productID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"in_wishlist": exists})
}
