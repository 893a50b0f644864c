package public

import (
	"github.com/elitebuy/internal/http/response"
	"github.com/elitebuy/internal/service"

	"github.com/gin-gonic/gin"
)

// ListAddresses 获取收货地址，默认地址在前
func (h *Handler) ListAddresses(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	addresses, err := h.AddressService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, addresses)
}

// CreateAddress 新增收货地址
func (h *Handler) CreateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req service.AddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	address, err := h.AddressService.Create(uid, req)
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, address)
}

// UpdateAddress 更新收货地址
func (h *Handler) UpdateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req service.AddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	address, err := h.AddressService.Update(uid, addressID, req)
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, address)
}

// DeleteAddress 删除收货地址
func (h *Handler) DeleteAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.AddressService.Delete(uid, addressID); err != nil {
		respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// SetDefaultAddress 设为默认地址
func (h *Handler) SetDefaultAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.AddressService.SetDefault(uid, addressID); err != nil {
		respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"updated": true})
}
