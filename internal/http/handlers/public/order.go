package public

import (
	"github.com/elitebuy/internal/http/response"
	"github.com/elitebuy/internal/service"

	"github.com/gin-gonic/gin"
)

// ListMyOrders 获取当前用户订单，最新在前
func (h *Handler) ListMyOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orders, err := h.OrderService.ListOrders(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, orders)
}

// GetMyOrder 获取当前用户的订单详情
func (h *Handler) GetMyOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrder(uid, orderID)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
		}, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, order)
}
