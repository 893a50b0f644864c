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

// AdminUpdateOrderStatusRequest 管理端更新订单状态请求
type AdminUpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

var orderAdminErrorRules = []mappedHandlerError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrInvalidOrderStatus, Code: response.CodeBadRequest, Key: "error.order_status_invalid"},
}

// AdminListOrders 管理端订单列表
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)

	var userID uint
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		userID = uint(value)
	}

	orders, total, err := h.OrderService.ListAll(repository.OrderListFilter{
		Page:          page,
		PageSize:      pageSize,
		UserID:        userID,
		Status:        c.Query("status"),
		PaymentMethod: strings.TrimSpace(c.Query("payment_method")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, orders, handlershared.BuildPagination(page, pageSize, total))
}

// AdminUpdateOrderStatus 管理端更新订单状态
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req AdminUpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.UpdateStatus(orderID, req.Status)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	requestLog(c).Infow("admin_order_status_updated", "order_id", orderID, "status", order.Status)
	response.Success(c, order)
}
