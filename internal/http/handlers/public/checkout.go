package public

import (
	"github.com/elitebuy/internal/http/response"
	"github.com/elitebuy/internal/service"

	"github.com/gin-gonic/gin"
)

// ConfirmPaymentRequest 移动支付确认请求
type ConfirmPaymentRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// QuoteCheckout 结算预览
func (h *Handler) QuoteCheckout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	quote, err := h.CheckoutService.Quote(uid)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, quote)
}

// Checkout 提交订单并按支付方式处理
// 模拟支付失败时仍返回成功响应，由 outcome 字段区分结果
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req service.CheckoutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.CheckoutService.Checkout(c.Request.Context(), uid, req)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.SuccessWithMsg(c, result.Message, result)
}

// ConfirmPayment 确认或取消待确认的移动支付
func (h *Handler) ConfirmPayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	paymentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.CheckoutService.ConfirmMobileMoney(c.Request.Context(), uid, paymentID, *req.Approve)
	if err != nil {
		respondWithMappedError(c, err, paymentConfirmErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.SuccessWithMsg(c, result.Message, result)
}
