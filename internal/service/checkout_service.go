package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elitebuy/internal/constants"
	"github.com/elitebuy/internal/logger"
	"github.com/elitebuy/internal/models"
	"github.com/elitebuy/internal/queue"
)

// 结算结果提示文案
const (
	MsgPaymentSuccessful  = "Payment successful! Your order has been confirmed."
	MsgCashOnDelivery     = "Your order has been placed! You will pay upon delivery."
	MsgMobileMoneyFailed  = "Your mobile money payment was not successful. Please try again."
	MsgCardDeclined       = "Your card payment was declined. Please check your card details and try again."
	MsgCardProcessing     = "Please wait while we process your card payment..."
	MsgMobileMoneyPending = "Your payment is being processed. Check your order for the final status."
	MsgMobileMoneyCancel  = "Mobile money payment was cancelled."
	MsgOrderFailed        = "Failed to place order"
)

// SettlementEnqueuer 异步结算任务投递
type SettlementEnqueuer interface {
	EnqueuePaymentSettle(payload queue.PaymentSettlePayload, delay time.Duration) error
}

// CheckoutInput 结算请求
type CheckoutInput struct {
	PaymentMethod string       `json:"payment_method"`
	Delivery      DeliveryInfo `json:"delivery"`
	Payment       PaymentInput `json:"payment"`
}

// CheckoutQuote 结算预览
type CheckoutQuote struct {
	Cart   *CartView      `json:"cart"`
	Totals CheckoutTotals `json:"totals"`
}

// CheckoutResult 结算结果
type CheckoutResult struct {
	Order   *models.Order   `json:"order"`
	Payment *models.Payment `json:"payment"`
	Totals  CheckoutTotals  `json:"totals"`
	Outcome string          `json:"outcome"`
	Message string          `json:"message"`
}

// CheckoutService 结算编排：校验 -> 下单 -> 建立支付 -> 按支付方式处理 -> 清空购物车
type CheckoutService struct {
	carts    *CartService
	orders   *OrderService
	payments *PaymentService
	enqueuer SettlementEnqueuer
	async    bool
	locks    *keyedMutex
}

// NewCheckoutService 创建结算服务，enqueuer 非空且 async 为 true 时走异步结算
func NewCheckoutService(carts *CartService, orders *OrderService, payments *PaymentService, enqueuer SettlementEnqueuer, async bool) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		orders:   orders,
		payments: payments,
		enqueuer: enqueuer,
		async:    async && enqueuer != nil,
		locks:    newKeyedMutex(),
	}
}

// Quote 结算预览
func (s *CheckoutService) Quote(userID uint) (*CheckoutQuote, error) {
	c, err := s.carts.Load(userID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	return &CheckoutQuote{
		Cart:   buildCartView(userID, c),
		Totals: s.orders.ComputeTotals(c),
	}, nil
}

// Checkout 下单并处理支付
func (s *CheckoutService) Checkout(ctx context.Context, userID uint, input CheckoutInput) (*CheckoutResult, error) {
	unlock := s.locks.Lock(fmt.Sprintf("checkout:%d", userID))
	defer unlock()

	c, err := s.carts.Load(userID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if result := ValidateCheckout(input.PaymentMethod, input.Delivery, input.Payment); !result.Valid {
		return nil, newValidationError(result.Message)
	}

	totals := s.orders.ComputeTotals(c)
	order, err := s.orders.CreateOrder(CreateOrderInput{
		UserID:        userID,
		Lines:         c.Lines(),
		Delivery:      input.Delivery,
		PaymentMethod: input.PaymentMethod,
	})
	if err != nil {
		return nil, err
	}

	details := buildPaymentDetails(order.ID, input, s.payments.Simulator().Now())
	payment, err := s.payments.CreatePayment(order.ID, input.PaymentMethod, totals.FinalTotal, details)
	if err != nil {
		logger.ForUser(userID).Errorw("checkout_payment_create_failed", "order_id", order.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
	}
	order.Payment = payment

	result := &CheckoutResult{
		Order:   order,
		Payment: payment,
		Totals:  totals,
	}
	switch input.PaymentMethod {
	case constants.PaymentMethodCashOnDelivery:
		result.Outcome = constants.CheckoutOutcomeSuccess
		result.Message = MsgCashOnDelivery
		s.clearCart(userID, order.ID)
	case constants.PaymentMethodMobileMoney:
		result.Outcome = constants.CheckoutOutcomeAwaitingConfirmation
		result.Message = fmt.Sprintf(
			"A payment request of GH₵%s has been sent to %s (%s). Please check your phone and approve the payment.",
			totals.FinalTotal.String(),
			input.Payment.PhoneNumber,
			NormalizeMobileNetwork(input.Payment.MobileNetwork),
		)
	case constants.PaymentMethodCard:
		if err := s.settle(ctx, userID, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ConfirmMobileMoney 用户在手机上确认或取消移动支付
func (s *CheckoutService) ConfirmMobileMoney(ctx context.Context, userID, paymentID uint, approve bool) (*CheckoutResult, error) {
	unlock := s.locks.Lock(fmt.Sprintf("confirm:%d", paymentID))
	defer unlock()

	payment, err := s.payments.GetPayment(paymentID)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.GetOrder(userID, payment.OrderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.Method != constants.PaymentMethodMobileMoney {
		return nil, ErrPaymentNotConfirmable
	}
	if payment.Status != constants.PaymentStatusPending {
		return nil, ErrPaymentNotPending
	}
	if payment.ApprovedAt != nil {
		return nil, ErrPaymentNotConfirmable
	}

	result := &CheckoutResult{
		Order:   order,
		Payment: payment,
		Totals:  s.orders.pricing.ComputeTotals(order.TotalAmount.Decimal),
	}
	if !approve {
		updated, err := s.payments.UpdatePaymentStatus(paymentID, constants.PaymentStatusFailed, "")
		if err != nil {
			return nil, err
		}
		result.Payment = updated
		result.Order.Payment = updated
		result.Outcome = constants.CheckoutOutcomeFailed
		result.Message = MsgMobileMoneyCancel
		return result, nil
	}
	if err := s.payments.MarkApproved(paymentID); err != nil {
		return nil, err
	}
	if err := s.settle(ctx, userID, result); err != nil {
		return nil, err
	}
	return result, nil
}

// CompleteAsyncSettlement worker 延迟到期后抽取结果，成功时清空购物车
func (s *CheckoutService) CompleteAsyncSettlement(paymentID uint) (*models.Payment, error) {
	payment, err := s.payments.SettleNow(paymentID)
	if err != nil {
		return payment, err
	}
	if payment != nil && payment.Status == constants.PaymentStatusCompleted {
		order, err := s.orders.orderRepo.GetByID(payment.OrderID)
		if err != nil {
			return payment, err
		}
		if order != nil {
			s.clearCart(order.UserID, order.ID)
		}
	}
	return payment, nil
}

func (s *CheckoutService) settle(ctx context.Context, userID uint, result *CheckoutResult) error {
	payment := result.Payment
	if s.async {
		profile, _ := s.payments.Simulator().Profile(payment.Method)
		err := s.enqueuer.EnqueuePaymentSettle(queue.PaymentSettlePayload{
			PaymentID: payment.ID,
			OrderID:   payment.OrderID,
			Method:    payment.Method,
		}, profile.Delay)
		if err == nil {
			result.Outcome = constants.CheckoutOutcomeProcessing
			result.Message = processingMessage(payment.Method)
			return nil
		}
		logger.ForPayment(payment.ID, payment.OrderID).Warnw("checkout_settlement_enqueue_failed", "error", err)
	}

	// 支付已发起，请求断开不影响结算结果
	updated, err := s.payments.SimulateSettlement(context.WithoutCancel(ctx), payment.ID)
	if errors.Is(err, ErrPaymentNotPending) {
		return ErrPaymentNotPending
	}
	if err != nil {
		logger.ForPayment(payment.ID, payment.OrderID).Errorw("checkout_settlement_failed", "error", err)
		return fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
	}
	if updated != nil {
		result.Payment = updated
		result.Order.Payment = updated
	}
	if updated != nil && updated.Status == constants.PaymentStatusCompleted {
		result.Order.Status = constants.OrderStatusProcessing
		result.Outcome = constants.CheckoutOutcomeSuccess
		result.Message = MsgPaymentSuccessful
		s.clearCart(userID, result.Order.ID)
		return nil
	}
	result.Outcome = constants.CheckoutOutcomeFailed
	result.Message = failureMessage(payment.Method)
	return nil
}

func (s *CheckoutService) clearCart(userID, orderID uint) {
	if err := s.carts.Clear(userID); err != nil {
		logger.ForUser(userID).Warnw("checkout_cart_clear_failed", "order_id", orderID, "error", err)
	}
}

func buildPaymentDetails(orderID uint, input CheckoutInput, now time.Time) models.JSON {
	details := models.JSON{
		"reference": fmt.Sprintf("TXN_%d_%d", now.UnixMilli(), orderID),
	}
	switch input.PaymentMethod {
	case constants.PaymentMethodMobileMoney:
		details["phone_number"] = input.Payment.PhoneNumber
		details["mobile_network"] = NormalizeMobileNetwork(input.Payment.MobileNetwork)
	case constants.PaymentMethodCard:
		number := StripCardNumber(input.Payment.CardNumber)
		if len(number) >= 4 {
			details["card_last_four"] = number[len(number)-4:]
		}
		if input.Payment.CardholderName != "" {
			details["cardholder_name"] = input.Payment.CardholderName
		}
	}
	return details
}

func processingMessage(method string) string {
	if method == constants.PaymentMethodCard {
		return MsgCardProcessing
	}
	return MsgMobileMoneyPending
}

func failureMessage(method string) string {
	if method == constants.PaymentMethodCard {
		return MsgCardDeclined
	}
	return MsgMobileMoneyFailed
}
