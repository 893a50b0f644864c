package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/elitebuy/internal/constants"
	"github.com/elitebuy/internal/logger"
	"github.com/elitebuy/internal/models"
	"github.com/elitebuy/internal/repository"
)

// PaymentService 支付服务
// 状态只允许 pending -> completed / failed，终态不可再变
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	orders      *OrderService
	simulator   *PaymentSimulator
}

// NewPaymentService 创建支付服务
func NewPaymentService(paymentRepo repository.PaymentRepository, orderRepo repository.OrderRepository, orders *OrderService, simulator *PaymentSimulator) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		orders:      orders,
		simulator:   simulator,
	}
}

// Simulator 支付模拟器
func (s *PaymentService) Simulator() *PaymentSimulator {
	return s.simulator
}

// CreatePayment 为已存在的订单创建待支付记录
func (s *PaymentService) CreatePayment(orderID uint, method string, amount models.Money, details models.JSON) (*models.Payment, error) {
	if !isValidPaymentMethod(method) {
		return nil, ErrPaymentMethodInvalid
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if details == nil {
		details = models.JSON{}
	}
	payment := &models.Payment{
		OrderID: order.ID,
		Method:  method,
		Amount:  amount,
		Status:  constants.PaymentStatusPending,
		Details: details,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}
	logger.ForPayment(payment.ID, order.ID).Infow("payment_created",
		"method", method,
		"amount", amount.String(),
	)
	return payment, nil
}

// GetPayment 获取支付记录
func (s *PaymentService) GetPayment(paymentID uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// UpdatePaymentStatus 写入支付终态，完成时订单进入 processing
// 已经是终态的支付返回 ErrPaymentNotPending
func (s *PaymentService) UpdatePaymentStatus(paymentID uint, status, transactionID string) (*models.Payment, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	payment, err := s.GetPayment(paymentID)
	if err != nil {
		return nil, err
	}
	switch status {
	case constants.PaymentStatusPending:
		if payment.Status != constants.PaymentStatusPending {
			return nil, ErrPaymentNotPending
		}
		return payment, nil
	case constants.PaymentStatusCompleted, constants.PaymentStatusFailed:
	default:
		return nil, ErrPaymentStatusInvalid
	}

	unlock := s.orders.locks.Lock(orderLockKey(payment.OrderID))
	defer unlock()

	result, err := s.paymentRepo.Settle(repository.SettleInput{
		PaymentID:     paymentID,
		Status:        status,
		TransactionID: transactionID,
		At:            s.simulator.Now(),
	})
	if err != nil {
		return nil, err
	}
	if !result.Applied {
		logger.ForPayment(paymentID, payment.OrderID).Warnw("payment_settle_skipped_not_pending",
			"requested_status", status,
		)
		return result.Payment, ErrPaymentNotPending
	}
	logger.ForPayment(paymentID, result.Payment.OrderID).Infow("payment_settled",
		"status", status,
		"transaction_id", transactionID,
		"order_advanced", result.OrderAdvanced,
	)
	return result.Payment, nil
}

// MarkApproved 记录移动支付已被用户确认，之后不再接受取消
func (s *PaymentService) MarkApproved(paymentID uint) error {
	applied, err := s.paymentRepo.MarkApproved(paymentID, s.simulator.Now())
	if err != nil {
		return err
	}
	if !applied {
		return ErrPaymentNotConfirmable
	}
	return nil
}

// SimulateSettlement 等待模拟耗时后抽取结果并写入终态
// ctx 被取消时支付记为失败并返回 ErrPaymentCanceled
func (s *PaymentService) SimulateSettlement(ctx context.Context, paymentID uint) (*models.Payment, error) {
	payment, err := s.GetPayment(paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != constants.PaymentStatusPending {
		return payment, ErrPaymentNotPending
	}
	if err := s.simulator.Wait(ctx, payment.Method); err != nil {
		if errors.Is(err, ErrPaymentMethodInvalid) {
			return nil, err
		}
		logger.ForPayment(paymentID, payment.OrderID).Warnw("payment_simulation_interrupted", "error", err)
		failed, updateErr := s.UpdatePaymentStatus(paymentID, constants.PaymentStatusFailed, "")
		if updateErr != nil && !errors.Is(updateErr, ErrPaymentNotPending) {
			return nil, updateErr
		}
		return failed, fmt.Errorf("%w: %v", ErrPaymentCanceled, err)
	}
	return s.SettleNow(paymentID)
}

// SettleNow 立即抽取模拟结果，延迟已由调用方负责
func (s *PaymentService) SettleNow(paymentID uint) (*models.Payment, error) {
	payment, err := s.GetPayment(paymentID)
	if err != nil {
		return nil, err
	}
	success, transactionID, err := s.simulator.Draw(payment.Method)
	if err != nil {
		return nil, err
	}
	if success {
		return s.UpdatePaymentStatus(paymentID, constants.PaymentStatusCompleted, transactionID)
	}
	return s.UpdatePaymentStatus(paymentID, constants.PaymentStatusFailed, "")
}
