package worker

import (
	"context"
	"errors"

	"github.com/elitebuy/internal/logger"
	"github.com/elitebuy/internal/models"
	"github.com/elitebuy/internal/provider"
	"github.com/elitebuy/internal/queue"
	"github.com/elitebuy/internal/service"

	"github.com/hibiken/asynq"
)

// SettlementCompleter 延迟结算执行方
type SettlementCompleter interface {
	CompleteAsyncSettlement(paymentID uint) (*models.Payment, error)
}

// Consumer 异步任务消费者
type Consumer struct {
	settlements SettlementCompleter
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	if c == nil || c.CheckoutService == nil {
		return &Consumer{}
	}
	return &Consumer{settlements: c.CheckoutService}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPaymentSimulateSettle, c.handlePaymentSettle)
}

func (c *Consumer) handlePaymentSettle(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_payment_settle_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParsePaymentSettlePayload(task)
	if err != nil {
		logger.Warnw("worker_payment_settle_unmarshal_failed", "error", err)
		return err
	}
	if payload.PaymentID == 0 {
		logger.Debugw("worker_payment_settle_skip_invalid_payload", "payment_id", payload.PaymentID)
		return nil
	}
	if c.settlements == nil {
		logger.Warnw("worker_payment_settle_skip_service_nil", "payment_id", payload.PaymentID)
		return nil
	}
	log := logger.ForPayment(payload.PaymentID, payload.OrderID)
	payment, err := c.settlements.CompleteAsyncSettlement(payload.PaymentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			log.Debugw("worker_payment_settle_skip_not_found")
			return nil
		case errors.Is(err, service.ErrPaymentNotPending):
			log.Debugw("worker_payment_settle_skip_not_pending")
			return nil
		case errors.Is(err, service.ErrPaymentCanceled):
			log.Infow("worker_payment_settle_canceled")
			return nil
		default:
			log.Warnw("worker_payment_settle_failed", "error", err)
			return err
		}
	}
	if payment != nil {
		log.Infow("worker_payment_settled",
			"method", payment.Method,
			"status", payment.Status,
		)
	}
	return nil
}
