package queue

import (
	"encoding/json"

	"github.com/elitebuy/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPaymentSimulateSettle 模拟支付延迟结算任务
	TaskPaymentSimulateSettle = constants.TaskPaymentSimulateSettle
)

// PaymentSettlePayload 模拟结算任务载荷
type PaymentSettlePayload struct {
	PaymentID uint   `json:"payment_id"`
	OrderID   uint   `json:"order_id"`
	Method    string `json:"method"`
}

// NewPaymentSettleTask 创建模拟结算任务
func NewPaymentSettleTask(payload PaymentSettlePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPaymentSimulateSettle, body), nil
}

// ParsePaymentSettlePayload 解析模拟结算任务载荷
func ParsePaymentSettlePayload(task *asynq.Task) (PaymentSettlePayload, error) {
	var payload PaymentSettlePayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
