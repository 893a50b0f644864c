package service

import (
	"strings"

	"github.com/elitebuy/internal/constants"
)

// pending -> processing 由支付完成驱动，其余由后台推进
var orderStatusTransitions = map[string][]string{
	constants.OrderStatusPending:    {constants.OrderStatusProcessing, constants.OrderStatusCancelled},
	constants.OrderStatusProcessing: {constants.OrderStatusShipped, constants.OrderStatusCancelled},
	constants.OrderStatusShipped:    {constants.OrderStatusDelivered},
	constants.OrderStatusDelivered:  {},
	constants.OrderStatusCancelled:  {},
}

func isValidOrderStatus(status string) bool {
	_, ok := orderStatusTransitions[status]
	return ok
}

func canTransitionOrderStatus(from, to string) bool {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	for _, next := range orderStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func isValidPaymentMethod(method string) bool {
	switch method {
	case constants.PaymentMethodMobileMoney, constants.PaymentMethodCard, constants.PaymentMethodCashOnDelivery:
		return true
	default:
		return false
	}
}
