package service

import (
	"fmt"
	"strings"

	"github.com/elitebuy/internal/cart"
	"github.com/elitebuy/internal/constants"
	"github.com/elitebuy/internal/logger"
	"github.com/elitebuy/internal/models"
	"github.com/elitebuy/internal/repository"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo repository.OrderRepository
	pricing   Pricing
	locks     *keyedMutex
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	UserID        uint
	Lines         []cart.Line
	Delivery      DeliveryInfo
	PaymentMethod string
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, pricing Pricing) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		pricing:   pricing,
		locks:     newKeyedMutex(),
	}
}

// ComputeTotals 计算结算金额
func (s *OrderService) ComputeTotals(c *cart.Cart) CheckoutTotals {
	return s.pricing.ComputeTotals(c.Total())
}

// CreateOrder 创建订单，订单与订单项原子写入
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if len(input.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	if !isValidPaymentMethod(input.PaymentMethod) {
		return nil, ErrPaymentMethodInvalid
	}

	items := make([]models.OrderItem, 0, len(input.Lines))
	total := models.Money{}
	for _, line := range input.Lines {
		if line.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		price := models.NewMoneyFromDecimal(line.Product.Price)
		subtotal := models.NewMoneyFromDecimal(line.Subtotal())
		items = append(items, models.OrderItem{
			ProductID:    line.Product.ID,
			ProductName:  line.Product.Name,
			ProductPrice: price,
			ProductImage: line.Product.Image,
			Quantity:     line.Quantity,
			Subtotal:     subtotal,
		})
		total = total.Add(subtotal)
	}

	order := &models.Order{
		UserID:          input.UserID,
		TotalAmount:     total,
		Status:          constants.OrderStatusPending,
		PaymentMethod:   input.PaymentMethod,
		DeliveryName:    strings.TrimSpace(input.Delivery.FullName),
		DeliveryAddress: strings.TrimSpace(input.Delivery.Address),
		DeliveryCity:    strings.TrimSpace(input.Delivery.City),
		DeliveryState:   strings.TrimSpace(input.Delivery.State),
		DeliveryZip:     strings.TrimSpace(input.Delivery.ZipCode),
		DeliveryPhone:   strings.TrimSpace(input.Delivery.Phone),
		DeliveryNotes:   strings.TrimSpace(input.Delivery.Notes),
	}
	if err := s.orderRepo.CreateWithItems(order, items); err != nil {
		logger.Errorw("order_create_failed", "user_id", input.UserID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
	}
	order.Items = items
	logger.Infow("order_created",
		"order_id", order.ID,
		"user_id", order.UserID,
		"total_amount", order.TotalAmount.String(),
		"payment_method", order.PaymentMethod,
	)
	return order, nil
}

// GetOrder 获取用户自己的订单
func (s *OrderService) GetOrder(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders 用户订单列表，最新在前
func (s *OrderService) ListOrders(userID uint) ([]models.Order, error) {
	return s.orderRepo.ListByUser(userID)
}

// ListAll 后台订单列表
func (s *OrderService) ListAll(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	return s.orderRepo.ListAdmin(filter)
}

// UpdateStatus 后台推进订单状态
func (s *OrderService) UpdateStatus(orderID uint, status string) (*models.Order, error) {
	target := strings.ToLower(strings.TrimSpace(status))
	if !isValidOrderStatus(target) {
		return nil, ErrInvalidOrderStatus
	}

	unlock := s.locks.Lock(orderLockKey(orderID))
	defer unlock()

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == target {
		return order, nil
	}
	if !canTransitionOrderStatus(order.Status, target) {
		return nil, ErrInvalidOrderStatus
	}
	if err := s.orderRepo.UpdateStatus(orderID, target); err != nil {
		return nil, err
	}
	logger.Infow("order_status_updated", "order_id", orderID, "from", order.Status, "to", target)
	order.Status = target
	return order, nil
}

func orderLockKey(orderID uint) string {
	return fmt.Sprintf("order:%d", orderID)
}
