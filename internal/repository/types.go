package repository

import (
	"time"

	"github.com/elitebuy/internal/models"

	"github.com/shopspring/decimal"
)

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page       int
	PageSize   int
	CategoryID uint
	Search     string
	OnlyActive bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page          int
	PageSize      int
	UserID        uint
	Status        string
	PaymentMethod string
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Search   string
	Role     string
}

// SettleInput 支付终态写入参数
type SettleInput struct {
	PaymentID     uint
	Status        string
	TransactionID string
	At            time.Time
}

// SettleResult 支付终态写入结果
type SettleResult struct {
	Payment       *models.Payment
	Applied       bool // false 表示支付已不在 pending 状态
	OrderAdvanced bool
}

func moneyFromFloat(v float64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromFloat(v))
}
