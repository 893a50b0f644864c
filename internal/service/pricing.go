package service

import (
	"fmt"

	"github.com/elitebuy/internal/config"
	"github.com/elitebuy/internal/models"

	"github.com/shopspring/decimal"
)

// CheckoutTotals 结算金额明细
type CheckoutTotals struct {
	Subtotal    models.Money `json:"subtotal"`
	DeliveryFee models.Money `json:"delivery_fee"`
	Tax         models.Money `json:"tax"`
	FinalTotal  models.Money `json:"final_total"`
}

// Pricing 运费与税率
type Pricing struct {
	DeliveryFee decimal.Decimal
	TaxRate     decimal.Decimal
}

// DefaultPricing 固定运费 15.00，税率 8%
func DefaultPricing() Pricing {
	return Pricing{
		DeliveryFee: decimal.RequireFromString("15.00"),
		TaxRate:     decimal.RequireFromString("0.08"),
	}
}

// NewPricing 从配置解析运费与税率
func NewPricing(cfg config.CheckoutConfig) (Pricing, error) {
	pricing := DefaultPricing()
	if cfg.DeliveryFee != "" {
		fee, err := decimal.NewFromString(cfg.DeliveryFee)
		if err != nil || fee.IsNegative() {
			return Pricing{}, fmt.Errorf("%w: delivery_fee=%q", ErrCheckoutConfigInvalid, cfg.DeliveryFee)
		}
		pricing.DeliveryFee = fee
	}
	if cfg.TaxRate != "" {
		rate, err := decimal.NewFromString(cfg.TaxRate)
		if err != nil || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return Pricing{}, fmt.Errorf("%w: tax_rate=%q", ErrCheckoutConfigInvalid, cfg.TaxRate)
		}
		pricing.TaxRate = rate
	}
	return pricing, nil
}

// ComputeTotals 计算展示金额，订单只保存商品合计
func (p Pricing) ComputeTotals(subtotal decimal.Decimal) CheckoutTotals {
	tax := subtotal.Mul(p.TaxRate)
	final := subtotal.Add(p.DeliveryFee).Add(tax)
	return CheckoutTotals{
		Subtotal:    models.NewMoneyFromDecimal(subtotal),
		DeliveryFee: models.NewMoneyFromDecimal(p.DeliveryFee),
		Tax:         models.NewMoneyFromDecimal(tax),
		FinalTotal:  models.NewMoneyFromDecimal(final),
	}
}
