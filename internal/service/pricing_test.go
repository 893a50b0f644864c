package service

import (
	"errors"
	"testing"

	"github.com/elitebuy/internal/config"

	"github.com/shopspring/decimal"
)

func TestPricingComputeTotals(t *testing.T) {
	cases := []struct {
		subtotal string
		tax      string
		final    string
	}{
		{"250.00", "20.00", "285.00"},
		{"0", "0.00", "15.00"},
		{"19.99", "1.60", "36.59"},
		{"33.33", "2.67", "51.00"},
	}
	pricing := DefaultPricing()
	for _, tc := range cases {
		totals := pricing.ComputeTotals(decimal.RequireFromString(tc.subtotal))
		if totals.Tax.String() != tc.tax || totals.FinalTotal.String() != tc.final {
			t.Fatalf("subtotal %s: want tax %s final %s, got %s %s", tc.subtotal, tc.tax, tc.final, totals.Tax.String(), totals.FinalTotal.String())
		}
		if totals.DeliveryFee.String() != "15.00" {
			t.Fatalf("delivery fee want 15.00 got %s", totals.DeliveryFee.String())
		}
	}
}

func TestNewPricingFromConfig(t *testing.T) {
	pricing, err := NewPricing(config.CheckoutConfig{DeliveryFee: "20", TaxRate: "0.1"})
	if err != nil {
		t.Fatalf("new pricing failed: %v", err)
	}
	totals := pricing.ComputeTotals(decimal.RequireFromString("100"))
	if totals.FinalTotal.String() != "130.00" {
		t.Fatalf("final total want 130.00 got %s", totals.FinalTotal.String())
	}

	if _, err := NewPricing(config.CheckoutConfig{TaxRate: "1.5"}); !errors.Is(err, ErrCheckoutConfigInvalid) {
		t.Fatalf("want ErrCheckoutConfigInvalid got %v", err)
	}
	if _, err := NewPricing(config.CheckoutConfig{DeliveryFee: "abc"}); !errors.Is(err, ErrCheckoutConfigInvalid) {
		t.Fatalf("want ErrCheckoutConfigInvalid got %v", err)
	}
}
