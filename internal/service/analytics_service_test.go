package service

import (
	"context"
	"testing"
	"time"

	"github.com/elitebuy/internal/constants"
)

func TestGrowthPercent(t *testing.T) {
	cases := []struct {
		current, previous float64
		want              string
	}{
		{150, 100, "50.00"},
		{50, 100, "-50.00"},
		{10, 0, "100.00"},
		{0, 0, "0.00"},
	}
	for _, tc := range cases {
		if got := formatPercentValue(growthPercent(tc.current, tc.previous)); got != tc.want {
			t.Fatalf("growth(%v, %v) want %s got %s", tc.current, tc.previous, tc.want, got)
		}
	}
}

func TestAnalyticsServiceExcludesCancelledRevenue(t *testing.T) {
	env := newCheckoutTestEnv(t, envOption{})
	input := cardInput()
	input.PaymentMethod = constants.PaymentMethodCashOnDelivery

	env.fillCart(t)
	kept, err := env.checkout.Checkout(context.Background(), env.user.ID, input)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if _, err := env.carts.AddItem(env.user.ID, env.case_.ID, 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	cancelled, err := env.checkout.Checkout(context.Background(), env.user.ID, input)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if _, err := env.orders.UpdateStatus(cancelled.Order.ID, constants.OrderStatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	svc := NewAnalyticsService(env.store.Dashboard, time.Minute)
	result, err := svc.GetAnalytics(context.Background(), true)
	if err != nil {
		t.Fatalf("analytics failed: %v", err)
	}
	if result.TotalRevenue != kept.Order.TotalAmount.String() {
		t.Fatalf("revenue want %s got %s", kept.Order.TotalAmount.String(), result.TotalRevenue)
	}
	if result.TotalOrders != 2 || result.TotalUsers != 1 || result.TotalProducts != 2 {
		t.Fatalf("unexpected totals: %+v", result)
	}
	if result.OrderStatusBreakdown[constants.OrderStatusCancelled] != 1 || result.OrderStatusBreakdown[constants.OrderStatusPending] != 1 {
		t.Fatalf("unexpected breakdown: %+v", result.OrderStatusBreakdown)
	}
	if len(result.RecentOrders) != 2 || result.RecentOrders[0].ID != cancelled.Order.ID {
		t.Fatalf("recent orders should be newest first")
	}
	if len(result.TopCategories) != 1 || result.TopCategories[0].Count != 2 {
		t.Fatalf("unexpected top categories: %+v", result.TopCategories)
	}
}
