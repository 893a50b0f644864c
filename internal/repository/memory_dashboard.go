package repository

import (
	"sort"
	"time"

	"github.com/elitebuy/internal/constants"
	"github.com/elitebuy/internal/models"
)

type memoryDashboardRepository struct{ b *MemoryBackend }

func (r *memoryDashboardRepository) GetOverview() (DashboardOverviewRow, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	result := DashboardOverviewRow{
		TotalOrders:   int64(len(r.b.orders)),
		TotalUsers:    int64(len(r.b.users)),
		TotalProducts: int64(len(r.b.products)),
	}
	for _, order := range r.b.orders {
		if order.Status == constants.OrderStatusCancelled {
			continue
		}
		result.TotalRevenue += order.TotalAmount.InexactFloat64()
	}
	return result, nil
}

func (r *memoryDashboardRepository) GetPeriodStats(startAt, endAt time.Time) (DashboardPeriodRow, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	inWindow := func(t time.Time) bool {
		return !t.Before(startAt) && t.Before(endAt)
	}
	result := DashboardPeriodRow{}
	for _, order := range r.b.orders {
		if !inWindow(order.CreatedAt) {
			continue
		}
		result.Orders++
		if order.Status != constants.OrderStatusCancelled {
			result.Revenue += order.TotalAmount.InexactFloat64()
		}
	}
	for _, user := range r.b.users {
		if inWindow(user.CreatedAt) {
			result.NewUsers++
		}
	}
	return result, nil
}

func (r *memoryDashboardRepository) GetRevenueTrend(startAt time.Time) ([]DashboardRevenueTrendRow, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	byMonth := make(map[string]*DashboardRevenueTrendRow)
	for _, order := range r.b.orders {
		if order.CreatedAt.Before(startAt) || order.Status == constants.OrderStatusCancelled {
			continue
		}
		month := order.CreatedAt.Format("2006-01")
		row, ok := byMonth[month]
		if !ok {
			row = &DashboardRevenueTrendRow{Month: month}
			byMonth[month] = row
		}
		row.Orders++
		row.Revenue += order.TotalAmount.InexactFloat64()
	}
	rows := make([]DashboardRevenueTrendRow, 0, len(byMonth))
	for _, row := range byMonth {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
	return rows, nil
}

func (r *memoryDashboardRepository) GetStatusBreakdown() (map[string]int64, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	result := make(map[string]int64)
	for _, order := range r.b.orders {
		result[order.Status]++
	}
	return result, nil
}

func (r *memoryDashboardRepository) GetTopCategories(limit int) ([]DashboardCategoryRankingRow, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	rows := make([]DashboardCategoryRankingRow, 0, len(r.b.categories))
	for _, category := range r.b.categories {
		row := DashboardCategoryRankingRow{CategoryID: category.ID, Name: category.Name}
		for _, product := range r.b.products {
			if product.CategoryID == category.ID {
				row.ProductCount++
			}
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ProductCount == rows[j].ProductCount {
			return rows[i].CategoryID < rows[j].CategoryID
		}
		return rows[i].ProductCount > rows[j].ProductCount
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *memoryDashboardRepository) GetRecentOrders(limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 5
	}
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	orders := make([]models.Order, 0, limit)
	for i := len(r.b.orders) - 1; i >= 0 && len(orders) < limit; i-- {
		orders = append(orders, r.b.orders[i])
	}
	return orders, nil
}
