package service

import (
	"context"
	"fmt"
	"time"

	"github.com/elitebuy/internal/cache"
	"github.com/elitebuy/internal/constants"
	"github.com/elitebuy/internal/logger"
	"github.com/elitebuy/internal/models"
	"github.com/elitebuy/internal/repository"
)

const (
	analyticsTopCategories = 5
	analyticsRecentOrders  = 5
	analyticsTrendMonths   = 6
)

// AnalyticsService 后台经营数据
type AnalyticsService struct {
	repo     repository.DashboardRepository
	cacheTTL time.Duration
	now      func() time.Time
}

// AnalyticsResponse 后台首页数据
type AnalyticsResponse struct {
	TotalRevenue         string                   `json:"total_revenue"`
	TotalOrders          int64                    `json:"total_orders"`
	TotalUsers           int64                    `json:"total_users"`
	TotalProducts        int64                    `json:"total_products"`
	RevenueGrowth        string                   `json:"revenue_growth"`
	OrdersGrowth         string                   `json:"orders_growth"`
	UsersGrowth          string                   `json:"users_growth"`
	TopCategories        []AnalyticsCategoryCount `json:"top_categories"`
	RecentOrders         []models.Order           `json:"recent_orders"`
	OrderStatusBreakdown map[string]int64         `json:"order_status_breakdown"`
	RevenueTrend         []AnalyticsTrendPoint    `json:"revenue_trend"`
	GeneratedAt          string                   `json:"generated_at"`
}

// AnalyticsCategoryCount 分类商品数
type AnalyticsCategoryCount struct {
	CategoryID uint   `json:"category_id"`
	Name       string `json:"name"`
	Count      int64  `json:"count"`
}

// AnalyticsTrendPoint 月度趋势点
type AnalyticsTrendPoint struct {
	Month   string `json:"month"`
	Orders  int64  `json:"orders"`
	Revenue string `json:"revenue"`
}

// NewAnalyticsService 创建经营数据服务
func NewAnalyticsService(repo repository.DashboardRepository, cacheTTL time.Duration) *AnalyticsService {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &AnalyticsService{repo: repo, cacheTTL: cacheTTL, now: time.Now}
}

// GetAnalytics 汇总总量、环比增长、分类排行与最近订单
func (s *AnalyticsService) GetAnalytics(ctx context.Context, forceRefresh bool) (*AnalyticsResponse, error) {
	now := s.now()
	cacheKey := fmt.Sprintf("%s:overview:%s", constants.CacheNamespaceAnalytics, now.Format("2006-01-02T15"))
	if !forceRefresh {
		var cached AnalyticsResponse
		hit, err := cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			return &cached, nil
		}
		if err != nil {
			logger.Warnw("analytics_cache_get_failed", "error", err)
		}
	}

	overview, err := s.repo.GetOverview()
	if err != nil {
		return nil, err
	}
	currentStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	previousStart := currentStart.AddDate(0, -1, 0)
	current, err := s.repo.GetPeriodStats(currentStart, now)
	if err != nil {
		return nil, err
	}
	previous, err := s.repo.GetPeriodStats(previousStart, currentStart)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.GetTopCategories(analyticsTopCategories)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.GetRecentOrders(analyticsRecentOrders)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.repo.GetStatusBreakdown()
	if err != nil {
		return nil, err
	}
	trend, err := s.repo.GetRevenueTrend(currentStart.AddDate(0, -(analyticsTrendMonths - 1), 0))
	if err != nil {
		return nil, err
	}

	response := &AnalyticsResponse{
		TotalRevenue:         formatMoneyValue(overview.TotalRevenue),
		TotalOrders:          overview.TotalOrders,
		TotalUsers:           overview.TotalUsers,
		TotalProducts:        overview.TotalProducts,
		RevenueGrowth:        formatPercentValue(growthPercent(current.Revenue, previous.Revenue)),
		OrdersGrowth:         formatPercentValue(growthPercent(float64(current.Orders), float64(previous.Orders))),
		UsersGrowth:          formatPercentValue(growthPercent(float64(current.NewUsers), float64(previous.NewUsers))),
		TopCategories:        make([]AnalyticsCategoryCount, 0, len(categories)),
		RecentOrders:         recent,
		OrderStatusBreakdown: breakdown,
		RevenueTrend:         make([]AnalyticsTrendPoint, 0, len(trend)),
		GeneratedAt:          now.Format(time.RFC3339),
	}
	for _, row := range categories {
		response.TopCategories = append(response.TopCategories, AnalyticsCategoryCount{
			CategoryID: row.CategoryID,
			Name:       row.Name,
			Count:      row.ProductCount,
		})
	}
	for _, row := range trend {
		response.RevenueTrend = append(response.RevenueTrend, AnalyticsTrendPoint{
			Month:   row.Month,
			Orders:  row.Orders,
			Revenue: formatMoneyValue(row.Revenue),
		})
	}

	if err := cache.SetJSON(ctx, cacheKey, response, s.cacheTTL); err != nil {
		logger.Warnw("analytics_cache_set_failed", "error", err)
	}
	return response, nil
}

func growthPercent(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

func formatMoneyValue(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatPercentValue(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
