package repository

import (
	"fmt"
	"time"

	"github.com/elitebuy/internal/constants"
	"github.com/elitebuy/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview() (DashboardOverviewRow, error)
	GetPeriodStats(startAt, endAt time.Time) (DashboardPeriodRow, error)
	GetRevenueTrend(startAt time.Time) ([]DashboardRevenueTrendRow, error)
	GetStatusBreakdown() (map[string]int64, error)
	GetTopCategories(limit int) ([]DashboardCategoryRankingRow, error)
	GetRecentOrders(limit int) ([]models.Order, error)
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	TotalRevenue  float64
	TotalOrders   int64
	TotalUsers    int64
	TotalProducts int64
}

// DashboardPeriodRow 时间窗口统计
type DashboardPeriodRow struct {
	Orders   int64
	Revenue  float64
	NewUsers int64
}

// DashboardRevenueTrendRow 月度营收趋势
type DashboardRevenueTrendRow struct {
	Month   string
	Orders  int64
	Revenue float64
}

// DashboardCategoryRankingRow 分类商品数排行
type DashboardCategoryRankingRow struct {
	CategoryID   uint
	Name         string
	ProductCount int64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

func (r *GormDashboardRepository) revenueBase() *gorm.DB {
	return r.db.Model(&models.Order{}).Where("status <> ?", constants.OrderStatusCancelled)
}

// GetOverview 获取总览统计
func (r *GormDashboardRepository) GetOverview() (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}
	if err := r.revenueBase().Select("COALESCE(SUM(total_amount), 0)").Scan(&result.TotalRevenue).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Order{}).Count(&result.TotalOrders).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.User{}).Count(&result.TotalUsers).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Product{}).Count(&result.TotalProducts).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetPeriodStats 获取时间窗口内的订单、营收与新增用户
func (r *GormDashboardRepository) GetPeriodStats(startAt, endAt time.Time) (DashboardPeriodRow, error) {
	result := DashboardPeriodRow{}
	if err := r.db.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Count(&result.Orders).Error; err != nil {
		return result, err
	}
	if err := r.revenueBase().
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.Revenue).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.User{}).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Count(&result.NewUsers).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetRevenueTrend 按月统计营收
func (r *GormDashboardRepository) GetRevenueTrend(startAt time.Time) ([]DashboardRevenueTrendRow, error) {
	monthExpr := monthExprByDialect(dbDialectName(r.db), "created_at")
	var rows []DashboardRevenueTrendRow
	if err := r.revenueBase().
		Select(fmt.Sprintf("%s as month, COUNT(*) as orders, COALESCE(SUM(total_amount), 0) as revenue", monthExpr)).
		Where("created_at >= ?", startAt).
		Group(monthExpr).
		Order("month asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetStatusBreakdown 各状态订单数
func (r *GormDashboardRepository) GetStatusBreakdown() (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	if err := r.db.Model(&models.Order{}).
		Select("status, COUNT(*) as total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, item := range rows {
		result[item.Status] = item.Total
	}
	return result, nil
}

// GetTopCategories 按商品数排序的分类
func (r *GormDashboardRepository) GetTopCategories(limit int) ([]DashboardCategoryRankingRow, error) {
	query := r.db.Table("categories c").
		Select("c.id as category_id, c.name as name, COUNT(p.id) as product_count").
		Joins("LEFT JOIN products p ON p.category_id = c.id").
		Group("c.id, c.name").
		Order("product_count DESC, c.id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []DashboardCategoryRankingRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetRecentOrders 最近订单
func (r *GormDashboardRepository) GetRecentOrders(limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 5
	}
	var orders []models.Order
	if err := r.db.Order("id DESC").Limit(limit).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
