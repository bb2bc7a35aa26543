package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"pos_backend/internal/catalog"
)

// TodaySummary is the rollup of one owner's sales for the current day.
type TodaySummary struct {
	TotalSales   int             `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Sales        []*Sale         `json:"sales"`
}

// DashboardStats aggregates one owner's recent sales and catalog state.
type DashboardStats struct {
	TodaySales       int             `json:"today_sales"`
	TodayRevenue     decimal.Decimal `json:"today_revenue"`
	WeekSales        int             `json:"week_sales"`
	WeekRevenue      decimal.Decimal `json:"week_revenue"`
	TotalProducts    int             `json:"total_products"`
	LowStockProducts int             `json:"low_stock_products"`
}

// TodaySales returns the count, revenue sum and list of the owner's sales
// committed today. Read-only: it never touches stock or sale state.
func (s *Service) TodaySales(ownerID string) (*TodaySummary, error) {
	all, err := s.storage.GetAll(ownerID)
	if err != nil {
		return nil, err
	}

	startOfDay := startOfDay(time.Now())
	summary := &TodaySummary{
		TotalRevenue: decimal.Zero,
		Sales:        make([]*Sale, 0),
	}
	for _, sale := range all {
		if sale.CreatedAt.Before(startOfDay) {
			continue
		}
		summary.TotalSales++
		summary.TotalRevenue = summary.TotalRevenue.Add(sale.TotalAmount)
		summary.Sales = append(summary.Sales, sale)
	}
	return summary, nil
}

// DashboardStats returns today/week sale counts and revenue plus catalog
// totals for the owner's dashboard.
func (s *Service) DashboardStats(ownerID string) (*DashboardStats, error) {
	all, err := s.storage.GetAll(ownerID)
	if err != nil {
		return nil, err
	}

	today := startOfDay(time.Now())
	weekAgo := today.AddDate(0, 0, -7)

	stats := &DashboardStats{
		TodayRevenue:     decimal.Zero,
		WeekRevenue:      decimal.Zero,
		TotalProducts:    s.catalog.CountAll(ownerID),
		LowStockProducts: s.catalog.CountLowStock(ownerID, catalog.LowStockThreshold),
	}
	for _, sale := range all {
		if !sale.CreatedAt.Before(today) {
			stats.TodaySales++
			stats.TodayRevenue = stats.TodayRevenue.Add(sale.TotalAmount)
		}
		if !sale.CreatedAt.Before(weekAgo) {
			stats.WeekSales++
			stats.WeekRevenue = stats.WeekRevenue.Add(sale.TotalAmount)
		}
	}
	return stats, nil
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
