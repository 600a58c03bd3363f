// Package services содержит логику админской аналитики: сводные
// показатели магазина и ежедневная динамика продаж.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/ecommerce-store/internal/storage/repository"
)

// Длина ежедневного ряда: сегодня плюс семь предыдущих дней.
const dailyRangeDays = 8

// AnalyticsRepository описывает агрегирующие запросы для аналитики.
type AnalyticsRepository interface {
	CountUsers(ctx context.Context) (int, error)
	CountProducts(ctx context.Context) (int, error)
	CountOrdersAndRevenue(ctx context.Context) (int, float64, error)
	DailySales(ctx context.Context, start, end time.Time) ([]repository.DailySalesRow, error)
}

// Summary — сводные показатели магазина.
type Summary struct {
	Users    int     `json:"users"`
	Products int     `json:"products"`
	Sales    int     `json:"totalSales"`
	Revenue  float64 `json:"totalRevenue"`
}

// DailyPoint — продажи и выручка за один день.
type DailyPoint struct {
	Date    string  `json:"date"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

// AnalyticsService отвечает за показатели для панели администратора.
type AnalyticsService struct {
	repo AnalyticsRepository
	now  func() time.Time
}

// NewAnalyticsService создает новый экземпляр AnalyticsService.
func NewAnalyticsService(repo AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo, now: time.Now}
}

// GetSummary возвращает сводные показатели: пользователи, товары,
// число продаж и выручку.
func (s *AnalyticsService) GetSummary(ctx context.Context) (*Summary, error) {
	const op = "services.analytics.GetSummary"

	users, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	products, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sales, revenue, err := s.repo.CountOrdersAndRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Summary{
		Users:    users,
		Products: products,
		Sales:    sales,
		Revenue:  revenue,
	}, nil
}

// GetDailySales возвращает ряд из восьми дней (сегодня и семь предыдущих,
// UTC): дни без заказов заполняются нулями, даты в формате YYYY-MM-DD.
func (s *AnalyticsService) GetDailySales(ctx context.Context) ([]DailyPoint, error) {
	const op = "services.analytics.GetDailySales"

	end := s.now().UTC()
	start := end.Truncate(24 * time.Hour).AddDate(0, 0, -(dailyRangeDays - 1))

	rows, err := s.repo.DailySales(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	byDate := make(map[string]repository.DailySalesRow, len(rows))
	for _, row := range rows {
		byDate[row.Date] = row
	}

	result := make([]DailyPoint, 0, dailyRangeDays)
	for day := 0; day < dailyRangeDays; day++ {
		date := start.AddDate(0, 0, day).Format("2006-01-02")
		point := DailyPoint{Date: date}
		if row, ok := byDate[date]; ok {
			point.Sales = row.Sales
			point.Revenue = row.Revenue
		}
		result = append(result, point)
	}
	return result, nil
}
