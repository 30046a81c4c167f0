package analytics_service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"omnily-go-admin/inout"
	"omnily-go-admin/model/crm_model"
)

// chartRow is the projection fetched for the revenue series.
type chartRow struct {
	CreatedAt     time.Time
	MonetaryValue float64
}

// GetRevenueChart builds the per-day revenue series for the trailing window.
// Days without transactions appear as zero-valued points so the series always
// spans the full window.
func (s *AnalyticsService) GetRevenueChart(ctx context.Context, organizationId string, days int) ([]inout.RevenueDataPoint, error) {
	days = normalizeWindowDays(days)
	now := time.Now()
	start := now.AddDate(0, 0, -days)

	var rows []chartRow
	err := s.db.WithContext(ctx).Model(&crm_model.CustomerActivity{}).
		Select("created_at, monetary_value").
		Scopes(applyOrganizationFilter(organizationId)).
		Where("activity_type = ? AND created_at >= ?", crm_model.ActivityPurchase, start).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load transactions for chart: %w", err)
	}

	return bucketByDay(rows, now, days), nil
}

// bucketByDay folds transaction rows into one point per calendar day,
// oldest first. Revenue is rounded to 2 decimals.
func bucketByDay(rows []chartRow, now time.Time, days int) []inout.RevenueDataPoint {
	type bucket struct {
		revenue decimal.Decimal
		count   int
	}

	buckets := make(map[string]*bucket, days)
	dates := make([]string, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		buckets[date] = &bucket{}
		dates = append(dates, date)
	}

	for _, row := range rows {
		date := row.CreatedAt.Format("2006-01-02")
		if b, ok := buckets[date]; ok {
			b.revenue = b.revenue.Add(decimal.NewFromFloat(row.MonetaryValue))
			b.count++
		}
	}

	points := make([]inout.RevenueDataPoint, 0, len(dates))
	for _, date := range dates {
		b := buckets[date]
		revenue, _ := b.revenue.Round(2).Float64()
		points = append(points, inout.RevenueDataPoint{
			Date:         date,
			Revenue:      revenue,
			Transactions: b.count,
		})
	}
	return points
}
