package analytics_service

import (
	"time"

	"gorm.io/gorm"

	"omnily-go-admin/pkg/cache"
)

// AnalyticsService derives dashboard KPIs, rankings, segments and insights
// from the loyalty tables. The database handle is injected so the pure
// computation parts stay testable without a live store.
type AnalyticsService struct {
	db    *gorm.DB
	cache *cache.CacheManager
	cfg   Config
}

func NewAnalyticsService(db *gorm.DB, cm *cache.CacheManager, cfg Config) *AnalyticsService {
	return &AnalyticsService{db: db, cache: cm, cfg: cfg}
}

// window is a contiguous aggregation range. End is zero for the current
// (open-ended) window.
type window struct {
	Start time.Time
	End   time.Time
}

// windows returns the current trailing window and the immediately preceding
// window of identical length, non-overlapping.
func windows(now time.Time, days int) (current, previous window) {
	currentStart := now.AddDate(0, 0, -days)
	previousStart := now.AddDate(0, 0, -2*days)
	current = window{Start: currentStart}
	previous = window{Start: previousStart, End: currentStart}
	return current, previous
}

// applyOrganizationFilter scopes a query to one tenant. Every aggregation
// query must go through this filter.
func applyOrganizationFilter(organizationId string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_id = ?", organizationId)
	}
}

// applyWindowFilter bounds created_at to a window. An open window only has a
// lower bound.
func applyWindowFilter(w window) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if w.End.IsZero() {
			return db.Where("created_at >= ?", w.Start)
		}
		return db.Where("created_at >= ? AND created_at < ?", w.Start, w.End)
	}
}

// pctChange computes the relative percentage change between two values.
// A zero previous value yields 0, never NaN or Inf.
func pctChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// safeDiv divides and substitutes 0 for an undefined ratio.
func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
