package analytics_service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"omnily-go-admin/inout"
	"omnily-go-admin/pkg/monitoring"
)

const (
	dashboardCacheTTL = 60 * time.Second
	defaultWindowDays = 30
)

// Windows the dashboard UI exposes; used to invalidate cached compositions.
var dashboardWindows = []int{7, 30, 90, 365}

func dashboardCacheKey(organizationId string, days int) string {
	return fmt.Sprintf("analytics:dashboard:%s:%d", organizationId, days)
}

// normalizeWindowDays applies the default window when the caller omits or
// zeroes the length, so every entry point accepts a bare request.
func normalizeWindowDays(days int) int {
	if days <= 0 {
		return defaultWindowDays
	}
	return days
}

// GetDashboard fans out the independent sub-queries, joins them and assembles
// the dashboard object. The first error fails the whole composition; no
// partial dashboard is returned. Results are cached briefly per organization
// and window, and activity writes invalidate the cache so a fresh read always
// reflects the latest customer data.
func (s *AnalyticsService) GetDashboard(ctx context.Context, organizationId string, days int) (*inout.AnalyticsDashboard, error) {
	days = normalizeWindowDays(days)

	cacheKey := dashboardCacheKey(organizationId, days)
	if s.cache != nil {
		var cached inout.AnalyticsDashboard
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			monitoring.RecordDashboardCache("hit")
			return &cached, nil
		}
		monitoring.RecordDashboardCache("miss")
	}

	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(4)

	var (
		kpi          *inout.AnalyticsKPI
		topProducts  []inout.TopProduct
		campaigns    []inout.CampaignPerformance
		revenueChart []inout.RevenueDataPoint

		kpiErr, productsErr, campaignsErr, chartErr error
	)

	go func() {
		defer wg.Done()
		kpi, kpiErr = s.GetKPIs(ctx, organizationId, days)
	}()
	go func() {
		defer wg.Done()
		topProducts, productsErr = s.GetTopProducts(ctx, organizationId, 5)
	}()
	go func() {
		defer wg.Done()
		campaigns, campaignsErr = s.GetCampaignPerformance(ctx, organizationId)
	}()
	go func() {
		defer wg.Done()
		revenueChart, chartErr = s.GetRevenueChart(ctx, organizationId, days)
	}()

	wg.Wait()

	for _, err := range []error{kpiErr, productsErr, campaignsErr, chartErr} {
		if err != nil {
			monitoring.ObserveDashboardComposition(time.Since(start), "error")
			return nil, fmt.Errorf("compose dashboard: %w", err)
		}
	}
	monitoring.ObserveDashboardComposition(time.Since(start), "ok")

	dashboard := &inout.AnalyticsDashboard{
		Kpi:                 *kpi,
		TopProducts:         topProducts,
		CampaignPerformance: campaigns,
		RevenueChart:        revenueChart,
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, dashboard, dashboardCacheTTL)
	}
	return dashboard, nil
}

// InvalidateDashboards drops the cached compositions for an organization.
// Called after writes that change the underlying rows.
func (s *AnalyticsService) InvalidateDashboards(ctx context.Context, organizationId string) {
	if s.cache == nil {
		return
	}
	for _, days := range dashboardWindows {
		s.cache.Delete(ctx, dashboardCacheKey(organizationId, days))
	}
}
