package analytics_service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"omnily-go-admin/inout"
	"omnily-go-admin/model/crm_model"
)

// kpiTotals are the raw per-window aggregates the KPI snapshot is built from.
type kpiTotals struct {
	Revenue            float64
	Transactions       int64
	ActiveCustomers    int64
	ReturningCustomers int64
	Points             int64
	RewardsRedeemed    int64
	CustomerCount      int64
	TotalSpent         float64
}

// GetKPIs aggregates the eight dashboard KPIs for the trailing window and the
// equal-length preceding window, then derives the change figures. Any query
// failure aborts the whole aggregation; a partial snapshot is never returned.
func (s *AnalyticsService) GetKPIs(ctx context.Context, organizationId string, days int) (*inout.AnalyticsKPI, error) {
	if organizationId == "" {
		return nil, fmt.Errorf("organization id is required")
	}
	days = normalizeWindowDays(days)

	current, previous := windows(time.Now(), days)

	cur, err := s.fetchWindowTotals(ctx, organizationId, current)
	if err != nil {
		return nil, fmt.Errorf("aggregate current window: %w", err)
	}
	prev, err := s.fetchWindowTotals(ctx, organizationId, previous)
	if err != nil {
		return nil, fmt.Errorf("aggregate previous window: %w", err)
	}

	kpi := buildKPI(cur, prev)
	return &kpi, nil
}

// fetchWindowTotals runs the per-window aggregation queries.
//
// Active and returning customers are counted from the last_activity timestamp
// rather than from transaction rows, and the points and spend totals are
// current snapshots (the previous window approximates them via updated_at,
// since balances overwrite in place). Both are deliberate approximations
// carried over from the platform's reporting semantics.
func (s *AnalyticsService) fetchWindowTotals(ctx context.Context, organizationId string, w window) (kpiTotals, error) {
	var t kpiTotals

	// Revenue and transaction count from purchase activities.
	var sales struct {
		Revenue      float64
		Transactions int64
	}
	err := s.db.WithContext(ctx).Model(&crm_model.CustomerActivity{}).
		Select("COALESCE(SUM(monetary_value), 0) AS revenue, COUNT(*) AS transactions").
		Scopes(applyOrganizationFilter(organizationId), applyWindowFilter(w)).
		Where("activity_type = ?", crm_model.ActivityPurchase).
		Scan(&sales).Error
	if err != nil {
		return t, fmt.Errorf("sum transactions: %w", err)
	}
	t.Revenue = sales.Revenue
	t.Transactions = sales.Transactions

	// Active customers, proxied by last_activity falling in the window.
	err = s.db.WithContext(ctx).Model(&crm_model.Customer{}).
		Scopes(applyOrganizationFilter(organizationId), applyActivityWindow(w)).
		Count(&t.ActiveCustomers).Error
	if err != nil {
		return t, fmt.Errorf("count active customers: %w", err)
	}

	// Returning customers for the retention rate, same activity proxy.
	err = s.db.WithContext(ctx).Model(&crm_model.Customer{}).
		Scopes(applyOrganizationFilter(organizationId), applyActivityWindow(w)).
		Where("visits > 1").
		Count(&t.ReturningCustomers).Error
	if err != nil {
		return t, fmt.Errorf("count returning customers: %w", err)
	}

	// Point balances and lifetime spend. The current window reads the whole
	// customer base; the previous window narrows by updated_at.
	var balances struct {
		Points     int64
		TotalSpent float64
		Customers  int64
	}
	balanceQuery := s.db.WithContext(ctx).Model(&crm_model.Customer{}).
		Select("COALESCE(SUM(points), 0) AS points, COALESCE(SUM(total_spent), 0) AS total_spent, COUNT(*) AS customers").
		Scopes(applyOrganizationFilter(organizationId))
	if !w.End.IsZero() {
		balanceQuery = balanceQuery.Where("updated_at >= ? AND updated_at < ?", w.Start, w.End)
	}
	if err = balanceQuery.Scan(&balances).Error; err != nil {
		return t, fmt.Errorf("sum point balances: %w", err)
	}
	t.Points = balances.Points
	t.TotalSpent = balances.TotalSpent
	t.CustomerCount = balances.Customers

	// Reward redemptions in the window.
	err = s.db.WithContext(ctx).Model(&crm_model.RewardRedemption{}).
		Scopes(applyOrganizationFilter(organizationId), applyWindowFilter(w)).
		Count(&t.RewardsRedeemed).Error
	if err != nil {
		return t, fmt.Errorf("count redemptions: %w", err)
	}

	return t, nil
}

// applyActivityWindow bounds last_activity to a window.
func applyActivityWindow(w window) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if w.End.IsZero() {
			return db.Where("last_activity >= ?", w.Start)
		}
		return db.Where("last_activity >= ? AND last_activity < ?", w.Start, w.End)
	}
}

// buildKPI derives the KPI snapshot from the two windows' raw totals.
// Every ratio substitutes 0 when its denominator is 0. RetentionChange is a
// percentage-point difference, not a relative change.
func buildKPI(cur, prev kpiTotals) inout.AnalyticsKPI {
	averageTicket := safeDiv(cur.Revenue, float64(cur.Transactions))
	prevAverageTicket := safeDiv(prev.Revenue, float64(prev.Transactions))

	retention := safeDiv(float64(cur.ReturningCustomers), float64(cur.ActiveCustomers)) * 100
	prevRetention := safeDiv(float64(prev.ReturningCustomers), float64(prev.ActiveCustomers)) * 100

	ltv := safeDiv(cur.TotalSpent, float64(cur.CustomerCount))
	prevLtv := safeDiv(prev.TotalSpent, float64(prev.CustomerCount))

	return inout.AnalyticsKPI{
		TotalRevenue:       cur.Revenue,
		RevenueChange:      pctChange(cur.Revenue, prev.Revenue),
		ActiveCustomers:    cur.ActiveCustomers,
		CustomersChange:    pctChange(float64(cur.ActiveCustomers), float64(prev.ActiveCustomers)),
		TotalTransactions:  cur.Transactions,
		TransactionsChange: pctChange(float64(cur.Transactions), float64(prev.Transactions)),
		AverageTicket:      averageTicket,
		TicketChange:       pctChange(averageTicket, prevAverageTicket),
		PointsDistributed:  cur.Points,
		PointsChange:       pctChange(float64(cur.Points), float64(prev.Points)),
		RewardsRedeemed:    cur.RewardsRedeemed,
		RewardsChange:      pctChange(float64(cur.RewardsRedeemed), float64(prev.RewardsRedeemed)),
		RetentionRate:      retention,
		RetentionChange:    retention - prevRetention,
		CustomerLTV:        ltv,
		LtvChange:          pctChange(ltv, prevLtv),
	}
}
