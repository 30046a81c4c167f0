package analytics_service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"omnily-go-admin/inout"
)

// ExportDashboardCSV composes the dashboard and renders it as a CSV report.
// Returns a suggested object name and the file content.
func (s *AnalyticsService) ExportDashboardCSV(ctx context.Context, organizationId string, days int) (string, []byte, error) {
	dashboard, err := s.GetDashboard(ctx, organizationId, days)
	if err != nil {
		return "", nil, fmt.Errorf("export dashboard: %w", err)
	}

	content, err := renderDashboardCSV(dashboard)
	if err != nil {
		return "", nil, err
	}

	name := fmt.Sprintf("analytics-%s-%dd-%s.csv",
		organizationId, days, time.Now().Format("20060102150405"))
	return name, content, nil
}

func renderDashboardCSV(d *inout.AnalyticsDashboard) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"section", "metric", "value", "change"},
		{"kpi", "total_revenue", formatFloat(d.Kpi.TotalRevenue), formatFloat(d.Kpi.RevenueChange)},
		{"kpi", "active_customers", strconv.FormatInt(d.Kpi.ActiveCustomers, 10), formatFloat(d.Kpi.CustomersChange)},
		{"kpi", "total_transactions", strconv.FormatInt(d.Kpi.TotalTransactions, 10), formatFloat(d.Kpi.TransactionsChange)},
		{"kpi", "average_ticket", formatFloat(d.Kpi.AverageTicket), formatFloat(d.Kpi.TicketChange)},
		{"kpi", "points_distributed", strconv.FormatInt(d.Kpi.PointsDistributed, 10), formatFloat(d.Kpi.PointsChange)},
		{"kpi", "rewards_redeemed", strconv.FormatInt(d.Kpi.RewardsRedeemed, 10), formatFloat(d.Kpi.RewardsChange)},
		{"kpi", "retention_rate", formatFloat(d.Kpi.RetentionRate), formatFloat(d.Kpi.RetentionChange)},
		{"kpi", "customer_ltv", formatFloat(d.Kpi.CustomerLTV), formatFloat(d.Kpi.LtvChange)},
	}
	for _, p := range d.TopProducts {
		rows = append(rows, []string{"top_product", p.Name, strconv.Itoa(p.Sales), formatFloat(p.Trend)})
	}
	for _, c := range d.CampaignPerformance {
		rows = append(rows, []string{"campaign", c.Name, strconv.Itoa(c.Sent), formatFloat(c.OpenRate)})
	}
	for _, point := range d.RevenueChart {
		rows = append(rows, []string{"revenue_chart", point.Date, formatFloat(point.Revenue), strconv.Itoa(point.Transactions)})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("render csv: %w", err)
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
