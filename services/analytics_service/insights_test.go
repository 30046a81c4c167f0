package analytics_service

import (
	"bytes"
	"testing"

	"omnily-go-admin/inout"
)

func TestProjectTrends(t *testing.T) {
	kpi := inout.AnalyticsKPI{
		TotalRevenue:    1000,
		RevenueChange:   25,
		ActiveCustomers: 100,
		CustomersChange: -10,
		RetentionRate:   70,
	}

	got := projectTrends(kpi)
	if got.NextMonthRevenue != 1250 {
		t.Errorf("NextMonthRevenue = %v, want 1250", got.NextMonthRevenue)
	}
	if got.NextMonthCustomers != 90 {
		t.Errorf("NextMonthCustomers = %v, want 90", got.NextMonthCustomers)
	}
	if got.ChurnRisk != 30 {
		t.Errorf("ChurnRisk = %v, want 30", got.ChurnRisk)
	}
	if got.GrowthRate != 25 {
		t.Errorf("GrowthRate = %v, want 25", got.GrowthRate)
	}
}

func TestRenderDashboardCSV(t *testing.T) {
	d := &inout.AnalyticsDashboard{
		Kpi: inout.AnalyticsKPI{TotalRevenue: 1234.5, RevenueChange: 12.5},
		TopProducts: []inout.TopProduct{
			{Name: "Free Coffee", Sales: 8, Trend: 100},
		},
		RevenueChart: []inout.RevenueDataPoint{
			{Date: "2025-06-30", Revenue: 50, Transactions: 2},
		},
	}

	content, err := renderDashboardCSV(d)
	if err != nil {
		t.Fatalf("renderDashboardCSV() error: %v", err)
	}
	if !bytes.Contains(content, []byte("total_revenue,1234.50,12.50")) {
		t.Errorf("missing KPI row in:\n%s", content)
	}
	if !bytes.Contains(content, []byte("top_product,Free Coffee,8,100.00")) {
		t.Errorf("missing top product row in:\n%s", content)
	}
	if !bytes.Contains(content, []byte("revenue_chart,2025-06-30,50.00,2")) {
		t.Errorf("missing chart row in:\n%s", content)
	}
}
