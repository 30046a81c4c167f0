package analytics_service

import (
	"math"
	"testing"
	"time"
)

func TestPctChange(t *testing.T) {
	cases := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"growth", 1000, 800, 25},
		{"decline", 800, 1000, -20},
		{"zero previous", 500, 0, 0},
		{"both zero", 0, 0, 0},
		{"to zero", 0, 100, -100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := pctChange(tc.current, tc.previous)
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Fatalf("pctChange(%v, %v) = %v, want finite", tc.current, tc.previous, got)
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("pctChange(%v, %v) = %v, want %v", tc.current, tc.previous, got, tc.want)
			}
		})
	}
}

func TestBuildKPI_Scenario(t *testing.T) {
	cur := kpiTotals{
		Revenue:            1000,
		Transactions:       20,
		ActiveCustomers:    50,
		ReturningCustomers: 30,
		Points:             2000,
		RewardsRedeemed:    10,
		CustomerCount:      100,
		TotalSpent:         5000,
	}
	prev := kpiTotals{
		Revenue:            800,
		Transactions:       16,
		ActiveCustomers:    40,
		ReturningCustomers: 20,
		Points:             1000,
		RewardsRedeemed:    5,
		CustomerCount:      80,
		TotalSpent:         3200,
	}

	kpi := buildKPI(cur, prev)

	if kpi.RevenueChange != 25 {
		t.Errorf("RevenueChange = %v, want 25", kpi.RevenueChange)
	}
	if kpi.AverageTicket != 50 {
		t.Errorf("AverageTicket = %v, want 50", kpi.AverageTicket)
	}
	if kpi.RetentionRate != 60 {
		t.Errorf("RetentionRate = %v, want 60", kpi.RetentionRate)
	}
	// Retention change is a point difference: 60% now vs 50% before.
	if kpi.RetentionChange != 10 {
		t.Errorf("RetentionChange = %v, want 10", kpi.RetentionChange)
	}
	if kpi.CustomerLTV != 50 {
		t.Errorf("CustomerLTV = %v, want 50", kpi.CustomerLTV)
	}
}

func TestBuildKPI_ZeroPreviousWindow(t *testing.T) {
	cur := kpiTotals{Revenue: 500, Transactions: 10, ActiveCustomers: 5}
	prev := kpiTotals{}

	kpi := buildKPI(cur, prev)

	if kpi.RevenueChange != 0 {
		t.Errorf("RevenueChange = %v, want 0 on zero baseline", kpi.RevenueChange)
	}
	if kpi.TransactionsChange != 0 {
		t.Errorf("TransactionsChange = %v, want 0 on zero baseline", kpi.TransactionsChange)
	}
	if kpi.TicketChange != 0 {
		t.Errorf("TicketChange = %v, want 0 on zero baseline", kpi.TicketChange)
	}
}

func TestBuildKPI_EmptyWindows(t *testing.T) {
	kpi := buildKPI(kpiTotals{}, kpiTotals{})

	for name, v := range map[string]float64{
		"AverageTicket": kpi.AverageTicket,
		"RetentionRate": kpi.RetentionRate,
		"CustomerLTV":   kpi.CustomerLTV,
		"RevenueChange": kpi.RevenueChange,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s = %v on empty data, want 0", name, v)
		}
		if v != 0 {
			t.Errorf("%s = %v on empty data, want 0", name, v)
		}
	}
}

func TestWindows(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	current, previous := windows(now, 30)

	if !current.Start.Equal(now.AddDate(0, 0, -30)) {
		t.Errorf("current start = %v, want %v", current.Start, now.AddDate(0, 0, -30))
	}
	if !current.End.IsZero() {
		t.Errorf("current window must be open-ended, got end %v", current.End)
	}
	if !previous.Start.Equal(now.AddDate(0, 0, -60)) {
		t.Errorf("previous start = %v, want %v", previous.Start, now.AddDate(0, 0, -60))
	}
	// Previous window ends exactly where the current one starts.
	if !previous.End.Equal(current.Start) {
		t.Errorf("previous end = %v, want %v", previous.End, current.Start)
	}
}

func TestNormalizeWindowDays(t *testing.T) {
	cases := []struct {
		name string
		days int
		want int
	}{
		{"omitted", 0, 30},
		{"negative", -7, 30},
		{"explicit", 90, 90},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeWindowDays(tc.days); got != tc.want {
				t.Fatalf("normalizeWindowDays(%d) = %d, want %d", tc.days, got, tc.want)
			}
		})
	}
}
