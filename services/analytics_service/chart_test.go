package analytics_service

import (
	"testing"
	"time"
)

func TestBucketByDay_ZeroFillsWindow(t *testing.T) {
	now := time.Date(2025, 6, 30, 15, 0, 0, 0, time.UTC)
	rows := []chartRow{
		{CreatedAt: now.AddDate(0, 0, -1), MonetaryValue: 19.99},
		{CreatedAt: now.AddDate(0, 0, -1), MonetaryValue: 10.005},
		{CreatedAt: now, MonetaryValue: 5},
	}

	points := bucketByDay(rows, now, 7)
	if len(points) != 7 {
		t.Fatalf("got %d points, want 7", len(points))
	}

	// Oldest first, ending today.
	if points[0].Date != "2025-06-24" || points[6].Date != "2025-06-30" {
		t.Errorf("range = %s..%s, want 2025-06-24..2025-06-30", points[0].Date, points[6].Date)
	}

	empty := 0
	for _, p := range points {
		if p.Transactions == 0 && p.Revenue == 0 {
			empty++
		}
	}
	if empty != 5 {
		t.Errorf("zero-filled days = %d, want 5", empty)
	}

	yesterday := points[5]
	if yesterday.Transactions != 2 {
		t.Errorf("yesterday transactions = %d, want 2", yesterday.Transactions)
	}
	if yesterday.Revenue != 30.00 {
		t.Errorf("yesterday revenue = %v, want 30.00 after rounding", yesterday.Revenue)
	}
}

func TestBucketByDay_IgnoresRowsOutsideWindow(t *testing.T) {
	now := time.Date(2025, 6, 30, 15, 0, 0, 0, time.UTC)
	rows := []chartRow{
		{CreatedAt: now.AddDate(0, 0, -10), MonetaryValue: 100},
	}

	points := bucketByDay(rows, now, 7)
	for _, p := range points {
		if p.Revenue != 0 || p.Transactions != 0 {
			t.Fatalf("row outside window leaked into %s", p.Date)
		}
	}
}
