package crm_service

import (
	"testing"
	"time"
)

func daysAgo(now time.Time, days int) *time.Time {
	ts := now.AddDate(0, 0, -days)
	return &ts
}

func TestEngagementScore(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		lastActivity *time.Time
		visits       int
		totalSpent   float64
		want         float64
	}{
		{"never active", nil, 0, 0, 0},
		{"seen this week", daysAgo(now, 2), 0, 0, 40},
		{"seen this month", daysAgo(now, 20), 0, 0, 30},
		{"seen this quarter", daysAgo(now, 60), 0, 0, 15},
		{"stale", daysAgo(now, 120), 0, 0, 0},
		{"frequency contributes", nil, 5, 0, 15},
		{"frequency capped", nil, 50, 0, 30},
		{"spend contributes", nil, 0, 1500, 15},
		{"spend capped", nil, 0, 100000, 30},
		{"all components", daysAgo(now, 2), 10, 3000, 100},
		{"capped at 100", daysAgo(now, 2), 50, 100000, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engagementScore(tt.lastActivity, tt.visits, tt.totalSpent, now)
			if got != tt.want {
				t.Errorf("engagementScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChurnRisk(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		lastActivity *time.Time
		visits       int
		want         float64
	}{
		{"never active", nil, 20, 90},
		{"active recently", daysAgo(now, 3), 0, 5},
		{"two weeks plus", daysAgo(now, 20), 0, 20},
		{"over a month", daysAgo(now, 45), 0, 40},
		{"over a quarter", daysAgo(now, 120), 0, 70},
		{"gone half a year", daysAgo(now, 200), 0, 90},
		{"loyal damping", daysAgo(now, 200), 15, 63},
		{"repeat damping", daysAgo(now, 200), 5, 77},
		{"damping rounds", daysAgo(now, 45), 5, 34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := churnRisk(tt.lastActivity, tt.visits, now)
			if got != tt.want {
				t.Errorf("churnRisk() = %v, want %v", got, tt.want)
			}
		})
	}
}
