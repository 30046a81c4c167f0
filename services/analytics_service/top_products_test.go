package analytics_service

import "testing"

func TestRankRewards_ZeroBaselineTrend(t *testing.T) {
	current := []redemptionCount{
		{RewardId: "r1", Name: "Free Coffee", Value: 3, Sales: 8},
	}

	got := rankRewards(current, map[string]int{}, 5)
	if len(got) != 1 {
		t.Fatalf("got %d products, want 1", len(got))
	}
	if got[0].Trend != 100 {
		t.Errorf("trend with zero baseline = %v, want 100", got[0].Trend)
	}
	if got[0].Revenue != 24 {
		t.Errorf("revenue = %v, want 24", got[0].Revenue)
	}
}

func TestRankRewards_TrendAgainstBaseline(t *testing.T) {
	current := []redemptionCount{
		{RewardId: "r1", Name: "Free Coffee", Value: 3, Sales: 15},
	}
	previous := map[string]int{"r1": 10}

	got := rankRewards(current, previous, 5)
	if got[0].Trend != 50 {
		t.Errorf("trend = %v, want 50", got[0].Trend)
	}
}

func TestRankRewards_SortAndTruncate(t *testing.T) {
	current := []redemptionCount{
		{RewardId: "r1", Name: "A", Value: 1, Sales: 3},
		{RewardId: "r2", Name: "B", Value: 1, Sales: 9},
		{RewardId: "r3", Name: "C", Value: 1, Sales: 6},
	}

	got := rankRewards(current, nil, 2)
	if len(got) != 2 {
		t.Fatalf("got %d products, want 2", len(got))
	}
	if got[0].Id != "r2" || got[1].Id != "r3" {
		t.Errorf("order = %s, %s; want r2, r3", got[0].Id, got[1].Id)
	}
}
