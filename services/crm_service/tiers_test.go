package crm_service

import "testing"

func TestClassifyTier(t *testing.T) {
	tests := []struct {
		name       string
		totalSpent float64
		wantTier   string
		wantStatus string
	}{
		{"platinum at threshold", 5000, TierPlatinum, StatusVip},
		{"platinum above", 12000, TierPlatinum, StatusVip},
		{"gold at threshold", 2000, TierGold, StatusVip},
		{"gold below platinum", 4999.99, TierGold, StatusVip},
		{"silver at threshold", 500, TierSilver, StatusActive},
		{"silver below gold", 1999.99, TierSilver, StatusActive},
		{"bronze with spend", 499.99, TierBronze, StatusActive},
		{"bronze small spend", 0.01, TierBronze, StatusActive},
		{"bronze no spend", 0, TierBronze, StatusInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, status := classifyTier(tt.totalSpent)
			if tier != tt.wantTier {
				t.Errorf("classifyTier(%v) tier = %q, want %q", tt.totalSpent, tier, tt.wantTier)
			}
			if status != tt.wantStatus {
				t.Errorf("classifyTier(%v) status = %q, want %q", tt.totalSpent, status, tt.wantStatus)
			}
		})
	}
}
