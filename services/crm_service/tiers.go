package crm_service

import (
	"context"
	"fmt"
	"time"

	"omnily-go-admin/model/crm_model"
	"omnily-go-admin/pkg/goroutinepool"
	"omnily-go-admin/pkg/monitoring"
)

// Loyalty tiers and customer statuses derived from lifetime spend.
const (
	TierPlatinum = "Platinum"
	TierGold     = "Gold"
	TierSilver   = "Silver"
	TierBronze   = "Bronze"

	StatusVip      = "vip"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Spend thresholds for the tier ladder.
const (
	platinumThreshold = 5000
	goldThreshold     = 2000
	silverThreshold   = 500
)

// classifyTier maps lifetime spend to a tier and status.
func classifyTier(totalSpent float64) (tier, status string) {
	switch {
	case totalSpent >= platinumThreshold:
		return TierPlatinum, StatusVip
	case totalSpent >= goldThreshold:
		return TierGold, StatusVip
	case totalSpent >= silverThreshold:
		return TierSilver, StatusActive
	case totalSpent > 0:
		return TierBronze, StatusActive
	default:
		return TierBronze, StatusInactive
	}
}

// RecomputeTiers re-derives tier and status for every customer of the
// organization from their lifetime spend. Only customers whose labels
// actually change are written.
func (s *CRMService) RecomputeTiers(ctx context.Context, organizationId string) (int, error) {
	var customers []crm_model.Customer
	err := s.db.WithContext(ctx).Model(&crm_model.Customer{}).
		Select("id, total_spent, tier, status").
		Scopes(applyOrganization(organizationId)).
		Find(&customers).Error
	if err != nil {
		return 0, fmt.Errorf("load customers for tier recompute: %w", err)
	}

	updated := 0
	for _, customer := range customers {
		tier, status := classifyTier(customer.TotalSpent)
		if tier == customer.Tier && status == customer.Status {
			continue
		}
		err := s.db.WithContext(ctx).Model(&crm_model.Customer{}).
			Scopes(applyOrganization(organizationId)).
			Where("id = ?", customer.Id).
			Updates(map[string]interface{}{"tier": tier, "status": status, "updated_at": time.Now()}).Error
		if err != nil {
			return updated, fmt.Errorf("update tier for customer %s: %w", customer.Id, err)
		}
		updated++
	}

	monitoring.RecordTierRecompute()
	s.invalidateDashboards(ctx, organizationId)
	return updated, nil
}

// RecomputeTiersAsync queues the recompute on the shared worker pool so the
// HTTP request returns immediately.
func (s *CRMService) RecomputeTiersAsync(organizationId string) error {
	return goroutinepool.GetPool().Submit(&goroutinepool.Task{
		ID:       "tier-recompute-" + organizationId,
		Priority: 1,
		Timeout:  2 * time.Minute,
		Function: func() error {
			_, err := s.RecomputeTiers(context.Background(), organizationId)
			return err
		},
	})
}
