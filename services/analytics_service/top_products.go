package analytics_service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"omnily-go-admin/inout"
	"omnily-go-admin/model/crm_model"
)

const topProductsWindowDays = 30

// redemptionCount is one reward's redemption tally in a window.
type redemptionCount struct {
	RewardId string
	Name     string
	Value    float64
	Sales    int
}

// GetTopProducts returns the most-redeemed rewards of the trailing 30 days,
// each with a trend percentage against the preceding 30 days. No redemptions
// in the current window yields an empty list, not an error.
func (s *AnalyticsService) GetTopProducts(ctx context.Context, organizationId string, limit int) ([]inout.TopProduct, error) {
	if limit <= 0 {
		limit = 5
	}
	current, previous := windows(time.Now(), topProductsWindowDays)

	var currentCounts []redemptionCount
	err := s.db.WithContext(ctx).Model(&crm_model.RewardRedemption{}).
		Select("reward_redemptions.reward_id AS reward_id, rewards.name AS name, rewards.value AS value, COUNT(*) AS sales").
		Joins("JOIN rewards ON rewards.id = reward_redemptions.reward_id").
		Scopes(applyRedemptionOrganization(organizationId), applyRedemptionWindow(current)).
		Group("reward_redemptions.reward_id, rewards.name, rewards.value").
		Scan(&currentCounts).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate current redemptions: %w", err)
	}
	if len(currentCounts) == 0 {
		return []inout.TopProduct{}, nil
	}

	var previousCounts []redemptionCount
	err = s.db.WithContext(ctx).Model(&crm_model.RewardRedemption{}).
		Select("reward_id, COUNT(*) AS sales").
		Scopes(applyRedemptionOrganization(organizationId), applyRedemptionWindow(previous)).
		Group("reward_id").
		Scan(&previousCounts).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate previous redemptions: %w", err)
	}

	previousByReward := make(map[string]int, len(previousCounts))
	for _, c := range previousCounts {
		previousByReward[c.RewardId] = c.Sales
	}

	return rankRewards(currentCounts, previousByReward, limit), nil
}

// rankRewards sorts rewards by redemption count and annotates each with
// revenue and trend. A reward with no prior-window baseline but current
// redemptions is reported as 100% growth rather than an undefined ratio.
func rankRewards(current []redemptionCount, previousByReward map[string]int, limit int) []inout.TopProduct {
	products := make([]inout.TopProduct, 0, len(current))
	for _, c := range current {
		trend := 0.0
		if prev := previousByReward[c.RewardId]; prev > 0 {
			trend = pctChange(float64(c.Sales), float64(prev))
		} else if c.Sales > 0 {
			trend = 100
		}
		products = append(products, inout.TopProduct{
			Id:      c.RewardId,
			Name:    c.Name,
			Sales:   c.Sales,
			Revenue: float64(c.Sales) * c.Value,
			Trend:   trend,
		})
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Sales > products[j].Sales
	})
	if len(products) > limit {
		products = products[:limit]
	}
	return products
}

// Scope helpers qualified for the joined redemption query.

func applyRedemptionOrganization(organizationId string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("reward_redemptions.organization_id = ?", organizationId)
	}
}

func applyRedemptionWindow(w window) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if w.End.IsZero() {
			return db.Where("reward_redemptions.created_at >= ?", w.Start)
		}
		return db.Where("reward_redemptions.created_at >= ? AND reward_redemptions.created_at < ?", w.Start, w.End)
	}
}
