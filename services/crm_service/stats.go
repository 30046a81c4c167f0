package crm_service

import (
	"context"
	"fmt"

	"omnily-go-admin/inout"
	"omnily-go-admin/model/crm_model"
)

// GetCRMStats summarizes the organization's customer base and campaign
// funnel for the CRM dashboard header.
func (s *CRMService) GetCRMStats(ctx context.Context, organizationId string) (*inout.CRMStats, error) {
	var customers []crm_model.Customer
	err := s.db.WithContext(ctx).Model(&crm_model.Customer{}).
		Select("status, total_spent, lifetime_value, engagement_score").
		Scopes(applyOrganization(organizationId)).
		Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("load customers for stats: %w", err)
	}

	var campaigns []crm_model.MarketingCampaign
	err = s.db.WithContext(ctx).Model(&crm_model.MarketingCampaign{}).
		Select("status, revenue_generated, sent_count, converted_count").
		Scopes(applyOrganization(organizationId)).
		Find(&campaigns).Error
	if err != nil {
		return nil, fmt.Errorf("load campaigns for stats: %w", err)
	}

	stats := summarizeCRM(customers, campaigns)
	return &stats, nil
}

// summarizeCRM folds the fetched rows into the stats struct. Ratios fall back
// to 0 on empty sets.
func summarizeCRM(customers []crm_model.Customer, campaigns []crm_model.MarketingCampaign) inout.CRMStats {
	stats := inout.CRMStats{TotalCustomers: int64(len(customers))}

	var totalCLV, totalEngagement float64
	for _, c := range customers {
		switch c.Status {
		case StatusActive, StatusVip:
			stats.ActiveCustomers++
		case "churned":
			stats.ChurnedCustomers++
		}
		if c.Status == StatusVip {
			stats.VipCustomers++
		}
		stats.TotalRevenue += c.TotalSpent
		totalCLV += c.LifetimeValue
		totalEngagement += c.EngagementScore
	}
	if len(customers) > 0 {
		stats.AvgCLV = totalCLV / float64(len(customers))
		stats.AvgEngagement = totalEngagement / float64(len(customers))
	}

	var totalSent, totalConverted int64
	for _, campaign := range campaigns {
		if campaign.Status == crm_model.CampaignStatusRunning {
			stats.ActiveCampaigns++
		}
		totalSent += int64(campaign.SentCount)
		totalConverted += int64(campaign.ConvertedCount)
	}
	if totalSent > 0 {
		stats.ConversionRate = float64(totalConverted) / float64(totalSent) * 100
	}

	return stats
}
