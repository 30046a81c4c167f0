package analytics_service

import (
	"context"
	"fmt"

	"omnily-go-admin/inout"
	"omnily-go-admin/model/crm_model"
)

const campaignPerformanceLimit = 10

// GetCampaignPerformance reports the latest campaigns with their derived
// open, click and conversion rates.
func (s *AnalyticsService) GetCampaignPerformance(ctx context.Context, organizationId string) ([]inout.CampaignPerformance, error) {
	var campaigns []crm_model.MarketingCampaign
	err := s.db.WithContext(ctx).Model(&crm_model.MarketingCampaign{}).
		Scopes(applyOrganizationFilter(organizationId)).
		Order("created_at DESC").
		Limit(campaignPerformanceLimit).
		Find(&campaigns).Error
	if err != nil {
		return nil, fmt.Errorf("load campaigns: %w", err)
	}

	performance := make([]inout.CampaignPerformance, 0, len(campaigns))
	for _, campaign := range campaigns {
		performance = append(performance, campaignRates(campaign))
	}
	return performance, nil
}

// campaignRates derives the rate figures for one campaign, substituting 0 for
// undefined ratios.
func campaignRates(campaign crm_model.MarketingCampaign) inout.CampaignPerformance {
	name := campaign.Subject
	if name == "" {
		name = campaign.Name
	}
	if name == "" {
		name = "Untitled campaign"
	}
	campaignType := campaign.Type
	if campaignType == "" {
		campaignType = "custom"
	}

	return inout.CampaignPerformance{
		Id:             campaign.Id,
		Name:           name,
		Type:           campaignType,
		Sent:           campaign.SentCount,
		Opened:         campaign.OpenedCount,
		Clicked:        campaign.ClickedCount,
		OpenRate:       safeDiv(float64(campaign.OpenedCount), float64(campaign.SentCount)) * 100,
		ClickRate:      safeDiv(float64(campaign.ClickedCount), float64(campaign.SentCount)) * 100,
		ConversionRate: safeDiv(float64(campaign.ClickedCount), float64(campaign.OpenedCount)) * 100,
	}
}
